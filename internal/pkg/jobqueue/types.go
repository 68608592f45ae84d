package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeSendNotification JobType = "send_notification"
	JobTypeSyncSubscription JobType = "sync_subscription"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// SendNotificationJobPayload carries one queued notification send. The
// notification payload travels as serialized JSON next to its kind so the
// processor can rebuild the typed payload.
type SendNotificationJobPayload struct {
	ClinicID       uint   `json:"clinic_id"`
	Kind           string `json:"kind"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	PayloadJSON    string `json:"payload_json"`
}

// ToMap converts the payload to a map for storage
func (p SendNotificationJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"clinic_id":       p.ClinicID,
		"kind":            p.Kind,
		"recipient_email": p.RecipientEmail,
		"recipient_name":  p.RecipientName,
		"payload_json":    p.PayloadJSON,
	}
}

// SendNotificationJobPayloadFromMap creates a payload from a map
func SendNotificationJobPayloadFromMap(data map[string]interface{}) (*SendNotificationJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload SendNotificationJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// SyncSubscriptionJobPayload identifies the clinic whose billing facts
// should be refreshed from the provider.
type SyncSubscriptionJobPayload struct {
	ClinicID uint `json:"clinic_id"`
}

// ToMap converts the payload to a map for storage
func (p SyncSubscriptionJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"clinic_id": p.ClinicID,
	}
}

// SyncSubscriptionJobPayloadFromMap creates a payload from a map
func SyncSubscriptionJobPayloadFromMap(data map[string]interface{}) (*SyncSubscriptionJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload SyncSubscriptionJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
