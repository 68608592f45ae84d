package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobType(t *testing.T) {
	tests := []struct {
		name     string
		jobType  JobType
		expected string
	}{
		{"Send Notification", JobTypeSendNotification, "send_notification"},
		{"Sync Subscription", JobTypeSyncSubscription, "sync_subscription"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.jobType))
		})
	}
}

func TestJob_IsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		job       *Job
		retryable bool
	}{
		{
			name: "Failed job with retries remaining",
			job: &Job{
				Status:     JobStatusFailed,
				RetryCount: 1,
				MaxRetries: 3,
			},
			retryable: true,
		},
		{
			name: "Failed job with no retries remaining",
			job: &Job{
				Status:     JobStatusFailed,
				RetryCount: 3,
				MaxRetries: 3,
			},
			retryable: false,
		},
		{
			name: "Completed job",
			job: &Job{
				Status:     JobStatusCompleted,
				RetryCount: 1,
				MaxRetries: 3,
			},
			retryable: false,
		},
		{
			name: "Pending job",
			job: &Job{
				Status:     JobStatusPending,
				RetryCount: 0,
				MaxRetries: 3,
			},
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.job.IsRetryable())
		})
	}
}

func TestJob_MarkAsProcessing(t *testing.T) {
	job := &Job{
		Status: JobStatusPending,
	}

	job.MarkAsProcessing()

	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.NotNil(t, job.ProcessedAt)
	assert.False(t, job.UpdatedAt.IsZero())
}

func TestJob_MarkAsCompleted(t *testing.T) {
	job := &Job{
		Status:   JobStatusProcessing,
		ErrorMsg: "some error",
	}

	job.MarkAsCompleted()

	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Empty(t, job.ErrorMsg)
}

func TestJob_MarkAsFailed(t *testing.T) {
	job := &Job{
		Status:     JobStatusProcessing,
		RetryCount: 1,
	}

	beforeTime := time.Now()
	job.MarkAsFailed("delivery failed")
	afterTime := time.Now()

	assert.Equal(t, JobStatusFailed, job.Status)
	assert.True(t, job.UpdatedAt.After(beforeTime) || job.UpdatedAt.Equal(beforeTime))
	assert.True(t, job.UpdatedAt.Before(afterTime) || job.UpdatedAt.Equal(afterTime))
	assert.Equal(t, "delivery failed", job.ErrorMsg)
	assert.Equal(t, 2, job.RetryCount)
}

func TestJob_MarkAsRetrying(t *testing.T) {
	job := &Job{
		Status: JobStatusFailed,
	}

	job.MarkAsRetrying()

	assert.Equal(t, JobStatusRetrying, job.Status)
}

func TestSendNotificationJobPayloadRoundTrip(t *testing.T) {
	original := SendNotificationJobPayload{
		ClinicID:       42,
		Kind:           "appointment_reminder",
		RecipientEmail: "owner@example.com",
		RecipientName:  "Jordan",
		PayloadJSON:    `{"pet_name":"Bella"}`,
	}

	data := original.ToMap()
	result, err := SendNotificationJobPayloadFromMap(data)
	require.NoError(t, err)

	assert.Equal(t, &original, result)
}

func TestSendNotificationJobPayloadFromMap_JSONNumbers(t *testing.T) {
	// Payloads read back from Redis carry float64 for numeric fields
	data := map[string]interface{}{
		"clinic_id":       float64(42),
		"kind":            "welcome",
		"recipient_email": "jo@example.com",
	}

	payload, err := SendNotificationJobPayloadFromMap(data)
	require.NoError(t, err)
	assert.Equal(t, uint(42), payload.ClinicID)
	assert.Equal(t, "welcome", payload.Kind)
}

func TestSyncSubscriptionJobPayloadRoundTrip(t *testing.T) {
	original := SyncSubscriptionJobPayload{ClinicID: 7}

	data := original.ToMap()
	result, err := SyncSubscriptionJobPayloadFromMap(data)
	require.NoError(t, err)

	assert.Equal(t, &original, result)
}
