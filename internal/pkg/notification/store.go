package notification

import (
	"encoding/json"
	"fmt"

	"github.com/vetdeskhq/vetdesk/app/models"
	"github.com/vetdeskhq/vetdesk/app/repository"
	"github.com/vetdeskhq/vetdesk/internal/pkg/mailer"
)

// GormPreferenceStore adapts the preference repository to the dispatcher.
type GormPreferenceStore struct {
	repo repository.NotificationPreferenceRepository
}

func NewGormPreferenceStore(repo repository.NotificationPreferenceRepository) *GormPreferenceStore {
	return &GormPreferenceStore{repo: repo}
}

func (s *GormPreferenceStore) IsEnabled(clinicID uint, kind Kind) (bool, error) {
	return s.repo.IsEnabled(clinicID, string(kind))
}

// GormAuditLogger writes one immutable NotificationLog row per attempt.
type GormAuditLogger struct {
	repo repository.NotificationLogRepository
}

func NewGormAuditLogger(repo repository.NotificationLogRepository) *GormAuditLogger {
	return &GormAuditLogger{repo: repo}
}

func (l *GormAuditLogger) Record(clinicID uint, kind Kind, recipient Recipient, payload Payload, result mailer.DeliveryResult) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", kind, err)
	}

	errorMessage := result.ErrorMessage
	if result.Skipped {
		errorMessage = result.SkipReason
	}

	return l.repo.Create(&models.NotificationLog{
		ClinicID:          clinicID,
		Kind:              string(kind),
		RecipientEmail:    recipient.Email,
		RecipientName:     recipient.Name,
		PayloadJSON:       string(payloadJSON),
		Success:           result.Success,
		ProviderMessageID: result.MessageID,
		ErrorMessage:      errorMessage,
		StatusCode:        result.StatusCode,
	})
}
