package jobqueue

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/vetdeskhq/vetdesk/app/models"
	"github.com/vetdeskhq/vetdesk/internal/pkg/mailer"
	"github.com/vetdeskhq/vetdesk/internal/pkg/notification"
)

// NotificationDispatcher runs the send pipeline for one notification.
type NotificationDispatcher interface {
	Dispatch(clinicID uint, recipient notification.Recipient, payload notification.Payload) mailer.DeliveryResult
}

// SubscriptionSyncer refreshes a clinic's mirrored billing facts.
type SubscriptionSyncer interface {
	SyncFromProvider(ctx context.Context, clinicID uint) (*models.ClinicSubscription, error)
}

// Processors holds the collaborators the queue hands jobs to. The dispatcher
// core has no retry of its own; retries happen here through the queue's
// normal failed-job path.
type Processors struct {
	dispatcher NotificationDispatcher
	billing    SubscriptionSyncer
}

func NewProcessors(dispatcher NotificationDispatcher, billing SubscriptionSyncer) *Processors {
	return &Processors{dispatcher: dispatcher, billing: billing}
}

// ProcessSendNotificationJob rebuilds the typed notification payload and runs
// it through the dispatcher. A skipped result completes the job; a delivery
// failure returns an error so the queue can retry.
func (p *Processors) ProcessSendNotificationJob(ctx context.Context, job *Job) error {
	payload, err := SendNotificationJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid send_notification payload: %w", err)
	}

	typed, err := notification.PayloadFromJSON(notification.Kind(payload.Kind), []byte(payload.PayloadJSON))
	if err != nil {
		return fmt.Errorf("rebuild %s payload: %w", payload.Kind, err)
	}

	result := p.dispatcher.Dispatch(payload.ClinicID, notification.Recipient{
		Email: payload.RecipientEmail,
		Name:  payload.RecipientName,
	}, typed)

	if result.Skipped {
		log.Infof("[JobQueue] Notification %s for clinic %d skipped (%s)", payload.Kind, payload.ClinicID, result.SkipReason)
		return nil
	}
	if !result.Success {
		return fmt.Errorf("deliver %s to %s: %s", payload.Kind, payload.RecipientEmail, result.ErrorMessage)
	}

	log.Infof("[JobQueue] Notification %s for clinic %d delivered (message id %s)", payload.Kind, payload.ClinicID, result.MessageID)
	return nil
}

// ProcessSyncSubscriptionJob pulls the provider's current subscription
// snapshot for the clinic and upserts the local mirror.
func (p *Processors) ProcessSyncSubscriptionJob(ctx context.Context, job *Job) error {
	payload, err := SyncSubscriptionJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid sync_subscription payload: %w", err)
	}

	sub, err := p.billing.SyncFromProvider(ctx, payload.ClinicID)
	if err != nil {
		return fmt.Errorf("sync subscription for clinic %d: %w", payload.ClinicID, err)
	}

	log.Infof("[JobQueue] Subscription for clinic %d synced (status %s, plan %s)", payload.ClinicID, sub.Status, sub.PlanName)
	return nil
}
