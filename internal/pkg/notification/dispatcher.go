package notification

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/vetdeskhq/vetdesk/internal/pkg/mailer"
)

// Skip reasons surfaced in DeliveryResult.SkipReason.
const (
	SkipReasonPreferenceDisabled = "preference_disabled"
	SkipReasonInvalidRecipient   = "invalid_recipient"
)

// PreferenceStore answers whether a clinic wants a notification kind.
// Lookups fail closed: any store error counts as disabled.
type PreferenceStore interface {
	IsEnabled(clinicID uint, kind Kind) (bool, error)
}

// AuditLogger records attempted sends. Logging failures never affect the
// delivery result.
type AuditLogger interface {
	Record(clinicID uint, kind Kind, recipient Recipient, payload Payload, result mailer.DeliveryResult) error
}

// Recipient is who the rendered message is addressed to.
type Recipient struct {
	Email string
	Name  string
}

// Dispatcher runs the full send pipeline for one notification: preference
// check, recipient validation, rendering, delivery, audit. Dispatch never
// returns an error; every outcome is folded into the DeliveryResult.
type Dispatcher struct {
	prefs   PreferenceStore
	gateway *mailer.Gateway
	audit   AuditLogger
}

func NewDispatcher(prefs PreferenceStore, gateway *mailer.Gateway, audit AuditLogger) *Dispatcher {
	return &Dispatcher{prefs: prefs, gateway: gateway, audit: audit}
}

// Dispatch sends one notification to one recipient.
//
// A disabled preference short-circuits before any rendering happens and is
// not audit-logged: nothing was attempted. An invalid recipient and every
// later failure are attempts and do get a log row.
func (d *Dispatcher) Dispatch(clinicID uint, recipient Recipient, payload Payload) mailer.DeliveryResult {
	kind := payload.Kind()

	enabled, err := d.prefs.IsEnabled(clinicID, kind)
	if err != nil {
		log.Errorf("[Notification] Preference lookup for clinic %d kind %s failed: %v", clinicID, kind, err)
		enabled = false
	}
	if !enabled {
		return mailer.SkippedResult(SkipReasonPreferenceDisabled)
	}

	if !IsValidEmail(recipient.Email) {
		result := mailer.SkippedResult(SkipReasonInvalidRecipient)
		d.record(clinicID, kind, recipient, payload, result)
		return result
	}

	rendered, err := Render(payload)
	if err != nil {
		log.Errorf("[Notification] Render %s for clinic %d failed: %v", kind, clinicID, err)
		result := mailer.FailedResult(fmt.Errorf("render %s: %w", kind, err))
		d.record(clinicID, kind, recipient, payload, result)
		return result
	}

	result := d.gateway.Send(mailer.Message{
		To:       recipient.Email,
		ToName:   recipient.Name,
		Subject:  rendered.Subject,
		HTMLBody: rendered.HTMLBody,
		TextBody: rendered.TextBody,
	})

	d.record(clinicID, kind, recipient, payload, result)
	return result
}

func (d *Dispatcher) record(clinicID uint, kind Kind, recipient Recipient, payload Payload, result mailer.DeliveryResult) {
	if d.audit == nil {
		return
	}
	if err := d.audit.Record(clinicID, kind, recipient, payload, result); err != nil {
		log.Errorf("[Notification] Audit log for clinic %d kind %s failed: %v", clinicID, kind, err)
	}
}
