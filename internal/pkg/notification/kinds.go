package notification

import (
	"encoding/json"
	"fmt"
)

// Kind identifies one transactional notification template.
type Kind string

const (
	KindAppointmentConfirmation Kind = "appointment_confirmation"
	KindAppointmentReminder     Kind = "appointment_reminder"
	KindWelcome                 Kind = "welcome"
	KindTrialEnding             Kind = "trial_ending"
	KindTrialExpired            Kind = "trial_expired"
	KindPaymentFailed           Kind = "payment_failed"
	KindSubscriptionCanceled    Kind = "subscription_canceled"
)

// Kinds lists every known notification kind, used for preference listings.
func Kinds() []Kind {
	return []Kind{
		KindAppointmentConfirmation,
		KindAppointmentReminder,
		KindWelcome,
		KindTrialEnding,
		KindTrialExpired,
		KindPaymentFailed,
		KindSubscriptionCanceled,
	}
}

// Payload is the closed set of template inputs. Each concrete payload type
// reports its kind, and the renderer switches over the concrete types, so a
// new kind cannot be added without a template.
//
// Date and time fields are display strings pre-formatted by the caller; the
// renderer performs no locale logic.
type Payload interface {
	Kind() Kind
}

// AppointmentConfirmationPayload confirms a newly booked visit to the owner.
type AppointmentConfirmationPayload struct {
	PetName         string `json:"pet_name" validate:"required"`
	OwnerName       string `json:"owner_name" validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
	ServiceName     string `json:"service_name" validate:"required"`
	ClinicName      string `json:"clinic_name" validate:"required"`
	ClinicAddress   string `json:"clinic_address,omitempty"`
	ClinicPhone     string `json:"clinic_phone,omitempty"`
	VetName         string `json:"vet_name,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func (AppointmentConfirmationPayload) Kind() Kind { return KindAppointmentConfirmation }

// AppointmentReminderPayload reminds the owner of an upcoming visit.
type AppointmentReminderPayload struct {
	PetName         string `json:"pet_name" validate:"required"`
	OwnerName       string `json:"owner_name" validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
	ServiceName     string `json:"service_name" validate:"required"`
	ClinicName      string `json:"clinic_name" validate:"required"`
	ClinicPhone     string `json:"clinic_phone,omitempty"`
}

func (AppointmentReminderPayload) Kind() Kind { return KindAppointmentReminder }

// WelcomePayload greets a new staff member.
type WelcomePayload struct {
	RecipientName string `json:"recipient_name" validate:"required"`
	ClinicName    string `json:"clinic_name" validate:"required"`
	LoginURL      string `json:"login_url" validate:"required"`
}

func (WelcomePayload) Kind() Kind { return KindWelcome }

// TrialEndingPayload warns the clinic admin that the trial runs out soon.
type TrialEndingPayload struct {
	ClinicName    string `json:"clinic_name" validate:"required"`
	DaysRemaining int    `json:"days_remaining"`
	TrialEndDate  string `json:"trial_end_date" validate:"required"`
	UpgradeURL    string `json:"upgrade_url" validate:"required"`
}

func (TrialEndingPayload) Kind() Kind { return KindTrialEnding }

// TrialExpiredPayload tells the clinic admin the trial is over.
type TrialExpiredPayload struct {
	ClinicName string `json:"clinic_name" validate:"required"`
	UpgradeURL string `json:"upgrade_url" validate:"required"`
}

func (TrialExpiredPayload) Kind() Kind { return KindTrialExpired }

// PaymentFailedPayload asks the clinic admin to update payment details.
type PaymentFailedPayload struct {
	ClinicName       string `json:"clinic_name" validate:"required"`
	PlanName         string `json:"plan_name" validate:"required"`
	BillingPortalURL string `json:"billing_portal_url" validate:"required"`
}

func (PaymentFailedPayload) Kind() Kind { return KindPaymentFailed }

// SubscriptionCanceledPayload confirms a cancellation and its effective date.
type SubscriptionCanceledPayload struct {
	ClinicName    string `json:"clinic_name" validate:"required"`
	PlanName      string `json:"plan_name" validate:"required"`
	AccessEndDate string `json:"access_end_date,omitempty"`
	UpgradeURL    string `json:"upgrade_url" validate:"required"`
}

func (SubscriptionCanceledPayload) Kind() Kind { return KindSubscriptionCanceled }

// ErrUnknownKind signals a kind string with no registered payload type. This
// is a programmer error surfaced loudly, never retried.
var ErrUnknownKind = fmt.Errorf("notification: unknown kind")

// PayloadFromJSON rebuilds a typed payload from its kind and serialized
// form. Background jobs use this to re-enter the typed world after a trip
// through Redis.
func PayloadFromJSON(kind Kind, data []byte) (Payload, error) {
	decode := func(target any) error {
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return nil
	}

	switch kind {
	case KindAppointmentConfirmation:
		var p AppointmentConfirmationPayload
		err := decode(&p)
		return p, err
	case KindAppointmentReminder:
		var p AppointmentReminderPayload
		err := decode(&p)
		return p, err
	case KindWelcome:
		var p WelcomePayload
		err := decode(&p)
		return p, err
	case KindTrialEnding:
		var p TrialEndingPayload
		err := decode(&p)
		return p, err
	case KindTrialExpired:
		var p TrialExpiredPayload
		err := decode(&p)
		return p, err
	case KindPaymentFailed:
		var p PaymentFailedPayload
		err := decode(&p)
		return p, err
	case KindSubscriptionCanceled:
		var p SubscriptionCanceledPayload
		err := decode(&p)
		return p, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
