package billing

import (
	"math"
	"time"

	"github.com/vetdeskhq/vetdesk/app/models"
)

// Facts are the raw subscription fields mirrored from the billing provider.
// The resolver consumes them as an immutable snapshot.
type Facts struct {
	Status                 string
	IsTrialPeriod          bool
	TrialEndsAt            *time.Time
	SubscriptionEndsAt     *time.Time
	PlanName               string
	ProviderSubscriptionID string
}

// DerivedView is the per-request subscription state computed from Facts.
// It is never persisted; callers resolve it fresh on every read.
type DerivedView struct {
	Status                string     `json:"status"`
	PlanName              string     `json:"plan_name"`
	HasActiveSubscription bool       `json:"has_active_subscription"`
	NeedsPayment          bool       `json:"needs_payment"`
	IsInTrial             bool       `json:"is_in_trial"`
	TrialExpired          bool       `json:"trial_expired"`
	EffectiveEndDate      *time.Time `json:"effective_end_date,omitempty"`
	// DaysRemaining is signed: negative values count days since expiry.
	// Nil when no effective end date exists, which suppresses all
	// date-dependent messaging instead of failing.
	DaysRemaining *int `json:"days_remaining,omitempty"`
}

// FactsFromModel builds resolver input from the stored provider mirror.
func FactsFromModel(sub *models.ClinicSubscription) Facts {
	if sub == nil {
		return Facts{Status: models.SubscriptionStatusInactive}
	}
	return Facts{
		Status:                 sub.Status,
		IsTrialPeriod:          sub.IsTrialPeriod,
		TrialEndsAt:            sub.TrialEndsAt,
		SubscriptionEndsAt:     sub.SubscriptionEndsAt,
		PlanName:               sub.PlanName,
		ProviderSubscriptionID: sub.ProviderSubscriptionID,
	}
}

// Resolve derives the subscription view from raw provider facts. It is pure
// and deterministic for a fixed now, and it never panics: missing optional
// fields degrade to suppressed date outputs.
func Resolve(facts Facts, now time.Time) DerivedView {
	status := NormalizeStatus(facts.Status)

	view := DerivedView{
		Status:                status,
		PlanName:              facts.PlanName,
		HasActiveSubscription: status == models.SubscriptionStatusActive || status == models.SubscriptionStatusTrialing,
		NeedsPayment:          status == models.SubscriptionStatusPastDue || status == models.SubscriptionStatusCanceled,
		IsInTrial:             status == models.SubscriptionStatusTrialing && facts.IsTrialPeriod,
	}

	if view.IsInTrial {
		view.EffectiveEndDate = facts.TrialEndsAt
	} else {
		view.EffectiveEndDate = facts.SubscriptionEndsAt
	}

	if view.EffectiveEndDate != nil {
		days := wholeDaysUntil(*view.EffectiveEndDate, now)
		view.DaysRemaining = &days
	}

	// A stale TRIALING status after the provider's trial actually ended, with
	// no paid subscription attached, reads as expired rather than active.
	// Covers the window before the provider webhook lands.
	if view.IsInTrial &&
		facts.TrialEndsAt != nil &&
		facts.TrialEndsAt.Before(now) &&
		facts.ProviderSubscriptionID == "" {
		view.TrialExpired = true
		view.IsInTrial = false
		view.HasActiveSubscription = false
	}

	return view
}

// wholeDaysUntil returns the signed whole-day distance from now to end.
// Partial remaining days round up, so "ends in an hour" is 1 day left and
// "ended an hour ago" is 0 days, while "ended yesterday" is -1.
func wholeDaysUntil(end, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}
