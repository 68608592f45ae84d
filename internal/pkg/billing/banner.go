package billing

import "github.com/vetdeskhq/vetdesk/app/models"

// Banner identifies the single subscription notice the dashboard shows, if any.
type Banner string

const (
	BannerTrialExpired   Banner = "trial_expired"
	BannerPastDue        Banner = "past_due"
	BannerCanceled       Banner = "canceled"
	BannerTrialEnding    Banner = "trial_ending"
	BannerTrialActive    Banner = "trial_active"
	BannerNoSubscription Banner = "no_subscription"
	BannerNone           Banner = "none"
)

// TrialEndingThresholdDays is the remaining-day count at which the trial
// notice switches from informational to urgent.
const TrialEndingThresholdDays = 3

// SelectBanner picks exactly one banner for a derived view. The precedence
// order is load-bearing: it decides which single message a user sees when
// several conditions hold at once.
func SelectBanner(view DerivedView) Banner {
	switch {
	case view.TrialExpired:
		return BannerTrialExpired
	case view.Status == models.SubscriptionStatusPastDue:
		return BannerPastDue
	case view.Status == models.SubscriptionStatusCanceled:
		return BannerCanceled
	case view.IsInTrial && view.DaysRemaining != nil && *view.DaysRemaining <= TrialEndingThresholdDays:
		return BannerTrialEnding
	case view.IsInTrial && view.DaysRemaining != nil:
		return BannerTrialActive
	case view.IsInTrial:
		// Trial without a known end date: suppress date-driven messaging.
		return BannerNone
	case view.Status == models.SubscriptionStatusInactive:
		return BannerNoSubscription
	default:
		return BannerNone
	}
}
