package billing

import (
	"strings"

	"github.com/vetdeskhq/vetdesk/app/models"
)

// NormalizeStatus maps an arbitrary provider status string onto the closed
// set stored in ClinicSubscription. Unknown values read as inactive so a new
// provider status can never unlock access by accident.
func NormalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.SubscriptionStatusActive:
		return models.SubscriptionStatusActive
	case models.SubscriptionStatusTrialing:
		return models.SubscriptionStatusTrialing
	case models.SubscriptionStatusPastDue, "unpaid":
		return models.SubscriptionStatusPastDue
	case models.SubscriptionStatusCanceled, "cancelled", "expired":
		return models.SubscriptionStatusCanceled
	default:
		return models.SubscriptionStatusInactive
	}
}
