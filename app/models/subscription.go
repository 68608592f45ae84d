package models

import "time"

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusInactive = "inactive"
)

// ClinicSubscription mirrors the billing provider's view of a clinic's
// subscription. It is written by the provider sync path and read by the
// subscription state resolver; derived state is never stored here.
type ClinicSubscription struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	ClinicID               uint       `gorm:"not null;uniqueIndex" json:"clinic_id"`
	Status                 string     `gorm:"type:varchar(32);not null;default:'inactive';index" json:"status"`
	IsTrialPeriod          bool       `gorm:"default:false" json:"is_trial_period"`
	TrialEndsAt            *time.Time `gorm:"type:timestamp;default:null" json:"trial_ends_at,omitempty"`
	SubscriptionEndsAt     *time.Time `gorm:"type:timestamp;default:null" json:"subscription_ends_at,omitempty"`
	PlanName               string     `gorm:"type:varchar(50);not null;default:'trial'" json:"plan_name"`
	ProviderCustomerID     string     `gorm:"type:varchar(191);index" json:"provider_customer_id"`
	ProviderSubscriptionID string     `gorm:"type:varchar(191);index" json:"provider_subscription_id"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
