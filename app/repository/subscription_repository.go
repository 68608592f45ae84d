package repository

import (
	"github.com/vetdeskhq/vetdesk/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetByClinicID(clinicID uint) (*models.ClinicSubscription, error) {
	var sub models.ClinicSubscription
	err := r.db.Where("clinic_id = ?", clinicID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert writes the mirrored provider facts, one row per clinic.
func (r *subscriptionRepository) Upsert(sub *models.ClinicSubscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "clinic_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"status",
			"is_trial_period",
			"trial_ends_at",
			"subscription_ends_at",
			"plan_name",
			"provider_customer_id",
			"provider_subscription_id",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("clinic_id = ?", sub.ClinicID).First(sub).Error
}

// ListClinicIDsWithProviderCustomer returns every clinic that has a billing
// customer at the provider, for the periodic reconcile sweep.
func (r *subscriptionRepository) ListClinicIDsWithProviderCustomer() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ClinicSubscription{}).
		Where("provider_customer_id <> ''").
		Pluck("clinic_id", &ids).Error
	return ids, err
}
