package repository

import (
	"errors"
	"time"

	"github.com/vetdeskhq/vetdesk/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notificationPreferenceRepository implements NotificationPreferenceRepository
type notificationPreferenceRepository struct {
	db *gorm.DB
}

// NewNotificationPreferenceRepository creates a new preference repository instance
func NewNotificationPreferenceRepository(db *gorm.DB) NotificationPreferenceRepository {
	return &notificationPreferenceRepository{db: db}
}

// IsEnabled returns the stored toggle for (clinic, kind). A missing row means
// the clinic never opted out, so the kind is enabled.
func (r *notificationPreferenceRepository) IsEnabled(clinicID uint, kind string) (bool, error) {
	var pref models.NotificationPreference
	err := r.db.Where("clinic_id = ? AND kind = ?", clinicID, kind).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return pref.Enabled, nil
}

func (r *notificationPreferenceRepository) Set(clinicID uint, kind string, enabled bool) error {
	pref := &models.NotificationPreference{
		ClinicID: clinicID,
		Kind:     kind,
		Enabled:  enabled,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "clinic_id"},
			{Name: "kind"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(pref).Error
}

func (r *notificationPreferenceRepository) ListByClinic(clinicID uint) ([]models.NotificationPreference, error) {
	var prefs []models.NotificationPreference
	err := r.db.Where("clinic_id = ?", clinicID).Order("kind").Find(&prefs).Error
	return prefs, err
}

// notificationLogRepository implements NotificationLogRepository
type notificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository creates a new notification log repository instance
func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

func (r *notificationLogRepository) Create(log *models.NotificationLog) error {
	return r.db.Create(log).Error
}

func (r *notificationLogRepository) ListByClinic(clinicID uint, offset, limit int) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := r.db.Where("clinic_id = ?", clinicID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&logs).Error
	return logs, err
}

// CountSentSince counts successful sends, used for the monthly message quota.
func (r *notificationLogRepository) CountSentSince(clinicID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.NotificationLog{}).
		Where("clinic_id = ? AND success = ? AND created_at >= ?", clinicID, true, since).
		Count(&count).Error
	return count, err
}
