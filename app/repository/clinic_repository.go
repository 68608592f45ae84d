package repository

import (
	"github.com/vetdeskhq/vetdesk/app/models"
	"gorm.io/gorm"
)

// clinicRepository implements the ClinicRepository interface
type clinicRepository struct {
	db *gorm.DB
}

// NewClinicRepository creates a new clinic repository instance
func NewClinicRepository(db *gorm.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Create(clinic *models.Clinic) error {
	return r.db.Create(clinic).Error
}

func (r *clinicRepository) GetByID(id uint) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.db.First(&clinic, id).Error
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) GetBySubdomain(subdomain string) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.db.Where("subdomain = ?", subdomain).First(&clinic).Error
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(clinic *models.Clinic) error {
	return r.db.Save(clinic).Error
}

// CountPets counts non-deleted pets for usage tracking.
func (r *clinicRepository) CountPets(clinicID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Pet{}).Where("clinic_id = ?", clinicID).Count(&count).Error
	return count, err
}

// CountUsers counts non-deleted staff users for usage tracking.
func (r *clinicRepository) CountUsers(clinicID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("clinic_id = ?", clinicID).Count(&count).Error
	return count, err
}
