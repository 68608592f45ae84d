package repository

import (
	"strings"

	"github.com/vetdeskhq/vetdesk/app/models"
	"gorm.io/gorm"
)

// customerRepository implements the CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository instance
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepository) GetByID(clinicID, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Preload("Pets").Where("clinic_id = ?", clinicID).First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByEmail looks up a customer by exact email within a clinic. Used by the
// quick-booking flow to attach a booking to an existing customer record.
func (r *customerRepository) FindByEmail(clinicID uint, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Preload("Pets").
		Where("clinic_id = ? AND email = ?", clinicID, strings.ToLower(strings.TrimSpace(email))).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByPhone matches on digits only so formatting differences don't matter.
func (r *customerRepository) FindByPhone(clinicID uint, phone string) (*models.Customer, error) {
	digits := strings.Map(func(ch rune) rune {
		if ch >= '0' && ch <= '9' {
			return ch
		}
		return -1
	}, phone)
	if digits == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var customer models.Customer
	err := r.db.Preload("Pets").
		Where("clinic_id = ? AND REPLACE(REPLACE(REPLACE(REPLACE(phone, ' ', ''), '-', ''), '(', ''), ')', '') LIKE ?", clinicID, "%"+digits).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) ListByClinic(clinicID uint, offset, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Where("clinic_id = ?", clinicID).
		Order("last_name, first_name").
		Offset(offset).Limit(limit).
		Find(&customers).Error
	return customers, err
}
