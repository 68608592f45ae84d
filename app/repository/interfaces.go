package repository

import (
	"time"

	"github.com/vetdeskhq/vetdesk/app/models"
	"gorm.io/gorm"
)

// ClinicRepository defines the interface for clinic (tenant) database operations
type ClinicRepository interface {
	Create(clinic *models.Clinic) error
	GetByID(id uint) (*models.Clinic, error)
	GetBySubdomain(subdomain string) (*models.Clinic, error)
	Update(clinic *models.Clinic) error
	CountPets(clinicID uint) (int64, error)
	CountUsers(clinicID uint) (int64, error)
}

// UserRepository defines the interface for staff user database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, error)
	Update(user *models.User) error
	TouchAPIKeyUsage(userID uint, at time.Time) error
}

// CustomerRepository defines the interface for pet-owner database operations
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(clinicID, id uint) (*models.Customer, error)
	FindByEmail(clinicID uint, email string) (*models.Customer, error)
	FindByPhone(clinicID uint, phone string) (*models.Customer, error)
	ListByClinic(clinicID uint, offset, limit int) ([]models.Customer, error)
}

// AppointmentRepository defines the interface for appointment database operations
type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	GetByID(clinicID, id uint) (*models.Appointment, error)
	ListForDay(clinicID uint, day time.Time) ([]models.Appointment, error)
	Update(appointment *models.Appointment) error
}

// SubscriptionRepository defines the interface for the mirrored billing facts
type SubscriptionRepository interface {
	GetByClinicID(clinicID uint) (*models.ClinicSubscription, error)
	Upsert(sub *models.ClinicSubscription) error
	ListClinicIDsWithProviderCustomer() ([]uint, error)
}

// NotificationPreferenceRepository stores per-clinic notification toggles.
type NotificationPreferenceRepository interface {
	// IsEnabled returns the stored toggle for (clinic, kind); kinds without a
	// stored row default to enabled.
	IsEnabled(clinicID uint, kind string) (bool, error)
	Set(clinicID uint, kind string, enabled bool) error
	ListByClinic(clinicID uint) ([]models.NotificationPreference, error)
}

// NotificationLogRepository persists immutable send-attempt records.
type NotificationLogRepository interface {
	Create(log *models.NotificationLog) error
	ListByClinic(clinicID uint, offset, limit int) ([]models.NotificationLog, error)
	CountSentSince(clinicID uint, since time.Time) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Clinic          ClinicRepository
	User            UserRepository
	Customer        CustomerRepository
	Appointment     AppointmentRepository
	Subscription    SubscriptionRepository
	Preference      NotificationPreferenceRepository
	NotificationLog NotificationLogRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Clinic:          NewClinicRepository(db),
		User:            NewUserRepository(db),
		Customer:        NewCustomerRepository(db),
		Appointment:     NewAppointmentRepository(db),
		Subscription:    NewSubscriptionRepository(db),
		Preference:      NewNotificationPreferenceRepository(db),
		NotificationLog: NewNotificationLogRepository(db),
	}
}
