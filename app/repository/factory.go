package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetClinicRepository returns the clinic repository instance
func (f *Factory) GetClinicRepository() ClinicRepository {
	return f.GetRepositories().Clinic
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetCustomerRepository returns the customer repository instance
func (f *Factory) GetCustomerRepository() CustomerRepository {
	return f.GetRepositories().Customer
}

// GetAppointmentRepository returns the appointment repository instance
func (f *Factory) GetAppointmentRepository() AppointmentRepository {
	return f.GetRepositories().Appointment
}

// GetSubscriptionRepository returns the subscription repository instance
func (f *Factory) GetSubscriptionRepository() SubscriptionRepository {
	return f.GetRepositories().Subscription
}

// GetNotificationPreferenceRepository returns the preference repository instance
func (f *Factory) GetNotificationPreferenceRepository() NotificationPreferenceRepository {
	return f.GetRepositories().Preference
}

// GetNotificationLogRepository returns the notification log repository instance
func (f *Factory) GetNotificationLogRepository() NotificationLogRepository {
	return f.GetRepositories().NotificationLog
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
