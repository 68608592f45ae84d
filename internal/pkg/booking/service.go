package booking

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vetdeskhq/vetdesk/app/models"
	"github.com/vetdeskhq/vetdesk/app/repository"
)

// ErrNoLookupCriteria is returned when a customer lookup carries neither an
// email nor a phone number.
var ErrNoLookupCriteria = errors.New("booking: lookup requires an email or phone number")

// Service answers the quick-booking questions: which slots are free on a
// given day, and does this owner already exist.
type Service struct {
	clinics      repository.ClinicRepository
	customers    repository.CustomerRepository
	appointments repository.AppointmentRepository
}

func NewService(clinics repository.ClinicRepository, customers repository.CustomerRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{clinics: clinics, customers: customers, appointments: appointments}
}

// Availability returns the free slots for a clinic day in the clinic's
// timezone.
func (s *Service) Availability(clinicID uint, day time.Time, slotLength time.Duration) ([]Slot, error) {
	clinic, err := s.clinics.GetByID(clinicID)
	if err != nil {
		return nil, fmt.Errorf("load clinic %d: %w", clinicID, err)
	}

	loc, err := time.LoadLocation(clinic.Timezone)
	if err != nil {
		loc = time.UTC
	}
	day = day.In(loc)

	appointments, err := s.appointments.ListForDay(clinicID, day)
	if err != nil {
		return nil, fmt.Errorf("list appointments for clinic %d: %w", clinicID, err)
	}

	return FreeSlots(clinic, appointments, day, slotLength), nil
}

// LookupCustomer finds an existing owner record by email or phone. Email
// wins when both are given; a phone match is only attempted when the email
// finds nothing.
func (s *Service) LookupCustomer(clinicID uint, email, phone string) (*models.Customer, error) {
	if email == "" && phone == "" {
		return nil, ErrNoLookupCriteria
	}

	if email != "" {
		customer, err := s.customers.FindByEmail(clinicID, email)
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if phone == "" {
			return nil, err
		}
	}

	return s.customers.FindByPhone(clinicID, phone)
}
