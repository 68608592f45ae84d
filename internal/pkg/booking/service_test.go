package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vetdeskhq/vetdesk/app/models"
)

type fakeClinicRepo struct {
	clinic *models.Clinic
}

func (f *fakeClinicRepo) Create(*models.Clinic) error { return nil }
func (f *fakeClinicRepo) GetByID(id uint) (*models.Clinic, error) {
	if f.clinic == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.clinic, nil
}
func (f *fakeClinicRepo) GetBySubdomain(string) (*models.Clinic, error) { return f.clinic, nil }
func (f *fakeClinicRepo) Update(*models.Clinic) error                   { return nil }
func (f *fakeClinicRepo) CountPets(uint) (int64, error)                 { return 0, nil }
func (f *fakeClinicRepo) CountUsers(uint) (int64, error)                { return 0, nil }

type fakeCustomerRepo struct {
	byEmail    *models.Customer
	byPhone    *models.Customer
	emailCalls int
	phoneCalls int
}

func (f *fakeCustomerRepo) Create(*models.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(uint, uint) (*models.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCustomerRepo) FindByEmail(clinicID uint, email string) (*models.Customer, error) {
	f.emailCalls++
	if f.byEmail == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.byEmail, nil
}
func (f *fakeCustomerRepo) FindByPhone(clinicID uint, phone string) (*models.Customer, error) {
	f.phoneCalls++
	if f.byPhone == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.byPhone, nil
}
func (f *fakeCustomerRepo) ListByClinic(uint, int, int) ([]models.Customer, error) { return nil, nil }

type fakeAppointmentRepo struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentRepo) Create(*models.Appointment) error { return nil }
func (f *fakeAppointmentRepo) GetByID(uint, uint) (*models.Appointment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAppointmentRepo) ListForDay(clinicID uint, day time.Time) ([]models.Appointment, error) {
	return f.appointments, nil
}
func (f *fakeAppointmentRepo) Update(*models.Appointment) error { return nil }

func TestServiceAvailability(t *testing.T) {
	clinics := &fakeClinicRepo{clinic: &models.Clinic{
		ID:          1,
		Timezone:    "UTC",
		OpeningHour: 9,
		ClosingHour: 11,
	}}
	appointments := &fakeAppointmentRepo{appointments: []models.Appointment{
		{
			ClinicID: 1,
			StartsAt: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC),
			Status:   models.AppointmentStatusScheduled,
		},
	}}
	svc := NewService(clinics, &fakeCustomerRepo{}, appointments)

	slots, err := svc.Availability(1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 30*time.Minute)
	require.NoError(t, err)
	assert.Len(t, slots, 3)
}

func TestServiceAvailabilityUnknownTimezoneFallsBackToUTC(t *testing.T) {
	clinics := &fakeClinicRepo{clinic: &models.Clinic{
		ID:          1,
		Timezone:    "Not/AZone",
		OpeningHour: 9,
		ClosingHour: 10,
	}}
	svc := NewService(clinics, &fakeCustomerRepo{}, &fakeAppointmentRepo{})

	slots, err := svc.Availability(1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 30*time.Minute)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestServiceLookupCustomerEmailWins(t *testing.T) {
	customers := &fakeCustomerRepo{
		byEmail: &models.Customer{ID: 10, Email: "jo@example.com"},
		byPhone: &models.Customer{ID: 20},
	}
	svc := NewService(&fakeClinicRepo{}, customers, &fakeAppointmentRepo{})

	customer, err := svc.LookupCustomer(1, "jo@example.com", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, uint(10), customer.ID)
	assert.Zero(t, customers.phoneCalls)
}

func TestServiceLookupCustomerFallsBackToPhone(t *testing.T) {
	customers := &fakeCustomerRepo{byPhone: &models.Customer{ID: 20}}
	svc := NewService(&fakeClinicRepo{}, customers, &fakeAppointmentRepo{})

	customer, err := svc.LookupCustomer(1, "unknown@example.com", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, uint(20), customer.ID)
	assert.Equal(t, 1, customers.emailCalls)
	assert.Equal(t, 1, customers.phoneCalls)
}

func TestServiceLookupCustomerEmailOnlyMiss(t *testing.T) {
	svc := NewService(&fakeClinicRepo{}, &fakeCustomerRepo{}, &fakeAppointmentRepo{})

	_, err := svc.LookupCustomer(1, "unknown@example.com", "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestServiceLookupCustomerWithoutCriteria(t *testing.T) {
	svc := NewService(&fakeClinicRepo{}, &fakeCustomerRepo{}, &fakeAppointmentRepo{})

	_, err := svc.LookupCustomer(1, "", "")
	assert.ErrorIs(t, err, ErrNoLookupCriteria)
}
