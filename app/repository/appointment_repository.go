package repository

import (
	"time"

	"github.com/vetdeskhq/vetdesk/app/models"
	"gorm.io/gorm"
)

// appointmentRepository implements the AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository instance
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

func (r *appointmentRepository) GetByID(clinicID, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.Where("clinic_id = ?", clinicID).First(&appointment, id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListForDay returns all appointments starting within the calendar day of the
// given time, in start order. The day boundary uses the time's own location.
func (r *appointmentRepository) ListForDay(clinicID uint, day time.Time) ([]models.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var appointments []models.Appointment
	err := r.db.Where("clinic_id = ? AND starts_at >= ? AND starts_at < ?", clinicID, start, end).
		Order("starts_at").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) Update(appointment *models.Appointment) error {
	return r.db.Save(appointment).Error
}
