package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCanceled  = "canceled"
	AppointmentStatusNoShow    = "no_show"
)

// Appointment is a booked visit for one pet at a clinic.
type Appointment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ClinicID    uint           `gorm:"not null;index:idx_appointments_clinic_start,priority:1" json:"clinic_id"`
	CustomerID  uint           `gorm:"not null;index" json:"customer_id"`
	PetID       uint           `gorm:"not null;index" json:"pet_id"`
	VetUserID   uint           `gorm:"index" json:"vet_user_id"`
	ServiceName string         `gorm:"type:varchar(150)" json:"service_name"`
	StartsAt    time.Time      `gorm:"not null;index:idx_appointments_clinic_start,priority:2" json:"starts_at"`
	EndsAt      time.Time      `gorm:"not null" json:"ends_at"`
	Status      string         `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status" validate:"oneof=scheduled confirmed completed canceled no_show"`
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BlocksSlot reports whether this appointment occupies calendar time.
// Canceled and no-show visits do not block the slot for new bookings.
func (a *Appointment) BlocksSlot() bool {
	return a.Status != AppointmentStatusCanceled && a.Status != AppointmentStatusNoShow
}
