package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a pet owner registered with a clinic.
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ClinicID  uint           `gorm:"not null;index" json:"clinic_id"`
	FirstName string         `gorm:"type:varchar(100)" json:"first_name" validate:"required,max=100"`
	LastName  string         `gorm:"type:varchar(100)" json:"last_name" validate:"required,max=100"`
	Email     string         `gorm:"type:varchar(200);index" json:"email" validate:"omitempty,email"`
	Phone     string         `gorm:"type:varchar(30);index" json:"phone"`
	Notes     string         `gorm:"type:text" json:"notes"`
	Pets      []Pet          `gorm:"foreignKey:CustomerID" json:"pets,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullName returns the display name used in notifications and lists.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
