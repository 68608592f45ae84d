package models

import (
	"time"

	"gorm.io/gorm"
)

// Pet belongs to a customer within a clinic.
type Pet struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ClinicID   uint           `gorm:"not null;index" json:"clinic_id"`
	CustomerID uint           `gorm:"not null;index" json:"customer_id"`
	Name       string         `gorm:"type:varchar(100)" json:"name" validate:"required,max=100"`
	Species    string         `gorm:"type:varchar(50)" json:"species"`
	Breed      string         `gorm:"type:varchar(100)" json:"breed"`
	BirthDate  *time.Time     `gorm:"type:date;default:null" json:"birth_date,omitempty"`
	WeightKg   float64        `gorm:"default:0" json:"weight_kg"`
	Notes      string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
