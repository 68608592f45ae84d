package models

import (
	"time"

	"gorm.io/gorm"
)

// Clinic is the tenant root. Every staff user, customer, pet and appointment
// belongs to exactly one clinic, and billing state is tracked per clinic.
type Clinic struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Subdomain        string         `gorm:"type:varchar(63);uniqueIndex;not null" json:"subdomain" validate:"required,min=2,max=63"`
	Email            string         `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email"`
	Phone            string         `gorm:"type:varchar(30)" json:"phone"`
	Address          string         `gorm:"type:varchar(255)" json:"address"`
	Timezone         string         `gorm:"type:varchar(64);default:'UTC'" json:"timezone"`
	OpeningHour      int            `gorm:"default:9" json:"opening_hour"`
	ClosingHour      int            `gorm:"default:17" json:"closing_hour"`
	StorageUsedBytes int64          `gorm:"default:0" json:"storage_used_bytes"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
