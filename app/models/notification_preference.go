package models

import "time"

// NotificationPreference is a per-clinic opt-in toggle for one notification
// kind. Absence of a row means the kind is enabled (defaults apply); an
// explicit row carries the stored choice.
type NotificationPreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClinicID  uint      `gorm:"not null;index:ux_notification_prefs_clinic_kind,unique,priority:1" json:"clinic_id"`
	Kind      string    `gorm:"type:varchar(50);not null;index:ux_notification_prefs_clinic_kind,unique,priority:2" json:"kind"`
	Enabled   bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
