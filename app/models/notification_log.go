package models

import "time"

// NotificationLog records a single send attempt. Rows are immutable once
// written; failed sends stay discoverable here even though they are not
// retried automatically.
type NotificationLog struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ClinicID          uint      `gorm:"not null;index:idx_notification_logs_clinic_created,priority:1" json:"clinic_id"`
	Kind              string    `gorm:"type:varchar(50);not null;index" json:"kind"`
	RecipientEmail    string    `gorm:"type:varchar(200);not null" json:"recipient_email"`
	RecipientName     string    `gorm:"type:varchar(150)" json:"recipient_name"`
	PayloadJSON       string    `gorm:"type:longtext" json:"payload_json"`
	Success           bool      `gorm:"not null;default:false;index" json:"success"`
	ProviderMessageID string    `gorm:"type:varchar(191)" json:"provider_message_id"`
	ErrorMessage      string    `gorm:"type:text" json:"error_message"`
	StatusCode        int       `gorm:"default:0" json:"status_code"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index:idx_notification_logs_clinic_created,priority:2" json:"created_at"`
}
