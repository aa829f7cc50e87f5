package dbmysql

import (
	"time"

	"gorm.io/gorm"
)

// Caregiver mirrors the site's caregiver directory.
type Caregiver struct {
	CaregiverID string         `gorm:"primaryKey;column:caregiver_id;size:64"`
	FullName    string         `gorm:"column:full_name;size:255;not null"`
	AvatarURL   *string        `gorm:"column:avatar_url;size:512"`
	Status      string         `gorm:"column:status;type:enum('active','inactive');default:'active'"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Caregiver) TableName() string { return "caregivers" }
