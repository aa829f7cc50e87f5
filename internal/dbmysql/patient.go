package dbmysql

import (
	"time"

	"gorm.io/gorm"
)

// Patient mirrors the site's patient directory. The messaging core only
// reads it to resolve roster entries; CRUD lives with the portal backend.
type Patient struct {
	PatientID string         `gorm:"primaryKey;column:patient_id;size:64"`
	FullName  string         `gorm:"column:full_name;size:255;not null"`
	AvatarURL *string        `gorm:"column:avatar_url;size:512"`
	Status    string         `gorm:"column:status;type:enum('active','discharged');default:'active'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Patient) TableName() string { return "patients" }
