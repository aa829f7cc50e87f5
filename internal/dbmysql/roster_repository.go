package dbmysql

import (
	"context"

	"gorm.io/gorm"
)

// PatientRepository lists directory rows for roster resolution.
type PatientRepository interface {
	ListActive(ctx context.Context) ([]*Patient, error)
}

// CaregiverRepository lists directory rows for roster resolution.
type CaregiverRepository interface {
	ListActive(ctx context.Context) ([]*Caregiver, error)
}

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) ListActive(ctx context.Context) ([]*Patient, error) {
	var patients []*Patient
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("full_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

type caregiverRepository struct {
	db *gorm.DB
}

func NewCaregiverRepository(db *gorm.DB) CaregiverRepository {
	return &caregiverRepository{db: db}
}

func (r *caregiverRepository) ListActive(ctx context.Context) ([]*Caregiver, error) {
	var caregivers []*Caregiver
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("full_name ASC").
		Find(&caregivers).Error
	if err != nil {
		return nil, err
	}
	return caregivers, nil
}
