package repository

import (
	"errors"

	"emergency-bed-booking/internal/models"

	"gorm.io/gorm"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// GetAllHospitals retrieves all active hospitals
func (r *HospitalRepository) GetAllHospitals() ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&hospitals).Error
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return hospitals, nil
}

// GetHospitalByCode retrieves a hospital by its unique code
func (r *HospitalRepository) GetHospitalByCode(code string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.Where("code = ? AND is_active = ?", code, true).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, mapStorageErr(err)
	}
	return &hospital, nil
}

// CreateHospital creates a new hospital
func (r *HospitalRepository) CreateHospital(hospital *models.Hospital) error {
	var n int64
	if err := r.db.Model(&models.Hospital{}).Where("code = ?", hospital.Code).Count(&n).Error; err != nil {
		return mapStorageErr(err)
	}
	if n > 0 {
		return ErrDuplicateHospitalCode
	}
	if err := r.db.Create(hospital).Error; err != nil {
		return mapStorageErr(err)
	}
	return nil
}

// UpdateHospital updates a hospital's descriptive fields. Bed counters are
// excluded here on purpose: they change only through the inventory store.
func (r *HospitalRepository) UpdateHospital(hospital *models.Hospital) error {
	res := r.db.Model(&models.Hospital{}).
		Where("code = ? AND is_active = ?", hospital.Code, true).
		Updates(map[string]interface{}{
			"name":    hospital.Name,
			"address": hospital.Address,
			"city":    hospital.City,
		})
	if res.Error != nil {
		return mapStorageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrHospitalNotFound
	}
	return nil
}

// DeactivateHospital soft deletes a hospital by setting is_active to false
func (r *HospitalRepository) DeactivateHospital(code string) error {
	res := r.db.Model(&models.Hospital{}).
		Where("code = ? AND is_active = ?", code, true).
		Update("is_active", false)
	if res.Error != nil {
		return mapStorageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrHospitalNotFound
	}
	return nil
}
