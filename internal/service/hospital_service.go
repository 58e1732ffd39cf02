package service

import (
	"fmt"

	"emergency-bed-booking/internal/models"
)

// HospitalService handles hospital onboarding and staff assignment. Initial
// bed capacity runs through the inventory service so onboarding leaves the
// same audit trail as any later adjustment.
type HospitalService struct {
	hospitalRepo HospitalStore
	inventory    *InventoryService
	auditRepo    AuditSink
}

func NewHospitalService(
	hospitalRepo HospitalStore,
	inventory *InventoryService,
	auditRepo AuditSink,
) *HospitalService {
	return &HospitalService{
		hospitalRepo: hospitalRepo,
		inventory:    inventory,
		auditRepo:    auditRepo,
	}
}

// GetAllHospitals retrieves all active hospitals
func (s *HospitalService) GetAllHospitals() ([]models.Hospital, error) {
	return s.hospitalRepo.GetAllHospitals()
}

// GetHospitalByCode retrieves a hospital by its code
func (s *HospitalService) GetHospitalByCode(code string) (*models.Hospital, error) {
	return s.hospitalRepo.GetHospitalByCode(code)
}

// InitialCapacity holds the bed counts a hospital is onboarded with.
type InitialCapacity struct {
	Normal     int
	HICU       int
	ICU        int
	Ventilator int
}

// CreateHospital onboards a new hospital (admin only). The row is created
// with zero counters; initial capacity is applied per category as audited
// admin adjustments.
func (s *HospitalService) CreateHospital(hospital *models.Hospital, capacity InitialCapacity, adminID uint) error {
	hospital.NormalBeds = 0
	hospital.HICUBeds = 0
	hospital.ICUBeds = 0
	hospital.VentilatorBeds = 0
	hospital.IsActive = true

	if err := s.hospitalRepo.CreateHospital(hospital); err != nil {
		return err
	}

	initial := map[models.BedCategory]int{
		models.BedNormal:     capacity.Normal,
		models.BedHICU:       capacity.HICU,
		models.BedICU:        capacity.ICU,
		models.BedVentilator: capacity.Ventilator,
	}
	for _, category := range models.BedCategories {
		if initial[category] <= 0 {
			continue
		}
		if _, err := s.inventory.Adjust(hospital.Code, category, initial[category], adminID); err != nil {
			return fmt.Errorf("failed to set initial %s capacity: %w", category, err)
		}
	}

	adminIDPtr := &adminID
	details := fmt.Sprintf("Created hospital: %s (code: %s)", hospital.Name, hospital.Code)
	_ = s.auditRepo.CreateAuditLog(adminIDPtr, "hospital_create", details)

	return nil
}

// UpdateHospital updates a hospital's descriptive fields (admin only).
// Counters are not touched here.
func (s *HospitalService) UpdateHospital(hospital *models.Hospital, adminID uint) error {
	if err := s.hospitalRepo.UpdateHospital(hospital); err != nil {
		return err
	}

	adminIDPtr := &adminID
	details := fmt.Sprintf("Updated hospital: %s (code: %s)", hospital.Name, hospital.Code)
	_ = s.auditRepo.CreateAuditLog(adminIDPtr, "hospital_update", details)

	return nil
}

// DeactivateHospital soft deletes a hospital (admin only).
func (s *HospitalService) DeactivateHospital(code string, adminID uint) error {
	hospital, err := s.hospitalRepo.GetHospitalByCode(code)
	if err != nil {
		return err
	}

	if err := s.hospitalRepo.DeactivateHospital(code); err != nil {
		return err
	}

	adminIDPtr := &adminID
	details := fmt.Sprintf("Deactivated hospital: %s (code: %s)", hospital.Name, code)
	_ = s.auditRepo.CreateAuditLog(adminIDPtr, "hospital_deactivate", details)

	return nil
}
