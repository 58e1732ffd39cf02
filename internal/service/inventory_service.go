package service

import (
	"errors"
	"fmt"
	"time"

	"emergency-bed-booking/internal/models"
	"emergency-bed-booking/internal/repository"
)

// InventoryService exposes read access to bed availability and the
// explicitly audited administrative capacity adjustments. Adjustments are a
// separate action kind from booking and release so the ledger always shows
// who changed capacity and why.
type InventoryService struct {
	stores       repository.Stores
	hospitalRepo HospitalStore
	auditRepo    AuditSink
}

func NewInventoryService(
	stores repository.Stores,
	hospitalRepo HospitalStore,
	auditRepo AuditSink,
) *InventoryService {
	return &InventoryService{
		stores:       stores,
		hospitalRepo: hospitalRepo,
		auditRepo:    auditRepo,
	}
}

// GetAvailability returns the live per-category counts for every active
// hospital. Read-only; safe for unauthenticated polling.
func (s *InventoryService) GetAvailability() ([]models.HospitalAvailability, error) {
	hospitals, err := s.hospitalRepo.GetAllHospitals()
	if err != nil {
		return nil, err
	}
	availability := make([]models.HospitalAvailability, 0, len(hospitals))
	for _, h := range hospitals {
		availability = append(availability, models.HospitalAvailability{
			Code:           h.Code,
			Name:           h.Name,
			NormalBeds:     h.NormalBeds,
			HICUBeds:       h.HICUBeds,
			ICUBeds:        h.ICUBeds,
			VentilatorBeds: h.VentilatorBeds,
			TotalAvailable: h.TotalAvailable(),
			UpdatedAt:      h.UpdatedAt,
		})
	}
	return availability, nil
}

// GetCount returns the available count for one (hospital, category) pair.
func (s *InventoryService) GetCount(hcode string, category models.BedCategory) (int, error) {
	return s.stores.Inventory().GetCount(hcode, category)
}

// Adjust applies an administrative capacity delta to one category and writes
// an admin_adjust ledger entry in the same transaction. Reducing capacity
// below zero available beds is rejected the same way an overbooking is.
func (s *InventoryService) Adjust(hcode string, category models.BedCategory, delta int, actorID uint) (*models.LedgerEntry, error) {
	if delta == 0 {
		return nil, errors.New("adjustment delta must be non-zero")
	}

	var entry *models.LedgerEntry
	err := s.stores.Atomically(func(tx repository.Stores) error {
		before, after, err := tx.Inventory().ApplyDelta(hcode, category, delta)
		if err != nil {
			return err
		}
		entry = &models.LedgerEntry{
			HospitalCode: hcode,
			Category:     category,
			CountBefore:  before,
			CountAfter:   after,
			Action:       models.LedgerAdminAdjust,
			ActorID:      actorID,
		}
		return tx.Ledger().Append(entry)
	})
	if err != nil {
		return nil, err
	}

	actorIDPtr := &actorID
	details := fmt.Sprintf("Adjusted %s beds at %s by %+d (%d -> %d)",
		category, hcode, delta, entry.CountBefore, entry.CountAfter)
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "inventory_adjust", details)

	return entry, nil
}

// QueryLedger returns a hospital's inventory history at or after since,
// oldest first.
func (s *InventoryService) QueryLedger(hcode string, since time.Time) ([]models.LedgerEntry, error) {
	if _, err := s.hospitalRepo.GetHospitalByCode(hcode); err != nil {
		return nil, err
	}
	return s.stores.Ledger().Query(hcode, since)
}
