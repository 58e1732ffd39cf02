package repository

import (
	"time"

	"emergency-bed-booking/internal/models"

	"gorm.io/gorm"
)

// LedgerStore is the append-only history of inventory mutations.
type LedgerStore interface {
	// Append records one mutation. Entries are never updated or deleted.
	Append(entry *models.LedgerEntry) error

	// Query returns the entries for a hospital at or after since, oldest
	// first. The result is a finite slice; repeated calls with the same
	// arguments are independent.
	Query(hcode string, since time.Time) ([]models.LedgerEntry, error)

	// Latest returns the most recent entry for a (hospital, category) pair,
	// or ErrHospitalNotFound if none exists.
	Latest(hcode string, category models.BedCategory) (*models.LedgerEntry, error)
}

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append records one mutation.
func (r *LedgerRepository) Append(entry *models.LedgerEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return mapStorageErr(err)
	}
	return nil
}

// Query returns the ledger for a hospital at or after since, oldest first.
func (r *LedgerRepository) Query(hcode string, since time.Time) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	q := r.db.Where("hospital_code = ?", hcode)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	err := q.Order("created_at ASC, id ASC").Find(&entries).Error
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return entries, nil
}

// Latest returns the newest entry for a (hospital, category) pair.
func (r *LedgerRepository) Latest(hcode string, category models.BedCategory) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := r.db.Where("hospital_code = ? AND category = ?", hcode, category).
		Order("id DESC").
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrHospitalNotFound
		}
		return nil, mapStorageErr(err)
	}
	return &entry, nil
}

// MaxID returns the highest ledger entry id, or 0 when the ledger is empty.
func (r *LedgerRepository) MaxID() (uint, error) {
	var maxID *uint
	err := r.db.Model(&models.LedgerEntry{}).Select("MAX(id)").Scan(&maxID).Error
	if err != nil {
		return 0, mapStorageErr(err)
	}
	if maxID == nil {
		return 0, nil
	}
	return *maxID, nil
}

// EntriesAfter returns up to limit entries with ID greater than lastID,
// across all hospitals, oldest first. Used by the notifier worker to tail
// the ledger.
func (r *LedgerRepository) EntriesAfter(lastID uint, limit int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.Where("id > ?", lastID).
		Order("id ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return entries, nil
}
