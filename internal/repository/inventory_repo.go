package repository

import (
	"errors"
	"time"

	"emergency-bed-booking/internal/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// InventoryStore is the durable per-hospital, per-category bed counter store.
// ApplyDelta must be atomic with respect to concurrent callers for the same
// (hospital, category) pair: two racers for the last bed cannot both succeed.
type InventoryStore interface {
	// GetCount returns the current available count for a category.
	GetCount(hcode string, category models.BedCategory) (int, error)

	// ApplyDelta adjusts the counter by delta (negative for booking, positive
	// for release) and returns the before/after values. Fails with
	// ErrInsufficientCapacity if the result would go negative and
	// ErrHospitalNotFound if the hospital is unknown or inactive.
	ApplyDelta(hcode string, category models.BedCategory, delta int) (before, after int, err error)
}

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetCount returns the current available count for a category.
func (r *InventoryRepository) GetCount(hcode string, category models.BedCategory) (int, error) {
	col, err := category.Column()
	if err != nil {
		return 0, err
	}

	var count int
	err = retryTransient(func() error {
		return r.db.Model(&models.Hospital{}).
			Select(col).
			Where("code = ? AND is_active = ?", hcode, true).
			Take(&count).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrHospitalNotFound
		}
		return 0, mapStorageErr(err)
	}
	return count, nil
}

// ApplyDelta performs the conditional counter update in a single statement:
//
//	UPDATE hospitals SET <col> = <col> + ? WHERE code = ? AND <col> + ? >= 0
//
// The row lock taken by the UPDATE serializes concurrent mutations of the
// same (hospital, category) pair; the guard in the WHERE clause makes the
// driven-negative case impossible rather than merely unlikely.
func (r *InventoryRepository) ApplyDelta(hcode string, category models.BedCategory, delta int) (int, int, error) {
	col, err := category.Column()
	if err != nil {
		return 0, 0, err
	}

	var after int
	err = retryTransient(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Hospital{}).
				Where("code = ? AND is_active = ? AND "+col+" + ? >= 0", hcode, true, delta).
				UpdateColumn(col, gorm.Expr(col+" + ?", delta))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Distinguish "no such hospital" from "exists but depleted".
				var n int64
				if err := tx.Model(&models.Hospital{}).
					Where("code = ? AND is_active = ?", hcode, true).
					Count(&n).Error; err != nil {
					return err
				}
				if n == 0 {
					return ErrHospitalNotFound
				}
				return ErrInsufficientCapacity
			}
			// The updated row is locked until commit, so the read-back is
			// consistent with the delta just applied.
			return tx.Model(&models.Hospital{}).
				Select(col).
				Where("code = ?", hcode).
				Take(&after).Error
		})
	})
	if err != nil {
		if errors.Is(err, ErrHospitalNotFound) || errors.Is(err, ErrInsufficientCapacity) {
			return 0, 0, err
		}
		return 0, 0, mapStorageErr(err)
	}
	return after - delta, after, nil
}

// Transient storage failures are retried with bounded backoff before being
// surfaced as ErrStorageUnavailable.
const (
	maxStorageAttempts  = 3
	storageRetryBackoff = 100 * time.Millisecond
)

func retryTransient(fn func() error) error {
	backoff := storageRetryBackoff
	var err error
	for attempt := 0; attempt < maxStorageAttempts; attempt++ {
		if err = fn(); err == nil || !isTransient(err) {
			return err
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return err
}

func isTransient(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		// 1205 lock wait timeout, 1213 deadlock: safe to retry.
		return mysqlErr.Number == 1205 || mysqlErr.Number == 1213
	}
	return errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, gorm.ErrInvalidDB)
}

func mapStorageErr(err error) error {
	if isTransient(err) {
		return ErrStorageUnavailable
	}
	return err
}
