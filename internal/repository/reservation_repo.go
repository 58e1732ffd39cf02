package repository

import (
	"errors"
	"time"

	"emergency-bed-booking/internal/models"

	"gorm.io/gorm"
)

// ReservationStore persists granted bed claims.
type ReservationStore interface {
	Create(reservation *models.Reservation) error
	GetByID(id string) (*models.Reservation, error)

	// MarkReleased flips a reservation from granted to released. Fails with
	// ErrAlreadyReleased if it was released before and ErrReservationNotFound
	// if the id is unknown. The conditional update is the idempotency guard:
	// at most one caller ever observes the granted -> released transition.
	MarkReleased(id string, at time.Time) error

	ListByHospital(hcode string) ([]models.Reservation, error)
}

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts a new granted reservation.
func (r *ReservationRepository) Create(reservation *models.Reservation) error {
	if err := r.db.Create(reservation).Error; err != nil {
		return mapStorageErr(err)
	}
	return nil
}

// GetByID retrieves a reservation by its id.
func (r *ReservationRepository) GetByID(id string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, mapStorageErr(err)
	}
	return &reservation, nil
}

// MarkReleased flips granted -> released exactly once.
func (r *ReservationRepository) MarkReleased(id string, at time.Time) error {
	res := r.db.Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, models.ReservationGranted).
		Updates(map[string]interface{}{
			"status":      models.ReservationReleased,
			"released_at": at,
		})
	if res.Error != nil {
		return mapStorageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.Model(&models.Reservation{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return mapStorageErr(err)
		}
		if n == 0 {
			return ErrReservationNotFound
		}
		return ErrAlreadyReleased
	}
	return nil
}

// ListByHospital returns a hospital's reservations, newest first.
func (r *ReservationRepository) ListByHospital(hcode string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.Where("hospital_code = ?", hcode).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return reservations, nil
}
