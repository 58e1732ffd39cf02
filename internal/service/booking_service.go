package service

import (
	"fmt"
	"time"

	"emergency-bed-booking/internal/models"
	"emergency-bed-booking/internal/repository"

	"github.com/google/uuid"
)

// BookingService is the reservation authority: the only writer of bed
// counters. Every grant, release and adjustment runs as one transaction
// covering the counter, the ledger entry and the reservation row, so no
// failure path can leave a ledger write without a matching counter change.
type BookingService struct {
	stores repository.Stores
}

func NewBookingService(stores repository.Stores) *BookingService {
	return &BookingService{
		stores: stores,
	}
}

// BookingRequest carries the validated booking input.
type BookingRequest struct {
	HospitalCode   string
	Category       models.BedCategory
	PatientName    string
	PatientPhone   string
	PatientAddress string
	PatientEmail   string
	SpO2           int
	RequestedBy    uint
}

// Book grants one bed of the requested category. Exactly one of N concurrent
// callers racing for the last bed succeeds; the rest see
// ErrInsufficientCapacity. ErrHospitalNotFound is a distinct outcome so
// callers can tell "no such hospital" from "no beds left".
func (s *BookingService) Book(req BookingRequest) (*models.Reservation, error) {
	reservation := &models.Reservation{
		ID:             uuid.New().String(),
		HospitalCode:   req.HospitalCode,
		Category:       req.Category,
		Status:         models.ReservationGranted,
		PatientName:    req.PatientName,
		PatientPhone:   req.PatientPhone,
		PatientAddress: req.PatientAddress,
		PatientEmail:   req.PatientEmail,
		SpO2:           req.SpO2,
		RequestedBy:    req.RequestedBy,
	}

	err := s.stores.Atomically(func(tx repository.Stores) error {
		before, after, err := tx.Inventory().ApplyDelta(req.HospitalCode, req.Category, -1)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Create(reservation); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		entry := &models.LedgerEntry{
			HospitalCode:  req.HospitalCode,
			Category:      req.Category,
			CountBefore:   before,
			CountAfter:    after,
			Action:        models.LedgerBook,
			ActorID:       req.RequestedBy,
			ReservationID: reservation.ID,
		}
		if err := tx.Ledger().Append(entry); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// Release reverses a granted reservation: +1 on the counter, a release
// ledger entry, and the reservation marked released. A second release of the
// same id fails with ErrAlreadyReleased and does not credit the counter
// again.
func (s *BookingService) Release(reservationID string, actorID uint) (*models.Reservation, error) {
	var released *models.Reservation

	err := s.stores.Atomically(func(tx repository.Stores) error {
		reservation, err := tx.Reservations().GetByID(reservationID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		// The conditional status flip is the idempotency guard; it fails
		// before the counter is touched.
		if err := tx.Reservations().MarkReleased(reservationID, now); err != nil {
			return err
		}
		before, after, err := tx.Inventory().ApplyDelta(reservation.HospitalCode, reservation.Category, +1)
		if err != nil {
			return err
		}
		entry := &models.LedgerEntry{
			HospitalCode:  reservation.HospitalCode,
			Category:      reservation.Category,
			CountBefore:   before,
			CountAfter:    after,
			Action:        models.LedgerRelease,
			ActorID:       actorID,
			ReservationID: reservation.ID,
		}
		if err := tx.Ledger().Append(entry); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}
		reservation.Status = models.ReservationReleased
		reservation.ReleasedAt = &now
		released = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}

// GetReservation retrieves a reservation by id.
func (s *BookingService) GetReservation(id string) (*models.Reservation, error) {
	return s.stores.Reservations().GetByID(id)
}

// ListHospitalReservations returns the bookings of one hospital, newest
// first. Used by staff dashboards.
func (s *BookingService) ListHospitalReservations(hcode string) ([]models.Reservation, error) {
	return s.stores.Reservations().ListByHospital(hcode)
}
