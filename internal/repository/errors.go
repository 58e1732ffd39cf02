package repository

import "errors"

// Sentinel errors surfaced by the stores. Callers distinguish them with
// errors.Is; "no such hospital" and "no beds left" are deliberately distinct
// outcomes.
var (
	ErrHospitalNotFound      = errors.New("hospital not found")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrInsufficientCapacity  = errors.New("no beds available in the requested category")
	ErrAlreadyReleased       = errors.New("reservation already released")
	ErrStorageUnavailable    = errors.New("storage unavailable")
	ErrDuplicateHospitalCode = errors.New("hospital code already exists")
	ErrDuplicateEmail        = errors.New("email already registered")
)
