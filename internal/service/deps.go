package service

import "emergency-bed-booking/internal/models"

// Store dependencies are taken as narrow interfaces so each service is
// constructed with exactly what it needs and tests can substitute in-memory
// implementations. The gorm repositories satisfy all of them.

// AuditSink records security and admin actions.
type AuditSink interface {
	CreateAuditLog(userID *uint, action string, details string) error
}

// HospitalStore is the hospital directory.
type HospitalStore interface {
	GetAllHospitals() ([]models.Hospital, error)
	GetHospitalByCode(code string) (*models.Hospital, error)
	CreateHospital(hospital *models.Hospital) error
	UpdateHospital(hospital *models.Hospital) error
	DeactivateHospital(code string) error
}

// UserStore manages accounts and refresh tokens.
type UserStore interface {
	FindUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
	CreateRefreshToken(token *models.RefreshToken) error
	FindRefreshTokenByHash(hash string) (*models.RefreshToken, error)
	RevokeRefreshTokenByHash(hash string) error
}

// LedgerTail is the notifier's read-only view of the ledger.
type LedgerTail interface {
	MaxID() (uint, error)
	EntriesAfter(lastID uint, limit int) ([]models.LedgerEntry, error)
}
