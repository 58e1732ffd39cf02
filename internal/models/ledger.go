package models

import "time"

// LedgerAction is the kind of inventory mutation a ledger entry records.
type LedgerAction string

const (
	LedgerBook        LedgerAction = "book"
	LedgerRelease     LedgerAction = "release"
	LedgerAdminAdjust LedgerAction = "admin_adjust"
)

// LedgerEntry is one row of the append-only bed inventory audit trail.
// Every counter mutation writes exactly one entry in the same transaction;
// entries are never updated or deleted.
type LedgerEntry struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	HospitalCode  string       `gorm:"size:50;not null;index:idx_ledger_hcode_time" json:"hospital_code"`
	Category      BedCategory  `gorm:"size:20;not null" json:"category"`
	CountBefore   int          `gorm:"not null" json:"count_before"`
	CountAfter    int          `gorm:"not null" json:"count_after"`
	Action        LedgerAction `gorm:"size:20;not null" json:"action"`
	ActorID       uint         `gorm:"not null" json:"actor_id"`
	ReservationID string       `gorm:"size:36;index" json:"reservation_id,omitempty"`
	CreatedAt     time.Time    `gorm:"default:CURRENT_TIMESTAMP;index:idx_ledger_hcode_time" json:"created_at"`
}

// TableName specifies the table name for LedgerEntry model
func (LedgerEntry) TableName() string {
	return "bed_ledger"
}
