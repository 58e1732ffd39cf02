package repository

import "gorm.io/gorm"

// Stores bundles the three ledger-core stores behind one handle so the
// booking service can run a counter mutation, its ledger entry and the
// reservation row as a single atomic unit.
type Stores interface {
	Inventory() InventoryStore
	Ledger() LedgerStore
	Reservations() ReservationStore

	// Atomically runs fn against transaction-bound stores. Every write made
	// through them commits together or not at all.
	Atomically(fn func(tx Stores) error) error
}

// GormStores is the MySQL-backed Stores implementation.
type GormStores struct {
	db *gorm.DB
}

func NewStores(db *gorm.DB) *GormStores {
	return &GormStores{db: db}
}

func (s *GormStores) Inventory() InventoryStore {
	return NewInventoryRepo(s.db)
}

func (s *GormStores) Ledger() LedgerStore {
	return NewLedgerRepo(s.db)
}

func (s *GormStores) Reservations() ReservationStore {
	return NewReservationRepo(s.db)
}

// Atomically wraps fn in a database transaction.
func (s *GormStores) Atomically(fn func(tx Stores) error) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStores{db: tx})
	})
	if err != nil {
		return mapStorageErr(err)
	}
	return nil
}
