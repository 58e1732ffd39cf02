package service

import (
	"sync"
	"time"

	"emergency-bed-booking/internal/models"
	"emergency-bed-booking/internal/repository"
)

// memStores is an in-memory repository.Stores used by the service tests. It
// reproduces the store contract exactly: ApplyDelta refuses to go negative,
// MarkReleased flips granted -> released at most once, and Atomically is
// serializable - writes roll back on error and concurrent units never
// interleave.
type memStores struct {
	mu sync.Mutex

	counters     map[string]map[models.BedCategory]int
	ledger       []models.LedgerEntry
	nextLedgerID uint
	reservations map[string]models.Reservation
}

func newMemStores() *memStores {
	return &memStores{
		counters:     make(map[string]map[models.BedCategory]int),
		reservations: make(map[string]models.Reservation),
	}
}

// addHospital seeds counters for the given hospital.
func (m *memStores) addHospital(hcode string, counts map[models.BedCategory]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := make(map[models.BedCategory]int, len(counts))
	for cat, n := range counts {
		c[cat] = n
	}
	m.counters[hcode] = c
}

func (m *memStores) count(hcode string, category models.BedCategory) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[hcode][category]
}

func (m *memStores) ledgerEntries() []models.LedgerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.LedgerEntry, len(m.ledger))
	copy(out, m.ledger)
	return out
}

func (m *memStores) Inventory() repository.InventoryStore       { return lockedInventory{m} }
func (m *memStores) Ledger() repository.LedgerStore             { return lockedLedger{m} }
func (m *memStores) Reservations() repository.ReservationStore  { return lockedReservations{m} }

// Atomically holds the lock for the whole unit and restores a snapshot when
// fn fails, mirroring a rolled-back transaction.
func (m *memStores) Atomically(fn func(tx repository.Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(&txStores{m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	counters     map[string]map[models.BedCategory]int
	ledger       []models.LedgerEntry
	nextLedgerID uint
	reservations map[string]models.Reservation
}

func (m *memStores) snapshot() memSnapshot {
	snap := memSnapshot{
		counters:     make(map[string]map[models.BedCategory]int, len(m.counters)),
		ledger:       make([]models.LedgerEntry, len(m.ledger)),
		nextLedgerID: m.nextLedgerID,
		reservations: make(map[string]models.Reservation, len(m.reservations)),
	}
	for hcode, counts := range m.counters {
		c := make(map[models.BedCategory]int, len(counts))
		for cat, n := range counts {
			c[cat] = n
		}
		snap.counters[hcode] = c
	}
	copy(snap.ledger, m.ledger)
	for id, r := range m.reservations {
		snap.reservations[id] = r
	}
	return snap
}

func (m *memStores) restore(snap memSnapshot) {
	m.counters = snap.counters
	m.ledger = snap.ledger
	m.nextLedgerID = snap.nextLedgerID
	m.reservations = snap.reservations
}

// Unlocked operations, called with m.mu held.

func (m *memStores) getCount(hcode string, category models.BedCategory) (int, error) {
	counts, ok := m.counters[hcode]
	if !ok {
		return 0, repository.ErrHospitalNotFound
	}
	return counts[category], nil
}

func (m *memStores) applyDelta(hcode string, category models.BedCategory, delta int) (int, int, error) {
	counts, ok := m.counters[hcode]
	if !ok {
		return 0, 0, repository.ErrHospitalNotFound
	}
	before := counts[category]
	after := before + delta
	if after < 0 {
		return 0, 0, repository.ErrInsufficientCapacity
	}
	counts[category] = after
	return before, after, nil
}

func (m *memStores) appendLedger(entry *models.LedgerEntry) error {
	m.nextLedgerID++
	entry.ID = m.nextLedgerID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	m.ledger = append(m.ledger, *entry)
	return nil
}

func (m *memStores) queryLedger(hcode string, since time.Time) ([]models.LedgerEntry, error) {
	var out []models.LedgerEntry
	for _, e := range m.ledger {
		if e.HospitalCode == hcode && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStores) latestLedger(hcode string, category models.BedCategory) (*models.LedgerEntry, error) {
	for i := len(m.ledger) - 1; i >= 0; i-- {
		if m.ledger[i].HospitalCode == hcode && m.ledger[i].Category == category {
			e := m.ledger[i]
			return &e, nil
		}
	}
	return nil, repository.ErrHospitalNotFound
}

func (m *memStores) createReservation(r *models.Reservation) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.reservations[r.ID] = *r
	return nil
}

func (m *memStores) getReservation(id string) (*models.Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return &r, nil
}

func (m *memStores) markReleased(id string, at time.Time) error {
	r, ok := m.reservations[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	if r.Status == models.ReservationReleased {
		return repository.ErrAlreadyReleased
	}
	r.Status = models.ReservationReleased
	r.ReleasedAt = &at
	m.reservations[id] = r
	return nil
}

func (m *memStores) listReservations(hcode string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.HospitalCode == hcode {
			out = append(out, r)
		}
	}
	return out, nil
}

// txStores is the view handed to Atomically callbacks: the lock is already
// held, so operations go straight to the unlocked core.
type txStores struct{ m *memStores }

func (t *txStores) Inventory() repository.InventoryStore      { return txInventory{t.m} }
func (t *txStores) Ledger() repository.LedgerStore            { return txLedger{t.m} }
func (t *txStores) Reservations() repository.ReservationStore { return txReservations{t.m} }
func (t *txStores) Atomically(fn func(tx repository.Stores) error) error {
	return fn(t)
}

type txInventory struct{ m *memStores }

func (s txInventory) GetCount(hcode string, category models.BedCategory) (int, error) {
	return s.m.getCount(hcode, category)
}
func (s txInventory) ApplyDelta(hcode string, category models.BedCategory, delta int) (int, int, error) {
	return s.m.applyDelta(hcode, category, delta)
}

type txLedger struct{ m *memStores }

func (s txLedger) Append(entry *models.LedgerEntry) error { return s.m.appendLedger(entry) }
func (s txLedger) Query(hcode string, since time.Time) ([]models.LedgerEntry, error) {
	return s.m.queryLedger(hcode, since)
}
func (s txLedger) Latest(hcode string, category models.BedCategory) (*models.LedgerEntry, error) {
	return s.m.latestLedger(hcode, category)
}

type txReservations struct{ m *memStores }

func (s txReservations) Create(r *models.Reservation) error { return s.m.createReservation(r) }
func (s txReservations) GetByID(id string) (*models.Reservation, error) {
	return s.m.getReservation(id)
}
func (s txReservations) MarkReleased(id string, at time.Time) error {
	return s.m.markReleased(id, at)
}
func (s txReservations) ListByHospital(hcode string) ([]models.Reservation, error) {
	return s.m.listReservations(hcode)
}

// locked* wrappers serve calls made outside Atomically.

type lockedInventory struct{ m *memStores }

func (s lockedInventory) GetCount(hcode string, category models.BedCategory) (int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.getCount(hcode, category)
}
func (s lockedInventory) ApplyDelta(hcode string, category models.BedCategory, delta int) (int, int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.applyDelta(hcode, category, delta)
}

type lockedLedger struct{ m *memStores }

func (s lockedLedger) Append(entry *models.LedgerEntry) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.appendLedger(entry)
}
func (s lockedLedger) Query(hcode string, since time.Time) ([]models.LedgerEntry, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.queryLedger(hcode, since)
}
func (s lockedLedger) Latest(hcode string, category models.BedCategory) (*models.LedgerEntry, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.latestLedger(hcode, category)
}

type lockedReservations struct{ m *memStores }

func (s lockedReservations) Create(r *models.Reservation) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.createReservation(r)
}
func (s lockedReservations) GetByID(id string) (*models.Reservation, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.getReservation(id)
}
func (s lockedReservations) MarkReleased(id string, at time.Time) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.markReleased(id, at)
}
func (s lockedReservations) ListByHospital(hcode string) ([]models.Reservation, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.listReservations(hcode)
}

// memHospitals is an in-memory HospitalStore sharing counters with memStores.
type memHospitals struct {
	m     *memStores
	names map[string]string
}

func newMemHospitals(m *memStores) *memHospitals {
	return &memHospitals{m: m, names: make(map[string]string)}
}

func (h *memHospitals) GetAllHospitals() ([]models.Hospital, error) {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	var out []models.Hospital
	for hcode, counts := range h.m.counters {
		out = append(out, models.Hospital{
			Code:           hcode,
			Name:           h.names[hcode],
			NormalBeds:     counts[models.BedNormal],
			HICUBeds:       counts[models.BedHICU],
			ICUBeds:        counts[models.BedICU],
			VentilatorBeds: counts[models.BedVentilator],
			IsActive:       true,
		})
	}
	return out, nil
}

func (h *memHospitals) GetHospitalByCode(code string) (*models.Hospital, error) {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	counts, ok := h.m.counters[code]
	if !ok {
		return nil, repository.ErrHospitalNotFound
	}
	return &models.Hospital{
		Code:           code,
		Name:           h.names[code],
		NormalBeds:     counts[models.BedNormal],
		HICUBeds:       counts[models.BedHICU],
		ICUBeds:        counts[models.BedICU],
		VentilatorBeds: counts[models.BedVentilator],
		IsActive:       true,
	}, nil
}

func (h *memHospitals) CreateHospital(hospital *models.Hospital) error {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if _, exists := h.m.counters[hospital.Code]; exists {
		return repository.ErrDuplicateHospitalCode
	}
	h.m.counters[hospital.Code] = map[models.BedCategory]int{}
	h.names[hospital.Code] = hospital.Name
	return nil
}

func (h *memHospitals) UpdateHospital(hospital *models.Hospital) error {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if _, exists := h.m.counters[hospital.Code]; !exists {
		return repository.ErrHospitalNotFound
	}
	h.names[hospital.Code] = hospital.Name
	return nil
}

func (h *memHospitals) DeactivateHospital(code string) error {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if _, exists := h.m.counters[code]; !exists {
		return repository.ErrHospitalNotFound
	}
	delete(h.m.counters, code)
	return nil
}

// memAudit collects audit log calls.
type memAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *memAudit) CreateAuditLog(userID *uint, action string, details string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}
