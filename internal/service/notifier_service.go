package service

import (
	"context"
	"log"
	"time"

	"emergency-bed-booking/internal/models"
)

// LedgerPublisher pushes ledger events to an external channel. The Kafka
// producer satisfies this; consumers handle their own delivery semantics.
type LedgerPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// NotifierService is the background worker that tails the bed ledger and
// publishes every new entry. Publishing happens after commit, outside the
// booking transaction, so a slow broker can never delay or fail a booking.
// At-least-once: an entry is re-published if the process dies between
// publish and cursor advance.
type NotifierService struct {
	ledgerRepo LedgerTail
	publisher  LedgerPublisher
	interval   time.Duration
	batchSize  int

	lastID uint
}

func NewNotifierService(ledgerRepo LedgerTail, publisher LedgerPublisher) *NotifierService {
	return &NotifierService{
		ledgerRepo: ledgerRepo,
		publisher:  publisher,
		interval:   500 * time.Millisecond,
		batchSize:  100,
	}
}

// Start begins the background worker that publishes new ledger entries.
// Blocks until ctx is cancelled.
func (w *NotifierService) Start(ctx context.Context) {
	// Entries written while the notifier was down are skipped; the worker
	// only broadcasts live activity.
	if lastID, err := w.ledgerRepo.MaxID(); err != nil {
		log.Printf("Error reading ledger cursor, starting from 0: %v", err)
	} else {
		w.lastID = lastID
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Ledger notifier started - polling every %s", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Ledger notifier stopped")
			return
		case <-ticker.C:
			w.publishNewEntries(ctx)
		}
	}
}

func (w *NotifierService) publishNewEntries(ctx context.Context) {
	entries, err := w.ledgerRepo.EntriesAfter(w.lastID, w.batchSize)
	if err != nil {
		log.Printf("Error fetching ledger entries: %v", err)
		return
	}

	for _, entry := range entries {
		if err := w.publishEntry(ctx, entry); err != nil {
			log.Printf("Error publishing ledger entry %d: %v", entry.ID, err)
			return
		}
		w.lastID = entry.ID
	}
}

// LedgerEvent is the wire shape of a published inventory mutation.
type LedgerEvent struct {
	EntryID      uint                `json:"entry_id"`
	HospitalCode string              `json:"hospital_code"`
	Category     models.BedCategory  `json:"category"`
	CountBefore  int                 `json:"count_before"`
	CountAfter   int                 `json:"count_after"`
	Action       models.LedgerAction `json:"action"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

func (w *NotifierService) publishEntry(ctx context.Context, entry models.LedgerEntry) error {
	event := LedgerEvent{
		EntryID:      entry.ID,
		HospitalCode: entry.HospitalCode,
		Category:     entry.Category,
		CountBefore:  entry.CountBefore,
		CountAfter:   entry.CountAfter,
		Action:       entry.Action,
		OccurredAt:   entry.CreatedAt,
	}
	return w.publisher.Publish(ctx, entry.HospitalCode, event)
}
