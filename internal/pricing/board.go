package pricing

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medilink/supply-service/internal/catalog"
	"github.com/medilink/supply-service/internal/ledger"
)

// BoardStore owns the supply ledger and the price board derived from it.
// Writers go through the mutex; readers load an immutable snapshot that is
// swapped atomically after each fold, so a shipment is either fully folded
// into the board or not visible at all.
type BoardStore struct {
	mu      sync.Mutex
	ledger  *ledger.SupplyLedger
	catalog *catalog.Store
	opts    FoldOptions

	snapshot atomic.Value // catalog.PriceBoard

	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewBoardStore creates a board store seeded from the catalog's base
// listings.
func NewBoardStore(cat *catalog.Store, opts FoldOptions) *BoardStore {
	s := &BoardStore{
		ledger:  ledger.NewSupplyLedger(),
		catalog: cat,
		opts:    opts,
		metrics: NewMetricsRecorder(),
		logger:  log.With().Str("component", "board_store").Logger(),
	}
	s.snapshot.Store(cat.BaseBoard())
	return s
}

// RecordShipment validates and appends a shipment, then folds it into the
// board. Validation failures are returned to the caller and leave both the
// ledger and the board untouched.
func (s *BoardStore) RecordShipment(sh ledger.Shipment) (ledger.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded, err := s.ledger.Record(sh)
	if err != nil {
		s.metrics.RecordShipment(false)
		return ledger.Shipment{}, err
	}
	s.metrics.RecordShipment(true)

	start := time.Now()
	board := s.board().Clone()
	applyShipment(board, recorded, s.catalog, s.opts)
	s.snapshot.Store(board)
	s.metrics.RecordFold("incremental", time.Since(start), countListings(board))

	return recorded, nil
}

// UpdateShipmentStatus transitions a shipment's status. Status changes do
// not affect derived listings.
func (s *BoardStore) UpdateShipmentStatus(id string, status ledger.Status) (ledger.Shipment, error) {
	return s.ledger.UpdateStatus(id, status)
}

// PriceBoard returns an immutable deep-copy snapshot of the current board.
func (s *BoardStore) PriceBoard() catalog.PriceBoard {
	return s.board().Clone()
}

// MedicineListings returns the listings for one medicine.
func (s *BoardStore) MedicineListings(medicineID string) ([]catalog.Listing, bool) {
	listings, ok := s.board()[medicineID]
	if !ok {
		return nil, false
	}
	out := make([]catalog.Listing, len(listings))
	copy(out, listings)
	return out, true
}

// Rebuild re-derives the whole board by folding the full ledger over the
// base board. The result must match the incrementally maintained snapshot;
// re-deriving from the same ledger is idempotent.
func (s *BoardStore) Rebuild() catalog.PriceBoard {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	board := Fold(s.catalog.BaseBoard(), s.ledger.Shipments(), s.catalog, s.opts)
	s.snapshot.Store(board)
	s.metrics.RecordFold("rebuild", time.Since(start), countListings(board))

	s.logger.Info().
		Int("shipments", s.ledger.Len()).
		Int("medicines", len(board)).
		Msg("Rebuilt price board from ledger")

	return board.Clone()
}

// Shipments returns the ledger newest-first, for display.
func (s *BoardStore) Shipments() []ledger.Shipment {
	return s.ledger.Recent()
}

func (s *BoardStore) board() catalog.PriceBoard {
	return s.snapshot.Load().(catalog.PriceBoard)
}

func countListings(board catalog.PriceBoard) int {
	n := 0
	for _, listings := range board {
		n += len(listings)
	}
	return n
}
