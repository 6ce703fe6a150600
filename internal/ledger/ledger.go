// Package ledger implements the append-only supply ledger: the ordered
// stream of shipment events the price board is derived from. Shipments are
// created once, change status over their life, and are never deleted.
package ledger

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medilink/supply-service/internal/pkg/cuid2"
)

// Status is a shipment's delivery state.
type Status string

const (
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusDelayed   Status = "delayed"
)

// ValidStatus reports whether s is a known shipment status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusInTransit, StatusDelivered, StatusDelayed:
		return true
	}
	return false
}

// Shipment is a ledger event recorded by a supplier action. The pharmacy
// name, city and kebele are carried on the event itself so the reducer can
// synthesize directory metadata when the pharmacy ID is not in the
// directory.
type Shipment struct {
	ID             string
	Supplier       string
	PharmacyID     string
	PharmacyName   string
	PharmacyCity   string
	PharmacyKebele string
	MedicineID     string
	MedicineName   string
	Quantity       int
	WholesalePrice float64
	MarkupPercent  float64
	Status         Status
	ETA            time.Time
	CreatedAt      time.Time
}

// SupplyLedger is the in-memory, append-only shipment log. Ledger order is
// insertion order; Shipments returns events oldest-first, which is the fold
// order the reducer depends on for last-write-wins upserts.
type SupplyLedger struct {
	mu        sync.Mutex
	shipments []Shipment

	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// NewSupplyLedger creates an empty ledger.
func NewSupplyLedger() *SupplyLedger {
	return &SupplyLedger{
		logger: log.With().Str("component", "supply_ledger").Logger(),
		now:    time.Now,
		newID:  func() string { return cuid2.NewID("shp") },
	}
}

// Record validates and appends a shipment, assigning its identifier and
// creation timestamp. Status defaults to in_transit. The recorded shipment
// is returned.
func (l *SupplyLedger) Record(s Shipment) (Shipment, error) {
	if s.MedicineID == "" {
		return Shipment{}, ValidationError{Field: "medicineId", Reason: "cannot be empty"}
	}
	if s.PharmacyID == "" {
		return Shipment{}, ValidationError{Field: "pharmacyId", Reason: "cannot be empty"}
	}
	if s.Status == "" {
		s.Status = StatusInTransit
	} else if !ValidStatus(s.Status) {
		return Shipment{}, ValidationError{Field: "status", Reason: "unknown status " + string(s.Status)}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	s.ID = l.newID()
	s.CreatedAt = l.now()
	l.shipments = append(l.shipments, s)

	l.logger.Info().
		Str("shipment_id", s.ID).
		Str("medicine_id", s.MedicineID).
		Str("pharmacy_id", s.PharmacyID).
		Int("quantity", s.Quantity).
		Msg("Recorded shipment")

	return s, nil
}

// UpdateStatus replaces the status of an existing shipment in place. All
// other fields are unchanged.
func (l *SupplyLedger) UpdateStatus(id string, status Status) (Shipment, error) {
	if !ValidStatus(status) {
		return Shipment{}, ValidationError{Field: "status", Reason: "unknown status " + string(status)}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.shipments {
		if l.shipments[i].ID == id {
			l.shipments[i].Status = status
			l.logger.Info().
				Str("shipment_id", id).
				Str("status", string(status)).
				Msg("Updated shipment status")
			return l.shipments[i], nil
		}
	}

	return Shipment{}, NotFoundError{Kind: "shipment", ID: id}
}

// Shipments returns a copy of the ledger in chronological (fold) order.
func (l *SupplyLedger) Shipments() []Shipment {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Shipment, len(l.shipments))
	copy(out, l.shipments)
	return out
}

// Recent returns a copy of the ledger newest-first, for display.
func (l *SupplyLedger) Recent() []Shipment {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Shipment, len(l.shipments))
	for i, s := range l.shipments {
		out[len(l.shipments)-1-i] = s
	}
	return out
}

// Len returns the number of recorded shipments.
func (l *SupplyLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.shipments)
}
