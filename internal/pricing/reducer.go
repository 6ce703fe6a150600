package pricing

import (
	"github.com/medilink/supply-service/internal/catalog"
	"github.com/medilink/supply-service/internal/ledger"
)

// PharmacyDirectory resolves pharmacy metadata for shipments. The catalog
// store satisfies it.
type PharmacyDirectory interface {
	PharmacyByID(id string) (catalog.Pharmacy, bool)
}

// FoldOptions configures how listings are synthesized during the fold.
type FoldOptions struct {
	// DefaultCity is used when neither the directory nor the shipment
	// carries a city.
	DefaultCity string

	// FallbackPharmacyName labels listings whose pharmacy cannot be
	// resolved at all.
	FallbackPharmacyName string

	// DisplayRating is the fixed presentation rating attached to derived
	// listings.
	DisplayRating float64
}

// DefaultFoldOptions returns the production fold settings.
func DefaultFoldOptions() FoldOptions {
	return FoldOptions{
		DefaultCity:          "Addis Ababa",
		FallbackPharmacyName: "Unlisted pharmacy",
		DisplayRating:        4.5,
	}
}

// Fold derives a price board by replaying shipments, oldest first, over a
// base board. It is a pure reduction: inputs are never mutated, and
// replaying the same sequence from the same base always yields the same
// board. Chronological order guarantees last-write-wins upsert semantics
// per (medicine, pharmacy name) pair.
//
// Listings are upserted by pharmacy display name, not ID: two
// differently-identified pharmacies sharing a name collide onto one
// listing. The display name is the board's key.
func Fold(base catalog.PriceBoard, shipments []ledger.Shipment, dir PharmacyDirectory, opts FoldOptions) catalog.PriceBoard {
	board := base.Clone()
	for _, s := range shipments {
		applyShipment(board, s, dir, opts)
	}
	return board
}

// applyShipment folds a single shipment into the board in place. A shipment
// referencing a medicine the board does not know contributes nothing: the
// board is keyed by medicine identity and there is no entry to attach the
// listing to.
func applyShipment(board catalog.PriceBoard, s ledger.Shipment, dir PharmacyDirectory, opts FoldOptions) {
	listings, ok := board[s.MedicineID]
	if !ok {
		return
	}

	name, location := resolvePharmacyMeta(s, dir, opts)
	entry := catalog.Listing{
		PharmacyName: name,
		Location:     location,
		Price:        PatientPrice(s.WholesalePrice, s.MarkupPercent),
		Rating:       opts.DisplayRating,
	}

	for i := range listings {
		if listings[i].PharmacyName == name {
			listings[i] = entry
			board[s.MedicineID] = listings
			return
		}
	}
	board[s.MedicineID] = append(listings, entry)
}

// resolvePharmacyMeta prefers the directory entry for the shipment's
// pharmacy ID, falling back to metadata carried on the shipment itself.
func resolvePharmacyMeta(s ledger.Shipment, dir PharmacyDirectory, opts FoldOptions) (name, location string) {
	city := s.PharmacyCity
	kebele := s.PharmacyKebele
	name = s.PharmacyName

	if dir != nil {
		if p, ok := dir.PharmacyByID(s.PharmacyID); ok {
			name = p.Name
			city = p.City
			kebele = p.Kebele
		}
	}

	if name == "" {
		name = opts.FallbackPharmacyName
	}
	if city == "" {
		city = opts.DefaultCity
	}
	if kebele != "" {
		location = city + ", " + kebele
	} else {
		location = city
	}
	return name, location
}
