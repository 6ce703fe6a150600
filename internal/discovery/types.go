package discovery

import (
	"context"
	"time"

	"github.com/medilink/supply-service/internal/catalog"
)

// Source identifies which fallback tier produced a result, ordered by
// decreasing data freshness.
type Source string

const (
	SourceAPI               Source = "api"
	SourcePharmacyInventory Source = "pharmacy_inventory"
	SourceCatalog           Source = "catalog"
)

// AvailabilityStatus is the patient-facing stock flag.
type AvailabilityStatus string

const (
	InStock    AvailabilityStatus = "in_stock"
	OutOfStock AvailabilityStatus = "out_of_stock"
)

// UserLocation is the caller's position, when the geolocation provider
// supplied one. Discovery works with a nil location.
type UserLocation struct {
	Latitude  float64
	Longitude float64
}

// SearchResult is one ranked hit, constructed fresh per query and never
// persisted. Distance is nil when either the user or the pharmacy has no
// known location.
type SearchResult struct {
	PharmacyID      string             `json:"pharmacyId"`
	PharmacyName    string             `json:"pharmacyName"`
	PharmacyAddress string             `json:"pharmacyAddress"`
	PharmacyCity    string             `json:"pharmacyCity"`
	Distance        *float64           `json:"distance"`
	MedicineName    string             `json:"medicineName"`
	Price           int64              `json:"price"`
	Quantity        int                `json:"quantity"`
	Availability    AvailabilityStatus `json:"availability"`
	Source          Source             `json:"source"`
}

// Availability is the payload of a successful availability lookup.
type Availability struct {
	Quantity int
	Price    int64
	Medicine string
}

// AvailabilityResult is the answer of the standalone availability cascade.
// The cascade always produces a definite answer: Success with tier data, or
// a failure message after every tier was exhausted.
type AvailabilityResult struct {
	Success  bool   `json:"success"`
	Quantity int    `json:"quantity,omitempty"`
	Price    int64  `json:"price,omitempty"`
	Medicine string `json:"medicine,omitempty"`
	Source   Source `json:"source,omitempty"`
	Error    string `json:"error,omitempty"`
}

// InventoryItem is one row of a pharmacy's full inventory listing.
type InventoryItem struct {
	MedicineName string
	Quantity     int
	Price        int64
}

// InventorySource is the live-inventory collaborator boundary. Both
// methods honor the context and return an error for any failure mode:
// network, non-success payload, or timeout. The engine treats them all
// identically.
type InventorySource interface {
	CheckAvailability(ctx context.Context, pharmacyID, medicineName string) (Availability, error)
	ListInventory(ctx context.Context, pharmacyID string) ([]InventoryItem, error)
}

// Config holds discovery tuning.
type Config struct {
	// DefaultQuantity is the assumed stock when only the static catalog
	// answers.
	DefaultQuantity int

	// MaxConcurrency bounds the per-pharmacy live-check fan-out.
	MaxConcurrency int

	// CheckTimeout caps a single collaborator call.
	CheckTimeout time.Duration
}

// DefaultConfig returns the default discovery settings.
func DefaultConfig() Config {
	return Config{
		DefaultQuantity: 10,
		MaxConcurrency:  8,
		CheckTimeout:    5 * time.Second,
	}
}

// pharmacyDistance computes the distance from a user location to a
// pharmacy, or nil when either side is unknown.
func pharmacyDistance(loc *UserLocation, p catalog.Pharmacy) *float64 {
	if loc == nil || p.Location == nil {
		return nil
	}
	d := HaversineKm(loc.Latitude, loc.Longitude, p.Location.Latitude, p.Location.Longitude)
	return &d
}
