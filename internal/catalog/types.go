package catalog

// ApprovalStatus is the administrative state of a pharmacy directory entry.
// Only approved pharmacies are eligible as discovery and order targets.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Medicine is an immutable seed record identifying a drug product
// catalog-wide.
type Medicine struct {
	ID              string
	Name            string
	BasePrice       int64 // patient-facing display price in birr
	BaseRating      float64
	AvailabilityTag string
}

// Location is a pharmacy's geographic position. It is attached by an
// external profile collaborator and may be absent, in which case distance
// to the pharmacy is unknown, never zero.
type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
	City      string
}

// Pharmacy is a directory entry.
type Pharmacy struct {
	ID        string
	Name      string
	LicenseID string
	City      string
	Kebele    string
	Approval  ApprovalStatus
	Location  *Location
}

// Listing is a derived price-board entry: one per (medicine, pharmacy name)
// pair.
type Listing struct {
	PharmacyName string
	Location     string
	Price        int64
	Rating       float64
}

// PriceBoard maps a medicine ID to its ordered pharmacy listings.
type PriceBoard map[string][]Listing

// Clone returns a deep copy of the board. Listing slices are never shared
// between the original and the copy.
func (b PriceBoard) Clone() PriceBoard {
	out := make(PriceBoard, len(b))
	for id, listings := range b {
		cp := make([]Listing, len(listings))
		copy(cp, listings)
		out[id] = cp
	}
	return out
}

// InventoryEntry is a simulated stock record for a (medicine, pharmacy)
// pair. It stands in for live pharmacy inventory when the collaborator is
// unavailable.
type InventoryEntry struct {
	Quantity int
	Price    int64
}

// Seed is the static catalog data the store is constructed from. It is a
// fixture artifact: tests and alternate deployments substitute their own.
type Seed struct {
	Medicines    []Medicine
	Pharmacies   []Pharmacy
	BaseListings map[string][]Listing // medicine ID -> base listings

	// Inventory is keyed by normalized "<medicine>|<pharmacy>" names,
	// see inventoryKey.
	Inventory map[string]InventoryEntry
}
