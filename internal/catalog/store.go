// Package catalog holds the static seed catalog: base medicines, the
// pharmacy directory, base per-medicine listings and the simulated
// inventory table. It is the starting state for the price-board fold and
// the last fallback tier of discovery.
package catalog

import (
	"github.com/medilink/supply-service/internal/matching"
)

// Store is an immutable, indexed view over a Seed. All accessors hand out
// copies; callers never receive references into the store's own data.
type Store struct {
	medicines    []Medicine
	pharmacies   []Pharmacy
	baseListings map[string][]Listing
	inventory    map[string]InventoryEntry

	medicineByID map[string]int
	pharmacyByID map[string]int
}

// NewStore builds an indexed store from seed data.
func NewStore(seed Seed) *Store {
	s := &Store{
		medicines:    make([]Medicine, len(seed.Medicines)),
		pharmacies:   make([]Pharmacy, len(seed.Pharmacies)),
		baseListings: make(map[string][]Listing, len(seed.BaseListings)),
		inventory:    make(map[string]InventoryEntry, len(seed.Inventory)),
		medicineByID: make(map[string]int, len(seed.Medicines)),
		pharmacyByID: make(map[string]int, len(seed.Pharmacies)),
	}

	copy(s.medicines, seed.Medicines)
	copy(s.pharmacies, seed.Pharmacies)

	for i, m := range s.medicines {
		s.medicineByID[m.ID] = i
	}
	for i, p := range s.pharmacies {
		s.pharmacyByID[p.ID] = i
	}
	for id, listings := range seed.BaseListings {
		cp := make([]Listing, len(listings))
		copy(cp, listings)
		s.baseListings[id] = cp
	}
	for key, entry := range seed.Inventory {
		s.inventory[key] = entry
	}

	return s
}

// Medicines returns all catalog medicines.
func (s *Store) Medicines() []Medicine {
	out := make([]Medicine, len(s.medicines))
	copy(out, s.medicines)
	return out
}

// MedicineByID looks up a medicine by its catalog identifier.
func (s *Store) MedicineByID(id string) (Medicine, bool) {
	i, ok := s.medicineByID[id]
	if !ok {
		return Medicine{}, false
	}
	return s.medicines[i], true
}

// SearchMedicines returns medicines whose name contains the query,
// case-insensitively. A blank query matches nothing.
func (s *Store) SearchMedicines(query string) []Medicine {
	var out []Medicine
	for _, m := range s.medicines {
		if matching.ContainsFold(m.Name, query) {
			out = append(out, m)
		}
	}
	return out
}

// Pharmacies returns the full pharmacy directory.
func (s *Store) Pharmacies() []Pharmacy {
	out := make([]Pharmacy, len(s.pharmacies))
	copy(out, s.pharmacies)
	return out
}

// PharmacyByID looks up a directory entry.
func (s *Store) PharmacyByID(id string) (Pharmacy, bool) {
	i, ok := s.pharmacyByID[id]
	if !ok {
		return Pharmacy{}, false
	}
	return s.pharmacies[i], true
}

// ApprovedPharmacies returns the directory entries eligible for discovery
// and ordering.
func (s *Store) ApprovedPharmacies() []Pharmacy {
	var out []Pharmacy
	for _, p := range s.pharmacies {
		if p.Approval == ApprovalApproved {
			out = append(out, p)
		}
	}
	return out
}

// BaseBoard returns a deep copy of the base price board seeded from the
// catalog's base listings. Every catalog medicine has an entry, possibly
// empty; the board is keyed by medicine identity.
func (s *Store) BaseBoard() PriceBoard {
	board := make(PriceBoard, len(s.medicines))
	for _, m := range s.medicines {
		board[m.ID] = nil
	}
	for id, listings := range s.baseListings {
		cp := make([]Listing, len(listings))
		copy(cp, listings)
		board[id] = cp
	}
	return board
}

// SimulatedInventory looks up the simulated stock entry for a medicine at a
// pharmacy, both matched by normalized name.
func (s *Store) SimulatedInventory(medicineName, pharmacyName string) (InventoryEntry, bool) {
	entry, ok := s.inventory[inventoryKey(medicineName, pharmacyName)]
	return entry, ok
}

// inventoryKey builds the normalized lookup key for the simulated inventory
// table.
func inventoryKey(medicineName, pharmacyName string) string {
	return matching.Normalize(medicineName) + "|" + matching.Normalize(pharmacyName)
}

// InventoryKey is the exported form of inventoryKey for seed construction.
func InventoryKey(medicineName, pharmacyName string) string {
	return inventoryKey(medicineName, pharmacyName)
}
