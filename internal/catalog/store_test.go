package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMedicines(t *testing.T) {
	store := NewStore(DefaultSeed())

	results := store.SearchMedicines("insulin")
	require.Len(t, results, 1)
	assert.Equal(t, "MED-001", results[0].ID)

	// Substring, case-insensitive
	results = store.SearchMedicines("500MG")
	assert.Len(t, results, 3)

	// Blank query matches nothing
	assert.Empty(t, store.SearchMedicines(""))
	assert.Empty(t, store.SearchMedicines("   "))
}

func TestApprovedPharmacies(t *testing.T) {
	store := NewStore(DefaultSeed())

	approved := store.ApprovedPharmacies()
	require.Len(t, approved, 4)
	for _, p := range approved {
		assert.Equal(t, ApprovalApproved, p.Approval)
	}
}

func TestBaseBoardIsDeepCopy(t *testing.T) {
	store := NewStore(DefaultSeed())

	first := store.BaseBoard()
	first["MED-001"][0].Price = 1

	second := store.BaseBoard()
	assert.Equal(t, int64(115), second["MED-001"][0].Price,
		"mutating one snapshot must not leak into the next")
}

func TestSimulatedInventoryNormalizedLookup(t *testing.T) {
	store := NewStore(DefaultSeed())

	entry, ok := store.SimulatedInventory("INSULIN", "addis lifeline pharmacy")
	require.True(t, ok)
	assert.Equal(t, 25, entry.Quantity)
	assert.Equal(t, int64(112), entry.Price)

	_, ok = store.SimulatedInventory("Insulin", "Blue Nile Dispensary")
	assert.False(t, ok)
}

func TestPriceBoardClone(t *testing.T) {
	board := PriceBoard{
		"MED-001": {{PharmacyName: "A", Price: 10}},
	}
	clone := board.Clone()
	clone["MED-001"][0].Price = 99
	clone["MED-002"] = []Listing{{PharmacyName: "B", Price: 20}}

	assert.Equal(t, int64(10), board["MED-001"][0].Price)
	_, ok := board["MED-002"]
	assert.False(t, ok)
}
