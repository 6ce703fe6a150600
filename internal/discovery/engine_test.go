package discovery

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medilink/supply-service/internal/catalog"
)

// mockInventorySource scripts per-pharmacy answers for the live tiers.
type mockInventorySource struct {
	availability map[string]Availability // keyed by pharmacy ID
	checkErr     error
	inventory    map[string][]InventoryItem
	listErr      error

	checkCalls atomic.Int32
	listCalls  atomic.Int32
}

func (m *mockInventorySource) CheckAvailability(_ context.Context, pharmacyID, _ string) (Availability, error) {
	m.checkCalls.Add(1)
	if m.checkErr != nil {
		return Availability{}, m.checkErr
	}
	av, ok := m.availability[pharmacyID]
	if !ok {
		return Availability{}, errors.New("pharmacy has no availability endpoint")
	}
	return av, nil
}

func (m *mockInventorySource) ListInventory(_ context.Context, pharmacyID string) ([]InventoryItem, error) {
	m.listCalls.Add(1)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.inventory[pharmacyID], nil
}

func newTestEngine(t *testing.T, src InventorySource) (*Engine, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore(catalog.DefaultSeed())
	return NewEngine(src, store, DefaultConfig()), store
}

func TestSearchBlankQuery(t *testing.T) {
	engine, store := newTestEngine(t, nil)

	assert.Empty(t, engine.Search(context.Background(), "", store.ApprovedPharmacies(), nil))
	assert.Empty(t, engine.Search(context.Background(), "   ", store.ApprovedPharmacies(), nil))
}

func TestSearchLiveTierWins(t *testing.T) {
	src := &mockInventorySource{
		availability: map[string]Availability{
			"PH-001": {Quantity: 12, Price: 110, Medicine: "Insulin"},
		},
	}
	engine, store := newTestEngine(t, src)

	results := engine.Search(context.Background(), "Insulin", store.ApprovedPharmacies(), nil)

	// One pharmacy answered live; the fallback candidates for the other
	// pharmacies are not mixed in.
	require.Len(t, results, 1)
	assert.Equal(t, "PH-001", results[0].PharmacyID)
	assert.Equal(t, SourceAPI, results[0].Source)
	assert.Equal(t, int64(110), results[0].Price)
	assert.Equal(t, InStock, results[0].Availability)
}

func TestSearchDegradesWhenCollaboratorDown(t *testing.T) {
	src := &mockInventorySource{checkErr: errors.New("connection refused")}
	engine, store := newTestEngine(t, src)

	results := engine.Search(context.Background(), "Insulin", store.ApprovedPharmacies(), nil)

	// Every live check failed, but the search still answers from the
	// simulated inventory and the catalog.
	require.Len(t, results, 4)
	for _, r := range results {
		assert.NotEqual(t, SourceAPI, r.Source)
		assert.Equal(t, "Insulin", r.MedicineName)
	}
	assert.Equal(t, int32(4), src.checkCalls.Load())
}

func TestSearchFallbackPrefersSimulatedInventory(t *testing.T) {
	engine, store := newTestEngine(t, nil)

	results := engine.Search(context.Background(), "Insulin", store.ApprovedPharmacies(), nil)
	require.Len(t, results, 4)

	byPharmacy := make(map[string]SearchResult, len(results))
	for _, r := range results {
		byPharmacy[r.PharmacyID] = r
	}

	// PH-001 has a simulated entry with its own price and quantity.
	assert.Equal(t, SourcePharmacyInventory, byPharmacy["PH-001"].Source)
	assert.Equal(t, int64(112), byPharmacy["PH-001"].Price)
	assert.Equal(t, 25, byPharmacy["PH-001"].Quantity)
	assert.Equal(t, InStock, byPharmacy["PH-001"].Availability)

	// PH-002's simulated entry is empty stock.
	assert.Equal(t, OutOfStock, byPharmacy["PH-002"].Availability)

	// PH-003 has no entry and falls through to the catalog base price.
	assert.Equal(t, SourceCatalog, byPharmacy["PH-003"].Source)
	assert.Equal(t, int64(115), byPharmacy["PH-003"].Price)
	assert.Equal(t, 10, byPharmacy["PH-003"].Quantity)
}

func TestSearchAtPharmacyDoorstep(t *testing.T) {
	engine, store := newTestEngine(t, nil)
	user := &UserLocation{Latitude: 9.0054, Longitude: 38.7636}

	results := engine.Search(context.Background(), "Insulin", store.ApprovedPharmacies(), user)
	require.NotEmpty(t, results)

	for _, r := range results {
		if r.PharmacyID == "PH-001" {
			require.NotNil(t, r.Distance)
			assert.InDelta(t, 0, *r.Distance, 0.001)
			return
		}
	}
	t.Fatal("expected a result for PH-001")
}

func TestSearchRanking(t *testing.T) {
	engine, store := newTestEngine(t, nil)
	user := &UserLocation{Latitude: 9.0054, Longitude: 38.7636}

	results := engine.Search(context.Background(), "Insulin", store.ApprovedPharmacies(), user)
	require.Len(t, results, 4)

	// Cheapest first; among equal prices, nearest first with unknown
	// distance last.
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		require.LessOrEqual(t, prev.Price, cur.Price)
		if prev.Price == cur.Price && prev.Distance != nil && cur.Distance != nil {
			assert.LessOrEqual(t, *prev.Distance, *cur.Distance)
		}
		if prev.Price == cur.Price && prev.Distance == nil {
			assert.Nil(t, cur.Distance, "unknown distance must not precede a known one")
		}
	}
}

func TestSearchRankingUnknownDistanceLast(t *testing.T) {
	engine, store := newTestEngine(t, nil)
	user := &UserLocation{Latitude: 9.0054, Longitude: 38.7636}

	// Omeprazole has the same catalog fallback everywhere except the
	// simulated Entoto entry; among equal-price rows the unlocated
	// pharmacy sorts last.
	results := engine.Search(context.Background(), "Omeprazole", store.ApprovedPharmacies(), user)
	require.Len(t, results, 4)

	samePrice := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if r.Price == 38 {
			samePrice = append(samePrice, r)
		}
	}
	require.NotEmpty(t, samePrice)
	last := samePrice[len(samePrice)-1]
	if last.Distance != nil {
		for _, r := range samePrice {
			assert.NotNil(t, r.Distance)
		}
	}
}

func TestSearchNoMatches(t *testing.T) {
	engine, store := newTestEngine(t, nil)

	results := engine.Search(context.Background(), "Warfarin", store.ApprovedPharmacies(), nil)
	assert.Empty(t, results)
}

func TestCheckAvailabilityLiveTier(t *testing.T) {
	src := &mockInventorySource{
		availability: map[string]Availability{
			"PH-001": {Quantity: 7, Price: 111, Medicine: "Insulin"},
		},
	}
	engine, _ := newTestEngine(t, src)

	got := engine.CheckAvailability(context.Background(), "PH-001", "Insulin")

	assert.True(t, got.Success)
	assert.Equal(t, SourceAPI, got.Source)
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, int64(111), got.Price)
}

func TestCheckAvailabilityInventoryListTier(t *testing.T) {
	src := &mockInventorySource{
		checkErr: errors.New("endpoint gone"),
		inventory: map[string][]InventoryItem{
			"PH-003": {
				{MedicineName: "insulin", Quantity: 4, Price: 118},
			},
		},
	}
	engine, _ := newTestEngine(t, src)

	got := engine.CheckAvailability(context.Background(), "PH-003", "Insulin")

	// The direct check failed but the full listing matched the medicine
	// case-insensitively.
	assert.True(t, got.Success)
	assert.Equal(t, SourceAPI, got.Source)
	assert.Equal(t, 4, got.Quantity)
}

func TestCheckAvailabilityCascadesToSimulated(t *testing.T) {
	src := &mockInventorySource{
		checkErr: errors.New("connection refused"),
		listErr:  errors.New("connection refused"),
	}
	engine, _ := newTestEngine(t, src)

	got := engine.CheckAvailability(context.Background(), "PH-003", "Amoxicillin 500mg")

	assert.True(t, got.Success)
	assert.Equal(t, SourcePharmacyInventory, got.Source)
	assert.Equal(t, 35, got.Quantity)
	assert.Equal(t, int64(47), got.Price)
}

func TestCheckAvailabilityCascadesToCatalog(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	// No simulated entry for Amlodipine at Unity Health; the catalog
	// answers with the default quantity.
	got := engine.CheckAvailability(context.Background(), "PH-002", "Amlodipine 5mg")

	assert.True(t, got.Success)
	assert.Equal(t, SourceCatalog, got.Source)
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, int64(55), got.Price)
}

func TestCheckAvailabilityUnknownMedicine(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	got := engine.CheckAvailability(context.Background(), "PH-001", "Warfarin")

	assert.False(t, got.Success)
	assert.Contains(t, got.Error, "Warfarin not found in Addis Lifeline Pharmacy's inventory")
}

func TestCheckAvailabilityReportsTierFailure(t *testing.T) {
	src := &mockInventorySource{
		checkErr: errors.New("connection refused"),
		listErr:  errors.New("connection refused"),
	}
	engine, _ := newTestEngine(t, src)

	got := engine.CheckAvailability(context.Background(), "PH-001", "Warfarin")

	// Nothing resolved and a tier genuinely failed; the error says so
	// instead of claiming the medicine does not exist.
	assert.False(t, got.Success)
	assert.Contains(t, got.Error, "failed")
	assert.Contains(t, got.Error, "connection refused")
}

func TestCheckAvailabilityUnknownPharmacy(t *testing.T) {
	src := &mockInventorySource{
		availability: map[string]Availability{
			"PH-999": {Quantity: 3, Price: 90, Medicine: "Insulin"},
		},
	}
	engine, _ := newTestEngine(t, src)

	// The catalog has never heard of PH-999 but the live tier still
	// answers for it.
	got := engine.CheckAvailability(context.Background(), "PH-999", "Insulin")

	assert.True(t, got.Success)
	assert.Equal(t, SourceAPI, got.Source)
}
