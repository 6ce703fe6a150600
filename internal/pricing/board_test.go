package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medilink/supply-service/internal/catalog"
	"github.com/medilink/supply-service/internal/ledger"
)

func TestRecordShipmentUpdatesBoard(t *testing.T) {
	store := NewBoardStore(testStore(), DefaultFoldOptions())

	_, err := store.RecordShipment(ledger.Shipment{
		MedicineID:     "MED-001",
		PharmacyID:     "PH-001",
		WholesalePrice: 80,
		MarkupPercent:  25,
	})
	require.NoError(t, err)

	listings, ok := store.MedicineListings("MED-001")
	require.True(t, ok)
	assert.Equal(t, int64(100), findListing(t, listings, "Addis Lifeline Pharmacy").Price)
}

func TestRecordShipmentValidationLeavesBoardUntouched(t *testing.T) {
	store := NewBoardStore(testStore(), DefaultFoldOptions())
	before := store.PriceBoard()

	_, err := store.RecordShipment(ledger.Shipment{PharmacyID: "PH-001"})
	var verr ledger.ValidationError
	require.ErrorAs(t, err, &verr)

	assert.Equal(t, before, store.PriceBoard())
	assert.Empty(t, store.Shipments())
}

func TestRebuildMatchesIncrementalBoard(t *testing.T) {
	store := NewBoardStore(testStore(), DefaultFoldOptions())

	shipments := []ledger.Shipment{
		{MedicineID: "MED-001", PharmacyID: "PH-001", WholesalePrice: 80, MarkupPercent: 25},
		{MedicineID: "MED-001", PharmacyID: "PH-002", WholesalePrice: 95, MarkupPercent: 30},
		{MedicineID: "MED-002", PharmacyID: "PH-003", WholesalePrice: 30, MarkupPercent: 50},
		{MedicineID: "MED-001", PharmacyID: "PH-001", WholesalePrice: 85, MarkupPercent: 20},
	}
	for _, s := range shipments {
		_, err := store.RecordShipment(s)
		require.NoError(t, err)
	}

	incremental := store.PriceBoard()
	rebuilt := store.Rebuild()
	assert.Equal(t, incremental, rebuilt)
}

func TestPriceBoardSnapshotIsImmutable(t *testing.T) {
	store := NewBoardStore(testStore(), DefaultFoldOptions())

	snapshot := store.PriceBoard()
	snapshot["MED-001"][0].Price = 1

	fresh := store.PriceBoard()
	assert.Equal(t, int64(115), fresh["MED-001"][0].Price)
}

func TestUpdateShipmentStatusDoesNotTouchBoard(t *testing.T) {
	store := NewBoardStore(testStore(), DefaultFoldOptions())

	recorded, err := store.RecordShipment(ledger.Shipment{
		MedicineID: "MED-001", PharmacyID: "PH-001", WholesalePrice: 80, MarkupPercent: 25,
	})
	require.NoError(t, err)
	before := store.PriceBoard()

	updated, err := store.UpdateShipmentStatus(recorded.ID, ledger.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusDelivered, updated.Status)
	assert.Equal(t, before, store.PriceBoard())
}

func TestBoardSeededFromCatalog(t *testing.T) {
	seed := catalog.DefaultSeed()
	store := NewBoardStore(catalog.NewStore(seed), DefaultFoldOptions())

	board := store.PriceBoard()
	for _, m := range seed.Medicines {
		_, ok := board[m.ID]
		assert.True(t, ok, "board must have an entry for %s", m.ID)
	}
	assert.Equal(t, seed.BaseListings["MED-001"], board["MED-001"])
}
