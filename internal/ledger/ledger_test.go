package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAssignsIDStatusAndTimestamp(t *testing.T) {
	l := NewSupplyLedger()

	s, err := l.Record(Shipment{
		Supplier:       "EthioPharm Distribution",
		PharmacyID:     "PH-001",
		PharmacyName:   "Addis Lifeline Pharmacy",
		MedicineID:     "MED-001",
		MedicineName:   "Insulin",
		Quantity:       50,
		WholesalePrice: 80,
		MarkupPercent:  25,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(s.ID, "shp_"))
	assert.Equal(t, StatusInTransit, s.Status)
	assert.False(t, s.CreatedAt.IsZero())
	assert.Equal(t, 1, l.Len())
}

func TestRecordValidation(t *testing.T) {
	l := NewSupplyLedger()

	_, err := l.Record(Shipment{PharmacyID: "PH-001"})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "medicineId", verr.Field)

	_, err = l.Record(Shipment{MedicineID: "MED-001"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pharmacyId", verr.Field)

	_, err = l.Record(Shipment{MedicineID: "MED-001", PharmacyID: "PH-001", Status: "teleported"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)

	assert.Equal(t, 0, l.Len(), "failed writes must not append")
}

func TestUpdateStatus(t *testing.T) {
	l := NewSupplyLedger()
	s, err := l.Record(Shipment{MedicineID: "MED-001", PharmacyID: "PH-001", Quantity: 10})
	require.NoError(t, err)

	updated, err := l.UpdateStatus(s.ID, StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, updated.Status)
	assert.Equal(t, s.Quantity, updated.Quantity, "other fields unchanged")

	_, err = l.UpdateStatus("shp_missing", StatusDelayed)
	var nerr NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "shp_missing", nerr.ID)

	_, err = l.UpdateStatus(s.ID, "lost")
	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestShipmentOrdering(t *testing.T) {
	l := NewSupplyLedger()
	first, _ := l.Record(Shipment{MedicineID: "MED-001", PharmacyID: "PH-001"})
	second, _ := l.Record(Shipment{MedicineID: "MED-002", PharmacyID: "PH-002"})

	chrono := l.Shipments()
	require.Len(t, chrono, 2)
	assert.Equal(t, first.ID, chrono[0].ID)
	assert.Equal(t, second.ID, chrono[1].ID)

	recent := l.Recent()
	assert.Equal(t, second.ID, recent[0].ID)
	assert.Equal(t, first.ID, recent[1].ID)
}

func TestShipmentsReturnsCopy(t *testing.T) {
	l := NewSupplyLedger()
	s, _ := l.Record(Shipment{MedicineID: "MED-001", PharmacyID: "PH-001"})

	snapshot := l.Shipments()
	snapshot[0].Status = StatusDelayed

	fresh := l.Shipments()
	assert.Equal(t, StatusInTransit, fresh[0].Status)
	_ = s
}
