package collab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRetryConfig() RetryConfig {
	return RetryConfig{
		RequestsPerSecond: 1000,
		Burst:             1000,
		MaxRetries:        2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        10 * time.Millisecond,
	}
}

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, "test-key", 5*time.Second, testRetryConfig())
}

func TestApprovedPharmacies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/internal/pharmacies/approved", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Internal-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": {"pharmacies": [
				{"id": "PH-001", "pharmacyName": "Addis Lifeline Pharmacy",
				 "pharmacyLocation": {"lat": 9.0054, "lng": 38.7636, "address": "Bole Road", "city": "Addis Ababa"}},
				{"id": "PH-010", "pharmacyName": "No Location Pharmacy"}
			]}
		}`))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).ApprovedPharmacies(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "PH-001", got[0].ID)
	assert.Equal(t, "Addis Lifeline Pharmacy", got[0].Name)
	require.NotNil(t, got[0].Location)
	assert.Equal(t, 9.0054, got[0].Location.Latitude)
	assert.Equal(t, "Addis Ababa", got[0].City)

	assert.Nil(t, got[1].Location)
}

func TestCheckAvailability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"success": true, "quantity": 12, "price": 110, "medicine": "Insulin"}`))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).CheckAvailability(context.Background(), "PH-001", "Insulin")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)
	assert.Equal(t, int64(110), got.Price)
	assert.Equal(t, "Insulin", got.Medicine)
}

func TestCheckAvailabilityReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "medicine not stocked"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CheckAvailability(context.Background(), "PH-001", "Warfarin")
	require.Error(t, err)

	var collabErr *CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "check_availability", collabErr.Op)
	assert.Contains(t, err.Error(), "medicine not stocked")
}

func TestListInventoryTolerantFieldNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/internal/pharmacies/PH-001/inventory", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": {"inventory": [
				{"medicineName": "Insulin", "quantity": 25, "price": 112},
				{"name": "Amoxicillin 500mg", "stock": 60, "unitPrice": 44},
				{"quantity": 5, "price": 10}
			]}
		}`))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).ListInventory(context.Background(), "PH-001")
	require.NoError(t, err)

	// The nameless row is dropped; both field spellings decode.
	require.Len(t, got, 2)
	assert.Equal(t, "Insulin", got[0].MedicineName)
	assert.Equal(t, 25, got[0].Quantity)
	assert.Equal(t, int64(112), got[0].Price)
	assert.Equal(t, "Amoxicillin 500mg", got[1].MedicineName)
	assert.Equal(t, 60, got[1].Quantity)
	assert.Equal(t, int64(44), got[1].Price)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"success": true, "quantity": 3, "price": 90, "medicine": "Insulin"}`))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).CheckAvailability(context.Background(), "PH-001", "Insulin")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CheckAvailability(context.Background(), "PH-001", "Insulin")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var collabErr *CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, http.StatusNotFound, collabErr.Status)
}

func TestExhaustedRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListInventory(context.Background(), "PH-001")
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())

	var collabErr *CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, 3, collabErr.Attempts)
	assert.Equal(t, http.StatusServiceUnavailable, collabErr.Status)
}

func TestMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ApprovedPharmacies(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).CheckAvailability(ctx, "PH-001", "Insulin")
	require.Error(t, err)
}
