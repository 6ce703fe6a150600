package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medilink/supply-service/internal/ledger"
)

// ShipmentRequest represents a new supplier shipment
type ShipmentRequest struct {
	Supplier       string     `json:"supplier,omitempty"`
	MedicineID     string     `json:"medicineId" binding:"required"`
	MedicineName   string     `json:"medicineName,omitempty"`
	PharmacyID     string     `json:"pharmacyId" binding:"required"`
	PharmacyName   string     `json:"pharmacyName,omitempty"`
	PharmacyCity   string     `json:"pharmacyCity,omitempty"`
	PharmacyKebele string     `json:"pharmacyKebele,omitempty"`
	Quantity       int        `json:"quantity" binding:"omitempty,min=0"`
	WholesalePrice float64    `json:"wholesalePrice" binding:"omitempty,min=0"`
	MarkupPercent  float64    `json:"markupPercent"`
	Status         string     `json:"status,omitempty"`
	ETA            *time.Time `json:"eta,omitempty"`
}

// ShipmentResponse represents a recorded shipment
type ShipmentResponse struct {
	ShipmentID     string     `json:"shipmentId"`
	Supplier       string     `json:"supplier,omitempty"`
	MedicineID     string     `json:"medicineId"`
	MedicineName   string     `json:"medicineName,omitempty"`
	PharmacyID     string     `json:"pharmacyId"`
	PharmacyName   string     `json:"pharmacyName,omitempty"`
	Quantity       int        `json:"quantity"`
	WholesalePrice float64    `json:"wholesalePrice"`
	MarkupPercent  float64    `json:"markupPercent"`
	Status         string     `json:"status"`
	ETA            *time.Time `json:"eta,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ShipmentStatusRequest represents a status transition
type ShipmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func toShipmentResponse(s ledger.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ShipmentID:     s.ID,
		Supplier:       s.Supplier,
		MedicineID:     s.MedicineID,
		MedicineName:   s.MedicineName,
		PharmacyID:     s.PharmacyID,
		PharmacyName:   s.PharmacyName,
		Quantity:       s.Quantity,
		WholesalePrice: s.WholesalePrice,
		MarkupPercent:  s.MarkupPercent,
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
	}
	if !s.ETA.IsZero() {
		eta := s.ETA
		resp.ETA = &eta
	}
	return resp
}

// ledgerErrorStatus maps ledger errors to HTTP status codes.
func ledgerErrorStatus(err error) int {
	var validationErr ledger.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var notFoundErr ledger.NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// RecordShipment appends a shipment to the ledger and folds it into the
// price board
// POST /internal/shipments
func RecordShipment(c *gin.Context) {
	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shipment := ledger.Shipment{
		Supplier:       req.Supplier,
		MedicineID:     req.MedicineID,
		MedicineName:   req.MedicineName,
		PharmacyID:     req.PharmacyID,
		PharmacyName:   req.PharmacyName,
		PharmacyCity:   req.PharmacyCity,
		PharmacyKebele: req.PharmacyKebele,
		Quantity:       req.Quantity,
		WholesalePrice: req.WholesalePrice,
		MarkupPercent:  req.MarkupPercent,
		Status:         ledger.Status(req.Status),
	}
	if req.ETA != nil {
		shipment.ETA = *req.ETA
	}

	recorded, err := boardStore.RecordShipment(shipment)
	if err != nil {
		c.JSON(ledgerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toShipmentResponse(recorded))
}

// UpdateShipmentStatus transitions a shipment's delivery status
// PATCH /internal/shipments/:shipmentId/status
func UpdateShipmentStatus(c *gin.Context) {
	var req ShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := boardStore.UpdateShipmentStatus(c.Param("shipmentId"), ledger.Status(req.Status))
	if err != nil {
		c.JSON(ledgerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toShipmentResponse(updated))
}

// ListShipments returns the ledger newest-first
// GET /internal/shipments
func ListShipments(c *gin.Context) {
	shipments := boardStore.Shipments()

	out := make([]ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, toShipmentResponse(s))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(out),
		"shipments": out,
	})
}
