package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medilink/supply-service/internal/discovery"
)

// NearbyRequest represents a pharmacy directory filter request
type NearbyRequest struct {
	Mode     string          `json:"mode" binding:"omitempty,oneof=location city"`
	Location *SearchLocation `json:"location,omitempty"`
	RadiusKm float64         `json:"radiusKm" binding:"omitempty,gt=0"`
	City     string          `json:"city,omitempty"`
}

// NearbyPharmacy represents one directory entry with optional distance
type NearbyPharmacy struct {
	PharmacyID string   `json:"pharmacyId"`
	Name       string   `json:"name"`
	City       string   `json:"city"`
	Kebele     string   `json:"kebele,omitempty"`
	Address    string   `json:"address,omitempty"`
	Distance   *float64 `json:"distance"`
}

// NearbyResponse represents the filtered pharmacy directory
type NearbyResponse struct {
	Count      int              `json:"count"`
	Pharmacies []NearbyPharmacy `json:"pharmacies"`
}

// NearbyPharmacies filters the approved-pharmacy directory by radius or
// city
// POST /internal/pharmacies/nearby
func NearbyPharmacies(c *gin.Context) {
	var req NearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode == string(discovery.FilterCity) && req.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required for city mode"})
		return
	}
	if req.Mode == string(discovery.FilterLocation) && req.RadiusKm <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "radiusKm is required for location mode"})
		return
	}

	opts := discovery.NearbyOptions{
		Mode:     discovery.FilterMode(req.Mode),
		RadiusKm: req.RadiusKm,
		City:     req.City,
	}
	if req.Location != nil {
		opts.UserLocation = &discovery.UserLocation{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	filtered := discovery.FilterNearby(approvedPharmacies(c.Request.Context()), opts)

	pharmacies := make([]NearbyPharmacy, 0, len(filtered))
	for _, p := range filtered {
		entry := NearbyPharmacy{
			PharmacyID: p.ID,
			Name:       p.Name,
			City:       p.City,
			Kebele:     p.Kebele,
			Distance:   p.Distance,
		}
		if p.Location != nil {
			entry.Address = p.Location.Address
		}
		pharmacies = append(pharmacies, entry)
	}

	c.JSON(http.StatusOK, NearbyResponse{
		Count:      len(pharmacies),
		Pharmacies: pharmacies,
	})
}
