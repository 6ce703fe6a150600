package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medilink/supply-service/internal/discovery"
)

// SearchLocation represents the caller's geographic location
type SearchLocation struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// SearchRequest represents a medicine search request
type SearchRequest struct {
	Query    string          `json:"query" binding:"required"`
	Location *SearchLocation `json:"location,omitempty"`
}

// SearchResponse represents the ranked search results
type SearchResponse struct {
	Query   string                   `json:"query"`
	Count   int                      `json:"count"`
	Results []discovery.SearchResult `json:"results"`
}

// SearchMedicines handles tiered medicine search
// POST /internal/medicines/search
func SearchMedicines(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userLoc *discovery.UserLocation
	if req.Location != nil {
		userLoc = &discovery.UserLocation{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	ctx := c.Request.Context()
	results := engine.Search(ctx, req.Query, approvedPharmacies(ctx), userLoc)

	c.JSON(http.StatusOK, SearchResponse{
		Query:   req.Query,
		Count:   len(results),
		Results: results,
	})
}
