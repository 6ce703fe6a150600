package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAvailability resolves a single pharmacy/medicine availability question
// through the fallback cascade
// GET /internal/pharmacies/:pharmacyId/availability?medicine=Insulin
func GetAvailability(c *gin.Context) {
	pharmacyID := c.Param("pharmacyId")
	medicine := c.Query("medicine")
	if medicine == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "medicine query parameter is required"})
		return
	}

	result := engine.CheckAvailability(c.Request.Context(), pharmacyID, medicine)

	// The cascade always produces a definite answer; an unresolved
	// medicine is a payload-level failure, not an HTTP error.
	c.JSON(http.StatusOK, result)
}
