package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Collaborator string `json:"collaborator"`
	Medicines    int    `json:"medicines"`
	Pharmacies   int    `json:"pharmacies"`
}

// HealthCheck handles the health check endpoint
func HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:     "ok",
		Medicines:  len(store.Medicines()),
		Pharmacies: len(store.Pharmacies()),
	}

	if pharmacySource != nil {
		response.Collaborator = "configured"
	} else {
		response.Collaborator = "not configured"
	}

	c.JSON(http.StatusOK, response)
}
