package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medilink/supply-service/internal/catalog"
)

// BoardListing represents one price-board row
type BoardListing struct {
	PharmacyName string  `json:"pharmacyName"`
	Location     string  `json:"location"`
	Price        int64   `json:"price"`
	Rating       float64 `json:"rating"`
}

func toBoardListings(listings []catalog.Listing) []BoardListing {
	out := make([]BoardListing, 0, len(listings))
	for _, l := range listings {
		out = append(out, BoardListing{
			PharmacyName: l.PharmacyName,
			Location:     l.Location,
			Price:        l.Price,
			Rating:       l.Rating,
		})
	}
	return out
}

// GetPriceBoard returns the full derived price board
// GET /internal/priceboard
func GetPriceBoard(c *gin.Context) {
	board := boardStore.PriceBoard()

	out := make(map[string][]BoardListing, len(board))
	for medicineID, listings := range board {
		out[medicineID] = toBoardListings(listings)
	}

	c.JSON(http.StatusOK, gin.H{"board": out})
}

// GetMedicineListings returns the board rows for one medicine
// GET /internal/priceboard/:medicineId
func GetMedicineListings(c *gin.Context) {
	medicineID := c.Param("medicineId")

	listings, ok := boardStore.MedicineListings(medicineID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "medicine " + medicineID + " not found"})
		return
	}

	medicine, _ := store.MedicineByID(medicineID)
	c.JSON(http.StatusOK, gin.H{
		"medicineId":   medicineID,
		"medicineName": medicine.Name,
		"listings":     toBoardListings(listings),
	})
}
