// Package pricing turns the shipment ledger into the patient-facing price
// board. PatientPrice is the single source of truth for what a patient
// pays; the reducer and every display surface use it so the same shipment
// never produces divergent numbers.
package pricing

import "math"

// FloorPrice is the market-floor display price in birr. No listing is ever
// priced below it.
const FloorPrice int64 = 10

// PatientPrice computes the patient-facing price from a wholesale price and
// a supplier markup percentage. Malformed supplier input (non-finite or
// non-positive result) falls back to the wholesale price, and the floor
// applies in every case.
func PatientPrice(wholesalePrice, markupPercent float64) int64 {
	raw := wholesalePrice * (1 + markupPercent/100)
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw <= 0 {
		if wholesalePrice > 0 {
			raw = wholesalePrice
		} else {
			return FloorPrice
		}
	}

	price := int64(math.Round(raw))
	if price < FloorPrice {
		return FloorPrice
	}
	return price
}
