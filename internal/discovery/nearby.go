package discovery

import (
	"sort"

	"github.com/medilink/supply-service/internal/catalog"
	"github.com/medilink/supply-service/internal/matching"
)

// FilterMode selects how the nearby filter constrains the directory.
type FilterMode string

const (
	// FilterNone returns every input pharmacy, annotated with distance
	// when the user location is known.
	FilterNone FilterMode = ""

	// FilterLocation keeps pharmacies within RadiusKm of the user.
	FilterLocation FilterMode = "location"

	// FilterCity keeps pharmacies whose city matches a case-insensitive
	// substring.
	FilterCity FilterMode = "city"
)

// NearbyOptions configures FilterNearby.
type NearbyOptions struct {
	Mode         FilterMode
	UserLocation *UserLocation
	RadiusKm     float64
	City         string
}

// NearbyPharmacy is a directory entry annotated with its distance from the
// user, when known.
type NearbyPharmacy struct {
	catalog.Pharmacy
	Distance *float64
}

// FilterNearby applies radius or city constraints over a pharmacy list.
// Pharmacies without a known location never pass radius filtering but flow
// through unfiltered modes with an unknown distance. When the user
// location is present, results are sorted ascending by distance with
// unknown distances last; otherwise input order is preserved.
func FilterNearby(pharmacies []catalog.Pharmacy, opts NearbyOptions) []NearbyPharmacy {
	out := make([]NearbyPharmacy, 0, len(pharmacies))

	for _, p := range pharmacies {
		dist := pharmacyDistance(opts.UserLocation, p)

		switch opts.Mode {
		case FilterLocation:
			if opts.UserLocation == nil {
				// No point to measure from; fall back to pass-through.
				out = append(out, NearbyPharmacy{Pharmacy: p, Distance: dist})
				continue
			}
			if dist == nil || *dist > opts.RadiusKm {
				continue
			}
			out = append(out, NearbyPharmacy{Pharmacy: p, Distance: dist})

		case FilterCity:
			if !matching.ContainsFold(p.City, opts.City) {
				continue
			}
			out = append(out, NearbyPharmacy{Pharmacy: p, Distance: dist})

		default:
			out = append(out, NearbyPharmacy{Pharmacy: p, Distance: dist})
		}
	}

	if opts.UserLocation != nil {
		sortByDistance(out)
	}
	return out
}

// sortByDistance orders pharmacies ascending by distance; unknown
// distances sort after every known one. The sort is stable so equal
// distances keep input order.
func sortByDistance(pharmacies []NearbyPharmacy) {
	sort.SliceStable(pharmacies, func(i, j int) bool {
		a, b := pharmacies[i].Distance, pharmacies[j].Distance
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
}
