package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medilink/supply-service/internal/discovery"
)

var (
	nearbyLat    float64
	nearbyLng    float64
	nearbyRadius float64
	nearbyCity   string
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List approved pharmacies, filtered by radius or city",
	RunE:  runNearby,
}

func init() {
	nearbyCmd.Flags().Float64Var(&nearbyLat, "lat", 0, "user latitude")
	nearbyCmd.Flags().Float64Var(&nearbyLng, "lng", 0, "user longitude")
	nearbyCmd.Flags().Float64Var(&nearbyRadius, "radius", 0, "radius filter in km (requires --lat/--lng)")
	nearbyCmd.Flags().StringVar(&nearbyCity, "city", "", "city substring filter")
	rootCmd.AddCommand(nearbyCmd)
}

func runNearby(cmd *cobra.Command, args []string) error {
	opts := discovery.NearbyOptions{}

	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		opts.UserLocation = &discovery.UserLocation{Latitude: nearbyLat, Longitude: nearbyLng}
	}
	switch {
	case nearbyRadius > 0:
		if opts.UserLocation == nil {
			return fmt.Errorf("--radius requires --lat and --lng")
		}
		opts.Mode = discovery.FilterLocation
		opts.RadiusKm = nearbyRadius
	case nearbyCity != "":
		opts.Mode = discovery.FilterCity
		opts.City = nearbyCity
	}

	pharmacies := discovery.FilterNearby(store.ApprovedPharmacies(), opts)
	if len(pharmacies) == 0 {
		fmt.Println("No pharmacies matched")
		return nil
	}

	for _, p := range pharmacies {
		distance := ""
		if p.Distance != nil {
			distance = fmt.Sprintf("  %.1f km", *p.Distance)
		}
		fmt.Printf("%-28s %s, %s%s\n", p.Name, p.City, p.Kebele, distance)
	}
	return nil
}
