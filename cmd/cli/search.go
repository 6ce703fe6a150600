package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medilink/supply-service/internal/discovery"
)

var (
	searchLat float64
	searchLng float64
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for a medicine across approved pharmacies",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Float64Var(&searchLat, "lat", 0, "user latitude")
	searchCmd.Flags().Float64Var(&searchLng, "lng", 0, "user longitude")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	var userLoc *discovery.UserLocation
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		userLoc = &discovery.UserLocation{Latitude: searchLat, Longitude: searchLng}
	}

	results := engine.Search(context.Background(), query, store.ApprovedPharmacies(), userLoc)
	if len(results) == 0 {
		fmt.Printf("No pharmacies found for %q\n", query)
		return nil
	}

	fmt.Printf("Found %d result(s) for %q:\n\n", len(results), query)
	for i, r := range results {
		distance := "unknown distance"
		if r.Distance != nil {
			distance = fmt.Sprintf("%.1f km", *r.Distance)
		}
		fmt.Printf("%2d. %s (%s)\n", i+1, r.PharmacyName, r.PharmacyCity)
		fmt.Printf("    %s: %d birr, qty %d, %s [%s, %s]\n",
			r.MedicineName, r.Price, r.Quantity, distance, r.Availability, r.Source)
	}
	return nil
}
