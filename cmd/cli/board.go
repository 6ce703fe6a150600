package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/medilink/supply-service/internal/catalog"
)

var boardCmd = &cobra.Command{
	Use:   "board [medicineId]",
	Short: "Print the derived price board",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		medicineID := args[0]
		listings, ok := board.MedicineListings(medicineID)
		if !ok {
			return fmt.Errorf("medicine %s not found", medicineID)
		}
		printListings(medicineID, listings)
		return nil
	}

	full := board.PriceBoard()
	ids := make([]string, 0, len(full))
	for id := range full {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		printListings(id, full[id])
		fmt.Println()
	}
	return nil
}

func printListings(medicineID string, listings []catalog.Listing) {
	name := medicineID
	if med, ok := store.MedicineByID(medicineID); ok {
		name = fmt.Sprintf("%s (%s)", med.Name, medicineID)
	}

	fmt.Printf("%s:\n", name)
	if len(listings) == 0 {
		fmt.Println("  no listings")
		return
	}
	for _, l := range listings {
		fmt.Printf("  %-28s %-24s %5d birr  %.1f\n", l.PharmacyName, l.Location, l.Price, l.Rating)
	}
}
