package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var availabilityCmd = &cobra.Command{
	Use:   "availability <pharmacyId> <medicine>",
	Short: "Check whether a pharmacy stocks a medicine",
	Args:  cobra.ExactArgs(2),
	RunE:  runAvailability,
}

func init() {
	rootCmd.AddCommand(availabilityCmd)
}

func runAvailability(cmd *cobra.Command, args []string) error {
	pharmacyID, medicine := args[0], args[1]

	result := engine.CheckAvailability(context.Background(), pharmacyID, medicine)
	if !result.Success {
		fmt.Println(result.Error)
		return nil
	}

	fmt.Printf("%s: qty %d at %d birr (source: %s)\n",
		result.Medicine, result.Quantity, result.Price, result.Source)
	return nil
}
