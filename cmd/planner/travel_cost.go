package main

import (
	"github.com/spf13/cobra"

	"smartcart/internal/travel"
)

func newTravelCostCmd() *cobra.Command {
	var (
		meters  float64
		seconds float64
		rates   = travel.DefaultRates()
	)

	cmd := &cobra.Command{
		Use:   "travel-cost",
		Short: "Price a trip of the given distance and duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), rates.Calculate(meters, seconds))
		},
	}

	cmd.Flags().Float64Var(&meters, "meters", 0, "round-trip distance in meters")
	cmd.Flags().Float64Var(&seconds, "seconds", 0, "round-trip duration in seconds")
	cmd.Flags().Float64Var(&rates.MilesPerGallon, "mpg", rates.MilesPerGallon, "vehicle fuel economy")
	cmd.Flags().Float64Var(&rates.GasPricePerGallon, "gas-price", rates.GasPricePerGallon, "dollars per gallon")
	cmd.Flags().Float64Var(&rates.ValueOfTimePerHour, "time-value", rates.ValueOfTimePerHour, "dollars per hour of driving")

	return cmd
}
