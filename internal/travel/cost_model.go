package travel

import "math"

// MetersPerMile converts routing distances into miles.
const MetersPerMile = 1609.34

// Rates are the constants that turn a trip into money.
type Rates struct {
	MilesPerGallon     float64 `json:"miles_per_gallon" yaml:"miles_per_gallon"`
	GasPricePerGallon  float64 `json:"gas_price_per_gallon" yaml:"gas_price_per_gallon"`
	ValueOfTimePerHour float64 `json:"value_of_time_per_hour" yaml:"value_of_time_per_hour"`
}

// DefaultRates returns the average US vehicle and a $20/h time value.
func DefaultRates() Rates {
	return Rates{
		MilesPerGallon:     25.0,
		GasPricePerGallon:  3.50,
		ValueOfTimePerHour: 20.00,
	}
}

// Cost is the monetary breakdown of one round trip.
//
// TotalTravelCost is gas plus the value of time and is what the optimizer
// minimizes. Presentation layers show gas only (see DisplayCost), so the
// number a user sees is lower than the number that ranked the plan.
type Cost struct {
	GasCost         float64 `json:"gas_cost"`
	TimeCost        float64 `json:"time_cost"`
	DistanceMiles   float64 `json:"distance_miles"`
	TimeHours       float64 `json:"time_hours"`
	TotalTravelCost float64 `json:"total_travel_cost"`
}

// Calculate prices a trip with the default rates.
func Calculate(distanceMeters, durationSeconds float64) Cost {
	return DefaultRates().Calculate(distanceMeters, durationSeconds)
}

// Calculate converts distance and duration into a Cost.
// PURE business logic (no routing / no I/O)
func (r Rates) Calculate(distanceMeters, durationSeconds float64) Cost {
	if distanceMeters < 0 {
		distanceMeters = 0
	}
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	miles := distanceMeters / MetersPerMile

	var gas float64
	if r.MilesPerGallon > 0 {
		gas = miles / r.MilesPerGallon * r.GasPricePerGallon
	}

	hours := durationSeconds / 3600
	timeCost := hours * r.ValueOfTimePerHour

	return Cost{
		GasCost:         Round2(gas),
		TimeCost:        Round2(timeCost),
		DistanceMiles:   Round2(miles),
		TimeHours:       Round2(hours),
		TotalTravelCost: Round2(gas + timeCost),
	}
}

// DisplayCost is the gas-only travel figure shown to shoppers.
func (c Cost) DisplayCost() float64 {
	return c.GasCost
}

// Round2 rounds money and measurements to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
