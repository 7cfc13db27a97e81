package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_OneMileOneHour(t *testing.T) {
	cost := Calculate(1609, 3600)

	assert.Equal(t, 0.14, cost.GasCost)
	assert.Equal(t, 1.0, cost.TimeHours)
	assert.Equal(t, 20.00, cost.TimeCost)
	assert.Equal(t, 1.0, cost.DistanceMiles)
	assert.Equal(t, 20.14, cost.TotalTravelCost)
}

func TestCalculate_ZeroInputs(t *testing.T) {
	assert.Equal(t, Cost{}, Calculate(0, 0))
}

func TestCalculate_NegativeInputsClampToZero(t *testing.T) {
	assert.Equal(t, Cost{}, Calculate(-100, -5))
}

func TestRates_ZeroMPGHasNoGasCost(t *testing.T) {
	r := Rates{MilesPerGallon: 0, GasPricePerGallon: 3.5, ValueOfTimePerHour: 10}

	cost := r.Calculate(16093.4, 1800)

	assert.Equal(t, 0.0, cost.GasCost)
	assert.Equal(t, 5.0, cost.TimeCost)
	assert.Equal(t, 10.0, cost.DistanceMiles)
	assert.Equal(t, 5.0, cost.TotalTravelCost)
}

func TestCost_DisplayCostIsGasOnly(t *testing.T) {
	cost := Calculate(16093.4, 3600)

	assert.Equal(t, 1.4, cost.DisplayCost())
	assert.Greater(t, cost.TotalTravelCost, cost.DisplayCost())
}
