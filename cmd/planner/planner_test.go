package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcart/internal/plan"
	"smartcart/internal/travel"
	"smartcart/internal/trip"
)

const requestYAML = `
origin: {lat: 42.28, lng: -83.74}
items: [milk, eggs, bread]
preferred_chains: [Walmart, Target]
strict: true
stores:
  - name: "Walmart #1"
    chain: Walmart
    address: 1 Main St
    location: {lat: 42.29, lng: -83.74}
  - name: "Target #2"
    chain: Target
    address: 2 Oak Ave
    location: {lat: 42.28, lng: -83.72}
  - name: Kroger
    chain: Kroger
    location: {lat: 42.27, lng: -83.74}
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOptimizeCommand_Strict(t *testing.T) {
	path := writeFile(t, "request.yaml", requestYAML)

	out, err := runCLI(t, "optimize", "-f", path)
	require.NoError(t, err)

	var res trip.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	assert.Equal(t, trip.StatusOK, res.Status)
	require.NotNil(t, res.Plan)
	assert.Equal(t, []string{"Target #2", "Walmart #1"}, res.Plan.Stores)
	assert.Equal(t, plan.ModeStrict, res.Plan.Scenario)
	assert.Empty(t, res.Plan.MissingChains)
	assert.NotEmpty(t, res.MapsURL)
}

func TestOptimizeCommand_CustomPrices(t *testing.T) {
	path := writeFile(t, "request.yaml", requestYAML)
	prices := writeFile(t, "prices.yaml", `
base_price: 2.00
prices:
  - {item: milk, chain: Target, price: 0.50}
`)

	out, err := runCLI(t, "optimize", "-f", path, "--prices", prices)
	require.NoError(t, err)

	var res trip.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotNil(t, res.Plan)
	// Walmart's 0.90 multiplier beats Target's 0.95 on everything but milk.
	assert.Equal(t, []plan.Assignment{{Item: "milk", Price: 0.50}}, res.Plan.ShoppingList["Target #2"])
	assert.Len(t, res.Plan.ShoppingList["Walmart #1"], 2)
}

func TestOptimizeCommand_MissingFile(t *testing.T) {
	_, err := runCLI(t, "optimize", "-f", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = runCLI(t, "optimize")
	assert.Error(t, err)
}

func TestTravelCostCommand(t *testing.T) {
	out, err := runCLI(t, "travel-cost", "--meters", "1609", "--seconds", "3600")
	require.NoError(t, err)

	var cost travel.Cost
	require.NoError(t, json.Unmarshal([]byte(out), &cost))
	assert.Equal(t, 0.14, cost.GasCost)
	assert.Equal(t, 20.0, cost.TimeCost)
	assert.Equal(t, 20.14, cost.TotalTravelCost)
}
