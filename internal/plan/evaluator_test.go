package plan

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcart/internal/pricing"
	"smartcart/internal/route"
	"smartcart/internal/store"
	"smartcart/internal/travel"
)

var home = store.Location{Lat: 42.28, Lng: -83.74}

// One second of driving costs one dollar, gas is free.
var dollarPerSecond = travel.Rates{MilesPerGallon: 1, GasPricePerGallon: 0, ValueOfTimePerHour: 3600}

// fakeRouter charges a fixed number of seconds per stop and fails any trip
// that includes a store listed in fail.
type fakeRouter struct {
	mu      sync.Mutex
	seconds map[string]int
	fail    map[string]bool
	calls   int
}

func (f *fakeRouter) Route(ctx context.Context, _ store.Location, stops []store.Store) (*route.Trip, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", route.ErrRouting, err)
	}

	trip := &route.Trip{Order: slices.Clone(stops)}
	for _, s := range stops {
		if f.fail[s.Name] {
			return nil, fmt.Errorf("%w: %s unreachable", route.ErrRouting, s.Name)
		}
		sec, ok := f.seconds[s.Name]
		if !ok {
			sec = 1
		}
		trip.DurationSeconds += sec
		trip.DistanceMeters += 1000
	}
	return trip, nil
}

func table(prices map[string]map[string]float64) pricing.Table {
	t := make(pricing.Table)
	for item, byStore := range prices {
		t[item] = make(map[string]pricing.Quote)
		for name, p := range byStore {
			t[item][name] = pricing.Quote{Price: p, Confidence: 0.8}
		}
	}
	return t
}

func stores(names ...string) []store.Store {
	out := make([]store.Store, len(names))
	for i, n := range names {
		out[i] = store.Store{Name: n, Chain: n, Location: home}
	}
	return out
}

func TestCombinations(t *testing.T) {
	names := []string{"a", "b", "c", "d"}

	got := slices.Collect(Combinations(names, 1, 3))
	require.Len(t, got, 4+6+4)
	assert.Equal(t, []string{"a"}, got[0])
	assert.Equal(t, []string{"a", "b"}, got[4])
	assert.Equal(t, []string{"b", "c", "d"}, got[len(got)-1])

	// Restartable.
	again := slices.Collect(Combinations(names, 1, 3))
	assert.Equal(t, got, again)

	assert.Len(t, slices.Collect(Combinations(names, 1, 10)), 15)
	assert.Empty(t, slices.Collect(Combinations(nil, 1, 3)))
	assert.Empty(t, slices.Collect(Combinations(names, 3, 2)))

	var first [][]string
	for c := range Combinations(names, 2, 2) {
		first = append(first, c)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, [][]string{{"a", "b"}, {"a", "c"}}, first)
}

func TestAllocate_CheapestStoreWins(t *testing.T) {
	tbl := table(map[string]map[string]float64{
		"milk":  {"A": 3.00, "B": 2.50},
		"bread": {"A": 1.00, "B": 1.20},
		"eggs":  {"A": 2.00, "B": 2.00},
	})

	alloc, err := Allocate([]string{"B", "A"}, []string{"Milk", "bread", "eggs"}, tbl)
	require.NoError(t, err)

	assert.Equal(t, []Assignment{{Item: "bread", Price: 1.00}, {Item: "eggs", Price: 2.00}}, alloc.ShoppingList["A"])
	assert.Equal(t, []Assignment{{Item: "milk", Price: 2.50}}, alloc.ShoppingList["B"])
	assert.Equal(t, 5.50, alloc.ItemCost)
	assert.Empty(t, alloc.Idle())
}

func TestAllocate_IdleStore(t *testing.T) {
	tbl := table(map[string]map[string]float64{"milk": {"A": 1, "B": 2}})

	alloc, err := Allocate([]string{"A", "B"}, []string{"milk"}, tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, alloc.Idle())
	assert.NotNil(t, alloc.ShoppingList["B"])
}

func TestAllocate_IncompleteCoverage(t *testing.T) {
	tbl := table(map[string]map[string]float64{
		"milk":  {"A": 1},
		"bread": {"B": 1},
	})

	_, err := Allocate([]string{"A"}, []string{"milk", "bread"}, tbl)
	assert.ErrorIs(t, err, ErrIncompleteCoverage)
}

func TestEvaluate_TotalsAddUp(t *testing.T) {
	tbl := table(map[string]map[string]float64{
		"milk":  {"A": 3.49, "B": 2.99},
		"bread": {"A": 1.99, "B": 2.49},
	})
	ev := NewEvaluator(&fakeRouter{seconds: map[string]int{"A": 2, "B": 3}}, dollarPerSecond, nil)

	p, err := ev.Evaluate(context.Background(), home, []string{"B", "A"}, []string{"milk", "bread"}, tbl, stores("A", "B"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, p.Stores)
	assert.Equal(t, 4.98, p.ItemCost)
	assert.Equal(t, 5.0, p.TravelCosts.TotalTravelCost)
	assert.Equal(t, travel.Round2(p.ItemCost+p.TravelCosts.TotalTravelCost), p.TotalPlanCost)
	assert.Len(t, p.OptimizedRoute, 2)
	assert.Equal(t, 4.98, p.DisplayTotalCost())
}

func TestEvaluate_Idempotent(t *testing.T) {
	tbl := table(map[string]map[string]float64{
		"milk": {"A": 3, "B": 2},
		"eggs": {"A": 1, "B": 4},
	})
	ev := NewEvaluator(&fakeRouter{}, travel.DefaultRates(), nil)

	first, err := ev.Evaluate(context.Background(), home, []string{"A", "B"}, []string{"milk", "eggs"}, tbl, stores("A", "B"))
	require.NoError(t, err)
	second, err := ev.Evaluate(context.Background(), home, []string{"A", "B"}, []string{"milk", "eggs"}, tbl, stores("A", "B"))
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("plans differ (-first +second):\n%s", diff)
	}
}

func TestEvaluate_Unroutable(t *testing.T) {
	tbl := table(map[string]map[string]float64{"milk": {"Ghost": 1}})
	ev := NewEvaluator(&fakeRouter{}, dollarPerSecond, nil)

	_, err := ev.Evaluate(context.Background(), home, []string{"Ghost"}, []string{"milk"}, tbl, stores("A"))
	assert.ErrorIs(t, err, ErrUnroutable)
}

func TestEvaluate_RoutingError(t *testing.T) {
	tbl := table(map[string]map[string]float64{"milk": {"A": 1}})
	ev := NewEvaluator(&fakeRouter{fail: map[string]bool{"A": true}}, dollarPerSecond, nil)

	_, err := ev.Evaluate(context.Background(), home, []string{"A"}, []string{"milk"}, tbl, stores("A"))
	assert.ErrorIs(t, err, route.ErrRouting)
}
