package plan

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"smartcart/internal/pricing"
	"smartcart/internal/route"
	"smartcart/internal/store"
	"smartcart/internal/travel"
)

// Allocation is the cheapest per-item assignment within a store subset.
type Allocation struct {
	ShoppingList map[string][]Assignment
	ItemCost     float64
}

// Idle returns the stores of the allocation that were assigned no item.
func (a Allocation) Idle() []string {
	var idle []string
	for name, list := range a.ShoppingList {
		if len(list) == 0 {
			idle = append(idle, name)
		}
	}
	slices.Sort(idle)
	return idle
}

// Allocate assigns each item to the cheapest store of subset. Items and
// stores are scanned in sorted order and a store only replaces the current
// pick when strictly cheaper, so ties go to the alphabetically first store.
// Every store of subset gets a (possibly empty) list.
func Allocate(subset, items []string, table pricing.Table) (Allocation, error) {
	stores := slices.Clone(subset)
	slices.Sort(stores)
	stores = slices.Compact(stores)

	sortedItems := pricing.NormalizeItems(items)
	slices.Sort(sortedItems)

	alloc := Allocation{ShoppingList: make(map[string][]Assignment, len(stores))}
	for _, name := range stores {
		alloc.ShoppingList[name] = []Assignment{}
	}

	var sum float64
	for _, item := range sortedItems {
		bestStore := ""
		bestPrice := 0.0
		for _, name := range stores {
			price, ok := table.Price(item, name)
			if !ok {
				continue
			}
			if bestStore == "" || price < bestPrice {
				bestStore, bestPrice = name, price
			}
		}
		if bestStore == "" {
			return Allocation{}, fmt.Errorf("%w: no price for %q", ErrIncompleteCoverage, item)
		}
		alloc.ShoppingList[bestStore] = append(alloc.ShoppingList[bestStore], Assignment{Item: item, Price: bestPrice})
		sum += bestPrice
	}
	alloc.ItemCost = travel.Round2(sum)
	return alloc, nil
}

// Evaluator costs one store subset: item allocation plus a routed trip.
type Evaluator struct {
	router route.Router
	rates  travel.Rates
	log    *zap.Logger
}

func NewEvaluator(router route.Router, rates travel.Rates, log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{router: router, rates: rates, log: log}
}

// Evaluate builds the Plan for subset. It fails with ErrUnroutable when none
// of the subset names resolves to a candidate store and passes router errors
// through (they wrap route.ErrRouting).
func (e *Evaluator) Evaluate(
	ctx context.Context,
	origin store.Location,
	subset []string,
	items []string,
	table pricing.Table,
	candidates []store.Store,
) (*Plan, error) {
	alloc, err := Allocate(subset, items, table)
	if err != nil {
		return nil, err
	}

	stops := resolveStores(subset, candidates)
	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnroutable, subset)
	}

	trip, err := e.router.Route(ctx, origin, stops)
	if err != nil {
		return nil, fmt.Errorf("route %v: %w", subset, err)
	}

	cost := e.rates.Calculate(float64(trip.DistanceMeters), float64(trip.DurationSeconds))

	names := make([]string, 0, len(alloc.ShoppingList))
	for name := range alloc.ShoppingList {
		names = append(names, name)
	}
	slices.Sort(names)

	p := &Plan{
		Stores:         names,
		ShoppingList:   alloc.ShoppingList,
		ItemCost:       alloc.ItemCost,
		TravelCosts:    cost,
		TotalPlanCost:  travel.Round2(alloc.ItemCost + cost.TotalTravelCost),
		OptimizedRoute: trip.Order,
	}

	e.log.Debug("subset evaluated",
		zap.Strings("stores", p.Stores),
		zap.Float64("item_cost", p.ItemCost),
		zap.Float64("travel_cost", cost.TotalTravelCost),
		zap.Float64("total", p.TotalPlanCost),
	)
	return p, nil
}

// resolveStores returns the candidate records named in subset, one per name,
// in candidate order.
func resolveStores(subset []string, candidates []store.Store) []store.Store {
	want := make(map[string]bool, len(subset))
	for _, name := range subset {
		want[name] = true
	}
	var out []store.Store
	for _, s := range candidates {
		if want[s.Name] {
			out = append(out, s)
			delete(want, s.Name)
		}
	}
	return out
}
