package plan

import (
	"errors"

	"smartcart/internal/store"
	"smartcart/internal/travel"
)

var (
	ErrNoItems            = errors.New("shopping list is empty")
	ErrNoStores           = errors.New("no stores available")
	ErrNoFeasiblePlan     = errors.New("no plan could be optimized")
	ErrUnroutable         = errors.New("store subset has no routable stores")
	ErrIncompleteCoverage = errors.New("store subset cannot supply every item")
)

// Mode selects how preferred chains constrain the search.
type Mode string

const (
	ModeUnconstrained Mode = "unconstrained"
	ModeSuggestion    Mode = "suggestion"
	ModeStrict        Mode = "strict"
)

// ResolveMode picks the mode implied by the shopper's choices: no preferred
// chains means unconstrained regardless of strict.
func ResolveMode(preferred []string, strict bool) Mode {
	if len(uniqueChains(preferred)) == 0 {
		return ModeUnconstrained
	}
	if strict {
		return ModeStrict
	}
	return ModeSuggestion
}

// Assignment is one item bought at one store.
type Assignment struct {
	Item  string  `json:"item"`
	Price float64 `json:"price"`
}

// Plan is a fully costed trip for one store subset.
//
// Every item appears in exactly one ShoppingList entry, ItemCost is the sum
// of the assigned prices and TotalPlanCost = ItemCost + TravelCosts.TotalTravelCost.
type Plan struct {
	// Stores is every store of the subset, sorted. Outside strict mode each
	// one has at least one item; a strict plan keeps a required store even
	// when its ShoppingList entry is empty.
	Stores         []string                `json:"stores"`
	ShoppingList   map[string][]Assignment `json:"shopping_list"`
	ItemCost       float64                 `json:"item_cost"`
	TravelCosts    travel.Cost             `json:"travel_costs"`
	TotalPlanCost  float64                 `json:"total_plan_cost"`
	OptimizedRoute []store.Store           `json:"optimized_route"`

	// Set on the selected plan only.
	Savings             float64  `json:"savings"`
	Scenario            Mode     `json:"scenario,omitempty"`
	IsSingleStore       bool     `json:"is_single_store"`
	// TotalPlansEvaluated counts the subsets that were routed and costed.
	// Subsets skipped because a store would get no items, and subsets whose
	// routing failed, are not counted.
	TotalPlansEvaluated int      `json:"total_plans_evaluated"`
	Warning             string   `json:"warning,omitempty"`
	MissingChains       []string `json:"missing_chains,omitempty"`

	// PreferencesOverridden is set in suggestion mode when the winner
	// includes a store the shopper did not ask for.
	PreferencesOverridden bool `json:"preferences_overridden"`
}

// DisplayTotalCost is items plus gas only, the figure shown to shoppers.
// It deliberately excludes the time value that TotalPlanCost includes.
func (p *Plan) DisplayTotalCost() float64 {
	return travel.Round2(p.ItemCost + p.TravelCosts.DisplayCost())
}

// less orders plans by total cost, then by store names.
func less(a, b *Plan) bool {
	if a.TotalPlanCost != b.TotalPlanCost {
		return a.TotalPlanCost < b.TotalPlanCost
	}
	return compareNames(a.Stores, b.Stores) < 0
}

func compareNames(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}
