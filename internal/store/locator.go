package store

import (
	"context"
	"sort"
	"strings"
)

// MetersPerMile matches the routing and cost conversions.
const MetersPerMile = 1609.34

// DefaultChains are searched when the shopper names no preference.
var DefaultChains = []string{"Walmart", "Target", "Kroger", "Costco", "Whole Foods", "Safeway", "Meijer"}

// Locator finds candidate stores near an origin.
// Implementations return ErrInvalidLocation for a bad origin and an empty
// slice when nothing is within the radius.
type Locator interface {
	Locate(ctx context.Context, origin Location, chains []string, radiusMiles float64) ([]Store, error)
}

// MatchesChain reports whether s belongs to the chain, by chain tag or by name.
func MatchesChain(s Store, chain string) bool {
	c := strings.ToLower(strings.TrimSpace(chain))
	if c == "" {
		return false
	}
	return strings.ToLower(s.Chain) == c || strings.Contains(strings.ToLower(s.Name), c)
}

// SortByDuration orders stores nearest-first, then by name.
func SortByDuration(stores []Store) {
	sort.SliceStable(stores, func(i, j int) bool {
		if stores[i].DurationSeconds != stores[j].DurationSeconds {
			return stores[i].DurationSeconds < stores[j].DurationSeconds
		}
		return stores[i].Name < stores[j].Name
	})
}
