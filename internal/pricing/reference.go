package pricing

import (
	"sort"
	"strings"
)

const (
	// DefaultBasePrice is the unit price used when no reference row exists.
	DefaultBasePrice = 3.00

	// estimateConfidence is reported for every quote, looked-up or derived.
	estimateConfidence = 0.8
)

// ChainMultiplier scales the base price for stores whose chain or name
// contains Keyword.
type ChainMultiplier struct {
	Keyword    string  `json:"keyword" yaml:"keyword"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// DefaultMultipliers are checked in order; the first match wins.
var DefaultMultipliers = []ChainMultiplier{
	{Keyword: "walmart", Multiplier: 0.90},
	{Keyword: "target", Multiplier: 0.95},
	{Keyword: "meijer", Multiplier: 0.88},
	{Keyword: "whole foods", Multiplier: 1.20},
	{Keyword: "kroger", Multiplier: 0.93},
	{Keyword: "safeway", Multiplier: 1.05},
}

var defaultPrices = map[string]map[string]float64{
	"milk":           {"Walmart": 3.48, "Target": 3.79, "Kroger": 3.29, "Costco": 2.98, "Whole Foods": 4.99, "Safeway": 3.89, "Meijer": 3.38},
	"bread":          {"Walmart": 1.98, "Target": 2.49, "Kroger": 1.79, "Costco": 1.49, "Whole Foods": 3.99, "Safeway": 2.29, "Meijer": 1.88},
	"eggs":           {"Walmart": 2.68, "Target": 2.89, "Kroger": 2.48, "Costco": 4.99, "Whole Foods": 5.49, "Safeway": 2.99, "Meijer": 2.58},
	"bananas":        {"Walmart": 0.58, "Target": 0.69, "Kroger": 0.68, "Costco": 1.48, "Whole Foods": 0.99, "Safeway": 0.79, "Meijer": 0.68},
	"avocados":       {"Walmart": 0.98, "Target": 1.25, "Kroger": 1.00, "Costco": 4.99, "Whole Foods": 2.49, "Safeway": 1.49, "Meijer": 0.98},
	"chicken breast": {"Walmart": 3.98, "Target": 4.49, "Kroger": 3.79, "Costco": 2.99, "Whole Foods": 7.99, "Safeway": 4.99, "Meijer": 3.88},
	"rice":           {"Walmart": 2.98, "Target": 3.49, "Kroger": 2.79, "Costco": 8.99, "Whole Foods": 4.99, "Safeway": 3.29, "Meijer": 2.88},
	"pasta":          {"Walmart": 1.48, "Target": 1.79, "Kroger": 1.29, "Costco": 3.99, "Whole Foods": 2.99, "Safeway": 1.89, "Meijer": 1.38},
}

// Reference is the read-only price knowledge used to build Tables.
// Construct one per configuration and share it; it is never mutated.
type Reference struct {
	prices      map[string]map[string]float64 // item -> lower(chain) -> price
	multipliers []ChainMultiplier
	basePrice   float64
}

// NewReference builds a Reference from rows. Later rows for the same
// (item, chain) win. A nil multipliers slice selects DefaultMultipliers and
// a non-positive base selects DefaultBasePrice.
func NewReference(rows []ReferencePrice, multipliers []ChainMultiplier, basePrice float64) *Reference {
	if multipliers == nil {
		multipliers = DefaultMultipliers
	}
	if basePrice <= 0 {
		basePrice = DefaultBasePrice
	}

	r := &Reference{
		prices:      make(map[string]map[string]float64),
		multipliers: make([]ChainMultiplier, len(multipliers)),
		basePrice:   basePrice,
	}
	for i, m := range multipliers {
		r.multipliers[i] = ChainMultiplier{Keyword: strings.ToLower(m.Keyword), Multiplier: m.Multiplier}
	}
	for _, row := range rows {
		item := NormalizeItem(row.Item)
		chain := strings.ToLower(strings.TrimSpace(row.Chain))
		if item == "" || chain == "" {
			continue
		}
		if r.prices[item] == nil {
			r.prices[item] = make(map[string]float64)
		}
		r.prices[item][chain] = row.Price
	}
	return r
}

// DefaultReference is the built-in eight item table.
func DefaultReference() *Reference {
	return NewReference(DefaultRows(), nil, 0)
}

// DefaultRows returns the built-in table as rows, sorted by item then chain.
func DefaultRows() []ReferencePrice {
	var rows []ReferencePrice
	for item, byChain := range defaultPrices {
		for chain, price := range byChain {
			rows = append(rows, ReferencePrice{Item: item, Chain: chain, Price: price})
		}
	}
	SortRows(rows)
	return rows
}

// Rows returns the reference contents, sorted by item then chain.
func (r *Reference) Rows() []ReferencePrice {
	var rows []ReferencePrice
	for item, byChain := range r.prices {
		for chain, price := range byChain {
			rows = append(rows, ReferencePrice{Item: item, Chain: chain, Price: price})
		}
	}
	SortRows(rows)
	return rows
}

// With returns a copy of r with rows layered on top.
func (r *Reference) With(rows []ReferencePrice) *Reference {
	return NewReference(append(r.Rows(), rows...), r.multipliers, r.basePrice)
}

// Lookup returns the reference price of item at chain.
func (r *Reference) Lookup(item, chain string) (float64, bool) {
	byChain, ok := r.prices[NormalizeItem(item)]
	if !ok {
		return 0, false
	}
	p, ok := byChain[strings.ToLower(strings.TrimSpace(chain))]
	return p, ok
}

// Estimate derives a price from the base price and the first multiplier
// whose keyword appears in the store name or chain.
func (r *Reference) Estimate(storeName, chain string) float64 {
	name := strings.ToLower(storeName)
	c := strings.ToLower(chain)
	for _, m := range r.multipliers {
		if strings.Contains(name, m.Keyword) || strings.Contains(c, m.Keyword) {
			return r.basePrice * m.Multiplier
		}
	}
	return r.basePrice
}

// SortRows orders rows by item then chain.
func SortRows(rows []ReferencePrice) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Item != rows[j].Item {
			return rows[i].Item < rows[j].Item
		}
		return rows[i].Chain < rows[j].Chain
	})
}
