package pricing

import "strings"

// Quote is the estimated unit price of one item at one store.
type Quote struct {
	Price      float64 `json:"price"`
	Confidence float64 `json:"confidence"`
}

// Table maps normalized item name -> store display name -> Quote.
// Built once per request and only read afterwards.
type Table map[string]map[string]Quote

// Price returns the quoted price of item at store.
func (t Table) Price(item, storeName string) (float64, bool) {
	byStore, ok := t[NormalizeItem(item)]
	if !ok {
		return 0, false
	}
	q, ok := byStore[storeName]
	if !ok {
		return 0, false
	}
	return q.Price, true
}

// HasStore reports whether every item of the table is priced at storeName.
func (t Table) HasStore(storeName string) bool {
	if len(t) == 0 {
		return false
	}
	for _, byStore := range t {
		if _, ok := byStore[storeName]; !ok {
			return false
		}
	}
	return true
}

// ReferencePrice is one persisted (item, chain) price row.
type ReferencePrice struct {
	Item  string  `json:"item" yaml:"item"`
	Chain string  `json:"chain" yaml:"chain"`
	Price float64 `json:"price" yaml:"price"`
}

// NormalizeItem lower-cases and trims an item name.
func NormalizeItem(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}

// NormalizeItems normalizes, drops blanks and collapses duplicates while
// keeping first-seen order.
func NormalizeItems(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		n := NormalizeItem(it)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
