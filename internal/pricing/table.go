package pricing

import (
	"smartcart/internal/store"
	"smartcart/internal/travel"
)

// Build prices every (item, store) pair. A missing reference row falls back
// to Reference.Estimate, so the result always covers items x stores.
// Stores are keyed by display name; items by their normalized name.
func Build(items []string, stores []store.Store, ref *Reference) Table {
	if ref == nil {
		ref = DefaultReference()
	}

	table := make(Table)
	for _, item := range NormalizeItems(items) {
		byStore := make(map[string]Quote, len(stores))
		for _, s := range stores {
			name := displayName(s)
			if name == "" {
				continue
			}

			price, ok := ref.Lookup(item, s.Chain)
			if !ok {
				price = ref.Estimate(name, s.Chain)
			}

			byStore[name] = Quote{
				Price:      travel.Round2(price),
				Confidence: estimateConfidence,
			}
		}
		table[item] = byStore
	}
	return table
}

func displayName(s store.Store) string {
	if s.Name != "" {
		return s.Name
	}
	return s.Chain
}
