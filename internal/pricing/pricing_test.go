package pricing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"smartcart/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_LookupAndFallback(t *testing.T) {
	stores := []store.Store{
		{Name: "Walmart #1", Chain: "Walmart"},
		{Name: "Trader Joe's", Chain: "Trader Joe's"},
		{Name: "Whole Foods Market"},
	}

	table := Build([]string{"Milk", "milk ", "saffron"}, stores, DefaultReference())
	require.Len(t, table, 2)

	tests := []struct {
		item  string
		store string
		want  float64
	}{
		{"milk", "Walmart #1", 3.48},
		{"saffron", "Walmart #1", 2.70},
		{"saffron", "Trader Joe's", 3.00},
		{"milk", "Whole Foods Market", 3.60},
		{"MILK", "Trader Joe's", 3.00},
	}
	for _, tt := range tests {
		got, ok := table.Price(tt.item, tt.store)
		require.True(t, ok, "%s at %s", tt.item, tt.store)
		assert.Equal(t, tt.want, got, "%s at %s", tt.item, tt.store)
	}

	for _, byStore := range table {
		for _, q := range byStore {
			assert.Equal(t, 0.8, q.Confidence)
		}
	}
}

func TestBuild_CoversEveryPair(t *testing.T) {
	stores := []store.Store{{Name: "A", Chain: "Kroger"}, {Name: "B", Chain: "Safeway"}, {Name: "C", Chain: "Costco"}}
	items := []string{"eggs", "tortillas", "rice", "coffee"}

	table := Build(items, stores, nil)

	for _, it := range items {
		for _, s := range stores {
			_, ok := table.Price(it, s.Name)
			assert.True(t, ok, "%s at %s", it, s.Name)
		}
	}
	assert.True(t, table.HasStore("A"))
	assert.False(t, table.HasStore("Z"))
}

func TestReference_EstimateMultipliers(t *testing.T) {
	ref := DefaultReference()

	tests := map[string]float64{
		"Walmart Supercenter": 2.70,
		"Super Target":        2.85,
		"Meijer":              2.64,
		"Whole Foods":         3.60,
		"Kroger Marketplace":  2.79,
		"Safeway":             3.15,
		"Aldi":                3.00,
	}
	for name, want := range tests {
		assert.InDelta(t, want, ref.Estimate(name, ""), 1e-9, name)
	}
}

func TestReference_WithOverrides(t *testing.T) {
	ref := DefaultReference().With([]ReferencePrice{
		{Item: "Milk", Chain: "walmart", Price: 2.50},
		{Item: "saffron", Chain: "Kroger", Price: 9.99},
	})

	p, ok := ref.Lookup("milk", "Walmart")
	require.True(t, ok)
	assert.Equal(t, 2.50, p)

	p, ok = ref.Lookup("saffron", "KROGER")
	require.True(t, ok)
	assert.Equal(t, 9.99, p)

	base, _ := DefaultReference().Lookup("milk", "Walmart")
	assert.Equal(t, 3.48, base)
}

func TestParseReference(t *testing.T) {
	doc := []byte(`
base_price: 4.0
multipliers:
  - keyword: Aldi
    multiplier: 0.5
prices:
  - item: Milk
    chain: Aldi
    price: 1.99
`)

	ref, err := ParseReference(doc)
	require.NoError(t, err)

	p, ok := ref.Lookup("milk", "aldi")
	require.True(t, ok)
	assert.Equal(t, 1.99, p)
	assert.Equal(t, 2.0, ref.Estimate("ALDI #4", ""))
	assert.Equal(t, 4.0, ref.Estimate("Walmart", ""))
}

func TestParseReference_RejectsNegative(t *testing.T) {
	_, err := ParseReference([]byte("prices:\n  - {item: milk, chain: x, price: -1}\n"))
	assert.Error(t, err)
}

func TestLoadReferenceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prices:\n  - {item: tea, chain: Target, price: 4.25}\n"), 0o600))

	ref, err := LoadReferenceFile(path)
	require.NoError(t, err)

	p, ok := ref.Lookup("tea", "target")
	require.True(t, ok)
	assert.Equal(t, 4.25, p)
}

type failingRepo struct{}

func (failingRepo) List(ctx context.Context) ([]ReferencePrice, error) {
	return nil, errors.New("db down")
}

func (failingRepo) Upsert(ctx context.Context, row ReferencePrice) error {
	return errors.New("db down")
}

func TestService_OverridesAndFallback(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, nil, nil)

	require.NoError(t, svc.Upsert(context.Background(), ReferencePrice{Item: " Milk ", Chain: "Walmart", Price: 1.11}))
	assert.ErrorIs(t, svc.Upsert(context.Background(), ReferencePrice{Item: "milk", Price: 1}), ErrInvalidPrice)

	table := svc.BuildTable(context.Background(), []string{"milk"}, []store.Store{{Name: "W", Chain: "Walmart"}})
	p, _ := table.Price("milk", "W")
	assert.Equal(t, 1.11, p)

	broken := NewService(failingRepo{}, nil, nil)
	table = broken.BuildTable(context.Background(), []string{"milk"}, []store.Store{{Name: "W", Chain: "Walmart"}})
	p, _ = table.Price("milk", "W")
	assert.Equal(t, 3.48, p)
}
