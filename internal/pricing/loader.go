package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk reference price document.
type File struct {
	BasePrice   float64           `yaml:"base_price"`
	Multipliers []ChainMultiplier `yaml:"multipliers"`
	Prices      []ReferencePrice  `yaml:"prices"`
}

// ParseReference decodes a YAML reference document.
func ParseReference(data []byte) (*Reference, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse reference prices: %w", err)
	}
	for _, row := range f.Prices {
		if row.Price < 0 {
			return nil, fmt.Errorf("parse reference prices: negative price for %s at %s", row.Item, row.Chain)
		}
	}
	return NewReference(f.Prices, f.Multipliers, f.BasePrice), nil
}

// LoadReferenceFile reads a YAML reference document from path.
func LoadReferenceFile(path string) (*Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseReference(data)
}
