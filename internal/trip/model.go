package trip

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"smartcart/internal/plan"
	"smartcart/internal/store"
)

var (
	ErrNotFound      = errors.New("trip not found")
	ErrMissingOrigin = errors.New("origin or address is required")
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusNoStores Status = "no_stores"
	StatusNoPlan   Status = "no_plan"
)

// Request is what a shopper submits. Origin wins over Address when both are
// set.
type Request struct {
	Address         string          `json:"address" yaml:"address"`
	Origin          *store.Location `json:"origin,omitempty" yaml:"origin"`
	Items           []string        `json:"items" yaml:"items"`
	PreferredChains []string        `json:"preferred_chains" yaml:"preferred_chains"`
	Strict          bool            `json:"strict" yaml:"strict"`
	RadiusMiles     float64         `json:"radius_miles,omitempty" yaml:"radius_miles"`
}

// Result is one optimization run. No-store and no-plan outcomes are results
// too, told apart by Status.
type Result struct {
	ID                    uuid.UUID      `json:"id"`
	UserID                string         `json:"user_id"`
	Status                Status         `json:"status"`
	Message               string         `json:"message,omitempty"`
	Origin                store.Location `json:"origin"`
	Items                 []string       `json:"items"`
	Mode                  plan.Mode      `json:"mode"`
	Stores                []store.Store  `json:"stores"`
	Plan                  *plan.Plan     `json:"plan,omitempty"`
	MapsURL               string         `json:"maps_url,omitempty"`
	DisplayTotalCost      float64        `json:"display_total_cost"`
	PreferencesOverridden bool           `json:"preferences_overridden"`
	CreatedAt             time.Time      `json:"created_at"`
}
