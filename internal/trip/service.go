package trip

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartcart/internal/maps"
	"smartcart/internal/plan"
	"smartcart/internal/pricing"
	"smartcart/internal/route"
	"smartcart/internal/store"
)

const DefaultRadiusMiles = 15.0

// Geocoder turns a free-form address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (store.Location, error)
}

// MapsGeocoder adapts the maps client to Geocoder.
type MapsGeocoder struct {
	Client *maps.Client
}

func (g MapsGeocoder) Geocode(ctx context.Context, address string) (store.Location, error) {
	res, err := g.Client.Geocode(ctx, address)
	if err != nil {
		return store.Location{}, err
	}
	return store.Location(res.Location), nil
}

type Service struct {
	repo     Repository
	locator  store.Locator
	prices   *pricing.Service
	searcher *plan.Searcher
	geocoder Geocoder
	archiver Archiver
	radius   float64
	log      *zap.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithGeocoder(g Geocoder) Option { return func(s *Service) { s.geocoder = g } }
func WithArchiver(a Archiver) Option { return func(s *Service) { s.archiver = a } }

// WithRadius sets the default search radius in miles.
func WithRadius(miles float64) Option {
	return func(s *Service) {
		if miles > 0 {
			s.radius = miles
		}
	}
}

func NewService(
	repo Repository,
	locator store.Locator,
	prices *pricing.Service,
	searcher *plan.Searcher,
	log *zap.Logger,
	opts ...Option,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		repo:     repo,
		locator:  locator,
		prices:   prices,
		searcher: searcher,
		radius:   DefaultRadiusMiles,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --------------------------------------------------
// Run the whole workflow for one request
// --------------------------------------------------

// Optimize locates stores, prices the list, searches for the cheapest plan
// and records the result. Bad input is returned as an error; "no stores" and
// "no plan" are returned as results with the matching Status.
func (s *Service) Optimize(ctx context.Context, userID string, req Request) (*Result, error) {
	items := pricing.NormalizeItems(req.Items)
	if len(items) == 0 {
		return nil, plan.ErrNoItems
	}

	origin, err := s.resolveOrigin(ctx, req)
	if err != nil {
		return nil, err
	}

	mode := plan.ResolveMode(req.PreferredChains, req.Strict)
	chains := searchChains(mode, req.PreferredChains)
	radius := req.RadiusMiles
	if radius <= 0 {
		radius = s.radius
	}

	res := &Result{
		UserID:    userID,
		Origin:    origin,
		Items:     items,
		Mode:      mode,
		CreatedAt: s.now().UTC(),
	}

	stores, err := s.locator.Locate(ctx, origin, chains, radius)
	if err != nil {
		return nil, fmt.Errorf("locate stores: %w", err)
	}
	res.Stores = stores

	if len(stores) == 0 {
		res.Status = StatusNoStores
		res.Message = "No stores found nearby. Try a larger radius or different stores."
		return res, s.record(ctx, res)
	}

	table := s.prices.BuildTable(ctx, items, stores)

	best, err := s.searcher.Search(ctx, plan.Request{
		Origin:    origin,
		Stores:    stores,
		Items:     items,
		Table:     table,
		Mode:      res.Mode,
		Preferred: req.PreferredChains,
	})
	switch {
	case errors.Is(err, plan.ErrNoStores):
		res.Status = StatusNoStores
		res.Message = "None of the nearby stores carry these items."
		return res, s.record(ctx, res)
	case errors.Is(err, plan.ErrNoFeasiblePlan):
		res.Status = StatusNoPlan
		res.Message = "Could not optimize a shopping plan for these stores."
		return res, s.record(ctx, res)
	case err != nil:
		return nil, err
	}

	res.Status = StatusOK
	res.Plan = best
	res.MapsURL = route.MapsURL(origin, best.OptimizedRoute)
	res.DisplayTotalCost = best.DisplayTotalCost()
	res.PreferencesOverridden = best.PreferencesOverridden
	res.Message = best.Warning

	return res, s.record(ctx, res)
}

// Get returns one of the user's results. Results of other users are
// reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Result, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, ErrNotFound
	}
	return res, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]*Result, error) {
	return s.repo.ListByUser(ctx, userID)
}

// searchChains lists the chains to look for. Strict mode only needs the
// required chains; suggestion mode adds the defaults so other stores can
// compete with the preferred ones.
func searchChains(mode plan.Mode, preferred []string) []string {
	switch mode {
	case plan.ModeStrict:
		return preferred
	case plan.ModeSuggestion:
		chains := slices.Clone(preferred)
		for _, c := range store.DefaultChains {
			if !slices.ContainsFunc(chains, func(p string) bool { return strings.EqualFold(p, c) }) {
				chains = append(chains, c)
			}
		}
		return chains
	default:
		return store.DefaultChains
	}
}

func (s *Service) resolveOrigin(ctx context.Context, req Request) (store.Location, error) {
	if req.Origin != nil {
		if err := req.Origin.Validate(); err != nil {
			return store.Location{}, err
		}
		return *req.Origin, nil
	}
	if req.Address == "" || s.geocoder == nil {
		return store.Location{}, ErrMissingOrigin
	}

	loc, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return store.Location{}, fmt.Errorf("geocode %q: %w", req.Address, err)
	}
	if err := loc.Validate(); err != nil {
		return store.Location{}, err
	}
	return loc, nil
}

// record saves the result and archives it. Archive failures are logged only.
func (s *Service) record(ctx context.Context, res *Result) error {
	if err := s.repo.Save(ctx, res); err != nil {
		return fmt.Errorf("save trip: %w", err)
	}

	s.log.Info("trip recorded",
		zap.String("id", res.ID.String()),
		zap.String("user_id", res.UserID),
		zap.String("status", string(res.Status)),
		zap.Int("stores_found", len(res.Stores)),
	)

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, res); err != nil {
			s.log.Warn("trip archive failed", zap.String("id", res.ID.String()), zap.Error(err))
		}
	}
	return nil
}
