package plan

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"smartcart/internal/pricing"
	"smartcart/internal/store"
	"smartcart/internal/travel"
)

// MaxUnconstrainedStores bounds subset size when no chain is preferred.
const MaxUnconstrainedStores = 3

const defaultConcurrency = 4

// Request is one search invocation.
type Request struct {
	Origin    store.Location
	Stores    []store.Store
	Items     []string
	Table     pricing.Table
	Mode      Mode
	Preferred []string
}

// Searcher enumerates store subsets for a mode and keeps the cheapest plan.
type Searcher struct {
	evaluator   *Evaluator
	concurrency int
	log         *zap.Logger
}

func NewSearcher(evaluator *Evaluator, concurrency int, log *zap.Logger) *Searcher {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{evaluator: evaluator, concurrency: concurrency, log: log}
}

// Search returns the winning plan for req, annotated with savings and
// scenario. Input problems surface as ErrNoItems or ErrNoStores; when no
// subset can be evaluated the error wraps ErrNoFeasiblePlan. A failing
// subset is dropped, only cancellation of ctx aborts the search.
func (s *Searcher) Search(ctx context.Context, req Request) (*Plan, error) {
	items := pricing.NormalizeItems(req.Items)
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	pool := pricedStores(req.Stores, items, req.Table)
	if len(pool) == 0 {
		return nil, ErrNoStores
	}

	mode := req.Mode
	if mode == "" {
		mode = ResolveMode(req.Preferred, false)
	}

	var (
		candidates iter.Seq[[]string]
		preferred  []string
		missing    []string
	)
	switch mode {
	case ModeStrict:
		preferred, missing = MapPreferred(pool, req.Preferred)
		if len(preferred) == 0 {
			return nil, fmt.Errorf("%w: none of %v is nearby", ErrNoFeasiblePlan, req.Preferred)
		}
		candidates = func(yield func([]string) bool) { yield(preferred) }

	case ModeSuggestion:
		preferred, _ = MapPreferred(pool, req.Preferred)
		others := make([]string, 0, len(pool))
		for _, st := range pool {
			if !slices.Contains(preferred, st.Name) {
				others = append(others, st.Name)
			}
		}
		candidates = chain(Combinations(preferred, 1, len(preferred)), Singles(others))

	case ModeUnconstrained:
		candidates = Combinations(storeNames(pool), 1, MaxUnconstrainedStores)

	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	plans, err := s.evaluateAll(ctx, req.Origin, slices.Collect(candidates), items, req.Table, pool, mode != ModeStrict)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, fmt.Errorf("%w: every candidate subset failed", ErrNoFeasiblePlan)
	}

	best := plans[0]
	worstSingle := 0.0
	for _, p := range plans {
		if less(p, best) {
			best = p
		}
		if len(p.Stores) == 1 && p.TotalPlanCost > worstSingle {
			worstSingle = p.TotalPlanCost
		}
	}

	best.Savings = travel.Round2(max(0, worstSingle-best.TotalPlanCost))
	best.Scenario = mode
	best.IsSingleStore = len(best.Stores) == 1
	best.TotalPlansEvaluated = len(plans)
	if mode == ModeStrict && len(missing) > 0 {
		best.MissingChains = missing
		best.Warning = fmt.Sprintf(
			"Could not find these required stores in your area: %s. Consider disabling strict mode or selecting different stores.",
			strings.Join(missing, ", "),
		)
	}
	if mode == ModeSuggestion {
		for _, name := range best.Stores {
			if !slices.Contains(preferred, name) {
				best.PreferencesOverridden = true
				break
			}
		}
	}

	s.log.Info("search complete",
		zap.String("mode", string(mode)),
		zap.Strings("stores", best.Stores),
		zap.Float64("total", best.TotalPlanCost),
		zap.Float64("savings", best.Savings),
		zap.Int("plans_evaluated", best.TotalPlansEvaluated),
	)
	return best, nil
}

// evaluateAll costs every subset concurrently. Results are collected by
// subset index so the outcome does not depend on completion order.
func (s *Searcher) evaluateAll(
	ctx context.Context,
	origin store.Location,
	subsets [][]string,
	items []string,
	table pricing.Table,
	pool []store.Store,
	pruneIdle bool,
) ([]*Plan, error) {
	results := make([]*Plan, len(subsets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, subset := range subsets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if pruneIdle && len(subset) > 1 {
				alloc, err := Allocate(subset, items, table)
				if err != nil {
					s.log.Debug("subset skipped", zap.Strings("stores", subset), zap.Error(err))
					return nil
				}
				if idle := alloc.Idle(); len(idle) > 0 {
					return nil
				}
			}

			p, err := s.evaluator.Evaluate(gctx, origin, subset, items, table, pool)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.log.Warn("subset dropped", zap.Strings("stores", subset), zap.Error(err))
				return nil
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plans := make([]*Plan, 0, len(results))
	for _, p := range results {
		if p != nil {
			plans = append(plans, p)
		}
	}
	return plans, nil
}

// MapPreferred resolves each preferred chain, in the order given and with
// case-insensitive duplicates collapsed, to one store of pool. A store whose
// chain equals the preference wins over one whose name merely contains it;
// among equals the alphabetically first name is picked. Chains without a
// match are returned as missing.
func MapPreferred(pool []store.Store, preferred []string) (mapped, missing []string) {
	byName := slices.Clone(pool)
	slices.SortFunc(byName, func(a, b store.Store) int { return strings.Compare(a.Name, b.Name) })

	for _, want := range uniqueChains(preferred) {
		pick := ""
		for _, st := range byName {
			if strings.EqualFold(st.Chain, want) {
				pick = st.Name
				break
			}
		}
		if pick == "" {
			lw := strings.ToLower(want)
			for _, st := range byName {
				if strings.Contains(strings.ToLower(st.Name), lw) {
					pick = st.Name
					break
				}
			}
		}
		switch {
		case pick == "":
			missing = append(missing, want)
		case !slices.Contains(mapped, pick):
			mapped = append(mapped, pick)
		}
	}
	return mapped, missing
}

func uniqueChains(chains []string) []string {
	seen := make(map[string]bool, len(chains))
	var out []string
	for _, c := range chains {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// pricedStores keeps the stores the table prices for at least one item, one
// record per name, sorted by name.
func pricedStores(stores []store.Store, items []string, table pricing.Table) []store.Store {
	out := make([]store.Store, 0, len(stores))
	seen := make(map[string]bool, len(stores))
	for _, st := range stores {
		if st.Name == "" || seen[st.Name] {
			continue
		}
		priced := false
		for _, item := range items {
			if _, ok := table.Price(item, st.Name); ok {
				priced = true
				break
			}
		}
		if !priced {
			continue
		}
		seen[st.Name] = true
		out = append(out, st)
	}
	slices.SortFunc(out, func(a, b store.Store) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func storeNames(stores []store.Store) []string {
	names := make([]string, len(stores))
	for i, st := range stores {
		names[i] = st.Name
	}
	return names
}

func chain(seqs ...iter.Seq[[]string]) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}
