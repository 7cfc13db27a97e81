package pricing

import (
	"context"
	"errors"
	"strings"

	"smartcart/internal/store"

	"go.uber.org/zap"
)

var ErrInvalidPrice = errors.New("item, chain and a non-negative price are required")

type Service struct {
	repo Repository
	base *Reference
	log  *zap.Logger
}

// NewService layers repository overrides on top of base. A nil repo serves
// base alone.
func NewService(repo Repository, base *Reference, log *zap.Logger) *Service {
	if base == nil {
		base = DefaultReference()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, base: base, log: log}
}

// Reference returns the effective reference for one request.
func (s *Service) Reference(ctx context.Context) (*Reference, error) {
	if s.repo == nil {
		return s.base, nil
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return s.base, nil
	}
	return s.base.With(rows), nil
}

// BuildTable prices items at stores with the effective reference. If the
// override store is unreachable the base reference is used.
func (s *Service) BuildTable(ctx context.Context, items []string, stores []store.Store) Table {
	ref, err := s.Reference(ctx)
	if err != nil {
		s.log.Warn("reference overrides unavailable, using base prices", zap.Error(err))
		ref = s.base
	}
	return Build(items, stores, ref)
}

// Upsert stores one override row.
func (s *Service) Upsert(ctx context.Context, row ReferencePrice) error {
	row.Item = NormalizeItem(row.Item)
	row.Chain = strings.TrimSpace(row.Chain)
	if row.Item == "" || row.Chain == "" || row.Price < 0 {
		return ErrInvalidPrice
	}
	if s.repo == nil {
		return errors.New("reference price overrides are not configured")
	}

	if err := s.repo.Upsert(ctx, row); err != nil {
		return err
	}

	s.log.Info("reference price updated",
		zap.String("item", row.Item),
		zap.String("chain", row.Chain),
		zap.Float64("price", row.Price),
	)
	return nil
}
