package repository

import (
	"context"

	"github.com/vfg2006/captive-portal-api/internal/domain"
)

type RateRepository interface {
	// GetRate returns nil when no rate was ever persisted.
	GetRate(ctx context.Context) (*domain.RateEntry, error)
	SaveRate(ctx context.Context, entry domain.RateEntry) error
}

type rateRepository struct {
	store DocumentStore
}

func NewRateRepository(store DocumentStore) RateRepository {
	return &rateRepository{store: store}
}

func (r *rateRepository) GetRate(ctx context.Context) (*domain.RateEntry, error) {
	entry, found, err := readDocument[domain.RateEntry](ctx, r.store, RateKey)
	if err != nil || !found {
		return nil, err
	}
	return &entry, nil
}

func (r *rateRepository) SaveRate(ctx context.Context, entry domain.RateEntry) error {
	return writeDocument(ctx, r.store, RateKey, entry)
}
