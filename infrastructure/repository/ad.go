package repository

import (
	"context"

	"github.com/vfg2006/captive-portal-api/internal/domain"
)

type AdRepository interface {
	// ListAds reports initialized=false when the collection was never written.
	ListAds(ctx context.Context) (ads []domain.Ad, initialized bool, err error)
	SaveAds(ctx context.Context, ads []domain.Ad) error
}

type adRepository struct {
	store DocumentStore
}

func NewAdRepository(store DocumentStore) AdRepository {
	return &adRepository{store: store}
}

func (r *adRepository) ListAds(ctx context.Context) ([]domain.Ad, bool, error) {
	ads, found, err := readDocument[[]domain.Ad](ctx, r.store, AdsKey)
	if err != nil {
		return nil, false, err
	}
	if ads == nil {
		ads = []domain.Ad{}
	}
	return ads, found, nil
}

func (r *adRepository) SaveAds(ctx context.Context, ads []domain.Ad) error {
	if ads == nil {
		ads = []domain.Ad{}
	}
	return writeDocument(ctx, r.store, AdsKey, ads)
}
