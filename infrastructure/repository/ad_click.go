package repository

import (
	"context"

	"github.com/vfg2006/captive-portal-api/internal/domain"
)

type AdClickRepository interface {
	ListClicks(ctx context.Context) ([]domain.AdClick, error)
	AppendClick(ctx context.Context, click domain.AdClick) error
	SaveClicks(ctx context.Context, clicks []domain.AdClick) error
}

type adClickRepository struct {
	store DocumentStore
}

func NewAdClickRepository(store DocumentStore) AdClickRepository {
	return &adClickRepository{store: store}
}

func (r *adClickRepository) ListClicks(ctx context.Context) ([]domain.AdClick, error) {
	clicks, _, err := readDocument[[]domain.AdClick](ctx, r.store, AdClicksKey)
	if err != nil {
		return nil, err
	}
	if clicks == nil {
		clicks = []domain.AdClick{}
	}
	return clicks, nil
}

func (r *adClickRepository) AppendClick(ctx context.Context, click domain.AdClick) error {
	clicks, err := r.ListClicks(ctx)
	if err != nil {
		return err
	}
	return r.SaveClicks(ctx, append(clicks, click))
}

func (r *adClickRepository) SaveClicks(ctx context.Context, clicks []domain.AdClick) error {
	return writeDocument(ctx, r.store, AdClicksKey, clicks)
}
