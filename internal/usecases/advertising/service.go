// Package advertising is the ad ledger: the ordered ad inventory and its
// admin operations.
package advertising

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/infrastructure/repository"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/pkg/apiErrors"
	"github.com/vfg2006/captive-portal-api/pkg/utils"
)

type Ledger interface {
	List(ctx context.Context) ([]domain.Ad, error)
	Get(ctx context.Context, adID string) (*domain.Ad, error)
	Upsert(ctx context.Context, ad domain.Ad) error
	Remove(ctx context.Context, adID string) error
	Create(ctx context.Context, input domain.AdInput) (*domain.Ad, error)
	Update(ctx context.Context, adID string, input domain.AdInput) (*domain.Ad, error)
	ToggleActive(ctx context.Context, adID string) (*domain.Ad, error)
}

type Service struct {
	adRepo repository.AdRepository
	seedMu sync.Mutex
	now    func() time.Time
}

func NewService(adRepo repository.AdRepository) *Service {
	return &Service{
		adRepo: adRepo,
		now:    time.Now,
	}
}

// List returns every ad. An ads collection that was never written is seeded
// with the default inventory, which is persisted before returning.
func (s *Service) List(ctx context.Context) ([]domain.Ad, error) {
	ads, initialized, err := s.adRepo.ListAds(ctx)
	if err != nil {
		return nil, err
	}
	if initialized {
		return ads, nil
	}

	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	// another caller may have seeded while we waited
	ads, initialized, err = s.adRepo.ListAds(ctx)
	if err != nil {
		return nil, err
	}
	if initialized {
		return ads, nil
	}

	seed := domain.DefaultAds(s.now().UTC())
	if err := s.adRepo.SaveAds(ctx, seed); err != nil {
		return nil, err
	}

	logrus.WithField("ads", len(seed)).Info("Ads collection seeded with default inventory")
	return seed, nil
}

func (s *Service) Get(ctx context.Context, adID string) (*domain.Ad, error) {
	ads, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range ads {
		if ads[i].ID == adID {
			return &ads[i], nil
		}
	}

	return nil, NewAdError(ErrAdNotFound, apiErrors.ErrAdNotFound, adID, nil)
}

// Upsert replaces the ad with the same id in place or appends it. Fields are
// stored as given.
func (s *Service) Upsert(ctx context.Context, ad domain.Ad) error {
	ads, err := s.List(ctx)
	if err != nil {
		return err
	}

	for i := range ads {
		if ads[i].ID == ad.ID {
			ads[i] = ad
			return s.adRepo.SaveAds(ctx, ads)
		}
	}

	return s.adRepo.SaveAds(ctx, append(ads, ad))
}

// Remove deletes the ad. Removing an unknown id is a no-op.
func (s *Service) Remove(ctx context.Context, adID string) error {
	ads, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]domain.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.ID != adID {
			kept = append(kept, ad)
		}
	}

	return s.adRepo.SaveAds(ctx, kept)
}

func (s *Service) Create(ctx context.Context, input domain.AdInput) (*domain.Ad, error) {
	if problems := input.Validate(); len(problems) > 0 {
		return nil, NewAdError(ErrInvalidAd, apiErrors.ErrInvalidFormat, "", problems)
	}

	ads, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ad := fromInput(input, uniqueAdID(ads, now))
	ad.CreatedAt = now
	ad.Active = input.Active == nil || *input.Active

	if err := s.adRepo.SaveAds(ctx, append(ads, ad)); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"ad_id": ad.ID, "title": ad.Title}).Info("Ad created")
	return &ad, nil
}

// Update applies the admin form to an existing ad, keeping its counters and
// creation time. Active stays as stored unless the form sets it.
func (s *Service) Update(ctx context.Context, adID string, input domain.AdInput) (*domain.Ad, error) {
	if problems := input.Validate(); len(problems) > 0 {
		return nil, NewAdError(ErrInvalidAd, apiErrors.ErrInvalidFormat, adID, problems)
	}

	current, err := s.Get(ctx, adID)
	if err != nil {
		return nil, err
	}

	ad := fromInput(input, adID)
	ad.Clicks = current.Clicks
	ad.Impressions = current.Impressions
	ad.CreatedAt = current.CreatedAt
	ad.Active = current.Active
	if input.Active != nil {
		ad.Active = *input.Active
	}

	if err := s.Upsert(ctx, ad); err != nil {
		return nil, err
	}

	return &ad, nil
}

func (s *Service) ToggleActive(ctx context.Context, adID string) (*domain.Ad, error) {
	ad, err := s.Get(ctx, adID)
	if err != nil {
		return nil, err
	}

	ad.Active = !ad.Active
	if err := s.Upsert(ctx, *ad); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"ad_id": ad.ID, "active": ad.Active}).Info("Ad status toggled")
	return ad, nil
}

func fromInput(input domain.AdInput, adID string) domain.Ad {
	return domain.Ad{
		ID:           adID,
		Title:        input.Title,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		VideoURL:     input.VideoURL,
		TargetURL:    input.TargetURL,
		Type:         input.Type,
		Position:     input.Position,
		CostPerClick: input.CostPerClick,
	}
}

// uniqueAdID returns ad_<ms>, moving forward a millisecond on collision.
func uniqueAdID(ads []domain.Ad, now time.Time) string {
	taken := make(map[string]bool, len(ads))
	for _, ad := range ads {
		taken[ad.ID] = true
	}

	for {
		id := utils.TimestampID("ad", now)
		if !taken[id] {
			return id
		}
		now = now.Add(time.Millisecond)
	}
}
