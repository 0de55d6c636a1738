// Package recording counts impressions and clicks against the ad ledger.
package recording

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/infrastructure/repository"
	"github.com/vfg2006/captive-portal-api/internal/config"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/internal/metrics"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
	"github.com/vfg2006/captive-portal-api/pkg/utils"
)

const clickIDRandomSize = 9

type Recorder interface {
	RecordImpression(ctx context.Context, adID string) error
	RecordClick(ctx context.Context, adID, userID string, cost float64) error
	ClickAd(ctx context.Context, adID string) (*domain.ClickResult, error)
}

type Service struct {
	ledger    advertising.Ledger
	clickRepo repository.AdClickRepository
	userRepo  repository.UserRepository

	// serializes the read-modify-write cycles when atomic is set
	mu     sync.Mutex
	atomic bool
	now    func() time.Time
}

func NewService(
	ledger advertising.Ledger,
	clickRepo repository.AdClickRepository,
	userRepo repository.UserRepository,
	cfg *config.Config,
) *Service {
	return &Service{
		ledger:    ledger,
		clickRepo: clickRepo,
		userRepo:  userRepo,
		atomic:    cfg.Recorder.AtomicCounters,
		now:       time.Now,
	}
}

func (s *Service) lock() func() {
	if !s.atomic {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// RecordImpression adds one to the ad impression counter. Unknown ids are ignored.
func (s *Service) RecordImpression(ctx context.Context, adID string) error {
	defer s.lock()()

	ad, err := s.find(ctx, adID)
	if err != nil || ad == nil {
		return err
	}

	ad.Impressions++
	if err := s.ledger.Upsert(ctx, *ad); err != nil {
		return err
	}

	metrics.AdImpressionsTotal.WithLabelValues(string(ad.Type)).Inc()
	return nil
}

// RecordClick appends a click event, then bumps the ad click counter and the
// click total of the current user. The event is kept even when the ad or the
// user no longer exist.
func (s *Service) RecordClick(ctx context.Context, adID, userID string, cost float64) error {
	defer s.lock()()

	now := s.now().UTC()
	clickID, err := utils.PrefixedID("click", now, clickIDRandomSize)
	if err != nil {
		return err
	}

	click := domain.AdClick{
		ID:        clickID,
		AdID:      adID,
		UserID:    userID,
		Timestamp: now,
		Cost:      cost,
	}
	if err := s.clickRepo.AppendClick(ctx, click); err != nil {
		return err
	}

	ad, err := s.find(ctx, adID)
	if err != nil {
		return err
	}

	adType := metrics.UnknownAdType
	if ad != nil {
		adType = string(ad.Type)
	}
	metrics.AdClicksTotal.WithLabelValues(adType).Inc()
	if cost > 0 {
		metrics.AdRevenueTotal.Add(cost)
	}

	if ad != nil {
		ad.Clicks++
		if err := s.ledger.Upsert(ctx, *ad); err != nil {
			return err
		}
	}

	user, err := repository.ResolveCurrentUser(ctx, s.userRepo)
	if err != nil {
		return err
	}
	if user != nil {
		user.TotalClicks++
		if err := s.userRepo.SaveUser(ctx, *user); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{"ad_id": adID, "user_id": userID, "cost": cost}).Debug("Click recorded")
	return nil
}

// ClickAd is the banner click of a screen. It records the click only while
// a visitor is logged in and always returns the ad destination.
func (s *Service) ClickAd(ctx context.Context, adID string) (*domain.ClickResult, error) {
	ad, err := s.ledger.Get(ctx, adID)
	if err != nil {
		return nil, err
	}

	result := &domain.ClickResult{AdID: ad.ID, TargetURL: ad.TargetURL}

	user, err := repository.ResolveCurrentUser(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return result, nil
	}

	if err := s.RecordClick(ctx, ad.ID, user.ID, ad.CostPerClick); err != nil {
		return nil, err
	}

	result.Recorded = true
	return result, nil
}

func (s *Service) find(ctx context.Context, adID string) (*domain.Ad, error) {
	ads, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ads {
		if ads[i].ID == adID {
			return &ads[i], nil
		}
	}
	return nil, nil
}
