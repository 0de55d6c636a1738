// Package pricing owns the USD to VES exchange rate and ad display prices.
package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/infrastructure/integrator/dolarapi"
	"github.com/vfg2006/captive-portal-api/infrastructure/repository"
	"github.com/vfg2006/captive-portal-api/internal/config"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/internal/metrics"
)

type RateProvider interface {
	// GetRate never fails: it degrades to the last known rate and then to
	// the configured fallback.
	GetRate(ctx context.Context) float64
	Refresh(ctx context.Context) (float64, error)
	PriceFor(ctx context.Context, ad domain.Ad) domain.Price
}

type Service struct {
	fetcher   dolarapi.RateFetcher
	rateRepo  repository.RateRepository
	freshness time.Duration
	fallback  float64

	mu     sync.Mutex
	cached *domain.RateEntry
	loaded bool
	now    func() time.Time
}

func NewService(fetcher dolarapi.RateFetcher, rateRepo repository.RateRepository, cfg *config.Config) *Service {
	fallback := cfg.Rate.Fallback
	if fallback <= 0 {
		fallback = domain.DefaultExchangeRate
	}

	return &Service{
		fetcher:   fetcher,
		rateRepo:  rateRepo,
		freshness: cfg.Rate.Freshness,
		fallback:  fallback,
		now:       time.Now,
	}
}

// GetRate returns the cached rate while it is fresh, otherwise fetches a new
// one. Concurrent callers wait for a single fetch.
func (s *Service) GetRate(ctx context.Context) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadPersisted(ctx)

	if s.cached.FreshAt(s.now(), s.freshness) {
		metrics.RateLookupsTotal.WithLabelValues(metrics.RateCached).Inc()
		return s.cached.Rate
	}

	rate, err := s.fetchAndStore(ctx)
	if err == nil {
		metrics.RateLookupsTotal.WithLabelValues(metrics.RateFetched).Inc()
		return rate
	}

	logrus.WithError(err).Warn("Exchange rate fetch failed, using last known rate")

	if s.cached != nil {
		metrics.RateLookupsTotal.WithLabelValues(metrics.RatePersisted).Inc()
		return s.cached.Rate
	}

	metrics.RateLookupsTotal.WithLabelValues(metrics.RateDefault).Inc()
	return s.fallback
}

// Refresh fetches a new rate regardless of the cache age.
func (s *Service) Refresh(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fetchAndStore(ctx)
}

func (s *Service) PriceFor(ctx context.Context, ad domain.Ad) domain.Price {
	return domain.NewPrice(ad, s.GetRate(ctx))
}

// loadPersisted seeds the in-memory entry from storage on first use so a
// restart inside the freshness window does not refetch.
func (s *Service) loadPersisted(ctx context.Context) {
	if s.loaded {
		return
	}

	entry, err := s.rateRepo.GetRate(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Could not read persisted exchange rate")
		return
	}

	s.loaded = true
	if entry != nil && entry.Rate > 0 {
		s.cached = entry
	}
}

func (s *Service) fetchAndStore(ctx context.Context) (float64, error) {
	rate, err := s.fetcher.FetchRate(ctx)
	if err != nil {
		return 0, err
	}

	entry := domain.RateEntry{Rate: rate, Timestamp: s.now().UTC()}
	s.cached = &entry
	s.loaded = true

	if err := s.rateRepo.SaveRate(ctx, entry); err != nil {
		logrus.WithError(err).Warn("Could not persist exchange rate")
	}

	logrus.WithField("rate", rate).Info("Exchange rate updated")
	return rate, nil
}
