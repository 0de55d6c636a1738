package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/internal/config"
)

// RateRefresher is the part of the rate cache the refresh job needs.
type RateRefresher interface {
	Refresh(ctx context.Context) (float64, error)
}

type RateRefreshConfig struct {
	CronSchedule string
	Timeout      time.Duration
	SyncEnabled  bool
}

// RateRefreshService keeps the exchange rate cache warm on a cron schedule.
type RateRefreshService struct {
	scheduler           *gocron.Scheduler
	config              RateRefreshConfig
	rates               RateRefresher
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRate            float64
	lastError           string
}

func NewRateRefreshService(rates RateRefresher, appConfig *config.Config) *RateRefreshService {
	refreshConfig := RateRefreshConfig{
		CronSchedule: appConfig.Rate.RefreshCron,
		Timeout:      appConfig.Rate.Timeout,
		SyncEnabled:  appConfig.Rate.RefreshEnabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"sync_enabled":  refreshConfig.SyncEnabled,
	}).Info("Exchange rate refresh configuration loaded")

	return &RateRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		rates:     rates,
	}
}

func (s *RateRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Exchange rate refresh disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Starting exchange rate refresh scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling exchange rate refresh: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping exchange rate refresh scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *RateRefreshService) refresh(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Exchange rate refresh already running, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	rate, err := s.rates.Refresh(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Warn("Exchange rate refresh failed")
		return
	}

	s.lastRate = rate
	s.lastError = ""
}

// TriggerManualSync refreshes the rate in the background.
func (s *RateRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Exchange rate refresh already running, ignoring manual request")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Starting manual exchange rate refresh")
	go s.refresh(context.Background())
}

func (s *RateRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_rate":              s.lastRate,
		"last_error":             s.lastError,
	}
}
