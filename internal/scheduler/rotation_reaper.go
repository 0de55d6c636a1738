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

type IdleCloser interface {
	CloseIdle(ttl time.Duration) int
}

// RotationReaperService closes rotation sessions whose screen stopped polling.
type RotationReaperService struct {
	scheduler           *gocron.Scheduler
	interval            time.Duration
	idleTTL             time.Duration
	rotations           IdleCloser
	syncMutex           sync.Mutex
	lastSyncCompletedAt time.Time
	lastClosed          int
	totalClosed         int
}

func NewRotationReaperService(rotations IdleCloser, appConfig *config.Config) *RotationReaperService {
	return &RotationReaperService{
		scheduler: gocron.NewScheduler(time.Local),
		interval:  appConfig.Rotation.ReaperInterval,
		idleTTL:   appConfig.Rotation.IdleTTL,
		rotations: rotations,
	}
}

func (s *RotationReaperService) Start(ctx context.Context) error {
	if s.interval <= 0 || s.idleTTL <= 0 {
		logrus.Info("Rotation reaper disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.reap)
	if err != nil {
		return fmt.Errorf("scheduling rotation reaper: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping rotation reaper")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *RotationReaperService) reap() {
	closed := s.rotations.CloseIdle(s.idleTTL)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.lastClosed = closed
	s.totalClosed += closed
	s.syncMutex.Unlock()

	if closed > 0 {
		logrus.WithField("closed", closed).Info("Idle rotations closed")
	}
}

func (s *RotationReaperService) TriggerManualSync() {
	go s.reap()
}

func (s *RotationReaperService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"interval":               s.interval.String(),
		"idle_ttl":               s.idleTTL.String(),
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_closed":            s.lastClosed,
		"total_closed":           s.totalClosed,
	}
}
