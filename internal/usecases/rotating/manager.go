// Package rotating runs the ad carousels of the portal screens.
//
// Each opened screen gets a rotation session: a shuffled snapshot of the
// eligible ads, a cursor that a gocron job advances on the screen interval and,
// on the dashboard, one popup revealed after a delay.
package rotating

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/internal/config"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/internal/metrics"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
	"github.com/vfg2006/captive-portal-api/pkg/apiErrors"
)

type Rotator interface {
	Open(ctx context.Context, screen domain.Screen) (*domain.RotationView, error)
	View(rotationID string) (*domain.RotationView, error)
	Close(rotationID string) error
}

type session struct {
	mu sync.Mutex

	id       string
	screen   domain.Screen
	profile  config.Profile
	ads      []domain.Ad
	cursor   int
	openedAt time.Time
	lastSeen time.Time

	popup      *domain.Ad
	popupAt    time.Time
	popupShown bool

	job *gocron.Job
}

type Manager struct {
	ledger     advertising.Ledger
	scheduler  *gocron.Scheduler
	login      config.Profile
	dashboard  config.Profile
	popupDelay time.Duration

	// mu guards sessions, rng and the scheduler builder chain
	mu       sync.Mutex
	sessions map[string]*session
	rng      *rand.Rand
	now      func() time.Time
}

type Option func(*Manager)

// WithRand fixes the random source used for shuffles and popup picks.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) {
		m.rng = rng
	}
}

func NewManager(ledger advertising.Ledger, cfg *config.Config, opts ...Option) *Manager {
	m := &Manager{
		ledger:     ledger,
		scheduler:  gocron.NewScheduler(time.Local),
		login:      cfg.Rotation.Login(),
		dashboard:  cfg.Rotation.Dashboard(),
		popupDelay: cfg.Rotation.PopupDelay,
		sessions:   make(map[string]*session),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start runs the tick jobs until ctx is done. Sessions opened before Start
// begin rotating once it is called.
func (m *Manager) Start(ctx context.Context) {
	m.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping ad rotation scheduler")
		m.scheduler.Stop()
	}()
}

func (m *Manager) profileFor(screen domain.Screen) config.Profile {
	if screen == domain.ScreenDashboard {
		return m.dashboard
	}
	return m.login
}

// Open snapshots the eligible ads for screen and starts rotating them.
func (m *Manager) Open(ctx context.Context, screen domain.Screen) (*domain.RotationView, error) {
	if !screen.Valid() {
		return nil, NewRotationError(ErrInvalidScreen, apiErrors.ErrInvalidScreen, string(screen))
	}

	ads, err := m.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	eligible := domain.FilterForScreen(ads, screen)
	var popups []domain.Ad
	if screen == domain.ScreenDashboard {
		eligible, popups = domain.SplitPopups(eligible)
	}

	now := m.now()
	s := &session{
		id:       uuid.NewString(),
		screen:   screen,
		profile:  m.profileFor(screen),
		openedAt: now,
		lastSeen: now,
		popupAt:  now.Add(m.popupDelay),
	}

	m.mu.Lock()
	s.ads = Shuffle(eligible, m.rng)
	if len(popups) > 0 {
		popup := popups[m.rng.Intn(len(popups))]
		s.popup = &popup
	}

	// an empty carousel never ticks
	if len(s.ads) > 0 {
		id := s.id
		job, err := m.scheduler.Every(s.profile.Interval).WaitForSchedule().Do(func() {
			m.Tick(id)
		})
		if err != nil {
			m.mu.Unlock()
			return nil, fmt.Errorf("scheduling rotation %s: %w", s.id, err)
		}
		s.job = job
	}

	view := s.view(now)
	m.sessions[s.id] = s
	m.mu.Unlock()

	metrics.RotationsActive.Inc()
	logrus.WithFields(logrus.Fields{
		"rotation_id": s.id,
		"screen":      screen,
		"ads":         len(s.ads),
		"has_popup":   s.popup != nil,
	}).Debug("Rotation opened")

	return view, nil
}

func (m *Manager) get(rotationID string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[rotationID]
	if !ok {
		return nil, NewRotationError(ErrRotationNotFound, apiErrors.ErrRotationNotFound, rotationID)
	}
	return s, nil
}

// View returns what the screen shows now and marks the session as alive.
func (m *Manager) View(rotationID string) (*domain.RotationView, error) {
	s, err := m.get(rotationID)
	if err != nil {
		return nil, err
	}

	now := m.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = now
	return s.view(now), nil
}

// Tick advances the cursor of a session by its screen step.
func (m *Manager) Tick(rotationID string) {
	s, err := m.get(rotationID)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if next, ok := domain.Advance(s.cursor, s.profile.Step, len(s.ads)); ok {
		s.cursor = next
	}
}

// Close stops the session timer. Closing twice reports not found.
func (m *Manager) Close(rotationID string) error {
	m.mu.Lock()
	s, ok := m.sessions[rotationID]
	if !ok {
		m.mu.Unlock()
		return NewRotationError(ErrRotationNotFound, apiErrors.ErrRotationNotFound, rotationID)
	}
	delete(m.sessions, rotationID)
	if s.job != nil {
		m.scheduler.RemoveByReference(s.job)
	}
	m.mu.Unlock()

	metrics.RotationsActive.Dec()
	logrus.WithField("rotation_id", rotationID).Debug("Rotation closed")
	return nil
}

// CloseIdle closes the sessions not viewed for longer than ttl and returns
// how many were closed.
func (m *Manager) CloseIdle(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	idle := make([]string, 0)
	for id, s := range m.sessions {
		s.mu.Lock()
		if s.lastSeen.Before(cutoff) {
			idle = append(idle, id)
		}
		s.mu.Unlock()
	}
	m.mu.Unlock()

	closed := 0
	for _, id := range idle {
		if err := m.Close(id); err == nil {
			closed++
		}
	}

	return closed
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// view must be called with s.mu held or before s is published.
func (s *session) view(now time.Time) *domain.RotationView {
	v := &domain.RotationView{
		ID:       s.id,
		Screen:   s.screen,
		Cursor:   s.cursor,
		Size:     len(s.ads),
		Ads:      domain.Window(s.ads, s.cursor, s.profile.Window),
		OpenedAt: s.openedAt,
	}

	if s.popup != nil && !s.popupShown && !now.Before(s.popupAt) {
		popup := *s.popup
		v.Popup = &popup
		s.popupShown = true
	}

	return v
}
