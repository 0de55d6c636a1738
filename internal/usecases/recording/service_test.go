package recording

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/captive-portal-api/infrastructure/repository"
	"github.com/vfg2006/captive-portal-api/infrastructure/repository/mocks"
	"github.com/vfg2006/captive-portal-api/internal/config"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/internal/metrics"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	service   *Service
	ledger    *advertising.Service
	clickRepo repository.AdClickRepository
	userRepo  repository.UserRepository
}

func newFixture(atomic bool) *fixture {
	store := repository.NewMemoryStore()
	ledger := advertising.NewService(repository.NewAdRepository(store))
	clickRepo := repository.NewAdClickRepository(store)
	userRepo := repository.NewUserRepository(store)

	cfg := &config.Config{Recorder: config.Recorder{AtomicCounters: atomic}}
	s := NewService(ledger, clickRepo, userRepo, cfg)
	s.now = func() time.Time { return time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC) }

	return &fixture{service: s, ledger: ledger, clickRepo: clickRepo, userRepo: userRepo}
}

func (f *fixture) login(t *testing.T, user domain.User) {
	ctx := context.Background()
	require.NoError(t, f.userRepo.SaveUser(ctx, user))
	require.NoError(t, f.userRepo.SetCurrentUserID(ctx, user.ID))
}

func TestService_RecordImpression(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.service.RecordImpression(ctx, "ad_2"))
	}
	require.NoError(t, f.service.RecordImpression(ctx, "unknown"))

	ad, err := f.ledger.Get(ctx, "ad_2")
	require.NoError(t, err)
	assert.Equal(t, 3, ad.Impressions)

	ads, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ads, 4)
}

func TestService_RecordClick_Accounting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)
	f.login(t, domain.User{ID: "u1", Email: "ana@example.com", Name: "Ana", Authenticated: true})

	const n = 5
	const cost = 0.75
	for i := 0; i < n; i++ {
		require.NoError(t, f.service.RecordClick(ctx, "ad_2", "u1", cost))
	}

	ad, err := f.ledger.Get(ctx, "ad_2")
	require.NoError(t, err)
	assert.Equal(t, n, ad.Clicks)

	clicks, err := f.clickRepo.ListClicks(ctx)
	require.NoError(t, err)
	require.Len(t, clicks, n)

	var revenue float64
	ids := map[string]bool{}
	for _, c := range clicks {
		revenue += c.Cost
		ids[c.ID] = true
		assert.Equal(t, "u1", c.UserID)
		assert.Regexp(t, `^click_1705399200000_[a-z0-9]{9}$`, c.ID)
	}
	assert.InDelta(t, n*cost, revenue, 1e-9)
	assert.Len(t, ids, n)

	user, err := f.userRepo.FindUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, n, user.TotalClicks)
}

func TestService_RecordClick_DanglingAd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	require.NoError(t, f.service.RecordClick(ctx, "deleted_ad", "u1", 0.2))

	clicks, err := f.clickRepo.ListClicks(ctx)
	require.NoError(t, err)
	require.Len(t, clicks, 1)
	assert.Equal(t, "deleted_ad", clicks[0].AdID)
}

func TestService_ClickAd(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		setup        func(t *testing.T, f *fixture)
		adID         string
		wantErr      error
		wantRecorded bool
	}{
		{
			name:         "logged in visitor is billed",
			setup:        func(t *testing.T, f *fixture) { f.login(t, domain.User{ID: "u1", Name: "Ana"}) },
			adID:         "ad_1",
			wantRecorded: true,
		},
		{
			name:  "anonymous click only redirects",
			setup: func(t *testing.T, f *fixture) {},
			adID:  "ad_1",
		},
		{
			name: "pointer to a removed user only redirects",
			setup: func(t *testing.T, f *fixture) {
				require.NoError(t, f.userRepo.SetCurrentUserID(context.Background(), "ghost"))
			},
			adID: "ad_1",
		},
		{
			name:    "unknown ad",
			setup:   func(t *testing.T, f *fixture) {},
			adID:    "ad_99",
			wantErr: advertising.ErrAdNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(false)
			tt.setup(t, f)

			result, err := f.service.ClickAd(ctx, tt.adID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://example.com/iphone", result.TargetURL)
			assert.Equal(t, tt.wantRecorded, result.Recorded)

			clicks, err := f.clickRepo.ListClicks(ctx)
			require.NoError(t, err)
			if tt.wantRecorded {
				require.Len(t, clicks, 1)
				assert.Equal(t, 0.5, clicks[0].Cost)
			} else {
				assert.Empty(t, clicks)
			}
		})
	}
}

func TestService_AtomicCounters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)

	_, err := f.ledger.List(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.service.RecordImpression(ctx, "ad_1"))
		}()
	}
	wg.Wait()

	ad, err := f.ledger.Get(ctx, "ad_1")
	require.NoError(t, err)
	assert.Equal(t, 20, ad.Impressions)
}

func TestService_RecordClick_AppendFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClickRepo := mocks.NewMockAdClickRepository(ctrl)
	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockAdRepo := mocks.NewMockAdRepository(ctrl)

	s := NewService(advertising.NewService(mockAdRepo), mockClickRepo, mockUserRepo, &config.Config{})

	mockClickRepo.EXPECT().AppendClick(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))

	err := s.RecordClick(context.Background(), "ad_1", "u1", 0.5)
	assert.EqualError(t, err, "write failed")
}

func TestService_MetricsLabelledByAdType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	videoImpressions := testutil.ToFloat64(metrics.AdImpressionsTotal.WithLabelValues(string(domain.AdTypeVideo)))
	popupClicks := testutil.ToFloat64(metrics.AdClicksTotal.WithLabelValues(string(domain.AdTypePopup)))
	unknownClicks := testutil.ToFloat64(metrics.AdClicksTotal.WithLabelValues(metrics.UnknownAdType))

	require.NoError(t, f.service.RecordImpression(ctx, "ad_3"))
	require.NoError(t, f.service.RecordClick(ctx, "ad_4", "u1", 0.5))
	require.NoError(t, f.service.RecordClick(ctx, "ad_deleted", "u1", 0.5))

	assert.Equal(t, videoImpressions+1, testutil.ToFloat64(metrics.AdImpressionsTotal.WithLabelValues(string(domain.AdTypeVideo))))
	assert.Equal(t, popupClicks+1, testutil.ToFloat64(metrics.AdClicksTotal.WithLabelValues(string(domain.AdTypePopup))))
	assert.Equal(t, unknownClicks+1, testutil.ToFloat64(metrics.AdClicksTotal.WithLabelValues(metrics.UnknownAdType)))
}
