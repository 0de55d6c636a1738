package advertising

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/captive-portal-api/infrastructure/repository"
	"github.com/vfg2006/captive-portal-api/infrastructure/repository/mocks"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)

func newTestLedger() (*Service, repository.DocumentStore) {
	store := repository.NewMemoryStore()
	s := NewService(repository.NewAdRepository(store))
	s.now = func() time.Time { return fixedNow }
	return s, store
}

func validInput() domain.AdInput {
	return domain.AdInput{
		Title:        "Cafe",
		Description:  "Promo",
		ImageURL:     "/cafe.png",
		TargetURL:    "https://example.com/cafe",
		Type:         domain.AdTypeBanner,
		Position:     domain.AdPositionLogin,
		CostPerClick: 0.4,
	}
}

func TestService_List_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestLedger()

	ads, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, ads, 4)
	assert.Equal(t, []string{"ad_1", "ad_2", "ad_3", "ad_4"}, []string{ads[0].ID, ads[1].ID, ads[2].ID, ads[3].ID})

	again, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, ads, again)
}

func TestService_List_EmptyCollectionIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestLedger()

	ads, err := s.List(ctx)
	require.NoError(t, err)
	for _, ad := range ads {
		require.NoError(t, s.Remove(ctx, ad.ID))
	}

	ads, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ads)
}

func TestService_List_MalformedCollectionIsReseeded(t *testing.T) {
	ctx := context.Background()
	s, store := newTestLedger()
	require.NoError(t, store.Put(ctx, repository.AdsKey, []byte("{broken")))

	ads, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ads, 4)
}

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestLedger()

	original, err := s.List(ctx)
	require.NoError(t, err)

	updated := original[1]
	updated.Title = "Changed"
	require.NoError(t, s.Upsert(ctx, updated))

	ads, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, ads, 4)
	assert.Equal(t, "ad_2", ads[1].ID)
	assert.Equal(t, "Changed", ads[1].Title)

	// upserting twice leaves the same state as once
	require.NoError(t, s.Upsert(ctx, updated))
	twice, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, ads, twice)

	fresh := domain.Ad{ID: "ad_new", Title: "New", Active: true}
	require.NoError(t, s.Upsert(ctx, fresh))
	ads, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, ads, 5)
	assert.Equal(t, "ad_new", ads[4].ID)
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestLedger()

	require.NoError(t, s.Remove(ctx, "ad_2"))
	require.NoError(t, s.Remove(ctx, "missing"))

	ads, err := s.List(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(ads))
	for _, ad := range ads {
		ids = append(ids, ad.ID)
	}
	assert.Equal(t, []string{"ad_1", "ad_3", "ad_4"}, ids)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		input    func() domain.AdInput
		wantErr  bool
		validate func(t *testing.T, ad *domain.Ad)
	}{
		{
			name:  "active by default",
			input: validInput,
			validate: func(t *testing.T, ad *domain.Ad) {
				assert.Equal(t, "ad_1705399200000", ad.ID)
				assert.True(t, ad.Active)
				assert.Zero(t, ad.Clicks)
				assert.Zero(t, ad.Impressions)
				assert.Equal(t, fixedNow, ad.CreatedAt)
			},
		},
		{
			name: "explicitly inactive",
			input: func() domain.AdInput {
				in := validInput()
				inactive := false
				in.Active = &inactive
				return in
			},
			validate: func(t *testing.T, ad *domain.Ad) {
				assert.False(t, ad.Active)
			},
		},
		{
			name: "invalid fields",
			input: func() domain.AdInput {
				in := validInput()
				in.Title = ""
				in.CostPerClick = -1
				return in
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestLedger()
			ad, err := s.Create(ctx, tt.input())
			if tt.wantErr {
				var adErr *AdError
				require.ErrorAs(t, err, &adErr)
				assert.Equal(t, apiErrors.ErrInvalidFormat, adErr.Code)
				assert.Contains(t, adErr.Details, "title")
				assert.Contains(t, adErr.Details, "costPerClick")
				return
			}
			require.NoError(t, err)
			tt.validate(t, ad)

			stored, err := s.Get(ctx, ad.ID)
			require.NoError(t, err)
			assert.Equal(t, *ad, *stored)
		})
	}
}

func TestService_Create_SameMillisecond(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestLedger()

	first, err := s.Create(ctx, validInput())
	require.NoError(t, err)
	second, err := s.Create(ctx, validInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestService_Update_KeepsCounters(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestLedger()

	ad, err := s.Get(ctx, "ad_1")
	require.NoError(t, err)
	ad.Clicks = 7
	ad.Impressions = 40
	ad.Active = false
	require.NoError(t, s.Upsert(ctx, *ad))

	input := validInput()
	input.Title = "Edited"
	updated, err := s.Update(ctx, "ad_1", input)
	require.NoError(t, err)

	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, 7, updated.Clicks)
	assert.Equal(t, 40, updated.Impressions)
	assert.False(t, updated.Active)
	assert.Equal(t, ad.CreatedAt, updated.CreatedAt)

	_, err = s.Update(ctx, "missing", input)
	assert.True(t, errors.Is(err, ErrAdNotFound))
}

func TestService_ToggleActive(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestLedger()

	ad, err := s.ToggleActive(ctx, "ad_3")
	require.NoError(t, err)
	assert.False(t, ad.Active)

	ad, err = s.ToggleActive(ctx, "ad_3")
	require.NoError(t, err)
	assert.True(t, ad.Active)

	_, err = s.ToggleActive(ctx, "nope")
	var adErr *AdError
	require.ErrorAs(t, err, &adErr)
	assert.Equal(t, apiErrors.ErrAdNotFound, adErr.Code)
}

func TestService_List_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	s := NewService(mockAdRepo)

	mockAdRepo.EXPECT().ListAds(gomock.Any()).Return(nil, false, errors.New("connection reset"))

	_, err := s.List(context.Background())
	assert.EqualError(t, err, "connection reset")
}

func TestService_List_SeedPersistFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	s := NewService(mockAdRepo)

	mockAdRepo.EXPECT().ListAds(gomock.Any()).Return(nil, false, nil).Times(2)
	mockAdRepo.EXPECT().SaveAds(gomock.Any(), gomock.Len(4)).Return(errors.New("disk full"))

	_, err := s.List(context.Background())
	assert.Error(t, err)
}
