package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/captive-portal-api/internal/domain"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	value := []byte(`{"a":1}`)
	require.NoError(t, store.Put(ctx, "k", value))
	value[0] = 'x' // the store keeps its own copy

	got, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, store.Delete(ctx, "k"))
	_, found, _ = store.Get(ctx, "k")
	assert.False(t, found)
	assert.NoError(t, store.Ping(ctx))
}

func TestAdRepository_InitializedFlag(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewAdRepository(store)

	ads, initialized, err := repo.ListAds(ctx)
	require.NoError(t, err)
	assert.False(t, initialized)
	assert.Empty(t, ads)

	require.NoError(t, repo.SaveAds(ctx, nil))

	ads, initialized, err = repo.ListAds(ctx)
	require.NoError(t, err)
	assert.True(t, initialized)
	assert.NotNil(t, ads)
	assert.Empty(t, ads)
}

func TestRepositories_MalformedDocumentsReadAsAbsent(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		payload  string
		validate func(t *testing.T, store DocumentStore)
	}{
		{
			name:    "ads not json",
			key:     AdsKey,
			payload: `{not json`,
			validate: func(t *testing.T, store DocumentStore) {
				ads, initialized, err := NewAdRepository(store).ListAds(context.Background())
				require.NoError(t, err)
				assert.False(t, initialized)
				assert.NotNil(t, ads)
				assert.Empty(t, ads)
			},
		},
		{
			name:    "ads truncated after a valid element",
			key:     AdsKey,
			payload: `[{"id":"ad_1","title":"A","costPerClick":0.5},{"id":`,
			validate: func(t *testing.T, store DocumentStore) {
				ads, initialized, err := NewAdRepository(store).ListAds(context.Background())
				require.NoError(t, err)
				assert.False(t, initialized)
				assert.Empty(t, ads)
			},
		},
		{
			name:    "users truncated after a valid element",
			key:     UsersKey,
			payload: `[{"id":"u1","email":"a@b.c","name":"A","authenticated":true,"totalClicks":1},{"id":`,
			validate: func(t *testing.T, store DocumentStore) {
				users, err := NewUserRepository(store).ListUsers(context.Background())
				require.NoError(t, err)
				assert.NotNil(t, users)
				assert.Empty(t, users)
			},
		},
		{
			name:    "users field type mismatch",
			key:     UsersKey,
			payload: `[{"id":"u1","name":"A"},{"id":"u2","totalClicks":"many"}]`,
			validate: func(t *testing.T, store DocumentStore) {
				repo := NewUserRepository(store)
				users, err := repo.ListUsers(context.Background())
				require.NoError(t, err)
				assert.Empty(t, users)

				user, err := repo.FindUser(context.Background(), "u1")
				require.NoError(t, err)
				assert.Nil(t, user)
			},
		},
		{
			name:    "clicks field type mismatch",
			key:     AdClicksKey,
			payload: `[{"id":"c1","adId":"ad_1","userId":"u1","cost":0.5},{"id":"c2","cost":"x"}]`,
			validate: func(t *testing.T, store DocumentStore) {
				clicks, err := NewAdClickRepository(store).ListClicks(context.Background())
				require.NoError(t, err)
				assert.NotNil(t, clicks)
				assert.Empty(t, clicks)
			},
		},
		{
			name:    "clicks truncated",
			key:     AdClicksKey,
			payload: `[{"id":"c1","adId":"ad_1","cost":0.5},`,
			validate: func(t *testing.T, store DocumentStore) {
				clicks, err := NewAdClickRepository(store).ListClicks(context.Background())
				require.NoError(t, err)
				assert.Empty(t, clicks)
			},
		},
		{
			name:    "current user id of the wrong type",
			key:     CurrentUserIDKey,
			payload: `123`,
			validate: func(t *testing.T, store DocumentStore) {
				userID, err := NewUserRepository(store).GetCurrentUserID(context.Background())
				require.NoError(t, err)
				assert.Equal(t, "", userID)
			},
		},
		{
			name:    "rate with a string value",
			key:     RateKey,
			payload: `{"timestamp":"2024-01-01T00:00:00Z","rate":"x"}`,
			validate: func(t *testing.T, store DocumentStore) {
				entry, err := NewRateRepository(store).GetRate(context.Background())
				require.NoError(t, err)
				assert.Nil(t, entry)
			},
		},
		{
			name:    "rate truncated",
			key:     RateKey,
			payload: `{"rate":36.5,"timestamp":`,
			validate: func(t *testing.T, store DocumentStore) {
				entry, err := NewRateRepository(store).GetRate(context.Background())
				require.NoError(t, err)
				assert.Nil(t, entry)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Put(context.Background(), tt.key, []byte(tt.payload)))

			tt.validate(t, store)
		})
	}
}

func TestRepositories_WriteAfterMalformedReadDropsPartialRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, UsersKey, []byte(`[{"id":"u1","name":"A"},{"id":`)))
	require.NoError(t, store.Put(ctx, AdClicksKey, []byte(`[{"id":"c1","cost":0.5},{"id":"c2","cost":"x"}]`)))

	users := NewUserRepository(store)
	require.NoError(t, users.SaveUser(ctx, domain.User{ID: "u2", Name: "B"}))

	clicks := NewAdClickRepository(store)
	require.NoError(t, clicks.AppendClick(ctx, domain.AdClick{ID: "c3", AdID: "ad_1", Cost: 0.5}))

	gotUsers, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, gotUsers, 1)
	assert.Equal(t, "u2", gotUsers[0].ID)

	gotClicks, err := clicks.ListClicks(ctx)
	require.NoError(t, err)
	require.Len(t, gotClicks, 1)
	assert.Equal(t, "c3", gotClicks[0].ID)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryStore())

	require.NoError(t, repo.SaveUser(ctx, domain.User{ID: "u1", Name: "Ana"}))
	require.NoError(t, repo.SaveUser(ctx, domain.User{ID: "u2", Name: "Luis"}))
	require.NoError(t, repo.SaveUser(ctx, domain.User{ID: "u1", Name: "Ana", TotalClicks: 3}))

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, 3, users[0].TotalClicks)

	user, err := repo.FindUser(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Luis", user.Name)

	user, err = repo.FindUser(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_CurrentUserPointer(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryStore())

	id, err := repo.GetCurrentUserID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, repo.SetCurrentUserID(ctx, "u1"))
	id, _ = repo.GetCurrentUserID(ctx)
	assert.Equal(t, "u1", id)

	require.NoError(t, repo.SetCurrentUserID(ctx, ""))
	id, _ = repo.GetCurrentUserID(ctx)
	assert.Empty(t, id)

	require.NoError(t, repo.SetCurrentUserID(ctx, "u2"))
	require.NoError(t, repo.ClearCurrentUserID(ctx))
	id, _ = repo.GetCurrentUserID(ctx)
	assert.Empty(t, id)
}

func TestAdClickRepository_Append(t *testing.T) {
	ctx := context.Background()
	repo := NewAdClickRepository(NewMemoryStore())

	clicks, err := repo.ListClicks(ctx)
	require.NoError(t, err)
	assert.Empty(t, clicks)

	now := time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AppendClick(ctx, domain.AdClick{ID: "c1", AdID: "ad_1", Cost: 0.5, Timestamp: now}))
	require.NoError(t, repo.AppendClick(ctx, domain.AdClick{ID: "c2", AdID: "ad_2", Cost: 0.75, Timestamp: now}))

	clicks, err = repo.ListClicks(ctx)
	require.NoError(t, err)
	require.Len(t, clicks, 2)
	assert.Equal(t, "c1", clicks[0].ID)
	assert.Equal(t, now, clicks[1].Timestamp)
}

func TestRateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRateRepository(NewMemoryStore())

	entry, err := repo.GetRate(ctx)
	require.NoError(t, err)
	assert.Nil(t, entry)

	now := time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveRate(ctx, domain.RateEntry{Rate: 36.42, Timestamp: now}))

	entry, err = repo.GetRate(ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 36.42, entry.Rate)
	assert.True(t, now.Equal(entry.Timestamp))
}
