package utils

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 33.33, RoundWithTwoDecimalPlace(100.0/3))
	assert.Equal(t, 1.01, RoundWithTwoDecimalPlace(1.005000001))
	assert.Equal(t, 20.0, RoundWithTwoDecimalPlace(20))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(math.NaN()))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(math.Inf(1)))
}

func TestPrefixedID(t *testing.T) {
	now := time.UnixMilli(1705400000000)

	id, err := PrefixedID("user", now, 9)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^user_1705400000000_[a-z0-9]{9}$`), id)
}

func TestTimestampID(t *testing.T) {
	assert.Equal(t, "ad_1705400000000", TimestampID("ad", time.UnixMilli(1705400000000)))
}

func TestBackoff_Do(t *testing.T) {
	t.Run("returns on first success", func(t *testing.T) {
		calls := 0
		err := NewBackoff(time.Millisecond, 3).Do(context.Background(), func(int) error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := NewBackoff(time.Millisecond, 3).Do(context.Background(), func(int) error {
			calls++
			if calls < 3 {
				return errors.New("boom")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := NewBackoff(time.Millisecond, 2).Do(context.Background(), func(int) error {
			calls++
			return errors.New("boom")
		})

		assert.EqualError(t, err, "boom")
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := NewBackoff(time.Hour, 5).Do(ctx, func(int) error {
			calls++
			return errors.New("boom")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestMakeRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := MakeRequest(context.Background(), srv.Client(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	_, err = MakeRequest(context.Background(), srv.Client(), srv.URL+"/fail")
	assert.ErrorContains(t, err, "upstream down")
}
