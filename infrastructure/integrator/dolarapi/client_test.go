package dolarapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/captive-portal-api/internal/config"
)

func testConfig(url string, retries int) *config.Config {
	return &config.Config{
		Rate: config.Rate{
			SourceURL:    url,
			Timeout:      time.Second,
			Retries:      retries,
			RetryBackoff: time.Millisecond,
		},
	}
}

func TestClient_FetchRate(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected float64
		wantErr  bool
	}{
		{
			name:     "reads promedio",
			status:   http.StatusOK,
			body:     `{"fuente":"oficial","nombre":"Oficial","compra":null,"venta":null,"promedio":36.42,"fechaActualizacion":"2024-01-16T00:00:00.000Z"}`,
			expected: 36.42,
		},
		{name: "non 2xx", status: http.StatusServiceUnavailable, body: `down`, wantErr: true},
		{name: "malformed body", status: http.StatusOK, body: `<html>`, wantErr: true},
		{name: "missing promedio", status: http.StatusOK, body: `{"fuente":"oficial"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			rate, err := NewClient(testConfig(srv.URL, 0)).FetchRate(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rate)
		})
	}
}

func TestClient_FetchRate_Retries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"promedio":40.1}`))
	}))
	defer srv.Close()

	rate, err := NewClient(testConfig(srv.URL, 2), WithHTTPClient(srv.Client())).FetchRate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 40.1, rate)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
