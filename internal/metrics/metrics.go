// Package metrics provides Prometheus metrics for the portal.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rate lookup outcomes.
const (
	RateCached    = "cached"
	RateFetched   = "fetched"
	RatePersisted = "persisted"
	RateDefault   = "default"
)

// UnknownAdType labels clicks on ads that no longer exist.
const UnknownAdType = "unknown"

var (
	AdImpressionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "ads",
		Name:      "impressions_total",
		Help:      "Impressions recorded by ad type.",
	}, []string{"type"})
	AdClicksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "ads",
		Name:      "clicks_total",
		Help:      "Clicks recorded by ad type.",
	}, []string{"type"})
	AdRevenueTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "ads",
		Name:      "revenue_usd_total",
		Help:      "Sum of the cost of every recorded click.",
	})

	LoginsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "sessions",
		Name:      "logins_total",
		Help:      "Portal logins.",
	})

	RotationsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "portal",
		Subsystem: "rotations",
		Name:      "active",
		Help:      "Open ad rotation sessions.",
	})

	RateLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "rate",
		Name:      "lookups_total",
		Help:      "Exchange rate lookups by the source that answered.",
	}, []string{"source"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method and status code.",
	}, []string{"method", "code"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portal",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(
		AdImpressionsTotal,
		AdClicksTotal,
		AdRevenueTotal,
		LoginsTotal,
		RotationsActive,
		RateLookupsTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Instrument counts requests and observes their latency.
func Instrument() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
			HTTPRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
