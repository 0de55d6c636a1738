package handler

import (
	"net/http"

	"github.com/vfg2006/captive-portal-api/internal/api/handler/router"
	"github.com/vfg2006/captive-portal-api/internal/metrics"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
	"github.com/vfg2006/captive-portal-api/internal/usecases/authenticating"
	"github.com/vfg2006/captive-portal-api/internal/usecases/pricing"
	"github.com/vfg2006/captive-portal-api/internal/usecases/recording"
	"github.com/vfg2006/captive-portal-api/internal/usecases/reporting"
	"github.com/vfg2006/captive-portal-api/internal/usecases/rotating"
	"github.com/vfg2006/captive-portal-api/pkg/middleware"
)

func adminOnly() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{middleware.AdminOnly()}
}

func Healthcheck(store Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(store),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Portal(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/portal/login",
			Method:  http.MethodPost,
			Handler: PortalLogin(service),
		},
		{
			Path:    "/v1/portal/session",
			Method:  http.MethodGet,
			Handler: PortalSession(service),
		},
		{
			Path:    "/v1/portal/logout",
			Method:  http.MethodPost,
			Handler: PortalLogout(service),
		},
	}
}

func Ads(
	ledger advertising.Ledger,
	recorder recording.Recorder,
	rotator rotating.Rotator,
	rates pricing.RateProvider,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/screens/:screen/rotations",
			Method:  http.MethodPost,
			Handler: OpenRotation(rotator),
		},
		{
			Path:    "/v1/rotations/:id",
			Method:  http.MethodGet,
			Handler: GetRotation(rotator),
		},
		{
			Path:    "/v1/rotations/:id",
			Method:  http.MethodDelete,
			Handler: CloseRotation(rotator),
		},
		{
			Path:    "/v1/ads/:id/impressions",
			Method:  http.MethodPost,
			Handler: RecordImpression(recorder),
		},
		{
			Path:    "/v1/ads/:id/clicks",
			Method:  http.MethodPost,
			Handler: ClickAd(recorder),
		},
		{
			Path:    "/v1/ads/:id/price",
			Method:  http.MethodGet,
			Handler: AdPrice(ledger, rates),
		},
		{
			Path:    "/v1/rate",
			Method:  http.MethodGet,
			Handler: GetRate(rates),
		},
	}
}

func Admin(service authenticating.Authenticator, ledger advertising.Ledger, reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/admin/login",
			Method:  http.MethodPost,
			Handler: AdminLogin(service),
		},
		{
			Path:        "/v1/admin/ads",
			Method:      http.MethodGet,
			Handler:     ListAds(ledger),
			Middlewares: adminOnly(),
		},
		{
			Path:        "/v1/admin/ads",
			Method:      http.MethodPost,
			Handler:     CreateAd(ledger),
			Middlewares: adminOnly(),
		},
		{
			Path:        "/v1/admin/ads/:id",
			Method:      http.MethodGet,
			Handler:     GetAd(ledger),
			Middlewares: adminOnly(),
		},
		{
			Path:        "/v1/admin/ads/:id",
			Method:      http.MethodPut,
			Handler:     UpdateAd(ledger),
			Middlewares: adminOnly(),
		},
		{
			Path:        "/v1/admin/ads/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteAd(ledger),
			Middlewares: adminOnly(),
		},
		{
			Path:        "/v1/admin/ads/:id/toggle",
			Method:      http.MethodPost,
			Handler:     ToggleAd(ledger),
			Middlewares: adminOnly(),
		},
		{
			Path:        "/v1/admin/stats",
			Method:      http.MethodGet,
			Handler:     GetStats(reporter),
			Middlewares: adminOnly(),
		},
		{
			Path:        "/v1/admin/ads-stats",
			Method:      http.MethodGet,
			Handler:     GetAdStats(reporter),
			Middlewares: adminOnly(),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: adminOnly(),
		},
		{
			Path:        "/v1/admin/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: adminOnly(),
		},
	}
}
