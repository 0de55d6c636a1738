package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/internal/api/handler"
	"github.com/vfg2006/captive-portal-api/internal/api/handler/router"
	"github.com/vfg2006/captive-portal-api/internal/config"
	"github.com/vfg2006/captive-portal-api/internal/metrics"
	"github.com/vfg2006/captive-portal-api/internal/scheduler"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
	"github.com/vfg2006/captive-portal-api/internal/usecases/authenticating"
	"github.com/vfg2006/captive-portal-api/internal/usecases/pricing"
	"github.com/vfg2006/captive-portal-api/internal/usecases/recording"
	"github.com/vfg2006/captive-portal-api/internal/usecases/reporting"
	"github.com/vfg2006/captive-portal-api/internal/usecases/rotating"
	"github.com/vfg2006/captive-portal-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services groups everything the routes delegate to.
type Services struct {
	Store                 handler.Pinger
	Authenticator         authenticating.Authenticator
	Ledger                advertising.Ledger
	Recorder              recording.Recorder
	Reporter              reporting.Reporter
	Rotator               rotating.Rotator
	Rates                 pricing.RateProvider
	RateRefreshService    *scheduler.RateRefreshService
	RotationReaperService *scheduler.RotationReaperService
}

func New(config *config.Config, services Services) (*Server, error) {
	cronServices := handler.CronJobServices{}
	if services.RateRefreshService != nil {
		cronServices.RateRefreshService = services.RateRefreshService
	}
	if services.RotationReaperService != nil {
		cronServices.RotationReaperService = services.RotationReaperService
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Store)...),
		router.WithRoutes(handler.Portal(services.Authenticator)...),
		router.WithRoutes(handler.Ads(services.Ledger, services.Recorder, services.Rotator, services.Rates)...),
		router.WithRoutes(handler.Admin(services.Authenticator, services.Ledger, services.Reporter)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		metrics.Instrument(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Interrupt signal received")
	case <-ctx.Done():
		logrus.Info("Application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Error during server shutdown")
		return err
	}

	logrus.Info("Server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("HTTP server shut down")
	return nil
}
