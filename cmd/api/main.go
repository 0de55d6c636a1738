package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/infrastructure/database/postgres"
	"github.com/vfg2006/captive-portal-api/infrastructure/integrator/dolarapi"
	"github.com/vfg2006/captive-portal-api/infrastructure/migration"
	"github.com/vfg2006/captive-portal-api/infrastructure/repository"
	"github.com/vfg2006/captive-portal-api/internal/api"
	"github.com/vfg2006/captive-portal-api/internal/config"
	"github.com/vfg2006/captive-portal-api/internal/scheduler"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
	"github.com/vfg2006/captive-portal-api/internal/usecases/authenticating"
	"github.com/vfg2006/captive-portal-api/internal/usecases/pricing"
	"github.com/vfg2006/captive-portal-api/internal/usecases/recording"
	"github.com/vfg2006/captive-portal-api/internal/usecases/reporting"
	"github.com/vfg2006/captive-portal-api/internal/usecases/rotating"
	"github.com/vfg2006/captive-portal-api/pkg/log"
)

func main() {
	log.Setup("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Setup(cfg.App.LogLevel)
	logrus.Infof("Log level set to %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := documentStore(ctx, cfg)
	defer closeStore()

	userRepo := repository.NewUserRepository(store)
	adRepo := repository.NewAdRepository(store)
	adClickRepo := repository.NewAdClickRepository(store)
	rateRepo := repository.NewRateRepository(store)

	ledger := advertising.NewService(adRepo)
	authenticator := authenticating.NewService(userRepo, cfg)
	recorder := recording.NewService(ledger, adClickRepo, userRepo, cfg)
	reporter := reporting.NewService(userRepo, adClickRepo, ledger)
	rates := pricing.NewService(dolarapi.NewClient(cfg), rateRepo, cfg)

	rotator := rotating.NewManager(ledger, cfg)
	rotator.Start(ctx)

	rateRefreshService := scheduler.NewRateRefreshService(rates, cfg)
	if err := rateRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Could not start the exchange rate refresh scheduler")
	}

	rotationReaperService := scheduler.NewRotationReaperService(rotator, cfg)
	if err := rotationReaperService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Could not start the rotation reaper")
	}

	server, err := api.New(cfg, api.Services{
		Store:                 store,
		Authenticator:         authenticator,
		Ledger:                ledger,
		Recorder:              recorder,
		Reporter:              reporter,
		Rotator:               rotator,
		Rates:                 rates,
		RateRefreshService:    rateRefreshService,
		RotationReaperService: rotationReaperService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// documentStore opens the configured backing store.
func documentStore(ctx context.Context, cfg *config.Config) (repository.DocumentStore, func()) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logrus.Warn("Using the in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), func() {}
	}

	if cfg.Database.RunMigrations {
		if err := migration.Up(cfg.Database.DSN); err != nil {
			logrus.WithError(err).Fatal("Could not migrate the database")
		}
	}

	conn := pgconn(ctx, cfg.Database)
	return repository.NewPostgresStore(conn), func() {
		_ = conn.Close()
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Could not connect to PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
