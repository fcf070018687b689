package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"hailsim/internal/app"
	"hailsim/internal/clock"
	"hailsim/internal/config"
	"hailsim/internal/dispatch"
	"hailsim/internal/domain"
	"hailsim/internal/geocode"
	"hailsim/internal/handler"
	"hailsim/internal/identity"
	"hailsim/internal/lifecycle"
	"hailsim/internal/location"
	"hailsim/internal/logging"
	"hailsim/internal/session"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the stores can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Error("failed to initialize New Relic", "error", err)
			nrApp = nil
		} else {
			logger.Info("New Relic enabled", "app", cfg.NewRelic.AppName)
		}
	}

	// Redis backs the identity store and the idempotency cache.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	logger.Info("connected to Redis", "addr", cfg.Redis.Addr)

	// The identity store lives in Redis by default; DB_ENABLED switches it
	// to Postgres.
	var store identity.Store = identity.NewRedisStore(redisClient)
	if cfg.Database.Enabled {
		db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		pg := identity.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to prepare database schema: %v", err)
		}
		store = pg
		logger.Info("connected to PostgreSQL", "host", cfg.Database.Host)
	}

	// Session gate plus the demo driver accounts.
	gate := session.NewGate(store, logger)
	if err := gate.EnsureSeedDriverAccounts(ctx); err != nil {
		log.Fatalf("failed to seed driver accounts: %v", err)
	}

	// Geocoding: landmark table first, Google behind it when a key is set.
	providers := []geocode.Geocoder{geocode.NewStatic()}
	if cfg.Maps.APIKey != "" {
		google, err := geocode.NewGoogle(cfg.Maps.APIKey, logger)
		if err != nil {
			logger.Error("failed to initialize Google geocoder", "error", err)
		} else {
			providers = append(providers, google)
		}
	}
	geocoder := geocode.NewChain(providers...)

	// Simulation engines on the wall clock.
	clk := clock.NewReal()
	machine := lifecycle.NewMachine(clk, cfg.Sim, &lifecycle.LogSink{Logger: logger}, logger)
	simulator := dispatch.NewSimulator(clk, cfg.Sim, logger)

	fallback := domain.Region{
		Center: domain.Coordinates{
			Latitude:  cfg.Sim.DefaultRegionLat,
			Longitude: cfg.Sim.DefaultRegionLng,
		},
		LatitudeDelta:  0.0922,
		LongitudeDelta: 0.0421,
	}
	locator := location.NewStatic(fallback.Center)

	// Handlers and router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    handler.NewAuthHandler(gate),
		RideHandler:    handler.NewRideHandler(machine, geocoder),
		DriverHandler:  handler.NewDriverHandler(simulator, locator, fallback, logger),
		MapViewHandler: handler.NewMapViewHandler(machine, simulator, fallback, cfg.Maps.APIKey),
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}
