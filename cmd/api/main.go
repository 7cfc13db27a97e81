package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartcart/internal/auth"
	"smartcart/internal/config"
	"smartcart/internal/db"
	"smartcart/internal/logger"
	"smartcart/internal/maps"
	"smartcart/internal/plan"
	"smartcart/internal/pricing"
	"smartcart/internal/route"
	"smartcart/internal/router"
	"smartcart/internal/storage"
	"smartcart/internal/store"
	"smartcart/internal/trip"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "smartcart:", err)
		os.Exit(1)
	}
}

func run() error {
	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pgDB.Close()

	// ───────────────────────── MAPS ─────────────────────────
	mapsClient := maps.NewClient(cfg.GoogleMapsAPIKey, maps.WithRateLimit(cfg.MapsRPS))

	var tripRouter route.Router = route.NewDirectionsRouter(mapsClient, log)
	if cfg.RedisEnabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, route cache disabled", zap.Error(err))
		} else {
			tripRouter = route.NewCachedRouter(tripRouter, rdb, cfg.RouteCacheTTL, log)
			log.Info("route cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	// ───────────────────────── PRICING ─────────────────────────
	base := pricing.DefaultReference()
	if cfg.ReferencePricesFile != "" {
		base, err = pricing.LoadReferenceFile(cfg.ReferencePricesFile)
		if err != nil {
			return err
		}
		log.Info("reference prices loaded", zap.String("file", cfg.ReferencePricesFile))
	}
	priceService := pricing.NewService(pricing.NewPostgresRepository(pgDB), base, log)

	// ───────────────────────── TRIPS ─────────────────────────
	searcher := plan.NewSearcher(
		plan.NewEvaluator(tripRouter, cfg.Rates, log),
		cfg.RoutingConcurrency,
		log,
	)

	tripOpts := []trip.Option{
		trip.WithGeocoder(trip.MapsGeocoder{Client: mapsClient}),
		trip.WithRadius(cfg.SearchRadiusMiles),
	}
	if cfg.R2Enabled() {
		r2, err := storage.NewR2Client(ctx, storage.R2Config{
			Endpoint:  cfg.R2Endpoint,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
		})
		if err != nil {
			return fmt.Errorf("r2 init failed: %w", err)
		}
		tripOpts = append(tripOpts, trip.WithArchiver(storage.NewTripArchiver(r2)))
	}

	tripService := trip.NewService(
		trip.NewPostgresRepository(pgDB),
		store.NewPlacesLocator(mapsClient, log),
		priceService,
		searcher,
		log,
		tripOpts...,
	)

	// ───────────────────────── HTTP ─────────────────────────
	engine := router.NewRouter(router.Handlers{
		Auth:    auth.NewHandler(auth.NewService(auth.NewPostgresUserRepository(pgDB))),
		Trips:   trip.NewHandler(tripService),
		Pricing: pricing.NewHandler(priceService),
	}, cfg.CORSOrigins, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
