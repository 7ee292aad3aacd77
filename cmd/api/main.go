package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-core/api/controllers"
	"github.com/angelmondragon/storefront-core/api/routes"
	"github.com/angelmondragon/storefront-core/internal/cart"
	"github.com/angelmondragon/storefront-core/internal/notifications"
	"github.com/angelmondragon/storefront-core/pkg/config"
	"github.com/angelmondragon/storefront-core/pkg/db"
	"github.com/angelmondragon/storefront-core/pkg/logger"
	"github.com/angelmondragon/storefront-core/pkg/metrics"
	"github.com/angelmondragon/storefront-core/pkg/migrate"
	"github.com/angelmondragon/storefront-core/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	var dbPinger, redisPinger controllers.Pinger
	var promoSource cart.PromoSource

	if cfg.DB.Enabled() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)
		dbPinger = dbClient

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}
		promoSource = cart.NewPromoRepository(dbClient.DB())
	} else {
		logg.Warn(ctx, "database not configured, using built-in promo codes")
	}

	var store cart.SessionStore
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		redisPinger = redisClient

		store, err = cart.NewRedisSessionStore(redisClient, cfg.Cart.SessionTTL)
		if err != nil {
			logg.Error(ctx, "failed to create cart session store", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "redis not configured, cart sessions are kept in memory")
		store = cart.NewMemorySessionStore()
	}

	flat, threshold, err := cfg.Cart.Shipping()
	if err != nil {
		logg.Error(ctx, "invalid cart shipping config", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cartService, err := cart.NewService(ctx, cart.ServiceParams{
		Store:   store,
		Promos:  promoSource,
		Rules:   cart.PricingRules{FlatShipping: flat, FreeShippingThreshold: threshold},
		Logger:  logg,
		Metrics: metrics.NewCartMetrics(registry),
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	hub := notifications.NewHub(notifications.HubParams{
		Options: notifications.Options{DismissAfter: cfg.Notifications.DismissAfter},
		Logger:  logg,
		Metrics: metrics.NewNotificationMetrics(registry),
	})
	closers = append(closers, func() error {
		hub.Close()
		return nil
	})

	addr := ":" + cfg.App.Port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(serverCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbPinger, redisPinger, registry, cartService, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logg.Info(serverCtx, "shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	closeErr := server.Shutdown(shutdownCtx)
	for i := len(closers) - 1; i >= 0; i-- {
		closeErr = multierr.Append(closeErr, closers[i]())
	}
	if closeErr != nil {
		logg.Error(serverCtx, "error during shutdown", closeErr)
		exitCode = 1
	}

	logg.Info(serverCtx, "api server stopped")
	stop()
	os.Exit(exitCode)
}
