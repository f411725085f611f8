package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/traveltrack/traveltrack/internal/auth"
	"github.com/traveltrack/traveltrack/internal/cache"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/db"
	httpx "github.com/traveltrack/traveltrack/internal/http"
	"github.com/traveltrack/traveltrack/internal/images"
	"github.com/traveltrack/traveltrack/internal/observability"
	"github.com/traveltrack/traveltrack/internal/queue"
	"github.com/traveltrack/traveltrack/internal/queue/redisclient"
	"github.com/traveltrack/traveltrack/internal/repo/postgres"
	"github.com/traveltrack/traveltrack/internal/weather"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, "traveltrack-api", cfg.OtelEndpoint)

	if err != nil {
		log.Warn("tracing disabled", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.EnsureAdminUser(ctx, pool, cfg); err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	redis := redisclient.New(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redis.Close()

	jobQueue := queue.New(redis, queue.DefaultKey)

	var imageStore images.Store = images.NewLogStore()
	if cfg.ImageStoreURL != "" {
		imageStore = images.NewHTTPStore(cfg.ImageStoreURL)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(registry)

	router := httpx.NewRouter(httpx.Deps{
		Cfg:          cfg,
		JWT:          auth.NewManager(cfg.JWTSecret, cfg.AccessTTL),
		Users:        postgres.NewUsersRepo(pool),
		Trips:        postgres.NewTripsRepo(pool),
		Budgets:      postgres.NewBudgetsRepo(pool),
		Itineraries:  postgres.NewItinerariesRepo(pool),
		PackingLists: postgres.NewPackingListsRepo(pool),
		Destinations: postgres.NewDestinationsRepo(pool),
		Images:       imageStore,
		Queue:        jobQueue,
		Weather:      weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey),
		WeatherCache: cache.New(cfg.WeatherCacheTTL),
		Prom:         prom,
		PromRegistry: registry,
		PingDB: func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()
			return prom.ObserveDB("ping", func() error {
				return pool.Ping(ctx)
			})
		},
		PingRedis: func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()
			return jobQueue.Ping(ctx)
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", "err", err)
	}

	log.Info("shutdown complete")
}
