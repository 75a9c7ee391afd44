package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonenumber_backend/internal/batches"
	"phonenumber_backend/internal/events"
	apphttp "phonenumber_backend/internal/http"
	"phonenumber_backend/internal/http/router"
	"phonenumber_backend/internal/numbers"
	"phonenumber_backend/internal/scheduler"
	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/db"
	"phonenumber_backend/platform/logger"
	"phonenumber_backend/platform/retry"
	"phonenumber_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "defaultRegion", cfg.DefaultRegion)

	if !cfg.IsAuthEnabled() {
		log.Warn("JWT_ACCESS_SECRET not configured; batch routes are public")
	}
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	numbersModule := numbers.NewModule(cfg, val, log)
	batchesModule, healthChecks, cleanup := initBatches(ctx, cfg, eventBus, val, log)
	defer cleanup()

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			numbersModule,
			batchesModule,
		},
		HealthChecks: healthChecks,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initBatches wires the redis-backed batches module. Without REDIS_URL the
// routes stay mounted and answer 503.
func initBatches(ctx context.Context, cfg *config.Config, bus *events.InMemoryBus, val *validator.Validator, log *logger.Logger) (*batches.Module, map[string]apphttp.HealthCheck, func()) {
	if !cfg.IsBatchEnabled() {
		log.Warn("REDIS_URL not configured; batch normalization disabled")
		return batches.NewDisabledModule(val), nil, func() {}
	}

	var client *redis.Client
	if err := retry.Do(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		c, err := db.NewRedis(ctx, cfg)
		if err != nil {
			return err
		}
		client = c
		return nil
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")

	queue, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}

	batches.RegisterHandlers(bus, log)

	checks := map[string]apphttp.HealthCheck{"redis": db.Healthcheck(client)}
	return batches.NewModule(client, queue, bus, cfg, val, log), checks, func() {
		_ = queue.Close()
		_ = client.Close()
	}
}
