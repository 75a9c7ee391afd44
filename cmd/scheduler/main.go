package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonenumber_backend/internal/batches"
	"phonenumber_backend/internal/events"
	"phonenumber_backend/internal/scheduler"
	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/db"
	"phonenumber_backend/platform/logger"
	"phonenumber_backend/platform/retry"
	"phonenumber_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env, "queue", cfg.GetAsynqQueueName(), "concurrency", cfg.GetAsynqConcurrency())

	if !cfg.IsBatchEnabled() {
		log.Error("REDIS_URL not configured; nothing to schedule")
		panic("scheduler requires REDIS_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
	defer func() { _ = client.Close() }()

	eventBus := events.NewInMemoryBus(log)
	batches.RegisterHandlers(eventBus, log)

	queue, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = queue.Close() }()

	// Worker-side batch processing (no HTTP handlers required).
	batchesModule := batches.NewModule(client, queue, eventBus, cfg, validator.New(), log)

	indexCleanup := scheduler.NewBatchIndexCleanup(batchesModule.Repository(), log, time.Hour, cfg.GetBatchResultTTL())
	go indexCleanup.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}
	worker.SetBatchProcessor(batchesModule.Service())

	worker.Run(ctx)
	eventBus.Wait()
}
