package scheduler

import (
	"context"
	"fmt"

	"phonenumber_backend/platform/apperr"
	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// BatchProcessor normalizes a stored batch.
type BatchProcessor interface {
	Process(ctx context.Context, batchID uuid.UUID) error
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor BatchProcessor
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		log:    log,
	}

	mux.HandleFunc(TaskNormalizeBatch, w.handleNormalizeBatch)

	return w, nil
}

func (w *Worker) SetBatchProcessor(processor BatchProcessor) {
	w.processor = processor
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleNormalizeBatch(ctx context.Context, task *asynq.Task) error {
	if w.processor == nil {
		return fmt.Errorf("batch processor not configured")
	}

	payload, err := ParseNormalizeBatchPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	batchID, err := uuid.Parse(payload.BatchID)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if err := w.processor.Process(ctx, batchID); err != nil {
		// The batch expired before the worker got to it.
		if apperr.Is(err, apperr.KindNotFound) {
			w.log.Warn("batch vanished before processing", "batchId", batchID)
			return nil
		}
		return err
	}
	return nil
}
