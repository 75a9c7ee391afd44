package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"phonenumber_backend/platform/apperr"
	"phonenumber_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeProcessor struct {
	got []uuid.UUID
	err error
}

func (p *fakeProcessor) Process(_ context.Context, id uuid.UUID) error {
	p.got = append(p.got, id)
	return p.err
}

func newTestWorker(processor BatchProcessor) *Worker {
	w := &Worker{log: logger.Nop()}
	if processor != nil {
		w.SetBatchProcessor(processor)
	}
	return w
}

func TestHandleNormalizeBatch(t *testing.T) {
	processor := &fakeProcessor{}
	w := newTestWorker(processor)
	id := uuid.New()

	task, err := NewNormalizeBatchTask(NormalizeBatchPayload{BatchID: id.String()})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TaskNormalizeBatch {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	if err := w.handleNormalizeBatch(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(processor.got) != 1 || processor.got[0] != id {
		t.Fatalf("expected batch %s to be processed, got %v", id, processor.got)
	}
}

func TestHandleNormalizeBatch_MalformedPayloadSkipsRetry(t *testing.T) {
	w := newTestWorker(&fakeProcessor{})

	for _, payload := range [][]byte{[]byte("{"), []byte(`{"batchId":"nope"}`)} {
		err := w.handleNormalizeBatch(context.Background(), asynq.NewTask(TaskNormalizeBatch, payload))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Fatalf("payload %s: expected SkipRetry, got %v", payload, err)
		}
	}
}

func TestHandleNormalizeBatch_ExpiredBatchIsDropped(t *testing.T) {
	w := newTestWorker(&fakeProcessor{err: apperr.NotFound("batch not found")})
	task, _ := NewNormalizeBatchTask(NormalizeBatchPayload{BatchID: uuid.NewString()})

	if err := w.handleNormalizeBatch(context.Background(), task); err != nil {
		t.Fatalf("expected nil for a vanished batch, got %v", err)
	}
}

func TestHandleNormalizeBatch_ProcessorErrorIsRetried(t *testing.T) {
	boom := errors.New("redis down")
	w := newTestWorker(&fakeProcessor{err: boom})
	task, _ := NewNormalizeBatchTask(NormalizeBatchPayload{BatchID: uuid.NewString()})

	if err := w.handleNormalizeBatch(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("expected processor error, got %v", err)
	}

	if err := newTestWorker(nil).handleNormalizeBatch(context.Background(), task); err == nil {
		t.Fatal("expected an error without a processor")
	}
}

func TestRedisClientOpt(t *testing.T) {
	opt, err := redisClientOpt("rediss://user:pw@cache.internal:6380/3", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Addr != "cache.internal:6380" || opt.Username != "user" || opt.Password != "pw" || opt.DB != 3 {
		t.Fatalf("unexpected options: %+v", opt)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS")
	}

	if _, err := redisClientOpt("", false); err == nil {
		t.Fatal("expected an error for an empty url")
	}
}

func TestEnqueueBatch_UnconfiguredClient(t *testing.T) {
	var c *Client
	if err := c.EnqueueBatch(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected an error from a nil client")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close on nil client: %v", err)
	}
}

type fakePruner struct {
	cutoffs []time.Time
	removed int64
	err     error
}

func (p *fakePruner) PruneIndex(_ context.Context, cutoff time.Time) (int64, error) {
	p.cutoffs = append(p.cutoffs, cutoff)
	return p.removed, p.err
}

func TestBatchIndexCleanup(t *testing.T) {
	pruner := &fakePruner{removed: 3}
	cleanup := NewBatchIndexCleanup(pruner, logger.Nop(), 0, 24*time.Hour)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cleanup.now = func() time.Time { return fixed }

	if cleanup.interval != defaultBatchIndexCleanupInterval {
		t.Fatalf("expected default interval, got %s", cleanup.interval)
	}

	cleanup.cleanup(context.Background())
	pruner.err = errors.New("boom")
	cleanup.cleanup(context.Background())

	if len(pruner.cutoffs) != 2 {
		t.Fatalf("expected 2 prune calls, got %d", len(pruner.cutoffs))
	}
	if want := fixed.Add(-24 * time.Hour); !pruner.cutoffs[0].Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, pruner.cutoffs[0])
	}
}

func TestBatchIndexCleanup_RunStopsWithContext(t *testing.T) {
	pruner := &fakePruner{}
	cleanup := NewBatchIndexCleanup(pruner, logger.Nop(), time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		cleanup.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if len(pruner.cutoffs) != 1 {
		t.Fatalf("expected the initial cleanup to run once, got %d", len(pruner.cutoffs))
	}
}
