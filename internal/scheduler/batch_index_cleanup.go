package scheduler

import (
	"context"
	"time"

	"phonenumber_backend/platform/logger"
)

const defaultBatchIndexCleanupInterval = time.Hour

// BatchIndexPruner drops index entries older than a cutoff.
type BatchIndexPruner interface {
	PruneIndex(ctx context.Context, cutoff time.Time) (int64, error)
}

// BatchIndexCleanup periodically removes index entries whose batch documents
// have outlived their retention and expired in redis.
type BatchIndexCleanup struct {
	pruner    BatchIndexPruner
	log       *logger.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

func NewBatchIndexCleanup(pruner BatchIndexPruner, log *logger.Logger, interval, retention time.Duration) *BatchIndexCleanup {
	if interval <= 0 {
		interval = defaultBatchIndexCleanupInterval
	}

	return &BatchIndexCleanup{
		pruner:    pruner,
		log:       log,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

func (c *BatchIndexCleanup) Run(ctx context.Context) {
	if c == nil || c.pruner == nil {
		return
	}

	c.cleanup(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *BatchIndexCleanup) cleanup(ctx context.Context) {
	removed, err := c.pruner.PruneIndex(ctx, c.now().Add(-c.retention))
	if err != nil {
		c.log.Warn("batch index cleanup failed", "error", err)
		return
	}

	if removed > 0 {
		c.log.Info("batch index cleanup removed expired entries", "removed", removed)
	}
}
