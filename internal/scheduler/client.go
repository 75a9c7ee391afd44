package scheduler

import (
	"context"
	"fmt"

	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/db"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const defaultQueue = "default"

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueBatch schedules a batch for immediate normalization. The batch ID
// doubles as the task ID, so a batch is never queued twice.
func (c *Client) EnqueueBatch(ctx context.Context, batchID uuid.UUID) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("scheduler client not configured")
	}

	task, err := NewNormalizeBatchTask(NormalizeBatchPayload{BatchID: batchID.String()})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, batchTaskOptions(c.queue, batchID)...)
	return err
}

func batchTaskOptions(queue string, batchID uuid.UUID) []asynq.Option {
	return []asynq.Option{
		asynq.Queue(queue),
		asynq.TaskID(batchID.String()),
		asynq.MaxRetry(maxBatchRetries),
		asynq.Timeout(batchTaskTimeout),
	}
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return defaultQueue
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := db.ParseOptions(redisURL, tlsInsecure)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
