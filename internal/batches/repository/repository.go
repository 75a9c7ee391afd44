package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"phonenumber_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "batch:"
	indexKey  = "batches:recent"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Result is the outcome for one submitted number.
type Result struct {
	Input        string `json:"input"`
	Valid        bool   `json:"valid"`
	Formatted    string `json:"formatted,omitempty"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Batch is a stored normalization request and, once processed, its results.
type Batch struct {
	ID          uuid.UUID  `json:"id"`
	Status      Status     `json:"status"`
	Region      string     `json:"region,omitempty"`
	Format      string     `json:"format,omitempty"`
	Numbers     []string   `json:"numbers"`
	Results     []Result   `json:"results,omitempty"`
	Valid       int        `json:"valid"`
	Invalid     int        `json:"invalid"`
	Failed      int        `json:"failed"`
	Error       string     `json:"error,omitempty"`
	SubmittedBy *uuid.UUID `json:"submittedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Repository stores batches as JSON documents in redis. Every write refreshes
// the document TTL; a sorted set indexes batch IDs by creation time.
type Repository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func New(client redis.UniversalClient, ttl time.Duration) *Repository {
	return &Repository{client: client, ttl: ttl}
}

func batchKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Create stores a new batch and adds it to the recent index.
func (r *Repository) Create(ctx context.Context, batch Batch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, batchKey(batch.ID), data, r.ttl)
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(batch.CreatedAt.Unix()), Member: batch.ID.String()})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create batch %s: %w", batch.ID, err)
	}
	return nil
}

// Save overwrites an existing batch.
func (r *Repository) Save(ctx context.Context, batch Batch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, batchKey(batch.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save batch %s: %w", batch.ID, err)
	}
	return nil
}

// GetByID loads a batch. Expired or unknown batches are apperr NotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Batch, error) {
	data, err := r.client.Get(ctx, batchKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Batch{}, apperr.NotFound("batch not found").WithCode("batch_not_found")
	}
	if err != nil {
		return Batch{}, fmt.Errorf("get batch %s: %w", id, err)
	}

	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return Batch{}, fmt.Errorf("decode batch %s: %w", id, err)
	}
	return batch, nil
}

// ListRecent returns up to limit batches, newest first. Index entries whose
// documents already expired are skipped and the index is read further until
// limit live batches are found or it runs out.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		return nil, nil
	}

	batches := make([]Batch, 0, limit)
	for offset := int64(0); len(batches) < limit; offset += int64(limit) {
		ids, err := r.client.ZRevRange(ctx, indexKey, offset, offset+int64(limit)-1).Result()
		if err != nil {
			return nil, fmt.Errorf("list batch index: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		keys := make([]string, 0, len(ids))
		for _, id := range ids {
			keys = append(keys, keyPrefix+id)
		}
		values, err := r.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("load batches: %w", err)
		}

		for _, value := range values {
			raw, ok := value.(string)
			if !ok {
				continue
			}
			var batch Batch
			if err := json.Unmarshal([]byte(raw), &batch); err != nil {
				return nil, fmt.Errorf("decode batch: %w", err)
			}
			batches = append(batches, batch)
			if len(batches) == limit {
				break
			}
		}
		if len(ids) < limit {
			break
		}
	}
	return batches, nil
}

// PruneIndex drops index entries created before cutoff whose documents no
// longer exist and reports how many were removed. Entries for batches that
// are still stored stay indexed regardless of age.
func (r *Repository) PruneIndex(ctx context.Context, cutoff time.Time) (int64, error) {
	upper := "(" + strconv.FormatInt(cutoff.Unix(), 10)
	ids, err := r.client.ZRangeByScore(ctx, indexKey, &redis.ZRangeBy{Min: "-inf", Max: upper}).Result()
	if err != nil {
		return 0, fmt.Errorf("scan batch index: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	pipe := r.client.Pipeline()
	exists := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		exists[i] = pipe.Exists(ctx, keyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("check batch documents: %w", err)
	}

	stale := make([]any, 0, len(ids))
	for i, cmd := range exists {
		if cmd.Val() == 0 {
			stale = append(stale, ids[i])
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	return r.client.ZRem(ctx, indexKey, stale...).Result()
}
