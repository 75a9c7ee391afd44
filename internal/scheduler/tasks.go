package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskNormalizeBatch = "numbers.normalize_batch"

const (
	maxBatchRetries  = 5
	batchTaskTimeout = 5 * time.Minute
)

type NormalizeBatchPayload struct {
	BatchID string `json:"batchId"`
}

func NewNormalizeBatchTask(payload NormalizeBatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNormalizeBatch, data), nil
}

func ParseNormalizeBatchPayload(task *asynq.Task) (NormalizeBatchPayload, error) {
	var payload NormalizeBatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return NormalizeBatchPayload{}, err
	}
	return payload, nil
}
