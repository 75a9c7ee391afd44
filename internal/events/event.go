package events

import (
	platformevents "phonenumber_backend/platform/events"
)

const (
	BatchSubmittedEvent = "batch.submitted"
	BatchCompletedEvent = "batch.completed"
)

// BatchSubmitted is published once a batch has been stored and enqueued.
type BatchSubmitted struct {
	platformevents.BaseEvent
	BatchID string `json:"batchId"`
	Count   int    `json:"count"`
}

func (BatchSubmitted) EventName() string { return BatchSubmittedEvent }

// BatchCompleted is published by the worker after every entry was processed.
type BatchCompleted struct {
	platformevents.BaseEvent
	BatchID string `json:"batchId"`
	Valid   int    `json:"valid"`
	Invalid int    `json:"invalid"`
	Failed  int    `json:"failed"`
}

func (BatchCompleted) EventName() string { return BatchCompletedEvent }
