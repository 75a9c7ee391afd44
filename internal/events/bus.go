// Package events re-exports the platform event bus and defines the events
// exchanged between the numbers, batches and scheduler modules.
package events

import (
	platformevents "phonenumber_backend/platform/events"
	"phonenumber_backend/platform/logger"
)

// Bus is the platform event bus interface.
type Bus = platformevents.Bus

// Event is the platform event interface.
type Event = platformevents.Event

// InMemoryBus is a type alias to the platform InMemoryBus
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// NewBaseEvent stamps an event with the current time.
func NewBaseEvent() platformevents.BaseEvent {
	return platformevents.NewBaseEvent()
}

// Handler is the platform event handler interface.
type Handler = platformevents.Handler

// HandlerFunc adapts a function to Handler.
type HandlerFunc = platformevents.HandlerFunc
