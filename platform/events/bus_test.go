package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"phonenumber_backend/platform/logger"
)

type pingEvent struct {
	BaseEvent
}

func (pingEvent) EventName() string { return "test.ping" }

func TestInMemoryBus_PublishSync(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())
	var calls int32
	boom := errors.New("boom")

	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return boom
	}))
	bus.Subscribe("test.other", HandlerFunc(func(context.Context, Event) error {
		t.Fatal("handler for another event must not run")
		return nil
	}))

	err := bus.PublishSync(context.Background(), pingEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined handler error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestInMemoryBus_PublishRecoversPanics(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())
	var calls int32

	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		panic("handler exploded")
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pingEvent{BaseEvent: NewBaseEvent()})
	bus.Wait()

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected surviving handler to run once, got %d", calls)
	}
}
