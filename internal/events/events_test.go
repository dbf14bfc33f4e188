package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) context.Context {
	t.Helper()
	handlers = make(map[EventType][]Handler)
	eventChan = make(chan Event, EventChannelSize)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

func waitGroup(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Test timed out waiting for event handlers")
	}
}

func TestEventSystem(t *testing.T) {
	t.Run("Subscribe and Publish", func(t *testing.T) {
		ctx := reset(t)

		var wg sync.WaitGroup
		wg.Add(1)
		var received Event
		Subscribe(EventCreated, func(_ context.Context, e Event) error {
			received = e
			wg.Done()
			return nil
		})
		Start(ctx)

		sent := Event{Type: EventCreated, Entity: "client", ID: "c1", Actor: "ann"}
		Publish(sent)

		waitGroup(t, &wg)
		assert.Equal(t, sent, received)
	})

	t.Run("SubscribeAll receives every type", func(t *testing.T) {
		ctx := reset(t)

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = map[EventType]bool{}
		)
		wg.Add(4)
		SubscribeAll(func(_ context.Context, e Event) error {
			mu.Lock()
			seen[e.Type] = true
			mu.Unlock()
			wg.Done()
			return nil
		})
		Start(ctx)

		for _, typ := range []EventType{EventCreated, EventUpdated, EventDeleted, EventRestored} {
			Publish(Event{Type: typ, Entity: "project", ID: "p1"})
		}

		waitGroup(t, &wg)
		mu.Lock()
		defer mu.Unlock()
		assert.Len(t, seen, 4)
	})

	t.Run("Publish does not block when the queue is full", func(t *testing.T) {
		reset(t)
		eventChan = make(chan Event, 1)

		done := make(chan struct{})
		go func() {
			Publish(Event{Type: EventDeleted, Entity: "user", ID: "u1"})
			Publish(Event{Type: EventDeleted, Entity: "user", ID: "u2"})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Publish blocked on a full queue")
		}
		require.Len(t, eventChan, 1)
	})

	t.Run("Context Cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(reset(t))
		Subscribe(EventCreated, func(context.Context, Event) error {
			t.Error("Handler should not be called after context cancellation")
			return nil
		})
		Start(ctx)
		cancel()

		time.Sleep(100 * time.Millisecond)
		Publish(Event{Type: EventCreated, Entity: "client", ID: "c9"})
		time.Sleep(100 * time.Millisecond)
	})
}
