// Package events provides entity change notifications
package events

import (
	"context"
	"sync"

	"github.com/hasnain-nisan/admindash/internal/logger"
)

// EventType represents the kind of change made to an entity
type EventType string

const (
	// EventCreated is emitted when an entity is created
	EventCreated EventType = "created"
	// EventUpdated is emitted when an entity is updated
	EventUpdated EventType = "updated"
	// EventDeleted is emitted when an entity is soft-deleted
	EventDeleted EventType = "deleted"
	// EventRestored is emitted when a soft-deleted entity is restored
	EventRestored EventType = "restored"
	// EventChannelSize is the buffer size for the event channel
	EventChannelSize = 100
)

// Event describes a change to one entity
type Event struct {
	Type   EventType // The type of change
	Entity string    // The entity kind, e.g. "client"
	ID     string    // The entity ID
	Actor  string    // Subject of the token that made the change, if any
}

// Handler is a function that handles an event
type Handler func(context.Context, Event) error

var (
	// handlers is a map of event types to their handlers
	handlers = make(map[EventType][]Handler)
	// handlersMu is a mutex for the handlers map
	handlersMu sync.RWMutex
	// eventChan is a channel for events
	eventChan = make(chan Event, EventChannelSize)
)

// Subscribe registers a handler for a specific event type
func Subscribe(eventType EventType, handler Handler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers[eventType] = append(handlers[eventType], handler)
	logger.Debugf("Registered handler for event type: %s", eventType)
}

// SubscribeAll registers a handler for every event type
func SubscribeAll(handler Handler) {
	for _, t := range []EventType{EventCreated, EventUpdated, EventDeleted, EventRestored} {
		Subscribe(t, handler)
	}
}

// Publish queues an event for processing. It never blocks: when the queue is
// full the event is dropped and a warning is logged.
func Publish(event Event) {
	select {
	case eventChan <- event:
		logger.Debugf("Published event: %s %s %s", event.Entity, event.Type, event.ID)
	default:
		logger.Warnf("Event queue full, dropping %s %s %s", event.Entity, event.Type, event.ID)
	}
}

// Start starts the event processing loop
func Start(ctx context.Context) {
	go processEvents(ctx, eventChan)
	logger.Info("Started event processing loop")
}

// processEvents handles events in the background
func processEvents(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping event processing loop")
			return
		case event := <-events:
			handlersMu.RLock()
			eventHandlers := handlers[event.Type]
			handlersMu.RUnlock()

			for _, handler := range eventHandlers {
				go func(h Handler, e Event) {
					if err := h(ctx, e); err != nil {
						logger.Errorf("Failed to handle %s %s event: %v", e.Entity, e.Type, err)
					}
				}(handler, event)
			}
		}
	}
}
