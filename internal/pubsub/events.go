// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// LogLineEvent carries one formatted log entry.
	LogLineEvent EventType = "log-line"
	// TagsSavedEvent fires after a host persists element tags to a store.
	TagsSavedEvent EventType = "tags-saved"
	// TagsRestoredEvent fires after a host re-applies persisted tags.
	TagsRestoredEvent EventType = "tags-restored"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
