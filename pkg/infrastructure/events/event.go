// Package events records the audit trail of planning activity. Every run
// appends to a stream named after its run ID, so the full history of a
// simulation can be replayed or inspected after the fact.
package events

import "time"

// Event is one recorded occurrence in a stream. Version numbers are
// assigned by the store and are contiguous within a stream.
type Event struct {
	Type     string
	StreamID string
	Data     interface{}
	Time     time.Time
	Version  int
}

// Handler receives events after they are appended. Handlers run
// synchronously on the appending goroutine and must not block.
type Handler func(Event)

// Store is an append-only event log with per-stream versioning.
type Store interface {
	// Append records an event on a stream and notifies subscribers.
	Append(streamID, eventType string, data interface{}) error

	// Stream returns a stream's events with version >= fromVersion.
	Stream(streamID string, fromVersion int) ([]Event, error)

	// All returns every recorded event from a global position onward.
	All(fromPosition int) ([]Event, error)

	// Subscribe registers a handler for the given event types. An empty
	// type list subscribes to everything.
	Subscribe(eventTypes []string, handler Handler)
}
