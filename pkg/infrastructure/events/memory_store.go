package events

import (
	"sync"
	"time"
)

// InMemoryStore is the default Store. Safe for concurrent use.
type InMemoryStore struct {
	mu          sync.RWMutex
	streams     map[string][]Event
	allEvents   []Event
	subscribers []subscription
}

type subscription struct {
	types   map[string]bool // nil means all types
	handler Handler
}

// NewInMemoryStore creates an empty in-memory event store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		streams: make(map[string][]Event),
	}
}

var _ Store = (*InMemoryStore)(nil)

// Append records an event on a stream and notifies subscribers.
func (s *InMemoryStore) Append(streamID, eventType string, data interface{}) error {
	s.mu.Lock()
	event := Event{
		Type:     eventType,
		StreamID: streamID,
		Data:     data,
		Time:     time.Now(),
		Version:  len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], event)
	s.allEvents = append(s.allEvents, event)
	subs := make([]subscription, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		if sub.types == nil || sub.types[eventType] {
			sub.handler(event)
		}
	}
	return nil
}

// Stream returns a stream's events with version >= fromVersion.
func (s *InMemoryStore) Stream(streamID string, fromVersion int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return []Event{}, nil
	}

	out := make([]Event, len(stream[fromVersion-1:]))
	copy(out, stream[fromVersion-1:])
	return out, nil
}

// All returns every recorded event from a global position onward.
func (s *InMemoryStore) All(fromPosition int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}

	out := make([]Event, len(s.allEvents[fromPosition:]))
	copy(out, s.allEvents[fromPosition:])
	return out, nil
}

// Subscribe registers a handler for the given event types.
func (s *InMemoryStore) Subscribe(eventTypes []string, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := subscription{handler: handler}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = true
		}
	}
	s.subscribers = append(s.subscribers, sub)
}
