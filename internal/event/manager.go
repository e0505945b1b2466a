package event

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type listener struct {
	id        int
	eventType EventType
	channel   chan Event
}

// EventManager fans published events out to registered listeners.
// Delivery is synchronous so listeners should use buffered channels or
// drain promptly.
type EventManager struct {
	mux       sync.Mutex
	listeners []*listener
	nextID    int
}

// NewEventManager returns a new EventManager
func NewEventManager() *EventManager {
	return &EventManager{
		listeners: []*listener{},
		nextID:    1,
	}
}

// RegisterListener subscribes a channel to events of the given type,
// AnyEventType subscribes to everything; returns the listener id
func (m *EventManager) RegisterListener(
	eventType EventType,
	channel chan Event,
) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	l := &listener{
		id:        m.nextID,
		eventType: eventType,
		channel:   channel,
	}

	m.listeners = append(m.listeners, l)
	m.nextID++

	return l.id
}

// RemoveListener unsubscribes a previously registered listener
func (m *EventManager) RemoveListener(id int) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	listeners := []*listener{}

	for _, l := range m.listeners {
		if l.id != id {
			listeners = append(listeners, l)
		}
	}

	m.listeners = listeners

	return id
}

// Publish stamps a payload with id and timestamp and delivers it to all
// matching listeners
func (m *EventManager) Publish(eventType EventType, payload any) {
	m.Send(Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

// Send delivers an already stamped event to all matching listeners
func (m *EventManager) Send(evt Event) {
	m.mux.Lock()
	listeners := make([]*listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mux.Unlock()

	for _, l := range listeners {
		if l.eventType == AnyEventType || l.eventType == evt.Type {
			l.channel <- evt
		}
	}
}
