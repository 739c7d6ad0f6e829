package event

import (
	"fmt"
	"sync"

	"github.com/bethropolis/weave/internal/logger"
)

// Observer receives every event. A returned error is logged and otherwise ignored.
type Observer interface {
	Notify(t Type, fields Fields) error
}

// Handler is a per-type subscriber. Returning true stops delivery to later handlers of that type.
type Handler func(e Event) bool

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t Type, fields Fields) error

func (f ObserverFunc) Notify(t Type, fields Fields) error { return f(t, fields) }

// Manager delivers events synchronously, in registration order.
type Manager struct {
	mu        sync.RWMutex
	observers []Observer
	handlers  map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Attach registers an observer for all event types.
func (m *Manager) Attach(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
	logger.DebugTagf("events", "Event Manager: observer %T attached", o)
}

// Detach removes an observer previously attached.
func (m *Manager) Detach(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.observers {
		if x == o {
			m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
			return
		}
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("events", "Event Manager: Handler subscribed to type %v", eventType)
}

// Dispatch sends an event to every observer and then to the handlers of its type.
// Observer errors and panics are logged and swallowed so they never reach the caller.
func (m *Manager) Dispatch(eventType Type, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if _, ok := fields[KeyFilepath]; !ok {
		fields[KeyFilepath] = ""
	}

	m.mu.RLock()
	observers := append([]Observer(nil), m.observers...)
	handlers := append([]Handler(nil), m.handlers[eventType]...)
	m.mu.RUnlock()

	logger.DebugTagf("events", "Event Manager: Dispatching %v to %d observer(s), %d handler(s)",
		eventType, len(observers), len(handlers))

	for _, o := range observers {
		if err := notify(o, eventType, fields); err != nil {
			logger.Warnf("Event Manager: observer %T failed on %v: %v", o, eventType, err)
		}
	}

	e := Event{Type: eventType, Fields: fields}
	for _, h := range handlers {
		consumed, err := handle(h, e)
		if err != nil {
			logger.Warnf("Event Manager: handler failed on %v: %v", eventType, err)
			continue
		}
		if consumed {
			break
		}
	}
}

func notify(o Observer, t Type, fields Fields) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return o.Notify(t, fields)
}

func handle(h Handler, e Event) (consumed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(e), nil
}
