package builder

import (
	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/metadata"
)

// Event identifies a point in the build lifecycle.
type Event string

const (
	// EventBuildStart fires once per build, before any class is visited.
	EventBuildStart Event = "build.start"
	// EventClassVisited fires for every class as its fieldset is opened.
	EventClassVisited Event = "build.class"
	// EventMemberVisited fires after a member's node is attached to its
	// parent fieldset.
	EventMemberVisited Event = "build.member"
	// EventBuildComplete fires once per build with the finished root.
	EventBuildComplete Event = "build.complete"
)

// EventContext carries the build state handlers observe. Fields not
// meaningful for an event are left nil.
type EventContext struct {
	Event    Event
	Class    *metadata.Class
	Member   *metadata.Member
	Fieldset *forms.Fieldset
	Node     forms.Node
}

// Handler observes a single build event.
type Handler func(EventContext)

// EventManager dispatches build events to handlers in attachment order.
type EventManager struct {
	handlers map[Event][]Handler
}

// NewEventManager constructs an empty event manager.
func NewEventManager() *EventManager {
	return &EventManager{handlers: make(map[Event][]Handler)}
}

// On attaches a handler for the given event.
func (m *EventManager) On(event Event, handler Handler) {
	if handler == nil {
		return
	}
	m.handlers[event] = append(m.handlers[event], handler)
}

// Trigger invokes every handler attached for the context's event.
func (m *EventManager) Trigger(ctx EventContext) {
	for _, handler := range m.handlers[ctx.Event] {
		handler(ctx)
	}
}

// ListenerAggregate attaches a related set of handlers to an event manager.
// Aggregates are attached before any class is processed, so they observe
// every build performed by the builder.
type ListenerAggregate interface {
	Attach(*EventManager)
}
