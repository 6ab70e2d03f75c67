package gui

import (
	"fmt"

	"github.com/zjrosen/loom/internal/log"
	"github.com/zjrosen/loom/pkg/host"
)

// Dispatcher is the single event-dispatch entry point. One dispatcher is
// subscribed to the host for every external GUI event kind; it routes each
// event to the handler named in the source element's persisted tags.
type Dispatcher struct {
	reg      *Registry
	attached bool
}

// NewDispatcher creates a dispatcher resolving handler names through reg.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{reg: reg}
}

// Attach subscribes Dispatch to every external GUI event kind on h. Calling
// Attach more than once on the same dispatcher is a no-op, so a collaborator
// that wires the dispatcher from several places cannot double-subscribe it.
// Internal bookkeeping event kinds are never subscribed.
func (d *Dispatcher) Attach(h host.Host) {
	if d.attached {
		return
	}
	d.attached = true
	for _, kind := range host.Kinds() {
		h.Subscribe(kind, func(ev host.Event) { d.Dispatch(ev) })
	}
}

// Dispatch routes one event to the handler bound on its source element,
// returning whether the event was handled.
//
// Every miss is a silent false, never an error: a persisted element may name
// a handler from a module version that no longer registers it, and dispatch
// runs inside the host's event loop where one stale binding must not abort
// unrelated event processing.
func (d *Dispatcher) Dispatch(ev host.Event) bool {
	if ev.Kind.Internal() || ev.Element == nil {
		return false
	}

	raw, ok := ev.Element.Tags()[ReservedTagKey]
	if !ok {
		return false
	}

	name, ok := bindingName(raw, ev.Kind)
	if !ok {
		return false
	}

	fn, ok := d.reg.FuncOf(name)
	if !ok {
		// Persisted binding outlived its registration.
		log.Debug(log.CatDispatch, "unresolved handler", "name", name, "kind", ev.Kind)
		return false
	}

	fn(ev)
	return true
}

// bindingName extracts the handler name for kind from the reserved tag value:
// a plain string binds every kind, a kind→name map binds per kind. The map
// shows up as map[string]string when freshly built and as map[string]any
// after a persistence round trip.
func bindingName(raw any, kind host.EventKind) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case map[string]string:
		name, ok := v[string(kind)]
		return name, ok
	case map[string]any:
		name, ok := v[string(kind)].(string)
		return name, ok
	default:
		// A binding that is neither form means the tag was edited or
		// corrupted outside the builder.
		log.Warn(log.CatDispatch, "malformed handler binding", "kind", kind, "type", fmt.Sprintf("%T", raw))
		return "", false
	}
}
