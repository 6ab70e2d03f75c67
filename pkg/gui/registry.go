package gui

import (
	"fmt"
	"reflect"

	"github.com/zjrosen/loom/internal/log"
	"github.com/zjrosen/loom/pkg/host"
)

// HandlerFunc is a GUI event handler.
type HandlerFunc func(host.Event)

// Wrapper is an optional cross-cutting call convention installed per
// registration batch. When present, dispatch invokes wrapper(ev, fn) instead
// of fn(ev), letting a caller add uniform error containment or logging around
// a whole batch of handlers.
type Wrapper func(ev host.Event, fn HandlerFunc)

type registration struct {
	fn      HandlerFunc
	wrapper Wrapper
}

// Registry is the bidirectional mapping between stable handler names and live
// handler functions. Names are what survive persistence; functions are what
// run. The registry is populated during startup, before any event dispatch,
// and is read-only afterwards, so it carries no locking.
type Registry struct {
	byName map[string]registration
	byFunc map[uintptr]string
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]registration),
		byFunc: make(map[uintptr]string),
	}
}

// funcKey derives an identity key for a handler function. Go function values
// are not comparable, so identity is the code pointer. Distinct top-level
// functions and method values always differ; two closures made from the same
// function literal share a pointer, so register each closure value once and
// reuse it rather than re-creating it.
func funcKey(fn HandlerFunc) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// Register records every (name, function) pair bidirectionally. A name may
// only ever map to one function and a function to one name; violating either
// is a configuration error and fails the whole call. Pairs registered before
// the failing one remain registered.
//
// Function identity is the code pointer, so two closure values created from
// the same function literal count as the same function and the second
// registration fails with ErrDuplicateFunc. Handlers whose behavior varies
// by captured state must come from distinct literals.
func (r *Registry) Register(handlers map[string]HandlerFunc, wrapper Wrapper) error {
	for name, fn := range handlers {
		if fn == nil {
			return fmt.Errorf("register %q: nil handler", name)
		}
		if _, exists := r.byName[name]; exists {
			return fmt.Errorf("register %q: %w", name, ErrDuplicateName)
		}
		key := funcKey(fn)
		if prev, exists := r.byFunc[key]; exists && prev != name {
			return fmt.Errorf("register %q: %w (as %q)", name, ErrDuplicateFunc, prev)
		}
		r.byName[name] = registration{fn: fn, wrapper: wrapper}
		r.byFunc[key] = name
	}
	return nil
}

// NameOf returns the name a function was registered under.
func (r *Registry) NameOf(fn HandlerFunc) (string, bool) {
	if fn == nil {
		return "", false
	}
	name, ok := r.byFunc[funcKey(fn)]
	return name, ok
}

// FuncOf returns the callable registered under name, in wrapped form if a
// wrapper was supplied at registration.
func (r *Registry) FuncOf(name string) (HandlerFunc, bool) {
	reg, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	if reg.wrapper == nil {
		return reg.fn, true
	}
	wrapper, fn := reg.wrapper, reg.fn
	return func(ev host.Event) { wrapper(ev, fn) }, true
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.byName)
}

// Recover is a Wrapper that contains handler panics: the panic is logged and
// the event loop keeps running. Useful as the registration wrapper for
// handler batches that run inside a host's own event loop.
func Recover(ev host.Event, fn HandlerFunc) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatDispatch, "handler panic", "kind", ev.Kind, "panic", r)
		}
	}()
	fn(ev)
}
