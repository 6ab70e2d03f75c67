// Package memhost is the reference implementation of the pkg/host boundary:
// an in-memory retained-mode element tree with synchronous event delivery and
// bolt-backed tag persistence. The loom test suite and the demo front end
// both run against it.
package memhost

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zjrosen/loom/internal/log"
	"github.com/zjrosen/loom/internal/pubsub"
	"github.com/zjrosen/loom/pkg/host"
)

// elementKinds is the widget set this host knows how to create.
var elementKinds = map[string]bool{
	"flow":        true,
	"frame":       true,
	"label":       true,
	"button":      true,
	"checkbox":    true,
	"textfield":   true,
	"tabbed-pane": true,
	"tab":         true,
}

// Host is an in-memory GUI environment. All methods are single-threaded:
// events fire synchronously, one at a time, on the caller's goroutine.
type Host struct {
	subs   map[host.EventKind][]func(host.Event)
	roots  []*Elem
	events *pubsub.Broker[StoreEvent]
}

// New creates an empty host.
func New() *Host {
	return &Host{
		subs:   make(map[host.EventKind][]func(host.Event)),
		events: pubsub.NewBroker[StoreEvent](),
	}
}

// Events is the broker carrying tag persistence events (TagsSavedEvent,
// TagsRestoredEvent). Front ends subscribe to surface persistence activity.
func (h *Host) Events() *pubsub.Broker[StoreEvent] {
	return h.events
}

// Create makes a new element under parent (nil for a top-level element). The
// property bag's tags are captured by value: later mutation of the caller's
// map is not observed by the element.
func (h *Host) Create(parent host.Element, args host.Args) (host.Element, error) {
	if !elementKinds[args.Type] {
		return nil, fmt.Errorf("unknown element kind %q", args.Type)
	}

	el := &Elem{
		id:    uuid.NewString(),
		name:  args.Name,
		kind:  args.Type,
		h:     h,
		props: make(map[string]any, len(args.Props)),
		style: &Style{props: make(map[string]any)},
		tags:  cloneTags(args.Tags),
	}
	for k, v := range args.Props {
		el.props[k] = v
	}

	if parent == nil {
		h.roots = append(h.roots, el)
		return el, nil
	}
	p, ok := parent.(*Elem)
	if !ok || p.h != h {
		return nil, fmt.Errorf("parent element belongs to a different host")
	}
	el.parent = p
	p.children = append(p.children, el)
	return el, nil
}

// Subscribe registers fn for every event of the given kind.
func (h *Host) Subscribe(kind host.EventKind, fn func(host.Event)) {
	h.subs[kind] = append(h.subs[kind], fn)
}

// Fire delivers one event synchronously to every subscriber of its kind, in
// subscription order.
func (h *Host) Fire(kind host.EventKind, elem host.Element, value any) {
	ev := host.Event{Kind: kind, Element: elem, Value: value}
	for _, fn := range h.subs[kind] {
		fn(ev)
	}
}

// Roots returns the top-level elements.
func (h *Host) Roots() []host.Element {
	out := make([]host.Element, len(h.roots))
	for i, r := range h.roots {
		out[i] = r
	}
	return out
}

// FindByID returns the element with the given host-assigned ID, or nil.
func (h *Host) FindByID(id string) host.Element {
	var found *Elem
	h.walk(func(el *Elem) {
		if el.id == id {
			found = el
		}
	})
	if found == nil {
		return nil
	}
	return found
}

// walk visits every element depth-first.
func (h *Host) walk(fn func(*Elem)) {
	var visit func(*Elem)
	visit = func(el *Elem) {
		fn(el)
		for _, c := range el.children {
			visit(c)
		}
	}
	for _, r := range h.roots {
		visit(r)
	}
}

// Elem is one live element in the tree.
type Elem struct {
	id   string
	name string
	kind string

	h        *Host
	parent   *Elem
	children []*Elem

	props map[string]any
	style *Style
	tags  host.Tags

	dragTarget *Elem
	pairs      []tabPair
}

type tabPair struct {
	tab     *Elem
	content *Elem
}

func (e *Elem) ID() string   { return e.id }
func (e *Elem) Name() string { return e.name }
func (e *Elem) Kind() string { return e.kind }

// Tags returns a snapshot; mutating it does not touch the element.
func (e *Elem) Tags() host.Tags { return cloneTags(e.tags) }

// SetTags replaces the whole persisted tag map.
func (e *Elem) SetTags(tags host.Tags) { e.tags = cloneTags(tags) }

func (e *Elem) Set(prop string, value any) error {
	if prop == "" {
		return fmt.Errorf("empty property name")
	}
	e.props[prop] = value
	return nil
}

// Prop reads a property set at creation or via Set.
func (e *Elem) Prop(prop string) (any, bool) {
	v, ok := e.props[prop]
	return v, ok
}

func (e *Elem) Style() host.Style { return e.style }

func (e *Elem) SetDragTarget(target host.Element) error {
	t, ok := target.(*Elem)
	if !ok || t.h != e.h {
		return fmt.Errorf("drag target belongs to a different host")
	}
	e.dragTarget = t
	return nil
}

// DragTarget returns the element set via SetDragTarget, if any.
func (e *Elem) DragTarget() host.Element {
	if e.dragTarget == nil {
		return nil
	}
	return e.dragTarget
}

// AddTabPair associates tab and content as a pair on this element. Both must
// already be children of this element, which must be a tabbed-pane.
func (e *Elem) AddTabPair(tab, content host.Element) error {
	if e.kind != "tabbed-pane" {
		return fmt.Errorf("add tab pair on %s element", e.kind)
	}
	t, ok := tab.(*Elem)
	if !ok || t.parent != e {
		return fmt.Errorf("tab is not a child of the pane")
	}
	c, ok := content.(*Elem)
	if !ok || c.parent != e {
		return fmt.Errorf("content is not a child of the pane")
	}
	e.pairs = append(e.pairs, tabPair{tab: t, content: c})
	log.Debug(log.CatHost, "tab pair added", "pane", e.name, "tab", t.name)
	return nil
}

// TabPairs returns the (tab, content) associations on a tabbed-pane.
func (e *Elem) TabPairs() [][2]host.Element {
	out := make([][2]host.Element, len(e.pairs))
	for i, p := range e.pairs {
		out[i] = [2]host.Element{p.tab, p.content}
	}
	return out
}

func (e *Elem) Parent() host.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *Elem) Children() []host.Element {
	out := make([]host.Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// Style is a flat property set.
type Style struct {
	props map[string]any
}

func (s *Style) Set(prop string, value any) error {
	if prop == "" {
		return fmt.Errorf("empty style property")
	}
	s.props[prop] = value
	return nil
}

func (s *Style) Get(prop string) (any, bool) {
	v, ok := s.props[prop]
	return v, ok
}

// cloneTags deep-copies a tag map, including nested maps and slices, so that
// snapshots and stored tags never alias caller memory.
func cloneTags(tags host.Tags) host.Tags {
	if tags == nil {
		return nil
	}
	out := make(host.Tags, len(tags))
	for k, v := range tags {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case host.Tags:
		return cloneTags(t)
	case map[string]any:
		return map[string]any(cloneTags(host.Tags(t)))
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
