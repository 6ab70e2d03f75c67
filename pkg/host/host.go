// Package host defines the boundary between the loom library and the
// retained-mode GUI environment that actually owns elements. A host creates
// elements, keeps their parent/child structure, persists per-element tags
// across process restarts, and delivers GUI events. Everything loom does is
// expressed against these interfaces; pkg/memhost is the reference
// implementation.
package host

// Tags is the flat key/value metadata map attached to each element. Hosts
// persist tags verbatim across restarts, which is why tag values must stay
// serialization-safe: strings, numbers, bools, and nested maps/slices of the
// same. Function values can never live in tags.
type Tags map[string]any

// Args is the property bag passed to Create. Name and Tags are the only keys
// loom itself cares about; Props carries host-specific creation properties
// (captions, tooltips, orientation, ...).
type Args struct {
	Type  string
	Name  string
	Props map[string]any
	Tags  Tags
}

// Element is a live node in the host's GUI tree.
type Element interface {
	// ID is a host-assigned identifier, stable for the element's lifetime.
	ID() string
	// Name is the caller-assigned name from Args.Name, possibly empty.
	Name() string
	// Kind is the widget type the element was created with.
	Kind() string

	// Tags returns a snapshot of the element's persisted tags. Mutating the
	// returned map has no effect on the element.
	Tags() Tags
	// SetTags replaces the element's whole persisted tag map. Hosts only
	// observe whole-map writes, so partial updates must read-modify-write.
	SetTags(Tags)

	// Set overwrites a single element property.
	Set(prop string, value any) error
	// Style returns the element's style object.
	Style() Style

	// SetDragTarget establishes a drag relationship onto another element.
	SetDragTarget(Element) error
	// AddTabPair associates a tab element with its content element on this
	// element, which must be a tab container.
	AddTabPair(tab, content Element) error

	Parent() Element
	Children() []Element
}

// Style is the per-element style object, a flat property set.
type Style interface {
	Set(prop string, value any) error
	Get(prop string) (any, bool)
}

// Event is one GUI event as delivered by the host. Element is the source
// element and may be nil for events without one.
type Event struct {
	Kind    EventKind
	Element Element
	// Value carries kind-specific payload: the new text for KindTextChanged,
	// the checkbox state for KindCheckedChanged, and so on.
	Value any
}

// Host is the element-creation and event-subscription surface of the GUI
// environment.
type Host interface {
	// Create makes a new live element under parent. A nil parent creates a
	// top-level element. The host captures Args.Tags by value at creation
	// time; later mutation of the caller's map is not observed.
	Create(parent Element, args Args) (Element, error)
	// Subscribe registers fn for every event of the given kind. Delivery is
	// synchronous and single-threaded.
	Subscribe(kind EventKind, fn func(Event))
}
