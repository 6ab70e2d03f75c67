// Package gui builds live GUI element trees from declarative definitions and
// keeps event-handler bindings persistence-safe: elements carry only stable
// handler names in their host-persisted tags, and the dispatcher resolves
// those names back to live functions at event time through a Registry.
package gui

import "github.com/zjrosen/loom/pkg/host"

// Definition is one node of a declarative build input: a leaf Def, a TabPair,
// or a Seq of either. The set is closed; the builder rejects anything else
// with ErrInvalidDefinition.
type Definition interface {
	definition()
}

// Def describes one element to create, plus optional post-creation work.
//
// Children may be given either positionally through El or through the
// Children field. The two forms are mutually exclusive; setting both fails
// the build with ErrConflictingChildren.
type Def struct {
	// Args is the creation property bag handed to the host.
	Args host.Args

	// Children are this element's child definitions (explicit form).
	Children []Definition

	// Mods are flat property overwrites applied to the live element after
	// creation.
	Mods map[string]any

	// StyleMods are flat overwrites applied to the element's style object.
	StyleMods map[string]any

	// DragTarget names an element built earlier in this same build call to
	// set as this element's drag target.
	DragTarget string

	// Handler binds one handler for every GUI event fired on this element.
	Handler HandlerRef

	// Handlers binds handlers per event kind. Mutually exclusive with
	// Handler.
	Handlers map[host.EventKind]HandlerRef

	// positional children, set by El.
	inline []Definition
}

func (Def) definition() {}

// El builds a leaf definition with positional children, mirroring the shape
// of the tree being described:
//
//	gui.El(frame,
//		gui.El(titleLabel),
//		gui.El(buttonRow, gui.El(okButton), gui.El(cancelButton)),
//	)
func El(args host.Args, children ...Definition) Def {
	return Def{Args: args, inline: children}
}

// TabPair builds its Tab and Content definitions under the same parent and
// then associates them as a tab/content pair on that parent.
type TabPair struct {
	Tab     Definition
	Content Definition
}

func (TabPair) definition() {}

// Seq groups sibling definitions under one parent.
type Seq []Definition

func (Seq) definition() {}

// HandlerRef identifies a registered handler, either by the live function
// value (the usual form in Go code) or by its registered name (the form that
// comes out of persisted data and YAML definitions).
type HandlerRef interface {
	handlerRef()
}

type funcRef struct{ fn HandlerFunc }

func (funcRef) handlerRef() {}

type namedRef string

func (namedRef) handlerRef() {}

// Fn references a handler by function value. The function must already be
// registered; the builder resolves it to its name via the registry.
func Fn(fn HandlerFunc) HandlerRef { return funcRef{fn: fn} }

// Named references a handler by its registered name.
func Named(name string) HandlerRef { return namedRef(name) }
