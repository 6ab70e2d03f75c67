package gui

import (
	"fmt"
	"maps"

	"github.com/zjrosen/loom/internal/log"
	"github.com/zjrosen/loom/pkg/host"
)

// ReservedTagKey is the one tags key loom owns. It holds the element's
// handler binding in name-only form and must never be written by callers
// directly; the builder and MergeTags are the only entry points that touch
// it.
const ReservedTagKey = "__loom_handler"

// Refs is the flat name→element table accumulated across one build call,
// including nested children and tab/content pairs. Names are not enforced
// unique by default: a later element with the same name silently replaces the
// earlier entry (see Builder.Strict).
type Refs map[string]host.Element

// Builder constructs live element trees from definitions against one host,
// resolving handler bindings through one registry.
type Builder struct {
	host host.Host
	reg  *Registry

	// Strict makes a duplicate name within one build call an error instead
	// of last-write-wins.
	Strict bool
}

// New creates a builder bound to a host and a handler registry.
func New(h host.Host, reg *Registry) *Builder {
	return &Builder{host: h, reg: reg}
}

// Build creates the elements described by defs under parent and returns the
// reference table of every named element created. When defs describes exactly
// one element, that element is returned as well; otherwise the second result
// is nil.
//
// Elements are created in definition order, and name references (DragTarget)
// resolve only against elements already created earlier in that order.
func (b *Builder) Build(parent host.Element, defs ...Definition) (Refs, host.Element, error) {
	refs := make(Refs)
	top, err := b.BuildInto(parent, refs, defs...)
	if err != nil {
		return nil, nil, err
	}
	return refs, top, nil
}

// BuildInto is Build with a caller-supplied reference table, letting several
// build calls accumulate names into one table.
func (b *Builder) BuildInto(parent host.Element, refs Refs, defs ...Definition) (host.Element, error) {
	flat, err := flatten(defs)
	if err != nil {
		return nil, err
	}
	var top host.Element
	for _, def := range flat {
		el, err := b.buildOne(parent, refs, def)
		if err != nil {
			return nil, err
		}
		if len(flat) == 1 {
			top = el
		}
	}
	return top, nil
}

// flatten expands top-level sequences so that the singleton rule for the
// topmost result counts actual definitions, not wrapping.
func flatten(defs []Definition) ([]Definition, error) {
	out := make([]Definition, 0, len(defs))
	for _, def := range defs {
		switch v := def.(type) {
		case nil:
			return nil, fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
		case Seq:
			inner, err := flatten(v)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		default:
			out = append(out, def)
		}
	}
	return out, nil
}

func (b *Builder) buildOne(parent host.Element, refs Refs, def Definition) (host.Element, error) {
	switch v := def.(type) {
	case Def:
		return b.buildLeaf(parent, refs, v)
	case *Def:
		if v == nil {
			return nil, fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
		}
		return b.buildLeaf(parent, refs, *v)
	case TabPair:
		return nil, b.buildTabPair(parent, refs, v)
	case Seq:
		for _, d := range v {
			if _, err := b.buildOne(parent, refs, d); err != nil {
				return nil, err
			}
		}
		return nil, nil
	case nil:
		return nil, fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	default:
		return nil, fmt.Errorf("%w: %#v", ErrInvalidDefinition, def)
	}
}

func (b *Builder) buildLeaf(parent host.Element, refs Refs, def Def) (host.Element, error) {
	label := defLabel(def.Args)

	if len(def.inline) > 0 && len(def.Children) > 0 {
		return nil, fmt.Errorf("%s: %w", label, ErrConflictingChildren)
	}
	if _, collides := def.Args.Tags[ReservedTagKey]; collides {
		return nil, fmt.Errorf("%s: %w", label, ErrReservedKey)
	}

	binding, err := b.resolveBinding(def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	// The host captures tags by value at creation, so the binding is
	// injected into a clone of the caller's property bag. The caller's own
	// Args (and its Tags map) are never mutated.
	args := def.Args
	if binding != nil {
		tags := maps.Clone(args.Tags)
		if tags == nil {
			tags = make(host.Tags, 1)
		}
		tags[ReservedTagKey] = binding
		args.Tags = tags
	}

	el, err := b.host.Create(parent, args)
	if err != nil {
		return nil, fmt.Errorf("%s: create: %w", label, err)
	}
	log.Debug(log.CatBuild, "created element", "kind", args.Type, "name", args.Name)

	if name := args.Name; name != "" {
		if _, dup := refs[name]; dup && b.Strict {
			return nil, fmt.Errorf("%s: %w", label, ErrDuplicateRef)
		}
		refs[name] = el
	}

	for prop, value := range def.Mods {
		if err := el.Set(prop, value); err != nil {
			return nil, fmt.Errorf("%s: set %q: %w", label, prop, err)
		}
	}
	for prop, value := range def.StyleMods {
		if err := el.Style().Set(prop, value); err != nil {
			return nil, fmt.Errorf("%s: style %q: %w", label, prop, err)
		}
	}

	if def.DragTarget != "" {
		target, ok := refs[def.DragTarget]
		if !ok {
			return nil, fmt.Errorf("%s: %q: %w", label, def.DragTarget, ErrUnresolvedDragTarget)
		}
		if err := el.SetDragTarget(target); err != nil {
			return nil, fmt.Errorf("%s: drag target: %w", label, err)
		}
	}

	children := def.Children
	if len(children) == 0 {
		children = def.inline
	}
	for _, child := range children {
		if _, err := b.buildOne(el, refs, child); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// buildTabPair builds the tab and content definitions against the same
// parent and the same reference table, then associates them on the parent.
func (b *Builder) buildTabPair(parent host.Element, refs Refs, pair TabPair) error {
	tab, err := b.buildSingle(parent, refs, pair.Tab, "tab")
	if err != nil {
		return err
	}
	content, err := b.buildSingle(parent, refs, pair.Content, "content")
	if err != nil {
		return err
	}
	if err := parent.AddTabPair(tab, content); err != nil {
		return fmt.Errorf("add tab pair: %w", err)
	}
	return nil
}

// buildSingle builds a definition that must produce exactly one element.
// Singleton sequences unwrap to their only definition.
func (b *Builder) buildSingle(parent host.Element, refs Refs, def Definition, role string) (host.Element, error) {
	flat, err := flatten([]Definition{def})
	if err != nil {
		return nil, err
	}
	if len(flat) != 1 {
		return nil, fmt.Errorf("%s: %w: must describe exactly one element, got %#v", role, ErrInvalidDefinition, def)
	}
	el, err := b.buildOne(parent, refs, flat[0])
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%s: %w: must describe exactly one element, got %#v", role, ErrInvalidDefinition, def)
	}
	return el, nil
}

// resolveBinding converts a definition's handler binding to the name-only
// form stored under the reserved tags key: a plain string for a single
// handler, a kind→name map for per-kind bindings, nil when no binding.
func (b *Builder) resolveBinding(def Def) (any, error) {
	if def.Handler != nil && len(def.Handlers) > 0 {
		return nil, fmt.Errorf("%w: both Handler and Handlers set", ErrInvalidDefinition)
	}
	if def.Handler != nil {
		return b.resolveRef(def.Handler)
	}
	if len(def.Handlers) > 0 {
		byKind := make(map[string]string, len(def.Handlers))
		for kind, ref := range def.Handlers {
			name, err := b.resolveRef(ref)
			if err != nil {
				return nil, fmt.Errorf("kind %q: %w", kind, err)
			}
			byKind[string(kind)] = name
		}
		return byKind, nil
	}
	return nil, nil
}

func (b *Builder) resolveRef(ref HandlerRef) (string, error) {
	switch v := ref.(type) {
	case funcRef:
		name, ok := b.reg.NameOf(v.fn)
		if !ok {
			return "", ErrUnknownHandler
		}
		return name, nil
	case namedRef:
		if _, ok := b.reg.FuncOf(string(v)); !ok {
			return "", fmt.Errorf("%q: %w", string(v), ErrUnknownHandler)
		}
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: unknown handler reference %#v", ErrInvalidDefinition, ref)
	}
}

func defLabel(args host.Args) string {
	if args.Name != "" {
		return fmt.Sprintf("build %q", args.Name)
	}
	if args.Type != "" {
		return fmt.Sprintf("build %s", args.Type)
	}
	return "build element"
}
