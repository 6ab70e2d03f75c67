package gui

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/loom/pkg/host"
)

// LoadDefs decodes a YAML document into definitions. This is the
// dynamically-shaped entry into the typed definition API: a YAML sequence
// becomes a Seq, a mapping with exactly tab and content keys becomes a
// TabPair, and any other mapping is a leaf with the keys args, children,
// elem_mods, style_mods, drag_target, and handler. Handlers in YAML are
// always names (a string, or a kind→name mapping), resolved against the
// registry at build time.
//
//	- args: {type: frame, name: main}
//	  children:
//	    - args: {type: button, name: ok, props: {caption: OK}}
//	      handler: confirm-dialog
//
// Shape errors are reported as ErrInvalidDefinition with the offending node.
func LoadDefs(data []byte) (Seq, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	def, err := convertDef(raw)
	if err != nil {
		return nil, err
	}
	if seq, ok := def.(Seq); ok {
		return seq, nil
	}
	return Seq{def}, nil
}

func convertDef(raw any) (Definition, error) {
	switch v := raw.(type) {
	case []any:
		seq := make(Seq, 0, len(v))
		for _, item := range v {
			def, err := convertDef(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, def)
		}
		return seq, nil
	case map[string]any:
		if _, isPair := v["tab"]; isPair {
			return convertTabPair(v)
		}
		if _, isPair := v["content"]; isPair {
			return convertTabPair(v)
		}
		return convertLeaf(v)
	default:
		return nil, fmt.Errorf("%w: %#v", ErrInvalidDefinition, raw)
	}
}

func convertTabPair(m map[string]any) (Definition, error) {
	tabRaw, hasTab := m["tab"]
	contentRaw, hasContent := m["content"]
	if !hasTab || !hasContent || len(m) != 2 {
		return nil, fmt.Errorf("%w: tab pair needs exactly tab and content: %#v", ErrInvalidDefinition, m)
	}
	tab, err := convertDef(tabRaw)
	if err != nil {
		return nil, err
	}
	content, err := convertDef(contentRaw)
	if err != nil {
		return nil, err
	}
	return TabPair{Tab: tab, Content: content}, nil
}

func convertLeaf(m map[string]any) (Definition, error) {
	var def Def
	for key, value := range m {
		switch key {
		case "args":
			args, err := convertArgs(value)
			if err != nil {
				return nil, err
			}
			def.Args = args
		case "children":
			items, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: children must be a sequence: %#v", ErrInvalidDefinition, value)
			}
			for _, item := range items {
				child, err := convertDef(item)
				if err != nil {
					return nil, err
				}
				def.Children = append(def.Children, child)
			}
		case "elem_mods":
			mods, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: elem_mods must be a mapping: %#v", ErrInvalidDefinition, value)
			}
			def.Mods = mods
		case "style_mods":
			mods, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: style_mods must be a mapping: %#v", ErrInvalidDefinition, value)
			}
			def.StyleMods = mods
		case "drag_target":
			name, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: drag_target must be a name: %#v", ErrInvalidDefinition, value)
			}
			def.DragTarget = name
		case "handler":
			if err := convertHandler(&def, value); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidDefinition, key)
		}
	}
	if def.Args.Type == "" {
		return nil, fmt.Errorf("%w: leaf needs args.type: %#v", ErrInvalidDefinition, m)
	}
	return def, nil
}

func convertArgs(raw any) (host.Args, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return host.Args{}, fmt.Errorf("%w: args must be a mapping: %#v", ErrInvalidDefinition, raw)
	}
	var args host.Args
	for key, value := range m {
		switch key {
		case "type":
			s, ok := value.(string)
			if !ok {
				return host.Args{}, fmt.Errorf("%w: args.type must be a string: %#v", ErrInvalidDefinition, value)
			}
			args.Type = s
		case "name":
			s, ok := value.(string)
			if !ok {
				return host.Args{}, fmt.Errorf("%w: args.name must be a string: %#v", ErrInvalidDefinition, value)
			}
			args.Name = s
		case "props":
			props, ok := value.(map[string]any)
			if !ok {
				return host.Args{}, fmt.Errorf("%w: args.props must be a mapping: %#v", ErrInvalidDefinition, value)
			}
			args.Props = props
		case "tags":
			tags, ok := value.(map[string]any)
			if !ok {
				return host.Args{}, fmt.Errorf("%w: args.tags must be a mapping: %#v", ErrInvalidDefinition, value)
			}
			args.Tags = host.Tags(tags)
		default:
			return host.Args{}, fmt.Errorf("%w: unknown args key %q", ErrInvalidDefinition, key)
		}
	}
	return args, nil
}

func convertHandler(def *Def, raw any) error {
	switch v := raw.(type) {
	case string:
		def.Handler = Named(v)
		return nil
	case map[string]any:
		def.Handlers = make(map[host.EventKind]HandlerRef, len(v))
		for kind, nameRaw := range v {
			name, ok := nameRaw.(string)
			if !ok {
				return fmt.Errorf("%w: handler for %q must be a name: %#v", ErrInvalidDefinition, kind, nameRaw)
			}
			def.Handlers[host.EventKind(kind)] = Named(name)
		}
		return nil
	default:
		return fmt.Errorf("%w: handler must be a name or kind mapping: %#v", ErrInvalidDefinition, raw)
	}
}
