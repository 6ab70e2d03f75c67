package testutil

import (
	"github.com/zjrosen/loom/pkg/gui"
	"github.com/zjrosen/loom/pkg/host"
)

// Flow returns a flow definition with positional children.
func Flow(name string, children ...gui.Definition) gui.Def {
	return gui.El(host.Args{Type: "flow", Name: name}, children...)
}

// Frame returns a frame definition with positional children.
func Frame(name string, children ...gui.Definition) gui.Def {
	return gui.El(host.Args{Type: "frame", Name: name}, children...)
}

// Label returns a label definition with a caption.
func Label(name, caption string) gui.Def {
	return gui.Def{Args: host.Args{
		Type:  "label",
		Name:  name,
		Props: map[string]any{"caption": caption},
	}}
}

// Button returns a button definition with a caption.
func Button(name, caption string) gui.Def {
	return gui.Def{Args: host.Args{
		Type:  "button",
		Name:  name,
		Props: map[string]any{"caption": caption},
	}}
}

// Checkbox returns a checkbox definition.
func Checkbox(name string, checked bool) gui.Def {
	return gui.Def{Args: host.Args{
		Type:  "checkbox",
		Name:  name,
		Props: map[string]any{"checked": checked},
	}}
}
