package cmd

import (
	_ "embed"
	"fmt"

	"github.com/zjrosen/loom/pkg/gui"
	"github.com/zjrosen/loom/pkg/host"
	"github.com/zjrosen/loom/pkg/memhost"
)

// The settings tab is defined declaratively in YAML; its handlers are bound
// by name and resolved against the registry at build time.
//
//go:embed settings.yaml
var settingsYAML []byte

// buildDemo registers the demo handlers and builds the demo element tree.
// strict makes duplicate element names a build error.
func buildDemo(h *memhost.Host, reg *gui.Registry, strict bool) (gui.Refs, host.Element, error) {
	// Handlers close over the reference table, which is assigned once the
	// build below finishes. Dispatch only starts after that.
	var refs gui.Refs

	increment := func(host.Event) { bumpCount(refs, 1) }
	reset := func(host.Event) { setCount(refs, 0) }
	toggleSound := func(ev host.Event) {
		gui.MergeTags(ev.Element, host.Tags{"enabled": ev.Value == true})
	}
	nameChanged := func(ev host.Event) {
		gui.MergeTags(ev.Element, host.Tags{"value": fmt.Sprintf("%v", ev.Value)})
	}

	err := reg.Register(map[string]gui.HandlerFunc{
		"increment":    increment,
		"reset-count":  reset,
		"toggle-sound": toggleSound,
		"name-changed": nameChanged,
	}, gui.Recover)
	if err != nil {
		return nil, nil, err
	}

	settings, err := gui.LoadDefs(settingsYAML)
	if err != nil {
		return nil, nil, err
	}

	counterTab := gui.TabPair{
		Tab: gui.Def{Args: host.Args{Type: "tab", Name: "counter-tab", Props: map[string]any{"caption": "Counter"}}},
		Content: gui.El(host.Args{Type: "flow", Name: "counter"},
			gui.Def{Args: host.Args{
				Type:  "label",
				Name:  "count-label",
				Props: map[string]any{"caption": "Count: 0"},
				Tags:  host.Tags{"count": 0},
			}},
			gui.El(host.Args{Type: "flow", Name: "counter-row", Props: map[string]any{"direction": "horizontal"}},
				gui.Def{
					Args:    host.Args{Type: "button", Name: "inc", Props: map[string]any{"caption": "+1"}},
					Handler: gui.Fn(increment),
				},
				gui.Def{
					Args:    host.Args{Type: "button", Name: "reset", Props: map[string]any{"caption": "Reset"}},
					Handler: gui.Fn(reset),
				},
			),
		),
	}
	settingsTab := gui.TabPair{
		Tab:     gui.Def{Args: host.Args{Type: "tab", Name: "settings-tab", Props: map[string]any{"caption": "Settings"}}},
		Content: settings,
	}

	b := gui.New(h, reg)
	b.Strict = strict
	built, top, err := b.Build(nil,
		gui.El(host.Args{Type: "frame", Name: "main", Props: map[string]any{"caption": "loom demo"}},
			gui.El(host.Args{Type: "tabbed-pane", Name: "pane"},
				counterTab,
				settingsTab,
			),
		),
	)
	if err != nil {
		return nil, nil, err
	}
	refs = built
	return built, top, nil
}

// syncFromTags refreshes derived element state after tags were restored from
// the store.
func syncFromTags(refs gui.Refs) {
	label, ok := refs["count-label"]
	if !ok {
		return
	}
	_ = label.Set("caption", fmt.Sprintf("Count: %d", countOf(label)))

	if box, ok := refs["sound"]; ok {
		if enabled, ok := box.Tags()["enabled"]; ok {
			_ = box.Set("checked", enabled == true)
		}
	}
}

func bumpCount(refs gui.Refs, delta int) {
	label, ok := refs["count-label"]
	if !ok {
		return
	}
	setCountValue(label, countOf(label)+delta)
}

func setCount(refs gui.Refs, n int) {
	if label, ok := refs["count-label"]; ok {
		setCountValue(label, n)
	}
}

func setCountValue(label host.Element, n int) {
	gui.MergeTags(label, host.Tags{"count": n})
	_ = label.Set("caption", fmt.Sprintf("Count: %d", n))
}

// countOf reads the persisted counter off the label's tags.
func countOf(label host.Element) int {
	if n, ok := label.Tags()["count"].(int); ok {
		return n
	}
	return 0
}
