package termhost_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/loom/internal/pubsub"
	"github.com/zjrosen/loom/internal/testutil"
	"github.com/zjrosen/loom/pkg/gui"
	"github.com/zjrosen/loom/pkg/host"
	"github.com/zjrosen/loom/pkg/memhost"
	"github.com/zjrosen/loom/pkg/termhost"
)

func init() {
	zone.NewGlobal()
}

func buildTree(t *testing.T) (*memhost.Host, gui.Refs, host.Element) {
	t.Helper()
	h := memhost.New()
	b := gui.New(h, gui.NewRegistry())

	refs, top, err := b.Build(nil,
		testutil.Frame("root",
			testutil.Label("title", "Demo"),
			gui.El(host.Args{Type: "tabbed-pane", Name: "pane"},
				gui.TabPair{
					Tab:     gui.Def{Args: host.Args{Type: "tab", Name: "t1", Props: map[string]any{"caption": "First"}}},
					Content: testutil.Label("c1", "first content"),
				},
				gui.TabPair{
					Tab:     gui.Def{Args: host.Args{Type: "tab", Name: "t2", Props: map[string]any{"caption": "Second"}}},
					Content: testutil.Label("c2", "second content"),
				},
			),
		),
	)
	require.NoError(t, err)
	return h, refs, top
}

func TestView_RendersCaptionsAndActiveTab(t *testing.T) {
	h, _, top := buildTree(t)
	m := termhost.New(h, top)

	view := m.View()
	require.Contains(t, view, "Demo")
	require.Contains(t, view, "First")
	require.Contains(t, view, "Second")
	require.Contains(t, view, "first content")
	require.NotContains(t, view, "second content", "only the active pair's content renders")
}

func TestUpdate_TabCycling(t *testing.T) {
	h, refs, top := buildTree(t)
	m := termhost.New(h, top)

	var selections []any
	h.Subscribe(host.KindSelectionChanged, func(ev host.Event) {
		require.Same(t, refs["pane"], ev.Element)
		selections = append(selections, ev.Value)
	})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(*termhost.Model)

	view := m.View()
	require.Contains(t, view, "second content")
	require.NotContains(t, view, "first content")
	require.Equal(t, []any{1}, selections)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(*termhost.Model)
	require.Equal(t, []any{1, 0}, selections)
}

func TestUpdate_QuitAndSave(t *testing.T) {
	h, _, top := buildTree(t)

	saved := false
	m := termhost.New(h, top, termhost.WithSaveFunc(func() error {
		saved = true
		return nil
	}))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.Nil(t, cmd)
	require.True(t, saved)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
}

func TestView_CheckboxState(t *testing.T) {
	h := memhost.New()
	b := gui.New(h, gui.NewRegistry())

	refs, top, err := b.Build(nil,
		testutil.Frame("root",
			gui.Def{Args: host.Args{
				Type:  "checkbox",
				Name:  "opt",
				Props: map[string]any{"caption": "Enabled", "checked": true},
			}},
		),
	)
	require.NoError(t, err)

	m := termhost.New(h, top)
	require.Contains(t, m.View(), "[x] Enabled")

	require.NoError(t, refs["opt"].Set("checked", false))
	require.Contains(t, m.View(), "[ ] Enabled")
}

func TestView_StatusBarHidden(t *testing.T) {
	h, _, top := buildTree(t)

	m := termhost.New(h, top, termhost.WithStatusBar(false))
	require.NotContains(t, m.View(), "q quit")

	m = termhost.New(h, top)
	require.Contains(t, m.View(), "q quit", "status bar renders by default")
}

func TestInit_StartsStoreListener(t *testing.T) {
	h, _, top := buildTree(t)
	m := termhost.New(h, top)
	require.NotNil(t, m.Init())
}

func TestUpdate_StoreEventSetsStatus(t *testing.T) {
	h, _, top := buildTree(t)
	m := termhost.New(h, top)

	next, cmd := m.Update(pubsub.Event[memhost.StoreEvent]{
		Type:    pubsub.TagsSavedEvent,
		Payload: memhost.StoreEvent{Elements: 2},
	})
	require.NotNil(t, cmd, "listener re-arms after each event")
	require.Contains(t, next.View(), "tags saved (2)")

	next, _ = next.Update(pubsub.Event[memhost.StoreEvent]{
		Type:    pubsub.TagsRestoredEvent,
		Payload: memhost.StoreEvent{Elements: 3},
	})
	require.Contains(t, next.View(), "tags restored (3)")
}

func TestUpdate_LogEventShowsDebugLine(t *testing.T) {
	h, _, top := buildTree(t)
	m := termhost.New(h, top)

	next, _ := m.Update(pubsub.Event[string]{
		Type:    pubsub.LogLineEvent,
		Payload: "[DEBUG] [ui] button clicked\n",
	})
	require.Contains(t, next.View(), "button clicked")
}
