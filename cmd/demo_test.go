package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/loom/internal/testutil"
	"github.com/zjrosen/loom/pkg/gui"
	"github.com/zjrosen/loom/pkg/host"
	"github.com/zjrosen/loom/pkg/memhost"
)

func TestBuildDemo_Structure(t *testing.T) {
	h := memhost.New()
	reg := gui.NewRegistry()

	refs, top, err := buildDemo(h, reg, false)
	require.NoError(t, err)
	require.NotNil(t, top)
	require.Equal(t, "main", top.Name())

	for _, name := range []string{"pane", "counter", "count-label", "inc", "reset", "settings", "sound", "player-name"} {
		require.Contains(t, refs, name)
	}

	pane := refs["pane"].(*memhost.Elem)
	require.Len(t, pane.TabPairs(), 2)
}

func TestDemo_CounterClicks(t *testing.T) {
	h := memhost.New()
	reg := gui.NewRegistry()

	refs, _, err := buildDemo(h, reg, false)
	require.NoError(t, err)

	d := gui.NewDispatcher(reg)
	d.Attach(h)

	h.Fire(host.KindClick, refs["inc"], nil)
	h.Fire(host.KindClick, refs["inc"], nil)
	h.Fire(host.KindClick, refs["inc"], nil)

	require.Equal(t, 3, refs["count-label"].Tags()["count"])
	caption, _ := refs["count-label"].(*memhost.Elem).Prop("caption")
	require.Equal(t, "Count: 3", caption)

	h.Fire(host.KindClick, refs["reset"], nil)
	require.Equal(t, 0, refs["count-label"].Tags()["count"])
}

func TestDemo_SettingsHandlers(t *testing.T) {
	h := memhost.New()
	reg := gui.NewRegistry()

	refs, _, err := buildDemo(h, reg, false)
	require.NoError(t, err)

	d := gui.NewDispatcher(reg)
	d.Attach(h)

	h.Fire(host.KindCheckedChanged, refs["sound"], false)
	require.Equal(t, false, refs["sound"].Tags()["enabled"])

	h.Fire(host.KindTextChanged, refs["player-name"], "ada")
	require.Equal(t, "ada", refs["player-name"].Tags()["value"])
}

func TestDemo_CounterSurvivesRestart(t *testing.T) {
	st := testutil.NewTempStore(t)

	// First run: click twice and persist.
	h1 := memhost.New()
	reg1 := gui.NewRegistry()
	refs1, _, err := buildDemo(h1, reg1, false)
	require.NoError(t, err)

	d1 := gui.NewDispatcher(reg1)
	d1.Attach(h1)
	h1.Fire(host.KindClick, refs1["inc"], nil)
	h1.Fire(host.KindClick, refs1["inc"], nil)
	require.NoError(t, h1.SaveTags(st))

	// Restart: fresh host, fresh registry, same handler names.
	h2 := memhost.New()
	reg2 := gui.NewRegistry()
	refs2, _, err := buildDemo(h2, reg2, false)
	require.NoError(t, err)
	require.NoError(t, h2.RestoreTags(st))
	syncFromTags(refs2)

	caption, _ := refs2["count-label"].(*memhost.Elem).Prop("caption")
	require.Equal(t, "Count: 2", caption)

	d2 := gui.NewDispatcher(reg2)
	d2.Attach(h2)
	h2.Fire(host.KindClick, refs2["inc"], nil)
	require.Equal(t, 3, refs2["count-label"].Tags()["count"])
}

func TestDemo_HandlersAreWrapped(t *testing.T) {
	h := memhost.New()
	reg := gui.NewRegistry()

	_, _, err := buildDemo(h, reg, false)
	require.NoError(t, err)

	// toggle-sound dereferences ev.Element; a nil element would panic in
	// the bare handler, but demo handlers are registered with gui.Recover.
	fn, ok := reg.FuncOf("toggle-sound")
	require.True(t, ok)
	require.NotPanics(t, func() {
		fn(host.Event{Kind: host.KindCheckedChanged, Element: nil, Value: true})
	})
}
