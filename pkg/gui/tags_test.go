package gui_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/loom/internal/testutil"
	"github.com/zjrosen/loom/pkg/gui"
	"github.com/zjrosen/loom/pkg/host"
)

func TestMergeTags_Accumulates(t *testing.T) {
	_, _, b := newBuilder(t)

	def := testutil.Button("btn", "Go")
	def.Args.Tags = host.Tags{"existing": "yes"}
	refs, _, err := b.Build(nil, def)
	require.NoError(t, err)

	el := refs["btn"]
	gui.MergeTags(el, host.Tags{"a": 1})
	gui.MergeTags(el, host.Tags{"b": 2})

	tags := el.Tags()
	require.Equal(t, 1, tags["a"])
	require.Equal(t, 2, tags["b"])
	require.Equal(t, "yes", tags["existing"])
}

func TestMergeTags_OverwritesOnlyGivenKeys(t *testing.T) {
	_, _, b := newBuilder(t)

	def := testutil.Button("btn", "Go")
	def.Args.Tags = host.Tags{"count": 1, "label": "keep"}
	refs, _, err := b.Build(nil, def)
	require.NoError(t, err)

	gui.MergeTags(refs["btn"], host.Tags{"count": 2})

	tags := refs["btn"].Tags()
	require.Equal(t, 2, tags["count"])
	require.Equal(t, "keep", tags["label"])
}

func TestMergeTags_WholeMapWriteBack(t *testing.T) {
	// The host returns snapshots, so editing a read copy in place is never
	// observed. MergeTags must still land.
	_, _, b := newBuilder(t)

	refs, _, err := b.Build(nil, testutil.Button("btn", "Go"))
	require.NoError(t, err)
	el := refs["btn"]

	snapshot := el.Tags()
	snapshot["stale"] = "edit"
	require.NotContains(t, el.Tags(), "stale", "in-place edits on a snapshot must not stick")

	gui.MergeTags(el, host.Tags{"real": "edit"})
	require.Equal(t, "edit", el.Tags()["real"])
}

func TestMergeTags_PreservesHandlerBinding(t *testing.T) {
	_, reg, b := newBuilder(t)

	fn := func(host.Event) {}
	require.NoError(t, reg.Register(map[string]gui.HandlerFunc{"h": fn}, nil))

	def := testutil.Button("btn", "Go")
	def.Handler = gui.Fn(fn)
	refs, _, err := b.Build(nil, def)
	require.NoError(t, err)

	gui.MergeTags(refs["btn"], host.Tags{"extra": true})

	tags := refs["btn"].Tags()
	require.Equal(t, "h", tags[gui.ReservedTagKey])
	require.Equal(t, true, tags["extra"])
}
