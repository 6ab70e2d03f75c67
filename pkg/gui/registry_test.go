package gui_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/loom/pkg/gui"
	"github.com/zjrosen/loom/pkg/host"
)

func TestRegistry_RoundTrip(t *testing.T) {
	reg := gui.NewRegistry()

	called := 0
	onClick := func(host.Event) { called++ }

	require.NoError(t, reg.Register(map[string]gui.HandlerFunc{"on-click": onClick}, nil))

	name, ok := reg.NameOf(onClick)
	require.True(t, ok)
	require.Equal(t, "on-click", name)

	fn, ok := reg.FuncOf("on-click")
	require.True(t, ok)
	fn(host.Event{})
	require.Equal(t, 1, called)
}

func TestRegistry_MissingLookups(t *testing.T) {
	reg := gui.NewRegistry()

	_, ok := reg.NameOf(func(host.Event) {})
	require.False(t, ok)

	_, ok = reg.FuncOf("nope")
	require.False(t, ok)

	_, ok = reg.NameOf(nil)
	require.False(t, ok)
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := gui.NewRegistry()

	require.NoError(t, reg.Register(map[string]gui.HandlerFunc{
		"h": func(host.Event) {},
	}, nil))

	err := reg.Register(map[string]gui.HandlerFunc{
		"h": func(host.Event) {},
	}, nil)
	require.ErrorIs(t, err, gui.ErrDuplicateName)
}

func TestRegistry_DuplicateFunc(t *testing.T) {
	reg := gui.NewRegistry()

	var shared gui.HandlerFunc = func(host.Event) {}
	require.NoError(t, reg.Register(map[string]gui.HandlerFunc{"first": shared}, nil))

	err := reg.Register(map[string]gui.HandlerFunc{"second": shared}, nil)
	require.ErrorIs(t, err, gui.ErrDuplicateFunc)
}

func TestRegistry_ClosuresFromSameLiteralCollide(t *testing.T) {
	reg := gui.NewRegistry()

	// Identity is the code pointer: closures minted from one literal share
	// it even when they capture different state.
	mk := func(n *int) gui.HandlerFunc {
		return func(host.Event) { *n++ }
	}
	var a, b int

	require.NoError(t, reg.Register(map[string]gui.HandlerFunc{"first": mk(&a)}, nil))
	err := reg.Register(map[string]gui.HandlerFunc{"second": mk(&b)}, nil)
	require.ErrorIs(t, err, gui.ErrDuplicateFunc)
}

func TestRegistry_NilHandler(t *testing.T) {
	reg := gui.NewRegistry()
	err := reg.Register(map[string]gui.HandlerFunc{"h": nil}, nil)
	require.Error(t, err)
}

func TestRegistry_Wrapper(t *testing.T) {
	reg := gui.NewRegistry()

	var order []string
	handler := func(host.Event) { order = append(order, "handler") }
	wrapper := func(ev host.Event, fn gui.HandlerFunc) {
		order = append(order, "before")
		fn(ev)
		order = append(order, "after")
	}

	require.NoError(t, reg.Register(map[string]gui.HandlerFunc{"wrapped": handler}, wrapper))

	fn, ok := reg.FuncOf("wrapped")
	require.True(t, ok)
	fn(host.Event{})
	require.Equal(t, []string{"before", "handler", "after"}, order)
}

func TestRegistry_WrapperPerBatch(t *testing.T) {
	reg := gui.NewRegistry()

	wrapped := 0
	require.NoError(t, reg.Register(map[string]gui.HandlerFunc{
		"a": func(host.Event) {},
	}, func(ev host.Event, fn gui.HandlerFunc) {
		wrapped++
		fn(ev)
	}))
	require.NoError(t, reg.Register(map[string]gui.HandlerFunc{
		"b": func(host.Event) {},
	}, nil))

	fnA, _ := reg.FuncOf("a")
	fnA(host.Event{})
	require.Equal(t, 1, wrapped)

	// The second batch has no wrapper.
	fnB, _ := reg.FuncOf("b")
	fnB(host.Event{})
	require.Equal(t, 1, wrapped)
}

func TestRecover_ContainsPanic(t *testing.T) {
	reg := gui.NewRegistry()
	require.NoError(t, reg.Register(map[string]gui.HandlerFunc{
		"bad": func(host.Event) { panic("boom") },
	}, gui.Recover))

	fn, ok := reg.FuncOf("bad")
	require.True(t, ok)
	require.NotPanics(t, func() { fn(host.Event{Kind: host.KindClick}) })
}
