package gui_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/loom/pkg/gui"
	"github.com/zjrosen/loom/pkg/host"
	"github.com/zjrosen/loom/pkg/memhost"
)

// Building N uniquely named definitions always yields exactly N distinct
// elements in the reference table, and a topmost element only for N == 1.
func TestBuild_RefTableProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")

		defs := make([]gui.Definition, n)
		for i := range defs {
			defs[i] = gui.Def{Args: host.Args{
				Type: rapid.SampledFrom([]string{"flow", "label", "button"}).Draw(t, fmt.Sprintf("kind%d", i)),
				Name: fmt.Sprintf("el-%d", i),
			}}
		}

		b := gui.New(memhost.New(), gui.NewRegistry())
		refs, top, err := b.Build(nil, defs...)
		require.NoError(t, err)
		require.Len(t, refs, n)

		seen := make(map[host.Element]bool)
		for i := 0; i < n; i++ {
			el := refs[fmt.Sprintf("el-%d", i)]
			require.NotNil(t, el)
			require.False(t, seen[el], "elements must be distinct")
			seen[el] = true
		}

		if n == 1 {
			require.Same(t, refs["el-0"], top)
		} else {
			require.Nil(t, top)
		}
	})
}

// Merging any sequence of disjoint updates is equivalent to merging their
// union, and never loses pre-existing keys.
func TestMergeTags_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := memhost.New()
		el, err := h.Create(nil, host.Args{
			Type: "flow",
			Tags: host.Tags{"seed": "v"},
		})
		require.NoError(t, err)

		union := host.Tags{}
		steps := rapid.IntRange(1, 6).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			update := host.Tags{}
			for _, k := range rapid.SliceOfNDistinct(
				rapid.StringMatching(`[a-z]{1,8}`), 1, 4, rapid.ID[string],
			).Draw(t, fmt.Sprintf("keys%d", i)) {
				v := rapid.IntRange(0, 100).Draw(t, fmt.Sprintf("val-%d-%s", i, k))
				update[k] = v
				union[k] = v
			}
			gui.MergeTags(el, update)
		}

		tags := el.Tags()
		require.Equal(t, "v", tags["seed"])
		for k, v := range union {
			require.Equal(t, v, tags[k])
		}
	})
}
