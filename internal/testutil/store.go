// Package testutil provides shared helpers for loom's test suites: temporary
// tag stores and declarative definition fixtures.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/loom/pkg/memhost"
)

// NewTempStore returns a tag store backed by a temporary file, cleaned up
// when the test finishes.
func NewTempStore(t *testing.T) *memhost.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags.db")
	st, err := memhost.OpenStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}
