package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testHistory(t *testing.T, h History) {
	t.Helper()

	lines, err := h.Recent(0)
	require.NoError(t, err)
	require.Empty(t, lines)

	require.NoError(t, h.Append("1 2 +"))
	require.NoError(t, h.Append(`"hi" pl`))
	require.NoError(t, h.Append("defs"))

	lines, err = h.Recent(0)
	require.NoError(t, err)
	require.Equal(t, []string{"1 2 +", `"hi" pl`, "defs"}, lines)

	lines, err = h.Recent(2)
	require.NoError(t, err)
	require.Equal(t, []string{`"hi" pl`, "defs"}, lines)
}

func TestMemoryHistory(t *testing.T) {
	h := NewMemory()
	defer h.Close()
	testHistory(t, h)
}

func TestSQLiteHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	h, err := NewSQLite(path)
	require.NoError(t, err)
	defer h.Close()
	testHistory(t, h)
}

func TestSQLiteHistoryPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, h.Append("1 2 +"))
	require.NoError(t, h.Close())

	h, err = NewSQLite(path)
	require.NoError(t, err)
	defer h.Close()

	lines, err := h.Recent(0)
	require.NoError(t, err)
	require.Equal(t, []string{"1 2 +"}, lines)
}
