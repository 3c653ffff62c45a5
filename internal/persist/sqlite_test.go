package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nars-core/internal/clock"
	"nars-core/internal/memory"
	"nars-core/internal/narsese"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSQLiteStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.Error(t, err)
}

func TestSaveSnapshotWritesConceptRows(t *testing.T) {
	ctx := clock.New(1)
	mem := memory.New(ctx, nil)
	task, err := narsese.Parse(ctx, "<raven --> bird>. %1.0;0.9%")
	require.NoError(t, err)
	mem.Input(task)

	store := newTestSQLiteStore(t)
	snapshotID, err := store.SaveSnapshot(mem)
	require.NoError(t, err)
	assert.NotEmpty(t, snapshotID)

	var count int
	row := store.db.QueryRow("SELECT COUNT(*) FROM concepts WHERE snapshot_id = ?", snapshotID)
	require.NoError(t, row.Scan(&count))
	assert.Greater(t, count, 0)
}

func TestSaveSnapshotIsIsolatedAcrossCalls(t *testing.T) {
	ctx := clock.New(1)
	mem := memory.New(ctx, nil)
	task, err := narsese.Parse(ctx, "<raven --> bird>. %1.0;0.9%")
	require.NoError(t, err)
	mem.Input(task)

	store := newTestSQLiteStore(t)
	firstID, err := store.SaveSnapshot(mem)
	require.NoError(t, err)
	secondID, err := store.SaveSnapshot(mem)
	require.NoError(t, err)

	assert.NotEqual(t, firstID, secondID)

	var total int
	row := store.db.QueryRow("SELECT COUNT(*) FROM snapshots")
	require.NoError(t, row.Scan(&total))
	assert.Equal(t, 2, total)
}
