package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/polycore/pkg/order"
	"github.com/mesh-intelligence/polycore/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackendAttach(t *testing.T) {
	b, dir := attachTemp(t)

	_, err := os.Stat(filepath.Join(dir, DatabaseFile))
	require.NoError(t, err, "database file created")

	err = b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackendAttachInvalidConfig(t *testing.T) {
	b := NewBackend(nil)
	err := b.Attach(types.Config{Backend: "postgres"})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestBackendDetach(t *testing.T) {
	b, _ := attachTemp(t)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "Detach is idempotent")

	_, err := b.SaveTally("words", order.NewFrequencyMap[string]())
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.LoadTally("x")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.ListTallies()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.Increment("x", "k", 1)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.DeleteTally("x"), types.ErrStoreDetached)
}

func TestTalliesPersistAcrossAttach(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend(nil)
	require.NoError(t, b.Attach(cfg))
	id, err := b.SaveTally("kept", order.Aggregate([]string{"x"}))
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend(nil)
	require.NoError(t, b2.Attach(cfg))
	defer b2.Detach()
	got, err := b2.LoadTally(id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Counts.Count("x"))
}
