package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	runKeyValueContract(t, fs)

	t.Run("Namespaced keys stay flat", func(t *testing.T) {
		require.NoError(t, fs.Set(context.Background(), "users/bob/history", []byte(`{}`)))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, e.IsDir(), "unexpected directory %s", e.Name())
		}
	})

	t.Run("Survives reopening", func(t *testing.T) {
		require.NoError(t, fs.Set(context.Background(), "history", []byte(`{"x":true}`)))

		reopened, err := NewFileStore(dir)
		require.NoError(t, err)

		got, err := reopened.Get(context.Background(), "history")
		require.NoError(t, err)
		assert.JSONEq(t, `{"x":true}`, string(got))
	})

	t.Run("No temp files left behind", func(t *testing.T) {
		matches, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestNewFileStore_RequiresDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}
