package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlot_UnwrittenLoadsNil(t *testing.T) {
	slot := NewMemorySlot()

	data, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemorySlot_RoundTrip(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()

	require.NoError(t, slot.Store(ctx, []byte(`[{"id":"abc"}]`)))

	data, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"abc"}]`, string(data))
}

func TestFileSlot_MissingFileLoadsNil(t *testing.T) {
	slot := NewFileSlot(filepath.Join(t.TempDir(), "incidents.json"))

	data, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileSlot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "incidents.json")
	slot := NewFileSlot(path)
	ctx := context.Background()

	require.NoError(t, slot.Store(ctx, []byte(`[]`)))
	require.NoError(t, slot.Store(ctx, []byte(`[{"id":"abc"}]`)))

	data, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"abc"}]`, string(data))

	// No temp files left behind by the write-and-rename dance.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "incidents.json", entries[0].Name())
}
