package local

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return s
}

func TestStorage_SaveAndOpen(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	path, err := s.Save(ctx, strings.NewReader("audio bytes"), "id-1", "Voice Note.MP3")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "id-1.mp3"), "extension is lowercased: %s", path)

	r, err := s.Open(ctx, path)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "audio bytes", string(data))
}

func TestStorage_SaveWithoutExtension(t *testing.T) {
	s := newTestStorage(t)

	path, err := s.Save(context.Background(), strings.NewReader("x"), "id-2", "noext")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "id-2.bin"), path)
}

func TestStorage_LocalPath(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	path, err := s.Save(ctx, strings.NewReader("x"), "id-3", "a.wav")
	require.NoError(t, err)

	localPath, cleanup, err := s.LocalPath(ctx, path)
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, path, localPath)

	// The blob must still exist after cleanup; disk storage owns no copies.
	cleanup()
	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStorage_DeleteAndExists(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	path, err := s.Save(ctx, strings.NewReader("x"), "id-4", "a.ogg")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, path))

	exists, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again is fine.
	assert.NoError(t, s.Delete(ctx, path))
}
