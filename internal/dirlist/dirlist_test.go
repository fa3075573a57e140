// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dirlist

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mediaconv/internal/preset"
)

func setupDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("data"), 0o644))
	}
	return dir
}

func TestListing(t *testing.T) {
	dir := setupDir(t, "b.PNG", "a.jpg", "notes.txt", ".hidden.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755))

	l, err := New(dir, preset.DefaultExtensions(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "notes.txt"),
	}, l.Paths())
	assert.Equal(t, []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
	}, l.MediaPaths())
	assert.True(t, l.HasMedia())
}

func TestListingWithoutMedia(t *testing.T) {
	dir := setupDir(t, "notes.txt", "todo.md")
	l, err := New(dir, preset.DefaultExtensions(), nil)
	require.NoError(t, err)
	assert.False(t, l.HasMedia())
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), preset.DefaultExtensions(), nil)
	require.Error(t, err)
}

func TestMarkAndResolve(t *testing.T) {
	dir := setupDir(t, "a.jpg", "b.mp4")
	l, err := New(dir, preset.DefaultExtensions(), nil)
	require.NoError(t, err)

	require.NoError(t, l.Mark("b.mp4"))
	require.NoError(t, l.Mark(filepath.Join(dir, "a.jpg")))
	assert.Equal(t, []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.mp4")}, l.Marked())

	_, err = l.Resolve("missing.jpg")
	require.Error(t, err)

	// Marks on removed files are dropped on refresh.
	require.NoError(t, os.Remove(filepath.Join(dir, "b.mp4")))
	require.NoError(t, l.Refresh())
	assert.Equal(t, []string{filepath.Join(dir, "a.jpg")}, l.Marked())
}

func TestRedisplayPicksUpNewFiles(t *testing.T) {
	dir := setupDir(t, "pic.jpg")
	var out bytes.Buffer
	l, err := New(dir, preset.DefaultExtensions(), &out)
	require.NoError(t, err)
	require.NoError(t, l.Mark("pic.jpg"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pic.png"), []byte("png"), 0o644))
	require.NoError(t, l.Redisplay())

	assert.Contains(t, out.String(), "pic.png")
	assert.Contains(t, out.String(), "* m")
	assert.Len(t, l.MediaPaths(), 2)
}
