package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clickfit/clickfit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndList(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.NewImageStore(dir, "/upload_images/")
	require.NoError(t, err)

	saved, err := store.Save("My Photo.PNG", "image/png", strings.NewReader("pngdata"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(saved.Filename, "images-"))
	assert.True(t, strings.HasSuffix(saved.Filename, ".png"), "extension should be lowercased: %s", saved.Filename)
	assert.Equal(t, "My Photo.PNG", saved.OriginalName)
	assert.Equal(t, "image/png", saved.MimeType)
	assert.EqualValues(t, len("pngdata"), saved.Size)
	assert.Equal(t, "/upload_images/"+saved.Filename, saved.URL, "trailing slash on base url must not double up")

	onDisk, err := os.ReadFile(filepath.Join(dir, saved.Filename))
	require.NoError(t, err)
	assert.Equal(t, "pngdata", string(onDisk))

	listed, err := store.List()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, saved.Filename, listed[0].Filename)
	assert.EqualValues(t, len("pngdata"), listed[0].Size)
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := storage.NewImageStore(t.TempDir(), "/upload_images")
	require.NoError(t, err)

	a, err := store.Save("same.jpg", "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)

	b, err := store.Save("same.jpg", "image/jpeg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Filename, b.Filename)
}

func TestListSkipsNonImages(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.NewImageStore(dir, "/upload_images")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shot.webp"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	listed, err := store.List()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "shot.webp", listed[0].Filename)
}

func TestNewImageStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := storage.NewImageStore(dir, "/upload_images")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
