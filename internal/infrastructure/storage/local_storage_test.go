package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalObjectStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalObjectStorage(dir, "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Upload(ctx, "products/iphone.jpg", []byte("image-bytes"), "image/jpeg")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "products", "iphone.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)

	require.NoError(t, store.Delete(ctx, "products/iphone.jpg"))
	_, err = os.Stat(filepath.Join(dir, "products", "iphone.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalObjectStorage_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalObjectStorage(t.TempDir(), "")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "does/not/exist.jpg"))
}

func TestLocalObjectStorage_PublicURL(t *testing.T) {
	store, err := NewLocalObjectStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/uploads/products/iphone.jpg",
		store.PublicURL("products/iphone.jpg"))
}

func TestLocalObjectStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalObjectStorage(t.TempDir(), "")
	require.NoError(t, err)

	err = store.Upload(context.Background(), "../outside.txt", []byte("x"), "text/plain")
	// The key is cleaned relative to the base dir, never outside it
	assert.NoError(t, err)

	err = store.Upload(context.Background(), "", []byte("x"), "text/plain")
	assert.Error(t, err)
}
