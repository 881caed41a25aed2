package ordering

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProofStorage records uploads in memory
type fakeProofStorage struct {
	objects map[string][]byte
	fail    bool
}

func newFakeProofStorage() *fakeProofStorage {
	return &fakeProofStorage{objects: make(map[string][]byte)}
}

func (s *fakeProofStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if s.fail {
		return errors.New("bucket unavailable")
	}
	s.objects[key] = data
	return nil
}

func (s *fakeProofStorage) PublicURL(key string) string {
	return "http://cdn.local/" + key
}

func TestProofService_Store(t *testing.T) {
	store := newFakeProofStorage()
	service := NewProofService(store, zap.NewNop())

	url, err := service.Store(context.Background(), ProofUpload{
		Filename:    "slip.JPG",
		ContentType: "image/jpeg",
		Data:        []byte("image-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://cdn.local/proofs/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))
	assert.Len(t, store.objects, 1)
}

func TestProofService_StoreEmpty(t *testing.T) {
	service := NewProofService(newFakeProofStorage(), zap.NewNop())

	_, err := service.Store(context.Background(), ProofUpload{Filename: "slip.jpg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Proof image is required")
}

func TestProofService_StoreTooLarge(t *testing.T) {
	service := NewProofService(newFakeProofStorage(), zap.NewNop())

	_, err := service.Store(context.Background(), ProofUpload{
		Filename: "slip.jpg",
		Data:     make([]byte, maxProofSize+1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds the 10MB size limit")
}

func TestProofService_StorageFailure(t *testing.T) {
	store := newFakeProofStorage()
	store.fail = true
	service := NewProofService(store, zap.NewNop())

	_, err := service.Store(context.Background(), ProofUpload{
		Filename: "slip.jpg",
		Data:     []byte("image-bytes"),
	})
	require.Error(t, err)
	assert.Empty(t, store.objects)
}
