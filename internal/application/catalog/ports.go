package catalog

import "context"

// ObjectStorageService abstracts object storage for product images and
// bank transfer proofs
type ObjectStorageService interface {
	// Upload stores data under storageKey with the given content type
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// Delete removes the object stored under storageKey
	Delete(ctx context.Context, storageKey string) error

	// PublicURL returns the URL the stored object is served from
	PublicURL(storageKey string) string
}
