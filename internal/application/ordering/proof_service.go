package ordering

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"go.uber.org/zap"
)

// proofPrefix is the storage key prefix for bank transfer proofs
const proofPrefix = "proofs"

// maxProofSize bounds an uploaded proof image
const maxProofSize = 10 << 20 // 10 MiB

// ProofStorage stores bank transfer proof images
type ProofStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	PublicURL(storageKey string) string
}

// ProofUpload is an uploaded bank transfer proof image
type ProofUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProofService stores bank transfer proofs ahead of order creation.
// The returned URL is what the client passes as bankTransferProof.
type ProofService struct {
	storage ProofStorage
	logger  *zap.Logger
}

// NewProofService creates a new ProofService
func NewProofService(storage ProofStorage, logger *zap.Logger) *ProofService {
	return &ProofService{
		storage: storage,
		logger:  logger.Named("proofs"),
	}
}

// Store uploads the proof under a fresh key and returns its public URL
func (s *ProofService) Store(ctx context.Context, upload ProofUpload) (string, error) {
	if len(upload.Data) == 0 {
		return "", shared.NewDomainError("INVALID_PROOF", "Proof image is required")
	}
	if len(upload.Data) > maxProofSize {
		return "", shared.NewDomainError("INVALID_PROOF", "Proof image exceeds the 10MB size limit")
	}

	ext := strings.ToLower(path.Ext(upload.Filename))
	key := fmt.Sprintf("%s/%s%s", proofPrefix, uuid.New(), ext)
	if err := s.storage.Upload(ctx, key, upload.Data, upload.ContentType); err != nil {
		return "", fmt.Errorf("failed to store proof image: %w", err)
	}

	url := s.storage.PublicURL(key)
	s.logger.Info("proof stored", zap.String("key", key))
	return url, nil
}
