package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	orderingapp "github.com/rahmimuaz/Evolexxlk/internal/application/ordering"
)

// UploadHandler handles standalone file upload endpoints
type UploadHandler struct {
	BaseHandler
	proofService *orderingapp.ProofService
	authn        gin.HandlerFunc
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(proofService *orderingapp.ProofService, authn gin.HandlerFunc) *UploadHandler {
	return &UploadHandler{
		proofService: proofService,
		authn:        authn,
	}
}

// RegisterRoutes registers upload routes
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/uploads", h.authn)
	{
		group.POST("/proof", h.StoreProof)
	}
}

// StoreProof stores a bank transfer proof image and returns its URL
func (h *UploadHandler) StoreProof(c *gin.Context) {
	header, err := c.FormFile("proof")
	if err != nil {
		h.BadRequest(c, "Proof image is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	url, err := h.proofService.Store(c.Request.Context(), orderingapp.ProofUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"url": url})
}
