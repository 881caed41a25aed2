package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/rahmimuaz/Evolexxlk/internal/application/identity"
)

// UserHandler handles admin account management endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
	authn       gin.HandlerFunc
	admin       gin.HandlerFunc
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService, authn, admin gin.HandlerFunc) *UserHandler {
	return &UserHandler{
		userService: userService,
		authn:       authn,
		admin:       admin,
	}
}

// RegisterRoutes registers admin user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/admin/users", h.authn, h.admin)
	{
		group.GET("", h.List)
		group.DELETE("/:id", h.Delete)
	}
}

// List returns every registered account
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// Delete removes an account
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "User deleted successfully"})
}
