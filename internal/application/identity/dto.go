package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents a password login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries the Google ID token posted by the client
type GoogleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

// AuthResponse is returned by register, login and google login
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// CartItemRequest adds a product to the cart
type CartItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CartQuantityRequest replaces the quantity of a cart line
type CartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartProduct is the product snapshot embedded in a cart line
type CartProduct struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	Image         string           `json:"image,omitempty"`
	Stock         int              `json:"stock"`
}

// CartLineResponse represents one cart line with its product populated
type CartLineResponse struct {
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

// CartResponse represents the user's cart in API responses
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
}

// ToUserResponse maps a user to its API representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}
