package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// CartItem is a (product, quantity) pair staged in a user's cart
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:1" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:2" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// User represents a storefront account. The cart is a mutable
// sub-resource cleared when an order is placed from it.
type User struct {
	shared.BaseEntity
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	IsAdmin      bool       `gorm:"not null;default:false"`
	GoogleID     string     `gorm:"type:varchar(255)"`
	Cart         []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(name, email, password string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name, email and password are required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}, nil
}

// MatchPassword reports whether the candidate password matches the stored hash
func (u *User) MatchPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// LinkGoogleAccount records the Google subject identifier
func (u *User) LinkGoogleAccount(googleID string) {
	u.GoogleID = googleID
	u.Touch()
}

// AddToCart adds quantity of a product, merging with an existing line
func (u *User) AddToCart(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Invalid product ID or quantity")
	}
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			u.Cart[i].Quantity += quantity
			u.Cart[i].UpdatedAt = time.Now()
			u.Touch()
			return nil
		}
	}
	now := time.Now()
	u.Cart = append(u.Cart, CartItem{
		ID:        uuid.New(),
		UserID:    u.ID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	u.Touch()
	return nil
}

// UpdateCartQuantity replaces the quantity of an existing cart line
func (u *User) UpdateCartQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			u.Cart[i].Quantity = quantity
			u.Cart[i].UpdatedAt = time.Now()
			u.Touch()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Product not found in cart")
}

// RemoveFromCart drops a product's cart line
func (u *User) RemoveFromCart(productID uuid.UUID) error {
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
			u.Touch()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Product not found in cart")
}

// ClearCart empties the cart
func (u *User) ClearCart() {
	u.Cart = nil
	u.Touch()
}

// CartIsEmpty reports whether the cart has no lines
func (u *User) CartIsEmpty() bool {
	return len(u.Cart) == 0
}
