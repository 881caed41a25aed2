package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users and their carts
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ReplaceCart persists the user's cart lines as a whole, removing
	// lines that are no longer present.
	ReplaceCart(ctx context.Context, user *User) error
}
