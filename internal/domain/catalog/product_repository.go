package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, category Category, filter shared.Filter) ([]Product, error)
	SearchByName(ctx context.Context, query string) ([]Product, error)
	FindLowStock(ctx context.Context) ([]Product, error)
	FindOutOfStock(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically subtracts quantity from the product's
	// stock, guarded so the row can never go negative. It returns the
	// remaining stock, or ErrInsufficientStock when the guard fails.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (int, error)

	AddReview(ctx context.Context, review *Review) error
	FindReviews(ctx context.Context, productID uuid.UUID) ([]Review, error)
}
