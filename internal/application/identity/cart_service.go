package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/catalog"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/identity"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"go.uber.org/zap"
)

// CartService handles the user's shopping cart
type CartService struct {
	users    identity.UserRepository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(users identity.UserRepository, products catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		users:    users,
		products: products,
		logger:   logger.Named("cart"),
	}
}

// Get returns the cart with product snapshots populated
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, user), nil
}

// Add puts quantity of a product into the cart, merging with an
// existing line for the same product
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, req CartItemRequest) (*CartResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	requested := req.Quantity
	for _, line := range user.Cart {
		if line.ProductID == req.ProductID {
			requested += line.Quantity
		}
	}
	if !product.HasStock(requested) {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock")
	}

	if err := user.AddToCart(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.users.ReplaceCart(ctx, user); err != nil {
		return nil, err
	}
	return s.populate(ctx, user), nil
}

// UpdateQuantity replaces the quantity of an existing cart line
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	if !product.HasStock(quantity) {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock")
	}

	if err := user.UpdateCartQuantity(productID, quantity); err != nil {
		return nil, err
	}
	if err := s.users.ReplaceCart(ctx, user); err != nil {
		return nil, err
	}
	return s.populate(ctx, user), nil
}

// Remove drops a product's line from the cart
func (s *CartService) Remove(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.RemoveFromCart(productID); err != nil {
		return nil, err
	}
	if err := s.users.ReplaceCart(ctx, user); err != nil {
		return nil, err
	}
	return s.populate(ctx, user), nil
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.ClearCart()
	if err := s.users.ReplaceCart(ctx, user); err != nil {
		return nil, err
	}
	return &CartResponse{Items: []CartLineResponse{}}, nil
}

func (s *CartService) loadUser(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return nil, err
	}
	return user, nil
}

// populate resolves each cart line's product. Lines whose product has
// been deleted are left out of the response.
func (s *CartService) populate(ctx context.Context, user *identity.User) *CartResponse {
	items := make([]CartLineResponse, 0, len(user.Cart))
	for _, line := range user.Cart {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("Failed to populate cart line",
					zap.String("product_id", line.ProductID.String()),
					zap.Error(err))
			}
			continue
		}

		snapshot := CartProduct{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.Price,
			Stock: product.Stock,
		}
		if product.DiscountPrice.Valid {
			price := product.DiscountPrice.Decimal
			snapshot.DiscountPrice = &price
		}
		if len(product.Images) > 0 {
			snapshot.Image = product.Images[0]
		}

		items = append(items, CartLineResponse{
			Product:  snapshot,
			Quantity: line.Quantity,
		})
	}
	return &CartResponse{Items: items}
}
