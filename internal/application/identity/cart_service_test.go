package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/catalog"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/identity"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCartServiceFixture(t *testing.T) (*CartService, *MockUserRepository, *MockProductRepository) {
	t.Helper()
	users := new(MockUserRepository)
	products := new(MockProductRepository)
	service := NewCartService(users, products, zap.NewNop())
	return service, users, products
}

func cartTestProduct(t *testing.T, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("USB-C Cable", catalog.CategoryMobileAccessories,
		decimal.NewFromInt(2500), "Braided 1m cable",
		[]string{"http://cdn.local/products/cable.jpg"},
		map[string]string{
			"brand": "Anker", "type": "Cable", "compatibility": "USB-C",
			"color": "Black", "material": "Nylon",
		})
	require.NoError(t, err)
	require.NoError(t, product.SetStock(stock))
	return product
}

func cartTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Nimal Perera", "nimal@example.com", "secret123")
	require.NoError(t, err)
	return user
}

func TestCartService_Add(t *testing.T) {
	service, users, products := newCartServiceFixture(t)
	ctx := context.Background()

	user := cartTestUser(t)
	product := cartTestProduct(t, 10)

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	users.On("ReplaceCart", mock.Anything, user).Return(nil)

	cart, err := service.Add(ctx, user.ID, CartItemRequest{ProductID: product.ID, Quantity: 2})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "USB-C Cable", cart.Items[0].Product.Name)
	assert.Equal(t, "http://cdn.local/products/cable.jpg", cart.Items[0].Product.Image)

	// Adding the same product again merges lines
	cart, err = service.Add(ctx, user.ID, CartItemRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_Add_InsufficientStock(t *testing.T) {
	service, users, products := newCartServiceFixture(t)

	user := cartTestUser(t)
	product := cartTestProduct(t, 3)
	require.NoError(t, user.AddToCart(product.ID, 2))

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	// 2 already in the cart plus 2 more exceeds the 3 in stock
	_, err := service.Add(context.Background(), user.ID, CartItemRequest{ProductID: product.ID, Quantity: 2})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	users.AssertNotCalled(t, "ReplaceCart", mock.Anything, mock.Anything)
}

func TestCartService_Add_ProductNotFound(t *testing.T) {
	service, users, products := newCartServiceFixture(t)

	user := cartTestUser(t)
	missing := uuid.New()
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	_, err := service.Add(context.Background(), user.ID, CartItemRequest{ProductID: missing, Quantity: 1})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Product not found", domainErr.Message)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	service, users, products := newCartServiceFixture(t)

	user := cartTestUser(t)
	product := cartTestProduct(t, 10)
	require.NoError(t, user.AddToCart(product.ID, 1))

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	users.On("ReplaceCart", mock.Anything, user).Return(nil)

	cart, err := service.UpdateQuantity(context.Background(), user.ID, product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	_, err = service.UpdateQuantity(context.Background(), user.ID, uuid.New(), 1)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Product not found", domainErr.Message)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	service, users, products := newCartServiceFixture(t)
	ctx := context.Background()

	user := cartTestUser(t)
	product := cartTestProduct(t, 10)
	other := cartTestProduct(t, 10)
	require.NoError(t, user.AddToCart(product.ID, 1))
	require.NoError(t, user.AddToCart(other.ID, 2))

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, other.ID).Return(other, nil)
	users.On("ReplaceCart", mock.Anything, user).Return(nil)

	cart, err := service.Remove(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, other.ID, cart.Items[0].Product.ID)

	cart, err = service.Clear(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, user.CartIsEmpty())
}

func TestCartService_Get_SkipsDeletedProducts(t *testing.T) {
	service, users, products := newCartServiceFixture(t)

	user := cartTestUser(t)
	product := cartTestProduct(t, 10)
	deleted := uuid.New()
	require.NoError(t, user.AddToCart(product.ID, 1))
	require.NoError(t, user.AddToCart(deleted, 1))

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("FindByID", mock.Anything, deleted).Return(nil, shared.ErrNotFound)

	cart, err := service.Get(context.Background(), user.ID)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].Product.ID)
}
