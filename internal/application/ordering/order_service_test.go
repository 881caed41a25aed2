package ordering

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/identity"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/ordering"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testShippingAddress() ordering.ShippingAddress {
	return ordering.ShippingAddress{
		FullName:   "Nimal Perera",
		Email:      "nimal@example.com",
		Address:    "42 Galle Road",
		City:       "Colombo",
		PostalCode: "00300",
		Phone:      "0771234567",
	}
}

func testUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Nimal Perera", "nimal@example.com", "secret123")
	require.NoError(t, err)
	return user
}

func newOrderServiceFixture(t *testing.T) (*OrderService, *MockOrderRepository, *MockUserRepository, *MockProductRepository, *recordingNotifier) {
	t.Helper()
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	products := new(MockProductRepository)
	notifier := &recordingNotifier{}
	adjuster := NewInventoryAdjuster(products, notifier, "ops@example.com", zap.NewNop())
	service := NewOrderService(orders, users, products, adjuster, notifier,
		"ops@example.com", "http://localhost:3000", zap.NewNop())
	return service, orders, users, products, notifier
}

func TestOrderService_Create_WithExplicitItems(t *testing.T) {
	service, orders, users, products, notifier := newOrderServiceFixture(t)
	ctx := context.Background()

	user := testUser(t)
	product := testProduct(t, "iPhone 15 Pro", 10)

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("DecrementStock", mock.Anything, product.ID, 2).Return(8, nil)
	orders.On("OrderNumberExists", mock.Anything, mock.Anything).Return(false, nil)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)

	resp, err := service.Create(ctx, user.ID, CreateOrderRequest{
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: 2, Price: decimal.NewFromInt(450000)},
		},
		ShippingAddress: testShippingAddress(),
		PaymentMethod:   "cod",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.OrderNumber, "ORD-"))
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(900000)))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "iPhone 15 Pro", resp.Items[0].Product.Name)

	// Explicit items leave the cart alone
	users.AssertNotCalled(t, "ReplaceCart", mock.Anything, mock.Anything)

	// Admin notification plus customer confirmation
	sent := notifier.all()
	require.Len(t, sent, 2)
	assert.Equal(t, "New Order Received", sent[0].subject)
	assert.Equal(t, "ops@example.com", sent[0].to)
	assert.Equal(t, "Your Order Confirmation - Evolexx Store", sent[1].subject)
	assert.Equal(t, "nimal@example.com", sent[1].to)
}

func TestOrderService_Create_FromCartClearsCart(t *testing.T) {
	service, orders, users, products, _ := newOrderServiceFixture(t)
	ctx := context.Background()

	product := testProduct(t, "iPhone 15 Pro", 10)
	user := testUser(t)
	require.NoError(t, user.AddToCart(product.ID, 3))

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("DecrementStock", mock.Anything, product.ID, 3).Return(7, nil)
	orders.On("OrderNumberExists", mock.Anything, mock.Anything).Return(false, nil)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)
	users.On("ReplaceCart", mock.Anything, user).Return(nil)

	resp, err := service.Create(ctx, user.ID, CreateOrderRequest{
		ShippingAddress: testShippingAddress(),
		PaymentMethod:   "card",
	})

	require.NoError(t, err)
	// Cart lines are priced from the product at order time
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(450000*3)))
	assert.True(t, user.CartIsEmpty())
	users.AssertCalled(t, "ReplaceCart", mock.Anything, user)
}

func TestOrderService_Create_EmptyCartAndNoItems(t *testing.T) {
	service, _, users, _, _ := newOrderServiceFixture(t)

	user := testUser(t)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err := service.Create(context.Background(), user.ID, CreateOrderRequest{
		ShippingAddress: testShippingAddress(),
		PaymentMethod:   "cod",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ITEMS", domainErr.Code)
}

func TestOrderService_Create_InsufficientStockLeavesNoOrder(t *testing.T) {
	service, orders, users, products, _ := newOrderServiceFixture(t)

	user := testUser(t)
	product := testProduct(t, "iPhone 15 Pro", 1)

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := service.Create(context.Background(), user.ID, CreateOrderRequest{
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: 5, Price: decimal.NewFromInt(450000)},
		},
		ShippingAddress: testShippingAddress(),
		PaymentMethod:   "cod",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Create_MissingAddressFields(t *testing.T) {
	service, _, users, _, _ := newOrderServiceFixture(t)

	user := testUser(t)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	address := testShippingAddress()
	address.City = ""
	address.Phone = ""

	_, err := service.Create(context.Background(), user.ID, CreateOrderRequest{
		Items: []OrderItemInput{
			{ProductID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(100)},
		},
		ShippingAddress: address,
		PaymentMethod:   "cod",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required shipping address fields: city, phone")
}

func TestOrderService_Create_BankTransferProofKeptOnlyForBankTransfer(t *testing.T) {
	service, orders, users, products, _ := newOrderServiceFixture(t)
	ctx := context.Background()

	user := testUser(t)
	product := testProduct(t, "iPhone 15 Pro", 10)

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("DecrementStock", mock.Anything, product.ID, 1).Return(9, nil)
	orders.On("OrderNumberExists", mock.Anything, mock.Anything).Return(false, nil)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)

	withProof, err := service.Create(ctx, user.ID, CreateOrderRequest{
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: 1, Price: decimal.NewFromInt(450000)},
		},
		ShippingAddress:   testShippingAddress(),
		PaymentMethod:     "bank_transfer",
		BankTransferProof: "uploads/proof.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "uploads/proof.jpg", withProof.BankTransferProof)

	withoutProof, err := service.Create(ctx, user.ID, CreateOrderRequest{
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: 1, Price: decimal.NewFromInt(450000)},
		},
		ShippingAddress:   testShippingAddress(),
		PaymentMethod:     "cod",
		BankTransferProof: "uploads/proof.jpg",
	})
	require.NoError(t, err)
	assert.Empty(t, withoutProof.BankTransferProof)
}

func TestOrderService_GetByID_OwnershipEnforced(t *testing.T) {
	service, orders, users, products, _ := newOrderServiceFixture(t)
	ctx := context.Background()

	owner := testUser(t)
	items := []ordering.OrderItem{{ProductID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(100)}}
	order, err := ordering.NewOrder("ORD-20260829-AAAAAA", owner.ID, items,
		testShippingAddress(), ordering.PaymentMethodCOD, "", ordering.SumItems(items))
	require.NoError(t, err)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	users.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
	products.On("FindByID", mock.Anything, items[0].ProductID).Return(nil, shared.ErrNotFound)

	// The owner can read it
	resp, err := service.GetByID(ctx, order.ID, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, resp.OrderNumber)

	// A stranger cannot
	_, err = service.GetByID(ctx, order.ID, uuid.New(), false)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	// An admin can
	_, err = service.GetByID(ctx, order.ID, uuid.New(), true)
	assert.NoError(t, err)
}

func TestOrderService_UpdatePaymentStatus(t *testing.T) {
	service, orders, users, products, _ := newOrderServiceFixture(t)
	ctx := context.Background()

	owner := testUser(t)
	items := []ordering.OrderItem{{ProductID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(100)}}
	order, err := ordering.NewOrder("ORD-20260829-BBBBBB", owner.ID, items,
		testShippingAddress(), ordering.PaymentMethodCard, "", ordering.SumItems(items))
	require.NoError(t, err)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orders.On("Save", mock.Anything, order).Return(nil)
	users.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
	products.On("FindByID", mock.Anything, items[0].ProductID).Return(nil, shared.ErrNotFound)

	resp, err := service.UpdatePaymentStatus(ctx, order.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.PaymentStatus)

	_, err = service.UpdatePaymentStatus(ctx, order.ID, "refunded")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Invalid payment status", domainErr.Message)
}

func TestOrderService_Delete_NotFound(t *testing.T) {
	service, orders, _, _, _ := newOrderServiceFixture(t)

	missing := uuid.New()
	orders.On("Delete", mock.Anything, missing).Return(shared.ErrNotFound)

	err := service.Delete(context.Background(), missing)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
