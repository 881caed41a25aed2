package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/catalog"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProduct(t *testing.T, name string, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		name,
		catalog.CategoryMobileAccessories,
		decimal.NewFromInt(2500),
		"USB-C cable",
		[]string{"uploads/cable.jpg"},
		map[string]string{
			"brand": "Anker", "type": "Cable", "compatibility": "USB-C",
			"color": "Black", "material": "Nylon",
		},
	)
	require.NoError(t, err)
	require.NoError(t, product.SetStock(stock))
	return product
}

func TestInventoryAdjuster_Reserve(t *testing.T) {
	products := new(MockProductRepository)
	notifier := &recordingNotifier{}
	adjuster := NewInventoryAdjuster(products, notifier, "ops@example.com", zap.NewNop())

	productA := testProduct(t, "Cable A", 10)
	productB := testProduct(t, "Cable B", 8)

	products.On("FindByID", mock.Anything, productA.ID).Return(productA, nil)
	products.On("FindByID", mock.Anything, productB.ID).Return(productB, nil)
	products.On("DecrementStock", mock.Anything, productA.ID, 2).Return(8, nil)
	products.On("DecrementStock", mock.Anything, productB.ID, 1).Return(7, nil)

	loaded, err := adjuster.Reserve(context.Background(), []AdjustmentLine{
		{ProductID: productA.ID, Quantity: 2},
		{ProductID: productB.ID, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.Equal(t, 8, loaded[productA.ID].Stock)
	assert.Empty(t, notifier.all())
	products.AssertExpectations(t)
}

func TestInventoryAdjuster_Reserve_ProductNotFound(t *testing.T) {
	products := new(MockProductRepository)
	adjuster := NewInventoryAdjuster(products, &recordingNotifier{}, "ops@example.com", zap.NewNop())

	missingID := uuid.New()
	products.On("FindByID", mock.Anything, missingID).Return(nil, shared.ErrNotFound)

	_, err := adjuster.Reserve(context.Background(), []AdjustmentLine{
		{ProductID: missingID, Quantity: 1},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
	products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryAdjuster_Reserve_InsufficientStockRejectsWholeOrder(t *testing.T) {
	products := new(MockProductRepository)
	adjuster := NewInventoryAdjuster(products, &recordingNotifier{}, "ops@example.com", zap.NewNop())

	plenty := testProduct(t, "Cable A", 10)
	scarce := testProduct(t, "Cable B", 1)

	products.On("FindByID", mock.Anything, plenty.ID).Return(plenty, nil)
	products.On("FindByID", mock.Anything, scarce.ID).Return(scarce, nil)

	_, err := adjuster.Reserve(context.Background(), []AdjustmentLine{
		{ProductID: plenty.ID, Quantity: 2},
		{ProductID: scarce.ID, Quantity: 5},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Contains(t, domainErr.Message, "Cable B")

	// Nothing may be deducted when any line fails the check phase
	products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryAdjuster_Reserve_LowStockAlert(t *testing.T) {
	products := new(MockProductRepository)
	notifier := &recordingNotifier{}
	adjuster := NewInventoryAdjuster(products, notifier, "ops@example.com", zap.NewNop())

	product := testProduct(t, "iPhone 15 Pro", 5)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("DecrementStock", mock.Anything, product.ID, 2).Return(3, nil)

	_, err := adjuster.Reserve(context.Background(), []AdjustmentLine{
		{ProductID: product.ID, Quantity: 2},
	})
	require.NoError(t, err)

	sent := notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "ops@example.com", sent[0].to)
	assert.Equal(t, "Low Stock Alert", sent[0].subject)
	assert.Equal(t, `Product "iPhone 15 Pro" is low on stock. Only 3 left.`, sent[0].body)
}

func TestInventoryAdjuster_Reserve_NoAlertAtZeroStock(t *testing.T) {
	products := new(MockProductRepository)
	notifier := &recordingNotifier{}
	adjuster := NewInventoryAdjuster(products, notifier, "ops@example.com", zap.NewNop())

	product := testProduct(t, "iPhone 15 Pro", 2)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("DecrementStock", mock.Anything, product.ID, 2).Return(0, nil)

	_, err := adjuster.Reserve(context.Background(), []AdjustmentLine{
		{ProductID: product.ID, Quantity: 2},
	})
	require.NoError(t, err)

	// Zero stock is out of stock, not low stock
	assert.Empty(t, notifier.all())
}

func TestInventoryAdjuster_Reserve_RaceOnDecrement(t *testing.T) {
	products := new(MockProductRepository)
	adjuster := NewInventoryAdjuster(products, &recordingNotifier{}, "ops@example.com", zap.NewNop())

	product := testProduct(t, "iPhone 15 Pro", 3)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	// Snapshot said 3 in stock but a concurrent order drained it
	products.On("DecrementStock", mock.Anything, product.ID, 2).Return(0, shared.ErrInsufficientStock)

	_, err := adjuster.Reserve(context.Background(), []AdjustmentLine{
		{ProductID: product.ID, Quantity: 2},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
}

func TestInventoryAdjuster_Reserve_EmptyLines(t *testing.T) {
	adjuster := NewInventoryAdjuster(new(MockProductRepository), &recordingNotifier{}, "ops@example.com", zap.NewNop())

	_, err := adjuster.Reserve(context.Background(), nil)
	assert.Error(t, err)
}
