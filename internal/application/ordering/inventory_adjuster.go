package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/catalog"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"go.uber.org/zap"
)

// AdjustmentLine is a (product, quantity) pair to deduct from stock
type AdjustmentLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// InventoryAdjuster deducts stock for order lines. It validates every
// line against a stock snapshot before deducting any of them, then
// applies atomic per-line decrements and raises low-stock alerts.
type InventoryAdjuster struct {
	products   catalog.ProductRepository
	notifier   Notifier
	alertEmail string
	logger     *zap.Logger
}

// NewInventoryAdjuster creates an InventoryAdjuster
func NewInventoryAdjuster(products catalog.ProductRepository, notifier Notifier, alertEmail string, logger *zap.Logger) *InventoryAdjuster {
	return &InventoryAdjuster{
		products:   products,
		notifier:   notifier,
		alertEmail: alertEmail,
		logger:     logger.Named("inventory"),
	}
}

// Reserve checks and deducts stock for every line. The check phase
// rejects the whole order before anything is deducted; the deduction
// phase then decrements line by line with a non-negative guard, so a
// concurrent order can still fail a line mid-way. Deducted lines are
// not compensated on such a failure.
//
// Returns the products loaded during the check phase, keyed by ID.
func (a *InventoryAdjuster) Reserve(ctx context.Context, lines []AdjustmentLine) (map[uuid.UUID]*catalog.Product, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "No order items found")
	}

	products := make(map[uuid.UUID]*catalog.Product, len(lines))
	for _, line := range lines {
		product, err := a.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
					fmt.Sprintf("Product not found: %s", line.ProductID))
			}
			return nil, err
		}
		if !product.HasStock(line.Quantity) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for product: %s", product.Name))
		}
		products[line.ProductID] = product
	}

	for _, line := range lines {
		remaining, err := a.products.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			if errors.Is(err, shared.ErrInsufficientStock) {
				return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for product: %s", products[line.ProductID].Name))
			}
			return nil, err
		}
		products[line.ProductID].Stock = remaining

		if remaining > 0 && remaining < catalog.LowStockCeiling {
			a.notifier.Dispatch(
				a.alertEmail,
				"Low Stock Alert",
				fmt.Sprintf("Product %q is low on stock. Only %d left.", products[line.ProductID].Name, remaining),
			)
			a.logger.Warn("Product entered low stock band",
				zap.String("product_id", line.ProductID.String()),
				zap.String("product", products[line.ProductID].Name),
				zap.Int("stock", remaining))
		}
	}

	return products, nil
}
