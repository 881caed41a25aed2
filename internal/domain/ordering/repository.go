package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	OrderNumberExists(ctx context.Context, orderNumber string) (bool, error)
	Save(ctx context.Context, order *Order) error

	// Delete hard-deletes the order row; used by the shipment transfer
	// and by the admin delete operation.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShipmentRepository defines persistence operations for shipments
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Shipment, error)
	FindAll(ctx context.Context) ([]Shipment, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Shipment, error)
	Save(ctx context.Context, shipment *Shipment) error
}
