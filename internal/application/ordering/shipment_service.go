package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/identity"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/ordering"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"go.uber.org/zap"
)

// ShipmentService handles order acceptance and the shipment queue.
// Accepting an order snapshots it into the shipments table and
// hard-deletes the order row; the shipment becomes the sole record.
type ShipmentService struct {
	orders    ordering.OrderRepository
	shipments ordering.ShipmentRepository
	users     identity.UserRepository
	logger    *zap.Logger
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	orders ordering.OrderRepository,
	shipments ordering.ShipmentRepository,
	users identity.UserRepository,
	logger *zap.Logger,
) *ShipmentService {
	return &ShipmentService{
		orders:    orders,
		shipments: shipments,
		users:     users,
		logger:    logger.Named("shipments"),
	}
}

// UpdateOrderStatus applies a status change to an order. Transfer
// statuses (accepted, and approved for backward compatibility) move the
// order into the shipment queue; every other status is updated in place.
func (s *ShipmentService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*StatusUpdateResult, error) {
	target := ordering.OrderStatus(status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid status")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
		}
		return nil, err
	}

	if target.TriggersShipmentTransfer() {
		return s.transfer(ctx, order, target)
	}

	if err := order.SetStatus(target); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order, nil, nil)
	return &StatusUpdateResult{Order: &response}, nil
}

// transfer moves an accepted order into the shipment queue. The unique
// index on the shipment's order reference makes the transfer idempotent:
// a second accept of the same order is rejected and changes nothing.
// The shipment insert and the order delete are two separate writes; a
// crash between them leaves both rows behind, and the duplicate check
// keeps the pair from ever doubling.
func (s *ShipmentService) transfer(ctx context.Context, order *ordering.Order, target ordering.OrderStatus) (*StatusUpdateResult, error) {
	if _, err := s.shipments.FindByOrderID(ctx, order.ID); err == nil {
		return nil, shared.NewDomainError("ALREADY_SHIPPED", "Order is already marked for shipment.")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// The snapshot needs a resolved owning user; an order whose owner
	// is gone cannot be transferred.
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INTEGRITY",
				"Order user or shipping address data missing for shipment transfer.")
		}
		return nil, err
	}

	shipment, err := ordering.NewShipmentFromOrder(order, user.Name, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.shipments.Save(ctx, shipment); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the race against a concurrent accept
			return nil, shared.NewDomainError("ALREADY_SHIPPED", "Order is already marked for shipment.")
		}
		return nil, err
	}

	if err := s.orders.Delete(ctx, order.ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Order transferred but could not be deleted",
			zap.String("order_id", order.ID.String()),
			zap.String("shipment_id", shipment.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order transferred to shipment queue",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("shipment_id", shipment.ID.String()),
		zap.String("target_status", target.String()))

	message := "Order accepted and moved to ToBeShipped collection."
	if target == ordering.OrderStatusApproved {
		message = "Order status updated to approved and moved to ToBeShipped collection."
	}

	response := ToShipmentResponse(shipment)
	return &StatusUpdateResult{
		Transferred: true,
		Message:     message,
		Shipment:    &response,
	}, nil
}

// ListShipments retrieves all queued shipments, newest first
func (s *ShipmentService) ListShipments(ctx context.Context) ([]ShipmentResponse, error) {
	shipments, err := s.shipments.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponses(shipments), nil
}

// ListMyShipments retrieves the caller's queued shipments, newest first
func (s *ShipmentService) ListMyShipments(ctx context.Context, userID uuid.UUID) ([]ShipmentResponse, error) {
	shipments, err := s.shipments.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponses(shipments), nil
}

// UpdateShipmentStatus advances a queued shipment (shipped, delivered)
func (s *ShipmentService) UpdateShipmentStatus(ctx context.Context, shipmentID uuid.UUID, status string) (*ShipmentResponse, error) {
	target := ordering.ShipmentStatus(status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid shipment status")
	}

	shipment, err := s.shipments.FindByID(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Shipment not found")
		}
		return nil, err
	}
	if err := shipment.SetStatus(target); err != nil {
		return nil, err
	}
	if err := s.shipments.Save(ctx, shipment); err != nil {
		return nil, err
	}

	response := ToShipmentResponse(shipment)
	return &response, nil
}
