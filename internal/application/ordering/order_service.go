package ordering

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/catalog"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/identity"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/ordering"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"go.uber.org/zap"
)

// orderNumberAttempts bounds the regeneration loop on number collisions
const orderNumberAttempts = 10

// OrderService handles order placement and queries
type OrderService struct {
	orders      ordering.OrderRepository
	users       identity.UserRepository
	products    catalog.ProductRepository
	adjuster    *InventoryAdjuster
	notifier    Notifier
	alertEmail  string
	frontendURL string
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders ordering.OrderRepository,
	users identity.UserRepository,
	products catalog.ProductRepository,
	adjuster *InventoryAdjuster,
	notifier Notifier,
	alertEmail string,
	frontendURL string,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		users:       users,
		products:    products,
		adjuster:    adjuster,
		notifier:    notifier,
		alertEmail:  alertEmail,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
		logger:      logger.Named("orders"),
	}
}

// Create places an order for the user. Explicit items take precedence;
// when none are given the user's cart is used and cleared afterwards.
// Stock is deducted before the order row is written.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	method := ordering.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD",
			fmt.Sprintf("Unknown payment method: %s", req.PaymentMethod))
	}
	if err := req.ShippingAddress.Validate(); err != nil {
		return nil, err
	}

	items, fromCart, err := s.resolveItems(ctx, user, req.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]AdjustmentLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, AdjustmentLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	products, err := s.adjuster.Reserve(ctx, lines)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.generateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := ordering.NewOrder(
		orderNumber,
		userID,
		items,
		req.ShippingAddress,
		method,
		req.BankTransferProof,
		ordering.SumItems(items),
	)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(
		s.alertEmail,
		"New Order Received",
		fmt.Sprintf("Evolexx Store\nNew Order Received\nA new order has been placed. Order ID: %s\n\nView Order: %s/admin/orders/%s",
			order.ID, s.frontendURL, order.ID),
	)
	s.notifier.Dispatch(
		order.ShippingAddress.Email,
		"Your Order Confirmation - Evolexx Store",
		fmt.Sprintf("Thank you for your order at Evolexx Store!\n\nYour order has been received. Order ID: %s\n\nWe will notify you when your order is shipped.\n\nIf you have an account, you can view your order here: %s/orders/%s",
			order.ID, s.frontendURL, order.ID),
	)

	if fromCart {
		user.ClearCart()
		if err := s.users.ReplaceCart(ctx, user); err != nil {
			// The order stands; an uncleared cart is recoverable
			s.logger.Error("Failed to clear cart after order placement",
				zap.String("user_id", userID.String()),
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.Bool("from_cart", fromCart))

	response := ToOrderResponse(order, s.userSnippet(user), products)
	return &response, nil
}

// resolveItems picks the order lines: explicit request items when
// present, the user's cart otherwise. Cart lines are priced from the
// current product price.
func (s *OrderService) resolveItems(ctx context.Context, user *identity.User, inputs []OrderItemInput) ([]ordering.OrderItem, bool, error) {
	if len(inputs) > 0 {
		items := make([]ordering.OrderItem, 0, len(inputs))
		for _, in := range inputs {
			if in.Quantity <= 0 {
				return nil, false, shared.NewDomainError("INVALID_QUANTITY", "Invalid product ID or quantity")
			}
			items = append(items, ordering.OrderItem{
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
				Price:     in.Price,
			})
		}
		return items, false, nil
	}

	if user.CartIsEmpty() {
		return nil, false, shared.NewDomainError("INVALID_ITEMS", "No order items found")
	}

	items := make([]ordering.OrderItem, 0, len(user.Cart))
	for _, line := range user.Cart {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, false, shared.NewDomainError("PRODUCT_NOT_FOUND",
					fmt.Sprintf("Product not found: %s", line.ProductID))
			}
			return nil, false, err
		}
		items = append(items, ordering.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}
	return items, true, nil
}

// generateOrderNumber produces ORD-YYYYMMDD-XXXXXX with a random hex
// suffix, regenerating on collision
func (s *OrderService) generateOrderNumber(ctx context.Context) (string, error) {
	for i := 0; i < orderNumberAttempts; i++ {
		suffix := make([]byte, 3)
		if _, err := rand.Read(suffix); err != nil {
			return "", err
		}
		number := fmt.Sprintf("ORD-%s-%s",
			time.Now().Format("20060102"),
			strings.ToUpper(hex.EncodeToString(suffix)))

		exists, err := s.orders.OrderNumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", shared.NewDomainError("ORDER_NUMBER_EXHAUSTED", "Could not generate a unique order number")
}

// GetByID retrieves an order. Non-admin callers may only read their own.
func (s *OrderService) GetByID(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
		}
		return nil, err
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, shared.NewDomainError("FORBIDDEN", "Not authorized to view this order")
	}
	return s.populate(ctx, order), nil
}

// List retrieves all orders, newest first
func (s *OrderService) List(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.populateAll(ctx, orders), nil
}

// ListMine retrieves the caller's orders, newest first
func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populateAll(ctx, orders), nil
}

// UpdatePaymentStatus changes the payment state of a pending order
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderResponse, error) {
	paymentStatus := ordering.PaymentStatus(status)
	if !paymentStatus.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_STATUS", "Invalid payment status")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
		}
		return nil, err
	}
	if err := order.SetPaymentStatus(paymentStatus); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return s.populate(ctx, order), nil
}

// Delete removes an order outright
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Order not found")
		}
		return err
	}
	s.logger.Info("Order deleted", zap.String("order_id", orderID.String()))
	return nil
}

// populate builds a response with owner and product snapshots attached
func (s *OrderService) populate(ctx context.Context, order *ordering.Order) *OrderResponse {
	var userSnippet *OrderUserResponse
	if user, err := s.users.FindByID(ctx, order.UserID); err == nil {
		userSnippet = s.userSnippet(user)
	}

	products := make(map[uuid.UUID]*catalog.Product, len(order.Items))
	for _, item := range order.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		if product, err := s.products.FindByID(ctx, item.ProductID); err == nil {
			products[item.ProductID] = product
		}
	}

	response := ToOrderResponse(order, userSnippet, products)
	return &response
}

func (s *OrderService) populateAll(ctx context.Context, orders []ordering.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *s.populate(ctx, &orders[i]))
	}
	return responses
}

func (s *OrderService) userSnippet(user *identity.User) *OrderUserResponse {
	return &OrderUserResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}
