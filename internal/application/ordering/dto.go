package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/catalog"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to place an order. Items may
// be omitted, in which case the user's cart is used as the source.
type CreateOrderRequest struct {
	Items             []OrderItemInput         `json:"orderItems"`
	ShippingAddress   ordering.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod     string                   `json:"paymentMethod" binding:"required"`
	BankTransferProof string                   `json:"bankTransferProof"`
}

// OrderItemInput represents an explicit order line in the create request
type OrderItemInput struct {
	ProductID uuid.UUID       `json:"product" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// UpdateOrderStatusRequest represents a status change request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest represents a payment status change request
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// UpdateShipmentStatusRequest represents a shipment status change request
type UpdateShipmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderUserResponse is the owner snippet embedded in order responses
type OrderUserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID       uuid.UUID             `json:"id"`
	Product  *OrderProductSnapshot `json:"product,omitempty"`
	Quantity int                   `json:"quantity"`
	Price    decimal.Decimal       `json:"price"`
}

// OrderProductSnapshot is the product snippet embedded in order lines
type OrderProductSnapshot struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Images []string        `json:"images"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID                `json:"id"`
	OrderNumber       string                   `json:"orderNumber"`
	User              *OrderUserResponse       `json:"user,omitempty"`
	Items             []OrderItemResponse      `json:"orderItems"`
	ShippingAddress   ordering.ShippingAddress `json:"shippingAddress"`
	PaymentMethod     string                   `json:"paymentMethod"`
	BankTransferProof string                   `json:"bankTransferProof,omitempty"`
	TotalPrice        decimal.Decimal          `json:"totalPrice"`
	Status            string                   `json:"status"`
	PaymentStatus     string                   `json:"paymentStatus"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

// ShipmentResponse represents a queued shipment in API responses
type ShipmentResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"orderId"`
	CustomerName  string          `json:"customerName"`
	MobileNumber  string          `json:"mobileNumber"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	PostalCode    string          `json:"postalCode"`
	Email         string          `json:"email"`
	OrderNumber   string          `json:"orderNumber"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// StatusUpdateResult is the outcome of an order status change. When the
// target status moved the order into the shipment queue, Transferred is
// true and Shipment carries the new entry; otherwise Order carries the
// updated order.
type StatusUpdateResult struct {
	Transferred bool              `json:"-"`
	Message     string            `json:"message,omitempty"`
	Shipment    *ShipmentResponse `json:"toBeShippedEntry,omitempty"`
	Order       *OrderResponse    `json:"order,omitempty"`
}

// ToOrderResponse maps an order to its API representation. products may
// be nil when line snapshots are not available.
func ToOrderResponse(order *ordering.Order, user *OrderUserResponse, products map[uuid.UUID]*catalog.Product) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		line := OrderItemResponse{
			ID:       item.ID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
		if product, ok := products[item.ProductID]; ok && product != nil {
			line.Product = &OrderProductSnapshot{
				ID:     product.ID,
				Name:   product.Name,
				Price:  product.Price,
				Images: product.Images,
			}
		} else {
			line.Product = &OrderProductSnapshot{ID: item.ProductID}
		}
		items = append(items, line)
	}

	return OrderResponse{
		ID:                order.ID,
		OrderNumber:       order.OrderNumber,
		User:              user,
		Items:             items,
		ShippingAddress:   order.ShippingAddress,
		PaymentMethod:     order.PaymentMethod.String(),
		BankTransferProof: order.BankTransferProof,
		TotalPrice:        order.TotalPrice,
		Status:            order.Status.String(),
		PaymentStatus:     order.PaymentStatus.String(),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

// ToShipmentResponse maps a shipment to its API representation
func ToShipmentResponse(shipment *ordering.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:            shipment.ID,
		OrderID:       shipment.OrderID,
		CustomerName:  shipment.CustomerName,
		MobileNumber:  shipment.MobileNumber,
		Address:       shipment.Address,
		City:          shipment.City,
		PostalCode:    shipment.PostalCode,
		Email:         shipment.Email,
		OrderNumber:   shipment.OrderNumber,
		TotalPrice:    shipment.TotalPrice,
		PaymentMethod: shipment.PaymentMethod.String(),
		PaymentStatus: shipment.PaymentStatus.String(),
		Status:        shipment.Status.String(),
		CreatedAt:     shipment.CreatedAt,
	}
}

// ToShipmentResponses maps a shipment slice to API representations
func ToShipmentResponses(shipments []ordering.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		out = append(out, ToShipmentResponse(&shipments[i]))
	}
	return out
}
