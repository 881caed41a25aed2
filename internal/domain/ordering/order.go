package ordering

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusDeclined  OrderStatus = "declined"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusDenied    OrderStatus = "denied"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// IsValid checks if the status is a recognized OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusDeclined,
		OrderStatusApproved, OrderStatusDenied, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// TriggersShipmentTransfer reports whether the target status moves the
// order into the shipment queue. "approved" is kept only for backward
// compatibility and is treated like "accepted".
func (s OrderStatus) TriggersShipmentTransfer() bool {
	return s == OrderStatusAccepted || s == OrderStatusApproved
}

// PaymentMethod represents how the customer pays
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "cod"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// IsValid checks if the payment method is a recognized value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus represents the payment state, orthogonal to OrderStatus
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// IsValid checks if the payment status is a recognized value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// ShippingAddress is embedded in the order. Every field is required.
type ShippingAddress struct {
	FullName   string `gorm:"column:ship_full_name;type:varchar(100);not null" json:"fullName"`
	Email      string `gorm:"column:ship_email;type:varchar(255);not null" json:"email"`
	Address    string `gorm:"column:ship_address;type:varchar(255);not null" json:"address"`
	City       string `gorm:"column:ship_city;type:varchar(100);not null" json:"city"`
	PostalCode string `gorm:"column:ship_postal_code;type:varchar(20);not null" json:"postalCode"`
	Phone      string `gorm:"column:ship_phone;type:varchar(30);not null" json:"phone"`
}

// Validate returns a field-list error when any required field is missing
func (a ShippingAddress) Validate() error {
	var missing []string
	if a.FullName == "" {
		missing = append(missing, "fullName")
	}
	if a.Email == "" {
		missing = append(missing, "email")
	}
	if a.Address == "" {
		missing = append(missing, "address")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.PostalCode == "" {
		missing = append(missing, "postalCode")
	}
	if a.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return shared.NewDomainError("MISSING_ADDRESS_FIELDS",
			fmt.Sprintf("Missing required shipping address fields: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// IsZero reports whether no address field was supplied at all
func (a ShippingAddress) IsZero() bool {
	return a == ShippingAddress{}
}

// OrderItem is a line item with the unit price captured at order time
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Amount returns price * quantity for the line
func (i OrderItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a placed purchase awaiting fulfillment. Once
// accepted it is transferred into the shipment queue and hard-deleted;
// the Shipment row becomes the sole durable record.
type Order struct {
	shared.BaseEntity
	OrderNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress   ShippingAddress `gorm:"embedded"`
	PaymentMethod     PaymentMethod   `gorm:"type:varchar(20);not null"`
	BankTransferProof string          `gorm:"type:varchar(500)"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status            OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentStatus     PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order. The bank transfer proof is kept
// only when the payment method is bank_transfer; it is silently
// dropped otherwise.
func NewOrder(orderNumber string, userID uuid.UUID, items []OrderItem, address ShippingAddress, method PaymentMethod, proof string, totalPrice decimal.Decimal) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Order must belong to a user")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order must contain at least one item")
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method: %s", method))
	}
	if totalPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Total price cannot be negative")
	}

	order := &Order{
		BaseEntity:      shared.NewBaseEntity(),
		OrderNumber:     orderNumber,
		UserID:          userID,
		ShippingAddress: address,
		PaymentMethod:   method,
		TotalPrice:      totalPrice,
		Status:          OrderStatusPending,
		PaymentStatus:   PaymentStatusPending,
	}
	if method == PaymentMethodBankTransfer {
		order.BankTransferProof = proof
	}
	for _, item := range items {
		item.ID = uuid.New()
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}
	return order, nil
}

// SumItems computes the total of price * quantity over the given items
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount())
	}
	return total
}

// SetStatus performs an in-place status update. Transfer-triggering
// targets must go through the shipment service instead.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid status")
	}
	o.Status = status
	o.Touch()
	return nil
}

// SetPaymentStatus updates the orthogonal payment state
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Invalid payment status")
	}
	o.PaymentStatus = status
	o.Touch()
	return nil
}
