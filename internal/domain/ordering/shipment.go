package ordering

import (
	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShipmentStatus represents the fulfillment state of an accepted order
type ShipmentStatus string

const (
	ShipmentStatusAccepted  ShipmentStatus = "accepted"
	ShipmentStatusShipped   ShipmentStatus = "shipped"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// IsValid checks if the status is a recognized ShipmentStatus
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusAccepted, ShipmentStatusShipped, ShipmentStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of ShipmentStatus
func (s ShipmentStatus) String() string {
	return string(s)
}

// Shipment is the post-acceptance record of an order queued for
// physical shipment (the ToBeShipped collection). Contact and payment
// fields are snapshotted at transfer time, never live-joined; OrderID
// is a backward reference only and the order it names no longer
// exists after a successful transfer.
type Shipment struct {
	shared.BaseEntity
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"type:varchar(100);not null"`
	MobileNumber  string          `gorm:"type:varchar(30);not null"`
	Address       string          `gorm:"type:varchar(255);not null"`
	City          string          `gorm:"type:varchar(100)"`
	PostalCode    string          `gorm:"type:varchar(20)"`
	Email         string          `gorm:"type:varchar(255)"`
	OrderNumber   string          `gorm:"type:varchar(50);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	Status        ShipmentStatus  `gorm:"type:varchar(20);not null;default:'accepted'"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipmentFromOrder snapshots an order and its owning user into a
// shipment record. The customer name falls back to "N/A" when the
// user record carries no display name.
func NewShipmentFromOrder(order *Order, customerName, email string) (*Shipment, error) {
	if order == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order is required for shipment transfer")
	}
	if order.UserID == uuid.Nil || order.ShippingAddress.IsZero() {
		return nil, shared.NewDomainError("INTEGRITY", "Order user or shipping address data missing for shipment transfer.")
	}
	if customerName == "" {
		customerName = "N/A"
	}

	return &Shipment{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       order.ID,
		UserID:        order.UserID,
		CustomerName:  customerName,
		MobileNumber:  order.ShippingAddress.Phone,
		Address:       order.ShippingAddress.Address,
		City:          order.ShippingAddress.City,
		PostalCode:    order.ShippingAddress.PostalCode,
		Email:         email,
		OrderNumber:   order.OrderNumber,
		TotalPrice:    order.TotalPrice,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		Status:        ShipmentStatusAccepted,
	}, nil
}

// SetStatus updates the shipment fulfillment state
func (s *Shipment) SetStatus(status ShipmentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid shipment status")
	}
	s.Status = status
	s.Touch()
	return nil
}
