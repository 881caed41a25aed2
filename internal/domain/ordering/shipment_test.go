package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipmentFromOrder(t *testing.T) {
	order, err := NewOrder("ORD-20250301-abc123", uuid.New(), testItems(), testAddress(),
		PaymentMethodBankTransfer, "proof.jpg", SumItems(testItems()))
	require.NoError(t, err)
	require.NoError(t, order.SetPaymentStatus(PaymentStatusCompleted))

	shipment, err := NewShipmentFromOrder(order, "Nimal Perera", "nimal@example.com")
	require.NoError(t, err)

	assert.Equal(t, order.ID, shipment.OrderID)
	assert.Equal(t, order.UserID, shipment.UserID)
	assert.Equal(t, "Nimal Perera", shipment.CustomerName)
	assert.Equal(t, "0771234567", shipment.MobileNumber)
	assert.Equal(t, "12 Galle Road", shipment.Address)
	assert.Equal(t, "Colombo", shipment.City)
	assert.Equal(t, "00300", shipment.PostalCode)
	assert.Equal(t, "ORD-20250301-abc123", shipment.OrderNumber)
	assert.True(t, shipment.TotalPrice.Equal(order.TotalPrice))
	assert.Equal(t, PaymentMethodBankTransfer, shipment.PaymentMethod)
	assert.Equal(t, PaymentStatusCompleted, shipment.PaymentStatus)
	assert.Equal(t, ShipmentStatusAccepted, shipment.Status)
}

func TestNewShipmentFromOrder_CustomerNameFallback(t *testing.T) {
	order, err := NewOrder("ORD-1", uuid.New(), testItems(), testAddress(),
		PaymentMethodCOD, "", SumItems(testItems()))
	require.NoError(t, err)

	shipment, err := NewShipmentFromOrder(order, "", "")
	require.NoError(t, err)
	assert.Equal(t, "N/A", shipment.CustomerName)
}

func TestNewShipmentFromOrder_IntegrityChecks(t *testing.T) {
	_, err := NewShipmentFromOrder(nil, "Nimal", "nimal@example.com")
	assert.Error(t, err)

	order, err := NewOrder("ORD-1", uuid.New(), testItems(), testAddress(),
		PaymentMethodCOD, "", SumItems(testItems()))
	require.NoError(t, err)
	order.ShippingAddress = ShippingAddress{}

	_, err = NewShipmentFromOrder(order, "Nimal", "nimal@example.com")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INTEGRITY", domainErr.Code)
}

func TestShipment_SetStatus(t *testing.T) {
	order, err := NewOrder("ORD-1", uuid.New(), testItems(), testAddress(),
		PaymentMethodCOD, "", SumItems(testItems()))
	require.NoError(t, err)
	shipment, err := NewShipmentFromOrder(order, "Nimal", "nimal@example.com")
	require.NoError(t, err)

	require.NoError(t, shipment.SetStatus(ShipmentStatusShipped))
	assert.Equal(t, ShipmentStatusShipped, shipment.Status)

	require.NoError(t, shipment.SetStatus(ShipmentStatusDelivered))
	assert.Error(t, shipment.SetStatus("returned"))
}
