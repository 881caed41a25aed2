package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/ordering"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Shipment, error) {
	var shipment ordering.Shipment
	if err := r.db.WithContext(ctx).
		First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindByOrderID finds the shipment created for an order
func (r *GormShipmentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*ordering.Shipment, error) {
	var shipment ordering.Shipment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&shipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindAll finds all shipments, newest first
func (r *GormShipmentRepository) FindAll(ctx context.Context) ([]ordering.Shipment, error) {
	var shipments []ordering.Shipment
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// FindByUser finds shipments belonging to a user, newest first
func (r *GormShipmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Shipment, error) {
	var shipments []ordering.Shipment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Save creates or updates a shipment. The unique index on order_id makes
// a second transfer of the same order surface as ErrAlreadyExists.
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *ordering.Shipment) error {
	if err := r.db.WithContext(ctx).Save(shipment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ ordering.ShipmentRepository = (*GormShipmentRepository)(nil)
