package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pizzeria-manager/models"
)

// ErrOrderNotFound is returned when an order does not exist for the organization
var ErrOrderNotFound = errors.New("order not found")

// ErrInvalidStatusTransition is returned when the order lifecycle does not allow a status change
var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// CatalogRepositoryInterface defines the contract for reading the catalog
type CatalogRepositoryInterface interface {
	GetCatalog(ctx context.Context, organizationID uuid.UUID) (*models.CatalogResponse, error)
}

// SettingsRepositoryInterface defines the contract for per-organization settings
type SettingsRepositoryInterface interface {
	GetDeliveryConfig(ctx context.Context, organizationID uuid.UUID) (*models.DeliveryFeeConfig, error)
	GetBusinessRules(ctx context.Context, organizationID uuid.UUID) (*models.BusinessRules, error)
}

// OrderRepositoryInterface defines the contract for order persistence
type OrderRepositoryInterface interface {
	// Create stores the order and its lines in one transaction and assigns the daily order number
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, organizationID uuid.UUID, orderID uuid.UUID) (*models.Order, error)
	// ListActive returns non-terminal orders booked (or, without a slot, created) in [from, to)
	ListActive(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]models.ActiveOrder, error)
	// UpdateStatus moves an order along its lifecycle, locking the row while checking the transition
	UpdateStatus(ctx context.Context, organizationID uuid.UUID, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error)
}
