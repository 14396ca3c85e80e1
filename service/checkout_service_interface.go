package service

import (
	"context"

	"github.com/google/uuid"

	"pizzeria-manager/models"
)

// CheckoutServiceInterface defines the contract for pricing and committing orders
type CheckoutServiceInterface interface {
	Quote(ctx context.Context, organizationID uuid.UUID, req *models.CheckoutRequest) (*models.QuoteResponse, error)
	Commit(ctx context.Context, organizationID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

// Ensure CheckoutService implements CheckoutServiceInterface
var _ CheckoutServiceInterface = (*CheckoutService)(nil)
