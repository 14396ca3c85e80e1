package service

import (
	"context"

	"github.com/google/uuid"
)

// ReceiptServiceInterface defines the contract for order tickets
type ReceiptServiceInterface interface {
	RenderReceiptHTML(ctx context.Context, organizationID, orderID uuid.UUID) (string, error)
	GeneratePDF(ctx context.Context, organizationID, orderID uuid.UUID, archive bool) ([]byte, error)
}

// Ensure ReceiptService implements ReceiptServiceInterface
var _ ReceiptServiceInterface = (*ReceiptService)(nil)
