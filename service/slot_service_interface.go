package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pizzeria-manager/models"
)

// SlotServiceInterface defines the contract for the slot board and the live order feed.
// date is YYYY-MM-DD in the shop time zone; empty means today.
type SlotServiceInterface interface {
	GetSlotBoard(ctx context.Context, organizationID uuid.UUID, date string, target *time.Time) (*models.SlotBoardResponse, error)
	ListActiveOrders(ctx context.Context, organizationID uuid.UUID, date string) (*models.ActiveOrderListResponse, error)
}

// Ensure SlotService implements SlotServiceInterface
var _ SlotServiceInterface = (*SlotService)(nil)
