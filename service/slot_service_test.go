package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria-manager/models"
)

func newSlotFixture(t *testing.T, slotMinutes int) (*SlotService, *fakeOrderRepo, *time.Location) {
	t.Helper()
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	settings := &fakeSettingsRepo{rules: &models.BusinessRules{
		Hours: models.BusinessHours{
			time.Monday: {Open: "18:00", Close: "22:00"},
		},
		SlotMinutes: slotMinutes,
		Timezone:    "Europe/Rome",
	}}
	orders := newFakeOrderRepo()
	svc := NewSlotService(settings, orders, 15, time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, rome) }
	return svc, orders, rome
}

func TestSlotService_GetSlotBoard(t *testing.T) {
	svc, orders, rome := newSlotFixture(t, 30)
	org := uuid.New()

	// 16:30 UTC is 18:30 in Rome on this date
	booked := time.Date(2026, 10, 19, 16, 30, 0, 0, time.UTC)
	orders.active = []models.ActiveOrder{
		{ID: uuid.New(), Status: models.OrderStatusConfirmed, OrderType: models.OrderTypeDelivery, SlotTime: &booked, ItemCount: 3},
		{ID: uuid.New(), Status: models.OrderStatusPending, OrderType: models.OrderTypeTakeaway, SlotTime: &booked, ItemCount: 1},
	}

	board, err := svc.GetSlotBoard(context.Background(), org, "2026-10-19", nil)
	require.NoError(t, err)

	assert.Equal(t, "2026-10-19", board.Date)
	assert.Equal(t, 30, board.SlotMinutes)
	require.Len(t, board.Slots, 8)
	assert.Equal(t, "18:00", board.Slots[0].Label)
	assert.Equal(t, "21:30", board.Slots[7].Label)

	assert.Equal(t, "18:30", board.Slots[1].Label)
	assert.Equal(t, models.SlotStat{DeliveryOrders: 1, DeliveryItems: 3, TakeawayOrders: 1, TakeawayItems: 1}, board.Slots[1].SlotStat)
	assert.Equal(t, models.SlotStat{}, board.Slots[0].SlotStat)

	require.Len(t, orders.calls, 1)
	assert.True(t, orders.calls[0].from.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, rome)))
	assert.True(t, orders.calls[0].to.Equal(time.Date(2026, 10, 20, 0, 0, 0, 0, rome)))
}

func TestSlotService_GetSlotBoardTarget(t *testing.T) {
	svc, _, rome := newSlotFixture(t, 30)

	target := time.Date(2026, 10, 19, 22, 15, 0, 0, rome)
	board, err := svc.GetSlotBoard(context.Background(), uuid.New(), "2026-10-19", &target)
	require.NoError(t, err)
	require.Len(t, board.Slots, 9)
	assert.Equal(t, "22:15", board.Slots[8].Label)

	otherDay := target.AddDate(0, 0, 1)
	board, err = svc.GetSlotBoard(context.Background(), uuid.New(), "2026-10-19", &otherDay)
	require.NoError(t, err)
	assert.Len(t, board.Slots, 8)
}

func TestSlotService_DefaultGranularityAndToday(t *testing.T) {
	svc, _, _ := newSlotFixture(t, 0)

	board, err := svc.GetSlotBoard(context.Background(), uuid.New(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", board.Date)
	assert.Equal(t, 15, board.SlotMinutes)
	assert.Len(t, board.Slots, 16)
}

func TestSlotService_InvalidDate(t *testing.T) {
	svc, _, _ := newSlotFixture(t, 30)

	_, err := svc.GetSlotBoard(context.Background(), uuid.New(), "19/10/2026", nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.ListActiveOrders(context.Background(), uuid.New(), "2026-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSlotService_ListActiveOrders(t *testing.T) {
	svc, orders, rome := newSlotFixture(t, 30)
	orders.active = []models.ActiveOrder{{ID: uuid.New(), OrderNumber: 4, Status: models.OrderStatusPreparing}}

	resp, err := svc.ListActiveOrders(context.Background(), uuid.New(), "2026-10-20")
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 1)

	require.Len(t, orders.calls, 1)
	assert.True(t, orders.calls[0].from.Equal(time.Date(2026, 10, 20, 0, 0, 0, 0, rome)))
}
