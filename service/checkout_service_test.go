package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria-manager/models"
	"pizzeria-manager/pricing"
)

func newCheckoutFixture(delivery *models.DeliveryFeeConfig) (*CheckoutService, testCatalog, *fakeOrderRepo) {
	catalog := newTestCatalog()
	orders := newFakeOrderRepo()
	settings := &fakeSettingsRepo{
		delivery: delivery,
		rules:    &models.BusinessRules{Timezone: "Europe/Rome"},
	}
	svc := NewCheckoutService(&fakeCatalogRepo{catalog: catalog.response}, settings, orders, time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 17, 45, 0, 0, time.UTC) }
	return svc, catalog, orders
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Equal(t, expected, actual.StringFixed(2))
}

func TestCheckoutService_QuoteTakeaway(t *testing.T) {
	svc, c, orders := newCheckoutFixture(nil)

	quote, err := svc.Quote(context.Background(), uuid.New(), &models.CheckoutRequest{
		OrderType: models.OrderTypeTakeaway,
		Items: []models.CheckoutLine{{OrderItemInput: models.OrderItemInput{
			MenuItemID:       c.margherita,
			Quantity:         2,
			AddedIngredients: []models.IngredientSelection{{IngredientID: c.mozzarella, Quantity: 1}},
		}}},
	})
	require.NoError(t, err)

	require.Len(t, quote.Lines, 1)
	assertMoney(t, "9.00", quote.Lines[0].UnitPrice)
	assertMoney(t, "18.00", quote.Lines[0].Subtotal)
	assertMoney(t, "18.00", quote.Subtotal)
	assertMoney(t, "0.00", quote.DeliveryFee)
	assertMoney(t, "18.00", quote.Total)
	assert.Empty(t, quote.Warnings)
	assert.Empty(t, orders.orders, "a quote is never persisted")
}

func TestCheckoutService_QuoteDegradedDelivery(t *testing.T) {
	svc, c, _ := newCheckoutFixture(&models.DeliveryFeeConfig{
		FlatFee:         2.5,
		CalculationMode: models.CalculationModeRadial,
		RadialTiers:     []models.RadialTier{{MaxRadiusKm: 3, Fee: 1}},
		ShopLatitude:    ptr(45.07),
		ShopLongitude:   ptr(7.68),
	})

	quote, err := svc.Quote(context.Background(), uuid.New(), &models.CheckoutRequest{
		OrderType: models.OrderTypeDelivery,
		Items:     []models.CheckoutLine{{OrderItemInput: models.OrderItemInput{MenuItemID: c.diavola, Quantity: 1}}},
	})
	require.NoError(t, err)

	assertMoney(t, "2.50", quote.DeliveryFee)
	assertMoney(t, "13.50", quote.Total)
	assert.Equal(t, []string{warningDegradedGeocoding}, quote.Warnings)
	assert.Nil(t, quote.DeliveryDistanceKm)
}

func TestCheckoutService_CommitPersistsCalculatedAmounts(t *testing.T) {
	svc, c, orders := newCheckoutFixture(nil)
	org := uuid.New()
	slot := time.Date(2026, 10, 19, 18, 30, 0, 0, time.UTC)

	resp, err := svc.Commit(context.Background(), org, &models.CheckoutRequest{
		OrderType:    models.OrderTypeTakeaway,
		CustomerName: "  Mario Rossi ",
		SlotTime:     &slot,
		Items: []models.CheckoutLine{
			{
				OrderItemInput:     models.OrderItemInput{MenuItemID: c.margherita, SizeID: &c.maxi, Quantity: 1},
				DisplayName:        "stale name",
				DisplayedUnitPrice: ptr(12.0),
			},
			{
				OrderItemInput: models.OrderItemInput{
					MenuItemID:       c.margherita,
					Quantity:         2,
					IsSplit:          true,
					SecondProductID:  &c.diavola,
					AddedIngredients: []models.IngredientSelection{{IngredientID: c.mozzarella, Quantity: 1}},
				},
				DisplayedUnitPrice: ptr(9.5),
			},
		},
		DisplayedSubtotal: ptr(31.0),
	})
	require.NoError(t, err)

	order := resp.Order
	require.NotNil(t, order)
	assert.Equal(t, 1, order.OrderNumber)
	assert.Equal(t, org, order.OrganizationID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Mario Rossi", order.CustomerName)
	assert.Equal(t, &slot, order.SlotTime)
	assert.Equal(t, "Europe/Rome", order.CreatedAt.Location().String())

	require.Len(t, order.Lines, 2)
	assert.Equal(t, "Margherita (Maxi)", order.Lines[0].DisplayName)
	assertMoney(t, "12.00", order.Lines[0].UnitPrice)
	assert.Equal(t, "Margherita / Diavola", order.Lines[1].DisplayName)
	assertMoney(t, "10.00", order.Lines[1].UnitPrice)
	assertMoney(t, "20.00", order.Lines[1].Subtotal)
	assert.Equal(t, []models.OrderLineIngredient{
		{IngredientID: c.mozzarella, Name: "Mozzarella", Quantity: 1, Half: models.HalfFirst},
	}, order.Lines[1].Ingredients)

	assertMoney(t, "32.00", order.Subtotal)
	assertMoney(t, "32.00", order.Total)

	// Line 1 displayed 9.50 instead of 10.00, subtotal 31 instead of 32
	require.Len(t, resp.Discrepancies, 2)
	assert.Equal(t, "line", resp.Discrepancies[0].Scope)
	assert.Equal(t, 1, resp.Discrepancies[0].LineIndex)
	assert.Equal(t, "subtotal", resp.Discrepancies[1].Scope)
	assert.Contains(t, resp.Warnings, warningPriceChanged)

	assert.Same(t, order, orders.orders[order.ID])
}

func TestCheckoutService_CommitWithoutDiscrepancies(t *testing.T) {
	svc, c, _ := newCheckoutFixture(nil)

	resp, err := svc.Commit(context.Background(), uuid.New(), &models.CheckoutRequest{
		OrderType: models.OrderTypeTakeaway,
		Items: []models.CheckoutLine{{
			OrderItemInput:     models.OrderItemInput{MenuItemID: c.margherita, Quantity: 1},
			DisplayedUnitPrice: ptr(8.004),
		}},
		DisplayedSubtotal: ptr(8.0),
	})
	require.NoError(t, err)

	assert.NotNil(t, resp.Discrepancies)
	assert.Empty(t, resp.Discrepancies)
	assert.Empty(t, resp.Warnings)
}

func TestCheckoutService_CommitDeliveryKeepsCoordinates(t *testing.T) {
	svc, c, _ := newCheckoutFixture(&models.DeliveryFeeConfig{FlatFee: 3, CalculationMode: models.CalculationModeFlat})

	resp, err := svc.Commit(context.Background(), uuid.New(), &models.CheckoutRequest{
		OrderType:         models.OrderTypeDelivery,
		DeliveryAddress:   "Via Roma 1",
		DeliveryLatitude:  ptr(45.0),
		DeliveryLongitude: ptr(7.0),
		Items:             []models.CheckoutLine{{OrderItemInput: models.OrderItemInput{MenuItemID: c.margherita, Quantity: 1}}},
	})
	require.NoError(t, err)

	assertMoney(t, "3.00", resp.Order.DeliveryFee)
	assertMoney(t, "11.00", resp.Order.Total)
	assert.Equal(t, ptr(45.0), resp.Order.DeliveryLatitude)
	assert.Equal(t, "Via Roma 1", resp.Order.DeliveryAddress)
}

func TestCheckoutService_UnknownProduct(t *testing.T) {
	svc, _, orders := newCheckoutFixture(nil)
	missing := uuid.New()

	_, err := svc.Commit(context.Background(), uuid.New(), &models.CheckoutRequest{
		OrderType: models.OrderTypeTakeaway,
		Items:     []models.CheckoutLine{{OrderItemInput: models.OrderItemInput{MenuItemID: missing, Quantity: 1}}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pricing.ErrReferenceNotFound))

	var refErr *pricing.ReferenceNotFoundError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, missing, refErr.ID)
	assert.Empty(t, orders.orders)
}

func TestCheckoutService_Validation(t *testing.T) {
	svc, c, _ := newCheckoutFixture(nil)
	line := []models.CheckoutLine{{OrderItemInput: models.OrderItemInput{MenuItemID: c.margherita, Quantity: 1}}}

	tests := []struct {
		name     string
		req      *models.CheckoutRequest
		expected error
	}{
		{"nil request", nil, ErrEmptyOrder},
		{"no items", &models.CheckoutRequest{OrderType: models.OrderTypeTakeaway}, ErrEmptyOrder},
		{"unknown type", &models.CheckoutRequest{OrderType: "dine-in", Items: line}, ErrInvalidOrderType},
		{"zero quantity", &models.CheckoutRequest{
			OrderType: models.OrderTypeTakeaway,
			Items:     []models.CheckoutLine{{OrderItemInput: models.OrderItemInput{MenuItemID: c.margherita}}},
		}, pricing.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Commit(context.Background(), uuid.New(), tt.req)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestCheckoutService_RepositoryErrors(t *testing.T) {
	boom := errors.New("connection refused")
	c := newTestCatalog()

	svc := NewCheckoutService(&fakeCatalogRepo{err: boom}, &fakeSettingsRepo{}, newFakeOrderRepo(), nil)
	_, err := svc.Quote(context.Background(), uuid.New(), &models.CheckoutRequest{
		OrderType: models.OrderTypeTakeaway,
		Items:     []models.CheckoutLine{{OrderItemInput: models.OrderItemInput{MenuItemID: c.margherita, Quantity: 1}}},
	})
	assert.ErrorIs(t, err, boom)

	orders := newFakeOrderRepo()
	orders.err = boom
	svc = NewCheckoutService(&fakeCatalogRepo{catalog: c.response}, &fakeSettingsRepo{}, orders, nil)
	_, err = svc.Commit(context.Background(), uuid.New(), &models.CheckoutRequest{
		OrderType: models.OrderTypeTakeaway,
		Items:     []models.CheckoutLine{{OrderItemInput: models.OrderItemInput{MenuItemID: c.margherita, Quantity: 1}}},
	})
	assert.ErrorIs(t, err, boom)
}

func TestLineIngredients_ExplicitHalves(t *testing.T) {
	c := newTestCatalog()
	snapshot := models.NewCatalogSnapshot(c.response.MenuItems, c.response.Sizes, nil, c.response.Ingredients, nil)

	whole := lineIngredients(models.OrderItemInput{
		AddedIngredients: []models.IngredientSelection{{IngredientID: c.mozzarella, Quantity: 2}},
	}, snapshot)
	assert.Equal(t, models.HalfWhole, whole[0].Half)

	split := lineIngredients(models.OrderItemInput{
		IsSplit: true,
		AddedIngredients: []models.IngredientSelection{
			{IngredientID: c.mozzarella, Quantity: 1},
			{IngredientID: c.mozzarella, Quantity: 1, Half: models.HalfSecond},
		},
		SecondAddedIngredients: []models.IngredientSelection{{IngredientID: c.mozzarella, Quantity: 3}},
	}, snapshot)
	require.Len(t, split, 3)
	assert.Equal(t, models.HalfFirst, split[0].Half)
	assert.Equal(t, models.HalfSecond, split[1].Half)
	assert.Equal(t, models.HalfSecond, split[2].Half)
	assert.Equal(t, 3, split[2].Quantity)
}

func TestResolveLocation(t *testing.T) {
	assert.Equal(t, time.UTC, resolveLocation("", time.UTC))
	assert.Equal(t, time.UTC, resolveLocation("Mars/Olympus", time.UTC))
	assert.Equal(t, "Europe/Rome", resolveLocation("Europe/Rome", time.UTC).String())
}

func TestCheckoutService_StoredAmountsAddUpAtHalfCents(t *testing.T) {
	svc, c, _ := newCheckoutFixture(&models.DeliveryFeeConfig{
		FlatFee:         2.125,
		CalculationMode: models.CalculationModeFlat,
	})
	capricciosa, boscaiola, focaccia := uuid.New(), uuid.New(), uuid.New()
	c.response.MenuItems = append(c.response.MenuItems,
		models.MenuItem{ID: capricciosa, Name: "Capricciosa", BasePrice: 9.05, IsActive: true},
		models.MenuItem{ID: boscaiola, Name: "Boscaiola", BasePrice: 9.10, IsActive: true},
		models.MenuItem{ID: focaccia, Name: "Focaccia", BasePrice: 10.125, IsActive: true},
	)

	resp, err := svc.Commit(context.Background(), uuid.New(), &models.CheckoutRequest{
		OrderType: models.OrderTypeDelivery,
		Items: []models.CheckoutLine{
			{OrderItemInput: models.OrderItemInput{MenuItemID: capricciosa, Quantity: 3, IsSplit: true, SecondProductID: &boscaiola}},
			{OrderItemInput: models.OrderItemInput{MenuItemID: focaccia, Quantity: 1}},
		},
	})
	require.NoError(t, err)
	order := resp.Order

	subtotal := decimal.Zero
	for _, line := range order.Lines {
		assert.True(t, line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Equal(line.Subtotal),
			"line %s: %s x %d != %s", line.DisplayName, line.UnitPrice, line.Quantity, line.Subtotal)
		subtotal = subtotal.Add(line.Subtotal)
	}
	assertMoney(t, "10.13", order.Lines[1].UnitPrice)
	assertMoney(t, subtotal.StringFixed(2), order.Subtotal)
	assertMoney(t, "2.13", order.DeliveryFee)
	assertMoney(t, order.Subtotal.Add(order.DeliveryFee).StringFixed(2), order.Total)

	quote, err := svc.Quote(context.Background(), uuid.New(), &models.CheckoutRequest{
		OrderType: models.OrderTypeDelivery,
		Items:     []models.CheckoutLine{{OrderItemInput: models.OrderItemInput{MenuItemID: focaccia, Quantity: 1}}},
	})
	require.NoError(t, err)
	assertMoney(t, "10.13", quote.Subtotal)
	assertMoney(t, "2.13", quote.DeliveryFee)
	assertMoney(t, "12.26", quote.Total)
}
