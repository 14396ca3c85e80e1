package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pizzeria-manager/models"
	"pizzeria-manager/pricing"
	"pizzeria-manager/repository"
)

var (
	// ErrEmptyOrder is returned when a checkout request carries no lines
	ErrEmptyOrder = errors.New("order has no items")
	// ErrInvalidOrderType is returned for an order type other than takeaway or delivery
	ErrInvalidOrderType = errors.New("invalid order type")
)

const (
	warningDegradedGeocoding = "delivery coordinates unavailable, flat delivery fee applied"
	warningOutOfRange        = "delivery address beyond the last delivery radius, out-of-range fee applied"
	warningPriceChanged      = "displayed prices differ from the calculated prices, calculated prices were used"
)

// CheckoutService prices carts against the current catalog and commits orders
type CheckoutService struct {
	catalogRepo  repository.CatalogRepositoryInterface
	settingsRepo repository.SettingsRepositoryInterface
	orderRepo    repository.OrderRepositoryInterface
	location     *time.Location // fallback when the organization has no valid time zone
	now          func() time.Time
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	catalogRepo repository.CatalogRepositoryInterface,
	settingsRepo repository.SettingsRepositoryInterface,
	orderRepo repository.OrderRepositoryInterface,
	location *time.Location,
) *CheckoutService {
	if location == nil {
		location = time.UTC
	}
	return &CheckoutService{
		catalogRepo:  catalogRepo,
		settingsRepo: settingsRepo,
		orderRepo:    orderRepo,
		location:     location,
		now:          time.Now,
	}
}

// pricingInputs is everything one pricing calculation reads
type pricingInputs struct {
	snapshot *models.CatalogSnapshot
	delivery models.DeliveryFeeConfig
	rules    models.BusinessRules
}

// loadInputs reads the catalog, delivery configuration and business rules concurrently
func (s *CheckoutService) loadInputs(ctx context.Context, organizationID uuid.UUID) (*pricingInputs, error) {
	var catalog *models.CatalogResponse
	var delivery *models.DeliveryFeeConfig
	var rules *models.BusinessRules

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.catalogRepo.GetCatalog(gctx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		delivery, err = s.settingsRepo.GetDeliveryConfig(gctx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = s.settingsRepo.GetBusinessRules(gctx, organizationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load pricing inputs: %w", err)
	}

	if catalog == nil {
		catalog = &models.CatalogResponse{}
	}
	inputs := &pricingInputs{
		snapshot: models.NewCatalogSnapshot(
			catalog.MenuItems,
			catalog.Sizes,
			catalog.SizeAssignments,
			catalog.Ingredients,
			catalog.IngredientSizePrices,
		),
	}
	if delivery != nil {
		inputs.delivery = *delivery
	}
	if rules != nil {
		inputs.rules = *rules
	}
	return inputs, nil
}

func validateRequest(req *models.CheckoutRequest) error {
	if req == nil || len(req.Items) == 0 {
		return ErrEmptyOrder
	}
	switch req.OrderType {
	case models.OrderTypeTakeaway, models.OrderTypeDelivery:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidOrderType, req.OrderType)
}

// price runs the calculator over the request and collects delivery warnings
func (s *CheckoutService) price(ctx context.Context, organizationID uuid.UUID, req *models.CheckoutRequest) (*pricingInputs, models.OrderTotal, []string, error) {
	if err := validateRequest(req); err != nil {
		return nil, models.OrderTotal{}, nil, err
	}

	inputs, err := s.loadInputs(ctx, organizationID)
	if err != nil {
		return nil, models.OrderTotal{}, nil, err
	}

	calculator := pricing.NewCalculator(inputs.snapshot, inputs.delivery)
	total, err := calculator.CalculateOrderTotal(req.TotalInput())
	if err != nil {
		log.Printf("❌ price: Error calculating order total: %v", err)
		return nil, models.OrderTotal{}, nil, err
	}

	return inputs, total, deliveryWarnings(total.Delivery), nil
}

func deliveryWarnings(quote models.DeliveryQuote) []string {
	warnings := []string{}
	if quote.Degraded {
		warnings = append(warnings, warningDegradedGeocoding)
	}
	if quote.OutOfRange {
		warnings = append(warnings, warningOutOfRange)
	}
	return warnings
}

// Quote prices a cart without persisting it
func (s *CheckoutService) Quote(ctx context.Context, organizationID uuid.UUID, req *models.CheckoutRequest) (*models.QuoteResponse, error) {
	_, total, warnings, err := s.price(ctx, organizationID, req)
	if err != nil {
		return nil, err
	}

	rounded := pricing.RoundTotal(total)
	lines := make([]models.QuoteLine, len(rounded.Lines))
	for i, line := range rounded.Lines {
		lines[i] = models.QuoteLine{
			Index:     i,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		}
	}

	log.Printf("💰 Quote: organization=%s lines=%d total=%s", organizationID, len(lines), rounded.Total.StringFixed(2))
	return &models.QuoteResponse{
		Lines:              lines,
		Subtotal:           rounded.Subtotal,
		DeliveryFee:        rounded.DeliveryFee,
		Total:              rounded.Total,
		DeliveryDistanceKm: total.Delivery.DistanceKm,
		Warnings:           warnings,
	}, nil
}

// Commit recomputes the cart, reconciles it with the displayed prices and persists the
// calculated amounts. Displayed prices never reach the stored order.
func (s *CheckoutService) Commit(ctx context.Context, organizationID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if req == nil {
		return nil, ErrEmptyOrder
	}
	log.Printf("📥 Commit: organization=%s type=%s lines=%d", organizationID, req.OrderType, len(req.Items))

	inputs, total, warnings, err := s.price(ctx, organizationID, req)
	if err != nil {
		return nil, err
	}

	displayed := make([]*float64, len(req.Items))
	for i, line := range req.Items {
		displayed[i] = line.DisplayedUnitPrice
	}
	discrepancies := pricing.Reconcile(displayed, req.DisplayedSubtotal, total)
	if len(discrepancies) > 0 {
		warnings = append(warnings, warningPriceChanged)
	} else {
		discrepancies = []models.PriceDiscrepancy{}
	}

	location := resolveLocation(inputs.rules.Timezone, s.location)
	order := buildOrder(organizationID, req, total, inputs.snapshot, s.now().In(location))

	saved, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	log.Printf("✅ Commit: order=%s number=%d total=%s discrepancies=%d", saved.ID, saved.OrderNumber, saved.Total.StringFixed(2), len(discrepancies))
	return &models.CheckoutResponse{
		Order:         saved,
		Discrepancies: discrepancies,
		Warnings:      warnings,
	}, nil
}

// buildOrder freezes the calculated amounts into an order record
func buildOrder(organizationID uuid.UUID, req *models.CheckoutRequest, total models.OrderTotal, snapshot *models.CatalogSnapshot, createdAt time.Time) *models.Order {
	rounded := pricing.RoundTotal(total)
	order := &models.Order{
		ID:              uuid.New(),
		OrganizationID:  organizationID,
		Status:          models.OrderStatusPending,
		OrderType:       req.OrderType,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		SlotTime:        req.SlotTime,
		Notes:           strings.TrimSpace(req.Notes),
		Subtotal:        rounded.Subtotal,
		DeliveryFee:     rounded.DeliveryFee,
		Total:           rounded.Total,
		CreatedAt:       createdAt,
		Lines:           make([]models.OrderLine, len(req.Items)),
	}
	if req.OrderType == models.OrderTypeDelivery {
		order.DeliveryLatitude = req.DeliveryLatitude
		order.DeliveryLongitude = req.DeliveryLongitude
	}

	for i, item := range req.Items {
		order.Lines[i] = models.OrderLine{
			ID:               uuid.New(),
			MenuItemID:       item.MenuItemID,
			SizeID:           item.SizeID,
			IsSplit:          item.IsSplit,
			SecondMenuItemID: item.SecondProductID,
			SecondSizeID:     item.SecondSizeID,
			DisplayName:      lineDisplayName(item, snapshot),
			Quantity:         item.Quantity,
			UnitPrice:        rounded.Lines[i].UnitPrice,
			Subtotal:         rounded.Lines[i].Subtotal,
			Ingredients:      lineIngredients(item.OrderItemInput, snapshot),
		}
	}
	return order
}

// lineDisplayName builds "Margherita (Maxi)" or "Margherita / Diavola" from the catalog,
// falling back to the name the panel sent
func lineDisplayName(item models.CheckoutLine, snapshot *models.CatalogSnapshot) string {
	first := productName(item.MenuItemID, item.SizeID, snapshot)
	if first == "" {
		return item.DisplayName
	}
	if !item.IsSplit || item.SecondProductID == nil {
		return first
	}
	second := productName(*item.SecondProductID, item.SecondSizeID, snapshot)
	if second == "" {
		return first
	}
	return first + " / " + second
}

func productName(menuItemID uuid.UUID, sizeID *uuid.UUID, snapshot *models.CatalogSnapshot) string {
	product, ok := snapshot.MenuItems[menuItemID]
	if !ok {
		return ""
	}
	if sizeID == nil {
		return product.Name
	}
	if size, ok := snapshot.Sizes[*sizeID]; ok && size.Name != "" {
		return fmt.Sprintf("%s (%s)", product.Name, size.Name)
	}
	return product.Name
}

// lineIngredients stores every ingredient with an explicit half
func lineIngredients(item models.OrderItemInput, snapshot *models.CatalogSnapshot) []models.OrderLineIngredient {
	ingredients := make([]models.OrderLineIngredient, 0, len(item.AddedIngredients)+len(item.SecondAddedIngredients))

	add := func(selection models.IngredientSelection, half models.Half) {
		ingredients = append(ingredients, models.OrderLineIngredient{
			IngredientID: selection.IngredientID,
			Name:         snapshot.Ingredients[selection.IngredientID].Name,
			Quantity:     selection.Quantity,
			Half:         half,
		})
	}

	for _, selection := range item.AddedIngredients {
		switch {
		case !item.IsSplit:
			add(selection, models.HalfWhole)
		case selection.Half == models.HalfSecond:
			add(selection, models.HalfSecond)
		default:
			add(selection, models.HalfFirst)
		}
	}
	for _, selection := range item.SecondAddedIngredients {
		add(selection, models.HalfSecond)
	}
	return ingredients
}

// resolveLocation loads an IANA time zone, falling back when it is empty or unknown
func resolveLocation(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("⚠️  resolveLocation: unknown time zone %q, using %s", name, fallback)
		return fallback
	}
	return location
}
