package pricing

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"pizzeria-manager/models"
)

// Calculator prices order lines and whole orders against one catalog snapshot.
// It holds no mutable state; the same inputs always give the same result.
type Calculator struct {
	catalog  *models.CatalogSnapshot
	delivery models.DeliveryFeeConfig
}

// NewCalculator creates a Calculator for a catalog snapshot and delivery configuration
func NewCalculator(catalog *models.CatalogSnapshot, delivery models.DeliveryFeeConfig) *Calculator {
	if catalog == nil {
		catalog = models.NewCatalogSnapshot(nil, nil, nil, nil, nil)
	}
	return &Calculator{
		catalog:  catalog,
		delivery: delivery,
	}
}

// CalculateItemPrice computes the unit price and subtotal of one line.
// A split line is priced as the average of its two halves.
func (c *Calculator) CalculateItemPrice(item models.OrderItemInput) (models.CalculatedItemPrice, error) {
	if item.Quantity < 1 {
		return models.CalculatedItemPrice{}, fmt.Errorf("%w: line quantity %d", ErrInvalidQuantity, item.Quantity)
	}

	firstIngredients, secondIngredients, err := splitIngredients(item)
	if err != nil {
		return models.CalculatedItemPrice{}, err
	}

	unitPrice, err := c.halfPrice(item.MenuItemID, item.SizeID, firstIngredients)
	if err != nil {
		return models.CalculatedItemPrice{}, err
	}

	if item.IsSplit {
		if item.SecondProductID == nil {
			return models.CalculatedItemPrice{}, ErrMissingSecondProduct
		}
		secondPrice, err := c.halfPrice(*item.SecondProductID, item.SecondSizeID, secondIngredients)
		if err != nil {
			return models.CalculatedItemPrice{}, err
		}
		unitPrice = (unitPrice + secondPrice) / 2
	}

	return models.CalculatedItemPrice{
		UnitPrice: unitPrice,
		Quantity:  item.Quantity,
		Subtotal:  unitPrice * float64(item.Quantity),
	}, nil
}

// CalculateOrderTotal prices every line, then resolves the delivery fee on the aggregate subtotal
func (c *Calculator) CalculateOrderTotal(input models.OrderTotalInput) (models.OrderTotal, error) {
	total := models.OrderTotal{
		Lines: make([]models.CalculatedItemPrice, 0, len(input.Items)),
	}

	for i, item := range input.Items {
		price, err := c.CalculateItemPrice(item)
		if err != nil {
			return models.OrderTotal{}, fmt.Errorf("line %d: %w", i, err)
		}
		total.Lines = append(total.Lines, price)
		total.Subtotal += price.Subtotal
	}

	if input.OrderType == models.OrderTypeDelivery {
		total.Delivery = ResolveDeliveryFee(total.Subtotal, input.DeliveryLatitude, input.DeliveryLongitude, c.delivery)
		total.DeliveryFee = total.Delivery.Fee
	}

	total.Total = total.Subtotal + total.DeliveryFee
	return total, nil
}

// halfPrice resolves product/size price plus ingredient extras for one product
func (c *Calculator) halfPrice(productID uuid.UUID, sizeID *uuid.UUID, ingredients []models.IngredientSelection) (float64, error) {
	product, ok := c.catalog.MenuItems[productID]
	if !ok {
		return 0, &ReferenceNotFoundError{Kind: KindProduct, ID: productID}
	}

	price := product.BasePrice
	if sizeID != nil {
		size, ok := c.catalog.Sizes[*sizeID]
		if !ok {
			return 0, &ReferenceNotFoundError{Kind: KindSize, ID: *sizeID}
		}

		assignment, assigned := c.catalog.SizeAssignments[models.SizeAssignmentKey{MenuItemID: productID, SizeID: *sizeID}]
		switch {
		case assigned && !assignment.Enabled:
			return 0, fmt.Errorf("%w: size %s on product %s", ErrSizeUnavailable, size.Name, product.Name)
		case assigned && assignment.PriceOverride != nil:
			price = *assignment.PriceOverride
		default:
			multiplier := size.PriceMultiplier
			if multiplier <= 0 {
				log.Printf("⚠️  CalculateItemPrice: size %s has multiplier %v, using 1", size.Name, multiplier)
				multiplier = 1
			}
			price = product.BasePrice * multiplier
		}
	}

	for _, selection := range ingredients {
		if selection.Quantity < 1 {
			return 0, fmt.Errorf("%w: ingredient %s quantity %d", ErrInvalidQuantity, selection.IngredientID, selection.Quantity)
		}
		ingredient, ok := c.catalog.Ingredients[selection.IngredientID]
		if !ok {
			return 0, &ReferenceNotFoundError{Kind: KindIngredient, ID: selection.IngredientID}
		}
		unitPrice := ingredient.UnitPrice
		if sizeID != nil {
			if sized, ok := c.catalog.IngredientSizePrices[models.IngredientSizeKey{IngredientID: ingredient.ID, SizeID: *sizeID}]; ok {
				unitPrice = sized
			}
		}
		price += unitPrice * float64(selection.Quantity)
	}

	return price, nil
}

// splitIngredients routes ingredient selections to the half they belong to.
// On a split line, whole/first selections go to the first half and second selections,
// together with SecondAddedIngredients, go to the second half.
func splitIngredients(item models.OrderItemInput) (first, second []models.IngredientSelection, err error) {
	for _, selection := range item.AddedIngredients {
		switch selection.Half {
		case "", models.HalfWhole, models.HalfFirst:
			first = append(first, selection)
		case models.HalfSecond:
			if !item.IsSplit {
				return nil, nil, fmt.Errorf("%w: ingredient %s marked second on a non-split line", ErrInvalidHalf, selection.IngredientID)
			}
			second = append(second, selection)
		default:
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidHalf, selection.Half)
		}
	}

	if len(item.SecondAddedIngredients) > 0 && !item.IsSplit {
		return nil, nil, fmt.Errorf("%w: second half ingredients on a non-split line", ErrInvalidHalf)
	}
	second = append(second, item.SecondAddedIngredients...)
	return first, second, nil
}
