package models

import "github.com/google/uuid"

// MenuItem represents a product on the menu (menu_items table)
type MenuItem struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	BasePrice  float64    `json:"basePrice"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
	IsActive   bool       `json:"isActive"`
}

// Size represents a size from sizes_master (e.g. "Normale", "Maxi")
type Size struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	PriceMultiplier float64   `json:"priceMultiplier"`
}

// SizeAssignment links a menu item to a size (menu_item_sizes table).
// PriceOverride, when set, replaces the base price entirely for that size.
type SizeAssignment struct {
	MenuItemID    uuid.UUID `json:"menuItemId"`
	SizeID        uuid.UUID `json:"sizeId"`
	Enabled       bool      `json:"enabled"`
	PriceOverride *float64  `json:"priceOverride,omitempty"`
}

// Ingredient represents an extra that can be added to a line
type Ingredient struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
}

// IngredientSizePrice is a size-specific price for an ingredient (ingredient_size_prices table)
type IngredientSizePrice struct {
	IngredientID uuid.UUID `json:"ingredientId"`
	SizeID       uuid.UUID `json:"sizeId"`
	Price        float64   `json:"price"`
}

// SizeAssignmentKey identifies a (product, size) pair
type SizeAssignmentKey struct {
	MenuItemID uuid.UUID
	SizeID     uuid.UUID
}

// IngredientSizeKey identifies an (ingredient, size) pair
type IngredientSizeKey struct {
	IngredientID uuid.UUID
	SizeID       uuid.UUID
}

// CatalogSnapshot is the read-only view of the catalog used for one pricing calculation.
// It is never mutated once built.
type CatalogSnapshot struct {
	MenuItems            map[uuid.UUID]MenuItem
	Sizes                map[uuid.UUID]Size
	SizeAssignments      map[SizeAssignmentKey]SizeAssignment
	Ingredients          map[uuid.UUID]Ingredient
	IngredientSizePrices map[IngredientSizeKey]float64
}

// NewCatalogSnapshot indexes catalog lists into a CatalogSnapshot
func NewCatalogSnapshot(items []MenuItem, sizes []Size, assignments []SizeAssignment, ingredients []Ingredient, sizePrices []IngredientSizePrice) *CatalogSnapshot {
	snapshot := &CatalogSnapshot{
		MenuItems:            make(map[uuid.UUID]MenuItem, len(items)),
		Sizes:                make(map[uuid.UUID]Size, len(sizes)),
		SizeAssignments:      make(map[SizeAssignmentKey]SizeAssignment, len(assignments)),
		Ingredients:          make(map[uuid.UUID]Ingredient, len(ingredients)),
		IngredientSizePrices: make(map[IngredientSizeKey]float64, len(sizePrices)),
	}
	for _, item := range items {
		snapshot.MenuItems[item.ID] = item
	}
	for _, size := range sizes {
		snapshot.Sizes[size.ID] = size
	}
	for _, a := range assignments {
		snapshot.SizeAssignments[SizeAssignmentKey{MenuItemID: a.MenuItemID, SizeID: a.SizeID}] = a
	}
	for _, ing := range ingredients {
		snapshot.Ingredients[ing.ID] = ing
	}
	for _, p := range sizePrices {
		snapshot.IngredientSizePrices[IngredientSizeKey{IngredientID: p.IngredientID, SizeID: p.SizeID}] = p.Price
	}
	return snapshot
}

// CatalogResponse represents the response for GET /admin/catalog
type CatalogResponse struct {
	MenuItems            []MenuItem            `json:"menuItems"`
	Sizes                []Size                `json:"sizes"`
	SizeAssignments      []SizeAssignment      `json:"sizeAssignments"`
	Ingredients          []Ingredient          `json:"ingredients"`
	IngredientSizePrices []IngredientSizePrice `json:"ingredientSizePrices"`
}
