package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"pizzeria-manager/db"
	"pizzeria-manager/models"
)

// CatalogRepository handles database operations for the menu catalog
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// GetCatalog retrieves products, sizes, size assignments and ingredients of an organization.
// Inactive products are included so that lines referencing them still price.
func (r *CatalogRepository) GetCatalog(ctx context.Context, organizationID uuid.UUID) (*models.CatalogResponse, error) {
	log.Printf("🔍 GetCatalog: Fetching catalog for organization=%s", organizationID)

	catalog := &models.CatalogResponse{}
	var err error

	if catalog.MenuItems, err = r.getMenuItems(ctx, organizationID); err != nil {
		return nil, err
	}
	if catalog.Sizes, err = r.getSizes(ctx, organizationID); err != nil {
		return nil, err
	}
	if catalog.SizeAssignments, err = r.getSizeAssignments(ctx, organizationID); err != nil {
		return nil, err
	}
	if catalog.Ingredients, err = r.getIngredients(ctx, organizationID); err != nil {
		return nil, err
	}
	if catalog.IngredientSizePrices, err = r.getIngredientSizePrices(ctx, organizationID); err != nil {
		return nil, err
	}

	log.Printf("✓ GetCatalog: %d products, %d sizes, %d assignments, %d ingredients",
		len(catalog.MenuItems), len(catalog.Sizes), len(catalog.SizeAssignments), len(catalog.Ingredients))
	return catalog, nil
}

func (r *CatalogRepository) getMenuItems(ctx context.Context, organizationID uuid.UUID) ([]models.MenuItem, error) {
	query := `
		SELECT id, name, base_price::float8, category_id, is_active
		FROM menu_items
		WHERE organization_id = $1
		ORDER BY name ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, organizationID)
	if err != nil {
		log.Printf("❌ Error querying menu items: %v", err)
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		var categoryID uuid.NullUUID
		if err := rows.Scan(&item.ID, &item.Name, &item.BasePrice, &categoryID, &item.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		if categoryID.Valid {
			item.CategoryID = &categoryID.UUID
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}
	return items, nil
}

func (r *CatalogRepository) getSizes(ctx context.Context, organizationID uuid.UUID) ([]models.Size, error) {
	query := `
		SELECT id, name, price_multiplier::float8
		FROM sizes_master
		WHERE organization_id = $1
		ORDER BY price_multiplier ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, organizationID)
	if err != nil {
		log.Printf("❌ Error querying sizes: %v", err)
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}
	defer rows.Close()

	sizes := []models.Size{}
	for rows.Next() {
		var size models.Size
		if err := rows.Scan(&size.ID, &size.Name, &size.PriceMultiplier); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		sizes = append(sizes, size)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sizes: %w", err)
	}
	return sizes, nil
}

func (r *CatalogRepository) getSizeAssignments(ctx context.Context, organizationID uuid.UUID) ([]models.SizeAssignment, error) {
	query := `
		SELECT menu_item_id, size_id, enabled, price_override::float8
		FROM menu_item_sizes
		WHERE organization_id = $1
	`

	rows, err := db.DB.QueryContext(ctx, query, organizationID)
	if err != nil {
		log.Printf("❌ Error querying size assignments: %v", err)
		return nil, fmt.Errorf("failed to query size assignments: %w", err)
	}
	defer rows.Close()

	assignments := []models.SizeAssignment{}
	for rows.Next() {
		var a models.SizeAssignment
		var override sql.NullFloat64
		if err := rows.Scan(&a.MenuItemID, &a.SizeID, &a.Enabled, &override); err != nil {
			return nil, fmt.Errorf("failed to scan size assignment: %w", err)
		}
		if override.Valid {
			price := override.Float64
			a.PriceOverride = &price
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate size assignments: %w", err)
	}
	return assignments, nil
}

func (r *CatalogRepository) getIngredients(ctx context.Context, organizationID uuid.UUID) ([]models.Ingredient, error) {
	query := `
		SELECT id, name, price::float8
		FROM ingredients
		WHERE organization_id = $1
		ORDER BY name ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, organizationID)
	if err != nil {
		log.Printf("❌ Error querying ingredients: %v", err)
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []models.Ingredient{}
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *CatalogRepository) getIngredientSizePrices(ctx context.Context, organizationID uuid.UUID) ([]models.IngredientSizePrice, error) {
	query := `
		SELECT ingredient_id, size_id, price::float8
		FROM ingredient_size_prices
		WHERE organization_id = $1
	`

	rows, err := db.DB.QueryContext(ctx, query, organizationID)
	if err != nil {
		log.Printf("❌ Error querying ingredient size prices: %v", err)
		return nil, fmt.Errorf("failed to query ingredient size prices: %w", err)
	}
	defer rows.Close()

	prices := []models.IngredientSizePrice{}
	for rows.Next() {
		var p models.IngredientSizePrice
		if err := rows.Scan(&p.IngredientID, &p.SizeID, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient size price: %w", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredient size prices: %w", err)
	}
	return prices, nil
}
