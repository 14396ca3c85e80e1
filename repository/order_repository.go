package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"pizzeria-manager/db"
	"pizzeria-manager/models"
)

// OrderRepository handles database operations for committed orders
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// Create persists an order and its lines, assigning the next daily order number.
// All operations are performed atomically in a single transaction
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	log.Printf("📥 Create: Persisting order id=%s organization=%s lines=%d", order.ID, order.OrganizationID, len(order.Lines))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Create: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Daily counter is keyed on the shop-local calendar day of CreatedAt
	queryCounter := `
		INSERT INTO daily_order_counters (organization_id, day, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (organization_id, day)
		DO UPDATE SET last_number = daily_order_counters.last_number + 1
		RETURNING last_number
	`
	day := order.CreatedAt.Format("2006-01-02")
	if err := tx.QueryRowContext(ctx, queryCounter, order.OrganizationID, day).Scan(&order.OrderNumber); err != nil {
		log.Printf("❌ Create: Error incrementing daily counter: %v", err)
		return nil, fmt.Errorf("failed to assign order number: %w", err)
	}

	queryOrder := `
		INSERT INTO ordini (
			id, organization_id, order_number, status, order_type,
			customer_name, customer_phone, delivery_address,
			delivery_latitude, delivery_longitude, slot_time, notes,
			subtotal, delivery_fee, total, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = tx.ExecContext(ctx, queryOrder,
		order.ID,
		order.OrganizationID,
		order.OrderNumber,
		string(order.Status),
		string(order.OrderType),
		nullString(order.CustomerName),
		nullString(order.CustomerPhone),
		nullString(order.DeliveryAddress),
		order.DeliveryLatitude,
		order.DeliveryLongitude,
		order.SlotTime,
		nullString(order.Notes),
		order.Subtotal,
		order.DeliveryFee,
		order.Total,
		order.CreatedAt,
	)
	if err != nil {
		log.Printf("❌ Create: Error inserting order: %v", err)
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	queryLine := `
		INSERT INTO ordini_items (
			id, order_id, organization_id, menu_item_id, size_id,
			is_split, second_menu_item_id, second_size_id, display_name,
			quantity, unit_price, subtotal, ingredients, position
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	for i, line := range order.Lines {
		ingredientsJSON, err := json.Marshal(line.Ingredients)
		if err != nil {
			return nil, fmt.Errorf("failed to encode ingredients for line %d: %w", i, err)
		}
		_, err = tx.ExecContext(ctx, queryLine,
			line.ID,
			order.ID,
			order.OrganizationID,
			line.MenuItemID,
			nullUUID(line.SizeID),
			line.IsSplit,
			nullUUID(line.SecondMenuItemID),
			nullUUID(line.SecondSizeID),
			line.DisplayName,
			line.Quantity,
			line.UnitPrice,
			line.Subtotal,
			string(ingredientsJSON),
			i,
		)
		if err != nil {
			log.Printf("❌ Create: Error inserting line %d: %v", i, err)
			return nil, fmt.Errorf("failed to insert order line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Create: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Order persisted id=%s number=%d total=%s", order.ID, order.OrderNumber, order.Total.StringFixed(2))
	return order, nil
}

// GetByID retrieves an order with its lines
func (r *OrderRepository) GetByID(ctx context.Context, organizationID, orderID uuid.UUID) (*models.Order, error) {
	query := `
		SELECT id, organization_id, order_number, status, order_type,
		       customer_name, customer_phone, delivery_address,
		       delivery_latitude, delivery_longitude, slot_time, notes,
		       subtotal, delivery_fee, total, created_at
		FROM ordini
		WHERE organization_id = $1 AND id = $2
	`

	var order models.Order
	var status, orderType string
	var customerName, customerPhone, deliveryAddress, notes sql.NullString
	var lat, lon sql.NullFloat64
	var slotTime sql.NullTime

	err := db.DB.QueryRowContext(ctx, query, organizationID, orderID).Scan(
		&order.ID,
		&order.OrganizationID,
		&order.OrderNumber,
		&status,
		&orderType,
		&customerName,
		&customerPhone,
		&deliveryAddress,
		&lat,
		&lon,
		&slotTime,
		&notes,
		&order.Subtotal,
		&order.DeliveryFee,
		&order.Total,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("⚠️  GetByID: Order not found id=%s", orderID)
			return nil, ErrOrderNotFound
		}
		log.Printf("❌ GetByID: Error fetching order: %v", err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	order.Status = models.OrderStatus(status)
	order.OrderType = models.OrderType(orderType)
	order.CustomerName = customerName.String
	order.CustomerPhone = customerPhone.String
	order.DeliveryAddress = deliveryAddress.String
	order.Notes = notes.String
	if lat.Valid && lon.Valid {
		order.DeliveryLatitude = &lat.Float64
		order.DeliveryLongitude = &lon.Float64
	}
	if slotTime.Valid {
		order.SlotTime = &slotTime.Time
	}

	lines, err := r.getLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return &order, nil
}

func (r *OrderRepository) getLines(ctx context.Context, orderID uuid.UUID) ([]models.OrderLine, error) {
	query := `
		SELECT id, menu_item_id, size_id, is_split, second_menu_item_id, second_size_id,
		       display_name, quantity, unit_price, subtotal, ingredients
		FROM ordini_items
		WHERE order_id = $1
		ORDER BY position
	`

	rows, err := db.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		log.Printf("❌ getLines: Error querying order lines: %v", err)
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var line models.OrderLine
		var sizeID, secondMenuItemID, secondSizeID uuid.NullUUID
		var ingredientsJSON []byte

		if err := rows.Scan(
			&line.ID,
			&line.MenuItemID,
			&sizeID,
			&line.IsSplit,
			&secondMenuItemID,
			&secondSizeID,
			&line.DisplayName,
			&line.Quantity,
			&line.UnitPrice,
			&line.Subtotal,
			&ingredientsJSON,
		); err != nil {
			log.Printf("❌ getLines: Error scanning order line: %v", err)
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}

		line.SizeID = uuidPtr(sizeID)
		line.SecondMenuItemID = uuidPtr(secondMenuItemID)
		line.SecondSizeID = uuidPtr(secondSizeID)
		if len(ingredientsJSON) > 0 {
			if err := json.Unmarshal(ingredientsJSON, &line.Ingredients); err != nil {
				log.Printf("❌ getLines: Invalid ingredients on line %s: %v", line.ID, err)
				return nil, fmt.Errorf("failed to decode ingredients of line %s: %w", line.ID, err)
			}
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}
	return lines, nil
}

// ListActive retrieves non-terminal orders whose slot falls in [from, to).
// Orders without a slot are matched on created_at instead.
func (r *OrderRepository) ListActive(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]models.ActiveOrder, error) {
	query := `
		SELECT o.id, o.order_number, o.status, o.order_type, o.slot_time, o.customer_name,
		       COALESCE((SELECT SUM(oi.quantity) FROM ordini_items oi WHERE oi.order_id = o.id), 0)::int AS item_count
		FROM ordini o
		WHERE o.organization_id = $1
		  AND o.status NOT IN ('completed', 'cancelled')
		  AND COALESCE(o.slot_time, o.created_at) >= $2
		  AND COALESCE(o.slot_time, o.created_at) < $3
		ORDER BY COALESCE(o.slot_time, o.created_at), o.order_number
	`

	rows, err := db.DB.QueryContext(ctx, query, organizationID, from, to)
	if err != nil {
		log.Printf("❌ ListActive: Error querying active orders: %v", err)
		return nil, fmt.Errorf("failed to query active orders: %w", err)
	}
	defer rows.Close()

	orders := []models.ActiveOrder{}
	for rows.Next() {
		var order models.ActiveOrder
		var status, orderType string
		var slotTime sql.NullTime
		var customerName sql.NullString

		if err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&status,
			&orderType,
			&slotTime,
			&customerName,
			&order.ItemCount,
		); err != nil {
			log.Printf("❌ ListActive: Error scanning active order: %v", err)
			return nil, fmt.Errorf("failed to scan active order: %w", err)
		}

		order.Status = models.OrderStatus(status)
		order.OrderType = models.OrderType(orderType)
		order.CustomerName = customerName.String
		if slotTime.Valid {
			order.SlotTime = &slotTime.Time
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active orders: %w", err)
	}

	log.Printf("✅ ListActive: Found %d active orders between %s and %s", len(orders), from.Format(time.RFC3339), to.Format(time.RFC3339))
	return orders, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

// UpdateStatus moves an order to a new status if the lifecycle allows it.
// The row is locked for the duration of the check.
func (r *OrderRepository) UpdateStatus(ctx context.Context, organizationID, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	log.Printf("📦 UpdateStatus: order id=%s -> %s", orderID, status)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ UpdateStatus: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var current, orderType string
	queryOrder := `SELECT status, order_type FROM ordini WHERE organization_id = $1 AND id = $2 FOR UPDATE`
	err = tx.QueryRowContext(ctx, queryOrder, organizationID, orderID).Scan(&current, &orderType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("❌ UpdateStatus: Order not found: id=%s", orderID)
			return nil, ErrOrderNotFound
		}
		log.Printf("❌ UpdateStatus: Error fetching order: %v", err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	if !models.OrderStatus(current).CanTransition(status, models.OrderType(orderType)) {
		log.Printf("❌ UpdateStatus: %s -> %s not allowed for %s order", current, status, orderType)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current, status)
	}

	queryUpdate := `UPDATE ordini SET status = $1, updated_at = NOW() WHERE id = $2`
	if _, err := tx.ExecContext(ctx, queryUpdate, string(status), orderID); err != nil {
		log.Printf("❌ UpdateStatus: Error updating order: %v", err)
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ UpdateStatus: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ UpdateStatus: order id=%s is now %s", orderID, status)
	return r.GetByID(ctx, organizationID, orderID)
}
