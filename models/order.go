package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType is the fulfillment type of an order
type OrderType string

const (
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

// OrderStatus is the lifecycle status stored in ordini.status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsActive reports whether the status is non-terminal
func (s OrderStatus) IsActive() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusCancelled:
		return false
	case "":
		return false
	}
	return true
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// statusTransitions is the order lifecycle; terminal statuses have no successors
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusDelivering, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  nil,
	OrderStatusCancelled:  nil,
}

// CanTransition reports whether an order may move from s to next.
// Delivering is only reachable by delivery orders.
func (s OrderStatus) CanTransition(next OrderStatus, orderType OrderType) bool {
	if next == OrderStatusDelivering && orderType != OrderTypeDelivery {
		return false
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Half tells which half of a split line an ingredient belongs to
type Half string

const (
	HalfWhole  Half = "whole"
	HalfFirst  Half = "first"
	HalfSecond Half = "second"
)

// IngredientSelection adds an ingredient Quantity times to a line
type IngredientSelection struct {
	IngredientID uuid.UUID `json:"ingredientId"`
	Quantity     int       `json:"quantity"`
	Half         Half      `json:"half,omitempty"` // empty means whole
}

// OrderItemInput is one cart line to be priced
type OrderItemInput struct {
	MenuItemID       uuid.UUID             `json:"menuItemId"`
	SizeID           *uuid.UUID            `json:"sizeId,omitempty"`
	AddedIngredients []IngredientSelection `json:"addedIngredients,omitempty"`
	Quantity         int                   `json:"quantity"`
	IsSplit          bool                  `json:"isSplit"`
	// Second half of a split line
	SecondProductID        *uuid.UUID            `json:"secondProductId,omitempty"`
	SecondSizeID           *uuid.UUID            `json:"secondSizeId,omitempty"`
	SecondAddedIngredients []IngredientSelection `json:"secondAddedIngredients,omitempty"`
}

// CalculatedItemPrice is the unrounded price of one line
type CalculatedItemPrice struct {
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderTotalInput is a whole order to be priced
type OrderTotalInput struct {
	Items             []OrderItemInput `json:"items"`
	OrderType         OrderType        `json:"orderType"`
	DeliveryLatitude  *float64         `json:"deliveryLatitude,omitempty"`
	DeliveryLongitude *float64         `json:"deliveryLongitude,omitempty"`
}

// OrderTotal is the unrounded result of pricing a whole order
type OrderTotal struct {
	Lines       []CalculatedItemPrice
	Subtotal    float64
	DeliveryFee float64
	Total       float64
	Delivery    DeliveryQuote
}

// Order represents a committed order (ordini table) with the computed amounts frozen
type Order struct {
	ID                uuid.UUID       `json:"id"`
	OrganizationID    uuid.UUID       `json:"organizationId"`
	OrderNumber       int             `json:"orderNumber"` // per day, per organization
	Status            OrderStatus     `json:"status"`
	OrderType         OrderType       `json:"orderType"`
	CustomerName      string          `json:"customerName,omitempty"`
	CustomerPhone     string          `json:"customerPhone,omitempty"`
	DeliveryAddress   string          `json:"deliveryAddress,omitempty"`
	DeliveryLatitude  *float64        `json:"deliveryLatitude,omitempty"`
	DeliveryLongitude *float64        `json:"deliveryLongitude,omitempty"`
	SlotTime          *time.Time      `json:"slotTime,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	DeliveryFee       decimal.Decimal `json:"deliveryFee"`
	Total             decimal.Decimal `json:"total"`
	CreatedAt         time.Time       `json:"createdAt"`
	Lines             []OrderLine     `json:"lines"`
}

// OrderLine represents a committed line (ordini_items table)
type OrderLine struct {
	ID               uuid.UUID             `json:"id"`
	MenuItemID       uuid.UUID             `json:"menuItemId"`
	SizeID           *uuid.UUID            `json:"sizeId,omitempty"`
	IsSplit          bool                  `json:"isSplit"`
	SecondMenuItemID *uuid.UUID            `json:"secondMenuItemId,omitempty"`
	SecondSizeID     *uuid.UUID            `json:"secondSizeId,omitempty"`
	DisplayName      string                `json:"displayName"`
	Quantity         int                   `json:"quantity"`
	UnitPrice        decimal.Decimal       `json:"unitPrice"`
	Subtotal         decimal.Decimal       `json:"subtotal"`
	Ingredients      []OrderLineIngredient `json:"ingredients"`
}

// OrderLineIngredient is an ingredient stored on a committed line, with explicit half ownership
type OrderLineIngredient struct {
	IngredientID uuid.UUID `json:"ingredientId"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	Half         Half      `json:"half"`
}

// ActiveOrder is a row of the live order feed
type ActiveOrder struct {
	ID           uuid.UUID   `json:"id"`
	OrderNumber  int         `json:"orderNumber"`
	Status       OrderStatus `json:"status"`
	OrderType    OrderType   `json:"orderType"`
	SlotTime     *time.Time  `json:"slotTime,omitempty"`
	ItemCount    int         `json:"itemCount"` // sum of line quantities
	CustomerName string      `json:"customerName,omitempty"`
}

// ActiveOrderListResponse represents the response for GET /admin/orders/active
type ActiveOrderListResponse struct {
	Orders []ActiveOrder `json:"orders"`
}

// UpdateOrderStatusRequest represents the request body for PATCH /admin/orders/{id}/status
// Example:
// {
//   "status": "preparing"
// }
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}
