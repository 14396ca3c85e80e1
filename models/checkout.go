package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutLine is a cart line as sent by the cashier panel, with the price it displayed
type CheckoutLine struct {
	OrderItemInput
	DisplayName        string   `json:"displayName,omitempty"`
	DisplayedUnitPrice *float64 `json:"displayedUnitPrice,omitempty"`
}

// CheckoutRequest represents the request body for POST /admin/orders and POST /admin/orders/quote
// Example:
// {
//   "orderType": "delivery",
//   "items": [{"menuItemId": "...", "quantity": 2, "displayedUnitPrice": 8.5}],
//   "deliveryLatitude": 45.07, "deliveryLongitude": 7.68,
//   "customerName": "Mario Rossi",
//   "slotTime": "2026-10-19T19:30:00+02:00",
//   "displayedSubtotal": 17
// }
type CheckoutRequest struct {
	OrderType         OrderType      `json:"orderType"`
	Items             []CheckoutLine `json:"items"`
	DeliveryLatitude  *float64       `json:"deliveryLatitude,omitempty"`
	DeliveryLongitude *float64       `json:"deliveryLongitude,omitempty"`
	DeliveryAddress   string         `json:"deliveryAddress,omitempty"`
	CustomerName      string         `json:"customerName,omitempty"`
	CustomerPhone     string         `json:"customerPhone,omitempty"`
	SlotTime          *time.Time     `json:"slotTime,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	DisplayedSubtotal *float64       `json:"displayedSubtotal,omitempty"`
}

// TotalInput extracts the pricing input from the request
func (r *CheckoutRequest) TotalInput() OrderTotalInput {
	items := make([]OrderItemInput, len(r.Items))
	for i, line := range r.Items {
		items[i] = line.OrderItemInput
	}
	return OrderTotalInput{
		Items:             items,
		OrderType:         r.OrderType,
		DeliveryLatitude:  r.DeliveryLatitude,
		DeliveryLongitude: r.DeliveryLongitude,
	}
}

// QuoteLine is a rounded line price
type QuoteLine struct {
	Index     int             `json:"index"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// QuoteResponse represents the response for POST /admin/orders/quote
type QuoteResponse struct {
	Lines              []QuoteLine     `json:"lines"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DeliveryFee        decimal.Decimal `json:"deliveryFee"`
	Total              decimal.Decimal `json:"total"`
	DeliveryDistanceKm *float64        `json:"deliveryDistanceKm,omitempty"`
	Warnings           []string        `json:"warnings"`
}

// PriceDiscrepancy records a displayed price that differed from the calculated one
type PriceDiscrepancy struct {
	Scope         string  `json:"scope"`               // "line" or "subtotal"
	LineIndex     int     `json:"lineIndex,omitempty"` // only for scope "line"
	Displayed     float64 `json:"displayed"`
	Authoritative float64 `json:"authoritative"`
	Delta         float64 `json:"delta"`
}

// CheckoutResponse represents the response for POST /admin/orders
type CheckoutResponse struct {
	Order         *Order             `json:"order"`
	Discrepancies []PriceDiscrepancy `json:"discrepancies"`
	Warnings      []string           `json:"warnings"`
}
