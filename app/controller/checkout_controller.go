package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"pizzeria-manager/models"
	"pizzeria-manager/service"
)

// CheckoutController handles HTTP requests for pricing and committing orders
type CheckoutController struct {
	service service.CheckoutServiceInterface
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(svc service.CheckoutServiceInterface) *CheckoutController {
	return &CheckoutController{
		service: svc,
	}
}

func decodeCheckoutRequest(w http.ResponseWriter, r *http.Request, op string) (*models.CheckoutRequest, bool) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ %s: Failed to decode request body: %v", op, err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

// Quote handles POST /admin/orders/quote
// Example request:
// POST /admin/orders/quote
// {
//   "orderType": "delivery",
//   "items": [{"menuItemId": "...", "sizeId": "...", "quantity": 2}],
//   "deliveryLatitude": 45.07, "deliveryLongitude": 7.68
// }
// Example response:
// {
//   "lines": [{"index": 0, "unitPrice": "12", "subtotal": "24"}],
//   "subtotal": "24", "deliveryFee": "2.5", "total": "26.5",
//   "deliveryDistanceKm": 2.1,
//   "warnings": []
// }
func (c *CheckoutController) Quote(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Quote: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID, err := organizationID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req, ok := decodeCheckoutRequest(w, r, "Quote")
	if !ok {
		return
	}

	quote, err := c.service.Quote(r.Context(), orgID, req)
	if err != nil {
		writeError(w, "Quote", err)
		return
	}

	log.Printf("✅ Quote: total=%s", quote.Total.StringFixed(2))
	writeJSON(w, "Quote", http.StatusOK, quote)
}

// Commit handles POST /admin/orders
// The body is a CheckoutRequest; displayedUnitPrice and displayedSubtotal are the
// amounts the panel showed and are only used for reconciliation.
// Example response:
// {
//   "order": {"id": "...", "orderNumber": 12, "status": "pending", "total": "26.5", "lines": [...]},
//   "discrepancies": [{"scope": "line", "lineIndex": 0, "displayed": 11.5, "authoritative": 12, "delta": 0.5}],
//   "warnings": ["displayed prices differ from the calculated prices, calculated prices were used"]
// }
func (c *CheckoutController) Commit(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Commit: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID, err := organizationID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req, ok := decodeCheckoutRequest(w, r, "Commit")
	if !ok {
		return
	}

	resp, err := c.service.Commit(r.Context(), orgID, req)
	if err != nil {
		writeError(w, "Commit", err)
		return
	}

	log.Printf("✅ Commit: order id=%s number=%d", resp.Order.ID, resp.Order.OrderNumber)
	writeJSON(w, "Commit", http.StatusCreated, resp)
}
