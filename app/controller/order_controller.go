package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"pizzeria-manager/models"
	"pizzeria-manager/repository"
	"pizzeria-manager/service"
)

// OrderController handles HTTP requests for committed orders
type OrderController struct {
	repository     repository.OrderRepositoryInterface
	slotService    service.SlotServiceInterface
	receiptService service.ReceiptServiceInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(
	repo repository.OrderRepositoryInterface,
	slotService service.SlotServiceInterface,
	receiptService service.ReceiptServiceInterface,
) *OrderController {
	return &OrderController{
		repository:     repo,
		slotService:    slotService,
		receiptService: receiptService,
	}
}

// orderIDFromPath extracts {id} from /admin/orders/{id}/{suffix}
func orderIDFromPath(path, suffix string) (uuid.UUID, error) {
	trimmed := strings.TrimPrefix(path, "/admin/orders/")
	idStr := strings.TrimSuffix(trimmed, "/"+suffix)
	if idStr == trimmed || idStr == "" {
		return uuid.Nil, fmt.Errorf("invalid path format")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid order id parameter")
	}
	return id, nil
}

// ListActive handles GET /admin/orders/active?date=2026-10-19
// Example response:
// {
//   "orders": [{"id": "...", "orderNumber": 3, "status": "preparing", "orderType": "delivery",
//               "slotTime": "2026-10-19T19:30:00+02:00", "itemCount": 4, "customerName": "Mario"}]
// }
func (c *OrderController) ListActive(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListActive: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID, err := organizationID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := c.slotService.ListActiveOrders(r.Context(), orgID, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, "ListActive", err)
		return
	}

	writeJSON(w, "ListActive", http.StatusOK, resp)
}

// Receipt handles GET /admin/orders/{id}/receipt
// Query params: format=pdf|html (default pdf), archive=true uploads the PDF to Drive
func (c *OrderController) Receipt(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Receipt: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orderID, err := orderIDFromPath(r.URL.Path, "receipt")
	if err != nil {
		log.Printf("❌ Receipt: %v: %s", err, r.URL.Path)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orgID, err := organizationID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	switch format := query.Get("format"); format {
	case "html":
		html, err := c.receiptService.RenderReceiptHTML(r.Context(), orgID, orderID)
		if err != nil {
			writeError(w, "Receipt", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))

	case "", "pdf":
		pdf, err := c.receiptService.GeneratePDF(r.Context(), orgID, orderID, query.Get("archive") == "true")
		if err != nil {
			writeError(w, "Receipt", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "inline; filename=\"ordine_"+orderID.String()+".pdf\"")
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
		log.Printf("✅ Receipt: PDF sent for order id=%s (%d bytes)", orderID, len(pdf))

	default:
		http.Error(w, "format must be pdf or html", http.StatusBadRequest)
	}
}

// UpdateStatus handles PATCH /admin/orders/{id}/status
// Example request:
// PATCH /admin/orders/6f1c.../status
// {
//   "status": "preparing"
// }
// Responds with the updated order; a transition the lifecycle forbids returns 409.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateStatus: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orderID, err := orderIDFromPath(r.URL.Path, "status")
	if err != nil {
		log.Printf("❌ UpdateStatus: %v: %s", err, r.URL.Path)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orgID, err := organizationID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateStatus: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if !req.Status.Valid() {
		http.Error(w, fmt.Sprintf("unknown status %q", req.Status), http.StatusBadRequest)
		return
	}

	order, err := c.repository.UpdateStatus(r.Context(), orgID, orderID, req.Status)
	if err != nil {
		writeError(w, "UpdateStatus", err)
		return
	}

	writeJSON(w, "UpdateStatus", http.StatusOK, order)
}
