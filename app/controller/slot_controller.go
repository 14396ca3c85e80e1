package controller

import (
	"log"
	"net/http"
	"time"

	"pizzeria-manager/service"
)

// SlotController handles HTTP requests for the slot board
type SlotController struct {
	service service.SlotServiceInterface
}

// NewSlotController creates a new SlotController
func NewSlotController(svc service.SlotServiceInterface) *SlotController {
	return &SlotController{
		service: svc,
	}
}

// GetSlotBoard handles GET /admin/slots?date=2026-10-19&target=2026-10-19T22:15:00+02:00
// target is optional: the booked slot of an order being edited, kept on the board
// even when it is off the grid.
func (c *SlotController) GetSlotBoard(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetSlotBoard: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID, err := organizationID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	var target *time.Time
	if raw := query.Get("target"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			log.Printf("❌ GetSlotBoard: Invalid target: %s", raw)
			http.Error(w, "invalid target, expected RFC3339 timestamp", http.StatusBadRequest)
			return
		}
		target = &parsed
	}

	board, err := c.service.GetSlotBoard(r.Context(), orgID, query.Get("date"), target)
	if err != nil {
		writeError(w, "GetSlotBoard", err)
		return
	}

	writeJSON(w, "GetSlotBoard", http.StatusOK, board)
}
