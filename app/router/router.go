package router

import (
	"net/http"
	"strings"

	"pizzeria-manager/app/controller"
)

type Controllers struct {
	Catalog  *controller.CatalogController
	Checkout *controller.CheckoutController
	Order    *controller.OrderController
	Slot     *controller.SlotController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers the admin routes on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Catalog used by the calculator
	mux.HandleFunc("/admin/catalog", controllers.Catalog.GetCatalog)

	// Slot board
	mux.HandleFunc("/admin/slots", controllers.Slot.GetSlotBoard)

	// Orders routes
	// Commit order
	mux.HandleFunc("/admin/orders", controllers.Checkout.Commit)

	// Quote without committing
	mux.HandleFunc("/admin/orders/quote", controllers.Checkout.Quote)

	// Live order feed
	mux.HandleFunc("/admin/orders/active", controllers.Order.ListActive)

	// Order receipt and status
	mux.HandleFunc("/admin/orders/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/receipt"):
			controllers.Order.Receipt(w, r)
		case strings.HasSuffix(r.URL.Path, "/status"):
			controllers.Order.UpdateStatus(w, r)
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})
}
