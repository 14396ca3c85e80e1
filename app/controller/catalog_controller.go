package controller

import (
	"log"
	"net/http"

	"pizzeria-manager/repository"
)

// CatalogController handles HTTP requests for the pricing catalog
type CatalogController struct {
	repository repository.CatalogRepositoryInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(repo repository.CatalogRepositoryInterface) *CatalogController {
	return &CatalogController{
		repository: repo,
	}
}

// GetCatalog handles GET /admin/catalog
// Returns the products, sizes, size assignments and ingredients the calculator prices with.
func (c *CatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCatalog: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID, err := organizationID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	catalog, err := c.repository.GetCatalog(r.Context(), orgID)
	if err != nil {
		writeError(w, "GetCatalog", err)
		return
	}

	log.Printf("✅ GetCatalog: %d menu items, %d sizes, %d ingredients", len(catalog.MenuItems), len(catalog.Sizes), len(catalog.Ingredients))
	writeJSON(w, "GetCatalog", http.StatusOK, catalog)
}
