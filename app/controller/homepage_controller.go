package controller

import (
	"net/http"

	"luxemarket/models"
	"luxemarket/repository"
	"luxemarket/service"
)

// HomepageController handles the storefront homepage and its admin ordering
type HomepageController struct {
	storefront service.StorefrontServiceInterface
	repository repository.HomepageRepositoryInterface
}

// NewHomepageController creates a new HomepageController
func NewHomepageController(storefront service.StorefrontServiceInterface, repo repository.HomepageRepositoryInterface) *HomepageController {
	return &HomepageController{storefront: storefront, repository: repo}
}

// Homepage handles GET /homepage
func (c *HomepageController) Homepage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	products, err := c.storefront.Homepage(r.Context())
	if err != nil {
		writeError(w, "load homepage", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Order handles GET /homepage/order and PUT /homepage/order
func (c *HomepageController) Order(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ids, err := c.repository.Get(r.Context())
		if err != nil {
			writeError(w, "get homepage order", err)
			return
		}
		writeJSON(w, http.StatusOK, models.HomepageOrderRequest{ProductIDs: ids})
	case http.MethodPut:
		var req models.HomepageOrderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		ids, err := c.repository.Set(r.Context(), req.ProductIDs)
		if err != nil {
			writeError(w, "set homepage order", err)
			return
		}
		writeJSON(w, http.StatusOK, models.HomepageOrderRequest{ProductIDs: ids})
	default:
		methodNotAllowed(w)
	}
}
