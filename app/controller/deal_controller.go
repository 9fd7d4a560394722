package controller

import (
	"net/http"

	"luxemarket/models"
	"luxemarket/repository"
	"luxemarket/service"
)

// DealController handles HTTP requests for daily deals
type DealController struct {
	storefront service.StorefrontServiceInterface
	repository repository.DealRepositoryInterface
}

// NewDealController creates a new DealController
func NewDealController(storefront service.StorefrontServiceInterface, repo repository.DealRepositoryInterface) *DealController {
	return &DealController{storefront: storefront, repository: repo}
}

// Deals handles GET /deals (active deals with products) and POST /deals
func (c *DealController) Deals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		deals, err := c.storefront.Deals(r.Context())
		if err != nil {
			writeError(w, "list deals", err)
			return
		}
		writeJSON(w, http.StatusOK, deals)
	case http.MethodPost:
		var req models.AddDealRequest
		if !decodeBody(w, r, &req) {
			return
		}
		deal, err := c.storefront.AddDeal(r.Context(), req)
		if err != nil {
			writeError(w, "add deal", err)
			return
		}
		writeJSON(w, http.StatusCreated, deal)
	default:
		methodNotAllowed(w)
	}
}

// RemoveDeal handles DELETE /deals/{productId}
func (c *DealController) RemoveDeal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, _, ok := pathID(r.URL.Path, "/deals/")
	if !ok {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}
	if err := c.repository.Remove(r.Context(), id); err != nil {
		writeError(w, "remove deal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
