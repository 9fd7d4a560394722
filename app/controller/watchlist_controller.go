package controller

import (
	"net/http"

	"luxemarket/repository"
	"luxemarket/service"
)

// WatchlistController handles HTTP requests for the watchlist
type WatchlistController struct {
	storefront service.StorefrontServiceInterface
	repository repository.WatchlistRepositoryInterface
}

// NewWatchlistController creates a new WatchlistController
func NewWatchlistController(storefront service.StorefrontServiceInterface, repo repository.WatchlistRepositoryInterface) *WatchlistController {
	return &WatchlistController{storefront: storefront, repository: repo}
}

// WatchRequest represents the request body for POST /watchlist
type WatchRequest struct {
	ProductID int `json:"productId"`
}

// Watchlist handles GET /watchlist (watched products) and POST /watchlist
func (c *WatchlistController) Watchlist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		products, err := c.storefront.Watchlist(r.Context())
		if err != nil {
			writeError(w, "list watchlist", err)
			return
		}
		writeJSON(w, http.StatusOK, products)
	case http.MethodPost:
		var req WatchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		ids, err := c.storefront.Watch(r.Context(), req.ProductID)
		if err != nil {
			writeError(w, "watch product", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"productIds": ids})
	default:
		methodNotAllowed(w)
	}
}

// Unwatch handles DELETE /watchlist/{productId}
func (c *WatchlistController) Unwatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, _, ok := pathID(r.URL.Path, "/watchlist/")
	if !ok {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}
	ids, err := c.repository.Remove(r.Context(), id)
	if err != nil {
		writeError(w, "unwatch product", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"productIds": ids})
}
