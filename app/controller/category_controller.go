package controller

import (
	"net/http"
	"net/url"
	"strings"

	"luxemarket/repository"
)

// CategoryController handles HTTP requests for categories
type CategoryController struct {
	repository repository.CategoryRepositoryInterface
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(repo repository.CategoryRepositoryInterface) *CategoryController {
	return &CategoryController{repository: repo}
}

// AddCategoryRequest represents the request body for POST /categories
type AddCategoryRequest struct {
	Name string `json:"name"`
}

// Categories handles GET /categories and POST /categories
func (c *CategoryController) Categories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := c.repository.List(r.Context())
		if err != nil {
			writeError(w, "list categories", err)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	case http.MethodPost:
		var req AddCategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}
		categories, err := c.repository.Add(r.Context(), req.Name)
		if err != nil {
			writeError(w, "add category", err)
			return
		}
		writeJSON(w, http.StatusCreated, categories)
	default:
		methodNotAllowed(w)
	}
}

// DeleteCategory handles DELETE /categories/{name}
// Products keep their category string; nothing cascades.
func (c *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	name, err := url.PathUnescape(strings.Trim(strings.TrimPrefix(r.URL.EscapedPath(), "/categories/"), "/"))
	if err != nil || strings.TrimSpace(name) == "" {
		http.Error(w, "category name is required", http.StatusBadRequest)
		return
	}
	if err := c.repository.Delete(r.Context(), name); err != nil {
		writeError(w, "delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
