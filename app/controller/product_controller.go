package controller

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"luxemarket/models"
	"luxemarket/repository"
	"luxemarket/service"
)

// maxUploadSize bounds multipart image uploads
const maxUploadSize = 10 << 20

// ProductController handles HTTP requests for products
type ProductController struct {
	repository repository.ProductRepositoryInterface
	storefront service.StorefrontServiceInterface
	images     *service.ImageStore
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface, storefront service.StorefrontServiceInterface, images *service.ImageStore) *ProductController {
	return &ProductController{repository: repo, storefront: storefront, images: images}
}

// Products handles GET /products?category=&filter=deals&search= and POST /products
func (c *ProductController) Products(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		filter := models.ProductFilter{
			Category:  strings.TrimSpace(q.Get("category")),
			DealsOnly: strings.EqualFold(q.Get("filter"), "deals"),
			Search:    strings.TrimSpace(q.Get("search")),
		}
		products, err := c.storefront.ListProducts(r.Context(), filter)
		if err != nil {
			writeError(w, "list products", err)
			return
		}
		writeJSON(w, http.StatusOK, products)

	case http.MethodPost:
		var input models.ProductInput
		if !decodeBody(w, r, &input) {
			return
		}
		product, err := c.repository.Create(r.Context(), input)
		if err != nil {
			writeError(w, "create product", err)
			return
		}
		writeJSON(w, http.StatusCreated, product)

	default:
		methodNotAllowed(w)
	}
}

// Product handles GET|PUT|DELETE /products/{id} and /products/{id}/images
func (c *ProductController) Product(w http.ResponseWriter, r *http.Request) {
	id, rest, ok := pathID(r.URL.Path, "/products/")
	if !ok {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}
	switch rest {
	case "":
	case "images":
		c.productImages(w, r, id)
		return
	default:
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		product, err := c.storefront.GetProduct(r.Context(), id)
		if err != nil {
			writeError(w, "get product", err)
			return
		}
		writeJSON(w, http.StatusOK, product)

	case http.MethodPut:
		var input models.ProductInput
		if !decodeBody(w, r, &input) {
			return
		}
		product, err := c.repository.Update(r.Context(), id, input)
		if err != nil {
			writeError(w, "update product", err)
			return
		}
		writeJSON(w, http.StatusOK, product)

	case http.MethodDelete:
		if err := c.repository.Delete(r.Context(), id); err != nil {
			writeError(w, "delete product", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

// productImages handles GET /products/{id}/images?color= and POST /products/{id}/images (multipart "image")
func (c *ProductController) productImages(w http.ResponseWriter, r *http.Request, id int) {
	switch r.Method {
	case http.MethodGet:
		color := r.URL.Query().Get("color")
		images, err := c.repository.ImagesForColor(r.Context(), id, color)
		if err != nil {
			writeError(w, "get product images", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"productId": id, "color": color, "images": images})

	case http.MethodPost:
		if _, err := c.repository.GetByID(r.Context(), id); err != nil {
			writeError(w, "upload image", err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image file is required: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
			return
		}

		log.Printf("📥 Upload for product %d: %s (%d bytes)", id, header.Filename, len(data))
		url, err := c.images.SaveUpload(data)
		if errors.Is(err, service.ErrInvalidImage) {
			log.Printf("⚠️  Upload for product %d rejected: %v", id, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			writeError(w, "store image", err)
			return
		}

		product, err := c.repository.AddImage(r.Context(), id, url)
		if err != nil {
			writeError(w, "attach image", err)
			return
		}
		writeJSON(w, http.StatusCreated, product)

	default:
		methodNotAllowed(w)
	}
}
