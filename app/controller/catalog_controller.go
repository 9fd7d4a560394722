package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"luxemarket/service"
)

// CatalogController serves the printable color catalog
type CatalogController struct {
	catalogService service.CatalogServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService service.CatalogServiceInterface) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GenerateCatalog handles GET /admin/catalog?format=html|pdf (html when omitted)
func (c *CatalogController) GenerateCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	switch format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))); format {
	case "", "html":
		c.writeHTML(w, r)
	case "pdf":
		c.writePDF(w, r)
	default:
		log.Printf("⚠️  Catalog requested in unsupported format %q", format)
		http.Error(w, "Invalid format. Valid formats: html, pdf", http.StatusBadRequest)
	}
}

// RenderCatalog handles GET /admin/catalog/render, the page headless Chrome prints
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	c.writeHTML(w, r)
}

func (c *CatalogController) writeHTML(w http.ResponseWriter, r *http.Request) {
	page, err := c.catalogService.RenderCatalogHTML(r.Context())
	if err != nil {
		writeError(w, "render catalog", err)
		return
	}
	writeBytes(w, "text/html; charset=utf-8", []byte(page))
}

func (c *CatalogController) writePDF(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	pdf, err := c.catalogService.GeneratePDF(r.Context())
	if err != nil {
		writeError(w, "generate catalog PDF", err)
		return
	}
	log.Printf("📄 Catalog PDF ready in %s (%d bytes)", time.Since(started).Round(time.Millisecond), len(pdf))

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "luxemarket_catalog_"+started.Format("20060102")+".pdf"))
	writeBytes(w, "application/pdf", pdf)
}

// writeBytes sends a non-JSON body with a 200
func writeBytes(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("❌ Failed to write %s response: %v", contentType, err)
	}
}
