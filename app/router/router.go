package router

import (
	"net/http"

	"luxemarket/app/controller"
)

type Controllers struct {
	Color     *controller.ColorController
	Product   *controller.ProductController
	Category  *controller.CategoryController
	Deal      *controller.DealController
	Homepage  *controller.HomepageController
	Watchlist *controller.WatchlistController
	Cart      *controller.CartController
	Session   *controller.SessionController
	Catalog   *controller.CatalogController
	Download  *controller.DownloadController
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

// UploadsPrefix is the URL path uploaded and mirrored images are served from
const UploadsPrefix = "/static/uploads"

// SetupRoutes registers every route on mux. uploadDir is served under UploadsPrefix.
func SetupRoutes(mux *http.ServeMux, controllers *Controllers, uploadDir string) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Colors
	mux.HandleFunc("/colors/resolve", controllers.Color.Resolve)
	mux.HandleFunc("/colors/suggest", controllers.Color.Suggest)
	mux.HandleFunc("/colors/parse", controllers.Color.Parse)
	mux.HandleFunc("/colors/render", controllers.Color.Render)
	mux.HandleFunc("/colors/swatch.png", controllers.Color.SwatchPNG)
	mux.HandleFunc("/colors/presets", controllers.Color.Presets)
	mux.HandleFunc("/colors/presets/", controllers.Color.DeletePreset)

	// Products: /products/{id} handles GET, PUT, DELETE and the /images subresource
	mux.HandleFunc("/products", controllers.Product.Products)
	mux.HandleFunc("/products/", controllers.Product.Product)

	// Categories
	mux.HandleFunc("/categories", controllers.Category.Categories)
	mux.HandleFunc("/categories/", controllers.Category.DeleteCategory)

	// Daily deals
	mux.HandleFunc("/deals", controllers.Deal.Deals)
	mux.HandleFunc("/deals/", controllers.Deal.RemoveDeal)

	// Homepage
	mux.HandleFunc("/homepage", controllers.Homepage.Homepage)
	mux.HandleFunc("/homepage/order", controllers.Homepage.Order)

	// Watchlist
	mux.HandleFunc("/watchlist", controllers.Watchlist.Watchlist)
	mux.HandleFunc("/watchlist/", controllers.Watchlist.Unwatch)

	// Cart and checkout (session scoped)
	mux.HandleFunc("/cart", controllers.Cart.Cart)
	mux.HandleFunc("/cart/items", controllers.Cart.Items)
	mux.HandleFunc("/checkout", controllers.Cart.Checkout)
	mux.HandleFunc("/session", controllers.Session.Session)

	// Admin
	mux.HandleFunc("/admin/variant-images/sync", controllers.Download.SyncImages)
	mux.HandleFunc("/admin/variant-images/download", controllers.Download.DownloadImages)
	mux.HandleFunc("/admin/catalog", controllers.Catalog.GenerateCatalog)
	mux.HandleFunc("/admin/catalog/render", controllers.Catalog.RenderCatalog)

	// Uploaded and mirrored images
	if uploadDir != "" {
		mux.Handle(UploadsPrefix+"/", http.StripPrefix(UploadsPrefix+"/", http.FileServer(http.Dir(uploadDir))))
	}
}
