package httphandler

import (
	"net/http"

	"github.com/muxury/storefront/internal/core/port"
)

const (
	defaultRelatedLimit         = 4
	defaultAlsoBoughtLimit      = 4
	defaultCompleteTheLookLimit = 3
)

// ProductsHandler serves the catalog read surface and the recommendation
// panels. Fetching a product detail also records a view.
type ProductsHandler struct {
	catalog port.CatalogBrowser
	views   port.ViewsRecorder
}

func RegisterProducts(
	mux *http.ServeMux,
	catalog port.CatalogBrowser,
	views port.ViewsRecorder,
) {
	h := ProductsHandler{catalog, views}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/featured", h.GetFeatured)
	mux.HandleFunc("GET /v1/products/new-arrivals", h.GetNewArrivals)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/products/{id}/related", h.GetRelated)
	mux.HandleFunc("GET /v1/products/{id}/also-bought", h.GetAlsoBought)
	mux.HandleFunc("GET /v1/products/{id}/complete-the-look", h.GetCompleteTheLook)
	mux.HandleFunc("GET /v1/recent", h.GetRecent)
	mux.HandleFunc("DELETE /v1/recent", h.ClearRecent)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK,
			toProducts(h.catalog.ProductsByCategory(category)))
		return
	}
	writeJSON(w, http.StatusOK, toProducts(h.catalog.Products()))
}

func (h ProductsHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProducts(h.catalog.FeaturedProducts()))
}

func (h ProductsHandler) GetNewArrivals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProducts(h.catalog.NewArrivals()))
}

func (h ProductsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCategories(h.catalog.Categories()))
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, ok := h.catalog.ProductByID(id)
	if !ok {
		writeMessage(w, http.StatusNotFound, "product not found")
		return
	}

	h.views.RecordView(r.Context(), id)
	writeJSON(w, http.StatusOK, toProduct(p))
}

func (h ProductsHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, defaultRelatedLimit)
	ps := h.views.Related(r.PathValue("id"), limit)
	writeJSON(w, http.StatusOK, toProducts(ps))
}

func (h ProductsHandler) GetAlsoBought(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, defaultAlsoBoughtLimit)
	ps := h.views.AlsoBought(r.PathValue("id"), limit)
	writeJSON(w, http.StatusOK, toProducts(ps))
}

func (h ProductsHandler) GetCompleteTheLook(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, defaultCompleteTheLookLimit)
	ps := h.views.CompleteTheLook(r.PathValue("id"), limit)
	writeJSON(w, http.StatusOK, toProducts(ps))
}

func (h ProductsHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProducts(h.views.Recent()))
}

func (h ProductsHandler) ClearRecent(w http.ResponseWriter, r *http.Request) {
	h.views.ClearRecent()
	w.WriteHeader(http.StatusNoContent)
}
