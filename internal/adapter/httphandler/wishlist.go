package httphandler

import (
	"net/http"

	"github.com/muxury/storefront/internal/core/port"
)

type WishlistHandler struct {
	wishlist port.Wishlister
}

func RegisterWishlist(mux *http.ServeMux, wishlist port.Wishlister) {
	h := WishlistHandler{wishlist}
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("PUT /v1/wishlist/{id}", h.ToggleItem)
	mux.HandleFunc("DELETE /v1/wishlist/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/wishlist", h.Clear)
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Wishlist{
		IDs:   h.wishlist.IDs(),
		Items: toProducts(h.wishlist.Items()),
		Count: h.wishlist.Count(),
	})
}

// ToggleItem backs the heart-icon button: one call flips membership and
// reports the resulting state.
func (h WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	in := h.wishlist.Toggle(r.PathValue("id"))
	writeJSON(w, http.StatusOK, WishlistToggle{InWishlist: in})
}

func (h WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.wishlist.Remove(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.wishlist.Clear()
	w.WriteHeader(http.StatusNoContent)
}
