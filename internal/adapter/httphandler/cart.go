package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/muxury/storefront/internal/core/port"
)

// CartHandler exposes the four cart operations plus the derived-state
// read. Stock is checked here before the store is called, the store
// itself never enforces it.
type CartHandler struct {
	catalog port.CatalogReader
	cart    port.Carter
}

func RegisterCart(mux *http.ServeMux, catalog port.CatalogReader, cart port.Carter) {
	h := CartHandler{catalog, cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}/{size}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartPayload())
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var m CartMutation
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if m.Quantity < 1 {
		writeMessage(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	p, ok := h.catalog.ProductByID(m.ProductID)
	if !ok {
		writeMessage(w, http.StatusNotFound, "product not found")
		return
	}

	if m.Quantity > p.Stock {
		writeMessage(w, http.StatusConflict, "not enough stock")
		return
	}

	h.cart.Add(p, m.Quantity, m.SelectedSize)
	writeJSON(w, http.StatusOK, h.cartPayload())
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	var m CartMutation
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.cart.UpdateQuantity(m.ProductID, m.SelectedSize, m.Quantity)
	writeJSON(w, http.StatusOK, h.cartPayload())
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(r.PathValue("id"), r.PathValue("size"))
	writeJSON(w, http.StatusOK, h.cartPayload())
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) cartPayload() Cart {
	items := h.cart.Items()
	totals := h.cart.Totals()

	out := Cart{
		Items: make([]CartItem, 0, len(items)),
		Count: h.cart.Count(),
		Totals: CartTotals{
			Subtotal: totals.Subtotal,
			Tax:      totals.Tax,
			Shipping: totals.Shipping,
			Total:    totals.Total,
		},
	}
	for _, it := range items {
		out.Items = append(out.Items, CartItem{
			Product:      toProduct(it.Product),
			Quantity:     it.Quantity,
			SelectedSize: it.SelectedSize,
		})
	}
	return out
}
