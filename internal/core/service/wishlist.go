package service

import (
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/port"
)

var _ port.Wishlister = (*Wishlist)(nil)

const wishlistStorageKey = "radiant-cart-wishlist"

// Wishlist owns an ordered set of product ids. The store enforces
// uniqueness, callers may add and remove freely.
type Wishlist struct {
	mu      sync.Mutex
	ids     []string
	catalog port.CatalogReader
	kv      port.KVStore
}

func NewWishlist(catalog port.CatalogReader, kv port.KVStore) *Wishlist {
	w := &Wishlist{catalog: catalog, kv: kv}
	w.hydrate()
	return w
}

func (w *Wishlist) hydrate() {
	const op = "Wishlist.hydrate"

	data, ok := w.kv.Load(wishlistStorageKey)
	if !ok {
		return
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		slog.Warn("malformed persisted wishlist, starting empty",
			"op", op, "err", err)
		return
	}

	for _, id := range ids {
		if !slices.Contains(w.ids, id) {
			w.ids = append(w.ids, id)
		}
	}
}

func (w *Wishlist) persist() {
	const op = "Wishlist.persist"

	data, _ := json.Marshal(w.ids)
	if err := w.kv.Save(wishlistStorageKey, data); err != nil {
		slog.Error("failed to persist wishlist", "op", op, "err", err)
	}
}

// Add is idempotent: a present id is left where it is.
func (w *Wishlist) Add(productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if slices.Contains(w.ids, productID) {
		return
	}
	w.ids = append(w.ids, productID)
	w.persist()
}

// Remove is idempotent: an absent id is a no-op.
func (w *Wishlist) Remove(productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	before := len(w.ids)
	w.ids = slices.DeleteFunc(w.ids, func(id string) bool {
		return id == productID
	})
	if len(w.ids) != before {
		w.persist()
	}
}

// Toggle adds an absent id and removes a present one. It reports whether
// the id is in the wishlist after the call.
func (w *Wishlist) Toggle(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if slices.Contains(w.ids, productID) {
		w.ids = slices.DeleteFunc(w.ids, func(id string) bool {
			return id == productID
		})
		w.persist()
		return false
	}
	w.ids = append(w.ids, productID)
	w.persist()
	return true
}

func (w *Wishlist) Contains(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Contains(w.ids, productID)
}

func (w *Wishlist) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ids = nil
	w.persist()
}

func (w *Wishlist) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.ids)
}

// Items resolves the stored ids against the catalog. Stale ids are
// silently dropped but stay persisted.
func (w *Wishlist) Items() []domain.Product {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ps []domain.Product
	for _, id := range w.ids {
		if p, ok := w.catalog.ProductByID(id); ok {
			ps = append(ps, p)
		}
	}
	return ps
}

func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.ids)
}
