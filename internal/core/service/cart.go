package service

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/port"
)

var _ port.Carter = (*Cart)(nil)

const cartStorageKey = "radiant-cart-items"

const (
	taxRate               = 0.10
	freeShippingThreshold = 100
	shippingCost          = 15
)

// A persisted cart row. Products are re-resolved from the catalog on
// hydrate, so only the identity key and the quantity are stored.
type cartRow struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// Cart owns the cart line items and their derived totals.
//
// All operations are total: well-formed calls never fail. Every mutation
// persists the full state, malformed persisted state hydrates as empty.
type Cart struct {
	mu      sync.Mutex
	items   []domain.CartItem
	catalog port.CatalogReader
	kv      port.KVStore
}

func NewCart(catalog port.CatalogReader, kv port.KVStore) *Cart {
	c := &Cart{catalog: catalog, kv: kv}
	c.hydrate()
	return c
}

func (c *Cart) hydrate() {
	const op = "Cart.hydrate"
	log := slog.With("op", op)

	data, ok := c.kv.Load(cartStorageKey)
	if !ok {
		return
	}

	var rows []cartRow
	if err := json.Unmarshal(data, &rows); err != nil {
		log.Warn("malformed persisted cart, starting empty", "err", err)
		return
	}

	for _, row := range rows {
		if row.Quantity < 1 {
			continue
		}
		p, ok := c.catalog.ProductByID(row.ProductID)
		if !ok {
			continue
		}
		c.items = append(c.items, domain.CartItem{
			Product:      p,
			Quantity:     row.Quantity,
			SelectedSize: row.Size,
		})
	}
}

func (c *Cart) persist() {
	const op = "Cart.persist"

	rows := make([]cartRow, 0, len(c.items))
	for _, it := range c.items {
		rows = append(rows, cartRow{
			ProductID: it.Product.ID,
			Size:      it.SelectedSize,
			Quantity:  it.Quantity,
		})
	}

	data, _ := json.Marshal(rows)
	if err := c.kv.Save(cartStorageKey, data); err != nil {
		slog.Error("failed to persist cart", "op", op, "err", err)
	}
}

// Add merges quantity into the existing (product, size) row or appends a
// new row preserving insertion order. Quantities below one are ignored.
// Stock is not enforced here, that is a caller concern.
func (c *Cart) Add(product domain.Product, quantity int, selectedSize string) {
	if quantity < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, it := range c.items {
		if it.Product.ID == product.ID && it.SelectedSize == selectedSize {
			c.items[i].Quantity += quantity
			c.persist()
			return
		}
	}

	c.items = append(c.items, domain.CartItem{
		Product:      product,
		Quantity:     quantity,
		SelectedSize: selectedSize,
	})
	c.persist()
}

// Remove deletes the matching row. Absent rows are a no-op.
func (c *Cart) Remove(productID, selectedSize string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID, selectedSize)
	c.persist()
}

func (c *Cart) removeLocked(productID, selectedSize string) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.Product.ID == productID && it.SelectedSize == selectedSize {
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
}

// UpdateQuantity sets the absolute quantity of the matching row.
// Zero or negative quantity removes the row, absent rows are a no-op.
func (c *Cart) UpdateQuantity(productID, selectedSize string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID, selectedSize)
		c.persist()
		return
	}

	for i, it := range c.items {
		if it.Product.ID == productID && it.SelectedSize == selectedSize {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.persist()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persist()
}

func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Count is the badge value: the sum of quantities across all rows.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Totals recomputes subtotal, tax, shipping and total from the current
// items. Shipping is free from the threshold up, inclusive.
func (c *Cart) Totals() domain.CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var t domain.CartTotals
	for _, it := range c.items {
		t.Subtotal += it.Product.Price * float64(it.Quantity)
	}
	t.Tax = t.Subtotal * taxRate
	if t.Subtotal < freeShippingThreshold {
		t.Shipping = shippingCost
	}
	t.Total = t.Subtotal + t.Tax + t.Shipping
	return t
}
