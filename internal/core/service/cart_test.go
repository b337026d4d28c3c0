package service_test

import (
	"testing"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart(t *testing.T) {
	gown := testProduct("1", "dresses", 100)
	tote := testProduct("4", "accessories", 50)

	catalog := &fakeCatalog{products: []domain.Product{gown, tote}}

	t.Run("IdempotentAdd", func(t *testing.T) {
		cart := service.NewCart(catalog, newFakeKV())

		cart.Add(gown, 1, "M")
		cart.Add(gown, 1, "M")

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, "M", items[0].SelectedSize)
	})

	t.Run("DistinctSizesAreDistinctRows", func(t *testing.T) {
		cart := service.NewCart(catalog, newFakeKV())

		cart.Add(gown, 1, "M")
		cart.Add(gown, 1, "L")

		require.Len(t, cart.Items(), 2)
	})

	t.Run("InsertionOrderPreserved", func(t *testing.T) {
		cart := service.NewCart(catalog, newFakeKV())

		cart.Add(gown, 1, "M")
		cart.Add(tote, 1, "One Size")
		cart.Add(gown, 3, "M")

		items := cart.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "1", items[0].Product.ID)
		assert.Equal(t, 4, items[0].Quantity)
		assert.Equal(t, "4", items[1].Product.ID)
	})

	t.Run("RemoveAbsentIsNoop", func(t *testing.T) {
		cart := service.NewCart(catalog, newFakeKV())
		cart.Add(gown, 1, "M")

		cart.Remove("unknown", "M")
		cart.Remove("1", "XL")

		require.Len(t, cart.Items(), 1)
	})

	t.Run("UpdateQuantityReplaces", func(t *testing.T) {
		cart := service.NewCart(catalog, newFakeKV())
		cart.Add(gown, 2, "M")

		cart.UpdateQuantity("1", "M", 5)

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("UpdateQuantityZeroRemoves", func(t *testing.T) {
		cart := service.NewCart(catalog, newFakeKV())
		cart.Add(gown, 2, "M")

		cart.UpdateQuantity("1", "M", 0)

		assert.Empty(t, cart.Items())
	})

	t.Run("UpdateQuantityAbsentIsNoop", func(t *testing.T) {
		cart := service.NewCart(catalog, newFakeKV())
		cart.Add(gown, 2, "M")

		cart.UpdateQuantity("unknown", "M", 7)

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Clear", func(t *testing.T) {
		cart := service.NewCart(catalog, newFakeKV())
		cart.Add(gown, 1, "M")
		cart.Add(tote, 1, "One Size")

		cart.Clear()

		assert.Empty(t, cart.Items())
		assert.Zero(t, cart.Count())
	})

	t.Run("DerivedTotalsRecompute", func(t *testing.T) {
		cart := service.NewCart(catalog, newFakeKV())
		cart.Add(gown, 1, "M")        // 100
		cart.Add(tote, 2, "One Size") // 2 x 50

		totals := cart.Totals()
		assert.InDelta(t, 200.0, totals.Subtotal, 1e-9)
		assert.InDelta(t, 20.0, totals.Tax, 1e-9)
		assert.Zero(t, totals.Shipping)
		assert.InDelta(t, 220.0, totals.Total, 1e-9)
		assert.Equal(t, 3, cart.Count())

		cart.UpdateQuantity("4", "One Size", 1)

		totals = cart.Totals()
		assert.InDelta(t, 150.0, totals.Subtotal, 1e-9)
		assert.InDelta(t, 15.0, totals.Tax, 1e-9)
		assert.Zero(t, totals.Shipping)
		assert.InDelta(t, 165.0, totals.Total, 1e-9)
	})

	t.Run("ShippingThresholdInclusive", func(t *testing.T) {
		exact := testProduct("100", "dresses", 100)
		below := testProduct("99", "dresses", 99.99)
		c := &fakeCatalog{products: []domain.Product{exact, below}}

		cart := service.NewCart(c, newFakeKV())
		cart.Add(exact, 1, "M")
		assert.Zero(t, cart.Totals().Shipping)

		cart.Clear()
		cart.Add(below, 1, "M")
		assert.InDelta(t, 15.0, cart.Totals().Shipping, 1e-9)
	})

	t.Run("PersistAndHydrate", func(t *testing.T) {
		kv := newFakeKV()

		first := service.NewCart(catalog, kv)
		first.Add(gown, 2, "M")
		first.Add(tote, 1, "One Size")

		second := service.NewCart(catalog, kv)
		items := second.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "1", items[0].Product.ID)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("MalformedPersistedStateHydratesEmpty", func(t *testing.T) {
		kv := newFakeKV()
		require.NoError(t, kv.Save("radiant-cart-items", []byte("{broken")))

		cart := service.NewCart(catalog, kv)
		assert.Empty(t, cart.Items())
	})

	t.Run("StaleProductIDDroppedOnHydrate", func(t *testing.T) {
		kv := newFakeKV()
		first := service.NewCart(catalog, kv)
		first.Add(gown, 1, "M")
		first.Add(tote, 1, "One Size")

		shrunk := &fakeCatalog{products: []domain.Product{gown}}
		second := service.NewCart(shrunk, kv)
		items := second.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "1", items[0].Product.ID)
	})
}
