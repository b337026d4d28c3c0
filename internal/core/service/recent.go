package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/port"
)

var _ port.ViewsRecorder = (*Recent)(nil)

const recentStorageKey = "recentlyViewed"

// MaxRecentItems bounds the recency list.
const MaxRecentItems = 12

// Recent owns the recently-viewed history and derives the recommendation
// lists from it and from the curated tables.
//
// The history is most-recent-first, de-duplicated by product id and
// capped at MaxRecentItems. Only ids are persisted, products are
// re-resolved from the catalog on hydrate and stale ids dropped.
type Recent struct {
	mu      sync.Mutex
	items   []domain.Product
	catalog port.CatalogReader
	tables  port.RecommendationSource
	kv      port.KVStore
	views   port.ViewsProducer // optional, nil disables analytics
}

func NewRecent(
	catalog port.CatalogReader,
	tables port.RecommendationSource,
	kv port.KVStore,
	views port.ViewsProducer,
) *Recent {
	r := &Recent{catalog: catalog, tables: tables, kv: kv, views: views}
	r.hydrate()
	return r
}

func (r *Recent) hydrate() {
	const op = "Recent.hydrate"

	data, ok := r.kv.Load(recentStorageKey)
	if !ok {
		return
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		slog.Warn("malformed persisted history, starting empty",
			"op", op, "err", err)
		return
	}

	for _, id := range ids {
		if p, ok := r.catalog.ProductByID(id); ok {
			r.items = append(r.items, p)
		}
	}
	if len(r.items) > MaxRecentItems {
		r.items = r.items[:MaxRecentItems]
	}
}

func (r *Recent) persist() {
	const op = "Recent.persist"

	ids := make([]string, 0, len(r.items))
	for _, p := range r.items {
		ids = append(ids, p.ID)
	}

	data, _ := json.Marshal(ids)
	if err := r.kv.Save(recentStorageKey, data); err != nil {
		slog.Error("failed to persist history", "op", op, "err", err)
	}
}

// RecordView moves the product to the front of the history, dropping any
// older entry with the same id and truncating to MaxRecentItems. Unknown
// ids are a no-op. A ProductView event is emitted best-effort.
func (r *Recent) RecordView(ctx context.Context, productID string) {
	const op = "Recent.RecordView"

	p, ok := r.catalog.ProductByID(productID)
	if !ok {
		return
	}

	r.mu.Lock()
	r.items = slices.DeleteFunc(r.items, func(v domain.Product) bool {
		return v.ID == productID
	})
	r.items = append([]domain.Product{p}, r.items...)
	if len(r.items) > MaxRecentItems {
		r.items = r.items[:MaxRecentItems]
	}
	r.persist()
	r.mu.Unlock()

	if r.views == nil {
		return
	}
	v := domain.ProductView{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		ViewedAt:  time.Now(),
	}
	if err := r.views.ProduceView(ctx, v); err != nil {
		slog.Error("failed to produce view event", "op", op, "err", err)
	}
}

func (r *Recent) Recent() []domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}

// ClearRecent empties the history and its persisted form.
func (r *Recent) ClearRecent() {
	const op = "Recent.ClearRecent"

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	if err := r.kv.Remove(recentStorageKey); err != nil {
		slog.Error("failed to remove persisted history", "op", op, "err", err)
	}
}

// Related returns catalog products sharing the seed's category, seed
// excluded. Short results are returned as-is, category pools carry the
// panel on their own.
func (r *Recent) Related(productID string, limit int) []domain.Product {
	seed, ok := r.catalog.ProductByID(productID)
	if !ok {
		return nil
	}

	var out []domain.Product
	for _, p := range r.catalog.ProductsByCategory(seed.Category) {
		if p.ID == productID {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// AlsoBought resolves the curated also-bought ids and supplements short
// results with different-category products so the panel never renders
// oddly short.
func (r *Recent) AlsoBought(productID string, limit int) []domain.Product {
	return r.compose(productID, r.tables.AlsoBoughtIDs(productID), limit)
}

// CompleteTheLook is the same composition over the complementary-item
// table.
func (r *Recent) CompleteTheLook(productID string, limit int) []domain.Product {
	return r.compose(productID, r.tables.CompleteTheLookIDs(productID), limit)
}

// compose is the primary-source-plus-fallback rule: curated results
// first, then different-category supplements until limit, final slice to
// limit. Stale curated ids are dropped during resolution.
func (r *Recent) compose(seedID string, curated []string, limit int) []domain.Product {
	var out []domain.Product
	for _, id := range curated {
		if p, ok := r.catalog.ProductByID(id); ok {
			out = append(out, p)
		}
	}

	if len(out) < limit {
		var seedCategory string
		if seed, ok := r.catalog.ProductByID(seedID); ok {
			seedCategory = seed.Category
		}

		for _, p := range r.catalog.Products() {
			if len(out) == limit {
				break
			}
			if p.ID == seedID || p.Category == seedCategory {
				continue
			}
			if slices.ContainsFunc(out, func(v domain.Product) bool {
				return v.ID == p.ID
			}) {
				continue
			}
			out = append(out, p)
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
