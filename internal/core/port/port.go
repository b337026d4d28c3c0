package port

import (
	"context"

	"github.com/muxury/storefront/internal/core/domain"
)

// CatalogReader is the read-only product lookup collaborator.
type CatalogReader interface {
	ProductByID(id string) (domain.Product, bool)
	ProductsByCategory(category string) []domain.Product
	Products() []domain.Product
}

// CatalogBrowser extends the lookup surface with the storefront
// landing-page reads.
type CatalogBrowser interface {
	CatalogReader
	Categories() []domain.Category
	FeaturedProducts() []domain.Product
	NewArrivals() []domain.Product
}

// RecommendationSource exposes the curated co-occurrence tables.
// Returned ids may be stale, resolution drops them at read time.
type RecommendationSource interface {
	AlsoBoughtIDs(productID string) []string
	CompleteTheLookIDs(productID string) []string
}

// KVStore is the durable local key-value collaborator. Load treats a
// missing or unreadable value as absent, it never returns an error.
type KVStore interface {
	Load(key string) (value []byte, ok bool)
	Save(key string, value []byte) error
	Remove(key string) error
}

// AuthProvider is the auth backend collaborator.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, form domain.RegisterForm) (message string, err error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, accessToken string) (domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
}

// ViewsProducer publishes product-view analytics events.
type ViewsProducer interface {
	ProduceView(ctx context.Context, v domain.ProductView) error
}

type Carter interface {
	Add(product domain.Product, quantity int, selectedSize string)
	Remove(productID, selectedSize string)
	UpdateQuantity(productID, selectedSize string, quantity int)
	Clear()
	Items() []domain.CartItem
	Count() int
	Totals() domain.CartTotals
}

type Wishlister interface {
	Add(productID string)
	Remove(productID string)
	Toggle(productID string) (inWishlist bool)
	Contains(productID string) bool
	Clear()
	IDs() []string
	Items() []domain.Product
	Count() int
}

type ViewsRecorder interface {
	RecordView(ctx context.Context, productID string)
	Recent() []domain.Product
	ClearRecent()
	Related(productID string, limit int) []domain.Product
	AlsoBought(productID string, limit int) []domain.Product
	CompleteTheLook(productID string, limit int) []domain.Product
}

type SessionManager interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, form domain.RegisterForm) (string, error)
	Logout(ctx context.Context)
	User() (domain.User, bool)
}
