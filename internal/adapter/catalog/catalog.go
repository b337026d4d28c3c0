package catalog

import (
	"fmt"
	"os"
	"slices"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/port"
	"gopkg.in/yaml.v3"
)

var _ port.CatalogReader = (*Catalog)(nil)
var _ port.RecommendationSource = (*Catalog)(nil)

type (
	productDoc struct {
		ID            string   `yaml:"id"`
		Name          string   `yaml:"name"`
		Price         float64  `yaml:"price"`
		OriginalPrice float64  `yaml:"original_price"`
		Images        []string `yaml:"images"`
		Category      string   `yaml:"category"`
		Sizes         []string `yaml:"sizes"`
		Stock         int      `yaml:"stock"`
		Rating        float64  `yaml:"rating"`
		ReviewsCount  int      `yaml:"reviews_count"`
		Description   string   `yaml:"description"`
		IsNew         bool     `yaml:"is_new"`
		IsFeatured    bool     `yaml:"is_featured"`
	}

	categoryDoc struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	}

	catalogDoc struct {
		Categories      []categoryDoc       `yaml:"categories"`
		Products        []productDoc        `yaml:"products"`
		AlsoBought      map[string][]string `yaml:"also_bought"`
		CompleteTheLook map[string][]string `yaml:"complete_the_look"`
	}
)

// Catalog is the static read-only product source plus the curated
// recommendation tables. Table contents are data, the composition policy
// lives in the core service.
type Catalog struct {
	products        []domain.Product
	byID            map[string]domain.Product
	categories      []domain.Category
	alsoBought      map[string][]string
	completeTheLook map[string][]string
}

// Load reads and parses the catalog file.
func Load(path string) (*Catalog, error) {
	const op = "catalog.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// Parse builds a catalog from YAML. Duplicate product ids are rejected,
// curated table entries pointing at unknown ids are kept: resolution
// drops them at read time.
func Parse(data []byte) (*Catalog, error) {
	const op = "catalog.Parse"

	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &Catalog{
		byID:            make(map[string]domain.Product, len(doc.Products)),
		alsoBought:      doc.AlsoBought,
		completeTheLook: doc.CompleteTheLook,
	}

	for _, pd := range doc.Products {
		if pd.ID == "" {
			return nil, fmt.Errorf("%s: product without id", op)
		}
		if _, exists := c.byID[pd.ID]; exists {
			return nil, fmt.Errorf("%s: duplicate product id %q", op, pd.ID)
		}
		p := domain.Product{
			ID:            pd.ID,
			Name:          pd.Name,
			Price:         pd.Price,
			OriginalPrice: pd.OriginalPrice,
			Images:        pd.Images,
			Category:      pd.Category,
			Sizes:         pd.Sizes,
			Stock:         pd.Stock,
			Rating:        pd.Rating,
			ReviewsCount:  pd.ReviewsCount,
			Description:   pd.Description,
			IsNew:         pd.IsNew,
			IsFeatured:    pd.IsFeatured,
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}

	for _, cd := range doc.Categories {
		c.categories = append(c.categories, domain.Category{
			ID:   cd.ID,
			Name: cd.Name,
			Slug: cd.Slug,
		})
	}

	return c, nil
}

func (c *Catalog) ProductByID(id string) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) ProductsByCategory(category string) []domain.Product {
	var ps []domain.Product
	for _, p := range c.products {
		if p.Category == category {
			ps = append(ps, p)
		}
	}
	return ps
}

func (c *Catalog) Products() []domain.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Categories() []domain.Category {
	return slices.Clone(c.categories)
}

func (c *Catalog) FeaturedProducts() []domain.Product {
	var ps []domain.Product
	for _, p := range c.products {
		if p.IsFeatured {
			ps = append(ps, p)
		}
	}
	return ps
}

func (c *Catalog) NewArrivals() []domain.Product {
	var ps []domain.Product
	for _, p := range c.products {
		if p.IsNew {
			ps = append(ps, p)
		}
	}
	return ps
}

func (c *Catalog) AlsoBoughtIDs(productID string) []string {
	return c.alsoBought[productID]
}

func (c *Catalog) CompleteTheLookIDs(productID string) []string {
	return c.completeTheLook[productID]
}
