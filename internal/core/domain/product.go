package domain

type (
	// A Product is an immutable catalog entry. The catalog adapter owns
	// the data, every other component only reads it.
	Product struct {
		ID            string
		Name          string
		Price         float64
		OriginalPrice float64 // zero when the product is not discounted
		Images        []string
		Category      string
		Sizes         []string
		Stock         int
		Rating        float64
		ReviewsCount  int
		Description   string
		IsNew         bool
		IsFeatured    bool
	}

	Category struct {
		ID   string
		Name string
		Slug string
	}
)

// Discounted reports whether the product carries a crossed-out price.
func (p Product) Discounted() bool {
	return p.OriginalPrice > p.Price
}
