package httphandler

import "github.com/muxury/storefront/internal/core/domain"

type (
	Product struct {
		ID            string   `json:"id"`
		Name          string   `json:"name"`
		Price         float64  `json:"price"`
		OriginalPrice float64  `json:"original_price,omitempty"`
		Images        []string `json:"images,omitempty"`
		Category      string   `json:"category"`
		Sizes         []string `json:"sizes"`
		Stock         int      `json:"stock"`
		Rating        float64  `json:"rating"`
		ReviewsCount  int      `json:"reviews_count"`
		Description   string   `json:"description,omitempty"`
		IsNew         bool     `json:"is_new"`
		IsFeatured    bool     `json:"is_featured"`
	}

	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	CartItem struct {
		Product      Product `json:"product"`
		Quantity     int     `json:"quantity"`
		SelectedSize string  `json:"selected_size"`
	}

	CartTotals struct {
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Shipping float64 `json:"shipping"`
		Total    float64 `json:"total"`
	}

	Cart struct {
		Items  []CartItem `json:"items"`
		Count  int        `json:"count"`
		Totals CartTotals `json:"totals"`
	}

	CartMutation struct {
		ProductID    string `json:"product_id"`
		SelectedSize string `json:"selected_size"`
		Quantity     int    `json:"quantity"`
	}

	Wishlist struct {
		IDs   []string  `json:"ids"`
		Items []Product `json:"items"`
		Count int       `json:"count"`
	}

	WishlistToggle struct {
		InWishlist bool `json:"in_wishlist"`
	}

	User struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone,omitempty"`
		Role      string `json:"role"`
		Avatar    string `json:"avatar,omitempty"`
	}

	LoginForm struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	RegisterForm struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Phone     string `json:"phone"`
	}

	Message struct {
		Message string `json:"message"`
	}
)

func toProduct(p domain.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Images:        p.Images,
		Category:      p.Category,
		Sizes:         p.Sizes,
		Stock:         p.Stock,
		Rating:        p.Rating,
		ReviewsCount:  p.ReviewsCount,
		Description:   p.Description,
		IsNew:         p.IsNew,
		IsFeatured:    p.IsFeatured,
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

func toCategories(cs []domain.Category) []Category {
	out := make([]Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, Category{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return out
}

func toUser(u domain.User) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		Avatar:    u.Avatar,
	}
}
