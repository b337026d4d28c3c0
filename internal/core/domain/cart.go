package domain

// A CartItem is one cart row. Identity key is (Product.ID, SelectedSize):
// the same product in two sizes makes two rows, the same product and size
// always merges into one.
type CartItem struct {
	Product      Product
	Quantity     int
	SelectedSize string
}

// CartTotals holds the derived money values of a cart. They are computed
// from the items on every read and never stored.
type CartTotals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}
