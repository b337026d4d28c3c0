package domain

import "time"

// A ProductView is a behavior-analytics event emitted when a product
// detail is viewed. SessionID is stamped by the producing adapter.
type ProductView struct {
	SessionID string
	ProductID string
	Name      string
	Category  string
	Price     float64
	ViewedAt  time.Time
}
