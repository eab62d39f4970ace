package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is the model for the 'purchases' table
type Purchase struct {
	ID            int64           `json:"id" db:"id"`
	UserID        int64           `json:"userId" db:"user_id"`
	ProductID     int64           `json:"productId" db:"product_id"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" db:"purchase_price"` // Price at the time of purchase
	PurchaseDate  time.Time       `json:"purchaseDate" db:"purchase_date"`
}

// PurchaseDetail extends Purchase with the product's display fields.
type PurchaseDetail struct {
	Purchase
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	ImageURL    string `json:"imageUrl" db:"image_url"`
}
