package models

import (
	"github.com/shopspring/decimal"
)

// PlaceholderImageURL is used for listings created without an image.
const PlaceholderImageURL = "/static/placeholder.svg"

// Product is the model for the 'products' table.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	UserID      int64           `json:"userId" db:"user_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Category    string          `json:"category" db:"category"`
	Price       decimal.Decimal `json:"price" db:"price"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	Location    *string         `json:"location,omitempty" db:"location"` // NULL when not given
	IsActive    bool            `json:"isActive" db:"is_active"`

	// Joined from 'users' for the public views
	SellerName string `json:"sellerName,omitempty" db:"seller_name"`
}

// ProductFields are the owner-editable columns of a listing.
type ProductFields struct {
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
	Location    *string
}

// ProductFilter narrows the public catalog. Empty fields are ignored.
type ProductFilter struct {
	Category string
	Search   string
}
