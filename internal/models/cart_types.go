package models

import "github.com/shopspring/decimal"

// CartLine is one "add to cart" click. It snapshots the product at the
// time it was added and lives only inside the owning session.
type CartLine struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
}

// NewCartLine snapshots a product into a cart line.
func NewCartLine(p *Product) CartLine {
	return CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
	}
}

// CartTotal sums the snapshot prices of lines.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price)
	}
	return total
}
