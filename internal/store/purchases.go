package store

import (
	"context"
	"fmt"

	"github.com/01moynul/ecofind-golang/internal/models"
)

// RecordPurchases writes one purchase per cart line in a single transaction.
// Prices come from the cart snapshot; availability is not re-checked.
func (s *Store) RecordPurchases(ctx context.Context, userID int64, lines []models.CartLine) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkout: %w", err)
	}
	defer tx.Rollback()

	now := s.now().UTC()
	for _, line := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO purchases (user_id, product_id, purchase_price, purchase_date)
			VALUES (?, ?, ?, ?)`,
			userID, line.ProductID, line.Price, now)
		if err != nil {
			return fmt.Errorf("record purchase of product %d: %w", line.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkout: %w", err)
	}
	return nil
}

// ListPurchases returns the buyer's history, newest first.
func (s *Store) ListPurchases(ctx context.Context, userID int64) ([]models.PurchaseDetail, error) {
	purchases := []models.PurchaseDetail{}
	err := s.db.SelectContext(ctx, &purchases, `
		SELECT pur.id, pur.user_id, pur.product_id, pur.purchase_price, pur.purchase_date,
			p.title, p.description, p.image_url
		FROM purchases pur
		JOIN products p ON pur.product_id = p.id
		WHERE pur.user_id = ?
		ORDER BY pur.purchase_date DESC, pur.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}
