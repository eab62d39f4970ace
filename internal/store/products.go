package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/01moynul/ecofind-golang/internal/models"
)

const productColumns = `p.id, p.user_id, p.title, p.description, p.category, p.price,
	p.image_url, p.location, p.is_active`

// ListActiveProducts returns the public feed in id order.
func (s *Store) ListActiveProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	var preds predicates
	preds.add("p.is_active = 1")
	if filter.Category != "" {
		preds.add("p.category = ?", filter.Category)
	}
	if filter.Search != "" {
		preds.add("LOWER(p.title) LIKE LOWER(?) ESCAPE '!'", containsPattern(filter.Search))
	}

	query := "SELECT " + productColumns + `, u.username AS seller_name
		FROM products p
		JOIN users u ON p.user_id = u.id` + preds.where() + " ORDER BY p.id ASC"

	products := []models.Product{}
	if err := s.db.SelectContext(ctx, &products, query, preds.args...); err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return products, nil
}

// ListActiveCategories returns the distinct categories of active listings, sorted.
func (s *Store) ListActiveCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := s.db.SelectContext(ctx, &categories,
		"SELECT DISTINCT category FROM products WHERE is_active = 1 ORDER BY category ASC")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetActiveProduct returns an active listing with its seller, or ErrNotFound.
func (s *Store) GetActiveProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.db.GetContext(ctx, &p, "SELECT "+productColumns+`, u.username AS seller_name
		FROM products p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = ? AND p.is_active = 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListOwnedProducts returns the owner's active listings.
func (s *Store) ListOwnedProducts(ctx context.Context, ownerID int64) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, "SELECT "+productColumns+`
		FROM products p
		WHERE p.user_id = ? AND p.is_active = 1
		ORDER BY p.id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owned products: %w", err)
	}
	return products, nil
}

// GetOwnedProduct loads an active listing for its owner's edit form.
func (s *Store) GetOwnedProduct(ctx context.Context, id, ownerID int64) (*models.Product, error) {
	var p models.Product
	err := s.db.GetContext(ctx, &p, "SELECT "+productColumns+`
		FROM products p
		WHERE p.id = ? AND p.user_id = ? AND p.is_active = 1`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("get owned product: %w", err)
	}
	return &p, nil
}

// CreateProduct inserts an active listing owned by ownerID.
func (s *Store) CreateProduct(ctx context.Context, ownerID int64, f models.ProductFields) (int64, error) {
	if f.ImageURL == "" {
		f.ImageURL = models.PlaceholderImageURL
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO products (user_id, title, description, category, price, image_url, location, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ownerID, f.Title, f.Description, f.Category, f.Price, f.ImageURL, f.Location, true)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return result.LastInsertId()
}

// UpdateProduct overwrites the mutable fields of a listing. It fails with
// ErrNotFoundOrForbidden unless an active row with both id and owner exists.
func (s *Store) UpdateProduct(ctx context.Context, id, ownerID int64, f models.ProductFields) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update product: %w", err)
	}
	defer tx.Rollback()

	var found int64
	err = tx.GetContext(ctx, &found,
		"SELECT id FROM products WHERE id = ? AND user_id = ? AND is_active = 1", id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFoundOrForbidden
		}
		return fmt.Errorf("check product owner: %w", err)
	}

	if f.ImageURL == "" {
		f.ImageURL = models.PlaceholderImageURL
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE products
		SET title = ?, description = ?, category = ?, price = ?, image_url = ?, location = ?
		WHERE id = ? AND user_id = ?`,
		f.Title, f.Description, f.Category, f.Price, f.ImageURL, f.Location, id, ownerID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return tx.Commit()
}

// SoftDeleteProduct deactivates a listing on an id+owner match only.
func (s *Store) SoftDeleteProduct(ctx context.Context, id, ownerID int64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE products SET is_active = 0 WHERE id = ? AND user_id = ? AND is_active = 1", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}
