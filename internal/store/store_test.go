package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/ecofind-golang/internal/database"
	"github.com/01moynul/ecofind-golang/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenDB("sqlite", filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db)
}

func mustUser(t *testing.T, s *Store, username, email string) int64 {
	t.Helper()
	id, err := s.CreateUser(context.Background(), username, email, "hash")
	require.NoError(t, err)
	return id
}

func mustProduct(t *testing.T, s *Store, owner int64, title, category, price string) int64 {
	t.Helper()
	id, err := s.CreateProduct(context.Background(), owner, models.ProductFields{
		Title:       title,
		Description: title + " description",
		Category:    category,
		Price:       decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return id
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice2", "alice@example.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, countRows(t, s, "users"))
}

func TestGetUserByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := mustUser(t, s, "alice", "alice@example.com")

	u, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "alice", u.Username)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetUserByID(ctx, id+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice", "alice@example.com")
	mustUser(t, s, "bob", "bob@example.com")

	err := s.UpdateProfile(ctx, alice, "alice", "bob@example.com")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Keeping one's own email is not a conflict.
	require.NoError(t, s.UpdateProfile(ctx, alice, "alicia", "alice@example.com"))
	require.NoError(t, s.UpdateProfile(ctx, alice, "alicia", "alicia@example.com"))

	u, err := s.GetUserByID(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alicia", u.Username)
	assert.Equal(t, "alicia@example.com", u.Email)
}

func TestCreateProductDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice", "alice@example.com")

	id := mustProduct(t, s, alice, "Bike", "sports", "50")
	p, err := s.GetActiveProduct(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, models.PlaceholderImageURL, p.ImageURL)
	assert.Nil(t, p.Location)
	assert.True(t, p.IsActive)
	assert.Equal(t, "alice", p.SellerName)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(50)))

	loc := "Berlin"
	id2, err := s.CreateProduct(ctx, alice, models.ProductFields{
		Title: "Lamp", Description: "desk lamp", Category: "home",
		Price: decimal.RequireFromString("12.50"), ImageURL: "/uploads/lamp.png", Location: &loc,
	})
	require.NoError(t, err)
	p2, err := s.GetActiveProduct(ctx, id2)
	require.NoError(t, err)
	require.NotNil(t, p2.Location)
	assert.Equal(t, "Berlin", *p2.Location)
	assert.Equal(t, "/uploads/lamp.png", p2.ImageURL)
	assert.True(t, p2.Price.Equal(decimal.RequireFromString("12.5")))
}

func TestListActiveProductsFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice", "alice@example.com")

	bike := mustProduct(t, s, alice, "Bike", "sports", "50")
	mustProduct(t, s, alice, "Mountain BIKE helmet", "sports", "15")
	mustProduct(t, s, alice, "Sofa", "home", "120")
	mustProduct(t, s, alice, "100% cotton shirt", "clothes", "8")

	all, err := s.ListActiveProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, bike, all[0].ID, "feed is in id order")

	sports, err := s.ListActiveProducts(ctx, models.ProductFilter{Category: "sports"})
	require.NoError(t, err)
	assert.Len(t, sports, 2)

	bikes, err := s.ListActiveProducts(ctx, models.ProductFilter{Search: "bike"})
	require.NoError(t, err)
	assert.Len(t, bikes, 2)

	both, err := s.ListActiveProducts(ctx, models.ProductFilter{Category: "home", Search: "bike"})
	require.NoError(t, err)
	assert.Empty(t, both)

	// Wildcards typed by the user match literally.
	pct, err := s.ListActiveProducts(ctx, models.ProductFilter{Search: "%"})
	require.NoError(t, err)
	require.Len(t, pct, 1)
	assert.Equal(t, "100% cotton shirt", pct[0].Title)

	under, err := s.ListActiveProducts(ctx, models.ProductFilter{Search: "_"})
	require.NoError(t, err)
	assert.Empty(t, under)

	categories, err := s.ListActiveCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"clothes", "home", "sports"}, categories)
}

func TestSoftDeleteHidesProductEverywhere(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice", "alice@example.com")
	id := mustProduct(t, s, alice, "Bike", "sports", "50")

	require.NoError(t, s.SoftDeleteProduct(ctx, id, alice))

	feed, err := s.ListActiveProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, feed)

	categories, err := s.ListActiveCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	_, err = s.GetActiveProduct(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	owned, err := s.ListOwnedProducts(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, owned)

	// The row itself is kept.
	assert.Equal(t, 1, countRows(t, s, "products"))

	// Deleting again is reported like any other miss.
	assert.ErrorIs(t, s.SoftDeleteProduct(ctx, id, alice), ErrNotFoundOrForbidden)
}

func TestNonOwnerCannotEditOrDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice", "alice@example.com")
	bob := mustUser(t, s, "bob", "bob@example.com")
	id := mustProduct(t, s, alice, "Bike", "sports", "50")

	fields := models.ProductFields{Title: "Stolen", Description: "x", Category: "sports", Price: decimal.NewFromInt(1)}

	for _, target := range []int64{id, id + 1000} {
		assert.ErrorIs(t, s.UpdateProduct(ctx, target, bob, fields), ErrNotFoundOrForbidden)
		assert.ErrorIs(t, s.SoftDeleteProduct(ctx, target, bob), ErrNotFoundOrForbidden)
		_, err := s.GetOwnedProduct(ctx, target, bob)
		assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
	}

	p, err := s.GetActiveProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bike", p.Title)
}

func TestUpdateProductByOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice", "alice@example.com")
	id := mustProduct(t, s, alice, "Bike", "sports", "50")

	loc := "Paris"
	err := s.UpdateProduct(ctx, id, alice, models.ProductFields{
		Title: "Road bike", Description: "fast", Category: "cycling",
		Price: decimal.RequireFromString("45.99"), Location: &loc,
	})
	require.NoError(t, err)

	p, err := s.GetOwnedProduct(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, "Road bike", p.Title)
	assert.Equal(t, "cycling", p.Category)
	assert.Equal(t, alice, p.UserID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("45.99")))
	require.NotNil(t, p.Location)
	assert.Equal(t, "Paris", *p.Location)
}

func TestRecordPurchasesAndHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice", "alice@example.com")
	bob := mustUser(t, s, "bob", "bob@example.com")
	x := mustProduct(t, s, alice, "X", "misc", "20")
	y := mustProduct(t, s, alice, "Y", "misc", "30")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	require.NoError(t, s.RecordPurchases(ctx, bob, []models.CartLine{
		{ProductID: x, Title: "X", Price: decimal.NewFromInt(20)},
	}))

	s.now = func() time.Time { return base.Add(time.Hour) }
	require.NoError(t, s.RecordPurchases(ctx, bob, []models.CartLine{
		{ProductID: y, Title: "Y", Price: decimal.NewFromInt(30)},
	}))

	// A later price edit does not rewrite history.
	require.NoError(t, s.UpdateProduct(ctx, x, alice, models.ProductFields{
		Title: "X", Description: "x", Category: "misc", Price: decimal.NewFromInt(99),
	}))

	history, err := s.ListPurchases(ctx, bob)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, y, history[0].ProductID, "newest first")
	assert.Equal(t, "Y", history[0].Title)
	assert.Equal(t, x, history[1].ProductID)
	assert.True(t, history[1].PurchasePrice.Equal(decimal.NewFromInt(20)))
	assert.True(t, history[0].PurchaseDate.After(history[1].PurchaseDate))

	others, err := s.ListPurchases(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestRecordPurchasesEmptyCart(t *testing.T) {
	s := newTestStore(t)
	bob := mustUser(t, s, "bob", "bob@example.com")

	err := s.RecordPurchases(context.Background(), bob, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, countRows(t, s, "purchases"))
}

func TestRecordPurchasesIsAtomic(t *testing.T) {
	s := newTestStore(t)
	alice := mustUser(t, s, "alice", "alice@example.com")
	bob := mustUser(t, s, "bob", "bob@example.com")
	x := mustProduct(t, s, alice, "X", "misc", "20")

	lines := []models.CartLine{
		{ProductID: x, Price: decimal.NewFromInt(20)},
		{ProductID: x + 999, Price: decimal.NewFromInt(30)}, // violates the product foreign key
	}
	err := s.RecordPurchases(context.Background(), bob, lines)
	require.Error(t, err)
	assert.Equal(t, 0, countRows(t, s, "purchases"))
}

func TestRecordPurchasesRollsBackOnInsertFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	s := New(sqlx.NewDb(mockDB, "sqlmock"))
	lines := []models.CartLine{
		{ProductID: 1, Price: decimal.NewFromInt(20)},
		{ProductID: 2, Price: decimal.NewFromInt(30)},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO purchases").
		WithArgs(int64(7), int64(1), "20", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO purchases").
		WithArgs(int64(7), int64(2), "30", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = s.RecordPurchases(context.Background(), 7, lines)
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}
