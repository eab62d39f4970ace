// Package store holds every SQL statement of the marketplace. Statements use
// '?' placeholders only, so the same code runs on MySQL and SQLite.
package store

import (
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound reports a missing (or inactive) row.
	ErrNotFound = errors.New("not found")
	// ErrNotFoundOrForbidden is returned alike for a missing listing and one owned by someone else.
	ErrNotFoundOrForbidden = errors.New("not found or forbidden")
	// ErrDuplicateEmail reports an email already held by another account.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrEmptyCart blocks a checkout with nothing to buy.
	ErrEmptyCart = errors.New("cart is empty")
)

// Store is the repository over the users, products and purchases tables.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// New wraps an open connection pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// DB exposes the pool for health checks and tests.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062 // ER_DUP_ENTRY
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// predicates composes a WHERE clause from bound conditions.
type predicates struct {
	clauses []string
	args    []interface{}
}

func (p *predicates) add(clause string, args ...interface{}) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// likeEscaper escapes LIKE wildcards with '!' (same ESCAPE char on MySQL and SQLite).
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
