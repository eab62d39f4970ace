package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the primary connection pool for driver ("mysql" or "sqlite"),
// verifies it and applies the embedded schema migrations for that driver.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := OpenDBWithDSN(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := ApplyMigrations(db.DB, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// OpenDBWithDSN creates and configures a connection pool without touching the schema.
func OpenDBWithDSN(driver, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is required")
	}

	fullDSN, err := dsnFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, fullDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}

	switch driver {
	case "sqlite":
		// SQLite serialises writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}
	return db, nil
}

// dsnFor adds the connection options the store relies on: parseTime for
// MySQL (purchase dates scan into time.Time) and the foreign key and busy
// timeout pragmas for SQLite.
func dsnFor(driver, dsn string) (string, error) {
	switch driver {
	case "mysql":
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil
	case "sqlite":
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
	default:
		return dsn, nil
	}
}
