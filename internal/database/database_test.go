package database

import (
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDBRequiresDSN(t *testing.T) {
	_, err := OpenDB("sqlite", "")
	assert.Error(t, err)
}

func TestOpenDBRunsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecofind.db")
	db, err := OpenDB("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"users", "products", "purchases", migrationTable} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	var applied int
	require.NoError(t, db.Get(&applied, "SELECT COUNT(*) FROM "+migrationTable))
	assert.Equal(t, 1, applied)
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecofind.db")
	db, err := OpenDB("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, ApplyMigrations(db.DB, "sqlite"))

	var applied int
	require.NoError(t, db.Get(&applied, "SELECT COUNT(*) FROM "+migrationTable))
	assert.Equal(t, 1, applied)
}

func TestApplyMigrationsSkipsRecordedFiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM schema_migrations WHERE name = ?").
		WithArgs("0001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	require.NoError(t, ApplyMigrations(db, "mysql"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMigrationsUnknownDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, ApplyMigrations(db, "oracle"))
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n"
	up := ExtractUpMigration(content)
	assert.Contains(t, up, "CREATE TABLE a")
	assert.NotContains(t, up, "DROP TABLE")
}

func TestSplitStatements(t *testing.T) {
	stmts := SplitStatements("CREATE TABLE a (id INT);\n\n CREATE TABLE b (id INT);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"}, stmts)
}

func TestDSNForMySQLForcesParseTime(t *testing.T) {
	dsn, err := dsnFor("mysql", "app:pw@tcp(db:3306)/ecofind")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "ecofind", cfg.DBName)
	assert.Equal(t, "db:3306", cfg.Addr)

	// Already set stays set.
	dsn, err = dsnFor("mysql", "app:pw@tcp(db:3306)/ecofind?parseTime=true&loc=UTC")
	require.NoError(t, err)
	cfg, err = mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)

	_, err = dsnFor("mysql", "not a dsn")
	assert.Error(t, err)
}

func TestDSNForSQLiteAddsPragmas(t *testing.T) {
	dsn, err := dsnFor("sqlite", "/tmp/a.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dsn)

	dsn, err = dsnFor("sqlite", "file:/tmp/a.db?mode=rwc")
	require.NoError(t, err)
	assert.Equal(t, "file:/tmp/a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dsn)
}
