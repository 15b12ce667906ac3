package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Hasan-Creations/MobiSwap/pkg/config"
)

func TestValidateDir_Repository(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestValidateDir_RejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Order Notes")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_order_notes.sql"), path)
	require.NoError(t, ValidateDir(dir))
}

func TestGooseDialect(t *testing.T) {
	got, err := gooseDialect(config.DBDriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", got)

	got, err = gooseDialect("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", got)

	_, err = gooseDialect("mysql")
	assert.Error(t, err)
}

func TestRun_AppliesMigrationsOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Run(context.Background(), sqlDB, config.DBDriverSQLite, "migrations", "up"))

	for _, table := range []string{"orders", "exchange_requests"} {
		assert.True(t, conn.Migrator().HasTable(table), "expected table %s", table)
	}
}
