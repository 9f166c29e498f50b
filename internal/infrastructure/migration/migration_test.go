package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"edulearn/internal/shared/constants"
	"edulearn/internal/shared/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func tableNames() []string {
	return []string{
		constants.TableSchools,
		constants.TableSubscriptionPlans,
		constants.TableSchoolSubscriptions,
		constants.TablePaymentTransactions,
	}
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	db := openTestDB(t)
	strategy := NewGooseStrategy(t.TempDir(), logger.NewNop())

	require.NoError(t, strategy.Migrate(db))
	for _, table := range tableNames() {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	version, err := strategy.GetVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Running again is a no-op.
	require.NoError(t, strategy.Migrate(db))

	require.NoError(t, strategy.MigrateDown(db, 1))
	assert.False(t, db.Migrator().HasTable(constants.TableSchoolSubscriptions))
}

func TestManager_DevelopmentUsesAutoMigrate(t *testing.T) {
	db := openTestDB(t)
	manager := NewManager(constants.EnvDevelopment, logger.NewNop())

	assert.Equal(t, "gorm_auto_migrate", manager.GetStrategy().GetName())
	require.NoError(t, manager.Migrate(db))
	for _, table := range tableNames() {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestGolangMigrateStrategy_RejectsSQLite(t *testing.T) {
	db := openTestDB(t)
	strategy := NewGolangMigrateStrategy(t.TempDir(), logger.NewNop())

	err := strategy.Migrate(db)
	assert.ErrorContains(t, err, "does not support sqlite")
}

func TestGenerator_CreateMigration(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, logger.NewNop())
	g.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }

	up, down, err := g.CreateMigration("add_invoice_number")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260301093000_add_invoice_number.up.sql"), up)
	assert.FileExists(t, down)

	content, err := os.ReadFile(up)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- Migration: add_invoice_number")

	_, _, err = g.CreateMigration("Bad Name")
	assert.Error(t, err)
}
