// Package testutil backs the service tests with an in-memory database,
// fixture constructors, and error assertions.
package testutil

import (
	"testing"

	"moneta/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels lists every table the tests migrate.
var allModels = []interface{}{
	&models.User{},
	&models.BudgetCategory{},
	&models.FixedExpense{},
	&models.Month{},
	&models.MonthlyBudget{},
	&models.IncomeEntry{},
	&models.Item{},
	&models.MonthSnapshot{},
	&models.AuditLog{},
}

// SetupTestDB opens an in-memory SQLite database with the schema migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
