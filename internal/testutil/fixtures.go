package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneta/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithUsername(t, db, username)
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category template with a default amount of 100.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint) *models.BudgetCategory {
	t.Helper()
	return CreateTestCategoryWithDefault(t, db, userID, 100)
}

// CreateTestCategoryWithDefault creates a category template with the given default amount.
func CreateTestCategoryWithDefault(t *testing.T, db *gorm.DB, userID uint, defaultAmount float64) *models.BudgetCategory {
	t.Helper()

	category := &models.BudgetCategory{
		UserID:        userID,
		Label:         fmt.Sprintf("Test Category %d", nextID()),
		DefaultAmount: defaultAmount,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestFixedExpense creates a fixed expense with the given amount.
func CreateTestFixedExpense(t *testing.T, db *gorm.DB, userID uint, amount float64) *models.FixedExpense {
	t.Helper()

	expense := &models.FixedExpense{
		UserID: userID,
		Label:  fmt.Sprintf("Test Fixed Expense %d", nextID()),
		Amount: amount,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test fixed expense: %v", err)
	}
	return expense
}

// CreateTestMonth creates an open month for the given period.
func CreateTestMonth(t *testing.T, db *gorm.DB, userID uint, year, month int) *models.Month {
	t.Helper()

	m := &models.Month{
		UserID: userID,
		Year:   year,
		Month:  month,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test month: %v", err)
	}
	return m
}

// CreateTestClosedMonth creates a month that is already closed.
func CreateTestClosedMonth(t *testing.T, db *gorm.DB, userID uint, year, month int) *models.Month {
	t.Helper()

	closedAt := time.Now()
	m := &models.Month{
		UserID:   userID,
		Year:     year,
		Month:    month,
		IsClosed: true,
		ClosedAt: &closedAt,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test closed month: %v", err)
	}
	return m
}

// CreateTestAllocation creates a monthly budget row for the given category.
func CreateTestAllocation(t *testing.T, db *gorm.DB, monthID, categoryID uint, amount float64) *models.MonthlyBudget {
	t.Helper()

	budget := &models.MonthlyBudget{
		MonthID:         monthID,
		CategoryID:      categoryID,
		AllocatedAmount: amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test allocation: %v", err)
	}
	return budget
}

// CreateTestIncomeEntry creates an income entry on the given month.
func CreateTestIncomeEntry(t *testing.T, db *gorm.DB, monthID uint, amount float64) *models.IncomeEntry {
	t.Helper()

	entry := &models.IncomeEntry{
		MonthID: monthID,
		Label:   fmt.Sprintf("Test Income %d", nextID()),
		Amount:  amount,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test income entry: %v", err)
	}
	return entry
}

// CreateTestItem creates a spending item dated today on the given month.
func CreateTestItem(t *testing.T, db *gorm.DB, monthID, categoryID uint, amount float64) *models.Item {
	t.Helper()

	item := &models.Item{
		MonthID:     monthID,
		CategoryID:  categoryID,
		Description: fmt.Sprintf("Test Item %d", nextID()),
		Amount:      amount,
		SpentOn:     models.Today(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}
