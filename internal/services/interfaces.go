package services

import (
	"gorm.io/gorm"

	"moneta/internal/models"
	"moneta/internal/pagination"
)

// Renderer produces the printable report for a month summary.
type Renderer interface {
	Render(summary *models.MonthSummary) ([]byte, error)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, password string) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateSavings(userID uint, amount float64) (*models.User, error)
	UpdateRothIRA(userID uint, amount float64) (*models.User, error)
	UpdateRetirementSavings(userID uint, amount float64) (*models.User, error)
}

// CategoryServicer defines the contract for budget category templates.
type CategoryServicer interface {
	CreateCategory(userID uint, label string, defaultAmount float64) (*models.BudgetCategory, error)
	GetUserCategories(userID uint) ([]models.BudgetCategory, error)
	GetCategoryByID(userID, categoryID uint) (*models.BudgetCategory, error)
	UpdateCategory(userID, categoryID uint, label *string, defaultAmount *float64) (*models.BudgetCategory, error)
	DeleteCategory(userID, categoryID uint) error
}

// FixedExpenseServicer defines the contract for recurring monthly costs.
type FixedExpenseServicer interface {
	CreateFixedExpense(userID uint, label string, amount float64) (*models.FixedExpense, error)
	GetUserFixedExpenses(userID uint) ([]models.FixedExpense, error)
	GetFixedExpenseByID(userID, expenseID uint) (*models.FixedExpense, error)
	UpdateFixedExpense(userID, expenseID uint, label *string, amount *float64) (*models.FixedExpense, error)
	DeleteFixedExpense(userID, expenseID uint) error
}

// MonthServicer defines the contract for the month lifecycle. The two Verify
// methods are the shared access guard: every month-scoped read goes through
// VerifyMonthAccess and every month-scoped mutation through VerifyMonthOpen.
// They take a *gorm.DB so callers can run them inside their own transaction.
type MonthServicer interface {
	ListMonths(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Month], error)
	GetOrCreateCurrentMonth(userID uint) (*models.Month, error)
	GetMonthSummary(userID, monthID uint) (*models.MonthSummary, error)
	CloseMonth(userID, monthID uint) (*models.Month, error)
	GetMonthPDF(userID, monthID uint) ([]byte, error)
	VerifyMonthAccess(tx *gorm.DB, userID, monthID uint) (*models.Month, error)
	VerifyMonthOpen(tx *gorm.DB, userID, monthID uint) (*models.Month, error)
}

// IncomeServicer defines the contract for a month's income entries.
type IncomeServicer interface {
	CreateIncomeEntry(userID, monthID uint, label string, amount float64) (*models.IncomeEntry, error)
	GetMonthIncomeEntries(userID, monthID uint) ([]models.IncomeEntry, error)
	UpdateIncomeEntry(userID, monthID, entryID uint, label *string, amount *float64) (*models.IncomeEntry, error)
	DeleteIncomeEntry(userID, monthID, entryID uint) error
}

// ItemServicer defines the contract for a month's spending items.
type ItemServicer interface {
	CreateItem(userID, monthID, categoryID uint, description string, amount float64, spentOn models.Date) (*models.Item, error)
	GetMonthItems(userID, monthID uint) ([]models.ItemView, error)
	UpdateItem(userID, monthID, itemID uint, categoryID *uint, description *string, amount *float64, spentOn *models.Date) (*models.Item, error)
	DeleteItem(userID, monthID, itemID uint) error
}

// BudgetServicer defines the contract for a month's category allocations.
// Allocations are created by template propagation, never directly.
type BudgetServicer interface {
	GetMonthBudgets(userID, monthID uint) ([]models.MonthlyBudgetView, error)
	UpdateBudget(userID, monthID, budgetID uint, allocatedAmount float64) (*models.MonthlyBudget, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
