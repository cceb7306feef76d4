package models

// MonthlyBudget is the amount allocated to one category within one month.
// A month holds at most one allocation per category.
type MonthlyBudget struct {
	Base
	MonthID         uint    `gorm:"not null;uniqueIndex:idx_budgets_month_category" json:"month_id"`
	CategoryID      uint    `gorm:"not null;uniqueIndex:idx_budgets_month_category" json:"category_id"`
	AllocatedAmount float64 `gorm:"not null;default:0" json:"allocated_amount"`
}
