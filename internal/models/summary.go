package models

// MonthlyBudgetView is an allocation joined with its category label and the
// spend derived from the month's items.
type MonthlyBudgetView struct {
	ID              uint    `json:"id"`
	MonthID         uint    `json:"month_id"`
	CategoryID      uint    `json:"category_id"`
	CategoryLabel   string  `json:"category_label"`
	AllocatedAmount float64 `json:"allocated_amount"`
	SpentAmount     float64 `json:"spent_amount"`
}

// ItemView is an item joined with its category label
type ItemView struct {
	ID            uint    `json:"id"`
	MonthID       uint    `json:"month_id"`
	CategoryID    uint    `json:"category_id"`
	CategoryLabel string  `json:"category_label"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	SpentOn       Date    `json:"spent_on" swaggertype:"string"`
}

// MonthSummary is the full derived picture of a month: its rows plus the
// totals computed from them. Remaining is income minus fixed costs minus
// everything spent.
type MonthSummary struct {
	Month         Month               `json:"month"`
	IncomeEntries []IncomeEntry       `json:"income_entries"`
	FixedExpenses []FixedExpense      `json:"fixed_expenses"`
	Budgets       []MonthlyBudgetView `json:"budgets"`
	Items         []ItemView          `json:"items"`
	TotalIncome   float64             `json:"total_income"`
	TotalFixed    float64             `json:"total_fixed"`
	TotalBudgeted float64             `json:"total_budgeted"`
	TotalSpent    float64             `json:"total_spent"`
	Remaining     float64             `json:"remaining"`
}
