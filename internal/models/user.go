package models

// User represents a registered account and its long-term balances
type User struct {
	Base
	Username          string  `gorm:"uniqueIndex;size:32;not null" json:"username"`
	PasswordHash      string  `gorm:"not null" json:"-"`
	Savings           float64 `gorm:"not null;default:0" json:"savings"`
	RothIRA           float64 `gorm:"column:roth_ira;not null;default:0" json:"roth_ira"`
	RetirementSavings float64 `gorm:"not null;default:0" json:"retirement_savings"`

	Categories    []BudgetCategory `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	FixedExpenses []FixedExpense   `gorm:"foreignKey:UserID" json:"fixed_expenses,omitempty"`
	Months        []Month          `gorm:"foreignKey:UserID" json:"months,omitempty"`
}
