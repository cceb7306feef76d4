package models

import "time"

// Month is a budgeting period. It starts open and can be closed exactly
// once; closing archives a snapshot and freezes all month-scoped records.
type Month struct {
	Base
	UserID   uint       `gorm:"not null;uniqueIndex:idx_months_user_period" json:"user_id"`
	Year     int        `gorm:"not null;uniqueIndex:idx_months_user_period" json:"year"`
	Month    int        `gorm:"not null;uniqueIndex:idx_months_user_period" json:"month"`
	IsClosed bool       `gorm:"not null;default:false" json:"is_closed"`
	ClosedAt *time.Time `json:"closed_at"`

	// Relationships
	Budgets       []MonthlyBudget `gorm:"foreignKey:MonthID" json:"budgets,omitempty"`
	IncomeEntries []IncomeEntry   `gorm:"foreignKey:MonthID" json:"income_entries,omitempty"`
	Items         []Item          `gorm:"foreignKey:MonthID" json:"items,omitempty"`
}
