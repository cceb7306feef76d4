package models

import "gorm.io/gorm"

// BudgetCategory is a reusable spending bucket template. New open months
// receive an allocation seeded from DefaultAmount. Deletion is soft so that
// historical budgets and items keep resolving the label.
type BudgetCategory struct {
	Base
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	Label         string         `gorm:"size:100;not null" json:"label"`
	DefaultAmount float64        `gorm:"not null;default:0" json:"default_amount"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Budgets []MonthlyBudget `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
	Items   []Item          `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}
