package models

// FixedExpense is a recurring monthly cost such as rent or an insurance
// premium. It is user-scoped and applies to every open month.
type FixedExpense struct {
	Base
	UserID uint    `gorm:"not null;index" json:"user_id"`
	Label  string  `gorm:"size:100;not null" json:"label"`
	Amount float64 `gorm:"not null;default:0" json:"amount"`
}
