package models

// IncomeEntry is a single source of income recorded against a month
type IncomeEntry struct {
	Base
	MonthID uint    `gorm:"not null;index" json:"month_id"`
	Label   string  `gorm:"size:100;not null" json:"label"`
	Amount  float64 `gorm:"not null;default:0" json:"amount"`
}
