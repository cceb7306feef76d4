package models

// Item is one recorded expense against a category within a month
type Item struct {
	Base
	MonthID     uint    `gorm:"not null;index" json:"month_id"`
	CategoryID  uint    `gorm:"not null;index" json:"category_id"`
	Description string  `gorm:"size:200;not null" json:"description"`
	Amount      float64 `gorm:"not null;default:0" json:"amount"`
	SpentOn     Date    `gorm:"type:date;not null" json:"spent_on" swaggertype:"string"`
}
