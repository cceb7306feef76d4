package models

// MonthSnapshot is the archived report produced when a month closes.
// At most one snapshot exists per month and it is never updated.
type MonthSnapshot struct {
	Base
	MonthID uint   `gorm:"not null;uniqueIndex" json:"month_id"`
	PDFData []byte `gorm:"column:pdf_data;not null" json:"-"`
}
