// Package report renders month summaries into PDF documents.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"moneta/internal/models"
)

const (
	rowHeight    = 7.0
	sectionGap   = 4.0
	contentWidth = 190.0
)

// PDFRenderer renders a month summary as a single A4 document.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes for a month summary.
func (r *PDFRenderer) Render(summary *models.MonthSummary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(monthTitle(summary.Month), false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentWidth, 12, monthTitle(summary.Month), "", 1, "L", false, 0, "")
	pdf.Ln(sectionGap)

	sectionHeader(pdf, "Income")
	for _, entry := range summary.IncomeEntries {
		labeledRow(pdf, entry.Label, entry.Amount)
	}
	totalRow(pdf, "Total income", summary.TotalIncome)

	sectionHeader(pdf, "Fixed expenses")
	for _, expense := range summary.FixedExpenses {
		labeledRow(pdf, expense.Label, expense.Amount)
	}
	totalRow(pdf, "Total fixed", summary.TotalFixed)

	sectionHeader(pdf, "Budgets")
	if len(summary.Budgets) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(90, rowHeight, "Category", "B", 0, "L", false, 0, "")
		pdf.CellFormat(50, rowHeight, "Allocated", "B", 0, "R", false, 0, "")
		pdf.CellFormat(50, rowHeight, "Spent", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, budget := range summary.Budgets {
			pdf.CellFormat(90, rowHeight, budget.CategoryLabel, "", 0, "L", false, 0, "")
			pdf.CellFormat(50, rowHeight, formatAmount(budget.AllocatedAmount), "", 0, "R", false, 0, "")
			pdf.CellFormat(50, rowHeight, formatAmount(budget.SpentAmount), "", 1, "R", false, 0, "")
		}
	}
	totalRow(pdf, "Total budgeted", summary.TotalBudgeted)

	sectionHeader(pdf, "Items")
	if len(summary.Items) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(28, rowHeight, "Date", "B", 0, "L", false, 0, "")
		pdf.CellFormat(47, rowHeight, "Category", "B", 0, "L", false, 0, "")
		pdf.CellFormat(75, rowHeight, "Description", "B", 0, "L", false, 0, "")
		pdf.CellFormat(40, rowHeight, "Amount", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range summary.Items {
			pdf.CellFormat(28, rowHeight, item.SpentOn.Format("2006-01-02"), "", 0, "L", false, 0, "")
			pdf.CellFormat(47, rowHeight, item.CategoryLabel, "", 0, "L", false, 0, "")
			pdf.CellFormat(75, rowHeight, item.Description, "", 0, "L", false, 0, "")
			pdf.CellFormat(40, rowHeight, formatAmount(item.Amount), "", 1, "R", false, 0, "")
		}
	}
	totalRow(pdf, "Total spent", summary.TotalSpent)

	pdf.Ln(sectionGap)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(130, rowHeight+2, "Remaining", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, rowHeight+2, formatAmount(summary.Remaining), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render month report: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(sectionGap)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentWidth, 9, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func labeledRow(pdf *fpdf.Fpdf, label string, amount float64) {
	pdf.CellFormat(130, rowHeight, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, rowHeight, formatAmount(amount), "", 1, "R", false, 0, "")
}

func totalRow(pdf *fpdf.Fpdf, label string, amount float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(130, rowHeight, label, "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, rowHeight, formatAmount(amount), "T", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func monthTitle(month models.Month) string {
	return fmt.Sprintf("%s %d", time.Month(month.Month).String(), month.Year)
}

// formatAmount renders a float amount with exactly two decimal places,
// avoiding binary float artifacts in the printed report.
func formatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
