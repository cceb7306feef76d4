package services

import (
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// BuildMonthSummary derives the full picture of a month from its stored
// rows. Per-budget spent sums the amounts of the month's items in that
// category; total_spent sums every item, including items whose category
// template has since been deleted; remaining is income minus fixed costs
// minus everything spent. Sums are float64 additions in row order, so
// reordering rows can shift a total by float rounding. The function
// touches no storage.
func BuildMonthSummary(
	month models.Month,
	incomes []models.IncomeEntry,
	fixed []models.FixedExpense,
	budgets []models.MonthlyBudget,
	items []models.Item,
	labels map[uint]string,
) *models.MonthSummary {
	spentByCategory := make(map[uint]float64, len(budgets))
	var totalSpent float64
	for _, item := range items {
		spentByCategory[item.CategoryID] += item.Amount
		totalSpent += item.Amount
	}

	budgetViews := make([]models.MonthlyBudgetView, 0, len(budgets))
	var totalBudgeted float64
	for _, budget := range budgets {
		budgetViews = append(budgetViews, models.MonthlyBudgetView{
			ID:              budget.ID,
			MonthID:         budget.MonthID,
			CategoryID:      budget.CategoryID,
			CategoryLabel:   labels[budget.CategoryID],
			AllocatedAmount: budget.AllocatedAmount,
			SpentAmount:     spentByCategory[budget.CategoryID],
		})
		totalBudgeted += budget.AllocatedAmount
	}

	itemViews := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		itemViews = append(itemViews, models.ItemView{
			ID:            item.ID,
			MonthID:       item.MonthID,
			CategoryID:    item.CategoryID,
			CategoryLabel: labels[item.CategoryID],
			Description:   item.Description,
			Amount:        item.Amount,
			SpentOn:       item.SpentOn,
		})
	}

	var totalIncome float64
	for _, entry := range incomes {
		totalIncome += entry.Amount
	}

	var totalFixed float64
	for _, expense := range fixed {
		totalFixed += expense.Amount
	}

	if incomes == nil {
		incomes = []models.IncomeEntry{}
	}
	if fixed == nil {
		fixed = []models.FixedExpense{}
	}

	return &models.MonthSummary{
		Month:         month,
		IncomeEntries: incomes,
		FixedExpenses: fixed,
		Budgets:       budgetViews,
		Items:         itemViews,
		TotalIncome:   totalIncome,
		TotalFixed:    totalFixed,
		TotalBudgeted: totalBudgeted,
		TotalSpent:    totalSpent,
		Remaining:     totalIncome - totalFixed - totalSpent,
	}
}

// loadCategoryLabels maps every category id of the user to its label,
// including soft-deleted templates, so historical rows keep their names.
func loadCategoryLabels(tx *gorm.DB, userID uint) (map[uint]string, error) {
	var categories []models.BudgetCategory
	if err := tx.Unscoped().Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	labels := make(map[uint]string, len(categories))
	for _, category := range categories {
		labels[category.ID] = category.Label
	}
	return labels, nil
}
