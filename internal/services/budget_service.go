package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// budgetService handles a month's category allocations.
type budgetService struct {
	db     *gorm.DB
	months MonthServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, months MonthServicer) BudgetServicer {
	return &budgetService{db: db, months: months}
}

// GetMonthBudgets lists the month's allocations with category labels and
// the spend derived from the month's items.
func (s *budgetService) GetMonthBudgets(userID, monthID uint) ([]models.MonthlyBudgetView, error) {
	if _, err := s.months.VerifyMonthAccess(s.db, userID, monthID); err != nil {
		return nil, err
	}

	var budgets []models.MonthlyBudget
	if err := s.db.Where("month_id = ?", monthID).Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.Item
	if err := s.db.Where("month_id = ?", monthID).Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	labels, err := loadCategoryLabels(s.db, userID)
	if err != nil {
		return nil, err
	}

	spentByCategory := make(map[uint]float64, len(budgets))
	for _, item := range items {
		spentByCategory[item.CategoryID] += item.Amount
	}

	views := make([]models.MonthlyBudgetView, 0, len(budgets))
	for _, budget := range budgets {
		views = append(views, models.MonthlyBudgetView{
			ID:              budget.ID,
			MonthID:         budget.MonthID,
			CategoryID:      budget.CategoryID,
			CategoryLabel:   labels[budget.CategoryID],
			AllocatedAmount: budget.AllocatedAmount,
			SpentAmount:     spentByCategory[budget.CategoryID],
		})
	}
	return views, nil
}

// UpdateBudget sets the allocated amount of one allocation on an open month
func (s *budgetService) UpdateBudget(userID, monthID, budgetID uint, allocatedAmount float64) (*models.MonthlyBudget, error) {
	var budget models.MonthlyBudget
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.months.VerifyMonthOpen(tx, userID, monthID); err != nil {
			return err
		}

		if err := tx.Where("id = ? AND month_id = ?", budgetID, monthID).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&budget).Update("allocated_amount", allocatedAmount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &budget, nil
}
