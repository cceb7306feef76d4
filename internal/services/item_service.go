package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// itemService handles a month's spending items.
type itemService struct {
	db     *gorm.DB
	months MonthServicer
}

// NewItemService creates a new ItemServicer.
func NewItemService(db *gorm.DB, months MonthServicer) ItemServicer {
	return &itemService{db: db, months: months}
}

// CreateItem records an expense against a category on an open month. The
// category must be an active template of the same user.
func (s *itemService) CreateItem(userID, monthID, categoryID uint, description string, amount float64, spentOn models.Date) (*models.Item, error) {
	// Validate input
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item description is required")
	}

	item := &models.Item{
		MonthID:     monthID,
		CategoryID:  categoryID,
		Description: description,
		Amount:      amount,
		SpentOn:     spentOn,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.months.VerifyMonthOpen(tx, userID, monthID); err != nil {
			return err
		}
		if err := verifyCategoryOwned(tx, userID, categoryID); err != nil {
			return err
		}
		if err := tx.Create(item).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetMonthItems lists the month's items with their category labels,
// most recent spend first.
func (s *itemService) GetMonthItems(userID, monthID uint) ([]models.ItemView, error) {
	if _, err := s.months.VerifyMonthAccess(s.db, userID, monthID); err != nil {
		return nil, err
	}

	var items []models.Item
	if err := s.db.Where("month_id = ?", monthID).Order("spent_on DESC, id DESC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	labels, err := loadCategoryLabels(s.db, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.ItemView{
			ID:            item.ID,
			MonthID:       item.MonthID,
			CategoryID:    item.CategoryID,
			CategoryLabel: labels[item.CategoryID],
			Description:   item.Description,
			Amount:        item.Amount,
			SpentOn:       item.SpentOn,
		})
	}
	return views, nil
}

// UpdateItem updates an item on an open month. A new category id is
// validated against the user's active templates.
func (s *itemService) UpdateItem(userID, monthID, itemID uint, categoryID *uint, description *string, amount *float64, spentOn *models.Date) (*models.Item, error) {
	var item models.Item
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.months.VerifyMonthOpen(tx, userID, monthID); err != nil {
			return err
		}

		if err := tx.Where("id = ? AND month_id = ?", itemID, monthID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrItemNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := make(map[string]interface{})
		if categoryID != nil {
			if err := verifyCategoryOwned(tx, userID, *categoryID); err != nil {
				return err
			}
			updates["category_id"] = *categoryID
		}
		if description != nil {
			updates["description"] = *description
		}
		if amount != nil {
			updates["amount"] = *amount
		}
		if spentOn != nil {
			updates["spent_on"] = *spentOn
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item from an open month
func (s *itemService) DeleteItem(userID, monthID, itemID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.months.VerifyMonthOpen(tx, userID, monthID); err != nil {
			return err
		}

		res := tx.Where("id = ? AND month_id = ?", itemID, monthID).Delete(&models.Item{})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrItemNotFound
		}
		return nil
	})
}

// verifyCategoryOwned checks that the category template exists, is not
// deleted and belongs to the user.
func verifyCategoryOwned(tx *gorm.DB, userID, categoryID uint) error {
	var count int64
	if err := tx.Model(&models.BudgetCategory{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrInvalidCategory
	}
	return nil
}
