package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// categoryService handles budget category template logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category template and propagates it to every
// open month of the user. The insert and the propagation run in a single
// transaction; months that already carry an allocation for the category are
// skipped rather than aborting the sequence.
func (s *categoryService) CreateCategory(userID uint, label string, defaultAmount float64) (*models.BudgetCategory, error) {
	// Validate input
	if label == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category label is required")
	}

	category := &models.BudgetCategory{
		UserID:        userID,
		Label:         label,
		DefaultAmount: defaultAmount,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var openMonths []models.Month
		if err := tx.Where("user_id = ? AND is_closed = ?", userID, false).Find(&openMonths).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(openMonths) == 0 {
			return nil
		}

		allocations := make([]models.MonthlyBudget, 0, len(openMonths))
		for _, month := range openMonths {
			allocations = append(allocations, models.MonthlyBudget{
				MonthID:         month.ID,
				CategoryID:      category.ID,
				AllocatedAmount: defaultAmount,
			})
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&allocations).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// GetUserCategories retrieves all category templates for a user
func (s *categoryService) GetUserCategories(userID uint) ([]models.BudgetCategory, error) {
	var categories []models.BudgetCategory
	if err := s.db.Where("user_id = ?", userID).Order("label ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category template by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a category template. Changing the default amount
// only affects months opened afterwards; existing allocations keep their
// value.
func (s *categoryService) UpdateCategory(userID, categoryID uint, label *string, defaultAmount *float64) (*models.BudgetCategory, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if label != nil {
		updates["label"] = *label
	}
	if defaultAmount != nil {
		updates["default_amount"] = *defaultAmount
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory soft-deletes a category template. Existing allocations and
// items keep their category_id reference so historical months still resolve
// the label.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
