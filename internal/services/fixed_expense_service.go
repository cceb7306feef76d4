package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// fixedExpenseService handles recurring monthly cost logic.
type fixedExpenseService struct {
	db *gorm.DB
}

// NewFixedExpenseService creates a new FixedExpenseServicer.
func NewFixedExpenseService(db *gorm.DB) FixedExpenseServicer {
	return &fixedExpenseService{db: db}
}

// CreateFixedExpense creates a new fixed expense for a user
func (s *fixedExpenseService) CreateFixedExpense(userID uint, label string, amount float64) (*models.FixedExpense, error) {
	// Validate input
	if label == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "fixed expense label is required")
	}

	expense := &models.FixedExpense{
		UserID: userID,
		Label:  label,
		Amount: amount,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserFixedExpenses retrieves all fixed expenses for a user
func (s *fixedExpenseService) GetUserFixedExpenses(userID uint) ([]models.FixedExpense, error) {
	var expenses []models.FixedExpense
	if err := s.db.Where("user_id = ?", userID).Order("label ASC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetFixedExpenseByID retrieves a fixed expense by ID for a specific user
func (s *fixedExpenseService) GetFixedExpenseByID(userID, expenseID uint) (*models.FixedExpense, error) {
	var expense models.FixedExpense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFixedExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateFixedExpense updates a fixed expense
func (s *fixedExpenseService) UpdateFixedExpense(userID, expenseID uint, label *string, amount *float64) (*models.FixedExpense, error) {
	expense, err := s.GetFixedExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if label != nil {
		updates["label"] = *label
	}
	if amount != nil {
		updates["amount"] = *amount
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return expense, nil
}

// DeleteFixedExpense deletes a fixed expense
func (s *fixedExpenseService) DeleteFixedExpense(userID, expenseID uint) error {
	expense, err := s.GetFixedExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
