package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// incomeService handles a month's income entries.
type incomeService struct {
	db     *gorm.DB
	months MonthServicer
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, months MonthServicer) IncomeServicer {
	return &incomeService{db: db, months: months}
}

// CreateIncomeEntry adds an income source to an open month
func (s *incomeService) CreateIncomeEntry(userID, monthID uint, label string, amount float64) (*models.IncomeEntry, error) {
	// Validate input
	if label == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income label is required")
	}

	entry := &models.IncomeEntry{
		MonthID: monthID,
		Label:   label,
		Amount:  amount,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.months.VerifyMonthOpen(tx, userID, monthID); err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetMonthIncomeEntries lists the income entries recorded on a month
func (s *incomeService) GetMonthIncomeEntries(userID, monthID uint) ([]models.IncomeEntry, error) {
	if _, err := s.months.VerifyMonthAccess(s.db, userID, monthID); err != nil {
		return nil, err
	}

	var entries []models.IncomeEntry
	if err := s.db.Where("month_id = ?", monthID).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// UpdateIncomeEntry updates an income entry on an open month
func (s *incomeService) UpdateIncomeEntry(userID, monthID, entryID uint, label *string, amount *float64) (*models.IncomeEntry, error) {
	var entry models.IncomeEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.months.VerifyMonthOpen(tx, userID, monthID); err != nil {
			return err
		}

		if err := tx.Where("id = ? AND month_id = ?", entryID, monthID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrIncomeEntryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := make(map[string]interface{})
		if label != nil {
			updates["label"] = *label
		}
		if amount != nil {
			updates["amount"] = *amount
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&entry).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteIncomeEntry removes an income entry from an open month
func (s *incomeService) DeleteIncomeEntry(userID, monthID, entryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.months.VerifyMonthOpen(tx, userID, monthID); err != nil {
			return err
		}

		res := tx.Where("id = ? AND month_id = ?", entryID, monthID).Delete(&models.IncomeEntry{})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrIncomeEntryNotFound
		}
		return nil
	})
}
