package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// monthService handles the month lifecycle: creation, aggregation, closing
// and report archival.
type monthService struct {
	db       *gorm.DB
	renderer Renderer
}

// NewMonthService creates a new MonthServicer.
func NewMonthService(db *gorm.DB, renderer Renderer) MonthServicer {
	return &monthService{db: db, renderer: renderer}
}

// VerifyMonthAccess checks that the month exists and belongs to the user.
// A month owned by someone else is indistinguishable from a missing one.
func (s *monthService) VerifyMonthAccess(tx *gorm.DB, userID, monthID uint) (*models.Month, error) {
	var month models.Month
	if err := tx.Where("id = ? AND user_id = ?", monthID, userID).First(&month).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMonthNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &month, nil
}

// VerifyMonthOpen checks access and additionally that the month has not been
// closed. Every month-scoped mutation goes through this guard.
func (s *monthService) VerifyMonthOpen(tx *gorm.DB, userID, monthID uint) (*models.Month, error) {
	month, err := s.VerifyMonthAccess(tx, userID, monthID)
	if err != nil {
		return nil, err
	}
	if month.IsClosed {
		return nil, apperrors.ErrMonthClosed
	}
	return month, nil
}

// ListMonths retrieves the user's month history, newest period first.
func (s *monthService) ListMonths(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Month], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Month{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var months []models.Month
	if err := base.Order("year DESC, month DESC").Scopes(pagination.Paginate(page)).Find(&months).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(months, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetOrCreateCurrentMonth returns the month for the current UTC calendar
// period, creating it on first access. Creation seeds one allocation per
// category template at its default amount; the whole sequence runs in a
// single transaction.
func (s *monthService) GetOrCreateCurrentMonth(userID uint) (*models.Month, error) {
	now := time.Now().UTC()
	year, monthNum := now.Year(), int(now.Month())

	var month models.Month
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND year = ? AND month = ?", userID, year, monthNum).First(&month).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		month = models.Month{UserID: userID, Year: year, Month: monthNum}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&month).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Re-read so a concurrent creator's row wins cleanly.
		if err := tx.Where("user_id = ? AND year = ? AND month = ?", userID, year, monthNum).First(&month).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var categories []models.BudgetCategory
		if err := tx.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(categories) == 0 {
			return nil
		}

		allocations := make([]models.MonthlyBudget, 0, len(categories))
		for _, category := range categories {
			allocations = append(allocations, models.MonthlyBudget{
				MonthID:         month.ID,
				CategoryID:      category.ID,
				AllocatedAmount: category.DefaultAmount,
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
	return &month, nil
}

// GetMonthSummary aggregates the month's stored rows into the derived view.
func (s *monthService) GetMonthSummary(userID, monthID uint) (*models.MonthSummary, error) {
	month, err := s.VerifyMonthAccess(s.db, userID, monthID)
	if err != nil {
		return nil, err
	}
	return s.buildSummary(s.db, month)
}

// CloseMonth transitions an open month to closed: it computes the summary,
// renders the report, archives it as the month's snapshot and stamps the
// closed flag. The steps run in one transaction, so a render or storage
// failure leaves the month open with no snapshot. A second close attempt
// fails with the already-closed error.
func (s *monthService) CloseMonth(userID, monthID uint) (*models.Month, error) {
	var closed models.Month
	err := s.db.Transaction(func(tx *gorm.DB) error {
		month, err := s.VerifyMonthAccess(tx, userID, monthID)
		if err != nil {
			return err
		}
		if month.IsClosed {
			return apperrors.ErrMonthAlreadyClosed
		}

		// Guarded update: a concurrent close loses here and rolls back
		// before any snapshot is written.
		now := time.Now().UTC()
		res := tx.Model(&models.Month{}).
			Where("id = ? AND is_closed = ?", month.ID, false).
			Updates(map[string]interface{}{"is_closed": true, "closed_at": now})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrMonthAlreadyClosed
		}
		month.IsClosed = true
		month.ClosedAt = &now

		summary, err := s.buildSummary(tx, month)
		if err != nil {
			return err
		}

		pdf, err := s.renderer.Render(summary)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrReportFailed, err)
		}

		snapshot := &models.MonthSnapshot{MonthID: month.ID, PDFData: pdf}
		if err := tx.Create(snapshot).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		closed = *month
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &closed, nil
}

// GetMonthPDF returns the archived report of a closed month. Until a month
// is closed no snapshot exists and the lookup fails with not found.
func (s *monthService) GetMonthPDF(userID, monthID uint) ([]byte, error) {
	if _, err := s.VerifyMonthAccess(s.db, userID, monthID); err != nil {
		return nil, err
	}

	var snapshot models.MonthSnapshot
	if err := s.db.Where("month_id = ?", monthID).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSnapshotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot.PDFData, nil
}

// buildSummary loads the month's rows and derives the summary from them.
func (s *monthService) buildSummary(tx *gorm.DB, month *models.Month) (*models.MonthSummary, error) {
	var incomes []models.IncomeEntry
	if err := tx.Where("month_id = ?", month.ID).Order("id ASC").Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var fixed []models.FixedExpense
	if err := tx.Where("user_id = ?", month.UserID).Order("label ASC").Find(&fixed).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.MonthlyBudget
	if err := tx.Where("month_id = ?", month.ID).Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.Item
	if err := tx.Where("month_id = ?", month.ID).Order("spent_on DESC, id DESC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	labels, err := loadCategoryLabels(tx, month.UserID)
	if err != nil {
		return nil, err
	}

	return BuildMonthSummary(*month, incomes, fixed, budgets, items, labels), nil
}
