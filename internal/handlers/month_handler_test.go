package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// --- mock month service ---

type mockMonthService struct {
	listMonthsFn              func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Month], error)
	getOrCreateCurrentMonthFn func(userID uint) (*models.Month, error)
	getMonthSummaryFn         func(userID, monthID uint) (*models.MonthSummary, error)
	closeMonthFn              func(userID, monthID uint) (*models.Month, error)
	getMonthPDFFn             func(userID, monthID uint) ([]byte, error)
}

func (m *mockMonthService) ListMonths(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Month], error) {
	if m.listMonthsFn != nil {
		return m.listMonthsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Month{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockMonthService) GetOrCreateCurrentMonth(userID uint) (*models.Month, error) {
	if m.getOrCreateCurrentMonthFn != nil {
		return m.getOrCreateCurrentMonthFn(userID)
	}
	return &models.Month{}, nil
}

func (m *mockMonthService) GetMonthSummary(userID, monthID uint) (*models.MonthSummary, error) {
	if m.getMonthSummaryFn != nil {
		return m.getMonthSummaryFn(userID, monthID)
	}
	return &models.MonthSummary{}, nil
}

func (m *mockMonthService) CloseMonth(userID, monthID uint) (*models.Month, error) {
	if m.closeMonthFn != nil {
		return m.closeMonthFn(userID, monthID)
	}
	return &models.Month{}, nil
}

func (m *mockMonthService) GetMonthPDF(userID, monthID uint) ([]byte, error) {
	if m.getMonthPDFFn != nil {
		return m.getMonthPDFFn(userID, monthID)
	}
	return []byte("%PDF"), nil
}

func (m *mockMonthService) VerifyMonthAccess(_ *gorm.DB, _, _ uint) (*models.Month, error) {
	return &models.Month{}, nil
}

func (m *mockMonthService) VerifyMonthOpen(_ *gorm.DB, _, _ uint) (*models.Month, error) {
	return &models.Month{}, nil
}

var _ services.MonthServicer = (*mockMonthService)(nil)

func setupMonthRouter(handler *MonthHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/months", handler.ListMonths)
	auth.GET("/months/current", handler.GetCurrentMonth)
	auth.GET("/months/:id", handler.GetMonth)
	auth.POST("/months/:id/close", handler.CloseMonth)
	auth.GET("/months/:id/pdf", handler.GetMonthPDF)
	return r
}

func TestMonthHandler_ListMonths(t *testing.T) {
	t.Run("returns 200 with paginated months", func(t *testing.T) {
		monthSvc := &mockMonthService{
			listMonthsFn: func(_ uint, _ pagination.PageRequest) (*pagination.PageResponse[models.Month], error) {
				resp := pagination.NewPageResponse([]models.Month{
					{Base: models.Base{ID: 2}, Year: 2026, Month: 2},
					{Base: models.Base{ID: 1}, Year: 2026, Month: 1},
				}, 1, 20, 2)
				return &resp, nil
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "GET", "/months", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 2 {
			t.Errorf("expected 2 months, got %d", len(data))
		}
		if result["total_items"] != 2.0 {
			t.Errorf("expected total_items 2, got %v", result["total_items"])
		}
	})

	t.Run("passes pagination params", func(t *testing.T) {
		var captured pagination.PageRequest
		monthSvc := &mockMonthService{
			listMonthsFn: func(_ uint, page pagination.PageRequest) (*pagination.PageResponse[models.Month], error) {
				captured = page
				resp := pagination.NewPageResponse([]models.Month{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		doRequest(r, "GET", "/months?page=3&page_size=5", "")

		if captured.Page != 3 || captured.PageSize != 5 {
			t.Errorf("expected page 3 size 5, got %d and %d", captured.Page, captured.PageSize)
		}
	})

	t.Run("returns 400 on invalid page", func(t *testing.T) {
		handler := NewMonthHandler(&mockMonthService{}, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "GET", "/months?page=0", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestMonthHandler_GetCurrentMonth(t *testing.T) {
	t.Run("returns 200 with summary", func(t *testing.T) {
		monthSvc := &mockMonthService{
			getOrCreateCurrentMonthFn: func(_ uint) (*models.Month, error) {
				return &models.Month{Base: models.Base{ID: 7}, Year: 2026, Month: 8}, nil
			},
			getMonthSummaryFn: func(_, monthID uint) (*models.MonthSummary, error) {
				return &models.MonthSummary{
					Month:       models.Month{Base: models.Base{ID: monthID}, Year: 2026, Month: 8},
					TotalIncome: 3000,
					Remaining:   1800,
				}, nil
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "GET", "/months/current", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		month := result["month"].(map[string]interface{})
		if month["id"] != 7.0 {
			t.Errorf("expected month id 7, got %v", month["id"])
		}
		if result["total_income"] != 3000.0 {
			t.Errorf("expected total_income 3000, got %v", result["total_income"])
		}
	})

	t.Run("returns 500 when creation fails", func(t *testing.T) {
		monthSvc := &mockMonthService{
			getOrCreateCurrentMonthFn: func(_ uint) (*models.Month, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "GET", "/months/current", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestMonthHandler_GetMonth(t *testing.T) {
	t.Run("returns 200 with summary", func(t *testing.T) {
		monthSvc := &mockMonthService{
			getMonthSummaryFn: func(_, monthID uint) (*models.MonthSummary, error) {
				return &models.MonthSummary{
					Month:      models.Month{Base: models.Base{ID: monthID}, Year: 2026, Month: 5},
					TotalSpent: 250,
				}, nil
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "GET", "/months/5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_spent"] != 250.0 {
			t.Errorf("expected total_spent 250, got %v", result["total_spent"])
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		handler := NewMonthHandler(&mockMonthService{}, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "GET", "/months/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		monthSvc := &mockMonthService{
			getMonthSummaryFn: func(_, _ uint) (*models.MonthSummary, error) {
				return nil, apperrors.ErrMonthNotFound
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "GET", "/months/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MONTH_NOT_FOUND")
	})
}

func TestMonthHandler_CloseMonth(t *testing.T) {
	t.Run("returns 200 with closed month", func(t *testing.T) {
		monthSvc := &mockMonthService{
			closeMonthFn: func(_, monthID uint) (*models.Month, error) {
				return &models.Month{Base: models.Base{ID: monthID}, Year: 2026, Month: 5, IsClosed: true}, nil
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "POST", "/months/5/close", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		month := result["month"].(map[string]interface{})
		if month["is_closed"] != true {
			t.Errorf("expected is_closed true, got %v", month["is_closed"])
		}
	})

	t.Run("returns 400 when already closed", func(t *testing.T) {
		monthSvc := &mockMonthService{
			closeMonthFn: func(_, _ uint) (*models.Month, error) {
				return nil, apperrors.ErrMonthAlreadyClosed
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "POST", "/months/5/close", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MONTH_ALREADY_CLOSED")
	})

	t.Run("returns 500 when report fails", func(t *testing.T) {
		monthSvc := &mockMonthService{
			closeMonthFn: func(_, _ uint) (*models.Month, error) {
				return nil, apperrors.ErrReportFailed
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "POST", "/months/5/close", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "REPORT_FAILED")
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		monthSvc := &mockMonthService{
			closeMonthFn: func(_, _ uint) (*models.Month, error) {
				return nil, apperrors.ErrMonthNotFound
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "POST", "/months/999/close", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestMonthHandler_GetMonthPDF(t *testing.T) {
	t.Run("returns 200 with pdf bytes", func(t *testing.T) {
		monthSvc := &mockMonthService{
			getMonthPDFFn: func(_, _ uint) ([]byte, error) {
				return []byte("%PDF-1.4 report"), nil
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "GET", "/months/5/pdf", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("expected application/pdf, got %s", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
			t.Errorf("expected attachment disposition, got %s", cd)
		}
		if !strings.HasPrefix(rec.Body.String(), "%PDF") {
			t.Error("expected PDF bytes in body")
		}
	})

	t.Run("returns 404 before close", func(t *testing.T) {
		monthSvc := &mockMonthService{
			getMonthPDFFn: func(_, _ uint) ([]byte, error) {
				return nil, apperrors.ErrSnapshotNotFound
			},
		}
		handler := NewMonthHandler(monthSvc, &mockAuditService{})
		r := setupMonthRouter(handler)

		rec := doRequest(r, "GET", "/months/5/pdf", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SNAPSHOT_NOT_FOUND")
	})
}
