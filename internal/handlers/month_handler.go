package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// MonthHandler handles month lifecycle requests.
type MonthHandler struct {
	monthService services.MonthServicer
	auditService services.AuditServicer
}

// NewMonthHandler creates a new MonthHandler.
func NewMonthHandler(monthService services.MonthServicer, auditService services.AuditServicer) *MonthHandler {
	return &MonthHandler{monthService: monthService, auditService: auditService}
}

// ListMonths handles listing the user's month history.
// @Summary     List months
// @Description Get a paginated history of the user's months, newest first
// @Tags        months
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Month] "Paginated months"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months [get]
func (h *MonthHandler) ListMonths(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.monthService.ListMonths(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCurrentMonth handles retrieving the current calendar month.
// @Summary     Get current month
// @Description Get the summary of the current calendar month, creating the month (with allocations seeded from the category templates) on first access
// @Tags        months
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.MonthSummary "Current month summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/current [get]
func (h *MonthHandler) GetCurrentMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := h.monthService.GetOrCreateCurrentMonth(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.monthService.GetMonthSummary(userID, month.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMonth handles retrieving a month summary.
// @Summary     Get month summary
// @Description Get the full derived summary of a month: income, fixed expenses, budgets with spend, items and totals
// @Tags        months
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Month ID"
// @Success     200 {object} models.MonthSummary "Month summary"
// @Failure     400 {object} ErrorResponse "Invalid month ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id} [get]
func (h *MonthHandler) GetMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.monthService.GetMonthSummary(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CloseMonth handles closing a month.
// @Summary     Close a month
// @Description Close an open month: archive its report as an immutable snapshot and freeze all month-scoped records
// @Tags        months
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Month ID"
// @Success     200 {object} models.Month "Closed month"
// @Failure     400 {object} ErrorResponse "Month is already closed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/close [post]
func (h *MonthHandler) CloseMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := h.monthService.CloseMonth(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CLOSE_MONTH", "month", monthID, c.ClientIP(),
		map[string]interface{}{"year": month.Year, "month": month.Month})

	c.JSON(http.StatusOK, gin.H{"month": month})
}

// GetMonthPDF handles downloading the archived report of a closed month.
// @Summary     Download month report
// @Description Download the PDF report archived when the month was closed
// @Tags        months
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       id path int true "Month ID"
// @Success     200 {file} file "PDF report"
// @Failure     400 {object} ErrorResponse "Invalid month ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month not found or not closed yet"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/pdf [get]
func (h *MonthHandler) GetMonthPDF(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	pdf, err := h.monthService.GetMonthPDF(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="month.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
