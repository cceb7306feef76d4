package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// IncomeHandler handles income entry requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateIncomeRequest represents the request payload for creating an income entry
type CreateIncomeRequest struct {
	Label  string   `json:"label" binding:"required,min=1,max=100"`
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// UpdateIncomeRequest represents the request payload for updating an income entry
type UpdateIncomeRequest struct {
	Label  *string  `json:"label" binding:"omitempty,min=1,max=100"`
	Amount *float64 `json:"amount" binding:"omitempty,gte=0"`
}

// CreateIncomeEntry handles the creation of a new income entry
// @Summary     Add income
// @Description Record an income source on an open month
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Month ID"
// @Param       request body CreateIncomeRequest true "Income details"
// @Success     201 {object} models.IncomeEntry "Income entry created"
// @Failure     400 {object} ErrorResponse "Invalid input or month is closed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/income [post]
func (h *IncomeHandler) CreateIncomeEntry(c *gin.Context) {
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

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.incomeService.CreateIncomeEntry(userID, monthID, req.Label, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INCOME", "income_entry", entry.ID, c.ClientIP(),
		map[string]interface{}{"label": req.Label, "amount": *req.Amount})

	c.JSON(http.StatusCreated, gin.H{"income_entry": entry})
}

// GetIncomeEntries handles listing a month's income entries
// @Summary     Get income entries
// @Description Get all income entries recorded on a month
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Month ID"
// @Success     200 {array} models.IncomeEntry "Income entries"
// @Failure     400 {object} ErrorResponse "Invalid month ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/income [get]
func (h *IncomeHandler) GetIncomeEntries(c *gin.Context) {
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

	entries, err := h.incomeService.GetMonthIncomeEntries(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_entries": entries})
}

// UpdateIncomeEntry handles updating an income entry
// @Summary     Update income entry
// @Description Update an income entry on an open month
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id       path int                 true "Month ID"
// @Param       incomeID path int                 true "Income entry ID"
// @Param       request  body UpdateIncomeRequest true "Updated income details"
// @Success     200 {object} models.IncomeEntry "Updated income entry"
// @Failure     400 {object} ErrorResponse "Invalid input or month is closed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month or income entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/income/{incomeID} [put]
func (h *IncomeHandler) UpdateIncomeEntry(c *gin.Context) {
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

	entryID, err := parsePathID(c, "incomeID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.incomeService.UpdateIncomeEntry(userID, monthID, entryID, req.Label, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INCOME", "income_entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"income_entry": entry})
}

// DeleteIncomeEntry handles deleting an income entry
// @Summary     Delete income entry
// @Description Remove an income entry from an open month
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id       path int true "Month ID"
// @Param       incomeID path int true "Income entry ID"
// @Success     200 {object} MessageResponse "Income entry deleted"
// @Failure     400 {object} ErrorResponse "Invalid input or month is closed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month or income entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/income/{incomeID} [delete]
func (h *IncomeHandler) DeleteIncomeEntry(c *gin.Context) {
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

	entryID, err := parsePathID(c, "incomeID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncomeEntry(userID, monthID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INCOME", "income_entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Income entry deleted successfully"})
}
