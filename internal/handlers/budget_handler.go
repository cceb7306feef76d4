package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// BudgetHandler handles monthly allocation requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// UpdateBudgetRequest represents the request payload for updating an allocation.
type UpdateBudgetRequest struct {
	AllocatedAmount *float64 `json:"allocated_amount" binding:"required,gte=0"`
}

// GetBudgets handles listing a month's allocations.
// @Summary     Get month budgets
// @Description Get the month's category allocations with labels and derived spend
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Month ID"
// @Success     200 {array} models.MonthlyBudgetView "Allocations"
// @Failure     400 {object} ErrorResponse "Invalid month ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
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

	budgets, err := h.budgetService.GetMonthBudgets(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// UpdateBudget handles updating an allocation's amount.
// @Summary     Update month budget
// @Description Set the allocated amount of one category allocation on an open month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id       path int                 true "Month ID"
// @Param       budgetID path int                 true "Budget ID"
// @Param       request  body UpdateBudgetRequest true "New allocated amount"
// @Success     200 {object} models.MonthlyBudget "Updated allocation"
// @Failure     400 {object} ErrorResponse "Invalid input or month is closed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month or budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/budgets/{budgetID} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
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

	budgetID, err := parsePathID(c, "budgetID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(userID, monthID, budgetID, *req.AllocatedAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "monthly_budget", budgetID, c.ClientIP(),
		map[string]interface{}{"allocated_amount": *req.AllocatedAmount})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}
