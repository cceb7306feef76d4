package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// FixedExpenseHandler handles fixed expense requests.
type FixedExpenseHandler struct {
	fixedExpenseService services.FixedExpenseServicer
	auditService        services.AuditServicer
}

// NewFixedExpenseHandler creates a new FixedExpenseHandler.
func NewFixedExpenseHandler(fixedExpenseService services.FixedExpenseServicer, auditService services.AuditServicer) *FixedExpenseHandler {
	return &FixedExpenseHandler{fixedExpenseService: fixedExpenseService, auditService: auditService}
}

// CreateFixedExpenseRequest represents the request payload for creating a fixed expense
type CreateFixedExpenseRequest struct {
	Label  string   `json:"label" binding:"required,min=1,max=100"`
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// UpdateFixedExpenseRequest represents the request payload for updating a fixed expense
type UpdateFixedExpenseRequest struct {
	Label  *string  `json:"label" binding:"omitempty,min=1,max=100"`
	Amount *float64 `json:"amount" binding:"omitempty,gte=0"`
}

// CreateFixedExpense handles the creation of a new fixed expense
// @Summary     Create a fixed expense
// @Description Create a new recurring monthly cost
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateFixedExpenseRequest true "Fixed expense details"
// @Success     201 {object} models.FixedExpense "Fixed expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses [post]
func (h *FixedExpenseHandler) CreateFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.fixedExpenseService.CreateFixedExpense(userID, req.Label, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FIXED_EXPENSE", "fixed_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"label": req.Label, "amount": *req.Amount})

	c.JSON(http.StatusCreated, gin.H{"fixed_expense": expense})
}

// GetFixedExpenses handles listing the user's fixed expenses
// @Summary     Get fixed expenses
// @Description Get all recurring monthly costs for the authenticated user
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.FixedExpense "Fixed expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses [get]
func (h *FixedExpenseHandler) GetFixedExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.fixedExpenseService.GetUserFixedExpenses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fixed_expenses": expenses})
}

// UpdateFixedExpense handles updating a fixed expense
// @Summary     Update fixed expense
// @Description Update a fixed expense's label or amount
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                       true "Fixed expense ID"
// @Param       request body UpdateFixedExpenseRequest true "Updated fixed expense details"
// @Success     200 {object} models.FixedExpense "Updated fixed expense"
// @Failure     400 {object} ErrorResponse "Invalid input or fixed expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fixed expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses/{id} [put]
func (h *FixedExpenseHandler) UpdateFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.fixedExpenseService.UpdateFixedExpense(userID, expenseID, req.Label, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FIXED_EXPENSE", "fixed_expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"fixed_expense": expense})
}

// DeleteFixedExpense handles deleting a fixed expense
// @Summary     Delete fixed expense
// @Description Delete a fixed expense by ID
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Fixed expense ID"
// @Success     200 {object} MessageResponse "Fixed expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid fixed expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fixed expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses/{id} [delete]
func (h *FixedExpenseHandler) DeleteFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.fixedExpenseService.DeleteFixedExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FIXED_EXPENSE", "fixed_expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Fixed expense deleted successfully"})
}
