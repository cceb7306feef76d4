package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/services"
)

// SavingsHandler handles the user's long-term balances: savings, Roth IRA
// and retirement savings.
type SavingsHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(userService services.UserServicer, auditService services.AuditServicer) *SavingsHandler {
	return &SavingsHandler{userService: userService, auditService: auditService}
}

// UpdateBalanceRequest represents the request payload for setting a balance
type UpdateBalanceRequest struct {
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// GetSavings returns the user's savings balance
// @Summary     Get savings
// @Description Get the user's savings balance
// @Tags        balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]float64 "Savings balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [get]
func (h *SavingsHandler) GetSavings(c *gin.Context) {
	h.getBalance(c, "savings", func(user *models.User) float64 { return user.Savings })
}

// UpdateSavings sets the user's savings balance
// @Summary     Update savings
// @Description Set the user's savings balance
// @Tags        balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateBalanceRequest true "New balance"
// @Success     200 {object} map[string]float64 "Updated savings balance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [put]
func (h *SavingsHandler) UpdateSavings(c *gin.Context) {
	h.updateBalance(c, "savings", h.userService.UpdateSavings, func(user *models.User) float64 { return user.Savings })
}

// GetRothIRA returns the user's Roth IRA balance
// @Summary     Get Roth IRA
// @Description Get the user's Roth IRA balance
// @Tags        balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]float64 "Roth IRA balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /roth-ira [get]
func (h *SavingsHandler) GetRothIRA(c *gin.Context) {
	h.getBalance(c, "roth_ira", func(user *models.User) float64 { return user.RothIRA })
}

// UpdateRothIRA sets the user's Roth IRA balance
// @Summary     Update Roth IRA
// @Description Set the user's Roth IRA balance
// @Tags        balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateBalanceRequest true "New balance"
// @Success     200 {object} map[string]float64 "Updated Roth IRA balance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /roth-ira [put]
func (h *SavingsHandler) UpdateRothIRA(c *gin.Context) {
	h.updateBalance(c, "roth_ira", h.userService.UpdateRothIRA, func(user *models.User) float64 { return user.RothIRA })
}

// GetRetirementSavings returns the user's retirement savings balance
// @Summary     Get retirement savings
// @Description Get the user's retirement savings balance
// @Tags        balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]float64 "Retirement savings balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /retirement-savings [get]
func (h *SavingsHandler) GetRetirementSavings(c *gin.Context) {
	h.getBalance(c, "retirement_savings", func(user *models.User) float64 { return user.RetirementSavings })
}

// UpdateRetirementSavings sets the user's retirement savings balance
// @Summary     Update retirement savings
// @Description Set the user's retirement savings balance
// @Tags        balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateBalanceRequest true "New balance"
// @Success     200 {object} map[string]float64 "Updated retirement savings balance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /retirement-savings [put]
func (h *SavingsHandler) UpdateRetirementSavings(c *gin.Context) {
	h.updateBalance(c, "retirement_savings", h.userService.UpdateRetirementSavings, func(user *models.User) float64 { return user.RetirementSavings })
}

func (h *SavingsHandler) getBalance(c *gin.Context, key string, value func(*models.User) float64) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{key: value(user)})
}

func (h *SavingsHandler) updateBalance(c *gin.Context, key string, update func(uint, float64) (*models.User, error), value func(*models.User) float64) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := update(userID, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BALANCE", "user", userID, c.ClientIP(),
		map[string]interface{}{"balance": key, "amount": *req.Amount})

	c.JSON(http.StatusOK, gin.H{key: value(user)})
}
