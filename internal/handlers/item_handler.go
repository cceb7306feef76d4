package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/services"
)

// ItemHandler handles spending item requests.
type ItemHandler struct {
	itemService  services.ItemServicer
	auditService services.AuditServicer
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService services.ItemServicer, auditService services.AuditServicer) *ItemHandler {
	return &ItemHandler{itemService: itemService, auditService: auditService}
}

// CreateItemRequest represents the request payload for creating an item
type CreateItemRequest struct {
	CategoryID  uint        `json:"category_id" binding:"required"`
	Description string      `json:"description" binding:"required,min=1,max=200"`
	Amount      *float64    `json:"amount" binding:"required,gte=0"`
	SpentOn     models.Date `json:"spent_on" binding:"required" swaggertype:"string"`
}

// UpdateItemRequest represents the request payload for updating an item
type UpdateItemRequest struct {
	CategoryID  *uint        `json:"category_id"`
	Description *string      `json:"description" binding:"omitempty,min=1,max=200"`
	Amount      *float64     `json:"amount" binding:"omitempty,gte=0"`
	SpentOn     *models.Date `json:"spent_on" swaggertype:"string"`
}

// CreateItem handles recording a new spending item
// @Summary     Add item
// @Description Record an expense against a category on an open month
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Month ID"
// @Param       request body CreateItemRequest true "Item details"
// @Success     201 {object} models.Item "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input, invalid category or month is closed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
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

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(userID, monthID, req.CategoryID, req.Description, *req.Amount, req.SpentOn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ITEM", "item", item.ID, c.ClientIP(),
		map[string]interface{}{"description": req.Description, "amount": *req.Amount, "category_id": req.CategoryID})

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetItems handles listing a month's items
// @Summary     Get items
// @Description Get all items recorded on a month with their category labels, most recent spend first
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Month ID"
// @Success     200 {array} models.ItemView "Items"
// @Failure     400 {object} ErrorResponse "Invalid month ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/items [get]
func (h *ItemHandler) GetItems(c *gin.Context) {
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

	items, err := h.itemService.GetMonthItems(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateItem handles updating an item
// @Summary     Update item
// @Description Update an item on an open month; a new category must belong to the user
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Month ID"
// @Param       itemID  path int               true "Item ID"
// @Param       request body UpdateItemRequest true "Updated item details"
// @Success     200 {object} models.Item "Updated item"
// @Failure     400 {object} ErrorResponse "Invalid input, invalid category or month is closed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month or item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/items/{itemID} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
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

	itemID, err := parsePathID(c, "itemID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.UpdateItem(userID, monthID, itemID, req.CategoryID, req.Description, req.Amount, req.SpentOn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ITEM", "item", itemID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem handles deleting an item
// @Summary     Delete item
// @Description Remove an item from an open month
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id     path int true "Month ID"
// @Param       itemID path int true "Item ID"
// @Success     200 {object} MessageResponse "Item deleted"
// @Failure     400 {object} ErrorResponse "Invalid input or month is closed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Month or item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{id}/items/{itemID} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
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

	itemID, err := parsePathID(c, "itemID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.itemService.DeleteItem(userID, monthID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ITEM", "item", itemID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
