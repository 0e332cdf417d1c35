package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meusuper/crm-backend/internal/api/middleware"
	"github.com/meusuper/crm-backend/internal/models"
	"github.com/meusuper/crm-backend/internal/service"
)

// ============================================
// Board Handler (drag session + selection)
// ============================================

type BoardHandler struct {
	drag          service.DragController
	selection     service.SelectionService
	contactLookup service.ContactLookup
}

// StartDrag - Pick up a deal card
// POST /board/drag/start
func (h *BoardHandler) StartDrag(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.StartDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal, err := h.drag.Start(userID, req.DealID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDealResponse(deal, h.contactLookup))
}

// Drop - Release the dragged deal over a stage
// POST /board/drag/drop
func (h *BoardHandler) Drop(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal, err := h.drag.Drop(userID, req.StageID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDealResponse(deal, h.contactLookup))
}

// CancelDrag - Release the dragged deal over empty canvas
// POST /board/drag/cancel
func (h *BoardHandler) CancelDrag(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	cancelled := h.drag.Cancel(userID)
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

// GetSelection - Get the entity open in the detail panel
// GET /board/selection
func (h *BoardHandler) GetSelection(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	detail, err := h.selection.Current(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusOK, gin.H{"selection": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"selection": detail})
}

// Select - Open an entity in the detail panel
// PUT /board/selection
func (h *BoardHandler) Select(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.selection.Select(userID, req.Kind, req.EntityID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"selection": detail})
}

// ClearSelection - Close the detail panel
// DELETE /board/selection
func (h *BoardHandler) ClearSelection(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	h.selection.Clear(userID)
	c.JSON(http.StatusOK, gin.H{"selection": nil})
}
