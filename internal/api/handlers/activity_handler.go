package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/meusuper/crm-backend/internal/api/middleware"
	"github.com/meusuper/crm-backend/internal/models"
	"github.com/meusuper/crm-backend/internal/service"
	"github.com/meusuper/crm-backend/internal/store"
)

// ============================================
// Activity Handler
// ============================================

type ActivityHandler struct {
	activityService service.ActivityService
}

// List - List activities with optional filters
// GET /activities?contactId=&dealId=&assignedTo=&completed=
func (h *ActivityHandler) List(c *gin.Context) {
	var filters store.ActivityFilters

	if v := c.Query("contactId"); v != "" {
		filters.ContactID = &v
	}
	if v := c.Query("dealId"); v != "" {
		filters.DealID = &v
	}
	if v := c.Query("assignedTo"); v != "" {
		filters.AssignedTo = &v
	}
	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be a boolean"})
			return
		}
		filters.Completed = &completed
	}

	c.JSON(http.StatusOK, h.activityService.List(filters))
}

// Create - Log an activity
// POST /activities
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := h.activityService.Create(&service.CreateActivityRequest{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		ContactID:   req.ContactID,
		DealID:      req.DealID,
		AssignedTo:  req.AssignedTo,
	}, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// Complete - Toggle an activity's completed flag
// PATCH /activities/:id/complete
func (h *ActivityHandler) Complete(c *gin.Context) {
	var req models.CompleteActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := h.activityService.SetCompleted(c.Param("id"), *req.Completed)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}
