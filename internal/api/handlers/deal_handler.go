package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meusuper/crm-backend/internal/api/middleware"
	"github.com/meusuper/crm-backend/internal/models"
	"github.com/meusuper/crm-backend/internal/service"
)

// ============================================
// Deal Handler
// ============================================

type DealHandler struct {
	dealService   service.DealService
	contactLookup service.ContactLookup
}

// ListByPipeline - List deals in a pipeline
// GET /pipelines/:id/deals
func (h *DealHandler) ListByPipeline(c *gin.Context) {
	deals := h.dealService.ListByPipeline(c.Param("id"))
	c.JSON(http.StatusOK, toDealResponses(deals, h.contactLookup))
}

// Create - Create a deal in a pipeline
// POST /pipelines/:id/deals
func (h *DealHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal, err := h.dealService.Create(&service.CreateDealRequest{
		Title:             req.Title,
		ContactID:         req.ContactID,
		PipelineID:        c.Param("id"),
		StageID:           req.StageID,
		Value:             req.Value,
		Probability:       req.Probability,
		ExpectedCloseDate: req.ExpectedCloseDate,
		AssignedTo:        req.AssignedTo,
		Tags:              req.Tags,
		Notes:             req.Notes,
		Source:            req.Source,
		CustomFields:      req.CustomFields,
	}, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDealResponse(deal, h.contactLookup))
}

// Get - Get a deal by ID
// GET /deals/:id
func (h *DealHandler) Get(c *gin.Context) {
	deal, err := h.dealService.GetByID(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDealResponse(deal, h.contactLookup))
}

// Update - Update a deal
// PUT /deals/:id
func (h *DealHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal, err := h.dealService.Update(c.Param("id"), &service.UpdateDealRequest{
		Title:             req.Title,
		ContactID:         req.ContactID,
		StageID:           req.StageID,
		Value:             req.Value,
		Probability:       req.Probability,
		ExpectedCloseDate: req.ExpectedCloseDate,
		AssignedTo:        req.AssignedTo,
		Tags:              req.Tags,
		Notes:             req.Notes,
		LostReason:        req.LostReason,
		CustomFields:      req.CustomFields,
	}, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDealResponse(deal, h.contactLookup))
}

// MoveStage - Move a deal to another stage of its pipeline
// PATCH /deals/:id/stage
func (h *DealHandler) MoveStage(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.MoveDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal, err := h.dealService.MoveStage(c.Param("id"), req.StageID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDealResponse(deal, h.contactLookup))
}
