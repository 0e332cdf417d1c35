package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meusuper/crm-backend/internal/api/middleware"
	"github.com/meusuper/crm-backend/internal/models"
	"github.com/meusuper/crm-backend/internal/service"
)

// ============================================
// Contact Handler
// ============================================

type ContactHandler struct {
	contactService service.ContactService
}

// List - List contacts, optionally filtered by search term
// GET /contacts?search=
func (h *ContactHandler) List(c *gin.Context) {
	contacts := h.contactService.List(c.Query("search"))
	c.JSON(http.StatusOK, contacts)
}

// Create - Create a contact
// POST /contacts
func (h *ContactHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contactService.Create(&service.CreateContactRequest{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		Position:     req.Position,
		Tags:         req.Tags,
		Source:       req.Source,
		Status:       req.Status,
		Score:        req.Score,
		Notes:        req.Notes,
		CustomFields: req.CustomFields,
	}, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// Get - Get a contact by ID
// GET /contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.contactService.GetByID(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Update - Update a contact
// PUT /contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contactService.Update(c.Param("id"), &service.UpdateContactRequest{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		Position:     req.Position,
		Tags:         req.Tags,
		Status:       req.Status,
		Score:        req.Score,
		Notes:        req.Notes,
		CustomFields: req.CustomFields,
	}, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}
