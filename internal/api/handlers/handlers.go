package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meusuper/crm-backend/internal/models"
	"github.com/meusuper/crm-backend/internal/service"
	"github.com/meusuper/crm-backend/internal/store"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Pipeline     *PipelineHandler
	Deal         *DealHandler
	Board        *BoardHandler
	Contact      *ContactHandler
	Activity     *ActivityHandler
	Notification *NotificationHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	dealHandler := &DealHandler{dealService: services.Deal, contactLookup: contactLookupFrom(services)}

	return &Handlers{
		Auth:         &AuthHandler{authService: services.Auth, userService: services.User},
		User:         &UserHandler{userService: services.User},
		Pipeline:     &PipelineHandler{pipelineService: services.Pipeline, contactLookup: contactLookupFrom(services)},
		Deal:         dealHandler,
		Board:        &BoardHandler{drag: services.Drag, selection: services.Selection, contactLookup: contactLookupFrom(services)},
		Contact:      &ContactHandler{contactService: services.Contact},
		Activity:     &ActivityHandler{activityService: services.Activity},
		Notification: &NotificationHandler{notifSvc: services.NotifSvc},
	}
}

func contactLookupFrom(services *service.Services) service.ContactLookup {
	return func(id string) (store.Contact, bool) {
		c, err := services.Contact.GetByID(id)
		return c, err == nil
	}
}

// ============================================
// Error Mapping
// ============================================

// handleServiceError translates service/store errors into HTTP responses.
// Anything unmapped is a 500 and gets logged with its route.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, store.ErrInvalidStage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stage does not belong to the deal's pipeline"})
	case errors.Is(err, store.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value or probability out of range"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, service.ErrNoActiveDrag):
		c.JSON(http.StatusConflict, gin.H{"error": "No deal is being dragged"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		logAPIError(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func logAPIError(c *gin.Context, err error) {
	log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *store.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func toStageResponse(s store.Stage) models.StageResponse {
	return models.StageResponse{
		ID:           s.ID,
		Name:         s.Name,
		Color:        s.Color,
		Order:        s.Order,
		Probability:  s.Probability,
		IsClosedWon:  s.IsClosedWon,
		IsClosedLost: s.IsClosedLost,
	}
}

func toPipelineResponse(p store.Pipeline) models.PipelineResponse {
	stages := make([]models.StageResponse, len(p.Stages))
	for i, s := range p.Stages {
		stages[i] = toStageResponse(s)
	}
	return models.PipelineResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsDefault:   p.IsDefault,
		Stages:      stages,
		CreatedAt:   p.CreatedAt,
	}
}

func toMetricsResponse(m service.PipelineMetrics) models.MetricsResponse {
	return models.MetricsResponse{
		PipelineID:     m.PipelineID,
		TotalDeals:     m.TotalDeals,
		TotalValue:     m.TotalValue,
		WeightedValue:  m.WeightedValue,
		AvgDealSize:    m.AvgDealSize,
		ConversionRate: m.ConversionRate,
	}
}

// toDealResponse resolves the contact summary at response time; the deal
// itself only carries the contact id.
func toDealResponse(d store.Deal, lookup service.ContactLookup) models.DealResponse {
	resp := models.DealResponse{
		ID:                d.ID,
		Title:             d.Title,
		ContactID:         d.ContactID,
		PipelineID:        d.PipelineID,
		StageID:           d.StageID,
		Value:             d.Value,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		AssignedTo:        d.AssignedTo,
		Tags:              safeStringSlice(d.Tags),
		Notes:             d.Notes,
		CustomFields:      d.CustomFields,
		Source:            d.Source,
		LostReason:        d.LostReason,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}

	if d.ContactID != "" && lookup != nil {
		if contact, ok := lookup(d.ContactID); ok {
			resp.Contact = &models.ContactSummary{
				ID:      contact.ID,
				Name:    contact.Name,
				Email:   contact.Email,
				Company: contact.Company,
			}
		}
	}
	return resp
}

func toDealResponses(deals []store.Deal, lookup service.ContactLookup) []models.DealResponse {
	out := make([]models.DealResponse, len(deals))
	for i, d := range deals {
		out[i] = toDealResponse(d, lookup)
	}
	return out
}

func toNotificationResponse(n *store.Notification) models.NotificationResponse {
	return models.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		EntityID:  n.EntityID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// Helper to ensure nil slices become empty slices
func safeStringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
