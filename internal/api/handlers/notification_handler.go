package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meusuper/crm-backend/internal/api/middleware"
	"github.com/meusuper/crm-backend/internal/models"
	"github.com/meusuper/crm-backend/internal/notification"
)

// ============================================
// Notification Handler
// ============================================

type NotificationHandler struct {
	notifSvc *notification.Service
}

// List - List the user's notifications, newest first
// GET /notifications?unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications := h.notifSvc.List(userID, unreadOnly)

	response := make([]models.NotificationResponse, len(notifications))
	for i := range notifications {
		response[i] = toNotificationResponse(&notifications[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": response,
		"unreadCount":   h.notifSvc.CountUnread(userID),
	})
}

// MarkRead - Mark one notification read
// PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.notifSvc.MarkRead(c.Param("id"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// MarkAllRead - Mark every notification read
// POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	h.notifSvc.MarkAllRead(userID)
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}
