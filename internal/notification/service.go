package notification

import (
	"log"

	"github.com/meusuper/crm-backend/internal/socket"
	"github.com/meusuper/crm-backend/internal/store"
)

// Service persists notifications in the entity store and pushes them to
// connected clients when a broadcaster is attached.
type Service struct {
	store       *store.Store
	broadcaster *socket.Broadcaster
}

// NewService creates a notification service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// SetBroadcaster attaches the websocket broadcaster. Optional; without it
// notifications are stored only.
func (s *Service) SetBroadcaster(b *socket.Broadcaster) {
	s.broadcaster = b
}

// Notify creates a notification for a user and pushes it live.
func (s *Service) Notify(userID, notifType, title, message string, entityID *string) {
	n := &store.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		EntityID: entityID,
	}
	if err := s.store.CreateNotification(n); err != nil {
		log.Printf("[Notification] Failed to store notification for user %s: %v", userID, err)
		return
	}

	if s.broadcaster != nil {
		s.broadcaster.SendNotification(userID, map[string]interface{}{
			"id":        n.ID,
			"type":      n.Type,
			"title":     n.Title,
			"message":   n.Message,
			"entityId":  n.EntityID,
			"createdAt": n.CreatedAt,
		})
		s.broadcaster.SendNotificationCount(userID, s.store.CountUnread(userID))
	}
}

// NotifyByName resolves a team member by display name and notifies them.
// Deal assignment carries names, not user ids.
func (s *Service) NotifyByName(name, notifType, title, message string, entityID *string) {
	if name == "" {
		return
	}
	user, err := s.store.FindUserByName(name)
	if err != nil {
		log.Printf("[Notification] No team member named %q, dropping notification", name)
		return
	}
	s.Notify(user.ID, notifType, title, message, entityID)
}

// List returns a user's notifications, newest first.
func (s *Service) List(userID string, unreadOnly bool) []store.Notification {
	return s.store.ListNotifications(userID, unreadOnly)
}

// CountUnread returns the unread count for a user.
func (s *Service) CountUnread(userID string) int {
	return s.store.CountUnread(userID)
}

// MarkRead flags one notification read.
func (s *Service) MarkRead(notificationID, userID string) error {
	if err := s.store.MarkNotificationRead(notificationID, userID); err != nil {
		return err
	}
	if s.broadcaster != nil {
		s.broadcaster.SendNotificationCount(userID, s.store.CountUnread(userID))
	}
	return nil
}

// MarkAllRead flags every notification of a user read.
func (s *Service) MarkAllRead(userID string) {
	s.store.MarkAllNotificationsRead(userID)
	if s.broadcaster != nil {
		s.broadcaster.SendNotificationCount(userID, 0)
	}
}
