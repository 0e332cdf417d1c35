package store

import "time"

// Notification is an in-app message for one user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	EntityID  *string   `json:"entityId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func cloneNotification(n *Notification) Notification {
	out := *n
	out.EntityID = cloneStringPtr(n.EntityID)
	return out
}

// CreateNotification appends a notification.
func (s *Store) CreateNotification(n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = newID()
	n.CreatedAt = time.Now()

	stored := cloneNotification(n)
	s.notifications[n.ID] = &stored
	s.notificationOrder = append(s.notificationOrder, n.ID)
	return nil
}

// ListNotifications returns one user's notifications, newest first.
func (s *Store) ListNotifications(userID string, unreadOnly bool) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Notification, 0)
	for i := len(s.notificationOrder) - 1; i >= 0; i-- {
		n := s.notifications[s.notificationOrder[i]]
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, cloneNotification(n))
	}
	return out
}

// CountUnread returns the unread notification count for a user.
func (s *Store) CountUnread(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, id := range s.notificationOrder {
		n := s.notifications[id]
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count
}

// MarkNotificationRead flags one notification read. The notification must
// belong to the user.
func (s *Store) MarkNotificationRead(notificationID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[notificationID]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	n.Read = true
	return nil
}

// MarkAllNotificationsRead flags every notification of a user read.
func (s *Store) MarkAllNotificationsRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.notificationOrder {
		if n := s.notifications[id]; n.UserID == userID {
			n.Read = true
		}
	}
}
