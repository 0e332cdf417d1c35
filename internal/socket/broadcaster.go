package socket

import "fmt"

// Broadcaster provides high-level methods for broadcasting board events.
// Board events go to the pipeline room so every open dashboard for that
// pipeline reflects the change; the acting user is excluded since their
// client already applied it.
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

func pipelineRoom(pipelineID string) string {
	return fmt.Sprintf("pipeline:%s", pipelineID)
}

// ============================================
// Deal Broadcasting
// ============================================

// BroadcastDealCreated broadcasts deal creation to the pipeline room
func (b *Broadcaster) BroadcastDealCreated(pipelineID string, deal map[string]interface{}, excludeUserID string) {
	b.hub.SendToRoom(pipelineRoom(pipelineID), MessageDealCreated, deal, excludeUserID)
}

// BroadcastDealUpdated broadcasts deal field edits to the pipeline room
func (b *Broadcaster) BroadcastDealUpdated(pipelineID string, deal map[string]interface{}, excludeUserID string) {
	b.hub.SendToRoom(pipelineRoom(pipelineID), MessageDealUpdated, deal, excludeUserID)
}

// BroadcastDealMoved broadcasts a stage transition to the pipeline room
func (b *Broadcaster) BroadcastDealMoved(pipelineID string, deal map[string]interface{}, oldStageID, newStageID string, excludeUserID string) {
	b.hub.SendToRoom(pipelineRoom(pipelineID), MessageDealMoved, map[string]interface{}{
		"deal":       deal,
		"oldStageId": oldStageID,
		"newStageId": newStageID,
		"movedBy":    excludeUserID,
	}, excludeUserID)
}

// ============================================
// Contact / Activity Broadcasting
// ============================================

// BroadcastContactCreated notifies all connected dashboards of a new contact
func (b *Broadcaster) BroadcastContactCreated(contact map[string]interface{}, excludeUserID string) {
	b.hub.SendToRoom("contacts", MessageContactCreated, contact, excludeUserID)
}

// BroadcastContactUpdated notifies all connected dashboards of a contact edit
func (b *Broadcaster) BroadcastContactUpdated(contact map[string]interface{}, excludeUserID string) {
	b.hub.SendToRoom("contacts", MessageContactUpdated, contact, excludeUserID)
}

// BroadcastActivityCreated notifies the assignee of a new activity
func (b *Broadcaster) BroadcastActivityCreated(assigneeUserID string, activity map[string]interface{}) {
	b.hub.SendToUser(assigneeUserID, MessageActivityCreated, activity)
}

// BroadcastActivityCompleted notifies the assignee that an activity was
// checked off
func (b *Broadcaster) BroadcastActivityCompleted(assigneeUserID string, activity map[string]interface{}) {
	b.hub.SendToUser(assigneeUserID, MessageActivityCompleted, activity)
}

// ============================================
// Notification Broadcasting
// ============================================

// SendNotification sends a notification to a specific user
func (b *Broadcaster) SendNotification(userID string, notification map[string]interface{}) {
	b.hub.SendToUser(userID, MessageNotification, notification)
}

// SendNotificationCount updates the unread badge for a user
func (b *Broadcaster) SendNotificationCount(userID string, unread int) {
	b.hub.SendToUser(userID, MessageNotificationCount, map[string]interface{}{
		"unread": unread,
	})
}
