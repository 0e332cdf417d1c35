package types

// Contact status values
const (
	ContactLead     = "lead"
	ContactProspect = "prospect"
	ContactCustomer = "customer"
	ContactInactive = "inactive"
)

// Activity type values
const (
	ActivityCall      = "call"
	ActivityEmail     = "email"
	ActivityMeeting   = "meeting"
	ActivityNote      = "note"
	ActivityTask      = "task"
	ActivityWhatsApp  = "whatsapp"
	ActivityInstagram = "instagram"
)

// Deal/Contact source labels
const (
	SourceWebsite   = "website"
	SourceWhatsApp  = "whatsapp"
	SourceInstagram = "instagram"
	SourceReferral  = "referral"
	SourceManual    = "manual"
)

// Notification type values
const (
	NotificationDealMoved    = "deal_moved"
	NotificationDealOverdue  = "deal_overdue"
	NotificationDealStale    = "deal_stale"
	NotificationActivityDue  = "activity_due"
	NotificationDealAssigned = "deal_assigned"
)

// Valid values for validation
var ValidContactStatuses = []string{
	ContactLead, ContactProspect, ContactCustomer, ContactInactive,
}

var ValidActivityTypes = []string{
	ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote,
	ActivityTask, ActivityWhatsApp, ActivityInstagram,
}

// Helper functions for validation
func IsValidContactStatus(status string) bool {
	for _, s := range ValidContactStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidActivityType(activityType string) bool {
	for _, t := range ValidActivityTypes {
		if t == activityType {
			return true
		}
	}
	return false
}
