package models

import "time"

// ============================================
// CONTACT REQUESTS
// ============================================

type CreateContactRequest struct {
	Name         string            `json:"name" binding:"required"`
	Email        string            `json:"email" binding:"required,email"`
	Phone        *string           `json:"phone"`
	Company      *string           `json:"company"`
	Position     *string           `json:"position"`
	Tags         []string          `json:"tags"`
	Source       string            `json:"source"`
	Status       string            `json:"status"`
	Score        *int              `json:"score"`
	Notes        string            `json:"notes"`
	CustomFields map[string]string `json:"customFields"`
}

type UpdateContactRequest struct {
	Name         *string           `json:"name"`
	Email        *string           `json:"email"`
	Phone        *string           `json:"phone"`
	Company      *string           `json:"company"`
	Position     *string           `json:"position"`
	Tags         []string          `json:"tags"`
	Status       *string           `json:"status"`
	Score        *int              `json:"score"`
	Notes        *string           `json:"notes"`
	CustomFields map[string]string `json:"customFields"`
}

// ============================================
// ACTIVITY REQUESTS
// ============================================

type CreateActivityRequest struct {
	Type        string     `json:"type" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	ContactID   *string    `json:"contactId"`
	DealID      *string    `json:"dealId"`
	AssignedTo  string     `json:"assignedTo"`
}

type CompleteActivityRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}
