package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================
// DEAL REQUESTS & RESPONSES
// ============================================

type CreateDealRequest struct {
	Title             string            `json:"title" binding:"required"`
	ContactID         string            `json:"contactId"`
	StageID           string            `json:"stageId"`
	Value             decimal.Decimal   `json:"value"`
	Probability       *int              `json:"probability"`
	ExpectedCloseDate *time.Time        `json:"expectedCloseDate"`
	AssignedTo        string            `json:"assignedTo"`
	Tags              []string          `json:"tags"`
	Notes             string            `json:"notes"`
	Source            string            `json:"source"`
	CustomFields      map[string]string `json:"customFields"`
}

type UpdateDealRequest struct {
	Title             *string           `json:"title"`
	ContactID         *string           `json:"contactId"`
	StageID           *string           `json:"stageId"`
	Value             *decimal.Decimal  `json:"value"`
	Probability       *int              `json:"probability"`
	ExpectedCloseDate *time.Time        `json:"expectedCloseDate"`
	AssignedTo        *string           `json:"assignedTo"`
	Tags              []string          `json:"tags"`
	Notes             *string           `json:"notes"`
	LostReason        *string           `json:"lostReason"`
	CustomFields      map[string]string `json:"customFields"`
}

type MoveDealRequest struct {
	StageID string `json:"stageId" binding:"required"`
}

type DealResponse struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	ContactID         string            `json:"contactId,omitempty"`
	Contact           *ContactSummary   `json:"contact,omitempty"`
	PipelineID        string            `json:"pipelineId"`
	StageID           string            `json:"stageId"`
	Value             decimal.Decimal   `json:"value"`
	Probability       int               `json:"probability"`
	ExpectedCloseDate *time.Time        `json:"expectedCloseDate,omitempty"`
	AssignedTo        string            `json:"assignedTo"`
	Tags              []string          `json:"tags"`
	Notes             string            `json:"notes"`
	CustomFields      map[string]string `json:"customFields,omitempty"`
	Source            string            `json:"source"`
	LostReason        *string           `json:"lostReason,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// ContactSummary is the read-time join of a deal's contact, resolved from
// the contact collection on every response.
type ContactSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company,omitempty"`
}

// ============================================
// BOARD / DRAG REQUESTS & RESPONSES
// ============================================

type StartDragRequest struct {
	DealID string `json:"dealId" binding:"required"`
}

type DropRequest struct {
	StageID string `json:"stageId" binding:"required"`
}

type SelectRequest struct {
	Kind     string `json:"kind" binding:"required"`
	EntityID string `json:"entityId" binding:"required"`
}

type BoardColumnResponse struct {
	Stage StageResponse  `json:"stage"`
	Deals []DealResponse `json:"deals"`
}

type BoardResponse struct {
	PipelineID string                `json:"pipelineId"`
	Columns    []BoardColumnResponse `json:"columns"`
	Metrics    MetricsResponse       `json:"metrics"`
}
