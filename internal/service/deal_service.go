package service

import (
	"fmt"
	"time"

	"github.com/meusuper/crm-backend/internal/notification"
	"github.com/meusuper/crm-backend/internal/socket"
	"github.com/meusuper/crm-backend/internal/store"
	"github.com/meusuper/crm-backend/internal/types"
	"github.com/shopspring/decimal"
)

// ============================================
// Deal Service
// ============================================

type CreateDealRequest struct {
	Title             string
	ContactID         string
	PipelineID        string
	StageID           string
	Value             decimal.Decimal
	Probability       *int
	ExpectedCloseDate *time.Time
	AssignedTo        string
	Tags              []string
	Notes             string
	Source            string
	CustomFields      map[string]string
}

type UpdateDealRequest struct {
	Title             *string
	ContactID         *string
	StageID           *string
	Value             *decimal.Decimal
	Probability       *int
	ExpectedCloseDate *time.Time
	AssignedTo        *string
	Tags              []string
	Notes             *string
	LostReason        *string
	CustomFields      map[string]string
}

type DealService interface {
	Create(req *CreateDealRequest, actorID string) (store.Deal, error)
	GetByID(dealID string) (store.Deal, error)
	Update(dealID string, req *UpdateDealRequest, actorID string) (store.Deal, error)
	ListByPipeline(pipelineID string) []store.Deal

	// MoveStage is the single mutation path for stage transitions; both the
	// direct PATCH endpoint and the drag controller land here.
	MoveStage(dealID, stageID, actorID string) (store.Deal, error)
}

type dealService struct {
	store       *store.Store
	notifSvc    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewDealService(st *store.Store, notifSvc *notification.Service, broadcaster *socket.Broadcaster) DealService {
	return &dealService{store: st, notifSvc: notifSvc, broadcaster: broadcaster}
}

func (s *dealService) Create(req *CreateDealRequest, actorID string) (store.Deal, error) {
	if req.Title == "" || req.PipelineID == "" {
		return store.Deal{}, ErrInvalidInput
	}

	pipeline, err := s.store.GetPipeline(req.PipelineID)
	if err != nil {
		return store.Deal{}, err
	}

	// New deals land in the first stage unless told otherwise.
	stageID := req.StageID
	if stageID == "" {
		if len(pipeline.Stages) == 0 {
			return store.Deal{}, ErrInvalidInput
		}
		stageID = pipeline.Stages[0].ID
	}
	stage, ok := pipeline.StageByID(stageID)
	if !ok {
		return store.Deal{}, store.ErrInvalidStage
	}

	// Probability is seeded from the stage but stays the deal's own field
	// afterwards.
	probability := stage.Probability
	if req.Probability != nil {
		probability = *req.Probability
	}

	assignedTo := req.AssignedTo
	if assignedTo == "" {
		if actor, err := s.store.GetUser(actorID); err == nil {
			assignedTo = actor.Name
		}
	}

	source := req.Source
	if source == "" {
		source = types.SourceManual
	}

	deal := &store.Deal{
		Title:             req.Title,
		ContactID:         req.ContactID,
		PipelineID:        req.PipelineID,
		StageID:           stageID,
		Value:             req.Value,
		Probability:       probability,
		ExpectedCloseDate: req.ExpectedCloseDate,
		AssignedTo:        assignedTo,
		Tags:              req.Tags,
		Notes:             req.Notes,
		Source:            source,
		CustomFields:      req.CustomFields,
	}
	if err := s.store.CreateDeal(deal); err != nil {
		return store.Deal{}, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastDealCreated(deal.PipelineID, dealPayload(*deal), actorID)
	}
	if s.notifSvc != nil && deal.AssignedTo != "" {
		if actor, err := s.store.GetUser(actorID); err != nil || actor.Name != deal.AssignedTo {
			s.notifSvc.NotifyByName(deal.AssignedTo, types.NotificationDealAssigned,
				"Deal assigned to you",
				fmt.Sprintf("%q was assigned to you", deal.Title), &deal.ID)
		}
	}

	return *deal, nil
}

func (s *dealService) GetByID(dealID string) (store.Deal, error) {
	return s.store.GetDeal(dealID)
}

func (s *dealService) Update(dealID string, req *UpdateDealRequest, actorID string) (store.Deal, error) {
	deal, err := s.store.GetDeal(dealID)
	if err != nil {
		return store.Deal{}, err
	}

	if req.Title != nil {
		deal.Title = *req.Title
	}
	if req.ContactID != nil {
		deal.ContactID = *req.ContactID
	}
	if req.StageID != nil {
		deal.StageID = *req.StageID
	}
	if req.Value != nil {
		deal.Value = *req.Value
	}
	if req.Probability != nil {
		deal.Probability = *req.Probability
	}
	if req.ExpectedCloseDate != nil {
		deal.ExpectedCloseDate = req.ExpectedCloseDate
	}
	if req.AssignedTo != nil {
		deal.AssignedTo = *req.AssignedTo
	}
	if req.Tags != nil {
		deal.Tags = req.Tags
	}
	if req.Notes != nil {
		deal.Notes = *req.Notes
	}
	if req.LostReason != nil {
		deal.LostReason = req.LostReason
	}
	if req.CustomFields != nil {
		deal.CustomFields = req.CustomFields
	}

	updated, err := s.store.UpdateDeal(&deal)
	if err != nil {
		return store.Deal{}, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastDealUpdated(updated.PipelineID, dealPayload(updated), actorID)
	}
	return updated, nil
}

func (s *dealService) ListByPipeline(pipelineID string) []store.Deal {
	return s.store.ListDeals(pipelineID)
}

func (s *dealService) MoveStage(dealID, stageID, actorID string) (store.Deal, error) {
	before, err := s.store.GetDeal(dealID)
	if err != nil {
		return store.Deal{}, err
	}

	moved, err := s.store.UpdateDealStage(dealID, stageID)
	if err != nil {
		return store.Deal{}, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastDealMoved(moved.PipelineID, dealPayload(moved), before.StageID, stageID, actorID)
	}
	if s.notifSvc != nil && moved.AssignedTo != "" {
		if actor, err := s.store.GetUser(actorID); err != nil || actor.Name != moved.AssignedTo {
			stageName := stageID
			if pipeline, err := s.store.GetPipeline(moved.PipelineID); err == nil {
				if stage, ok := pipeline.StageByID(stageID); ok {
					stageName = stage.Name
				}
			}
			s.notifSvc.NotifyByName(moved.AssignedTo, types.NotificationDealMoved,
				"Deal moved",
				fmt.Sprintf("%q moved to %s", moved.Title, stageName), &moved.ID)
		}
	}

	return moved, nil
}

func dealPayload(d store.Deal) map[string]interface{} {
	return map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"contactId":  d.ContactID,
		"pipelineId": d.PipelineID,
		"stageId":    d.StageID,
		"value":      d.Value,
		"assignedTo": d.AssignedTo,
		"updatedAt":  d.UpdatedAt,
	}
}
