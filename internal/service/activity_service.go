package service

import (
	"time"

	"github.com/meusuper/crm-backend/internal/notification"
	"github.com/meusuper/crm-backend/internal/socket"
	"github.com/meusuper/crm-backend/internal/store"
	"github.com/meusuper/crm-backend/internal/types"
)

// ============================================
// Activity Service
// ============================================

type CreateActivityRequest struct {
	Type        string
	Title       string
	Description *string
	Date        *time.Time
	ContactID   *string
	DealID      *string
	AssignedTo  string
}

type ActivityService interface {
	Create(req *CreateActivityRequest, actorID string) (store.Activity, error)
	List(filters store.ActivityFilters) []store.Activity
	SetCompleted(activityID string, completed bool) (store.Activity, error)
}

type activityService struct {
	store       *store.Store
	notifSvc    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewActivityService(st *store.Store, notifSvc *notification.Service, broadcaster *socket.Broadcaster) ActivityService {
	return &activityService{store: st, notifSvc: notifSvc, broadcaster: broadcaster}
}

func (s *activityService) Create(req *CreateActivityRequest, actorID string) (store.Activity, error) {
	if req.Title == "" {
		return store.Activity{}, ErrInvalidInput
	}
	if !types.IsValidActivityType(req.Type) {
		return store.Activity{}, ErrInvalidInput
	}

	actor, err := s.store.GetUser(actorID)
	if err != nil {
		return store.Activity{}, ErrUnauthorized
	}

	assignedTo := req.AssignedTo
	if assignedTo == "" {
		assignedTo = actor.Name
	}

	activity := &store.Activity{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		ContactID:   req.ContactID,
		DealID:      req.DealID,
		AssignedTo:  assignedTo,
		CreatedBy:   actor.Name,
	}
	if req.Date != nil {
		activity.Date = *req.Date
	}

	if err := s.store.CreateActivity(activity); err != nil {
		return store.Activity{}, err
	}

	// Logging an interaction counts as touching the contact.
	if activity.ContactID != nil {
		s.store.TouchContact(*activity.ContactID)
	}

	if activity.AssignedTo != actor.Name {
		if s.broadcaster != nil {
			if assignee, err := s.store.FindUserByName(activity.AssignedTo); err == nil {
				s.broadcaster.BroadcastActivityCreated(assignee.ID, map[string]interface{}{
					"id":    activity.ID,
					"type":  activity.Type,
					"title": activity.Title,
					"date":  activity.Date,
				})
			}
		}
		if s.notifSvc != nil {
			s.notifSvc.NotifyByName(activity.AssignedTo, types.NotificationActivityDue,
				"New activity assigned", activity.Title, &activity.ID)
		}
	}

	return *activity, nil
}

func (s *activityService) List(filters store.ActivityFilters) []store.Activity {
	return s.store.ListActivities(filters)
}

func (s *activityService) SetCompleted(activityID string, completed bool) (store.Activity, error) {
	activity, err := s.store.SetActivityCompleted(activityID, completed)
	if err != nil {
		return store.Activity{}, err
	}

	if completed && s.broadcaster != nil {
		if assignee, err := s.store.FindUserByName(activity.AssignedTo); err == nil {
			s.broadcaster.BroadcastActivityCompleted(assignee.ID, map[string]interface{}{
				"id":        activity.ID,
				"title":     activity.Title,
				"completed": activity.Completed,
			})
		}
	}

	return activity, nil
}
