package service

import (
	"sync"

	"github.com/meusuper/crm-backend/internal/store"
)

// ============================================
// Drag Controller
// ============================================

// DragController tracks the deal a user is currently dragging across the
// board. It is a two-state machine per user: idle, or dragging exactly one
// deal. Drop and Cancel both return the user to idle no matter what; a
// failed drop therefore never wedges the board, the error is handed to the
// caller to surface.
type DragController interface {
	// Start records dealID as in flight for the user. Starting a new drag
	// while one is in flight replaces it (last drag wins, matching a single
	// pointer device).
	Start(userID, dealID string) (store.Deal, error)

	// Drop moves the in-flight deal to stageID through the deal service and
	// clears the in-flight reference, success or not. ErrNoActiveDrag when
	// the user was idle.
	Drop(userID, stageID string) (store.Deal, error)

	// Cancel drops the in-flight reference without touching the store, the
	// release-over-empty-canvas path. Reports whether a drag was active.
	Cancel(userID string) bool

	// InFlight resolves the deal currently dragged by the user, if any.
	InFlight(userID string) (store.Deal, bool)
}

type dragController struct {
	mu       sync.Mutex
	inFlight map[string]string // userID -> dealID

	store   *store.Store
	dealSvc DealService
}

func NewDragController(st *store.Store, dealSvc DealService) DragController {
	return &dragController{
		inFlight: make(map[string]string),
		store:    st,
		dealSvc:  dealSvc,
	}
}

func (c *dragController) Start(userID, dealID string) (store.Deal, error) {
	deal, err := c.store.GetDeal(dealID)
	if err != nil {
		return store.Deal{}, err
	}

	c.mu.Lock()
	c.inFlight[userID] = deal.ID
	c.mu.Unlock()

	return deal, nil
}

func (c *dragController) Drop(userID, stageID string) (store.Deal, error) {
	c.mu.Lock()
	dealID, ok := c.inFlight[userID]
	delete(c.inFlight, userID)
	c.mu.Unlock()

	if !ok {
		return store.Deal{}, ErrNoActiveDrag
	}

	return c.dealSvc.MoveStage(dealID, stageID, userID)
}

func (c *dragController) Cancel(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.inFlight[userID]
	delete(c.inFlight, userID)
	return ok
}

func (c *dragController) InFlight(userID string) (store.Deal, bool) {
	c.mu.Lock()
	dealID, ok := c.inFlight[userID]
	c.mu.Unlock()

	if !ok {
		return store.Deal{}, false
	}

	deal, err := c.store.GetDeal(dealID)
	if err != nil {
		// The deal vanished mid-drag; drop the dangling reference.
		c.mu.Lock()
		if c.inFlight[userID] == dealID {
			delete(c.inFlight, userID)
		}
		c.mu.Unlock()
		return store.Deal{}, false
	}
	return deal, true
}
