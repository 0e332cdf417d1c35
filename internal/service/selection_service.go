package service

import (
	"sync"

	"github.com/meusuper/crm-backend/internal/store"
)

// ============================================
// Selection Service
// ============================================

// Selection kinds
const (
	SelectionDeal    = "deal"
	SelectionContact = "contact"
)

// SelectionDetail is the resolved entity behind a user's current selection.
// Exactly one of Deal/Contact is set, matching Kind.
type SelectionDetail struct {
	Kind    string         `json:"kind"`
	Deal    *store.Deal    `json:"deal,omitempty"`
	Contact *store.Contact `json:"contact,omitempty"`
}

// SelectionService holds, per user, the single nullable reference to the
// deal or contact open in the detail panel.
type SelectionService interface {
	// Select points the user's detail panel at an entity. The entity must
	// exist at call time.
	Select(userID, kind, entityID string) (*SelectionDetail, error)

	// Current resolves the selection. (nil, nil) when nothing is selected;
	// ErrNotFound when the selected entity has since disappeared, in which
	// case the selection is cleared.
	Current(userID string) (*SelectionDetail, error)

	// Clear resets the selection to nothing.
	Clear(userID string)
}

type selection struct {
	kind string
	id   string
}

type selectionService struct {
	mu       sync.Mutex
	selected map[string]selection // userID -> selection

	store *store.Store
}

func NewSelectionService(st *store.Store) SelectionService {
	return &selectionService{
		selected: make(map[string]selection),
		store:    st,
	}
}

func (s *selectionService) Select(userID, kind, entityID string) (*SelectionDetail, error) {
	detail, err := s.resolve(kind, entityID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.selected[userID] = selection{kind: kind, id: entityID}
	s.mu.Unlock()

	return detail, nil
}

func (s *selectionService) Current(userID string) (*SelectionDetail, error) {
	s.mu.Lock()
	sel, ok := s.selected[userID]
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	detail, err := s.resolve(sel.kind, sel.id)
	if err != nil {
		// Selected entity is gone; a stale panel reference must not stick.
		s.Clear(userID)
		return nil, err
	}
	return detail, nil
}

func (s *selectionService) Clear(userID string) {
	s.mu.Lock()
	delete(s.selected, userID)
	s.mu.Unlock()
}

func (s *selectionService) resolve(kind, entityID string) (*SelectionDetail, error) {
	switch kind {
	case SelectionDeal:
		deal, err := s.store.GetDeal(entityID)
		if err != nil {
			return nil, err
		}
		return &SelectionDetail{Kind: SelectionDeal, Deal: &deal}, nil

	case SelectionContact:
		contact, err := s.store.GetContact(entityID)
		if err != nil {
			return nil, err
		}
		return &SelectionDetail{Kind: SelectionContact, Contact: &contact}, nil

	default:
		return nil, ErrInvalidInput
	}
}
