package service

import (
	"strings"

	"github.com/meusuper/crm-backend/internal/socket"
	"github.com/meusuper/crm-backend/internal/store"
	"github.com/meusuper/crm-backend/internal/types"
)

// ============================================
// Contact Service
// ============================================

type CreateContactRequest struct {
	Name         string
	Email        string
	Phone        *string
	Company      *string
	Position     *string
	Tags         []string
	Source       string
	Status       string
	Score        *int
	Notes        string
	CustomFields map[string]string
}

type UpdateContactRequest struct {
	Name         *string
	Email        *string
	Phone        *string
	Company      *string
	Position     *string
	Tags         []string
	Status       *string
	Score        *int
	Notes        *string
	CustomFields map[string]string
}

type ContactService interface {
	Create(req *CreateContactRequest, actorID string) (store.Contact, error)
	GetByID(contactID string) (store.Contact, error)
	Update(contactID string, req *UpdateContactRequest, actorID string) (store.Contact, error)
	List(searchTerm string) []store.Contact
}

type contactService struct {
	store       *store.Store
	broadcaster *socket.Broadcaster
}

func NewContactService(st *store.Store, broadcaster *socket.Broadcaster) ContactService {
	return &contactService{store: st, broadcaster: broadcaster}
}

func (s *contactService) Create(req *CreateContactRequest, actorID string) (store.Contact, error) {
	if req.Name == "" || req.Email == "" {
		return store.Contact{}, ErrInvalidInput
	}

	status := req.Status
	if status == "" {
		status = types.ContactLead
	}
	if !types.IsValidContactStatus(status) {
		return store.Contact{}, ErrInvalidInput
	}

	score := 0
	if req.Score != nil {
		score = *req.Score
	}
	if score < 0 || score > 100 {
		return store.Contact{}, ErrInvalidInput
	}

	source := req.Source
	if source == "" {
		source = types.SourceManual
	}

	contact := &store.Contact{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		Position:     req.Position,
		Tags:         req.Tags,
		Source:       source,
		Status:       status,
		Score:        score,
		Notes:        req.Notes,
		CustomFields: req.CustomFields,
	}
	if err := s.store.CreateContact(contact); err != nil {
		return store.Contact{}, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastContactCreated(contactPayload(*contact), actorID)
	}
	return *contact, nil
}

func (s *contactService) GetByID(contactID string) (store.Contact, error) {
	return s.store.GetContact(contactID)
}

func (s *contactService) Update(contactID string, req *UpdateContactRequest, actorID string) (store.Contact, error) {
	contact, err := s.store.GetContact(contactID)
	if err != nil {
		return store.Contact{}, err
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = req.Phone
	}
	if req.Company != nil {
		contact.Company = req.Company
	}
	if req.Position != nil {
		contact.Position = req.Position
	}
	if req.Tags != nil {
		contact.Tags = req.Tags
	}
	if req.Status != nil {
		if !types.IsValidContactStatus(*req.Status) {
			return store.Contact{}, ErrInvalidInput
		}
		contact.Status = *req.Status
	}
	if req.Score != nil {
		if *req.Score < 0 || *req.Score > 100 {
			return store.Contact{}, ErrInvalidInput
		}
		contact.Score = *req.Score
	}
	if req.Notes != nil {
		contact.Notes = *req.Notes
	}
	if req.CustomFields != nil {
		contact.CustomFields = req.CustomFields
	}

	updated, err := s.store.UpdateContact(&contact)
	if err != nil {
		return store.Contact{}, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastContactUpdated(contactPayload(updated), actorID)
	}
	return updated, nil
}

func (s *contactService) List(searchTerm string) []store.Contact {
	contacts := s.store.ListContacts()

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		return contacts
	}

	out := make([]store.Contact, 0, len(contacts))
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Email), term) ||
			(c.Company != nil && strings.Contains(strings.ToLower(*c.Company), term)) {
			out = append(out, c)
		}
	}
	return out
}

func contactPayload(c store.Contact) map[string]interface{} {
	return map[string]interface{}{
		"id":     c.ID,
		"name":   c.Name,
		"email":  c.Email,
		"status": c.Status,
		"score":  c.Score,
	}
}
