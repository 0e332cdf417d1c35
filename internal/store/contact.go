package store

import "time"

// Contact is a person or organization lead.
type Contact struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        *string           `json:"phone,omitempty"`
	Company      *string           `json:"company,omitempty"`
	Position     *string           `json:"position,omitempty"`
	Tags         []string          `json:"tags"`
	Source       string            `json:"source"`
	Status       string            `json:"status"`
	Score        int               `json:"score"`
	Notes        string            `json:"notes"`
	CustomFields map[string]string `json:"customFields,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	LastContact  time.Time         `json:"lastContact"`
}

func cloneContact(c *Contact) Contact {
	out := *c
	out.Tags = cloneStrings(c.Tags)
	out.CustomFields = cloneFields(c.CustomFields)
	out.Phone = cloneStringPtr(c.Phone)
	out.Company = cloneStringPtr(c.Company)
	out.Position = cloneStringPtr(c.Position)
	return out
}

// CreateContact appends a contact and assigns it an id.
func (s *Store) CreateContact(c *Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = newID()
	c.CreatedAt = time.Now()
	if c.LastContact.IsZero() {
		c.LastContact = c.CreatedAt
	}

	stored := cloneContact(c)
	s.contacts[c.ID] = &stored
	s.contactOrder = append(s.contactOrder, c.ID)
	return nil
}

// GetContact returns the contact or ErrNotFound.
func (s *Store) GetContact(contactID string) (Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[contactID]
	if !ok {
		return Contact{}, ErrNotFound
	}
	return cloneContact(c), nil
}

// ListContacts returns all contacts in insertion order.
func (s *Store) ListContacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Contact, 0, len(s.contactOrder))
	for _, id := range s.contactOrder {
		out = append(out, cloneContact(s.contacts[id]))
	}
	return out
}

// UpdateContact replaces a contact's mutable fields, keeping CreatedAt.
func (s *Store) UpdateContact(c *Contact) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.contacts[c.ID]
	if !ok {
		return Contact{}, ErrNotFound
	}

	c.CreatedAt = current.CreatedAt
	stored := cloneContact(c)
	s.contacts[c.ID] = &stored
	return cloneContact(&stored), nil
}

// TouchContact refreshes LastContact, used when an interaction is logged.
func (s *Store) TouchContact(contactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[contactID]
	if !ok {
		return ErrNotFound
	}
	c.LastContact = time.Now()
	return nil
}
