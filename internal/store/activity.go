package store

import "time"

// Activity is a logged interaction, optionally linked to a contact and/or
// a deal. The collection is append-only; only the completed flag changes.
type Activity struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Date        time.Time  `json:"date"`
	Completed   bool       `json:"completed"`
	ContactID   *string    `json:"contactId,omitempty"`
	DealID      *string    `json:"dealId,omitempty"`
	AssignedTo  string     `json:"assignedTo"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func cloneActivity(a *Activity) Activity {
	out := *a
	out.Description = cloneStringPtr(a.Description)
	out.ContactID = cloneStringPtr(a.ContactID)
	out.DealID = cloneStringPtr(a.DealID)
	out.CompletedAt = cloneTimePtr(a.CompletedAt)
	return out
}

// ActivityFilters narrows activity listings. Nil fields match everything.
type ActivityFilters struct {
	ContactID  *string
	DealID     *string
	AssignedTo *string
	Completed  *bool
}

// CreateActivity appends an activity. Linked contact/deal ids must exist.
func (s *Store) CreateActivity(a *Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ContactID != nil {
		if _, ok := s.contacts[*a.ContactID]; !ok {
			return ErrNotFound
		}
	}
	if a.DealID != nil {
		if _, ok := s.deals[*a.DealID]; !ok {
			return ErrNotFound
		}
	}

	a.ID = newID()
	a.CreatedAt = time.Now()
	if a.Date.IsZero() {
		a.Date = a.CreatedAt
	}

	stored := cloneActivity(a)
	s.activities[a.ID] = &stored
	s.activityOrder = append(s.activityOrder, a.ID)
	return nil
}

// GetActivity returns the activity or ErrNotFound.
func (s *Store) GetActivity(activityID string) (Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[activityID]
	if !ok {
		return Activity{}, ErrNotFound
	}
	return cloneActivity(a), nil
}

// ListActivities returns matching activities in insertion order.
func (s *Store) ListActivities(filters ActivityFilters) []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Activity, 0, len(s.activityOrder))
	for _, id := range s.activityOrder {
		a := s.activities[id]
		if filters.ContactID != nil && (a.ContactID == nil || *a.ContactID != *filters.ContactID) {
			continue
		}
		if filters.DealID != nil && (a.DealID == nil || *a.DealID != *filters.DealID) {
			continue
		}
		if filters.AssignedTo != nil && a.AssignedTo != *filters.AssignedTo {
			continue
		}
		if filters.Completed != nil && a.Completed != *filters.Completed {
			continue
		}
		out = append(out, cloneActivity(a))
	}
	return out
}

// SetActivityCompleted toggles the completed flag.
func (s *Store) SetActivityCompleted(activityID string, completed bool) (Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activityID]
	if !ok {
		return Activity{}, ErrNotFound
	}

	a.Completed = completed
	if completed {
		now := time.Now()
		a.CompletedAt = &now
	} else {
		a.CompletedAt = nil
	}
	return cloneActivity(a), nil
}
