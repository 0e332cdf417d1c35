package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal is a single sales opportunity. It references its contact by id only;
// the contact collection stays authoritative and is joined at read time.
type Deal struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	ContactID         string            `json:"contactId"`
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

func cloneDeal(d *Deal) Deal {
	out := *d
	out.Tags = cloneStrings(d.Tags)
	out.CustomFields = cloneFields(d.CustomFields)
	out.ExpectedCloseDate = cloneTimePtr(d.ExpectedCloseDate)
	out.LostReason = cloneStringPtr(d.LostReason)
	return out
}

func validateDealAmounts(d *Deal) error {
	if d.Value.IsNegative() {
		return ErrInvalidAmount
	}
	if d.Probability < 0 || d.Probability > 100 {
		return ErrInvalidAmount
	}
	return nil
}

// CreateDeal appends a deal, assigning an id and timestamps. The target
// pipeline must exist and the stage must belong to it; the contact, when
// set, must exist.
func (s *Store) CreateDeal(d *Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateDealAmounts(d); err != nil {
		return err
	}
	p, ok := s.pipelines[d.PipelineID]
	if !ok {
		return ErrNotFound
	}
	if !clonePipeline(p).HasStage(d.StageID) {
		return ErrInvalidStage
	}
	if d.ContactID != "" {
		if _, ok := s.contacts[d.ContactID]; !ok {
			return ErrNotFound
		}
	}

	d.ID = newID()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt

	stored := cloneDeal(d)
	s.deals[d.ID] = &stored
	s.dealOrder = append(s.dealOrder, d.ID)
	return nil
}

// GetDeal returns the deal or ErrNotFound.
func (s *Store) GetDeal(dealID string) (Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deals[dealID]
	if !ok {
		return Deal{}, ErrNotFound
	}
	return cloneDeal(d), nil
}

// ListDeals returns the deals of one pipeline in insertion order. An empty
// pipelineID returns every deal.
func (s *Store) ListDeals(pipelineID string) []Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Deal, 0, len(s.dealOrder))
	for _, id := range s.dealOrder {
		d := s.deals[id]
		if pipelineID != "" && d.PipelineID != pipelineID {
			continue
		}
		out = append(out, cloneDeal(d))
	}
	return out
}

// UpdateDeal replaces the mutable fields of a deal. Pipeline/stage pairing
// and amount ranges are re-validated; CreatedAt is preserved and UpdatedAt
// refreshed. Nothing is written when validation fails.
func (s *Store) UpdateDeal(d *Deal) (Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.deals[d.ID]
	if !ok {
		return Deal{}, ErrNotFound
	}
	if err := validateDealAmounts(d); err != nil {
		return Deal{}, err
	}
	p, ok := s.pipelines[d.PipelineID]
	if !ok {
		return Deal{}, ErrNotFound
	}
	if !clonePipeline(p).HasStage(d.StageID) {
		return Deal{}, ErrInvalidStage
	}
	if d.ContactID != "" {
		if _, ok := s.contacts[d.ContactID]; !ok {
			return Deal{}, ErrNotFound
		}
	}

	d.CreatedAt = current.CreatedAt
	d.UpdatedAt = bumpUpdatedAt(current.UpdatedAt)

	stored := cloneDeal(d)
	s.deals[d.ID] = &stored
	return cloneDeal(&stored), nil
}

// UpdateDealStage moves a deal to another stage of its own pipeline. The
// replace is atomic: on any error the stored deal is untouched. UpdatedAt
// always lands strictly after its previous value.
func (s *Store) UpdateDealStage(dealID, stageID string) (Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.deals[dealID]
	if !ok {
		return Deal{}, ErrNotFound
	}
	p, ok := s.pipelines[current.PipelineID]
	if !ok {
		return Deal{}, ErrNotFound
	}
	if !clonePipeline(p).HasStage(stageID) {
		return Deal{}, ErrInvalidStage
	}

	updated := cloneDeal(current)
	updated.StageID = stageID
	updated.UpdatedAt = bumpUpdatedAt(current.UpdatedAt)

	s.deals[dealID] = &updated
	return cloneDeal(&updated), nil
}
