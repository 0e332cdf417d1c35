package store

import "time"

// Stage is one column of a pipeline board. IDs are unique within their
// pipeline only.
type Stage struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	Order        int    `json:"order"`
	Probability  int    `json:"probability"`
	IsClosedWon  bool   `json:"isClosedWon"`
	IsClosedLost bool   `json:"isClosedLost"`
}

// Pipeline is a named sales process owning an ordered sequence of stages.
type Pipeline struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsDefault   bool      `json:"isDefault"`
	Stages      []Stage   `json:"stages"`
	CreatedAt   time.Time `json:"createdAt"`
}

func clonePipeline(p *Pipeline) Pipeline {
	out := *p
	out.Stages = make([]Stage, len(p.Stages))
	copy(out.Stages, p.Stages)
	return out
}

// StageByID finds a stage within the pipeline.
func (p Pipeline) StageByID(stageID string) (Stage, bool) {
	for _, s := range p.Stages {
		if s.ID == stageID {
			return s, true
		}
	}
	return Stage{}, false
}

// HasStage reports whether stageID belongs to this pipeline.
func (p Pipeline) HasStage(stageID string) bool {
	_, ok := p.StageByID(stageID)
	return ok
}

// CreatePipeline registers a pipeline, assigning ids to it and to any stage
// that arrives without one. Stage order follows slice position.
func (s *Store) CreatePipeline(p *Pipeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	if _, exists := s.pipelines[p.ID]; exists {
		return ErrConflict
	}
	for i := range p.Stages {
		if p.Stages[i].ID == "" {
			p.Stages[i].ID = newID()
		}
		p.Stages[i].Order = i
	}
	p.CreatedAt = time.Now()

	stored := clonePipeline(p)
	s.pipelines[p.ID] = &stored
	s.pipelineOrder = append(s.pipelineOrder, p.ID)
	return nil
}

// GetPipeline returns the pipeline or ErrNotFound.
func (s *Store) GetPipeline(pipelineID string) (Pipeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pipelines[pipelineID]
	if !ok {
		return Pipeline{}, ErrNotFound
	}
	return clonePipeline(p), nil
}

// ListPipelines returns all pipelines in creation order.
func (s *Store) ListPipelines() []Pipeline {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Pipeline, 0, len(s.pipelineOrder))
	for _, id := range s.pipelineOrder {
		out = append(out, clonePipeline(s.pipelines[id]))
	}
	return out
}

// DefaultPipeline returns the pipeline flagged as default, falling back to
// the first one created.
func (s *Store) DefaultPipeline() (Pipeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.pipelineOrder {
		if s.pipelines[id].IsDefault {
			return clonePipeline(s.pipelines[id]), nil
		}
	}
	if len(s.pipelineOrder) > 0 {
		return clonePipeline(s.pipelines[s.pipelineOrder[0]]), nil
	}
	return Pipeline{}, ErrNotFound
}
