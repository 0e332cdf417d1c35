package service

import (
	"sort"
	"strings"

	"github.com/meusuper/crm-backend/internal/store"
	"github.com/shopspring/decimal"
)

// ============================================
// Pipeline Service
// ============================================

// PipelineMetrics are the aggregate figures shown above the board. All of
// it is derived from the current deal set on every read; there is no cached
// state to invalidate.
type PipelineMetrics struct {
	PipelineID     string          `json:"pipelineId"`
	TotalDeals     int             `json:"totalDeals"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	WeightedValue  decimal.Decimal `json:"weightedValue"`
	AvgDealSize    decimal.Decimal `json:"avgDealSize"`
	ConversionRate float64         `json:"conversionRate"`
}

// BoardColumn is one stage of the Kanban board with its visible deals.
type BoardColumn struct {
	Stage store.Stage  `json:"stage"`
	Deals []store.Deal `json:"deals"`
}

type PipelineService interface {
	List() []store.Pipeline
	GetByID(pipelineID string) (store.Pipeline, error)
	Board(pipelineID, searchTerm string) ([]BoardColumn, error)
	Metrics(pipelineID string) (PipelineMetrics, error)
}

type pipelineService struct {
	store *store.Store
}

func NewPipelineService(st *store.Store) PipelineService {
	return &pipelineService{store: st}
}

func (s *pipelineService) List() []store.Pipeline {
	return s.store.ListPipelines()
}

func (s *pipelineService) GetByID(pipelineID string) (store.Pipeline, error) {
	return s.store.GetPipeline(pipelineID)
}

// Board assembles one column per stage, in stage order, applying the search
// term to every column.
func (s *pipelineService) Board(pipelineID, searchTerm string) ([]BoardColumn, error) {
	pipeline, err := s.store.GetPipeline(pipelineID)
	if err != nil {
		return nil, err
	}

	deals := s.store.ListDeals(pipelineID)
	lookup := s.contactLookup()

	stages := make([]store.Stage, len(pipeline.Stages))
	copy(stages, pipeline.Stages)
	sort.SliceStable(stages, func(i, j int) bool { return stages[i].Order < stages[j].Order })

	columns := make([]BoardColumn, 0, len(stages))
	for _, stage := range stages {
		columns = append(columns, BoardColumn{
			Stage: stage,
			Deals: DealsForStage(deals, lookup, stage.ID, pipelineID, searchTerm),
		})
	}
	return columns, nil
}

func (s *pipelineService) Metrics(pipelineID string) (PipelineMetrics, error) {
	pipeline, err := s.store.GetPipeline(pipelineID)
	if err != nil {
		return PipelineMetrics{}, err
	}
	return ComputeMetrics(s.store.ListDeals(pipelineID), pipeline), nil
}

func (s *pipelineService) contactLookup() ContactLookup {
	return func(id string) (store.Contact, bool) {
		c, err := s.store.GetContact(id)
		return c, err == nil
	}
}

// ============================================
// Pure Derivations
// ============================================

// ContactLookup resolves a contact id against the authoritative contact
// collection at read time.
type ContactLookup func(id string) (store.Contact, bool)

var oneHundred = decimal.NewFromInt(100)

// ComputeMetrics derives the pipeline figures from a deal set. Deals of
// other pipelines are skipped. A deal counts as converted when it sits in
// any closed-won stage of the pipeline; the deal's own probability stays
// independent of its stage's probability.
func ComputeMetrics(deals []store.Deal, pipeline store.Pipeline) PipelineMetrics {
	m := PipelineMetrics{PipelineID: pipeline.ID}

	wonStages := make(map[string]bool)
	for _, stage := range pipeline.Stages {
		if stage.IsClosedWon {
			wonStages[stage.ID] = true
		}
	}

	wonDeals := 0
	for _, d := range deals {
		if d.PipelineID != pipeline.ID {
			continue
		}
		m.TotalDeals++
		m.TotalValue = m.TotalValue.Add(d.Value)
		m.WeightedValue = m.WeightedValue.Add(
			d.Value.Mul(decimal.NewFromInt(int64(d.Probability))).Div(oneHundred))
		if wonStages[d.StageID] {
			wonDeals++
		}
	}

	// Guard the empty pipeline: every figure stays zero.
	if m.TotalDeals > 0 {
		m.AvgDealSize = m.TotalValue.Div(decimal.NewFromInt(int64(m.TotalDeals)))
		m.ConversionRate = float64(wonDeals) / float64(m.TotalDeals) * 100
	}
	return m
}

// DealsForStage filters the deal set down to one board column. The filter
// is stable: relative order of the input is preserved, never re-sorted.
// The search term matches case-insensitively against the deal title and
// the contact's name and company.
func DealsForStage(deals []store.Deal, lookup ContactLookup, stageID, pipelineID, searchTerm string) []store.Deal {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	out := make([]store.Deal, 0)
	for _, d := range deals {
		if d.StageID != stageID || d.PipelineID != pipelineID {
			continue
		}
		if term != "" && !dealMatchesTerm(d, lookup, term) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func dealMatchesTerm(d store.Deal, lookup ContactLookup, term string) bool {
	if strings.Contains(strings.ToLower(d.Title), term) {
		return true
	}
	if lookup == nil || d.ContactID == "" {
		return false
	}
	contact, ok := lookup(d.ContactID)
	if !ok {
		return false
	}
	if strings.Contains(strings.ToLower(contact.Name), term) {
		return true
	}
	if contact.Company != nil && strings.Contains(strings.ToLower(*contact.Company), term) {
		return true
	}
	return false
}
