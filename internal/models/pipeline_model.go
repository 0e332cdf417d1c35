package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================
// PIPELINE RESPONSES
// ============================================

type StageResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	Order        int    `json:"order"`
	Probability  int    `json:"probability"`
	IsClosedWon  bool   `json:"isClosedWon"`
	IsClosedLost bool   `json:"isClosedLost"`
}

type PipelineResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	IsDefault   bool            `json:"isDefault"`
	Stages      []StageResponse `json:"stages"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type MetricsResponse struct {
	PipelineID     string          `json:"pipelineId"`
	TotalDeals     int             `json:"totalDeals"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	WeightedValue  decimal.Decimal `json:"weightedValue"`
	AvgDealSize    decimal.Decimal `json:"avgDealSize"`
	ConversionRate float64         `json:"conversionRate"`
}
