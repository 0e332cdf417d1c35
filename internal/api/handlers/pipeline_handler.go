package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meusuper/crm-backend/internal/models"
	"github.com/meusuper/crm-backend/internal/service"
)

// ============================================
// Pipeline Handler
// ============================================

type PipelineHandler struct {
	pipelineService service.PipelineService
	contactLookup   service.ContactLookup
}

// List - List all pipelines
// GET /pipelines
func (h *PipelineHandler) List(c *gin.Context) {
	pipelines := h.pipelineService.List()

	response := make([]models.PipelineResponse, len(pipelines))
	for i, p := range pipelines {
		response[i] = toPipelineResponse(p)
	}

	c.JSON(http.StatusOK, response)
}

// Get - Get a pipeline by ID
// GET /pipelines/:id
func (h *PipelineHandler) Get(c *gin.Context) {
	pipeline, err := h.pipelineService.GetByID(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPipelineResponse(pipeline))
}

// Board - Get the Kanban board for a pipeline
// GET /pipelines/:id/board?search=
func (h *PipelineHandler) Board(c *gin.Context) {
	pipelineID := c.Param("id")
	searchTerm := c.Query("search")

	columns, err := h.pipelineService.Board(pipelineID, searchTerm)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	metrics, err := h.pipelineService.Metrics(pipelineID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := models.BoardResponse{
		PipelineID: pipelineID,
		Columns:    make([]models.BoardColumnResponse, len(columns)),
		Metrics:    toMetricsResponse(metrics),
	}
	for i, col := range columns {
		response.Columns[i] = models.BoardColumnResponse{
			Stage: toStageResponse(col.Stage),
			Deals: toDealResponses(col.Deals, h.contactLookup),
		}
	}

	c.JSON(http.StatusOK, response)
}

// Metrics - Get the aggregate figures for a pipeline
// GET /pipelines/:id/metrics
func (h *PipelineHandler) Metrics(c *gin.Context) {
	metrics, err := h.pipelineService.Metrics(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMetricsResponse(metrics))
}
