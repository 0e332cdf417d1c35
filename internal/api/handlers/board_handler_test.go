package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/meusuper/crm-backend/internal/config"
	"github.com/meusuper/crm-backend/internal/service"
	"github.com/meusuper/crm-backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardFixture struct {
	router   *gin.Engine
	store    *store.Store
	pipeline store.Pipeline
	deal     store.Deal
	user     store.User
}

// newBoardRouter wires the real services behind a router that injects the
// user id directly, standing in for the JWT middleware.
func newBoardRouter(t *testing.T) *boardFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewStore()

	user := store.User{Email: "ana@example.com", Name: "Ana Souza"}
	require.NoError(t, st.CreateUser(&user))

	contact := store.Contact{Name: "Maria Oliveira", Email: "maria@example.com"}
	require.NoError(t, st.CreateContact(&contact))

	pipeline := store.Pipeline{
		Name: "Sales",
		Stages: []store.Stage{
			{Name: "Lead", Probability: 10},
			{Name: "Won", Probability: 100, IsClosedWon: true},
		},
	}
	require.NoError(t, st.CreatePipeline(&pipeline))

	deal := store.Deal{
		Title:      "Annual plan",
		ContactID:  contact.ID,
		PipelineID: pipeline.ID,
		StageID:    pipeline.Stages[0].ID,
		Value:      decimal.NewFromInt(1000),
	}
	require.NoError(t, st.CreateDeal(&deal))

	services := service.NewServices(&service.ServiceDeps{
		Config: &config.Config{JWTSecret: "test"},
		Store:  st,
	})
	h := NewHandlers(services)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Next()
	})

	r.GET("/pipelines/:id/board", h.Pipeline.Board)
	r.GET("/pipelines/:id/metrics", h.Pipeline.Metrics)
	r.POST("/board/drag/start", h.Board.StartDrag)
	r.POST("/board/drag/drop", h.Board.Drop)
	r.POST("/board/drag/cancel", h.Board.CancelDrag)
	r.GET("/board/selection", h.Board.GetSelection)
	r.PUT("/board/selection", h.Board.Select)
	r.DELETE("/board/selection", h.Board.ClearSelection)

	return &boardFixture{router: r, store: st, pipeline: pipeline, deal: deal, user: user}
}

func (f *boardFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestBoardEndpoint(t *testing.T) {
	f := newBoardRouter(t)

	w := f.do(t, http.MethodGet, "/pipelines/"+f.pipeline.ID+"/board", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		PipelineID string `json:"pipelineId"`
		Columns    []struct {
			Stage struct {
				Name string `json:"name"`
			} `json:"stage"`
			Deals []struct {
				Title   string `json:"title"`
				Contact *struct {
					Name string `json:"name"`
				} `json:"contact"`
			} `json:"deals"`
		} `json:"columns"`
		Metrics struct {
			TotalDeals int `json:"totalDeals"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, f.pipeline.ID, resp.PipelineID)
	require.Len(t, resp.Columns, 2)
	assert.Equal(t, "Lead", resp.Columns[0].Stage.Name)
	require.Len(t, resp.Columns[0].Deals, 1)
	assert.Equal(t, "Annual plan", resp.Columns[0].Deals[0].Title)
	require.NotNil(t, resp.Columns[0].Deals[0].Contact)
	assert.Equal(t, "Maria Oliveira", resp.Columns[0].Deals[0].Contact.Name)
	assert.Equal(t, 1, resp.Metrics.TotalDeals)
}

func TestBoardEndpointSearchFiltersColumns(t *testing.T) {
	f := newBoardRouter(t)

	w := f.do(t, http.MethodGet, "/pipelines/"+f.pipeline.ID+"/board?search=nomatch", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Columns []struct {
			Deals []json.RawMessage `json:"deals"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	for _, col := range resp.Columns {
		assert.Empty(t, col.Deals)
	}
}

func TestBoardUnknownPipeline(t *testing.T) {
	f := newBoardRouter(t)

	w := f.do(t, http.MethodGet, "/pipelines/missing/board", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDragRoundTrip(t *testing.T) {
	f := newBoardRouter(t)

	w := f.do(t, http.MethodPost, "/board/drag/start", gin.H{"dealId": f.deal.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/board/drag/drop", gin.H{"stageId": f.pipeline.Stages[1].ID})
	require.Equal(t, http.StatusOK, w.Code)

	moved, err := f.store.GetDeal(f.deal.ID)
	require.NoError(t, err)
	assert.Equal(t, f.pipeline.Stages[1].ID, moved.StageID)
}

func TestDropWithoutDragConflicts(t *testing.T) {
	f := newBoardRouter(t)

	w := f.do(t, http.MethodPost, "/board/drag/drop", gin.H{"stageId": f.pipeline.Stages[1].ID})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDragCancelEndpoint(t *testing.T) {
	f := newBoardRouter(t)

	w := f.do(t, http.MethodPost, "/board/drag/start", gin.H{"dealId": f.deal.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/board/drag/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cancelled": true}`, w.Body.String())

	unchanged, err := f.store.GetDeal(f.deal.ID)
	require.NoError(t, err)
	assert.Equal(t, f.deal.StageID, unchanged.StageID)
}

func TestSelectionEndpoints(t *testing.T) {
	f := newBoardRouter(t)

	w := f.do(t, http.MethodGet, "/board/selection", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selection": null}`, w.Body.String())

	w = f.do(t, http.MethodPut, "/board/selection", gin.H{"kind": "deal", "entityId": f.deal.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/board/selection", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Selection *struct {
			Kind string `json:"kind"`
			Deal *struct {
				ID string `json:"id"`
			} `json:"deal"`
		} `json:"selection"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Selection)
	assert.Equal(t, "deal", resp.Selection.Kind)
	require.NotNil(t, resp.Selection.Deal)
	assert.Equal(t, f.deal.ID, resp.Selection.Deal.ID)

	w = f.do(t, http.MethodDelete, "/board/selection", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/board/selection", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selection": null}`, w.Body.String())
}

func TestSelectUnknownEntityReturnsNotFound(t *testing.T) {
	f := newBoardRouter(t)

	w := f.do(t, http.MethodPut, "/board/selection", gin.H{"kind": "deal", "entityId": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
