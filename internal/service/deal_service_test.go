package service

import (
	"testing"

	"github.com/meusuper/crm-backend/internal/store"
	"github.com/meusuper/crm-backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDealFixture(t *testing.T) (*store.Store, store.Pipeline, store.Contact, store.User, DealService) {
	t.Helper()
	st, pipeline, contact := newBoardFixture(t)

	user := store.User{Email: "ana@example.com", Name: "Ana Souza"}
	require.NoError(t, st.CreateUser(&user))

	return st, pipeline, contact, user, NewDealService(st, nil, nil)
}

func TestDealCreateDefaults(t *testing.T) {
	_, pipeline, contact, user, svc := newDealFixture(t)

	deal, err := svc.Create(&CreateDealRequest{
		Title:      "Annual plan",
		ContactID:  contact.ID,
		PipelineID: pipeline.ID,
		Value:      decimal.NewFromInt(1000),
	}, user.ID)
	require.NoError(t, err)

	// Lands in the first stage, seeded with its probability, assigned to
	// the actor, flagged as a manual entry.
	assert.Equal(t, pipeline.Stages[0].ID, deal.StageID)
	assert.Equal(t, pipeline.Stages[0].Probability, deal.Probability)
	assert.Equal(t, user.Name, deal.AssignedTo)
	assert.Equal(t, types.SourceManual, deal.Source)
}

func TestDealCreateExplicitStageAndProbability(t *testing.T) {
	_, pipeline, contact, user, svc := newDealFixture(t)

	probability := 80
	deal, err := svc.Create(&CreateDealRequest{
		Title:       "Annual plan",
		ContactID:   contact.ID,
		PipelineID:  pipeline.ID,
		StageID:     pipeline.Stages[1].ID,
		Probability: &probability,
	}, user.ID)
	require.NoError(t, err)

	assert.Equal(t, pipeline.Stages[1].ID, deal.StageID)
	assert.Equal(t, 80, deal.Probability)
}

func TestDealCreateRejectsMissingTitle(t *testing.T) {
	_, pipeline, _, user, svc := newDealFixture(t)

	_, err := svc.Create(&CreateDealRequest{PipelineID: pipeline.ID}, user.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDealCreateRejectsForeignStage(t *testing.T) {
	st, pipeline, contact, user, svc := newDealFixture(t)

	other := store.Pipeline{Name: "Other", Stages: []store.Stage{{Name: "New"}}}
	require.NoError(t, st.CreatePipeline(&other))

	_, err := svc.Create(&CreateDealRequest{
		Title:      "Annual plan",
		ContactID:  contact.ID,
		PipelineID: pipeline.ID,
		StageID:    other.Stages[0].ID,
	}, user.ID)
	assert.ErrorIs(t, err, store.ErrInvalidStage)
}

func TestDealUpdatePatchesOnlyGivenFields(t *testing.T) {
	_, pipeline, contact, user, svc := newDealFixture(t)

	deal, err := svc.Create(&CreateDealRequest{
		Title:      "Annual plan",
		ContactID:  contact.ID,
		PipelineID: pipeline.ID,
		Value:      decimal.NewFromInt(1000),
		Notes:      "original notes",
	}, user.ID)
	require.NoError(t, err)

	title := "Annual plan v2"
	updated, err := svc.Update(deal.ID, &UpdateDealRequest{Title: &title}, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Annual plan v2", updated.Title)
	assert.Equal(t, "original notes", updated.Notes)
	assert.True(t, updated.Value.Equal(deal.Value))
	assert.Equal(t, deal.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(deal.UpdatedAt))
}

func TestDealMoveStage(t *testing.T) {
	_, pipeline, contact, user, svc := newDealFixture(t)

	deal, err := svc.Create(&CreateDealRequest{
		Title:      "Annual plan",
		ContactID:  contact.ID,
		PipelineID: pipeline.ID,
	}, user.ID)
	require.NoError(t, err)

	moved, err := svc.MoveStage(deal.ID, pipeline.Stages[2].ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Stages[2].ID, moved.StageID)

	// Moving a deal does not rewrite its probability.
	assert.Equal(t, deal.Probability, moved.Probability)
}
