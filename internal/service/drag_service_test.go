package service

import (
	"testing"

	"github.com/meusuper/crm-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDragFixture(t *testing.T) (*store.Store, store.Pipeline, DragController) {
	t.Helper()
	st, pipeline, _ := newBoardFixture(t)
	dealSvc := NewDealService(st, nil, nil)
	return st, pipeline, NewDragController(st, dealSvc)
}

func TestDragStartAndDrop(t *testing.T) {
	st, pipeline, drag := newDragFixture(t)
	contact := firstContact(t, st)
	deal := addDeal(t, st, pipeline, contact, "Annual plan", 0, 1000, 10)

	picked, err := drag.Start("user-1", deal.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.ID, picked.ID)

	inFlight, ok := drag.InFlight("user-1")
	require.True(t, ok)
	assert.Equal(t, deal.ID, inFlight.ID)

	dropped, err := drag.Drop("user-1", pipeline.Stages[1].ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Stages[1].ID, dropped.StageID)

	// The drag session ended with the drop.
	_, ok = drag.InFlight("user-1")
	assert.False(t, ok)
}

func TestDragDropWhileIdle(t *testing.T) {
	_, pipeline, drag := newDragFixture(t)

	_, err := drag.Drop("user-1", pipeline.Stages[1].ID)
	assert.ErrorIs(t, err, ErrNoActiveDrag)
}

func TestDragStartUnknownDeal(t *testing.T) {
	_, _, drag := newDragFixture(t)

	_, err := drag.Start("user-1", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, ok := drag.InFlight("user-1")
	assert.False(t, ok)
}

func TestDragCancelLeavesStoreUntouched(t *testing.T) {
	st, pipeline, drag := newDragFixture(t)
	contact := firstContact(t, st)
	deal := addDeal(t, st, pipeline, contact, "Annual plan", 0, 1000, 10)

	_, err := drag.Start("user-1", deal.ID)
	require.NoError(t, err)

	assert.True(t, drag.Cancel("user-1"))
	assert.False(t, drag.Cancel("user-1"), "second cancel finds nothing in flight")

	stored, err := st.GetDeal(deal.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.StageID, stored.StageID)
	assert.Equal(t, deal.UpdatedAt, stored.UpdatedAt)
}

func TestDragLastStartWins(t *testing.T) {
	st, pipeline, drag := newDragFixture(t)
	contact := firstContact(t, st)
	first := addDeal(t, st, pipeline, contact, "first", 0, 1000, 10)
	second := addDeal(t, st, pipeline, contact, "second", 0, 2000, 10)

	_, err := drag.Start("user-1", first.ID)
	require.NoError(t, err)
	_, err = drag.Start("user-1", second.ID)
	require.NoError(t, err)

	dropped, err := drag.Drop("user-1", pipeline.Stages[1].ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, dropped.ID)

	stored, err := st.GetDeal(first.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Stages[0].ID, stored.StageID, "first deal never moved")
}

func TestDragFailedDropClearsSession(t *testing.T) {
	st, pipeline, drag := newDragFixture(t)
	contact := firstContact(t, st)
	deal := addDeal(t, st, pipeline, contact, "Annual plan", 0, 1000, 10)

	other := store.Pipeline{Name: "Other", Stages: []store.Stage{{Name: "New"}}}
	require.NoError(t, st.CreatePipeline(&other))

	_, err := drag.Start("user-1", deal.ID)
	require.NoError(t, err)

	// Dropping on a foreign stage fails, but the user is back to idle; the
	// board never wedges on a bad drop.
	_, err = drag.Drop("user-1", other.Stages[0].ID)
	assert.ErrorIs(t, err, store.ErrInvalidStage)

	_, ok := drag.InFlight("user-1")
	assert.False(t, ok)

	stored, err := st.GetDeal(deal.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.StageID, stored.StageID)
}

func TestDragSessionsAreIndependentPerUser(t *testing.T) {
	st, pipeline, drag := newDragFixture(t)
	contact := firstContact(t, st)
	first := addDeal(t, st, pipeline, contact, "first", 0, 1000, 10)
	second := addDeal(t, st, pipeline, contact, "second", 0, 2000, 10)

	_, err := drag.Start("user-1", first.ID)
	require.NoError(t, err)
	_, err = drag.Start("user-2", second.ID)
	require.NoError(t, err)

	dropped, err := drag.Drop("user-1", pipeline.Stages[1].ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, dropped.ID)

	inFlight, ok := drag.InFlight("user-2")
	require.True(t, ok)
	assert.Equal(t, second.ID, inFlight.ID)
}

func firstContact(t *testing.T, st *store.Store) store.Contact {
	t.Helper()
	contacts := st.ListContacts()
	require.NotEmpty(t, contacts)
	return contacts[0]
}
