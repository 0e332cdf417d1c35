package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, Pipeline, Contact) {
	t.Helper()
	st := NewStore()

	contact := Contact{Name: "Maria Oliveira", Email: "maria@example.com"}
	require.NoError(t, st.CreateContact(&contact))

	pipeline := Pipeline{
		Name: "Sales",
		Stages: []Stage{
			{Name: "Lead", Probability: 10},
			{Name: "Proposal", Probability: 50},
			{Name: "Won", Probability: 100, IsClosedWon: true},
		},
	}
	require.NoError(t, st.CreatePipeline(&pipeline))

	return st, pipeline, contact
}

func newTestDeal(t *testing.T, st *Store, pipeline Pipeline, contact Contact, title string) Deal {
	t.Helper()
	deal := Deal{
		Title:      title,
		ContactID:  contact.ID,
		PipelineID: pipeline.ID,
		StageID:    pipeline.Stages[0].ID,
		Value:      decimal.NewFromInt(1000),
	}
	require.NoError(t, st.CreateDeal(&deal))
	return deal
}

func TestUpdateDealStage(t *testing.T) {
	st, pipeline, contact := newTestStore(t)
	deal := newTestDeal(t, st, pipeline, contact, "Annual plan")

	moved, err := st.UpdateDealStage(deal.ID, pipeline.Stages[1].ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Stages[1].ID, moved.StageID)

	stored, err := st.GetDeal(deal.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Stages[1].ID, stored.StageID)
}

func TestUpdateDealStageUnknownDeal(t *testing.T) {
	st, pipeline, _ := newTestStore(t)

	_, err := st.UpdateDealStage("missing", pipeline.Stages[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateDealStageForeignStage(t *testing.T) {
	st, pipeline, contact := newTestStore(t)
	deal := newTestDeal(t, st, pipeline, contact, "Annual plan")

	other := Pipeline{Name: "Other", Stages: []Stage{{Name: "New"}}}
	require.NoError(t, st.CreatePipeline(&other))

	_, err := st.UpdateDealStage(deal.ID, other.Stages[0].ID)
	assert.ErrorIs(t, err, ErrInvalidStage)

	// A rejected move leaves the deal exactly where it was.
	stored, err := st.GetDeal(deal.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.StageID, stored.StageID)
	assert.Equal(t, deal.UpdatedAt, stored.UpdatedAt)
}

func TestUpdateDealStageBumpsUpdatedAt(t *testing.T) {
	st, pipeline, contact := newTestStore(t)
	deal := newTestDeal(t, st, pipeline, contact, "Annual plan")

	prev := deal.UpdatedAt
	for _, stageID := range []string{pipeline.Stages[1].ID, pipeline.Stages[2].ID, pipeline.Stages[0].ID} {
		moved, err := st.UpdateDealStage(deal.ID, stageID)
		require.NoError(t, err)
		assert.True(t, moved.UpdatedAt.After(prev), "UpdatedAt must strictly increase on every move")
		prev = moved.UpdatedAt
	}
}

func TestCreateDealValidation(t *testing.T) {
	st, pipeline, contact := newTestStore(t)

	t.Run("negative value", func(t *testing.T) {
		deal := Deal{
			Title:      "Bad value",
			ContactID:  contact.ID,
			PipelineID: pipeline.ID,
			StageID:    pipeline.Stages[0].ID,
			Value:      decimal.NewFromInt(-1),
		}
		assert.ErrorIs(t, st.CreateDeal(&deal), ErrInvalidAmount)
	})

	t.Run("probability out of range", func(t *testing.T) {
		deal := Deal{
			Title:       "Bad probability",
			ContactID:   contact.ID,
			PipelineID:  pipeline.ID,
			StageID:     pipeline.Stages[0].ID,
			Probability: 101,
		}
		assert.ErrorIs(t, st.CreateDeal(&deal), ErrInvalidAmount)
	})

	t.Run("unknown pipeline", func(t *testing.T) {
		deal := Deal{Title: "Orphan", PipelineID: "missing", StageID: "missing"}
		assert.ErrorIs(t, st.CreateDeal(&deal), ErrNotFound)
	})
}

func TestListDealsInsertionOrder(t *testing.T) {
	st, pipeline, contact := newTestStore(t)

	first := newTestDeal(t, st, pipeline, contact, "first")
	second := newTestDeal(t, st, pipeline, contact, "second")
	third := newTestDeal(t, st, pipeline, contact, "third")

	deals := st.ListDeals(pipeline.ID)
	require.Len(t, deals, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID},
		[]string{deals[0].ID, deals[1].ID, deals[2].ID})

	// Updating a deal must not change its position.
	_, err := st.UpdateDealStage(first.ID, pipeline.Stages[1].ID)
	require.NoError(t, err)

	deals = st.ListDeals(pipeline.ID)
	assert.Equal(t, first.ID, deals[0].ID)
}

func TestStoreHandsOutCopies(t *testing.T) {
	st, pipeline, contact := newTestStore(t)
	deal := newTestDeal(t, st, pipeline, contact, "Annual plan")

	got, err := st.GetDeal(deal.ID)
	require.NoError(t, err)
	got.Title = "mutated"
	got.Tags = append(got.Tags, "sneaky")

	fresh, err := st.GetDeal(deal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Annual plan", fresh.Title)
	assert.Empty(t, fresh.Tags)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st := NewStore()

	require.NoError(t, st.CreateUser(&User{Email: "ana@example.com", Name: "Ana"}))
	err := st.CreateUser(&User{Email: "ana@example.com", Name: "Other Ana"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestNotificationsNewestFirst(t *testing.T) {
	st := NewStore()

	user := User{Email: "ana@example.com", Name: "Ana"}
	require.NoError(t, st.CreateUser(&user))

	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, st.CreateNotification(&Notification{UserID: user.ID, Title: title}))
	}

	list := st.ListNotifications(user.ID, false)
	require.Len(t, list, 3)
	assert.Equal(t, "three", list[0].Title)
	assert.Equal(t, "one", list[2].Title)

	require.NoError(t, st.MarkNotificationRead(list[0].ID, user.ID))
	assert.Equal(t, 2, st.CountUnread(user.ID))

	st.MarkAllNotificationsRead(user.ID)
	assert.Equal(t, 0, st.CountUnread(user.ID))
}

func TestRefreshTokenLifecycle(t *testing.T) {
	st := NewStore()

	rt := RefreshToken{Token: "tok", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	st.SaveRefreshToken(&rt)

	found, err := st.FindRefreshToken("tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.UserID)

	st.DeleteRefreshToken("tok")
	_, err = st.FindRefreshToken("tok")
	assert.ErrorIs(t, err, ErrNotFound)
}
