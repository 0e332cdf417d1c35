package cron

import (
	"testing"
	"time"

	"github.com/meusuper/crm-backend/internal/notification"
	"github.com/meusuper/crm-backend/internal/store"
	"github.com/meusuper/crm-backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCronFixture(t *testing.T) (*Scheduler, *store.Store, store.User, store.Pipeline) {
	t.Helper()
	st := store.NewStore()

	user := store.User{Email: "ana@example.com", Name: "Ana Souza"}
	require.NoError(t, st.CreateUser(&user))

	pipeline := store.Pipeline{
		Name: "Sales",
		Stages: []store.Stage{
			{Name: "Lead", Probability: 10},
			{Name: "Won", Probability: 100, IsClosedWon: true},
		},
	}
	require.NoError(t, st.CreatePipeline(&pipeline))

	return NewScheduler(st, notification.NewService(st)), st, user, pipeline
}

func TestCheckOverdueDeals(t *testing.T) {
	s, st, user, pipeline := newCronFixture(t)

	yesterday := time.Now().AddDate(0, 0, -1)
	overdue := store.Deal{
		Title:             "Overdue deal",
		PipelineID:        pipeline.ID,
		StageID:           pipeline.Stages[0].ID,
		Value:             decimal.NewFromInt(1000),
		ExpectedCloseDate: &yesterday,
		AssignedTo:        user.Name,
	}
	require.NoError(t, st.CreateDeal(&overdue))

	onTime := store.Deal{
		Title:      "On-time deal",
		PipelineID: pipeline.ID,
		StageID:    pipeline.Stages[0].ID,
		AssignedTo: user.Name,
	}
	require.NoError(t, st.CreateDeal(&onTime))

	s.checkOverdueDeals()

	notifications := st.ListNotifications(user.ID, false)
	require.Len(t, notifications, 1)
	assert.Equal(t, types.NotificationDealOverdue, notifications[0].Type)
	assert.Equal(t, &overdue.ID, notifications[0].EntityID)
}

func TestCheckOverdueDealsSkipsClosed(t *testing.T) {
	s, st, user, pipeline := newCronFixture(t)

	yesterday := time.Now().AddDate(0, 0, -1)
	won := store.Deal{
		Title:             "Already won",
		PipelineID:        pipeline.ID,
		StageID:           pipeline.Stages[1].ID,
		ExpectedCloseDate: &yesterday,
		AssignedTo:        user.Name,
	}
	require.NoError(t, st.CreateDeal(&won))

	s.checkOverdueDeals()

	assert.Empty(t, st.ListNotifications(user.ID, false))
}

func TestCheckActivitiesDueToday(t *testing.T) {
	s, st, user, _ := newCronFixture(t)

	due := store.Activity{
		Type:       types.ActivityCall,
		Title:      "Follow-up call",
		Date:       time.Now(),
		AssignedTo: user.Name,
		CreatedBy:  user.Name,
	}
	require.NoError(t, st.CreateActivity(&due))

	later := store.Activity{
		Type:       types.ActivityMeeting,
		Title:      "Next week",
		Date:       time.Now().AddDate(0, 0, 7),
		AssignedTo: user.Name,
		CreatedBy:  user.Name,
	}
	require.NoError(t, st.CreateActivity(&later))

	done := store.Activity{
		Type:       types.ActivityCall,
		Title:      "Already handled",
		Date:       time.Now(),
		AssignedTo: user.Name,
		CreatedBy:  user.Name,
	}
	require.NoError(t, st.CreateActivity(&done))
	_, err := st.SetActivityCompleted(done.ID, true)
	require.NoError(t, err)

	s.checkActivitiesDueToday()

	notifications := st.ListNotifications(user.ID, false)
	require.Len(t, notifications, 1)
	assert.Equal(t, types.NotificationActivityDue, notifications[0].Type)
	assert.Equal(t, "Follow-up call", notifications[0].Message)
}
