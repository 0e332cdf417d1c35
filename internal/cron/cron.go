package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/meusuper/crm-backend/internal/notification"
	"github.com/meusuper/crm-backend/internal/store"
	"github.com/meusuper/crm-backend/internal/types"
	"github.com/robfig/cron/v3"
)

// staleAfter is how long a deal may sit untouched in an open stage before
// its owner gets nudged.
const staleAfter = 30 * 24 * time.Hour

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	store    *store.Store
	notifSvc *notification.Service
}

// NewScheduler creates a new scheduler
func NewScheduler(st *store.Store, notifSvc *notification.Service) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		store:    st,
		notifSvc: notifSvc,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at 9 AM - Overdue deal check
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running overdue deal check...")
		s.checkOverdueDeals()
	})

	// Run every day at 9 AM - Stale deal check
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running stale deal check...")
		s.checkStaleDeals()
	})

	// Run every hour - Activities due today
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running activities due today check...")
		s.checkActivitiesDueToday()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

// checkOverdueDeals notifies owners of open deals past their expected close
// date.
func (s *Scheduler) checkOverdueDeals() {
	now := time.Now()
	count := 0

	for _, deal := range s.store.ListDeals("") {
		if deal.ExpectedCloseDate == nil || deal.ExpectedCloseDate.After(now) {
			continue
		}
		if s.isClosed(deal) {
			continue
		}

		s.notifSvc.NotifyByName(deal.AssignedTo, types.NotificationDealOverdue,
			"Deal overdue",
			fmt.Sprintf("%q passed its expected close date", deal.Title), &deal.ID)
		count++
	}

	if count > 0 {
		log.Printf("[Cron] Sent %d overdue deal reminders", count)
	}
}

// checkStaleDeals notifies owners of open deals untouched for staleAfter.
func (s *Scheduler) checkStaleDeals() {
	cutoff := time.Now().Add(-staleAfter)
	count := 0

	for _, deal := range s.store.ListDeals("") {
		if deal.UpdatedAt.After(cutoff) {
			continue
		}
		if s.isClosed(deal) {
			continue
		}

		s.notifSvc.NotifyByName(deal.AssignedTo, types.NotificationDealStale,
			"Deal going cold",
			fmt.Sprintf("%q has had no activity for %d days", deal.Title, int(staleAfter.Hours()/24)), &deal.ID)
		count++
	}

	if count > 0 {
		log.Printf("[Cron] Sent %d stale deal reminders", count)
	}
}

// checkActivitiesDueToday reminds assignees about open activities dated
// today.
func (s *Scheduler) checkActivitiesDueToday() {
	now := time.Now()
	today := now.Format("2006-01-02")
	count := 0

	completed := false
	for _, activity := range s.store.ListActivities(store.ActivityFilters{Completed: &completed}) {
		if activity.Date.Format("2006-01-02") != today {
			continue
		}

		s.notifSvc.NotifyByName(activity.AssignedTo, types.NotificationActivityDue,
			"Activity due today",
			activity.Title, &activity.ID)
		count++
	}

	if count > 0 {
		log.Printf("[Cron] Sent %d activity reminders", count)
	}
}

// isClosed reports whether the deal sits in a closed-won or closed-lost
// stage of its pipeline.
func (s *Scheduler) isClosed(deal store.Deal) bool {
	pipeline, err := s.store.GetPipeline(deal.PipelineID)
	if err != nil {
		return false
	}
	stage, ok := pipeline.StageByID(deal.StageID)
	if !ok {
		return false
	}
	return stage.IsClosedWon || stage.IsClosedLost
}
