// Package store owns the canonical in-memory collections for the CRM:
// contacts, pipelines with their stages, deals, activities, team users and
// notifications. State is session-scoped: it is seeded at boot and dies with
// the process. All mutation goes through Store methods under one mutex;
// readers get copies, never the backing structs.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidStage  = errors.New("stage does not belong to the deal's pipeline")
	ErrInvalidAmount = errors.New("value or probability out of range")
	ErrConflict      = errors.New("resource already exists")
)

// Store holds every collection. Insertion order is tracked per collection so
// listings are deterministic.
type Store struct {
	mu sync.RWMutex

	users     map[string]*User
	userOrder []string

	contacts     map[string]*Contact
	contactOrder []string

	pipelines     map[string]*Pipeline
	pipelineOrder []string

	deals     map[string]*Deal
	dealOrder []string

	activities    map[string]*Activity
	activityOrder []string

	notifications     map[string]*Notification
	notificationOrder []string

	refreshTokens map[string]*RefreshToken
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]*User),
		contacts:      make(map[string]*Contact),
		pipelines:     make(map[string]*Pipeline),
		deals:         make(map[string]*Deal),
		activities:    make(map[string]*Activity),
		notifications: make(map[string]*Notification),
		refreshTokens: make(map[string]*RefreshToken),
	}
}

func newID() string {
	return uuid.New().String()
}

// bumpUpdatedAt returns a timestamp strictly after prev even on coarse
// clocks, so UpdatedAt is usable as a change marker.
func bumpUpdatedAt(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneFields(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneTimePtr(in *time.Time) *time.Time {
	if in == nil {
		return nil
	}
	t := *in
	return &t
}

func cloneStringPtr(in *string) *string {
	if in == nil {
		return nil
	}
	s := *in
	return &s
}
