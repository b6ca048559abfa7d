// Package fetch coordinates one user-initiated fetch: cache lookup, model
// request, normalization and persistence.
package fetch

import (
	"context"
	"fmt"
	"time"

	"gameday/internal/core"
	"gameday/internal/logger"
)

// Generator is the slice of the llm client this service needs. Tests inject
// a fake; production wires *llm.Client.
type Generator interface {
	FetchSchedule(ctx context.Context, date string, prefs core.Preferences) ([]core.SportEvent, error)
	FetchRecap(ctx context.Context, date string, prefs core.Preferences) (core.DailyRecap, error)
}

// ScheduleStore is the persistence slice used for day caching.
type ScheduleStore interface {
	GetSchedule(date string) (*core.CachedDay, error)
	SaveSchedule(date string, events []core.SportEvent, fetchedAt int64) error
}

// Service orchestrates schedule and recap fetches.
type Service struct {
	store     ScheduleStore
	generator Generator
	now       func() time.Time
}

// NewService creates a fetch service over a store and a generator.
func NewService(store ScheduleStore, generator Generator) *Service {
	return &Service{
		store:     store,
		generator: generator,
		now:       time.Now,
	}
}

// Schedule returns the day's events, serving the cached entry when one
// exists unless refresh forces a new request. A fresh fetch overwrites the
// cache entry for that date.
func (s *Service) Schedule(ctx context.Context, date string, prefs core.Preferences, refresh bool) (*core.CachedDay, error) {
	if !refresh {
		cached, err := s.store.GetSchedule(date)
		if err != nil {
			return nil, fmt.Errorf("failed to read schedule cache: %w", err)
		}
		if cached != nil {
			logger.Debug("serving schedule from cache")
			return cached, nil
		}
	}

	events, err := s.generator.FetchSchedule(ctx, date, prefs)
	if err != nil {
		return nil, err
	}

	day := &core.CachedDay{
		Date:      date,
		Events:    events,
		FetchedAt: s.now().UnixMilli(),
	}
	if err := s.store.SaveSchedule(date, events, day.FetchedAt); err != nil {
		// The fetch succeeded; a cache write failure should not cost the user
		// the data they asked for.
		logger.Error("failed to persist fetched schedule", err)
	}
	return day, nil
}

// Recap returns a freshly generated recap. Recaps are held only in the
// caller's memory and never persisted.
func (s *Service) Recap(ctx context.Context, date string, prefs core.Preferences) (core.DailyRecap, error) {
	return s.generator.FetchRecap(ctx, date, prefs)
}
