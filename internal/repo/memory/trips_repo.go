package memory

import (
	"context"
	"sync"

	"github.com/traveltrack/traveltrack/internal/domain/trip"
)

// TripsRepo is an in-memory store used in tests and local experiments.
type TripsRepo struct {
	mu    sync.RWMutex
	items map[string]trip.Trip
}

func NewTripsRepo() *TripsRepo {
	return &TripsRepo{
		items: make(map[string]trip.Trip),
	}
}

func (r *TripsRepo) Create(_ context.Context, t trip.Trip) error {
	r.mu.Lock()
	r.items[t.ID] = t
	r.mu.Unlock()

	return nil
}

func (r *TripsRepo) GetByID(_ context.Context, id string) (trip.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return trip.Trip{}, trip.ErrNotFound
	}

	return t, nil
}

func (r *TripsRepo) Save(_ context.Context, t trip.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[t.ID]; !ok {
		return trip.ErrNotFound
	}

	r.items[t.ID] = t

	return nil
}

func (r *TripsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return trip.ErrNotFound
	}

	delete(r.items, id)

	return nil
}
