package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/domain/budget"
	"github.com/traveltrack/traveltrack/internal/domain/trip"
	"github.com/traveltrack/traveltrack/internal/http/handlers"
	"github.com/traveltrack/traveltrack/internal/http/middlewares"
	"github.com/traveltrack/traveltrack/internal/repo/memory"
)

type fakeBudgetsStore struct {
	getByIDFn func(ctx context.Context, id string) (budget.Budget, error)
	saveFn    func(ctx context.Context, b budget.Budget) error
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakeBudgetsStore) Create(ctx context.Context, b budget.Budget) error { return nil }

func (f *fakeBudgetsStore) GetByID(ctx context.Context, id string) (budget.Budget, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return budget.Budget{}, budget.ErrNotFound
}

func (f *fakeBudgetsStore) ListByTrip(ctx context.Context, tripID string) ([]budget.Budget, error) {
	return nil, nil
}

func (f *fakeBudgetsStore) Save(ctx context.Context, b budget.Budget) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, b)
	}
	return nil
}

func (f *fakeBudgetsStore) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeBudgetsStore) DeleteByTrip(ctx context.Context, tripID string) error { return nil }

type fakeTripGetter struct {
	getByIDFn func(ctx context.Context, id string) (trip.Trip, error)
}

func (f *fakeTripGetter) GetByID(ctx context.Context, id string) (trip.Trip, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return trip.Trip{}, trip.ErrNotFound
}

// setupRouterAs wires the handler behind a fake authenticated identity.
func setupRouterAs(userID, method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middlewares.SetIdentity(c, userID, userID+"@example.com", "user")
		c.Next()
	})
	r.Handle(method, path, h)
	return r
}

func TestBudgetAccessOrdering(t *testing.T) {
	const (
		ownerID        = "owner-1"
		collaboratorID = "collab-1"
		outsiderID     = "outsider-1"
	)

	sharedTrip := trip.Trip{
		ID:      "t-1",
		OwnerID: ownerID,
		Collaborators: []trip.Collaborator{
			{ID: "c-1", UserID: collaboratorID, Role: "Editor"},
		},
	}

	existing := budget.Budget{ID: "b-1", TripID: "t-1", Title: "Lodging"}

	tests := []struct {
		name           string
		asUser         string
		budgets        *fakeBudgetsStore
		trips          *fakeTripGetter
		wantStatusCode int
		wantBody       string
	}{
		{
			name:    "missing_budget_is_404_before_any_trip_lookup",
			asUser:  outsiderID,
			budgets: &fakeBudgetsStore{},
			trips: &fakeTripGetter{
				getByIDFn: func(ctx context.Context, id string) (trip.Trip, error) {
					panic("trip repo must not be consulted for a missing budget")
				},
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       "Budget not found",
		},
		{
			name:   "missing_trip_is_404_not_403",
			asUser: outsiderID,
			budgets: &fakeBudgetsStore{
				getByIDFn: func(ctx context.Context, id string) (budget.Budget, error) {
					return existing, nil
				},
			},
			trips:          &fakeTripGetter{},
			wantStatusCode: http.StatusNotFound,
			wantBody:       "Trip not found",
		},
		{
			name:   "outsider_is_403",
			asUser: outsiderID,
			budgets: &fakeBudgetsStore{
				getByIDFn: func(ctx context.Context, id string) (budget.Budget, error) {
					return existing, nil
				},
			},
			trips: &fakeTripGetter{
				getByIDFn: func(ctx context.Context, id string) (trip.Trip, error) {
					return sharedTrip, nil
				},
			},
			wantStatusCode: http.StatusForbidden,
			wantBody:       "Not authorized to access this trip",
		},
		{
			name:   "collaborator_can_read",
			asUser: collaboratorID,
			budgets: &fakeBudgetsStore{
				getByIDFn: func(ctx context.Context, id string) (budget.Budget, error) {
					return existing, nil
				},
			},
			trips: &fakeTripGetter{
				getByIDFn: func(ctx context.Context, id string) (trip.Trip, error) {
					return sharedTrip, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "owner_can_read",
			asUser: ownerID,
			budgets: &fakeBudgetsStore{
				getByIDFn: func(ctx context.Context, id string) (budget.Budget, error) {
					return existing, nil
				},
			},
			trips: &fakeTripGetter{
				getByIDFn: func(ctx context.Context, id string) (trip.Trip, error) {
					return sharedTrip, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewBudgetsHandler(tt.budgets, tt.trips)
			r := setupRouterAs(tt.asUser, http.MethodGet, "/budgets/:id", h.Get)

			req := httptest.NewRequest(http.MethodGet, "/budgets/b-1", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantBody != "" && !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Fatalf("body %s missing %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestBudgetDeleteIsCollaboratorWritable(t *testing.T) {
	sharedTrip := trip.Trip{
		ID:      "t-1",
		OwnerID: "owner-1",
		Collaborators: []trip.Collaborator{
			{ID: "c-1", UserID: "collab-1", Role: "Editor"},
		},
	}

	deleted := ""
	budgets := &fakeBudgetsStore{
		getByIDFn: func(ctx context.Context, id string) (budget.Budget, error) {
			return budget.Budget{ID: "b-1", TripID: "t-1"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	trips := memory.NewTripsRepo()
	if err := trips.Create(context.Background(), sharedTrip); err != nil {
		t.Fatalf("seed trip: %v", err)
	}

	h := handlers.NewBudgetsHandler(budgets, trips)
	r := setupRouterAs("collab-1", http.MethodDelete, "/budgets/:id", h.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/budgets/b-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if deleted != "b-1" {
		t.Fatalf("deleted = %q, want b-1", deleted)
	}
}
