package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/traveltrack/traveltrack/internal/domain/destination"
	"github.com/traveltrack/traveltrack/internal/http/handlers"
)

type fakeDestinationsStore struct {
	getByIDFn          func(ctx context.Context, id string) (destination.Destination, error)
	saveFn             func(ctx context.Context, d destination.Destination) error
	incrementedVisitID string
}

func (f *fakeDestinationsStore) Create(ctx context.Context, d destination.Destination) error {
	return nil
}

func (f *fakeDestinationsStore) GetByID(ctx context.Context, id string) (destination.Destination, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return destination.Destination{}, destination.ErrNotFound
}

func (f *fakeDestinationsStore) Save(ctx context.Context, d destination.Destination) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, d)
	}
	return nil
}

func (f *fakeDestinationsStore) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeDestinationsStore) List(ctx context.Context, filter destination.ListFilter) ([]destination.Destination, int, error) {
	return nil, 0, nil
}

func (f *fakeDestinationsStore) IncrementVisitCount(ctx context.Context, id string) error {
	f.incrementedVisitID = id
	return nil
}

func reviewedDestination(reviewerID string) destination.Destination {
	d := destination.Destination{ID: "d-1", Name: "Porto", Country: "Portugal"}
	d.AddReview(reviewerID, "Ana", destination.AddReviewRequest{
		Rating:  4,
		Comment: "Tiles everywhere",
	}, time.Now().UTC())
	return d
}

func TestAddReviewConflict(t *testing.T) {
	store := &fakeDestinationsStore{
		getByIDFn: func(ctx context.Context, id string) (destination.Destination, error) {
			return reviewedDestination("u-1"), nil
		},
	}

	h := handlers.NewDestinationsHandler(store, &fakeUsersStore{}, fakeImageStore{})
	r := setupRouterAs("u-1", http.MethodPost, "/destinations/:id/reviews", h.AddReview)

	w := doJSON(t, r, http.MethodPost, "/destinations/d-1/reviews", `{
		"rating": 5,
		"comment": "second attempt"
	}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "already reviewed") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestAddReviewPersists(t *testing.T) {
	var saved destination.Destination

	store := &fakeDestinationsStore{
		getByIDFn: func(ctx context.Context, id string) (destination.Destination, error) {
			return destination.Destination{ID: "d-1", Name: "Porto"}, nil
		},
		saveFn: func(ctx context.Context, d destination.Destination) error {
			saved = d
			return nil
		},
	}

	h := handlers.NewDestinationsHandler(store, &fakeUsersStore{}, fakeImageStore{})
	r := setupRouterAs("u-1", http.MethodPost, "/destinations/:id/reviews", h.AddReview)

	w := doJSON(t, r, http.MethodPost, "/destinations/d-1/reviews", `{
		"rating": 4,
		"comment": "Tiles everywhere"
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if len(saved.Reviews) != 1 {
		t.Fatalf("saved %d reviews, want 1", len(saved.Reviews))
	}
	if saved.AverageReview != 4 {
		t.Fatalf("average review = %v, want 4", saved.AverageReview)
	}
}

func TestToggleReviewHelpful(t *testing.T) {
	d := reviewedDestination("author-1")
	reviewID := d.Reviews[0].ID

	store := &fakeDestinationsStore{
		getByIDFn: func(ctx context.Context, id string) (destination.Destination, error) {
			copied := d
			copied.Reviews = append([]destination.Review(nil), d.Reviews...)
			return copied, nil
		},
	}

	h := handlers.NewDestinationsHandler(store, &fakeUsersStore{}, fakeImageStore{})
	r := setupRouterAs("voter-1", http.MethodPost, "/destinations/:id/reviews/:reviewId/helpful", h.ToggleReviewHelpful)

	w := doJSON(t, r, http.MethodPost, "/destinations/d-1/reviews/"+reviewID+"/helpful", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			ReviewID     string `json:"reviewId"`
			HelpfulCount int    `json:"helpfulCount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ReviewID != reviewID {
		t.Fatalf("reviewId = %q, want %q", resp.Data.ReviewID, reviewID)
	}
	if resp.Data.HelpfulCount != 1 {
		t.Fatalf("helpfulCount = %d, want 1", resp.Data.HelpfulCount)
	}
}

func TestToggleReviewHelpfulUnknownReview(t *testing.T) {
	store := &fakeDestinationsStore{
		getByIDFn: func(ctx context.Context, id string) (destination.Destination, error) {
			return reviewedDestination("author-1"), nil
		},
	}

	h := handlers.NewDestinationsHandler(store, &fakeUsersStore{}, fakeImageStore{})
	r := setupRouterAs("voter-1", http.MethodPost, "/destinations/:id/reviews/:reviewId/helpful", h.ToggleReviewHelpful)

	w := doJSON(t, r, http.MethodPost, "/destinations/d-1/reviews/missing/helpful", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
}

func TestGetDestinationCountsVisit(t *testing.T) {
	store := &fakeDestinationsStore{
		getByIDFn: func(ctx context.Context, id string) (destination.Destination, error) {
			return destination.Destination{ID: id, Name: "Porto", VisitCount: 7}, nil
		},
	}

	h := handlers.NewDestinationsHandler(store, &fakeUsersStore{}, fakeImageStore{})
	r := setupRouter(http.MethodGet, "/destinations/:id", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/destinations/d-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if store.incrementedVisitID != "d-1" {
		t.Fatalf("incremented = %q, want d-1", store.incrementedVisitID)
	}
	if !strings.Contains(w.Body.String(), `"visitCount":8`) {
		t.Fatalf("body missing bumped visit count: %s", w.Body.String())
	}
}

func TestListReviewsEnvelope(t *testing.T) {
	d := destination.Destination{ID: "d-1", Name: "Porto"}
	now := time.Now().UTC()
	d.AddReview("u-1", "Ana", destination.AddReviewRequest{Rating: 4, Comment: "tiles"}, now)
	d.AddReview("u-2", "Ben", destination.AddReviewRequest{Rating: 3, Comment: "hills"}, now)
	d.AddReview("u-3", "Carla", destination.AddReviewRequest{Rating: 5, Comment: "port wine"}, now)

	store := &fakeDestinationsStore{
		getByIDFn: func(ctx context.Context, id string) (destination.Destination, error) {
			return d, nil
		},
	}

	h := handlers.NewDestinationsHandler(store, &fakeUsersStore{}, fakeImageStore{})
	r := setupRouter(http.MethodGet, "/destinations/:id/reviews", h.ListReviews)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/destinations/d-1/reviews?page=1&limit=2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Count      int                  `json:"count"`
		Data       []destination.Review `json:"data"`
		Pagination struct {
			Total int `json:"total"`
			Next  *struct {
				Page  int `json:"page"`
				Limit int `json:"limit"`
			} `json:"next"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Count != 2 || len(resp.Data) != 2 {
		t.Fatalf("count = %d, data = %d items, want 2/2", resp.Count, len(resp.Data))
	}
	if resp.Pagination.Total != 3 {
		t.Fatalf("total = %d, want 3", resp.Pagination.Total)
	}
	if resp.Pagination.Next == nil || resp.Pagination.Next.Page != 2 || resp.Pagination.Next.Limit != 2 {
		t.Fatalf("next = %+v, want {page:2 limit:2}", resp.Pagination.Next)
	}
}
