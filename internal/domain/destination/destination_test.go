package destination

import (
	"errors"
	"testing"
	"time"
)

func testDestination(t *testing.T) *Destination {
	t.Helper()

	return NewFromCreateRequest(CreateDestinationRequest{
		Name:    "Lisbon",
		Country: "Portugal",
	}, "owner-1", time.Now().UTC())
}

func TestQuickRatingRunningAverage(t *testing.T) {
	d := testDestination(t)
	now := time.Now().UTC()

	d.AddQuickRating(5, now)
	d.AddQuickRating(4, now)
	d.AddQuickRating(4, now)

	if d.Rating.Count != 3 {
		t.Fatalf("Count = %d, want 3", d.Rating.Count)
	}
	if d.Rating.Average != 4.3 {
		t.Fatalf("Average = %v, want 4.3", d.Rating.Average)
	}
}

func TestQuickRatingIndependentOfReviews(t *testing.T) {
	d := testDestination(t)
	now := time.Now().UTC()

	d.AddQuickRating(5, now)
	if _, err := d.AddReview("u1", "Ana", AddReviewRequest{Rating: 1, Comment: "meh"}, now); err != nil {
		t.Fatalf("AddReview: %v", err)
	}

	if d.Rating.Average != 5 || d.Rating.Count != 1 {
		t.Fatalf("quick rating changed by review: %+v", d.Rating)
	}
	if d.AverageReview != 1 {
		t.Fatalf("AverageReview = %v, want 1", d.AverageReview)
	}
}

func TestOneReviewPerUser(t *testing.T) {
	d := testDestination(t)
	now := time.Now().UTC()

	if _, err := d.AddReview("u1", "Ana", AddReviewRequest{Rating: 4, Comment: "good"}, now); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := d.AddReview("u1", "Ana", AddReviewRequest{Rating: 5, Comment: "again"}, now)
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("second review: got %v, want ErrAlreadyReviewed", err)
	}
}

func TestReviewAverageRecomputed(t *testing.T) {
	d := testDestination(t)
	now := time.Now().UTC()

	r1, _ := d.AddReview("u1", "Ana", AddReviewRequest{Rating: 2, Comment: "ok"}, now)
	d.AddReview("u2", "Ben", AddReviewRequest{Rating: 4, Comment: "nice"}, now)

	if d.AverageReview != 3 {
		t.Fatalf("AverageReview = %v, want 3", d.AverageReview)
	}

	five := 5
	if _, err := d.UpdateReview("u1", r1.ID, UpdateReviewRequest{Rating: &five}, now); err != nil {
		t.Fatalf("UpdateReview: %v", err)
	}
	if d.AverageReview != 4.5 {
		t.Fatalf("AverageReview after update = %v, want 4.5", d.AverageReview)
	}

	if err := d.DeleteReview("u2", d.Reviews[1].ID, now); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if d.AverageReview != 5 {
		t.Fatalf("AverageReview after delete = %v, want 5", d.AverageReview)
	}

	if err := d.DeleteReview("u1", r1.ID, now); err != nil {
		t.Fatalf("DeleteReview last: %v", err)
	}
	if d.AverageReview != 0 {
		t.Fatalf("AverageReview empty = %v, want 0", d.AverageReview)
	}
}

func TestReviewOwnershipCollapsesToNotFound(t *testing.T) {
	d := testDestination(t)
	now := time.Now().UTC()

	r, _ := d.AddReview("u1", "Ana", AddReviewRequest{Rating: 3, Comment: "fine"}, now)

	three := 3
	if _, err := d.UpdateReview("u2", r.ID, UpdateReviewRequest{Rating: &three}, now); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("foreign update: got %v, want ErrReviewNotFound", err)
	}
	if err := d.DeleteReview("u2", r.ID, now); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("foreign delete: got %v, want ErrReviewNotFound", err)
	}
}
