package destination

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("destination not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("you have already reviewed this destination")
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Image struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type CostEstimate struct {
	Budget   float64 `json:"budget"`
	MidRange float64 `json:"midRange"`
	Luxury   float64 `json:"luxury"`
	Currency string  `json:"currency"`
}

// Rating is the quick-rating aggregate. It is independent of reviews:
// submitting a quick rating never touches reviews and vice versa.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Comment   string    `json:"comment"`
	VisitDate time.Time `json:"visitDate,omitempty"`
	HelpfulBy []string  `json:"helpfulBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HelpfulCount is derived; the stored list is who voted, so a second toggle
// from the same user retracts the vote.
func (r Review) HelpfulCount() int {
	return len(r.HelpfulBy)
}

type Destination struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Country       string       `json:"country"`
	City          string       `json:"city,omitempty"`
	Description   string       `json:"description,omitempty"`
	Coordinates   Coordinates  `json:"coordinates"`
	Images        []Image      `json:"images"`
	Categories    []string     `json:"categories"`
	BestVisitFrom string       `json:"bestVisitFrom,omitempty"`
	BestVisitTo   string       `json:"bestVisitTo,omitempty"`
	CostEstimate  CostEstimate `json:"costEstimate"`
	Rating        Rating       `json:"rating"`
	Reviews       []Review     `json:"reviews"`
	AverageReview float64      `json:"averageReview"`
	Tags          []string     `json:"tags"`
	VisitCount    int          `json:"visitCount"`
	IsActive      bool         `json:"isActive"`
	CreatedBy     string       `json:"createdBy"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// AddQuickRating folds one anonymous star rating into the running average.
func (d *Destination) AddQuickRating(stars int, now time.Time) {
	total := d.Rating.Average*float64(d.Rating.Count) + float64(stars)
	d.Rating.Count++
	d.Rating.Average = round1(total / float64(d.Rating.Count))
	d.UpdatedAt = now
}

func (d *Destination) recalcReviewAverage() {
	if len(d.Reviews) == 0 {
		d.AverageReview = 0
		return
	}

	sum := 0
	for _, r := range d.Reviews {
		sum += r.Rating
	}
	d.AverageReview = round1(float64(sum) / float64(len(d.Reviews)))
}

func (d *Destination) findReviewByUser(userID string) int {
	for i := range d.Reviews {
		if d.Reviews[i].UserID == userID {
			return i
		}
	}
	return -1
}

// AddReview records a review for the user. One review per user; a second
// attempt is a conflict.
func (d *Destination) AddReview(userID, userName string, req AddReviewRequest, now time.Time) (Review, error) {
	if d.findReviewByUser(userID) != -1 {
		return Review{}, ErrAlreadyReviewed
	}

	review := Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		VisitDate: req.VisitDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	d.Reviews = append(d.Reviews, review)
	d.recalcReviewAverage()
	d.UpdatedAt = now

	return review, nil
}

// UpdateReview edits the caller's own review. A review belonging to someone
// else is indistinguishable from a missing one.
func (d *Destination) UpdateReview(userID, reviewID string, req UpdateReviewRequest, now time.Time) (Review, error) {
	for i := range d.Reviews {
		if d.Reviews[i].ID != reviewID || d.Reviews[i].UserID != userID {
			continue
		}

		r := &d.Reviews[i]
		if req.Rating != nil {
			r.Rating = *req.Rating
		}
		if req.Title != nil {
			r.Title = *req.Title
		}
		if req.Comment != nil {
			r.Comment = *req.Comment
		}
		if req.VisitDate != nil {
			r.VisitDate = *req.VisitDate
		}
		r.UpdatedAt = now

		d.recalcReviewAverage()
		d.UpdatedAt = now

		return *r, nil
	}

	return Review{}, ErrReviewNotFound
}

func (d *Destination) DeleteReview(userID, reviewID string, now time.Time) error {
	for i := range d.Reviews {
		if d.Reviews[i].ID != reviewID || d.Reviews[i].UserID != userID {
			continue
		}

		d.Reviews = append(d.Reviews[:i], d.Reviews[i+1:]...)
		d.recalcReviewAverage()
		d.UpdatedAt = now

		return nil
	}

	return ErrReviewNotFound
}

// ToggleReviewHelpful flips the caller's helpful vote on any user's review.
// Unlike edits, voting is not restricted to the review author.
func (d *Destination) ToggleReviewHelpful(userID, reviewID string, now time.Time) (Review, error) {
	for i := range d.Reviews {
		if d.Reviews[i].ID != reviewID {
			continue
		}

		r := &d.Reviews[i]
		for j, voter := range r.HelpfulBy {
			if voter == userID {
				r.HelpfulBy = append(r.HelpfulBy[:j], r.HelpfulBy[j+1:]...)
				r.UpdatedAt = now
				d.UpdatedAt = now
				return *r, nil
			}
		}

		r.HelpfulBy = append(r.HelpfulBy, userID)
		r.UpdatedAt = now
		d.UpdatedAt = now

		return *r, nil
	}

	return Review{}, ErrReviewNotFound
}
