package trip_test

import (
	"testing"
	"time"

	"github.com/traveltrack/traveltrack/internal/domain/trip"
)

func TestNewFromCreateRequestDateRules(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"valid range", start, start.Add(72 * time.Hour), nil},
		{"start equals end", start, start, trip.ErrDateOrder},
		{"start after end", start.Add(time.Hour), start, trip.ErrDateOrder},
		{"one millisecond apart", start, start.Add(time.Millisecond), nil},
		{"start in the past", now.Add(-time.Hour), now.Add(24 * time.Hour), trip.ErrStartInPast},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := trip.CreateTripRequest{
				Title:         "Summer in Lisbon",
				DestinationID: "d-1",
				StartDate:     tc.start,
				EndDate:       tc.end,
			}

			_, err := trip.NewFromCreateRequest(req, "u-1", now)

			if err != tc.wantErr {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDurationRoundsUp(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		span time.Duration
		want int
	}{
		{"exactly three days", 72 * time.Hour, 3},
		{"three and a half days", 84 * time.Hour, 4},
		{"one hour", time.Hour, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := trip.Trip{
				StartDate: now,
				EndDate:   now.Add(tc.span),
			}
			tr.RecomputeDuration()

			if tr.Duration != tc.want {
				t.Fatalf("duration = %d, want %d", tr.Duration, tc.want)
			}
		})
	}
}

func TestApplyUpdateAllowsPastStart(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tr := trip.Trip{
		StartDate: now.Add(24 * time.Hour),
		EndDate:   now.Add(96 * time.Hour),
	}
	tr.RecomputeDuration()

	past := now.Add(-48 * time.Hour)
	end := now.Add(24 * time.Hour)

	err := tr.ApplyUpdate(trip.UpdateTripRequest{StartDate: &past, EndDate: &end}, now)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.Duration != 3 {
		t.Fatalf("duration = %d, want 3", tr.Duration)
	}
}

func TestApplyUpdateRejectsInvertedDates(t *testing.T) {
	now := time.Now().UTC()
	tr := trip.Trip{
		StartDate: now,
		EndDate:   now.Add(48 * time.Hour),
	}

	bad := now.Add(-time.Hour)

	err := tr.ApplyUpdate(trip.UpdateTripRequest{EndDate: &bad}, now)

	if err != trip.ErrDateOrder {
		t.Fatalf("err = %v, want ErrDateOrder", err)
	}
}

func TestCollaboratorInvariants(t *testing.T) {
	now := time.Now().UTC()
	tr := trip.Trip{ID: "t-1", OwnerID: "owner"}

	if _, err := tr.AddCollaborator("owner", "Editor", now); err != trip.ErrOwnerCollaborator {
		t.Fatalf("adding owner: err = %v, want ErrOwnerCollaborator", err)
	}

	c, err := tr.AddCollaborator("friend", "", now)
	if err != nil {
		t.Fatalf("adding friend: %v", err)
	}

	if c.Role != "Viewer" {
		t.Fatalf("default role = %q, want Viewer", c.Role)
	}

	if _, err := tr.AddCollaborator("friend", "Admin", now); err != trip.ErrDuplicateCollaborator {
		t.Fatalf("duplicate: err = %v, want ErrDuplicateCollaborator", err)
	}

	if err := tr.RemoveCollaborator(c.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := tr.RemoveCollaborator(c.ID); err != trip.ErrCollaboratorNotFound {
		t.Fatalf("remove twice: err = %v, want ErrCollaboratorNotFound", err)
	}
}

func TestBudgetPercentageZeroGuard(t *testing.T) {
	tr := trip.Trip{}

	if got := tr.BudgetPercentage(); got != 0 {
		t.Fatalf("BudgetPercentage with zero total = %d, want 0", got)
	}

	tr.Budget.Total = 200
	tr.Budget.Spent = 50

	if got := tr.BudgetPercentage(); got != 25 {
		t.Fatalf("BudgetPercentage = %d, want 25", got)
	}
}

func TestProgress(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(10 * 24 * time.Hour)
	tr := trip.Trip{StartDate: start, EndDate: end, Status: trip.StatusActive}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before start", start.Add(-time.Hour), 0},
		{"halfway", start.Add(5 * 24 * time.Hour), 50},
		{"after end", end.Add(time.Hour), 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tr.Progress(tc.now); got != tc.want {
				t.Fatalf("Progress = %d, want %d", got, tc.want)
			}
		})
	}

	tr.Status = trip.StatusCancelled
	if got := tr.Progress(end.Add(time.Hour)); got != 0 {
		t.Fatalf("cancelled Progress = %d, want 0", got)
	}
}
