package itinerary

import (
	"errors"
	"testing"
	"time"
)

func testItinerary(t *testing.T) *Itinerary {
	t.Helper()

	now := time.Now().UTC()
	it := NewFromCreateRequest(CreateItineraryRequest{
		Title: "Kyoto week",
	}, "11111111-1111-1111-1111-111111111111", now)

	return it
}

func addDay(t *testing.T, it *Itinerary, n int) Day {
	t.Helper()

	day, err := it.AddDay(AddDayRequest{
		DayNumber: n,
		Date:      time.Date(2027, 4, n, 0, 0, 0, 0, time.UTC),
	}.ToDay(), time.Now().UTC())
	if err != nil {
		t.Fatalf("AddDay(%d): %v", n, err)
	}
	return day
}

func addActivity(t *testing.T, it *Itinerary, dayID string, cost float64) Activity {
	t.Helper()

	start := time.Date(2027, 4, 1, 9, 0, 0, 0, time.UTC)
	a, err := it.AddActivity(dayID, AddActivityRequest{
		Title:     "Fushimi Inari",
		Type:      "sightseeing",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Cost:      cost,
	}.ToActivity(), time.Now().UTC())
	if err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	return a
}

func TestAddDayDuplicateNumber(t *testing.T) {
	it := testItinerary(t)
	addDay(t, it, 1)

	_, err := it.AddDay(AddDayRequest{DayNumber: 1, Date: time.Now()}.ToDay(), time.Now().UTC())
	if !errors.Is(err, ErrDuplicateDay) {
		t.Fatalf("expected ErrDuplicateDay, got %v", err)
	}
}

func TestDaysSortedByNumber(t *testing.T) {
	it := testItinerary(t)
	addDay(t, it, 3)
	addDay(t, it, 1)
	addDay(t, it, 2)

	for i, want := range []int{1, 2, 3} {
		if it.Days[i].DayNumber != want {
			t.Fatalf("day[%d].DayNumber = %d, want %d", i, it.Days[i].DayNumber, want)
		}
	}
	if it.TotalDuration != 3 {
		t.Fatalf("TotalDuration = %d, want 3", it.TotalDuration)
	}
}

func TestTotalCostAcrossDays(t *testing.T) {
	it := testItinerary(t)
	d1 := addDay(t, it, 1)
	d2 := addDay(t, it, 2)

	addActivity(t, it, d1.ID, 30)
	addActivity(t, it, d1.ID, 20)
	a := addActivity(t, it, d2.ID, 50)

	if it.TotalCost.Amount != 100 {
		t.Fatalf("TotalCost = %v, want 100", it.TotalCost.Amount)
	}

	if err := it.DeleteActivity(d2.ID, a.ID, time.Now().UTC()); err != nil {
		t.Fatalf("DeleteActivity: %v", err)
	}
	if it.TotalCost.Amount != 50 {
		t.Fatalf("TotalCost after delete = %v, want 50", it.TotalCost.Amount)
	}
}

func TestUpdateActivityCostRecalculates(t *testing.T) {
	it := testItinerary(t)
	d := addDay(t, it, 1)
	a := addActivity(t, it, d.ID, 40)

	cost := 75.0
	if err := it.UpdateActivity(d.ID, a.ID, UpdateActivityRequest{Cost: &cost}, time.Now().UTC()); err != nil {
		t.Fatalf("UpdateActivity: %v", err)
	}
	if it.TotalCost.Amount != 75 {
		t.Fatalf("TotalCost = %v, want 75", it.TotalCost.Amount)
	}
}

func TestActivityDurationFromTimes(t *testing.T) {
	it := testItinerary(t)
	d := addDay(t, it, 1)
	a := addActivity(t, it, d.ID, 0)

	if a.Duration != 120 {
		t.Fatalf("Duration = %d, want 120", a.Duration)
	}
}

func TestCompletionPercentage(t *testing.T) {
	it := testItinerary(t)

	if got := it.CompletionPercentage(); got != 0 {
		t.Fatalf("empty itinerary completion = %d, want 0", got)
	}

	d := addDay(t, it, 1)
	a1 := addActivity(t, it, d.ID, 0)
	addActivity(t, it, d.ID, 0)

	toggled, err := it.ToggleActivityCompletion(d.ID, a1.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("ToggleActivityCompletion: %v", err)
	}
	if !toggled.IsCompleted {
		t.Fatal("expected activity marked completed")
	}
	if got := it.CompletionPercentage(); got != 50 {
		t.Fatalf("completion = %d, want 50", got)
	}
}

func TestReorderActivities(t *testing.T) {
	it := testItinerary(t)
	d := addDay(t, it, 1)
	a1 := addActivity(t, it, d.ID, 0)
	a2 := addActivity(t, it, d.ID, 0)
	a3 := addActivity(t, it, d.ID, 0)

	if err := it.ReorderActivities(d.ID, []string{a3.ID, a1.ID, a2.ID}, time.Now().UTC()); err != nil {
		t.Fatalf("ReorderActivities: %v", err)
	}

	got := it.Days[0].Activities
	if got[0].ID != a3.ID || got[1].ID != a1.ID || got[2].ID != a2.ID {
		t.Fatal("activities not in requested order")
	}
	for i, a := range got {
		if a.Order != i {
			t.Fatalf("activity[%d].Order = %d, want %d", i, a.Order, i)
		}
	}
}

func TestReorderRejectsUnknownOrMissingIDs(t *testing.T) {
	it := testItinerary(t)
	d := addDay(t, it, 1)
	a1 := addActivity(t, it, d.ID, 0)
	addActivity(t, it, d.ID, 0)

	if err := it.ReorderActivities(d.ID, []string{a1.ID}, time.Now().UTC()); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("short id list: got %v, want ErrActivityNotFound", err)
	}
	if err := it.ReorderActivities(d.ID, []string{a1.ID, "bogus"}, time.Now().UTC()); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("unknown id: got %v, want ErrActivityNotFound", err)
	}
}

func TestActivityLookupErrors(t *testing.T) {
	it := testItinerary(t)
	d := addDay(t, it, 1)

	if _, err := it.AddActivity("missing", Activity{}, time.Now().UTC()); !errors.Is(err, ErrDayNotFound) {
		t.Fatalf("missing day: got %v, want ErrDayNotFound", err)
	}
	if err := it.DeleteActivity(d.ID, "missing", time.Now().UTC()); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("missing activity: got %v, want ErrActivityNotFound", err)
	}
}
