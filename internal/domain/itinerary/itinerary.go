package itinerary

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("itinerary not found")
	ErrDayNotFound      = errors.New("itinerary day not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrDuplicateDay     = errors.New("day number already exists in this itinerary")
)

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Location struct {
	Name        string      `json:"name"`
	Address     string      `json:"address,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

type BookingInfo struct {
	ConfirmationNumber string `json:"confirmationNumber,omitempty"`
	Provider           string `json:"provider,omitempty"`
	Contact            string `json:"contact,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

type Activity struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Type        string      `json:"type"`
	Location    Location    `json:"location"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     time.Time   `json:"endTime"`
	Duration    int         `json:"duration"` // minutes
	Cost        Money       `json:"cost"`
	BookingInfo BookingInfo `json:"bookingInfo"`
	Rating      float64     `json:"rating"`
	Notes       string      `json:"notes,omitempty"`
	IsCompleted bool        `json:"isCompleted"`
	Order       int         `json:"order"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type WeatherSnapshot struct {
	TempMin   float64 `json:"tempMin"`
	TempMax   float64 `json:"tempMax"`
	Condition string  `json:"condition,omitempty"`
	Icon      string  `json:"icon,omitempty"`
}

type Day struct {
	ID          string          `json:"id"`
	DayNumber   int             `json:"dayNumber"`
	Date        time.Time       `json:"date"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Activities  []Activity      `json:"activities"`
	Notes       string          `json:"notes,omitempty"`
	Weather     WeatherSnapshot `json:"weather"`
}

type Itinerary struct {
	ID            string    `json:"id"`
	TripID        string    `json:"tripId"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Days          []Day     `json:"days"`
	TotalCost     Money     `json:"totalCost"`
	TotalDuration int       `json:"totalDuration"` // days
	IsPublic      bool      `json:"isPublic"`
	Tags          []string  `json:"tags"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Recalculate recomputes totalCost from every activity across days and
// totalDuration from the day count. Runs before every persist.
func (it *Itinerary) Recalculate() {
	var total float64

	for _, day := range it.Days {
		for _, a := range day.Activities {
			total += a.Cost.Amount
		}
	}

	it.TotalCost.Amount = total
	it.TotalDuration = len(it.Days)
}

func (it *Itinerary) TotalActivities() int {
	n := 0
	for _, day := range it.Days {
		n += len(day.Activities)
	}
	return n
}

func (it *Itinerary) CompletedActivities() int {
	n := 0
	for _, day := range it.Days {
		for _, a := range day.Activities {
			if a.IsCompleted {
				n++
			}
		}
	}
	return n
}

func (it *Itinerary) CompletionPercentage() int {
	total := it.TotalActivities()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(it.CompletedActivities()) / float64(total) * 100))
}

// AddDay appends a day, keeping days sorted by dayNumber. A duplicate day
// number is a conflict.
func (it *Itinerary) AddDay(day Day, now time.Time) (Day, error) {
	for _, d := range it.Days {
		if d.DayNumber == day.DayNumber {
			return Day{}, ErrDuplicateDay
		}
	}

	if day.ID == "" {
		day.ID = uuid.NewString()
	}
	if day.Activities == nil {
		day.Activities = []Activity{}
	}

	it.Days = append(it.Days, day)
	sort.Slice(it.Days, func(i, j int) bool {
		return it.Days[i].DayNumber < it.Days[j].DayNumber
	})

	it.Recalculate()
	it.UpdatedAt = now

	return day, nil
}

func (it *Itinerary) findDay(dayID string) int {
	for i := range it.Days {
		if it.Days[i].ID == dayID {
			return i
		}
	}
	return -1
}

func (it *Itinerary) findActivity(dayID, activityID string) (int, int) {
	d := it.findDay(dayID)
	if d == -1 {
		return -1, -1
	}

	for i := range it.Days[d].Activities {
		if it.Days[d].Activities[i].ID == activityID {
			return d, i
		}
	}
	return d, -1
}

func (it *Itinerary) AddActivity(dayID string, a Activity, now time.Time) (Activity, error) {
	d := it.findDay(dayID)

	if d == -1 {
		return Activity{}, ErrDayNotFound
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Duration == 0 && a.EndTime.After(a.StartTime) {
		a.Duration = int(a.EndTime.Sub(a.StartTime).Minutes())
	}
	a.Order = len(it.Days[d].Activities)
	a.CreatedAt = now
	a.UpdatedAt = now

	it.Days[d].Activities = append(it.Days[d].Activities, a)
	it.Recalculate()
	it.UpdatedAt = now

	return a, nil
}

func (it *Itinerary) UpdateActivity(dayID, activityID string, patch UpdateActivityRequest, now time.Time) error {
	d, i := it.findActivity(dayID, activityID)

	if d == -1 {
		return ErrDayNotFound
	}
	if i == -1 {
		return ErrActivityNotFound
	}

	a := &it.Days[d].Activities[i]

	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Type != nil {
		a.Type = *patch.Type
	}
	if patch.Location != nil {
		a.Location = *patch.Location
	}
	if patch.StartTime != nil {
		a.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		a.EndTime = *patch.EndTime
	}
	if patch.Cost != nil {
		a.Cost.Amount = *patch.Cost
	}
	if patch.BookingInfo != nil {
		a.BookingInfo = *patch.BookingInfo
	}
	if patch.Rating != nil {
		a.Rating = *patch.Rating
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	if patch.StartTime != nil || patch.EndTime != nil {
		if a.EndTime.After(a.StartTime) {
			a.Duration = int(a.EndTime.Sub(a.StartTime).Minutes())
		}
	}
	a.UpdatedAt = now

	it.Recalculate()
	it.UpdatedAt = now

	return nil
}

func (it *Itinerary) DeleteActivity(dayID, activityID string, now time.Time) error {
	d, i := it.findActivity(dayID, activityID)

	if d == -1 {
		return ErrDayNotFound
	}
	if i == -1 {
		return ErrActivityNotFound
	}

	acts := it.Days[d].Activities
	it.Days[d].Activities = append(acts[:i], acts[i+1:]...)

	// keep order contiguous
	for j := range it.Days[d].Activities {
		it.Days[d].Activities[j].Order = j
	}

	it.Recalculate()
	it.UpdatedAt = now

	return nil
}

func (it *Itinerary) ToggleActivityCompletion(dayID, activityID string, now time.Time) (Activity, error) {
	d, i := it.findActivity(dayID, activityID)

	if d == -1 {
		return Activity{}, ErrDayNotFound
	}
	if i == -1 {
		return Activity{}, ErrActivityNotFound
	}

	a := &it.Days[d].Activities[i]
	a.IsCompleted = !a.IsCompleted
	a.UpdatedAt = now
	it.UpdatedAt = now

	return *a, nil
}

// ReorderActivities reorders the day's activities to match the given id
// sequence. Every current activity must appear exactly once.
func (it *Itinerary) ReorderActivities(dayID string, activityIDs []string, now time.Time) error {
	d := it.findDay(dayID)

	if d == -1 {
		return ErrDayNotFound
	}

	current := it.Days[d].Activities

	if len(activityIDs) != len(current) {
		return ErrActivityNotFound
	}

	byID := make(map[string]Activity, len(current))
	for _, a := range current {
		byID[a.ID] = a
	}

	reordered := make([]Activity, 0, len(current))
	for i, id := range activityIDs {
		a, ok := byID[id]
		if !ok {
			return ErrActivityNotFound
		}
		delete(byID, id)
		a.Order = i
		reordered = append(reordered, a)
	}

	it.Days[d].Activities = reordered
	it.UpdatedAt = now

	return nil
}
