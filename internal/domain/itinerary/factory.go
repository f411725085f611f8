package itinerary

import (
	"time"

	"github.com/google/uuid"
)

type CreateItineraryRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=120"`
	Description string   `json:"description" binding:"max=500"`
	IsPublic    bool     `json:"isPublic"`
	Tags        []string `json:"tags" binding:"omitempty,dive,min=1,max=40"`
}

type UpdateItineraryRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string   `json:"description" binding:"omitempty,max=500"`
	IsPublic    *bool     `json:"isPublic"`
	Tags        *[]string `json:"tags" binding:"omitempty,dive,min=1,max=40"`
}

type AddDayRequest struct {
	DayNumber   int       `json:"dayNumber" binding:"required,min=1"`
	Date        time.Time `json:"date" binding:"required"`
	Title       string    `json:"title" binding:"max=120"`
	Description string    `json:"description" binding:"max=500"`
	Notes       string    `json:"notes" binding:"max=1000"`
}

func (r AddDayRequest) ToDay() Day {
	return Day{
		ID:          uuid.NewString(),
		DayNumber:   r.DayNumber,
		Date:        r.Date,
		Title:       r.Title,
		Description: r.Description,
		Notes:       r.Notes,
		Activities:  []Activity{},
	}
}

type AddActivityRequest struct {
	Title       string      `json:"title" binding:"required,min=1,max=120"`
	Description string      `json:"description" binding:"max=500"`
	Type        string      `json:"type" binding:"required,oneof=sightseeing food transport accommodation entertainment shopping outdoor cultural relaxation other"`
	Location    Location    `json:"location"`
	StartTime   time.Time   `json:"startTime" binding:"required"`
	EndTime     time.Time   `json:"endTime" binding:"required,gtfield=StartTime"`
	Cost        float64     `json:"cost" binding:"min=0"`
	Currency    string      `json:"currency" binding:"omitempty,len=3"`
	BookingInfo BookingInfo `json:"bookingInfo"`
	Notes       string      `json:"notes" binding:"max=1000"`
}

func (r AddActivityRequest) ToActivity() Activity {
	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}

	return Activity{
		ID:          uuid.NewString(),
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Location:    r.Location,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Cost:        Money{Amount: r.Cost, Currency: currency},
		BookingInfo: r.BookingInfo,
		Notes:       r.Notes,
	}
}

type UpdateActivityRequest struct {
	Title       *string      `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string      `json:"description" binding:"omitempty,max=500"`
	Type        *string      `json:"type" binding:"omitempty,oneof=sightseeing food transport accommodation entertainment shopping outdoor cultural relaxation other"`
	Location    *Location    `json:"location"`
	StartTime   *time.Time   `json:"startTime"`
	EndTime     *time.Time   `json:"endTime"`
	Cost        *float64     `json:"cost" binding:"omitempty,min=0"`
	BookingInfo *BookingInfo `json:"bookingInfo"`
	Rating      *float64     `json:"rating" binding:"omitempty,min=0,max=5"`
	Notes       *string      `json:"notes" binding:"omitempty,max=1000"`
}

type ReorderActivitiesRequest struct {
	ActivityIDs []string `json:"activityIds" binding:"required,min=1,dive,uuid"`
}

func NewFromCreateRequest(req CreateItineraryRequest, tripID string, now time.Time) *Itinerary {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Itinerary{
		ID:          uuid.NewString(),
		TripID:      tripID,
		Title:       req.Title,
		Description: req.Description,
		Days:        []Day{},
		TotalCost:   Money{Amount: 0, Currency: "USD"},
		IsPublic:    req.IsPublic,
		Tags:        tags,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (it *Itinerary) ApplyUpdate(req UpdateItineraryRequest, now time.Time) {
	if req.Title != nil {
		it.Title = *req.Title
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.IsPublic != nil {
		it.IsPublic = *req.IsPublic
	}
	if req.Tags != nil {
		it.Tags = *req.Tags
	}

	it.Version++
	it.UpdatedAt = now
}
