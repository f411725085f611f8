package destination

import (
	"time"

	"github.com/google/uuid"
)

type CreateDestinationRequest struct {
	Name          string       `json:"name" binding:"required,min=1,max=120"`
	Country       string       `json:"country" binding:"required,min=1,max=80"`
	City          string       `json:"city" binding:"max=80"`
	Description   string       `json:"description" binding:"max=2000"`
	Coordinates   Coordinates  `json:"coordinates"`
	Categories    []string     `json:"categories" binding:"omitempty,dive,oneof=beach mountain city historical adventure cultural nature urban rural island"`
	BestVisitFrom string       `json:"bestVisitFrom" binding:"omitempty,oneof=January February March April May June July August September October November December"`
	BestVisitTo   string       `json:"bestVisitTo" binding:"omitempty,oneof=January February March April May June July August September October November December"`
	CostEstimate  CostEstimate `json:"costEstimate"`
	Tags          []string     `json:"tags" binding:"omitempty,dive,min=1,max=40"`
}

type UpdateDestinationRequest struct {
	Name          *string       `json:"name" binding:"omitempty,min=1,max=120"`
	Country       *string       `json:"country" binding:"omitempty,min=1,max=80"`
	City          *string       `json:"city" binding:"omitempty,max=80"`
	Description   *string       `json:"description" binding:"omitempty,max=2000"`
	Coordinates   *Coordinates  `json:"coordinates"`
	Categories    *[]string     `json:"categories" binding:"omitempty,dive,oneof=beach mountain city historical adventure cultural nature urban rural island"`
	BestVisitFrom *string       `json:"bestVisitFrom" binding:"omitempty,oneof=January February March April May June July August September October November December"`
	BestVisitTo   *string       `json:"bestVisitTo" binding:"omitempty,oneof=January February March April May June July August September October November December"`
	CostEstimate  *CostEstimate `json:"costEstimate"`
	Tags          *[]string     `json:"tags" binding:"omitempty,dive,min=1,max=40"`
	IsActive      *bool         `json:"isActive"`
}

type AddQuickRatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

type AddReviewRequest struct {
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Title     string    `json:"title" binding:"max=120"`
	Comment   string    `json:"comment" binding:"required,min=1,max=2000"`
	VisitDate time.Time `json:"visitDate"`
}

type UpdateReviewRequest struct {
	Rating    *int       `json:"rating" binding:"omitempty,min=1,max=5"`
	Title     *string    `json:"title" binding:"omitempty,max=120"`
	Comment   *string    `json:"comment" binding:"omitempty,min=1,max=2000"`
	VisitDate *time.Time `json:"visitDate"`
}

type ListFilter struct {
	Country   string
	City      string
	Category  string
	Search    string
	MinRating float64
	MaxBudget float64
	Sort      string
	Page      int
	Limit     int
}

func NewFromCreateRequest(req CreateDestinationRequest, createdBy string, now time.Time) *Destination {
	categories := req.Categories
	if categories == nil {
		categories = []string{}
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	cost := req.CostEstimate
	if cost.Currency == "" {
		cost.Currency = "USD"
	}

	return &Destination{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Country:       req.Country,
		City:          req.City,
		Description:   req.Description,
		Coordinates:   req.Coordinates,
		Images:        []Image{},
		Categories:    categories,
		BestVisitFrom: req.BestVisitFrom,
		BestVisitTo:   req.BestVisitTo,
		CostEstimate:  cost,
		Reviews:       []Review{},
		Tags:          tags,
		IsActive:      true,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (d *Destination) ApplyUpdate(req UpdateDestinationRequest, now time.Time) {
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Country != nil {
		d.Country = *req.Country
	}
	if req.City != nil {
		d.City = *req.City
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Coordinates != nil {
		d.Coordinates = *req.Coordinates
	}
	if req.Categories != nil {
		d.Categories = *req.Categories
	}
	if req.BestVisitFrom != nil {
		d.BestVisitFrom = *req.BestVisitFrom
	}
	if req.BestVisitTo != nil {
		d.BestVisitTo = *req.BestVisitTo
	}
	if req.CostEstimate != nil {
		d.CostEstimate = *req.CostEstimate
	}
	if req.Tags != nil {
		d.Tags = *req.Tags
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	d.UpdatedAt = now
}
