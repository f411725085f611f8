package trip

import (
	"time"

	"github.com/google/uuid"
)

type BudgetInput struct {
	Total    float64 `json:"total" binding:"omitempty,min=0"`
	Currency string  `json:"currency" binding:"omitempty,len=3"`
}

type CreateTripRequest struct {
	Title         string       `json:"title" binding:"required,min=3,max=100"`
	Description   string       `json:"description" binding:"omitempty,max=1000"`
	DestinationID string       `json:"destinationId" binding:"required,uuid"`
	StartDate     time.Time    `json:"startDate" binding:"required"`
	EndDate       time.Time    `json:"endDate" binding:"required"`
	Type          Type         `json:"type" binding:"omitempty,oneof=Solo Couple Family Group Business"`
	Budget        *BudgetInput `json:"budget"`
	Tags          []string     `json:"tags" binding:"omitempty,max=20,dive,max=40"`
}

// partial update; nil means leave alone
type UpdateTripRequest struct {
	Title         *string      `json:"title" binding:"omitempty,min=3,max=100"`
	Description   *string      `json:"description" binding:"omitempty,max=1000"`
	DestinationID *string      `json:"destinationId" binding:"omitempty,uuid"`
	StartDate     *time.Time   `json:"startDate"`
	EndDate       *time.Time   `json:"endDate"`
	Status        *Status      `json:"status" binding:"omitempty,oneof=Planning Active Completed Cancelled"`
	Type          *Type        `json:"type" binding:"omitempty,oneof=Solo Couple Family Group Business"`
	Budget        *BudgetInput `json:"budget"`
	IsPublic      *bool        `json:"isPublic"`
	Tags          []string     `json:"tags" binding:"omitempty,max=20,dive,max=40"`
	Notes         *string      `json:"notes" binding:"omitempty,max=2000"`
}

type AddCollaboratorRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=Viewer Editor Admin"`
}

// NewFromCreateRequest validates the creation-only date rules (start before
// end, start not in the past) and builds the trip with its derived duration.
func NewFromCreateRequest(req CreateTripRequest, ownerID string, now time.Time) (Trip, error) {
	if !req.StartDate.Before(req.EndDate) {
		return Trip{}, ErrDateOrder
	}

	if req.StartDate.Before(now) {
		return Trip{}, ErrStartInPast
	}

	tripType := req.Type
	if tripType == "" {
		tripType = TypeSolo
	}

	budget := Money{Currency: "USD"}
	if req.Budget != nil {
		budget.Total = req.Budget.Total
		if req.Budget.Currency != "" {
			budget.Currency = req.Budget.Currency
		}
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	t := Trip{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		OwnerID:       ownerID,
		DestinationID: req.DestinationID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        StatusPlanning,
		Type:          tripType,
		Budget:        budget,
		Collaborators: []Collaborator{},
		Tags:          tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	t.RecomputeDuration()

	return t, nil
}

// ApplyUpdate merges a partial update. Date order is re-checked but, unlike
// creation, a past start date is allowed on edits.
func (t *Trip) ApplyUpdate(req UpdateTripRequest, now time.Time) error {
	start := t.StartDate
	end := t.EndDate

	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}

	if !start.Before(end) {
		return ErrDateOrder
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DestinationID != nil {
		t.DestinationID = *req.DestinationID
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Budget != nil {
		t.Budget.Total = req.Budget.Total
		if req.Budget.Currency != "" {
			t.Budget.Currency = req.Budget.Currency
		}
	}
	if req.IsPublic != nil {
		t.IsPublic = *req.IsPublic
	}
	if req.Tags != nil {
		t.Tags = req.Tags
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}

	t.StartDate = start
	t.EndDate = end
	t.RecomputeDuration()
	t.UpdatedAt = now

	return nil
}

// with pointers if optional, it will be nil
type ListTripsFilter struct {
	OwnerID string
	Status  *Status
	Type    *Type
	Search  *string
	Sort    string
	Order   string
	Limit   int
	Offset  int
}
