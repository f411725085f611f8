package trip

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/traveltrack/traveltrack/internal/access"
)

var (
	ErrNotFound              = errors.New("trip not found")
	ErrDateOrder             = errors.New("end date must be after start date")
	ErrStartInPast           = errors.New("start date cannot be in the past")
	ErrDuplicateCollaborator = errors.New("user is already a collaborator on this trip")
	ErrOwnerCollaborator     = errors.New("trip owner cannot be added as a collaborator")
	ErrCollaboratorNotFound  = errors.New("collaborator not found")
)

type Status string

const (
	StatusPlanning  Status = "Planning"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

type Type string

const (
	TypeSolo     Type = "Solo"
	TypeCouple   Type = "Couple"
	TypeFamily   Type = "Family"
	TypeGroup    Type = "Group"
	TypeBusiness Type = "Business"
)

type Image struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

type Money struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	Spent    float64 `json:"spent"`
}

type Collaborator struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Role       string     `json:"role"`
	InvitedAt  time.Time  `json:"invitedAt"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
}

type Meta struct {
	Views  int `json:"views"`
	Likes  int `json:"likes"`
	Shares int `json:"shares"`
}

type Trip struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	OwnerID       string         `json:"userId"`
	DestinationID string         `json:"destinationId"`
	StartDate     time.Time      `json:"startDate"`
	EndDate       time.Time      `json:"endDate"`
	Duration      int            `json:"duration"`
	Status        Status         `json:"status"`
	Type          Type           `json:"type"`
	Budget        Money          `json:"budget"`
	CoverImage    Image          `json:"coverImage"`
	IsPublic      bool           `json:"isPublic"`
	Collaborators []Collaborator `json:"collaborators"`
	Tags          []string       `json:"tags"`
	Notes         string         `json:"notes,omitempty"`
	Meta          Meta           `json:"meta"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// RecomputeDuration must run whenever either date changes, before persisting.
// Whole days, rounded up.
func (t *Trip) RecomputeDuration() {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return
	}

	diff := t.EndDate.Sub(t.StartDate)
	t.Duration = int(math.Ceil(diff.Hours() / 24))
}

// AccessList converts the stored collaborator entries into the guard's shape.
func (t *Trip) AccessList() []access.Collaborator {
	out := make([]access.Collaborator, 0, len(t.Collaborators))

	for _, c := range t.Collaborators {
		out = append(out, access.Collaborator{UserID: c.UserID, Role: c.Role})
	}

	return out
}

// Progress is a computed view, not persisted.
func (t *Trip) Progress(now time.Time) int {
	if t.Status == StatusCompleted {
		return 100
	}
	if t.Status == StatusCancelled {
		return 0
	}

	if now.Before(t.StartDate) {
		return 0
	}
	if now.After(t.EndDate) {
		return 100
	}

	total := t.EndDate.Sub(t.StartDate)
	if total <= 0 {
		return 0
	}
	elapsed := now.Sub(t.StartDate)

	return int(math.Round(float64(elapsed) / float64(total) * 100))
}

func (t *Trip) BudgetRemaining() float64 {
	return t.Budget.Total - t.Budget.Spent
}

func (t *Trip) BudgetPercentage() int {
	if t.Budget.Total == 0 {
		return 0
	}
	return int(math.Round(t.Budget.Spent / t.Budget.Total * 100))
}

// AddCollaborator enforces the disjointness invariant: the owner never
// appears in the collaborator list, and a user appears at most once.
func (t *Trip) AddCollaborator(userID, role string, now time.Time) (Collaborator, error) {
	if userID == t.OwnerID {
		return Collaborator{}, ErrOwnerCollaborator
	}

	for _, c := range t.Collaborators {
		if c.UserID == userID {
			return Collaborator{}, ErrDuplicateCollaborator
		}
	}

	if role == "" {
		role = "Viewer"
	}

	c := Collaborator{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		InvitedAt: now,
	}
	t.Collaborators = append(t.Collaborators, c)

	return c, nil
}

func (t *Trip) RemoveCollaborator(collaboratorID string) error {
	for i, c := range t.Collaborators {
		if c.ID == collaboratorID {
			t.Collaborators = append(t.Collaborators[:i], t.Collaborators[i+1:]...)
			return nil
		}
	}

	return ErrCollaboratorNotFound
}

// OwnerStats is the dashboard rollup over every trip a user owns or
// collaborates on.
type OwnerStats struct {
	Total       int            `json:"total"`
	ByStatus    map[Status]int `json:"byStatus"`
	ByType      map[Type]int   `json:"byType"`
	TotalBudget float64        `json:"totalBudget"`
	TotalSpent  float64        `json:"totalSpent"`
}
