package packinglist

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("packing list not found")
	ErrItemNotFound    = errors.New("packing item not found")
	ErrUnknownTemplate = errors.New("unknown packing template")
)

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Item struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Quantity      int       `json:"quantity"`
	IsPacked      bool      `json:"isPacked"`
	IsEssential   bool      `json:"isEssential"`
	Notes         string    `json:"notes,omitempty"`
	Weight        float64   `json:"weight"` // grams
	EstimatedCost Money     `json:"estimatedCost"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

type PackingList struct {
	ID                 string     `json:"id"`
	TripID             string     `json:"tripId"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Items              []Item     `json:"items"`
	Categories         []Category `json:"categories"`
	TotalWeight        float64    `json:"totalWeight"` // grams
	TotalEstimatedCost Money      `json:"totalEstimatedCost"`
	IsTemplate         bool       `json:"isTemplate"`
	TemplateCategory   string     `json:"templateCategory,omitempty"`
	IsPublic           bool       `json:"isPublic"`
	Tags               []string   `json:"tags"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Recalculate recomputes weight and cost totals from scratch. Runs before
// every persist.
func (p *PackingList) Recalculate() {
	var weight, cost float64

	for _, item := range p.Items {
		qty := float64(item.Quantity)
		weight += item.Weight * qty
		cost += item.EstimatedCost.Amount * qty
	}

	p.TotalWeight = weight
	p.TotalEstimatedCost.Amount = cost
}

func (p *PackingList) PackedItems() int {
	n := 0
	for _, item := range p.Items {
		if item.IsPacked {
			n++
		}
	}
	return n
}

func (p *PackingList) EssentialItems() int {
	n := 0
	for _, item := range p.Items {
		if item.IsEssential {
			n++
		}
	}
	return n
}

func (p *PackingList) PackingProgress() int {
	total := len(p.Items)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(p.PackedItems()) / float64(total) * 100))
}

func (p *PackingList) AddItem(item Item, now time.Time) Item {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.EstimatedCost.Currency == "" {
		item.EstimatedCost.Currency = p.TotalEstimatedCost.Currency
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	p.Items = append(p.Items, item)
	p.Recalculate()
	p.UpdatedAt = now

	return item
}

func (p *PackingList) findItem(itemID string) int {
	for i := range p.Items {
		if p.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (p *PackingList) UpdateItem(itemID string, patch UpdateItemRequest, now time.Time) error {
	i := p.findItem(itemID)

	if i == -1 {
		return ErrItemNotFound
	}

	item := &p.Items[i]

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.IsPacked != nil {
		item.IsPacked = *patch.IsPacked
	}
	if patch.IsEssential != nil {
		item.IsEssential = *patch.IsEssential
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.Weight != nil {
		item.Weight = *patch.Weight
	}
	if patch.EstimatedCost != nil {
		item.EstimatedCost.Amount = *patch.EstimatedCost
	}
	item.UpdatedAt = now

	p.Recalculate()
	p.UpdatedAt = now

	return nil
}

func (p *PackingList) DeleteItem(itemID string, now time.Time) error {
	i := p.findItem(itemID)

	if i == -1 {
		return ErrItemNotFound
	}

	p.Items = append(p.Items[:i], p.Items[i+1:]...)
	p.Recalculate()
	p.UpdatedAt = now

	return nil
}

func (p *PackingList) ToggleItemPacked(itemID string, now time.Time) (Item, error) {
	i := p.findItem(itemID)

	if i == -1 {
		return Item{}, ErrItemNotFound
	}

	p.Items[i].IsPacked = !p.Items[i].IsPacked
	p.Items[i].UpdatedAt = now
	p.UpdatedAt = now

	return p.Items[i], nil
}
