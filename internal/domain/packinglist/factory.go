package packinglist

import (
	"time"

	"github.com/google/uuid"
)

type CreateRequest struct {
	Title            string   `json:"title" binding:"required,min=1,max=100"`
	Description      string   `json:"description" binding:"omitempty,max=500"`
	Currency         string   `json:"currency" binding:"omitempty,len=3"`
	IsTemplate       bool     `json:"isTemplate"`
	TemplateCategory string   `json:"templateCategory" binding:"omitempty,oneof=Beach Mountain City Business Camping Cruise Backpacking"`
	Tags             []string `json:"tags" binding:"omitempty,max=20,dive,max=40"`
}

type UpdateRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	IsPublic    *bool    `json:"isPublic"`
	Tags        []string `json:"tags" binding:"omitempty,max=20,dive,max=40"`
}

type AddItemRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	Category      string  `json:"category" binding:"required,oneof=Clothing Electronics Toiletries Documents Accessories Medication Food Other"`
	Quantity      int     `json:"quantity" binding:"omitempty,min=1"`
	IsPacked      bool    `json:"isPacked"`
	IsEssential   bool    `json:"isEssential"`
	Notes         string  `json:"notes" binding:"omitempty,max=200"`
	Weight        float64 `json:"weight" binding:"omitempty,min=0"` // grams
	EstimatedCost float64 `json:"estimatedCost" binding:"omitempty,min=0"`
}

type UpdateItemRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Category      *string  `json:"category" binding:"omitempty,oneof=Clothing Electronics Toiletries Documents Accessories Medication Food Other"`
	Quantity      *int     `json:"quantity" binding:"omitempty,min=1"`
	IsPacked      *bool    `json:"isPacked"`
	IsEssential   *bool    `json:"isEssential"`
	Notes         *string  `json:"notes" binding:"omitempty,max=200"`
	Weight        *float64 `json:"weight" binding:"omitempty,min=0"`
	EstimatedCost *float64 `json:"estimatedCost" binding:"omitempty,min=0"`
}

type GenerateFromTemplateRequest struct {
	Template string `json:"template" binding:"required,oneof=Beach Mountain City Business Camping"`
	Title    string `json:"title" binding:"omitempty,min=1,max=100"`
}

func (r AddItemRequest) ToItem() Item {
	return Item{
		Name:          r.Name,
		Category:      r.Category,
		Quantity:      r.Quantity,
		IsPacked:      r.IsPacked,
		IsEssential:   r.IsEssential,
		Notes:         r.Notes,
		Weight:        r.Weight,
		EstimatedCost: Money{Amount: r.EstimatedCost},
	}
}

func NewFromCreateRequest(req CreateRequest, tripID string, now time.Time) PackingList {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	return PackingList{
		ID:                 uuid.NewString(),
		TripID:             tripID,
		Title:              req.Title,
		Description:        req.Description,
		Items:              []Item{},
		Categories:         []Category{},
		TotalEstimatedCost: Money{Currency: currency},
		IsTemplate:         req.IsTemplate,
		TemplateCategory:   req.TemplateCategory,
		Tags:               tags,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (p *PackingList) ApplyUpdate(req UpdateRequest, now time.Time) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}
	if req.Tags != nil {
		p.Tags = req.Tags
	}

	p.Recalculate()
	p.UpdatedAt = now
}

// starter items per template category
var templates = map[string][]Item{
	"Beach": {
		{Name: "Swimsuit", Category: "Clothing", Quantity: 2, IsEssential: true, Weight: 200},
		{Name: "Sunscreen", Category: "Toiletries", Quantity: 1, IsEssential: true, Weight: 150},
		{Name: "Beach towel", Category: "Accessories", Quantity: 1, Weight: 400},
		{Name: "Sunglasses", Category: "Accessories", Quantity: 1, Weight: 50},
		{Name: "Flip flops", Category: "Clothing", Quantity: 1, Weight: 300},
	},
	"Mountain": {
		{Name: "Hiking boots", Category: "Clothing", Quantity: 1, IsEssential: true, Weight: 1200},
		{Name: "Rain jacket", Category: "Clothing", Quantity: 1, IsEssential: true, Weight: 350},
		{Name: "Water bottle", Category: "Accessories", Quantity: 1, IsEssential: true, Weight: 150},
		{Name: "First aid kit", Category: "Medication", Quantity: 1, IsEssential: true, Weight: 250},
		{Name: "Headlamp", Category: "Electronics", Quantity: 1, Weight: 90},
	},
	"City": {
		{Name: "Comfortable shoes", Category: "Clothing", Quantity: 1, IsEssential: true, Weight: 700},
		{Name: "Day bag", Category: "Accessories", Quantity: 1, Weight: 500},
		{Name: "Power bank", Category: "Electronics", Quantity: 1, Weight: 200},
		{Name: "City map or guide", Category: "Documents", Quantity: 1, Weight: 100},
	},
	"Business": {
		{Name: "Suit", Category: "Clothing", Quantity: 1, IsEssential: true, Weight: 1500},
		{Name: "Laptop", Category: "Electronics", Quantity: 1, IsEssential: true, Weight: 1400},
		{Name: "Chargers", Category: "Electronics", Quantity: 1, IsEssential: true, Weight: 300},
		{Name: "Business cards", Category: "Documents", Quantity: 1, Weight: 50},
	},
	"Camping": {
		{Name: "Tent", Category: "Accessories", Quantity: 1, IsEssential: true, Weight: 2500},
		{Name: "Sleeping bag", Category: "Accessories", Quantity: 1, IsEssential: true, Weight: 1100},
		{Name: "Camping stove", Category: "Accessories", Quantity: 1, Weight: 600},
		{Name: "Multitool", Category: "Accessories", Quantity: 1, Weight: 250},
		{Name: "Insect repellent", Category: "Toiletries", Quantity: 1, Weight: 120},
	},
}

// NewFromTemplate builds a packing list pre-filled with the template's
// starter items, totals already computed.
func NewFromTemplate(template, title, tripID string, now time.Time) (PackingList, error) {
	items, ok := templates[template]

	if !ok {
		return PackingList{}, ErrUnknownTemplate
	}

	if title == "" {
		title = template + " packing list"
	}

	p := NewFromCreateRequest(CreateRequest{
		Title:            title,
		IsTemplate:       false,
		TemplateCategory: template,
	}, tripID, now)

	for _, item := range items {
		p.AddItem(item, now)
	}

	return p, nil
}
