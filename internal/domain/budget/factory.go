package budget

import (
	"time"

	"github.com/google/uuid"
)

type CreateBudgetRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"omitempty,max=500"`
	TotalBudget float64 `json:"totalBudget" binding:"omitempty,min=0"`
	Currency    string  `json:"currency" binding:"omitempty,len=3"`
	Categories  []struct {
		Name   string  `json:"name" binding:"required,max=40"`
		Color  string  `json:"color"`
		Icon   string  `json:"icon"`
		Budget float64 `json:"budget" binding:"omitempty,min=0"`
	} `json:"categories" binding:"omitempty,max=20"`
}

type UpdateBudgetRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	TotalBudget *float64 `json:"totalBudget" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"isActive"`
	Alerts      *Alerts  `json:"alerts"`
}

type AddItemRequest struct {
	Title              string    `json:"title" binding:"required,min=1,max=100"`
	Description        string    `json:"description" binding:"omitempty,max=500"`
	Category           string    `json:"category" binding:"required,oneof=Accommodation Transportation Food Activities Shopping Entertainment Health Insurance Other"`
	Type               ItemType  `json:"type" binding:"required,oneof=Income Expense"`
	Amount             float64   `json:"amount" binding:"required,min=0"`
	Currency           string    `json:"currency" binding:"omitempty,len=3"`
	Date               time.Time `json:"date"`
	IsRecurring        bool      `json:"isRecurring"`
	RecurringFrequency string    `json:"recurringFrequency" binding:"omitempty,oneof=Daily Weekly Monthly"`
	IsPaid             bool      `json:"isPaid"`
	PaymentMethod      string    `json:"paymentMethod" binding:"omitempty,oneof=Cash 'Credit Card' 'Debit Card' 'Bank Transfer' 'Digital Wallet' Other"`
	Notes              string    `json:"notes" binding:"omitempty,max=1000"`
	Tags               []string  `json:"tags" binding:"omitempty,max=20,dive,max=40"`
}

type UpdateItemRequest struct {
	Title              *string    `json:"title" binding:"omitempty,min=1,max=100"`
	Description        *string    `json:"description" binding:"omitempty,max=500"`
	Category           *string    `json:"category" binding:"omitempty,oneof=Accommodation Transportation Food Activities Shopping Entertainment Health Insurance Other"`
	Type               *ItemType  `json:"type" binding:"omitempty,oneof=Income Expense"`
	Amount             *float64   `json:"amount" binding:"omitempty,min=0"`
	Currency           *string    `json:"currency" binding:"omitempty,len=3"`
	Date               *time.Time `json:"date"`
	IsRecurring        *bool      `json:"isRecurring"`
	RecurringFrequency *string    `json:"recurringFrequency" binding:"omitempty,oneof=Daily Weekly Monthly"`
	IsPaid             *bool      `json:"isPaid"`
	PaymentMethod      *string    `json:"paymentMethod" binding:"omitempty,oneof=Cash 'Credit Card' 'Debit Card' 'Bank Transfer' 'Digital Wallet' Other"`
	Notes              *string    `json:"notes" binding:"omitempty,max=1000"`
	Tags               []string   `json:"tags" binding:"omitempty,max=20,dive,max=40"`
}

func (r AddItemRequest) ToItem() Item {
	return Item{
		Title:              r.Title,
		Description:        r.Description,
		Category:           r.Category,
		Type:               r.Type,
		Amount:             r.Amount,
		Currency:           r.Currency,
		Date:               r.Date,
		IsRecurring:        r.IsRecurring,
		RecurringFrequency: r.RecurringFrequency,
		IsPaid:             r.IsPaid,
		PaymentMethod:      r.PaymentMethod,
		Notes:              r.Notes,
		Tags:               r.Tags,
	}
}

func NewFromCreateRequest(req CreateBudgetRequest, tripID string, now time.Time) Budget {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	categories := make([]Category, 0, len(req.Categories))
	for _, c := range req.Categories {
		color := c.Color
		if color == "" {
			color = "#3B82F6"
		}
		categories = append(categories, Category{
			Name:   c.Name,
			Color:  color,
			Icon:   c.Icon,
			Budget: c.Budget,
		})
	}

	return Budget{
		ID:          uuid.NewString(),
		TripID:      tripID,
		Title:       req.Title,
		Description: req.Description,
		Items:       []Item{},
		TotalBudget: Money{Amount: req.TotalBudget, Currency: currency},
		TotalIncome: Money{Currency: currency},
		TotalExpenses: Money{
			Currency: currency,
		},
		Categories: categories,
		IsActive:   true,
		StartDate:  now,
		Alerts: Alerts{
			LowBudget:  true,
			OverBudget: true,
			Threshold:  80,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *Budget) ApplyUpdate(req UpdateBudgetRequest, now time.Time) {
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.TotalBudget != nil {
		b.TotalBudget.Amount = *req.TotalBudget
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if req.Alerts != nil {
		b.Alerts = *req.Alerts
	}

	b.Recalculate()
	b.UpdatedAt = now
}
