package budget

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("budget not found")
	ErrItemNotFound = errors.New("budget item not found")
)

type ItemType string

const (
	ItemIncome  ItemType = "Income"
	ItemExpense ItemType = "Expense"
)

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Image struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

type Item struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Category           string    `json:"category"`
	Type               ItemType  `json:"type"`
	Amount             float64   `json:"amount"`
	Currency           string    `json:"currency"`
	Date               time.Time `json:"date"`
	IsRecurring        bool      `json:"isRecurring"`
	RecurringFrequency string    `json:"recurringFrequency,omitempty"`
	IsPaid             bool      `json:"isPaid"`
	PaymentMethod      string    `json:"paymentMethod,omitempty"`
	Receipt            Image     `json:"receipt"`
	Notes              string    `json:"notes,omitempty"`
	Tags               []string  `json:"tags,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type Category struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Icon   string  `json:"icon,omitempty"`
	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`
}

type Alerts struct {
	LowBudget  bool `json:"lowBudget"`
	OverBudget bool `json:"overBudget"`
	Threshold  int  `json:"threshold"` // percentage
}

type Budget struct {
	ID            string     `json:"id"`
	TripID        string     `json:"tripId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Items         []Item     `json:"items"`
	TotalBudget   Money      `json:"totalBudget"`
	TotalIncome   Money      `json:"totalIncome"`
	TotalExpenses Money      `json:"totalExpenses"`
	Categories    []Category `json:"categories"`
	IsActive      bool       `json:"isActive"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Alerts        Alerts     `json:"alerts"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Recalculate recomputes every derived total from the item set. It must run
// before each persist of the document; totals are never patched
// incrementally.
func (b *Budget) Recalculate() {
	var totalIncome, totalExpenses float64
	categoryTotals := make(map[string]float64)

	for _, item := range b.Items {
		if item.Type == ItemIncome {
			totalIncome += item.Amount
			continue
		}

		totalExpenses += item.Amount
		categoryTotals[item.Category] += item.Amount
	}

	b.TotalIncome.Amount = totalIncome
	b.TotalExpenses.Amount = totalExpenses

	for i := range b.Categories {
		b.Categories[i].Spent = categoryTotals[b.Categories[i].Name]
	}
}

// Computed views. Not persisted.

func (b *Budget) RemainingBudget() float64 {
	return b.TotalBudget.Amount - b.TotalExpenses.Amount
}

func (b *Budget) NetAmount() float64 {
	return b.TotalIncome.Amount - b.TotalExpenses.Amount
}

func (b *Budget) BudgetUtilization() int {
	if b.TotalBudget.Amount == 0 {
		return 0
	}
	return int(math.Round(b.TotalExpenses.Amount / b.TotalBudget.Amount * 100))
}

func (b *Budget) PaidItems() int {
	n := 0
	for _, item := range b.Items {
		if item.IsPaid {
			n++
		}
	}
	return n
}

func (b *Budget) PaymentProgress() int {
	total := len(b.Items)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(b.PaidItems()) / float64(total) * 100))
}

// Item mutations. Each recalculates before the caller persists.

func (b *Budget) AddItem(item Item, now time.Time) Item {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Currency == "" {
		item.Currency = b.TotalExpenses.Currency
	}
	if item.Date.IsZero() {
		item.Date = now
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	b.Items = append(b.Items, item)
	b.Recalculate()
	b.UpdatedAt = now

	return item
}

func (b *Budget) findItem(itemID string) int {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (b *Budget) UpdateItem(itemID string, patch UpdateItemRequest, now time.Time) error {
	i := b.findItem(itemID)

	if i == -1 {
		return ErrItemNotFound
	}

	item := &b.Items[i]

	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.Amount != nil {
		item.Amount = *patch.Amount
	}
	if patch.Currency != nil {
		item.Currency = *patch.Currency
	}
	if patch.Date != nil {
		item.Date = *patch.Date
	}
	if patch.IsRecurring != nil {
		item.IsRecurring = *patch.IsRecurring
	}
	if patch.RecurringFrequency != nil {
		item.RecurringFrequency = *patch.RecurringFrequency
	}
	if patch.IsPaid != nil {
		item.IsPaid = *patch.IsPaid
	}
	if patch.PaymentMethod != nil {
		item.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.Tags != nil {
		item.Tags = patch.Tags
	}
	item.UpdatedAt = now

	b.Recalculate()
	b.UpdatedAt = now

	return nil
}

func (b *Budget) DeleteItem(itemID string, now time.Time) error {
	i := b.findItem(itemID)

	if i == -1 {
		return ErrItemNotFound
	}

	b.Items = append(b.Items[:i], b.Items[i+1:]...)
	b.Recalculate()
	b.UpdatedAt = now

	return nil
}

func (b *Budget) ToggleItemPaid(itemID string, now time.Time) (Item, error) {
	i := b.findItem(itemID)

	if i == -1 {
		return Item{}, ErrItemNotFound
	}

	b.Items[i].IsPaid = !b.Items[i].IsPaid
	b.Items[i].UpdatedAt = now
	b.UpdatedAt = now

	return b.Items[i], nil
}
