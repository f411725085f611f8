package budget_test

import (
	"testing"
	"time"

	"github.com/traveltrack/traveltrack/internal/domain/budget"
)

func newBudget() budget.Budget {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	b := budget.NewFromCreateRequest(budget.CreateBudgetRequest{
		Title:       "City break",
		TotalBudget: 1000,
	}, "trip-1", now)
	b.Categories = []budget.Category{
		{Name: "Food", Color: "#3B82F6"},
		{Name: "Transportation", Color: "#3B82F6"},
	}

	return b
}

func TestRecalculateTotals(t *testing.T) {
	now := time.Now().UTC()
	b := newBudget()

	b.AddItem(budget.Item{Title: "Flight", Category: "Transportation", Type: budget.ItemExpense, Amount: 320}, now)
	b.AddItem(budget.Item{Title: "Dinner", Category: "Food", Type: budget.ItemExpense, Amount: 45.50}, now)
	b.AddItem(budget.Item{Title: "Refund", Category: "Other", Type: budget.ItemIncome, Amount: 100}, now)

	if b.TotalExpenses.Amount != 365.50 {
		t.Fatalf("totalExpenses = %v, want 365.50", b.TotalExpenses.Amount)
	}
	if b.TotalIncome.Amount != 100 {
		t.Fatalf("totalIncome = %v, want 100", b.TotalIncome.Amount)
	}

	// per-category spent comes only from expenses
	for _, c := range b.Categories {
		switch c.Name {
		case "Food":
			if c.Spent != 45.50 {
				t.Fatalf("Food spent = %v, want 45.50", c.Spent)
			}
		case "Transportation":
			if c.Spent != 320 {
				t.Fatalf("Transportation spent = %v, want 320", c.Spent)
			}
		}
	}
}

func TestRecalculateAfterItemUpdateAndDelete(t *testing.T) {
	now := time.Now().UTC()
	b := newBudget()

	it := b.AddItem(budget.Item{Title: "Museum", Category: "Activities", Type: budget.ItemExpense, Amount: 30}, now)
	b.AddItem(budget.Item{Title: "Bus", Category: "Transportation", Type: budget.ItemExpense, Amount: 12}, now)

	amount := 75.0
	if err := b.UpdateItem(it.ID, budget.UpdateItemRequest{Amount: &amount}, now); err != nil {
		t.Fatalf("update: %v", err)
	}

	if b.TotalExpenses.Amount != 87 {
		t.Fatalf("after update totalExpenses = %v, want 87", b.TotalExpenses.Amount)
	}

	if err := b.DeleteItem(it.ID, now); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if b.TotalExpenses.Amount != 12 {
		t.Fatalf("after delete totalExpenses = %v, want 12", b.TotalExpenses.Amount)
	}

	if err := b.DeleteItem("nope", now); err != budget.ErrItemNotFound {
		t.Fatalf("delete missing: err = %v, want ErrItemNotFound", err)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	now := time.Now().UTC()
	b := newBudget()

	title := "x"
	if err := b.UpdateItem("missing", budget.UpdateItemRequest{Title: &title}, now); err != budget.ErrItemNotFound {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}
}

func TestToggleItemPaidIsIdempotentInPairs(t *testing.T) {
	now := time.Now().UTC()
	b := newBudget()

	it := b.AddItem(budget.Item{Title: "Hotel", Category: "Accommodation", Type: budget.ItemExpense, Amount: 400}, now)

	first, err := b.ToggleItemPaid(it.ID, now)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !first.IsPaid {
		t.Fatal("expected item paid after first toggle")
	}

	second, err := b.ToggleItemPaid(it.ID, now)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if second.IsPaid != it.IsPaid {
		t.Fatal("two toggles did not restore the original state")
	}

	if _, err := b.ToggleItemPaid("missing", now); err != budget.ErrItemNotFound {
		t.Fatalf("toggle missing: err = %v, want ErrItemNotFound", err)
	}
}

func TestDerivedViewsZeroGuards(t *testing.T) {
	b := budget.Budget{}

	if got := b.BudgetUtilization(); got != 0 {
		t.Fatalf("BudgetUtilization on empty budget = %d, want 0", got)
	}
	if got := b.PaymentProgress(); got != 0 {
		t.Fatalf("PaymentProgress on empty budget = %d, want 0", got)
	}

	now := time.Now().UTC()
	b.TotalBudget.Amount = 200
	b.AddItem(budget.Item{Title: "a", Category: "Other", Type: budget.ItemExpense, Amount: 50, IsPaid: true}, now)
	b.AddItem(budget.Item{Title: "b", Category: "Other", Type: budget.ItemExpense, Amount: 50}, now)

	if got := b.BudgetUtilization(); got != 50 {
		t.Fatalf("BudgetUtilization = %d, want 50", got)
	}
	if got := b.PaymentProgress(); got != 50 {
		t.Fatalf("PaymentProgress = %d, want 50", got)
	}
	if got := b.NetAmount(); got != -100 {
		t.Fatalf("NetAmount = %v, want -100", got)
	}
	if got := b.RemainingBudget(); got != 100 {
		t.Fatalf("RemainingBudget = %v, want 100", got)
	}
}
