package packinglist_test

import (
	"testing"
	"time"

	"github.com/traveltrack/traveltrack/internal/domain/packinglist"
)

func TestRecalculateTotals(t *testing.T) {
	now := time.Now().UTC()
	p := packinglist.NewFromCreateRequest(packinglist.CreateRequest{Title: "Weekend"}, "trip-1", now)

	if p.TotalWeight != 0 {
		t.Fatalf("empty list totalWeight = %v, want 0", p.TotalWeight)
	}

	p.AddItem(packinglist.Item{Name: "Shirt", Category: "Clothing", Quantity: 3, Weight: 150, EstimatedCost: packinglist.Money{Amount: 20}}, now)
	p.AddItem(packinglist.Item{Name: "Charger", Category: "Electronics", Quantity: 1, Weight: 200, EstimatedCost: packinglist.Money{Amount: 15}}, now)

	if p.TotalWeight != 650 {
		t.Fatalf("totalWeight = %v, want 650", p.TotalWeight)
	}
	if p.TotalEstimatedCost.Amount != 75 {
		t.Fatalf("totalEstimatedCost = %v, want 75", p.TotalEstimatedCost.Amount)
	}
}

func TestQuantityDefaultsToOne(t *testing.T) {
	now := time.Now().UTC()
	p := packinglist.PackingList{}

	it := p.AddItem(packinglist.Item{Name: "Passport", Category: "Documents", Weight: 40}, now)

	if it.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", it.Quantity)
	}
	if p.TotalWeight != 40 {
		t.Fatalf("totalWeight = %v, want 40", p.TotalWeight)
	}
}

func TestTogglePackedTwiceRestoresState(t *testing.T) {
	now := time.Now().UTC()
	p := packinglist.PackingList{}
	it := p.AddItem(packinglist.Item{Name: "Socks", Category: "Clothing", Quantity: 4}, now)

	if _, err := p.ToggleItemPacked(it.ID, now); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	after, err := p.ToggleItemPacked(it.ID, now)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if after.IsPacked != it.IsPacked {
		t.Fatal("double toggle changed the packed state")
	}

	if _, err := p.ToggleItemPacked("missing", now); err != packinglist.ErrItemNotFound {
		t.Fatalf("toggle missing: err = %v, want ErrItemNotFound", err)
	}
}

func TestPackingProgressZeroGuard(t *testing.T) {
	p := packinglist.PackingList{}

	if got := p.PackingProgress(); got != 0 {
		t.Fatalf("empty list progress = %d, want 0", got)
	}

	now := time.Now().UTC()
	p.AddItem(packinglist.Item{Name: "a", Category: "Other", IsPacked: true}, now)
	p.AddItem(packinglist.Item{Name: "b", Category: "Other"}, now)

	if got := p.PackingProgress(); got != 50 {
		t.Fatalf("progress = %d, want 50", got)
	}
}

func TestDeleteItemRecalculates(t *testing.T) {
	now := time.Now().UTC()
	p := packinglist.PackingList{}
	it := p.AddItem(packinglist.Item{Name: "Tent", Category: "Other", Quantity: 1, Weight: 2500}, now)
	p.AddItem(packinglist.Item{Name: "Mat", Category: "Other", Quantity: 2, Weight: 500}, now)

	if err := p.DeleteItem(it.ID, now); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if p.TotalWeight != 1000 {
		t.Fatalf("totalWeight = %v, want 1000", p.TotalWeight)
	}
}

func TestNewFromTemplate(t *testing.T) {
	now := time.Now().UTC()

	p, err := packinglist.NewFromTemplate("Beach", "", "trip-1", now)
	if err != nil {
		t.Fatalf("template: %v", err)
	}

	if len(p.Items) == 0 {
		t.Fatal("expected starter items")
	}
	if p.Title != "Beach packing list" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.TotalWeight == 0 {
		t.Fatal("expected totals to be computed")
	}

	if _, err := packinglist.NewFromTemplate("Lunar", "", "trip-1", now); err != packinglist.ErrUnknownTemplate {
		t.Fatalf("err = %v, want ErrUnknownTemplate", err)
	}
}
