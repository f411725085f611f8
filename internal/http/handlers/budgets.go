package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/access"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/domain/budget"
)

type BudgetsStore interface {
	Create(ctx context.Context, b budget.Budget) error
	GetByID(ctx context.Context, id string) (budget.Budget, error)
	ListByTrip(ctx context.Context, tripID string) ([]budget.Budget, error)
	Save(ctx context.Context, b budget.Budget) error
	Delete(ctx context.Context, id string) error
	DeleteByTrip(ctx context.Context, tripID string) error
}

type BudgetsHandler struct {
	budgets BudgetsStore
	trips   TripGetter
}

func NewBudgetsHandler(budgets BudgetsStore, trips TripGetter) *BudgetsHandler {
	return &BudgetsHandler{budgets: budgets, trips: trips}
}

// load fetches the budget, then authorizes against its owning trip. A budget
// that does not exist is a 404 before any trip lookup happens.
func (h *BudgetsHandler) load(ctx *gin.Context, op access.Op) (budget.Budget, bool) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	b, err := h.budgets.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			RespondNotFound(ctx, "Budget not found")
			return budget.Budget{}, false
		}

		RespondInternal(ctx, "Could not load budget")
		return budget.Budget{}, false
	}

	if _, ok := requireTripAccess(ctx, h.trips, b.TripID, op); !ok {
		return budget.Budget{}, false
	}

	return b, true
}

func (h *BudgetsHandler) save(ctx *gin.Context, b budget.Budget, message string) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.budgets.Save(cctx, b); err != nil {
		RespondInternal(ctx, "Could not save budget")
		return
	}

	RespondData(ctx, http.StatusOK, message, b)
}

func (h *BudgetsHandler) Create(ctx *gin.Context) {
	var req budget.CreateBudgetRequest

	if !BindJSON(ctx, &req) {
		return
	}

	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpWriteSubResource); !ok {
		return
	}

	b := budget.NewFromCreateRequest(req, tripID, time.Now().UTC())

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.budgets.Create(cctx, b); err != nil {
		RespondInternal(ctx, "Could not create budget")
		return
	}

	RespondData(ctx, http.StatusCreated, "Budget created", b)
}

func (h *BudgetsHandler) ListByTrip(ctx *gin.Context) {
	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpRead); !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	budgets, err := h.budgets.ListByTrip(cctx, tripID)

	if err != nil {
		RespondInternal(ctx, "Could not list budgets")
		return
	}

	RespondData(ctx, http.StatusOK, "", budgets)
}

func (h *BudgetsHandler) Get(ctx *gin.Context) {
	b, ok := h.load(ctx, access.OpRead)
	if !ok {
		return
	}

	RespondData(ctx, http.StatusOK, "", b)
}

func (h *BudgetsHandler) Update(ctx *gin.Context) {
	var req budget.UpdateBudgetRequest

	if !BindJSON(ctx, &req) {
		return
	}

	b, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	b.ApplyUpdate(req, time.Now().UTC())
	h.save(ctx, b, "Budget updated")
}

func (h *BudgetsHandler) Delete(ctx *gin.Context) {
	b, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.budgets.Delete(cctx, b.ID); err != nil {
		RespondInternal(ctx, "Could not delete budget")
		return
	}

	RespondData(ctx, http.StatusOK, "Budget deleted", nil)
}

func (h *BudgetsHandler) AddItem(ctx *gin.Context) {
	var req budget.AddItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	b, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	item := b.AddItem(req.ToItem(), time.Now().UTC())

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.budgets.Save(cctx, b); err != nil {
		RespondInternal(ctx, "Could not save budget")
		return
	}

	RespondData(ctx, http.StatusCreated, "Item added", item)
}

func (h *BudgetsHandler) UpdateItem(ctx *gin.Context) {
	var req budget.UpdateItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	b, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	if err := b.UpdateItem(ctx.Param("itemId"), req, time.Now().UTC()); err != nil {
		RespondNotFound(ctx, "Budget item not found")
		return
	}

	h.save(ctx, b, "Item updated")
}

func (h *BudgetsHandler) DeleteItem(ctx *gin.Context) {
	b, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	if err := b.DeleteItem(ctx.Param("itemId"), time.Now().UTC()); err != nil {
		RespondNotFound(ctx, "Budget item not found")
		return
	}

	h.save(ctx, b, "Item deleted")
}

func (h *BudgetsHandler) ToggleItemPaid(ctx *gin.Context) {
	b, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	item, err := b.ToggleItemPaid(ctx.Param("itemId"), time.Now().UTC())

	if err != nil {
		RespondNotFound(ctx, "Budget item not found")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.budgets.Save(cctx, b); err != nil {
		RespondInternal(ctx, "Could not save budget")
		return
	}

	RespondData(ctx, http.StatusOK, "Item payment status updated", item)
}

// Stats aggregates every budget on the trip into one summary.
func (h *BudgetsHandler) Stats(ctx *gin.Context) {
	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpRead); !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	budgets, err := h.budgets.ListByTrip(cctx, tripID)

	if err != nil {
		RespondInternal(ctx, "Could not load budget stats")
		return
	}

	var totalBudget, totalExpenses, totalIncome float64
	items := 0

	for _, b := range budgets {
		totalBudget += b.TotalBudget.Amount
		totalExpenses += b.TotalExpenses.Amount
		totalIncome += b.TotalIncome.Amount
		items += len(b.Items)
	}

	RespondData(ctx, http.StatusOK, "", gin.H{
		"budgets":       len(budgets),
		"items":         items,
		"totalBudget":   totalBudget,
		"totalExpenses": totalExpenses,
		"totalIncome":   totalIncome,
		"remaining":     totalBudget - totalExpenses + totalIncome,
	})
}
