package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/access"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/domain/packinglist"
)

type PackingListsStore interface {
	Create(ctx context.Context, p packinglist.PackingList) error
	GetByID(ctx context.Context, id string) (packinglist.PackingList, error)
	ListByTrip(ctx context.Context, tripID string) ([]packinglist.PackingList, error)
	Save(ctx context.Context, p packinglist.PackingList) error
	Delete(ctx context.Context, id string) error
	DeleteByTrip(ctx context.Context, tripID string) error
}

type PackingListsHandler struct {
	lists PackingListsStore
	trips TripGetter
}

func NewPackingListsHandler(lists PackingListsStore, trips TripGetter) *PackingListsHandler {
	return &PackingListsHandler{lists: lists, trips: trips}
}

func (h *PackingListsHandler) load(ctx *gin.Context, op access.Op) (packinglist.PackingList, bool) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.lists.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, packinglist.ErrNotFound) {
			RespondNotFound(ctx, "Packing list not found")
			return packinglist.PackingList{}, false
		}

		RespondInternal(ctx, "Could not load packing list")
		return packinglist.PackingList{}, false
	}

	if _, ok := requireTripAccess(ctx, h.trips, p.TripID, op); !ok {
		return packinglist.PackingList{}, false
	}

	return p, true
}

func (h *PackingListsHandler) save(ctx *gin.Context, p packinglist.PackingList, message string) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.lists.Save(cctx, p); err != nil {
		RespondInternal(ctx, "Could not save packing list")
		return
	}

	RespondData(ctx, http.StatusOK, message, p)
}

func (h *PackingListsHandler) Create(ctx *gin.Context) {
	var req packinglist.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpWriteSubResource); !ok {
		return
	}

	p := packinglist.NewFromCreateRequest(req, tripID, time.Now().UTC())

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.lists.Create(cctx, p); err != nil {
		RespondInternal(ctx, "Could not create packing list")
		return
	}

	RespondData(ctx, http.StatusCreated, "Packing list created", p)
}

// GenerateFromTemplate creates a list pre-seeded with the starter items of a
// known template category.
func (h *PackingListsHandler) GenerateFromTemplate(ctx *gin.Context) {
	var req packinglist.GenerateFromTemplateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpWriteSubResource); !ok {
		return
	}

	p, err := packinglist.NewFromTemplate(req.Template, req.Title, tripID, time.Now().UTC())

	if err != nil {
		RespondBadRequest(ctx, "Unknown packing template", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.lists.Create(cctx, p); err != nil {
		RespondInternal(ctx, "Could not create packing list")
		return
	}

	RespondData(ctx, http.StatusCreated, "Packing list created from template", p)
}

func (h *PackingListsHandler) ListByTrip(ctx *gin.Context) {
	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpRead); !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	lists, err := h.lists.ListByTrip(cctx, tripID)

	if err != nil {
		RespondInternal(ctx, "Could not list packing lists")
		return
	}

	RespondData(ctx, http.StatusOK, "", lists)
}

func (h *PackingListsHandler) Get(ctx *gin.Context) {
	p, ok := h.load(ctx, access.OpRead)
	if !ok {
		return
	}

	RespondData(ctx, http.StatusOK, "", p)
}

func (h *PackingListsHandler) Update(ctx *gin.Context) {
	var req packinglist.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	p.ApplyUpdate(req, time.Now().UTC())
	h.save(ctx, p, "Packing list updated")
}

func (h *PackingListsHandler) Delete(ctx *gin.Context) {
	p, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.lists.Delete(cctx, p.ID); err != nil {
		RespondInternal(ctx, "Could not delete packing list")
		return
	}

	RespondData(ctx, http.StatusOK, "Packing list deleted", nil)
}

func (h *PackingListsHandler) AddItem(ctx *gin.Context) {
	var req packinglist.AddItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	item := p.AddItem(req.ToItem(), time.Now().UTC())

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.lists.Save(cctx, p); err != nil {
		RespondInternal(ctx, "Could not save packing list")
		return
	}

	RespondData(ctx, http.StatusCreated, "Item added", item)
}

func (h *PackingListsHandler) UpdateItem(ctx *gin.Context) {
	var req packinglist.UpdateItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	if err := p.UpdateItem(ctx.Param("itemId"), req, time.Now().UTC()); err != nil {
		RespondNotFound(ctx, "Packing item not found")
		return
	}

	h.save(ctx, p, "Item updated")
}

func (h *PackingListsHandler) DeleteItem(ctx *gin.Context) {
	p, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	if err := p.DeleteItem(ctx.Param("itemId"), time.Now().UTC()); err != nil {
		RespondNotFound(ctx, "Packing item not found")
		return
	}

	h.save(ctx, p, "Item deleted")
}

func (h *PackingListsHandler) ToggleItemPacked(ctx *gin.Context) {
	p, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	item, err := p.ToggleItemPacked(ctx.Param("itemId"), time.Now().UTC())

	if err != nil {
		RespondNotFound(ctx, "Packing item not found")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.lists.Save(cctx, p); err != nil {
		RespondInternal(ctx, "Could not save packing list")
		return
	}

	RespondData(ctx, http.StatusOK, "Item packed status updated", item)
}

func (h *PackingListsHandler) Stats(ctx *gin.Context) {
	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpRead); !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	lists, err := h.lists.ListByTrip(cctx, tripID)

	if err != nil {
		RespondInternal(ctx, "Could not load packing stats")
		return
	}

	totalItems, packed, essential := 0, 0, 0
	var totalWeight, totalCost float64

	for _, p := range lists {
		totalItems += len(p.Items)
		packed += p.PackedItems()
		essential += p.EssentialItems()
		totalWeight += p.TotalWeight
		totalCost += p.TotalEstimatedCost.Amount
	}

	progress := 0
	if totalItems > 0 {
		progress = packed * 100 / totalItems
	}

	RespondData(ctx, http.StatusOK, "", gin.H{
		"lists":           len(lists),
		"items":           totalItems,
		"packedItems":     packed,
		"essentialItems":  essential,
		"packingProgress": progress,
		"totalWeight":     totalWeight,
		"totalCost":       totalCost,
	})
}
