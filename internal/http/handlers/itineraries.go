package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/access"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/domain/itinerary"
)

type ItinerariesStore interface {
	Create(ctx context.Context, it itinerary.Itinerary) error
	GetByID(ctx context.Context, id string) (itinerary.Itinerary, error)
	ListByTrip(ctx context.Context, tripID string) ([]itinerary.Itinerary, error)
	Save(ctx context.Context, it itinerary.Itinerary) error
	Delete(ctx context.Context, id string) error
	DeleteByTrip(ctx context.Context, tripID string) error
}

type ItinerariesHandler struct {
	itineraries ItinerariesStore
	trips       TripGetter
}

func NewItinerariesHandler(itineraries ItinerariesStore, trips TripGetter) *ItinerariesHandler {
	return &ItinerariesHandler{itineraries: itineraries, trips: trips}
}

func (h *ItinerariesHandler) load(ctx *gin.Context, op access.Op) (itinerary.Itinerary, bool) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	it, err := h.itineraries.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, itinerary.ErrNotFound) {
			RespondNotFound(ctx, "Itinerary not found")
			return itinerary.Itinerary{}, false
		}

		RespondInternal(ctx, "Could not load itinerary")
		return itinerary.Itinerary{}, false
	}

	if _, ok := requireTripAccess(ctx, h.trips, it.TripID, op); !ok {
		return itinerary.Itinerary{}, false
	}

	return it, true
}

func (h *ItinerariesHandler) save(ctx *gin.Context, it itinerary.Itinerary, message string) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.itineraries.Save(cctx, it); err != nil {
		RespondInternal(ctx, "Could not save itinerary")
		return
	}

	RespondData(ctx, http.StatusOK, message, it)
}

func (h *ItinerariesHandler) Create(ctx *gin.Context) {
	var req itinerary.CreateItineraryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpWriteSubResource); !ok {
		return
	}

	it := itinerary.NewFromCreateRequest(req, tripID, time.Now().UTC())

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.itineraries.Create(cctx, *it); err != nil {
		RespondInternal(ctx, "Could not create itinerary")
		return
	}

	RespondData(ctx, http.StatusCreated, "Itinerary created", it)
}

func (h *ItinerariesHandler) ListByTrip(ctx *gin.Context) {
	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpRead); !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	itineraries, err := h.itineraries.ListByTrip(cctx, tripID)

	if err != nil {
		RespondInternal(ctx, "Could not list itineraries")
		return
	}

	RespondData(ctx, http.StatusOK, "", itineraries)
}

func (h *ItinerariesHandler) Get(ctx *gin.Context) {
	it, ok := h.load(ctx, access.OpRead)
	if !ok {
		return
	}

	RespondData(ctx, http.StatusOK, "", it)
}

func (h *ItinerariesHandler) Update(ctx *gin.Context) {
	var req itinerary.UpdateItineraryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	it, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	it.ApplyUpdate(req, time.Now().UTC())
	h.save(ctx, it, "Itinerary updated")
}

func (h *ItinerariesHandler) Delete(ctx *gin.Context) {
	it, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.itineraries.Delete(cctx, it.ID); err != nil {
		RespondInternal(ctx, "Could not delete itinerary")
		return
	}

	RespondData(ctx, http.StatusOK, "Itinerary deleted", nil)
}

func (h *ItinerariesHandler) AddDay(ctx *gin.Context) {
	var req itinerary.AddDayRequest

	if !BindJSON(ctx, &req) {
		return
	}

	it, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	day, err := it.AddDay(req.ToDay(), time.Now().UTC())

	if err != nil {
		if errors.Is(err, itinerary.ErrDuplicateDay) {
			RespondConflict(ctx, "A day with that number already exists")
			return
		}

		RespondInternal(ctx, "Could not add day")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.itineraries.Save(cctx, it); err != nil {
		RespondInternal(ctx, "Could not save itinerary")
		return
	}

	RespondData(ctx, http.StatusCreated, "Day added", day)
}

func (h *ItinerariesHandler) AddActivity(ctx *gin.Context) {
	var req itinerary.AddActivityRequest

	if !BindJSON(ctx, &req) {
		return
	}

	it, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	activity, err := it.AddActivity(ctx.Param("dayId"), req.ToActivity(), time.Now().UTC())

	if err != nil {
		RespondNotFound(ctx, "Itinerary day not found")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.itineraries.Save(cctx, it); err != nil {
		RespondInternal(ctx, "Could not save itinerary")
		return
	}

	RespondData(ctx, http.StatusCreated, "Activity added", activity)
}

func (h *ItinerariesHandler) respondActivityError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, itinerary.ErrDayNotFound):
		RespondNotFound(ctx, "Itinerary day not found")
	case errors.Is(err, itinerary.ErrActivityNotFound):
		RespondNotFound(ctx, "Activity not found")
	default:
		RespondInternal(ctx, "Could not update itinerary")
	}
}

func (h *ItinerariesHandler) UpdateActivity(ctx *gin.Context) {
	var req itinerary.UpdateActivityRequest

	if !BindJSON(ctx, &req) {
		return
	}

	it, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	if err := it.UpdateActivity(ctx.Param("dayId"), ctx.Param("activityId"), req, time.Now().UTC()); err != nil {
		h.respondActivityError(ctx, err)
		return
	}

	h.save(ctx, it, "Activity updated")
}

func (h *ItinerariesHandler) DeleteActivity(ctx *gin.Context) {
	it, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	if err := it.DeleteActivity(ctx.Param("dayId"), ctx.Param("activityId"), time.Now().UTC()); err != nil {
		h.respondActivityError(ctx, err)
		return
	}

	h.save(ctx, it, "Activity deleted")
}

func (h *ItinerariesHandler) ToggleActivityCompletion(ctx *gin.Context) {
	it, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	activity, err := it.ToggleActivityCompletion(ctx.Param("dayId"), ctx.Param("activityId"), time.Now().UTC())

	if err != nil {
		h.respondActivityError(ctx, err)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.itineraries.Save(cctx, it); err != nil {
		RespondInternal(ctx, "Could not save itinerary")
		return
	}

	RespondData(ctx, http.StatusOK, "Activity completion updated", activity)
}

// ReorderActivities replaces the activity order within a day. The id list
// must name every activity of the day exactly once.
func (h *ItinerariesHandler) ReorderActivities(ctx *gin.Context) {
	var req itinerary.ReorderActivitiesRequest

	if !BindJSON(ctx, &req) {
		return
	}

	it, ok := h.load(ctx, access.OpWriteSubResource)
	if !ok {
		return
	}

	if err := it.ReorderActivities(ctx.Param("dayId"), req.ActivityIDs, time.Now().UTC()); err != nil {
		if errors.Is(err, itinerary.ErrDayNotFound) {
			RespondNotFound(ctx, "Itinerary day not found")
			return
		}

		RespondBadRequest(ctx, "Activity ids must match the day's activities exactly", nil)
		return
	}

	h.save(ctx, it, "Activities reordered")
}

func (h *ItinerariesHandler) Stats(ctx *gin.Context) {
	tripID := ctx.Param("tripId")

	if _, ok := requireTripAccess(ctx, h.trips, tripID, access.OpRead); !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	itineraries, err := h.itineraries.ListByTrip(cctx, tripID)

	if err != nil {
		RespondInternal(ctx, "Could not load itinerary stats")
		return
	}

	days, activities, completed := 0, 0, 0
	var totalCost float64

	for _, it := range itineraries {
		days += len(it.Days)
		activities += it.TotalActivities()
		completed += it.CompletedActivities()
		totalCost += it.TotalCost.Amount
	}

	progress := 0
	if activities > 0 {
		progress = completed * 100 / activities
	}

	RespondData(ctx, http.StatusOK, "", gin.H{
		"itineraries":         len(itineraries),
		"days":                days,
		"activities":          activities,
		"completedActivities": completed,
		"completionPercent":   progress,
		"totalCost":           totalCost,
	})
}
