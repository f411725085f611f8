package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/access"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/domain/destination"
	"github.com/traveltrack/traveltrack/internal/domain/trip"
	"github.com/traveltrack/traveltrack/internal/domain/user"
	"github.com/traveltrack/traveltrack/internal/http/middlewares"
	"github.com/traveltrack/traveltrack/internal/images"
	"github.com/traveltrack/traveltrack/internal/jobs"
	"github.com/traveltrack/traveltrack/internal/utils"
)

type TripsStore interface {
	Create(ctx context.Context, t trip.Trip) error
	GetByID(ctx context.Context, id string) (trip.Trip, error)
	Save(ctx context.Context, t trip.Trip) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter trip.ListTripsFilter) ([]trip.Trip, int, error)
	CountByStatus(ctx context.Context, ownerID string) (map[trip.Status]int, error)
}

// TripScoped is the shape shared by every per-trip sub-resource store,
// used when a trip is deleted to cascade over its documents.
type TripScoped interface {
	DeleteByTrip(ctx context.Context, tripID string) error
}

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
}

type DestinationGetter interface {
	GetByID(ctx context.Context, id string) (destination.Destination, error)
}

type TripsHandler struct {
	trips        TripsStore
	users        UserLookup
	destinations DestinationGetter
	images       images.Store
	queue        JobEnqueuer
	subResources []TripScoped
}

func NewTripsHandler(trips TripsStore, users UserLookup, destinations DestinationGetter, imageStore images.Store, queue JobEnqueuer, subResources ...TripScoped) *TripsHandler {
	return &TripsHandler{
		trips:        trips,
		users:        users,
		destinations: destinations,
		images:       imageStore,
		queue:        queue,
		subResources: subResources,
	}
}

// tripView decorates a trip with its computed fields for responses.
type tripView struct {
	trip.Trip
	Progress         int     `json:"progress"`
	BudgetRemaining  float64 `json:"budgetRemaining"`
	BudgetPercentage int     `json:"budgetPercentage"`
}

func newTripView(t trip.Trip, now time.Time) tripView {
	return tripView{
		Trip:             t,
		Progress:         t.Progress(now),
		BudgetRemaining:  t.BudgetRemaining(),
		BudgetPercentage: t.BudgetPercentage(),
	}
}

func (h *TripsHandler) Create(ctx *gin.Context) {
	var req trip.CreateTripRequest

	if !BindJSON(ctx, &req) {
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity context")
		return
	}

	now := time.Now().UTC()
	t, err := trip.NewFromCreateRequest(req, userID, now)

	if err != nil {
		RespondBadRequest(ctx, err.Error(), nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if _, err := h.destinations.GetByID(cctx, t.DestinationID); err != nil {
		if errors.Is(err, destination.ErrNotFound) {
			RespondNotFound(ctx, "Destination not found")
			return
		}

		RespondInternal(ctx, "Could not verify destination")
		return
	}

	if err := h.trips.Create(cctx, t); err != nil {
		RespondInternal(ctx, "Could not create trip")
		return
	}

	RespondData(ctx, http.StatusCreated, "Trip created", newTripView(t, now))
}

func (h *TripsHandler) Get(ctx *gin.Context) {
	t, ok := requireTripAccess(ctx, h.trips, ctx.Param("tripId"), access.OpRead)
	if !ok {
		return
	}

	RespondData(ctx, http.StatusOK, "", newTripView(t, time.Now().UTC()))
}

func (h *TripsHandler) List(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity context")
		return
	}

	page, limit := utils.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	filter := trip.ListTripsFilter{
		OwnerID: userID,
		Sort:    ctx.Query("sort"),
		Order:   ctx.Query("order"),
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	if v := ctx.Query("status"); v != "" {
		s := trip.Status(v)
		filter.Status = &s
	}
	if v := ctx.Query("type"); v != "" {
		t := trip.Type(v)
		filter.Type = &t
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	trips, total, err := h.trips.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list trips")
		return
	}

	now := time.Now().UTC()
	views := make([]tripView, 0, len(trips))

	for _, t := range trips {
		views = append(views, newTripView(t, now))
	}

	RespondList(ctx, views, len(views), utils.NewPagination(page, limit, total))
}

func (h *TripsHandler) Update(ctx *gin.Context) {
	var req trip.UpdateTripRequest

	if !BindJSON(ctx, &req) {
		return
	}

	t, ok := requireTripAccess(ctx, h.trips, ctx.Param("tripId"), access.OpWriteTrip)
	if !ok {
		return
	}

	now := time.Now().UTC()

	if err := t.ApplyUpdate(req, now); err != nil {
		RespondBadRequest(ctx, err.Error(), nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.trips.Save(cctx, t); err != nil {
		RespondInternal(ctx, "Could not update trip")
		return
	}

	RespondData(ctx, http.StatusOK, "Trip updated", newTripView(t, now))
}

// Delete removes the trip and every document scoped to it. Sub-resources go
// first so a mid-sequence failure never leaves orphans behind a deleted trip.
func (h *TripsHandler) Delete(ctx *gin.Context) {
	t, ok := requireTripAccess(ctx, h.trips, ctx.Param("tripId"), access.OpDeleteTrip)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	for _, store := range h.subResources {
		if err := store.DeleteByTrip(cctx, t.ID); err != nil {
			RespondInternal(ctx, "Could not delete trip resources")
			return
		}
	}

	if err := h.trips.Delete(cctx, t.ID); err != nil {
		if errors.Is(err, trip.ErrNotFound) {
			RespondNotFound(ctx, "Trip not found")
			return
		}

		RespondInternal(ctx, "Could not delete trip")
		return
	}

	if t.CoverImage.ID != "" {
		_ = h.images.Delete(cctx, t.CoverImage.ID)
	}

	RespondData(ctx, http.StatusOK, "Trip deleted", nil)
}

func (h *TripsHandler) Stats(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	counts, err := h.trips.CountByStatus(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not load trip stats")
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	RespondData(ctx, http.StatusOK, "", gin.H{
		"total":     total,
		"planning":  counts[trip.StatusPlanning],
		"active":    counts[trip.StatusActive],
		"completed": counts[trip.StatusCompleted],
		"cancelled": counts[trip.StatusCancelled],
	})
}

func (h *TripsHandler) AddCollaborator(ctx *gin.Context) {
	var req trip.AddCollaboratorRequest

	if !BindJSON(ctx, &req) {
		return
	}

	t, ok := requireTripAccess(ctx, h.trips, ctx.Param("tripId"), access.OpManageCollaborators)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	invitee, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "No user found with that email")
			return
		}

		RespondInternal(ctx, "Could not look up user")
		return
	}

	role := req.Role
	if role == "" {
		role = "Viewer"
	}

	now := time.Now().UTC()
	collab, err := t.AddCollaborator(invitee.ID, role, now)

	if err != nil {
		switch {
		case errors.Is(err, trip.ErrOwnerCollaborator), errors.Is(err, trip.ErrDuplicateCollaborator):
			RespondConflict(ctx, err.Error())
		default:
			RespondInternal(ctx, "Could not add collaborator")
		}
		return
	}

	if err := h.trips.Save(cctx, t); err != nil {
		RespondInternal(ctx, "Could not add collaborator")
		return
	}

	h.enqueueInvite(ctx, t, invitee, role)

	RespondData(ctx, http.StatusCreated, "Collaborator added", collab)
}

// enqueueInvite is best effort; the collaborator is already persisted and a
// queue outage must not undo that.
func (h *TripsHandler) enqueueInvite(ctx *gin.Context, t trip.Trip, invitee user.User, role string) {
	userID, _ := middlewares.UserIDFromContext(ctx)
	inviterName := ""

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if inviter, err := h.users.GetByID(cctx, userID); err == nil {
		inviterName = inviter.FirstName + " " + inviter.LastName
	}

	payload, err := jobs.EncodePayload(jobs.JobSendCollaboratorInvite, jobs.SendCollaboratorInvitePayload{
		TripID:      t.ID,
		TripTitle:   t.Title,
		Email:       invitee.Email,
		InviterName: inviterName,
		Role:        role,
		RequestID:   requestIDFrom(ctx),
	})

	if err != nil {
		return
	}

	job, err := jobs.NewJob(jobs.JobSendCollaboratorInvite, payload, time.Now().UTC())

	if err != nil {
		return
	}

	_ = h.queue.Enqueue(cctx, job)
}

func (h *TripsHandler) RemoveCollaborator(ctx *gin.Context) {
	t, ok := requireTripAccess(ctx, h.trips, ctx.Param("tripId"), access.OpManageCollaborators)
	if !ok {
		return
	}

	if err := t.RemoveCollaborator(ctx.Param("collaboratorId")); err != nil {
		RespondNotFound(ctx, "Collaborator not found")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.trips.Save(cctx, t); err != nil {
		RespondInternal(ctx, "Could not remove collaborator")
		return
	}

	RespondData(ctx, http.StatusOK, "Collaborator removed", nil)
}

func (h *TripsHandler) UploadCoverImage(ctx *gin.Context) {
	t, ok := requireTripAccess(ctx, h.trips, ctx.Param("tripId"), access.OpWriteTrip)
	if !ok {
		return
	}

	file, header, err := ctx.Request.FormFile("image")

	if err != nil {
		RespondBadRequest(ctx, "An image file is required", nil)
		return
	}
	defer file.Close()

	if header.Size > maxAvatarBytes {
		RespondBadRequest(ctx, "Image must be smaller than 5MB", nil)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))

	if err != nil {
		RespondInternal(ctx, "Could not read image")
		return
	}

	cctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	img, err := h.images.Upload(cctx, data, header.Header.Get("Content-Type"), "trips")

	if err != nil {
		RespondUpstream(ctx, "Image upload failed")
		return
	}

	if t.CoverImage.ID != "" {
		_ = h.images.Delete(cctx, t.CoverImage.ID)
	}

	t.CoverImage = trip.Image{ID: img.ID, URL: img.URL}
	t.UpdatedAt = time.Now().UTC()

	if err := h.trips.Save(cctx, t); err != nil {
		RespondInternal(ctx, "Could not update cover image")
		return
	}

	RespondData(ctx, http.StatusOK, "Cover image updated", t.CoverImage)
}
