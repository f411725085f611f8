package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/domain/destination"
	"github.com/traveltrack/traveltrack/internal/http/middlewares"
	"github.com/traveltrack/traveltrack/internal/images"
	"github.com/traveltrack/traveltrack/internal/utils"
)

type DestinationsStore interface {
	Create(ctx context.Context, d destination.Destination) error
	GetByID(ctx context.Context, id string) (destination.Destination, error)
	Save(ctx context.Context, d destination.Destination) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter destination.ListFilter) ([]destination.Destination, int, error)
	IncrementVisitCount(ctx context.Context, id string) error
}

type DestinationsHandler struct {
	destinations DestinationsStore
	users        UserLookup
	images       images.Store
}

func NewDestinationsHandler(destinations DestinationsStore, users UserLookup, imageStore images.Store) *DestinationsHandler {
	return &DestinationsHandler{
		destinations: destinations,
		users:        users,
		images:       imageStore,
	}
}

func (h *DestinationsHandler) loadByID(ctx *gin.Context) (destination.Destination, bool) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	d, err := h.destinations.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, destination.ErrNotFound) {
			RespondNotFound(ctx, "Destination not found")
			return destination.Destination{}, false
		}

		RespondInternal(ctx, "Could not load destination")
		return destination.Destination{}, false
	}

	return d, true
}

func (h *DestinationsHandler) save(ctx *gin.Context, d destination.Destination, status int, message string, data any) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.destinations.Save(cctx, d); err != nil {
		RespondInternal(ctx, "Could not save destination")
		return
	}

	RespondData(ctx, status, message, data)
}

func (h *DestinationsHandler) List(ctx *gin.Context) {
	page, limit := utils.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	filter := destination.ListFilter{
		Country:  ctx.Query("country"),
		City:     ctx.Query("city"),
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
		Sort:     ctx.Query("sort"),
		Page:     page,
		Limit:    limit,
	}

	if v := ctx.Query("minRating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRating = f
		}
	}
	if v := ctx.Query("maxBudget"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxBudget = f
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	destinations, total, err := h.destinations.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list destinations")
		return
	}

	RespondList(ctx, destinations, len(destinations), utils.NewPagination(page, limit, total))
}

// Popular is the list ordered by visits, capped small for landing pages.
func (h *DestinationsHandler) Popular(ctx *gin.Context) {
	limit := 10
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= utils.MaxLimit {
			limit = n
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	destinations, _, err := h.destinations.List(cctx, destination.ListFilter{
		Sort:  "popular",
		Page:  1,
		Limit: limit,
	})

	if err != nil {
		RespondInternal(ctx, "Could not list destinations")
		return
	}

	RespondData(ctx, http.StatusOK, "", destinations)
}

func (h *DestinationsHandler) Search(ctx *gin.Context) {
	q := ctx.Query("q")

	if q == "" {
		RespondBadRequest(ctx, "A search query is required", nil)
		return
	}

	page, limit := utils.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	destinations, total, err := h.destinations.List(cctx, destination.ListFilter{
		Search: q,
		Page:   page,
		Limit:  limit,
	})

	if err != nil {
		RespondInternal(ctx, "Could not search destinations")
		return
	}

	RespondList(ctx, destinations, len(destinations), utils.NewPagination(page, limit, total))
}

func (h *DestinationsHandler) Get(ctx *gin.Context) {
	d, ok := h.loadByID(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// best effort; the read must not fail on a counter race
	if err := h.destinations.IncrementVisitCount(cctx, d.ID); err == nil {
		d.VisitCount++
	}

	RespondData(ctx, http.StatusOK, "", d)
}

func (h *DestinationsHandler) Create(ctx *gin.Context) {
	var req destination.CreateDestinationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity context")
		return
	}

	d := destination.NewFromCreateRequest(req, userID, time.Now().UTC())

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.destinations.Create(cctx, *d); err != nil {
		RespondInternal(ctx, "Could not create destination")
		return
	}

	RespondData(ctx, http.StatusCreated, "Destination created", d)
}

func (h *DestinationsHandler) Update(ctx *gin.Context) {
	var req destination.UpdateDestinationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	d, ok := h.loadByID(ctx)
	if !ok {
		return
	}

	d.ApplyUpdate(req, time.Now().UTC())
	h.save(ctx, d, http.StatusOK, "Destination updated", d)
}

func (h *DestinationsHandler) Delete(ctx *gin.Context) {
	d, ok := h.loadByID(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.destinations.Delete(cctx, d.ID); err != nil {
		RespondInternal(ctx, "Could not delete destination")
		return
	}

	for _, img := range d.Images {
		if img.ID != "" {
			_ = h.images.Delete(cctx, img.ID)
		}
	}

	RespondData(ctx, http.StatusOK, "Destination deleted", nil)
}

func (h *DestinationsHandler) AddQuickRating(ctx *gin.Context) {
	var req destination.AddQuickRatingRequest

	if !BindJSON(ctx, &req) {
		return
	}

	d, ok := h.loadByID(ctx)
	if !ok {
		return
	}

	d.AddQuickRating(req.Rating, time.Now().UTC())
	h.save(ctx, d, http.StatusOK, "Rating added", d.Rating)
}

func (h *DestinationsHandler) ListReviews(ctx *gin.Context) {
	d, ok := h.loadByID(ctx)
	if !ok {
		return
	}

	page, limit := utils.ParsePage(ctx.Query("page"), ctx.Query("limit"))
	total := len(d.Reviews)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	RespondList(ctx, d.Reviews[start:end], end-start, utils.NewPagination(page, limit, total))
}

func (h *DestinationsHandler) AddReview(ctx *gin.Context) {
	var req destination.AddReviewRequest

	if !BindJSON(ctx, &req) {
		return
	}

	d, ok := h.loadByID(ctx)
	if !ok {
		return
	}

	userID, _ := middlewares.UserIDFromContext(ctx)
	userName := h.lookupUserName(ctx, userID)

	review, err := d.AddReview(userID, userName, req, time.Now().UTC())

	if err != nil {
		RespondConflict(ctx, "You have already reviewed this destination")
		return
	}

	h.save(ctx, d, http.StatusCreated, "Review added", review)
}

func (h *DestinationsHandler) lookupUserName(ctx *gin.Context, userID string) string {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		return ""
	}

	return u.FirstName + " " + u.LastName
}

func (h *DestinationsHandler) UpdateReview(ctx *gin.Context) {
	var req destination.UpdateReviewRequest

	if !BindJSON(ctx, &req) {
		return
	}

	d, ok := h.loadByID(ctx)
	if !ok {
		return
	}

	userID, _ := middlewares.UserIDFromContext(ctx)
	review, err := d.UpdateReview(userID, ctx.Param("reviewId"), req, time.Now().UTC())

	if err != nil {
		RespondNotFound(ctx, "Review not found")
		return
	}

	h.save(ctx, d, http.StatusOK, "Review updated", review)
}

func (h *DestinationsHandler) DeleteReview(ctx *gin.Context) {
	d, ok := h.loadByID(ctx)
	if !ok {
		return
	}

	userID, _ := middlewares.UserIDFromContext(ctx)

	if err := d.DeleteReview(userID, ctx.Param("reviewId"), time.Now().UTC()); err != nil {
		RespondNotFound(ctx, "Review not found")
		return
	}

	h.save(ctx, d, http.StatusOK, "Review deleted", nil)
}

func (h *DestinationsHandler) ToggleReviewHelpful(ctx *gin.Context) {
	d, ok := h.loadByID(ctx)
	if !ok {
		return
	}

	userID, _ := middlewares.UserIDFromContext(ctx)
	review, err := d.ToggleReviewHelpful(userID, ctx.Param("reviewId"), time.Now().UTC())

	if err != nil {
		RespondNotFound(ctx, "Review not found")
		return
	}

	h.save(ctx, d, http.StatusOK, "Review helpful vote updated", gin.H{
		"reviewId":     review.ID,
		"helpfulCount": review.HelpfulCount(),
	})
}

func (h *DestinationsHandler) UploadImage(ctx *gin.Context) {
	d, ok := h.loadByID(ctx)
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

	img, err := h.images.Upload(cctx, data, header.Header.Get("Content-Type"), "destinations")

	if err != nil {
		RespondUpstream(ctx, "Image upload failed")
		return
	}

	d.Images = append(d.Images, destination.Image{
		ID:      img.ID,
		URL:     img.URL,
		Caption: ctx.PostForm("caption"),
	})
	d.UpdatedAt = time.Now().UTC()

	h.save(ctx, d, http.StatusOK, "Image added", d.Images)
}
