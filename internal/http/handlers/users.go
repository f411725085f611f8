package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/domain/trip"
	"github.com/traveltrack/traveltrack/internal/domain/user"
	"github.com/traveltrack/traveltrack/internal/http/middlewares"
	"github.com/traveltrack/traveltrack/internal/images"
	"github.com/traveltrack/traveltrack/internal/repo/postgres"
	"github.com/traveltrack/traveltrack/internal/security"
	"github.com/traveltrack/traveltrack/internal/utils"
)

const maxAvatarBytes = 5 << 20

type UsersAdminStore interface {
	UsersStore
	List(ctx context.Context, filter postgres.ListUsersFilter) ([]user.User, int, error)
	Delete(ctx context.Context, id string) error
}

type TripStatsSource interface {
	StatsByOwner(ctx context.Context, ownerID string) (trip.OwnerStats, error)
}

type UsersHandler struct {
	users     UsersAdminStore
	tripStats TripStatsSource
	images    images.Store
}

func NewUsersHandler(users UsersAdminStore, tripStats TripStatsSource, imageStore images.Store) *UsersHandler {
	return &UsersHandler{
		users:     users,
		tripStats: tripStats,
		images:    imageStore,
	}
}

func (h *UsersHandler) loadCurrent(ctx *gin.Context) (user.User, bool) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity context")
		return user.User{}, false
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return user.User{}, false
		}

		RespondInternal(ctx, "Could not load user")
		return user.User{}, false
	}

	return u, true
}

func (h *UsersHandler) UpdateDetails(ctx *gin.Context) {
	var req user.UpdateDetailsRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, ok := h.loadCurrent(ctx)
	if !ok {
		return
	}

	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	u.UpdatedAt = time.Now().UTC()

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not update details")
		return
	}

	RespondData(ctx, http.StatusOK, "Details updated", u)
}

func (h *UsersHandler) UpdatePassword(ctx *gin.Context) {
	var req user.UpdatePasswordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, ok := h.loadCurrent(ctx)
	if !ok {
		return
	}

	if err := security.CheckPassword(u.PasswordHash, req.CurrentPassword); err != nil {
		RespondUnauthorized(ctx, "Current password is incorrect")
		return
	}

	hash, err := security.HashPassword(req.NewPassword)

	if err != nil {
		RespondInternal(ctx, "Could not update password")
		return
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not update password")
		return
	}

	RespondData(ctx, http.StatusOK, "Password updated", nil)
}

func (h *UsersHandler) UpdatePreferences(ctx *gin.Context) {
	var req user.UpdatePreferencesRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, ok := h.loadCurrent(ctx)
	if !ok {
		return
	}

	if req.Currency != nil {
		u.Preferences.Currency = *req.Currency
	}
	if req.Language != nil {
		u.Preferences.Language = *req.Language
	}
	if req.Notifications != nil {
		u.Preferences.Notifications = *req.Notifications
	}
	u.UpdatedAt = time.Now().UTC()

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not update preferences")
		return
	}

	RespondData(ctx, http.StatusOK, "Preferences updated", u.Preferences)
}

func (h *UsersHandler) UploadAvatar(ctx *gin.Context) {
	u, ok := h.loadCurrent(ctx)
	if !ok {
		return
	}

	file, header, err := ctx.Request.FormFile("avatar")

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

	img, err := h.images.Upload(cctx, data, header.Header.Get("Content-Type"), "avatars")

	if err != nil {
		RespondUpstream(ctx, "Image upload failed")
		return
	}

	// drop the previous avatar, best effort
	if u.Avatar.ID != "" {
		_ = h.images.Delete(cctx, u.Avatar.ID)
	}

	u.Avatar = user.Image{ID: img.ID, URL: img.URL}
	u.UpdatedAt = time.Now().UTC()

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not update avatar")
		return
	}

	RespondData(ctx, http.StatusOK, "Avatar updated", u.Avatar)
}

// DeleteAccount hard-deletes the caller. Trips they own survive with their
// own lifecycle; only the user row and avatar go.
func (h *UsersHandler) DeleteAccount(ctx *gin.Context) {
	u, ok := h.loadCurrent(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.users.Delete(cctx, u.ID); err != nil {
		RespondInternal(ctx, "Could not delete account")
		return
	}

	if u.Avatar.ID != "" {
		_ = h.images.Delete(cctx, u.Avatar.ID)
	}

	RespondData(ctx, http.StatusOK, "Account deleted", nil)
}

// Admin surface.

func (h *UsersHandler) AdminListUsers(ctx *gin.Context) {
	page, limit := utils.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	filter := postgres.ListUsersFilter{
		Role:   ctx.Query("role"),
		Search: ctx.Query("search"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, total, err := h.users.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	RespondList(ctx, users, len(users), utils.NewPagination(page, limit, total))
}

func (h *UsersHandler) AdminGetUser(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not load user")
		return
	}

	RespondData(ctx, http.StatusOK, "", u)
}

func (h *UsersHandler) AdminUpdateUser(ctx *gin.Context) {
	var req user.AdminUpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not load user")
		return
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	u.UpdatedAt = time.Now().UTC()

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not update user")
		return
	}

	RespondData(ctx, http.StatusOK, "User updated", u)
}

func (h *UsersHandler) AdminDeleteUser(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.users.Delete(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not delete user")
		return
	}

	RespondData(ctx, http.StatusOK, "User deleted", nil)
}

func (h *UsersHandler) Stats(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	stats, err := h.tripStats.StatsByOwner(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not load stats")
		return
	}

	RespondData(ctx, http.StatusOK, "", stats)
}
