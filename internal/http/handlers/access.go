package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/access"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/domain/trip"
	"github.com/traveltrack/traveltrack/internal/http/middlewares"
)

type TripGetter interface {
	GetByID(ctx context.Context, id string) (trip.Trip, error)
}

// requireTripAccess loads the backing trip and applies the access guard.
// Existence is always checked before authorization: a missing trip is a 404
// for everyone, a present trip the caller may not touch is a 403. On failure
// the response has already been written.
func requireTripAccess(ctx *gin.Context, repo TripGetter, tripID string, op access.Op) (trip.Trip, bool) {
	userID, _ := middlewares.UserIDFromContext(ctx)

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	t, err := repo.GetByID(cctx, tripID)

	if err != nil {
		if errors.Is(err, trip.ErrNotFound) {
			RespondNotFound(ctx, "Trip not found")
			return trip.Trip{}, false
		}

		RespondInternal(ctx, "Could not load trip")
		return trip.Trip{}, false
	}

	if !access.Decide(t.OwnerID, t.AccessList(), userID, op) {
		RespondForbidden(ctx, "Not authorized to access this trip")
		return trip.Trip{}, false
	}

	return t, true
}
