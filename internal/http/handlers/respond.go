package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/http/middlewares"
	"github.com/traveltrack/traveltrack/internal/utils"
)

// Every response carries the same envelope: success, optional message,
// optional data, optional per-field errors.

type Envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Count      *int              `json:"count,omitempty"`
	Data       any               `json:"data,omitempty"`
	Errors     any               `json:"errors,omitempty"`
	Pagination *utils.Pagination `json:"pagination,omitempty"`
	RequestID  string            `json:"requestId,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(middlewares.CtxRequestID)

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondData(ctx *gin.Context, status int, message string, data any) {
	ctx.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondList writes a collection with its page item count and pagination
// block. count is the number of items in this page, not the total.
func RespondList(ctx *gin.Context, data any, count int, pagination utils.Pagination) {
	ctx.JSON(http.StatusOK, Envelope{
		Success:    true,
		Count:      &count,
		Data:       data,
		Pagination: &pagination,
	})
}

func RespondError(ctx *gin.Context, status int, message string, errs any) {
	ctx.JSON(status, Envelope{
		Success:   false,
		Message:   message,
		Errors:    errs,
		RequestID: requestIDFrom(ctx),
	})
}

func RespondBadRequest(ctx *gin.Context, message string, errs any) {
	RespondError(ctx, http.StatusBadRequest, message, errs)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message, nil)
}

func RespondForbidden(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusForbidden, message, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message, nil)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message, nil)
}

func RespondUpstream(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadGateway, message, nil)
}
