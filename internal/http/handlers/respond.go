package handlers

import (
	"errors"
	"net/http"

	"github.com/clickfit/clickfit/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// Every endpoint shares the same envelope: {success, message?, data?}.
// Failures always carry success=false and a human-readable message.

func RespondData(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func RespondMessage(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func RespondList(ctx *gin.Context, data interface{}, count int) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   count,
	})
}

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, message)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message)
}

// respondServiceError maps the service error taxonomy onto status codes.
// Unclassified backend errors surface their message with a 500, matching
// the behavior this API has always had.
func respondServiceError(ctx *gin.Context, err error, fallback string) {
	var ve *user.ValidationError

	switch {
	case errors.As(err, &ve):
		RespondBadRequest(ctx, ve.Message)
	case errors.Is(err, user.ErrNotFound):
		RespondNotFound(ctx, "User not found")
	case errors.Is(err, user.ErrEmailTaken):
		RespondConflict(ctx, "Email is already in use")
	case errors.Is(err, user.ErrInvalidCredentials):
		RespondUnauthorized(ctx, "Invalid credentials")
	case errors.Is(err, user.ErrDeactivated):
		RespondUnauthorized(ctx, "Account is deactivated")
	default:
		msg := err.Error()

		if msg == "" {
			msg = fallback
		}

		RespondInternal(ctx, msg)
	}
}
