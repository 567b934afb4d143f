package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/quicksplit/internal/auth"
	"github.com/mmynk/quicksplit/internal/models"
	"github.com/mmynk/quicksplit/internal/service"
	"github.com/mmynk/quicksplit/internal/storage"
)

// respondError maps domain errors to HTTP status codes. Validation errors
// reject the request with 400 and no partial mutation has occurred; unknown
// errors are logged and masked as 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrParticipantNotFound),
		errors.Is(err, service.ErrClaimNotFound):
		status = http.StatusNotFound

	case errors.Is(err, models.ErrInvalidPortions),
		errors.Is(err, models.ErrInvalidGroupSize),
		errors.Is(err, models.ErrMissingParticipant),
		errors.Is(err, models.ErrInvalidUnitPrice),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrMissingName),
		errors.Is(err, service.ErrMissingParticipantName),
		errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized

	case errors.Is(err, auth.ErrEmailExists):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondBindError reports a malformed or incomplete request body.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}
