package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/you/pomodorosvc/domain"
)

// MapErrorToStatusCode maps domain error kinds to HTTP status codes
func MapErrorToStatusCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindAlreadyExists:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the domain message for known failures and fallback otherwise.
// Unknown failures are logged with the request's logger.
func respondError(c *gin.Context, err error, fallback string) {
	status := MapErrorToStatusCode(err)

	var de *domain.Error
	if status == http.StatusInternalServerError || !errors.As(err, &de) {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(fallback)
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	c.JSON(status, gin.H{"error": de.Message})
}

// currentUserID returns the authenticated user's ID set by the auth middleware
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return "", false
	}
	return userID, true
}
