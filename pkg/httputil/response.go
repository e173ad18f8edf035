package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GraftonJ/repsy-be/pkg/errors"
)

// ErrorBody is the uniform error envelope: {"error":{"message":"..."}}
type ErrorBody struct {
	Error ErrorMessage `json:"error"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// StatusOf maps an application error code to an HTTP status.
func StatusOf(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrValidation:
		return http.StatusBadRequest
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrConflict:
		return http.StatusConflict
	case errors.ErrAuth:
		return http.StatusForbidden
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithError renders err as the uniform error body. Internal
// faults are logged with detail but reported generically.
func RespondWithError(c *gin.Context, err error) {
	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("request failed")
		message = "internal server error"
	}

	c.JSON(status, ErrorBody{Error: ErrorMessage{Message: message}})
}
