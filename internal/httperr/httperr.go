package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code      string `json:"error_code"`
	Message   string `json:"message"`
	Kind      Kind   `json:"kind,omitempty"`
	Shortfall int    `json:"shortfall,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor maps a business kind to its HTTP status.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindSlotUnavailable, KindConflict, KindInvalidTransition:
		return http.StatusConflict
	case KindInsufficientPoints:
		return http.StatusPaymentRequired
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError renders err. Business errors keep their kind and message;
// anything else is logged and reported as an opaque 500.
func FromError(c *gin.Context, err error) {
	be, ok := AsBusiness(err)
	if !ok {
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		Internal(c, "internal_error", "Unexpected error, please try again.")
		return
	}

	c.JSON(StatusFor(be.Kind), HTTPError{
		Code:      be.Code,
		Message:   be.Message,
		Kind:      be.Kind,
		Shortfall: be.Shortfall,
	})
}
