package response

import (
	"net/http"

	"seatly/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps an error's kind to an HTTP status and writes the
// standard error envelope. The kind travels in the errors field so API
// clients can branch on it without parsing messages.
func RespondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	var code int
	switch kind {
	case apperrors.KindInvalidInput:
		code = http.StatusBadRequest
	case apperrors.KindUnauthenticated:
		code = http.StatusUnauthorized
	case apperrors.KindForbidden:
		code = http.StatusForbidden
	case apperrors.KindNotFound:
		code = http.StatusNotFound
	case apperrors.KindConflict:
		code = http.StatusConflict
	case apperrors.KindTransient:
		code = http.StatusServiceUnavailable
	default:
		code = http.StatusInternalServerError
	}

	RespondJSON(c, "error", code, err.Error(), nil, map[string]interface{}{
		"kind": string(kind),
	})
}
