package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"seatly/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedKind string
	}{
		{"invalid input", apperrors.InvalidInput("bad"), http.StatusBadRequest, "INVALID_INPUT"},
		{"unauthenticated", apperrors.Unauthenticated("no token"), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"forbidden", apperrors.Forbidden("nope"), http.StatusForbidden, "FORBIDDEN"},
		{"not found", apperrors.NotFound("missing"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperrors.Conflict("taken"), http.StatusConflict, "CONFLICT"},
		{"transient", apperrors.Transient(errors.New("db down"), "store failed"), http.StatusServiceUnavailable, "TRANSIENT"},
		{"plain error", errors.New("boom"), http.StatusServiceUnavailable, "TRANSIENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)

			var body StandardApiResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)

			errFields, ok := body.Errors.(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.expectedKind, errFields["kind"])
		})
	}
}
