package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"seatly/internal/shared/apperrors"
	"seatly/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_id", userID.String())
	c.Set("user_role", "LIBRARIAN")

	principal, err := CurrentPrincipal(c)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, users.RoleLibrarian, principal.Role)
}

func TestCurrentPrincipalMissingClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		setup func(c *gin.Context)
	}{
		{"no user id", func(c *gin.Context) {}},
		{"malformed user id", func(c *gin.Context) {
			c.Set("user_id", "not-a-uuid")
			c.Set("user_role", "USER")
		}},
		{"unknown role", func(c *gin.Context) {
			c.Set("user_id", uuid.New().String())
			c.Set("user_role", "WIZARD")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			tt.setup(c)

			_, err := CurrentPrincipal(c)
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated))
		})
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		role         string
		required     []users.Role
		expectedCode int
	}{
		{"admin passes admin gate", "ADMIN", []users.Role{users.RoleAdmin}, http.StatusOK},
		{"user fails admin gate", "USER", []users.Role{users.RoleAdmin}, http.StatusForbidden},
		{"librarian passes staff gate", "LIBRARIAN", []users.Role{users.RoleLibrarian, users.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, engine := gin.CreateTestContext(w)

			engine.GET("/protected", func(c *gin.Context) {
				c.Set("user_role", tt.role)
			}, RequireRoles(tt.required...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRequireRolesWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	_, engine := gin.CreateTestContext(w)
	engine.GET("/protected", RequireRoles(users.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
