package users

import (
	"time"

	"seatly/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleLibrarian Role = "LIBRARIAN"
	RoleAdmin     Role = "ADMIN"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'USER'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	IsDeleted bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserRequest carries a partial profile edit. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=2,max=100"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Principal is the authenticated actor issuing a request. It is threaded
// explicitly through every service call instead of living in ambient state.
type Principal struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// PrincipalFromContext builds the authenticated principal from the claims the
// JWT middleware stored in the gin context. Services never reach into the
// context themselves; controllers resolve the principal once and pass it down.
func PrincipalFromContext(c *gin.Context) (Principal, error) {
	userIDValue, exists := c.Get("user_id")
	if !exists {
		return Principal{}, apperrors.Unauthenticated("no authenticated user in request")
	}

	userIDStr, ok := userIDValue.(string)
	if !ok {
		return Principal{}, apperrors.Unauthenticated("malformed user id claim")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return Principal{}, apperrors.Unauthenticated("malformed user id claim")
	}

	roleValue, _ := c.Get("user_role")
	roleStr, _ := roleValue.(string)
	if !IsValidRole(roleStr) {
		return Principal{}, apperrors.Unauthenticated("unknown role claim")
	}

	return Principal{UserID: userID, Role: Role(roleStr)}, nil
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleLibrarian), string(RoleAdmin):
		return true
	default:
		return false
	}
}

// IsPrivileged reports whether the role is exempt from ordinary booking
// restrictions and authorized for cancel/block operations.
func (r Role) IsPrivileged() bool {
	return r == RoleLibrarian || r == RoleAdmin
}
