package auth

import (
	"context"
	"testing"
	"time"

	"seatly/internal/shared/config"
	"seatly/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database")
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&users.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func setupService(t *testing.T) Service {
	return NewService(NewRepository(setupTestDB(t)), testConfig())
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		FirstName: "Riley",
		LastName:  "Reader",
		Email:     "riley@example.com",
		Password:  "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "riley@example.com", registered.User.Email)
	assert.Equal(t, string(users.RoleUser), registered.User.Role)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)

	loggedIn, err := service.Login(ctx, &LoginRequest{
		Email:    "riley@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = service.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterCannotClaimPrivilegedRole(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	for _, role := range []string{"ADMIN", "LIBRARIAN", "admin", "nonsense"} {
		req := registerRequest()
		req.Email = role + "@example.com"
		req.Role = role

		resp, err := service.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, string(users.RoleUser), resp.User.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = service.Login(ctx, &LoginRequest{
		Email:    "riley@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	service := setupService(t)

	_, err := service.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	claims, err := service.ValidateToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshToken(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	pair, err := service.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token is not a refresh token.
	_, err = service.RefreshToken(ctx, registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoginRejectsDeletedAccount(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db), testConfig())
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	err = db.Model(&users.User{}).
		Where("email = ?", "riley@example.com").
		Update("is_deleted", true).Error
	require.NoError(t, err)

	_, err = service.Login(ctx, &LoginRequest{
		Email:    "riley@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
