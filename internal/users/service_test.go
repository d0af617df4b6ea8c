package users

import (
	"context"
	"testing"

	"seatly/internal/shared/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role Role, password string) *User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		ID:        uuid.New(),
		FirstName: "Riley",
		LastName:  "Reader",
		Email:     uuid.NewString() + "@example.com",
		Password:  string(hashed),
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func asPrincipal(u *User) Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

func strPtr(s string) *string { return &s }

func TestGetUserSelfAndStaff(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))
	ctx := context.Background()

	owner := seedUser(t, db, RoleUser, "password123")
	other := seedUser(t, db, RoleUser, "password123")
	librarian := seedUser(t, db, RoleLibrarian, "password123")

	got, err := service.GetUser(ctx, owner.ID, asPrincipal(owner))
	require.NoError(t, err)
	assert.Equal(t, owner.Email, got.Email)

	_, err = service.GetUser(ctx, owner.ID, asPrincipal(other))
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	_, err = service.GetUser(ctx, owner.ID, asPrincipal(librarian))
	assert.NoError(t, err)
}

func TestGetUserUnknown(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))

	admin := seedUser(t, db, RoleAdmin, "password123")

	_, err := service.GetUser(context.Background(), uuid.New(), asPrincipal(admin))
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateUserPartialFields(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))
	ctx := context.Background()

	owner := seedUser(t, db, RoleUser, "password123")

	updated, err := service.UpdateUser(ctx, owner.ID, &UpdateUserRequest{
		FirstName: strPtr("Sam"),
	}, asPrincipal(owner))
	require.NoError(t, err)
	assert.Equal(t, "Sam", updated.FirstName)
	assert.Equal(t, "Reader", updated.LastName)
	assert.Equal(t, owner.Password, updated.Password)

	updated, err = service.UpdateUser(ctx, owner.ID, &UpdateUserRequest{
		LastName: strPtr("Stacks"),
	}, asPrincipal(owner))
	require.NoError(t, err)
	assert.Equal(t, "Sam", updated.FirstName)
	assert.Equal(t, "Stacks", updated.LastName)
}

func TestUpdateUserRehashesChangedPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))
	ctx := context.Background()

	owner := seedUser(t, db, RoleUser, "password123")

	updated, err := service.UpdateUser(ctx, owner.ID, &UpdateUserRequest{
		Password: strPtr("newsecret99"),
	}, asPrincipal(owner))
	require.NoError(t, err)
	assert.NotEqual(t, owner.Password, updated.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newsecret99")))

	// Re-submitting the current password keeps the stored hash.
	again, err := service.UpdateUser(ctx, owner.ID, &UpdateUserRequest{
		Password: strPtr("newsecret99"),
	}, asPrincipal(owner))
	require.NoError(t, err)
	assert.Equal(t, updated.Password, again.Password)
}

func TestUpdateUserAuthorization(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))
	ctx := context.Background()

	owner := seedUser(t, db, RoleUser, "password123")
	other := seedUser(t, db, RoleUser, "password123")
	admin := seedUser(t, db, RoleAdmin, "password123")

	_, err := service.UpdateUser(ctx, owner.ID, &UpdateUserRequest{
		FirstName: strPtr("Mallory"),
	}, asPrincipal(other))
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	updated, err := service.UpdateUser(ctx, owner.ID, &UpdateUserRequest{
		FirstName: strPtr("Sam"),
	}, asPrincipal(admin))
	require.NoError(t, err)
	assert.Equal(t, "Sam", updated.FirstName)
}

func TestDeleteUserAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))
	ctx := context.Background()

	target := seedUser(t, db, RoleUser, "password123")
	librarian := seedUser(t, db, RoleLibrarian, "password123")

	_, err := service.DeleteUser(ctx, target.ID, asPrincipal(target))
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	_, err = service.DeleteUser(ctx, target.ID, asPrincipal(librarian))
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestDeleteUserSoftDeletes(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))
	ctx := context.Background()

	target := seedUser(t, db, RoleUser, "password123")
	admin := seedUser(t, db, RoleAdmin, "password123")

	deleted, err := service.DeleteUser(ctx, target.ID, asPrincipal(admin))
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	// The row survives, but reads treat the account as gone.
	var stored User
	require.NoError(t, db.First(&stored, "id = ?", target.ID).Error)
	assert.True(t, stored.IsDeleted)

	_, err = service.GetUser(ctx, target.ID, asPrincipal(admin))
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
