package users

import (
	"context"

	"seatly/internal/shared/apperrors"
	"seatly/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service covers profile reads and edits plus the admin-gated soft delete.
type Service interface {
	GetUser(ctx context.Context, id uuid.UUID, principal Principal) (*User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest, principal Principal) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID, principal Principal) (*User, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID, principal Principal) (*User, error) {
	if principal.UserID != id && !principal.Role.IsPrivileged() {
		return nil, apperrors.Forbidden("cannot view another user's profile")
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateUser applies a partial edit. A new password is re-hashed only when it
// differs from the stored one.
func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest, principal Principal) (*User, error) {
	if principal.UserID != id && principal.Role != RoleAdmin {
		return nil, apperrors.Forbidden("cannot edit another user's profile")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*req.Password)) != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, apperrors.Transient(err, "failed to hash password")
			}
			user.Password = string(hashed)
		}
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser marks the account as deleted. The row stays in place; auth
// lookups and profile reads skip it from here on.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID, principal Principal) (*User, error) {
	if principal.Role != RoleAdmin {
		return nil, apperrors.Forbidden("only an admin can delete accounts")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsDeleted = true
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.log.LogUserDeactivated(ctx, user.ID.String(), principal.UserID.String())
	return user, nil
}
