package statistics

import (
	"context"

	"seatly/internal/reservations"
	"seatly/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// FindLiveByUser returns the user's RESERVED and ACTIVE reservations,
	// ordered by start time.
	FindLiveByUser(ctx context.Context, userID uuid.UUID) ([]reservations.Reservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindLiveByUser(ctx context.Context, userID uuid.UUID) ([]reservations.Reservation, error) {
	var reservationList []reservations.Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", []reservations.Status{reservations.StatusReserved, reservations.StatusActive}).
		Order("start_time ASC").
		Find(&reservationList).Error
	if err != nil {
		return nil, apperrors.Transient(err, "failed to load reservations for user %s", userID)
	}
	return reservationList, nil
}
