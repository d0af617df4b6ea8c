package seats

import (
	"context"
	"errors"

	"seatly/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	FindAll(ctx context.Context) ([]Seat, error)
	Create(ctx context.Context, seat *Seat) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*Seat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("seat %s not found", id)
		}
		return nil, apperrors.Transient(err, "failed to load seat %s", id)
	}
	return &seat, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Seat, error) {
	var seatList []Seat
	err := r.db.WithContext(ctx).Order("number ASC").Find(&seatList).Error
	if err != nil {
		return nil, apperrors.Transient(err, "failed to list seats")
	}
	return seatList, nil
}

func (r *repository) Create(ctx context.Context, seat *Seat) error {
	if err := r.db.WithContext(ctx).Create(seat).Error; err != nil {
		return apperrors.Transient(err, "failed to create seat")
	}
	return nil
}

func (r *repository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*Seat, error) {
	seat, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seat.Blocked = blocked
	if err := r.db.WithContext(ctx).Model(&Seat{}).Where("id = ?", id).Update("blocked", blocked).Error; err != nil {
		return nil, apperrors.Transient(err, "failed to update seat %s", id)
	}
	return seat, nil
}
