package reservations

import (
	"context"
	"errors"
	"sync"
	"time"

	"seatly/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// CreateIfFree atomically checks the seat for overlapping live
	// reservations and inserts the new one. Returns a Conflict error when
	// any overlap exists; the check and insert are a single unit.
	CreateIfFree(ctx context.Context, reservation *Reservation) error

	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
	FindBySeat(ctx context.Context, seatID uuid.UUID) ([]Reservation, error)

	// FindSeatWindowsInRange returns live reservations for a seat
	// overlapping [from, to), ordered by start time.
	FindSeatWindowsInRange(ctx context.Context, seatID uuid.UUID, from, to time.Time) ([]Reservation, error)

	Save(ctx context.Context, reservation *Reservation) error
}

type repository struct {
	db *gorm.DB

	// Per-seat mutual exclusion for the check-then-insert region. This
	// serializes concurrent creations on one seat within this process; the
	// tstzrange exclusion constraint backstops multi-instance deployments.
	seatLocks sync.Map
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) lockSeat(seatID uuid.UUID) *sync.Mutex {
	lock, _ := r.seatLocks.LoadOrStore(seatID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (r *repository) CreateIfFree(ctx context.Context, reservation *Reservation) error {
	mu := r.lockSeat(reservation.SeatID)
	mu.Lock()
	defer mu.Unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Reservation{}).
			Where("seat_id = ?", reservation.SeatID).
			Where("status IN ?", []Status{StatusReserved, StatusActive}).
			Where("start_time < ? AND ? < end_time", reservation.EndTime, reservation.StartTime).
			Count(&count).Error
		if err != nil {
			return apperrors.Transient(err, "failed to check seat %s for conflicts", reservation.SeatID)
		}

		if count > 0 {
			return apperrors.Conflict("seat %s is already booked for the requested interval", reservation.SeatID)
		}

		if err := tx.Create(reservation).Error; err != nil {
			return apperrors.Transient(err, "failed to create reservation")
		}
		return nil
	})

	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reservation %s not found", id)
		}
		return nil, apperrors.Transient(err, "failed to load reservation %s", id)
	}
	return &reservation, nil
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	var reservationList []Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&reservationList).Error
	if err != nil {
		return nil, apperrors.Transient(err, "failed to list reservations for user %s", userID)
	}
	return reservationList, nil
}

func (r *repository) FindBySeat(ctx context.Context, seatID uuid.UUID) ([]Reservation, error) {
	var reservationList []Reservation
	err := r.db.WithContext(ctx).
		Where("seat_id = ?", seatID).
		Order("start_time ASC").
		Find(&reservationList).Error
	if err != nil {
		return nil, apperrors.Transient(err, "failed to list reservations for seat %s", seatID)
	}
	return reservationList, nil
}

func (r *repository) FindSeatWindowsInRange(ctx context.Context, seatID uuid.UUID, from, to time.Time) ([]Reservation, error) {
	var reservationList []Reservation
	err := r.db.WithContext(ctx).
		Where("seat_id = ?", seatID).
		Where("status IN ?", []Status{StatusReserved, StatusActive}).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&reservationList).Error
	if err != nil {
		return nil, apperrors.Transient(err, "failed to load seat windows for seat %s", seatID)
	}
	return reservationList, nil
}

func (r *repository) Save(ctx context.Context, reservation *Reservation) error {
	if err := r.db.WithContext(ctx).Save(reservation).Error; err != nil {
		return apperrors.Transient(err, "failed to save reservation %s", reservation.ID)
	}
	return nil
}
