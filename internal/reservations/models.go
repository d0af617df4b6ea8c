package reservations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
)

// Reservation is an exclusive claim on a seat for the half-open interval
// [StartTime, EndTime). It references its seat and owner by identifier only;
// there is no live object graph between entities.
type Reservation struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;index;not null"`
	SeatID      uuid.UUID  `json:"seat_id" gorm:"type:uuid;index;not null"`
	StartTime   time.Time  `json:"start_time" gorm:"not null"`
	EndTime     time.Time  `json:"end_time" gorm:"not null"`
	Status      Status     `json:"status" gorm:"type:varchar(20);default:'RESERVED'"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusReserved
	}
	return nil
}

// IsLive reports whether the reservation still claims its interval.
// Cancelled reservations are immutable and never conflict.
func (r *Reservation) IsLive() bool {
	return r.Status == StatusReserved || r.Status == StatusActive
}

func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

func (r *Reservation) Cancel() {
	r.Status = StatusCancelled
	now := time.Now()
	r.CancelledAt = &now
	r.UpdatedAt = now
}

func (r *Reservation) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Overlaps reports whether two half-open intervals share any instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CreateReservationRequest represents the booking request payload
type CreateReservationRequest struct {
	SeatID    string    `json:"seat_id" validate:"required,uuid"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

// ListQuery filters reservation listings; exactly one field should be set.
type ListQuery struct {
	UserID *uuid.UUID
	SeatID *uuid.UUID
}
