package seats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seat is a bookable physical resource in the reading hall.
type Seat struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Number    string    `json:"number" gorm:"not null"`
	Location  string    `json:"location"`
	Blocked   bool      `json:"blocked" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TimeSlot is one contiguous stretch of a seat's day, tagged free or occupied.
// The slots returned for a day concatenate to exactly the 24h window.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Free  bool      `json:"free"`
}

// ReservationWindow is the slice of reservation state the availability engine
// needs. Declared here so the reservations package can feed us without this
// package importing it back (avoids a circular dependency).
type ReservationWindow struct {
	ID    uuid.UUID `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ReservationSource supplies live (non-cancelled) reservation windows
// overlapping [from, to) for a seat.
type ReservationSource interface {
	ListSeatWindows(ctx context.Context, seatID uuid.UUID, from, to time.Time) ([]ReservationWindow, error)
}
