package reservations

import (
	"context"
	"time"

	"seatly/internal/seats"

	"github.com/google/uuid"
)

// availabilitySource adapts the reservation store to the window feed the
// seat availability engine consumes.
type availabilitySource struct {
	repo Repository
}

// NewAvailabilitySource exposes live reservation windows to the seats
// package without a reverse import.
func NewAvailabilitySource(repo Repository) seats.ReservationSource {
	return &availabilitySource{repo: repo}
}

func (a *availabilitySource) ListSeatWindows(ctx context.Context, seatID uuid.UUID, from, to time.Time) ([]seats.ReservationWindow, error) {
	reservationList, err := a.repo.FindSeatWindowsInRange(ctx, seatID, from, to)
	if err != nil {
		return nil, err
	}

	windows := make([]seats.ReservationWindow, 0, len(reservationList))
	for _, r := range reservationList {
		windows = append(windows, seats.ReservationWindow{
			ID:    r.ID,
			Start: r.StartTime,
			End:   r.EndTime,
		})
	}
	return windows, nil
}
