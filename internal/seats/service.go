package seats

import (
	"context"
	"sort"
	"time"

	"seatly/internal/notifications"
	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/constants"
	"seatly/internal/users"
	"seatly/pkg/cache"
	"seatly/pkg/logger"

	"github.com/google/uuid"
)

// Service covers the read side (seat catalog, day availability) and the
// admin-gated access control of seats.
type Service interface {
	ListSeats(ctx context.Context) ([]Seat, error)
	GetSeat(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetAvailableTimeSlots(ctx context.Context, seatID uuid.UUID, date time.Time) ([]TimeSlot, error)

	Block(ctx context.Context, seatID uuid.UUID, principal users.Principal) (*Seat, error)
	Unblock(ctx context.Context, seatID uuid.UUID, principal users.Principal) (*Seat, error)
}

type service struct {
	repo         Repository
	reservations ReservationSource
	cacheService cache.Service
	producer     notifications.Producer
	log          *logger.Logger
}

// NewService wires the seat service. cacheService and producer are optional;
// nil disables caching and event publishing respectively.
func NewService(repo Repository, reservations ReservationSource, cacheService cache.Service, producer notifications.Producer) Service {
	return &service{
		repo:         repo,
		reservations: reservations,
		cacheService: cacheService,
		producer:     producer,
		log:          logger.GetDefault(),
	}
}

func (s *service) ListSeats(ctx context.Context) ([]Seat, error) {
	if s.cacheService == nil {
		return s.repo.FindAll(ctx)
	}

	var seatList []Seat
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_SEATS_LIST, constants.TTL_SEAT_LIST, func() (interface{}, error) {
		return s.repo.FindAll(ctx)
	}, &seatList)
	if err != nil {
		return nil, err
	}
	return seatList, nil
}

func (s *service) GetSeat(ctx context.Context, id uuid.UUID) (*Seat, error) {
	if s.cacheService == nil {
		return s.repo.GetByID(ctx, id)
	}

	var seat Seat
	err := s.cacheService.GetOrSet(ctx, constants.BuildSeatDetailKey(id.String()), constants.TTL_SEAT_DETAIL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	}, &seat)
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

// GetAvailableTimeSlots walks the seat's reservations for the given calendar
// day and returns contiguous slots covering the whole 24h window, each tagged
// free or occupied. Pure read; concurrent callers need no coordination.
func (s *service) GetAvailableTimeSlots(ctx context.Context, seatID uuid.UUID, date time.Time) ([]TimeSlot, error) {
	if _, err := s.repo.GetByID(ctx, seatID); err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	compute := func() ([]TimeSlot, error) {
		windows, err := s.reservations.ListSeatWindows(ctx, seatID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		return buildDaySlots(windows, dayStart, dayEnd), nil
	}

	if s.cacheService == nil {
		return compute()
	}

	var slots []TimeSlot
	cacheKey := constants.BuildAvailabilityKey(seatID.String(), dayStart.Format("2006-01-02"))
	err := s.cacheService.GetOrSet(ctx, cacheKey, constants.TTL_AVAILABILITY, func() (interface{}, error) {
		fresh, err := compute()
		if err != nil {
			return nil, err
		}
		return fresh, nil
	}, &slots)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// buildDaySlots merges sorted reservation windows into an alternating
// free/occupied cover of [dayStart, dayEnd).
func buildDaySlots(windows []ReservationWindow, dayStart, dayEnd time.Time) []TimeSlot {
	// Sort by start; ties broken by reservation id for determinism.
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].Start.Equal(windows[j].Start) {
			return windows[i].ID.String() < windows[j].ID.String()
		}
		return windows[i].Start.Before(windows[j].Start)
	})

	slots := make([]TimeSlot, 0, len(windows)*2+1)
	cursor := dayStart

	for _, w := range windows {
		start := maxTime(w.Start, dayStart)
		end := minTime(w.End, dayEnd)
		if !start.Before(end) {
			continue
		}

		if start.After(cursor) {
			slots = append(slots, TimeSlot{Start: cursor, End: start, Free: true})
			cursor = start
		}
		if end.After(cursor) {
			slots = append(slots, TimeSlot{Start: cursor, End: end, Free: false})
			cursor = end
		}
	}

	if cursor.Before(dayEnd) {
		slots = append(slots, TimeSlot{Start: cursor, End: dayEnd, Free: true})
	}

	return slots
}

func (s *service) Block(ctx context.Context, seatID uuid.UUID, principal users.Principal) (*Seat, error) {
	return s.setBlocked(ctx, seatID, principal, true)
}

func (s *service) Unblock(ctx context.Context, seatID uuid.UUID, principal users.Principal) (*Seat, error) {
	return s.setBlocked(ctx, seatID, principal, false)
}

func (s *service) setBlocked(ctx context.Context, seatID uuid.UUID, principal users.Principal, blocked bool) (*Seat, error) {
	if principal.Role != users.RoleAdmin {
		return nil, apperrors.Forbidden("only ADMIN may change seat access")
	}

	seat, err := s.repo.SetBlocked(ctx, seatID, blocked)
	if err != nil {
		return nil, err
	}

	s.invalidateSeatCache(ctx, seatID)

	if s.producer != nil {
		event := notifications.NewSeatAccessEvent(seatID.String(), principal.UserID.String(), blocked)
		if err := s.producer.Publish(ctx, event); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish seat access event", err, map[string]interface{}{
				"seat_id": seatID.String(),
			})
		}
	}

	s.log.LogSeatAccessChanged(ctx, seatID.String(), blocked, principal.UserID.String())
	return seat, nil
}

func (s *service) invalidateSeatCache(ctx context.Context, seatID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.BuildAvailabilityPattern(seatID.String())); err != nil {
		s.log.ErrorWithContext(ctx, "failed to invalidate availability cache", err, map[string]interface{}{
			"seat_id": seatID.String(),
		})
	}
	if err := s.cacheService.Delete(ctx, constants.BuildSeatDetailKey(seatID.String())); err != nil {
		s.log.ErrorWithContext(ctx, "failed to invalidate seat cache", err, map[string]interface{}{
			"seat_id": seatID.String(),
		})
	}
	if err := s.cacheService.Delete(ctx, constants.CACHE_KEY_SEATS_LIST); err != nil {
		s.log.ErrorWithContext(ctx, "failed to invalidate seat list cache", err, map[string]interface{}{
			"seat_id": seatID.String(),
		})
	}
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
