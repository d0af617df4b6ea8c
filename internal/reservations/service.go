package reservations

import (
	"context"
	"time"

	"seatly/internal/notifications"
	"seatly/internal/seats"
	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/constants"
	"seatly/internal/users"
	"seatly/pkg/cache"
	"seatly/pkg/logger"

	"github.com/google/uuid"
)

// SeatCatalog is the slice of the seat service the lifecycle manager needs:
// existence and access checks before a booking is attempted.
type SeatCatalog interface {
	GetSeat(ctx context.Context, id uuid.UUID) (*seats.Seat, error)
}

// Service drives the reservation lifecycle: creation with conflict
// detection, privileged cancellation, check-in, and lookups.
type Service interface {
	// Create books the seat for [start, end) on behalf of the principal.
	// Privileged principals do not hold reservations; for them Create is a
	// no-op returning (nil, nil).
	Create(ctx context.Context, principal users.Principal, seatID uuid.UUID, start, end time.Time) (*Reservation, error)

	// Cancel releases a reservation. Only LIBRARIAN and ADMIN may cancel;
	// cancelling an already-cancelled reservation returns it unchanged.
	Cancel(ctx context.Context, principal users.Principal, reservationID uuid.UUID) (*Reservation, error)

	// Activate marks a RESERVED reservation ACTIVE once its interval has
	// begun. Allowed for the owner and for privileged principals.
	Activate(ctx context.Context, principal users.Principal, reservationID uuid.UUID) (*Reservation, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, query ListQuery) ([]Reservation, error)
}

type service struct {
	repo         Repository
	seatCatalog  SeatCatalog
	cacheService cache.Service
	producer     notifications.Producer
	log          *logger.Logger
}

// NewService wires the lifecycle manager. cacheService and producer are
// optional; nil disables cache invalidation and event publishing.
func NewService(repo Repository, seatCatalog SeatCatalog, cacheService cache.Service, producer notifications.Producer) Service {
	return &service{
		repo:         repo,
		seatCatalog:  seatCatalog,
		cacheService: cacheService,
		producer:     producer,
		log:          logger.GetDefault(),
	}
}

func (s *service) Create(ctx context.Context, principal users.Principal, seatID uuid.UUID, start, end time.Time) (*Reservation, error) {
	if principal.Role.IsPrivileged() {
		// Staff manage seats, they do not occupy them. Swallowing the
		// request keeps bulk admin tooling simple.
		return nil, nil
	}

	if !start.Before(end) {
		return nil, apperrors.InvalidInput("reservation start must be before end")
	}

	seat, err := s.seatCatalog.GetSeat(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if seat.Blocked {
		return nil, apperrors.Conflict("seat %s is blocked", seatID)
	}

	reservation := &Reservation{
		UserID:    principal.UserID,
		SeatID:    seatID,
		StartTime: start,
		EndTime:   end,
		Status:    StatusReserved,
	}

	if err := s.repo.CreateIfFree(ctx, reservation); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, seatID)
	s.publish(ctx, notifications.NewReservationEvent(
		notifications.EventReservationCreated,
		reservation.ID.String(), seatID.String(), principal.UserID.String(),
		start, end,
	))
	s.log.LogReservationCreated(ctx, reservation.ID.String(), seatID.String(), principal.UserID.String())

	return reservation, nil
}

func (s *service) Cancel(ctx context.Context, principal users.Principal, reservationID uuid.UUID) (*Reservation, error) {
	if !principal.Role.IsPrivileged() {
		return nil, apperrors.Forbidden("only LIBRARIAN or ADMIN may cancel reservations")
	}

	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.IsCancelled() {
		// Already released; repeating the cancel changes nothing.
		return reservation, nil
	}

	reservation.Cancel()
	if err := s.repo.Save(ctx, reservation); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, reservation.SeatID)
	s.publish(ctx, notifications.NewReservationEvent(
		notifications.EventReservationCancelled,
		reservation.ID.String(), reservation.SeatID.String(), reservation.UserID.String(),
		reservation.StartTime, reservation.EndTime,
	))
	s.log.LogReservationCancelled(ctx, reservation.ID.String(), principal.UserID.String())

	return reservation, nil
}

func (s *service) Activate(ctx context.Context, principal users.Principal, reservationID uuid.UUID) (*Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != principal.UserID && !principal.Role.IsPrivileged() {
		return nil, apperrors.Forbidden("only the owner or staff may check in a reservation")
	}

	switch reservation.Status {
	case StatusCancelled:
		return nil, apperrors.Conflict("reservation %s is cancelled", reservationID)
	case StatusActive:
		return nil, apperrors.Conflict("reservation %s is already active", reservationID)
	}

	if time.Now().Before(reservation.StartTime) {
		return nil, apperrors.InvalidInput("reservation %s has not started yet", reservationID)
	}

	reservation.Status = StatusActive
	reservation.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, reservation); err != nil {
		return nil, err
	}

	s.publish(ctx, notifications.NewReservationEvent(
		notifications.EventReservationActivated,
		reservation.ID.String(), reservation.SeatID.String(), reservation.UserID.String(),
		reservation.StartTime, reservation.EndTime,
	))

	return reservation, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, query ListQuery) ([]Reservation, error) {
	switch {
	case query.UserID != nil:
		return s.repo.FindByUser(ctx, *query.UserID)
	case query.SeatID != nil:
		return s.repo.FindBySeat(ctx, *query.SeatID)
	default:
		return []Reservation{}, nil
	}
}

func (s *service) invalidateAvailability(ctx context.Context, seatID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.BuildAvailabilityPattern(seatID.String())); err != nil {
		s.log.ErrorWithContext(ctx, "failed to invalidate availability cache", err, map[string]interface{}{
			"seat_id": seatID.String(),
		})
	}
}

func (s *service) publish(ctx context.Context, event *notifications.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish reservation event", err, map[string]interface{}{
			"event_type": string(event.Type),
			"seat_id":    event.SeatID,
		})
	}
}
