package statistics

import (
	"context"
	"time"

	"seatly/internal/reservations"
	"seatly/internal/shared/constants"
	"seatly/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	// GetUserStatistics aggregates the user's live reservations into a
	// usage summary. Unknown users simply have no reservations and get the
	// zero summary.
	GetUserStatistics(ctx context.Context, userID uuid.UUID) (*UserStatistics, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	now          func() time.Time
}

// NewService wires the statistics aggregator. cacheService is optional.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:         repo,
		cacheService: cacheService,
		now:          time.Now,
	}
}

func (s *service) GetUserStatistics(ctx context.Context, userID uuid.UUID) (*UserStatistics, error) {
	compute := func() (*UserStatistics, error) {
		reservationList, err := s.repo.FindLiveByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.aggregate(reservationList), nil
	}

	if s.cacheService == nil {
		return compute()
	}

	var stats UserStatistics
	cacheKey := constants.BuildStatisticsKey(userID.String())
	err := s.cacheService.GetOrSet(ctx, cacheKey, constants.TTL_STATISTICS, func() (interface{}, error) {
		fresh, err := compute()
		if err != nil {
			return nil, err
		}
		return fresh, nil
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *service) aggregate(reservationList []reservations.Reservation) *UserStatistics {
	stats := &UserStatistics{}
	if len(reservationList) == 0 {
		return stats
	}

	currentMonth := s.now().Month()

	for _, r := range reservationList {
		minutes := int64(r.Duration() / time.Minute)
		stats.TotalMinutes += minutes

		if hours := minutes / 60; hours > stats.RecordHours {
			stats.RecordHours = hours
		}

		// Month is matched without the year; a booking last September
		// counts toward this September. Known behavior, kept as is.
		if r.StartTime.Month() == currentMonth {
			stats.BookingDaysInMonth++
		}
	}

	stats.HoursInLibrary = stats.TotalMinutes / 60
	stats.MinutesInLibrary = stats.TotalMinutes % 60
	return stats
}
