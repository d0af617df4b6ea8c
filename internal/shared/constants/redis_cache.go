package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the seatly application.
// Pattern: seatly:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_SEAT_LIST    = 1 * time.Hour    // seat inventory rarely changes
	TTL_SEAT_DETAIL  = 10 * time.Minute // blocked flag can flip
	TTL_AVAILABILITY = 30 * time.Second // availability is write-adjacent, keep it short
	TTL_STATISTICS   = 5 * time.Minute  // per-user statistics
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "seatly"
)

const (
	CACHE_KEY_SEATS_LIST   = CACHE_PREFIX + ":seats:list"
	CACHE_KEY_SEAT_DETAIL  = CACHE_PREFIX + ":seats:detail:uuid:"  // + seat-id
	CACHE_KEY_AVAILABILITY = CACHE_PREFIX + ":seats:availability:" // + seat-id:date
	CACHE_KEY_STATISTICS   = CACHE_PREFIX + ":users:statistics:"   // + user-id
)

// ================== KEY BUILDERS ==================

func BuildSeatDetailKey(seatID string) string {
	return CACHE_KEY_SEAT_DETAIL + seatID
}

func BuildAvailabilityKey(seatID, date string) string {
	return fmt.Sprintf("%s%s:%s", CACHE_KEY_AVAILABILITY, seatID, date)
}

// BuildAvailabilityPattern matches every cached day for one seat.
func BuildAvailabilityPattern(seatID string) string {
	return fmt.Sprintf("%s%s:*", CACHE_KEY_AVAILABILITY, seatID)
}

func BuildStatisticsKey(userID string) string {
	return CACHE_KEY_STATISTICS + userID
}
