package statistics

// UserStatistics summarizes a user's live reservation footprint. Cancelled
// reservations contribute nothing.
type UserStatistics struct {
	TotalMinutes       int64 `json:"total_minutes"`
	HoursInLibrary     int64 `json:"hours_in_library"`
	MinutesInLibrary   int64 `json:"minutes_in_library"`
	BookingDaysInMonth int   `json:"booking_days_in_month"`
	RecordHours        int64 `json:"record_hours"`
}
