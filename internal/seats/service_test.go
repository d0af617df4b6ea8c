package seats

import (
	"context"
	"testing"
	"time"

	"seatly/internal/shared/apperrors"
	"seatly/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubReservationSource feeds fixed windows to the availability engine.
type stubReservationSource struct {
	windows []ReservationWindow
	err     error
}

func (s *stubReservationSource) ListSeatWindows(ctx context.Context, seatID uuid.UUID, from, to time.Time) ([]ReservationWindow, error) {
	return s.windows, s.err
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database")
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Seat{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func setupService(t *testing.T, source ReservationSource) (Service, *gorm.DB) {
	db := setupTestDB(t)
	return NewService(NewRepository(db), source, nil, nil), db
}

func createTestSeat(t *testing.T, db *gorm.DB) *Seat {
	seat := &Seat{Number: "QZ-01", Location: "Quiet Zone"}
	require.NoError(t, db.Create(seat).Error)
	return seat
}

func day() time.Time {
	return time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
}

func window(startHour, endHour int) ReservationWindow {
	return ReservationWindow{
		ID:    uuid.New(),
		Start: day().Add(time.Duration(startHour) * time.Hour),
		End:   day().Add(time.Duration(endHour) * time.Hour),
	}
}

func TestListSeats(t *testing.T) {
	service, db := setupService(t, &stubReservationSource{})

	require.NoError(t, db.Create(&Seat{Number: "B-02"}).Error)
	require.NoError(t, db.Create(&Seat{Number: "A-01"}).Error)

	seatList, err := service.ListSeats(context.Background())
	require.NoError(t, err)
	require.Len(t, seatList, 2)
	assert.Equal(t, "A-01", seatList[0].Number)
	assert.Equal(t, "B-02", seatList[1].Number)
}

func TestGetSeatNotFound(t *testing.T) {
	service, _ := setupService(t, &stubReservationSource{})

	_, err := service.GetSeat(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestAvailabilityEmptyDay(t *testing.T) {
	service, db := setupService(t, &stubReservationSource{})
	seat := createTestSeat(t, db)

	slots, err := service.GetAvailableTimeSlots(context.Background(), seat.ID, day())
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.True(t, slots[0].Free)
	assert.Equal(t, day(), slots[0].Start)
	assert.Equal(t, day().Add(24*time.Hour), slots[0].End)
}

func TestAvailabilityCoversFullDayWithoutGaps(t *testing.T) {
	source := &stubReservationSource{windows: []ReservationWindow{
		window(10, 11),
		window(14, 16),
	}}
	service, db := setupService(t, source)
	seat := createTestSeat(t, db)

	slots, err := service.GetAvailableTimeSlots(context.Background(), seat.ID, day())
	require.NoError(t, err)
	require.Len(t, slots, 5)

	// free 00-10, busy 10-11, free 11-14, busy 14-16, free 16-24
	expected := []struct {
		startHour, endHour int
		free               bool
	}{
		{0, 10, true},
		{10, 11, false},
		{11, 14, true},
		{14, 16, false},
		{16, 24, true},
	}
	for i, e := range expected {
		assert.Equal(t, day().Add(time.Duration(e.startHour)*time.Hour), slots[i].Start)
		assert.Equal(t, day().Add(time.Duration(e.endHour)*time.Hour), slots[i].End)
		assert.Equal(t, e.free, slots[i].Free)
	}

	// Contiguity: each slot begins where the previous ended.
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
}

func TestAvailabilityBackToBackWindows(t *testing.T) {
	source := &stubReservationSource{windows: []ReservationWindow{
		window(9, 10),
		window(10, 11),
	}}
	service, db := setupService(t, source)
	seat := createTestSeat(t, db)

	slots, err := service.GetAvailableTimeSlots(context.Background(), seat.ID, day())
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.True(t, slots[0].Free)
	assert.False(t, slots[1].Free)
	assert.False(t, slots[2].Free)
	assert.True(t, slots[3].Free)
	assert.Equal(t, day().Add(9*time.Hour), slots[1].Start)
	assert.Equal(t, day().Add(11*time.Hour), slots[3].Start)
}

func TestAvailabilityClampsWindowsToDay(t *testing.T) {
	// Reservation runs from the previous evening into this morning.
	overnight := ReservationWindow{
		ID:    uuid.New(),
		Start: day().Add(-2 * time.Hour),
		End:   day().Add(2 * time.Hour),
	}
	source := &stubReservationSource{windows: []ReservationWindow{overnight}}
	service, db := setupService(t, source)
	seat := createTestSeat(t, db)

	slots, err := service.GetAvailableTimeSlots(context.Background(), seat.ID, day())
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.False(t, slots[0].Free)
	assert.Equal(t, day(), slots[0].Start)
	assert.Equal(t, day().Add(2*time.Hour), slots[0].End)
	assert.True(t, slots[1].Free)
}

func TestAvailabilityUnknownSeat(t *testing.T) {
	service, _ := setupService(t, &stubReservationSource{})

	_, err := service.GetAvailableTimeSlots(context.Background(), uuid.New(), day())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestBuildDaySlotsTieOrdering(t *testing.T) {
	// Two windows with equal start; the lower id must come first so the
	// output is stable between calls.
	a := ReservationWindow{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Start: day().Add(10 * time.Hour), End: day().Add(11 * time.Hour)}
	b := ReservationWindow{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Start: day().Add(10 * time.Hour), End: day().Add(12 * time.Hour)}

	first := buildDaySlots([]ReservationWindow{b, a}, day(), day().Add(24*time.Hour))
	second := buildDaySlots([]ReservationWindow{a, b}, day(), day().Add(24*time.Hour))
	assert.Equal(t, first, second)
}

func TestBlockRequiresAdmin(t *testing.T) {
	service, db := setupService(t, &stubReservationSource{})
	seat := createTestSeat(t, db)
	ctx := context.Background()

	for _, role := range []users.Role{users.RoleUser, users.RoleLibrarian} {
		principal := users.Principal{UserID: uuid.New(), Role: role}
		_, err := service.Block(ctx, seat.ID, principal)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	}
}

func TestBlockAndUnblock(t *testing.T) {
	service, db := setupService(t, &stubReservationSource{})
	seat := createTestSeat(t, db)
	ctx := context.Background()
	adminPrincipal := users.Principal{UserID: uuid.New(), Role: users.RoleAdmin}

	blocked, err := service.Block(ctx, seat.ID, adminPrincipal)
	require.NoError(t, err)
	assert.True(t, blocked.Blocked)

	unblocked, err := service.Unblock(ctx, seat.ID, adminPrincipal)
	require.NoError(t, err)
	assert.False(t, unblocked.Blocked)
}

func TestBlockUnknownSeat(t *testing.T) {
	service, _ := setupService(t, &stubReservationSource{})
	adminPrincipal := users.Principal{UserID: uuid.New(), Role: users.RoleAdmin}

	_, err := service.Block(context.Background(), uuid.New(), adminPrincipal)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
