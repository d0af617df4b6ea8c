package database

import (
	"seatly/internal/reservations"
	"seatly/internal/seats"
	"seatly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&seats.Seat{},
		&reservations.Reservation{},
	)
}
