package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// tstzrange exclusion needs btree_gist for the seat_id equality part
	err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error
	if err != nil {
		return err
	}

	// Durable backstop against double booking: no two live reservations on
	// one seat may hold overlapping [start, end) ranges, whatever path
	// inserted them.
	err = db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'no_overlapping_reservations'
			) THEN
				ALTER TABLE reservations
				ADD CONSTRAINT no_overlapping_reservations
				EXCLUDE USING gist (
					seat_id WITH =,
					tstzrange(start_time, end_time) WITH &&
				) WHERE (status IN ('RESERVED', 'ACTIVE'));
			END IF;
		END
		$$;
	`).Error
	if err != nil {
		return err
	}

	// Index for availability and overlap queries
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_seat_window
		ON reservations (seat_id, start_time, end_time);
	`).Error
	if err != nil {
		return err
	}

	// Index for per-user listings and statistics
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_user_id
		ON reservations (user_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
