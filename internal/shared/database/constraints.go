package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// The unique pair (show_id, seat_label) is the authoritative guard
	// against double booking. The Redis claim set only fails fast; this
	// constraint is what actually prevents two committers from winning.
	// AutoMigrate may already have created it from the model tags, so
	// guard the ALTER against an existing relation of the same name.
	err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_class WHERE relname = 'uq_booking_show_seat'
			) THEN
				ALTER TABLE bookings
				ADD CONSTRAINT uq_booking_show_seat
				UNIQUE (show_id, seat_label);
			END IF;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Index for seat-map and conflict-check queries by show
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_show_seat
		ON bookings (show_id, seat_label);
	`).Error
	if err != nil {
		return err
	}

	// Index for listing a user's bookings
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_id
		ON bookings (user_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
