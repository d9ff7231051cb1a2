package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control.
// The (screening_id, seat) unique index is the single serialization point that
// prevents double booking: the insert attempt, not a prior read, decides who
// gets a contested seat.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_per_screening
		ON tickets (screening_id, seat);
	`).Error
	if err != nil {
		return err
	}

	// Guest lookups filter by email and screening start time
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_email
		ON tickets (lower(email));
	`).Error
	if err != nil {
		return err
	}

	// Cascade order on catalog deletion: tickets -> screenings -> movie
	err = db.Exec(`
		ALTER TABLE screenings
		DROP CONSTRAINT IF EXISTS fk_screenings_movie,
		ADD CONSTRAINT fk_screenings_movie
		FOREIGN KEY (movie_id) REFERENCES movies (id) ON DELETE CASCADE;
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		ALTER TABLE tickets
		DROP CONSTRAINT IF EXISTS fk_tickets_screening,
		ADD CONSTRAINT fk_tickets_screening
		FOREIGN KEY (screening_id) REFERENCES screenings (id) ON DELETE CASCADE;
	`).Error
	if err != nil {
		return err
	}

	return nil
}
