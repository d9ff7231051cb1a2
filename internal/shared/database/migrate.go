package database

import (
	"reelpass/internal/movies"
	"reelpass/internal/screenings"
	"reelpass/internal/tickets"
	"reelpass/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&movies.Movie{},
		&screenings.Screening{},
		&tickets.Ticket{},
	)
}
