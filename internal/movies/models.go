package movies

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movie is a catalog entry. Writes happen only through the seed tool;
// the HTTP surface exposes read-only access.
type Movie struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Genre       string         `json:"genre" gorm:"type:varchar(100)"`
	DurationMin int            `json:"duration_min" gorm:"not null"`
	Rating      string         `json:"rating" gorm:"type:varchar(10)"`
	PosterURL   string         `json:"poster_url" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Movie) TableName() string {
	return "movies"
}
