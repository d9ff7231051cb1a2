package screenings

import (
	"time"

	"reelpass/internal/movies"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Screening is a scheduled showing of a movie in the hall.
// Seat occupancy is not stored here; it is derived from tickets.
type Screening struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MovieID   uuid.UUID       `json:"movie_id" gorm:"type:uuid;not null;index"`
	Hall      string          `json:"hall" gorm:"type:varchar(64);not null"`
	StartsAt  time.Time       `json:"starts_at" gorm:"not null;index"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`

	Movie *movies.Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

func (Screening) TableName() string {
	return "screenings"
}
