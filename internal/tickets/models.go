package tickets

import (
	"time"

	"reelpass/internal/screenings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is the source of truth for seat occupancy. The composite
// unique index on (screening_id, seat) makes the insert itself the
// serialization point for concurrent bookings.
type Ticket struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ScreeningID  uuid.UUID       `json:"screening_id" gorm:"type:uuid;not null;uniqueIndex:unique_seat_per_screening"`
	Seat         string          `json:"seat" gorm:"type:varchar(16);not null;uniqueIndex:unique_seat_per_screening"`
	CustomerName string          `json:"customer_name" gorm:"type:varchar(255);not null"`
	Email        string          `json:"email" gorm:"type:varchar(255);not null;index"`
	UserID       *uuid.UUID      `json:"user_id,omitempty" gorm:"type:uuid;index"`
	QRToken      uuid.UUID       `json:"-" gorm:"type:uuid;not null;unique"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time       `json:"created_at"`

	Screening *screenings.Screening `json:"screening,omitempty" gorm:"foreignKey:ScreeningID"`
}

func (Ticket) TableName() string {
	return "tickets"
}
