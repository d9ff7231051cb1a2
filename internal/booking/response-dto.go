package booking

import (
	"time"

	"reelpass/internal/seats"
	"reelpass/internal/tickets"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScreeningPageResponse backs the seat selection step.
type ScreeningPageResponse struct {
	ScreeningID uuid.UUID       `json:"screening_id"`
	MovieTitle  string          `json:"movie_title"`
	Hall        string          `json:"hall"`
	StartsAt    time.Time       `json:"starts_at"`
	Price       decimal.Decimal `json:"price"`
	SeatMap     *seats.SeatMap  `json:"seat_map"`
}

// ReviewResponse backs the order review step. Totals are computed
// server-side from the screening price, never trusted from the client.
type ReviewResponse struct {
	ScreeningID  uuid.UUID       `json:"screening_id"`
	MovieTitle   string          `json:"movie_title"`
	Hall         string          `json:"hall"`
	StartsAt     time.Time       `json:"starts_at"`
	CustomerName string          `json:"customer_name,omitempty"`
	Seats        []string        `json:"seats"`
	PricePerSeat decimal.Decimal `json:"price_per_seat"`
	Total        decimal.Decimal `json:"total"`
	Email        string          `json:"email,omitempty"`
}

// PayResponse reports the payment outcome. SkippedSeats lists seats
// lost to a concurrent booking between review and payment.
type PayResponse struct {
	Tickets      []tickets.TicketResponse `json:"tickets"`
	SkippedSeats []string                 `json:"skipped_seats,omitempty"`
	Total        decimal.Decimal          `json:"total"`
	Email        string                   `json:"email"`
}
