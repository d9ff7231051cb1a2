package tickets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketResponse struct {
	ID           uuid.UUID       `json:"id"`
	ScreeningID  uuid.UUID       `json:"screening_id"`
	Seat         string          `json:"seat"`
	CustomerName string          `json:"customer_name"`
	Email        string          `json:"email"`
	Price        decimal.Decimal `json:"price"`
	MovieTitle   string          `json:"movie_title,omitempty"`
	Hall         string          `json:"hall,omitempty"`
	StartsAt     *time.Time      `json:"starts_at,omitempty"`
	// QRImage is the base64-encoded entry QR PNG. Populated on
	// issuance so guests get their codes in the confirmation.
	QRImage   string    `json:"qr_image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
	Total   int              `json:"total"`
}

// IssueResult reports which seats were won and which were lost to a
// concurrent booking between review and payment.
type IssueResult struct {
	Created      []TicketResponse `json:"created"`
	SkippedSeats []string         `json:"skipped_seats,omitempty"`
}

func ToTicketResponse(t *Ticket) TicketResponse {
	resp := TicketResponse{
		ID:           t.ID,
		ScreeningID:  t.ScreeningID,
		Seat:         t.Seat,
		CustomerName: t.CustomerName,
		Email:        t.Email,
		Price:        t.Price,
		CreatedAt:    t.CreatedAt,
	}
	if t.Screening != nil {
		resp.StartsAt = &t.Screening.StartsAt
		resp.Hall = t.Screening.Hall
		if t.Screening.Movie != nil {
			resp.MovieTitle = t.Screening.Movie.Title
		}
	}
	return resp
}
