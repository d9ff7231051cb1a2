package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"reelpass/internal/screenings"
	"reelpass/internal/seats"
	"reelpass/internal/tickets"
	"reelpass/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNameRequired means nobody to print on the ticket: the request
	// had no customer name and the caller has no profile name either.
	ErrNameRequired = errors.New("customer name is required")
	// ErrEmailRequired means a guest tried to pay without an email.
	ErrEmailRequired = errors.New("email is required for guest bookings")
	// ErrAllSeatsOccupied means every requested seat was lost to
	// concurrent bookings; the client should re-pick from a fresh map.
	ErrAllSeatsOccupied = errors.New("all requested seats are occupied")
	// ErrBookingClosed means the screening has already started.
	ErrBookingClosed = errors.New("booking closed for this screening")
)

// Identity is the resolved caller. A nil *Identity is a guest.
type Identity struct {
	UserID uuid.UUID
	Name   string
	Email  string
}

// Service drives the stateless two-step flow: the client carries the
// screening and seat selection through review into payment, and the
// ticket insert is the only commit point.
type Service interface {
	ScreeningPage(ctx context.Context, screeningID uuid.UUID) (*ScreeningPageResponse, error)
	Review(ctx context.Context, screeningID uuid.UUID, seatIDs []string, customerName string, identity *Identity) (*ReviewResponse, error)
	Pay(ctx context.Context, screeningID uuid.UUID, seatIDs []string, customerName, email string, identity *Identity) (*PayResponse, error)
}

type service struct {
	screenings screenings.Service
	seats      seats.Service
	tickets    tickets.Service
	logger     *logger.Logger
}

func NewService(screeningService screenings.Service, seatService seats.Service, ticketService tickets.Service, log *logger.Logger) Service {
	return &service{
		screenings: screeningService,
		seats:      seatService,
		tickets:    ticketService,
		logger:     log,
	}
}

// ScreeningPage returns the screening plus a fresh occupancy grid.
// The grid is advisory; payment re-checks every seat on insert.
func (s *service) ScreeningPage(ctx context.Context, screeningID uuid.UUID) (*ScreeningPageResponse, error) {
	screening, err := s.screenings.GetScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.tickets.GetOccupiedSeats(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	return &ScreeningPageResponse{
		ScreeningID: screening.ID,
		MovieTitle:  screening.MovieTitle,
		Hall:        screening.Hall,
		StartsAt:    screening.StartsAt,
		Price:       screening.Price,
		SeatMap:     s.seats.BuildSeatMap(occupied),
	}, nil
}

func (s *service) Review(ctx context.Context, screeningID uuid.UUID, seatIDs []string, customerName string, identity *Identity) (*ReviewResponse, error) {
	screening, err := s.screenings.GetScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	if !screening.StartsAt.After(time.Now()) {
		return nil, ErrBookingClosed
	}

	selection, err := s.seats.ValidateSelection(seatIDs)
	if err != nil {
		return nil, err
	}

	resp := &ReviewResponse{
		ScreeningID:  screening.ID,
		MovieTitle:   screening.MovieTitle,
		Hall:         screening.Hall,
		StartsAt:     screening.StartsAt,
		CustomerName: resolveCustomerName(customerName, identity),
		Seats:        canonicalSeats(selection),
		PricePerSeat: screening.Price,
		Total:        screening.Price.Mul(decimal.NewFromInt(int64(len(selection)))),
	}
	if identity != nil {
		resp.Email = identity.Email
	}
	return resp, nil
}

// Pay is the commit point. It re-validates the selection, resolves the
// buyer email, and hands the batch to the ticket issuer. Seats lost in
// the meantime are skipped; if every seat is lost the payment fails
// with ErrAllSeatsOccupied and nothing is charged.
func (s *service) Pay(ctx context.Context, screeningID uuid.UUID, seatIDs []string, customerName, email string, identity *Identity) (*PayResponse, error) {
	screening, err := s.screenings.GetScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	if !screening.StartsAt.After(time.Now()) {
		return nil, ErrBookingClosed
	}

	selection, err := s.seats.ValidateSelection(seatIDs)
	if err != nil {
		return nil, err
	}

	buyerName := resolveCustomerName(customerName, identity)
	if buyerName == "" {
		return nil, ErrNameRequired
	}

	buyerEmail := strings.TrimSpace(email)
	var userID *uuid.UUID
	if identity != nil {
		userID = &identity.UserID
		if buyerEmail == "" {
			buyerEmail = identity.Email
		}
	}
	if buyerEmail == "" {
		return nil, ErrEmailRequired
	}

	result, err := s.tickets.IssueTickets(ctx, tickets.IssueRequest{
		ScreeningID:  screeningID,
		Seats:        canonicalSeats(selection),
		CustomerName: buyerName,
		Email:        buyerEmail,
		UserID:       userID,
		Price:        screening.Price,
		MovieTitle:   screening.MovieTitle,
		Hall:         screening.Hall,
		StartsAt:     screening.StartsAt,
	})
	if err != nil {
		return nil, err
	}

	if len(result.Created) == 0 {
		return nil, ErrAllSeatsOccupied
	}

	return &PayResponse{
		Tickets:      result.Created,
		SkippedSeats: result.SkippedSeats,
		Total:        screening.Price.Mul(decimal.NewFromInt(int64(len(result.Created)))),
		Email:        strings.ToLower(buyerEmail),
	}, nil
}

// resolveCustomerName prefers the name entered in the flow, then
// falls back to the authenticated profile name.
func resolveCustomerName(customerName string, identity *Identity) string {
	name := strings.TrimSpace(customerName)
	if name == "" && identity != nil {
		name = strings.TrimSpace(identity.Name)
	}
	return name
}

func canonicalSeats(selection []seats.SeatID) []string {
	out := make([]string, 0, len(selection))
	for _, id := range selection {
		out = append(out, id.String())
	}
	return out
}
