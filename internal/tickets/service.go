package tickets

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"reelpass/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotAuthorized    = errors.New("not authorized for this ticket")
	ErrScreeningStarted = errors.New("screening has already started")
)

// Notifier receives issued tickets for best-effort fan-out. Failures
// must never affect the booking outcome.
type Notifier interface {
	NotifyTicketsIssued(ctx context.Context, email string, issued []TicketResponse)
}

// IssueRequest carries everything the issuer needs for one payment.
// MovieTitle, Hall and StartsAt are carried through to the
// confirmation email so the notification path needs no extra catalog
// lookup.
type IssueRequest struct {
	ScreeningID  uuid.UUID
	Seats        []string
	CustomerName string
	Email        string
	UserID       *uuid.UUID
	Price        decimal.Decimal
	MovieTitle   string
	Hall         string
	StartsAt     time.Time
}

type Service interface {
	IssueTickets(ctx context.Context, req IssueRequest) (*IssueResult, error)
	GetOccupiedSeats(ctx context.Context, screeningID uuid.UUID) ([]string, error)
	GuestLookup(ctx context.Context, email string) (*TicketListResponse, error)
	GuestCancel(ctx context.Context, ticketID uuid.UUID, email string) error
	UserTickets(ctx context.Context, userID uuid.UUID) (*TicketListResponse, error)
	UserCancel(ctx context.Context, ticketID, userID uuid.UUID) error
	TicketQRPNG(ctx context.Context, ticketID, userID uuid.UUID) ([]byte, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	logger   *logger.Logger
}

func NewService(repo Repository, notifier Notifier, log *logger.Logger) Service {
	return &service{repo: repo, notifier: notifier, logger: log}
}

// IssueTickets attempts one insert per requested seat. Losing a race
// on a seat is not an error: the seat is reported in SkippedSeats and
// the rest of the batch continues. Only infrastructure failures abort.
func (s *service) IssueTickets(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	customerName := strings.TrimSpace(req.CustomerName)
	result := &IssueResult{Created: make([]TicketResponse, 0, len(req.Seats))}

	for _, seat := range req.Seats {
		ticket := &Ticket{
			ID:           uuid.New(),
			ScreeningID:  req.ScreeningID,
			Seat:         seat,
			CustomerName: customerName,
			Email:        email,
			UserID:       req.UserID,
			QRToken:      uuid.New(),
			Price:        req.Price,
		}

		err := s.repo.Create(ctx, ticket)
		if err != nil {
			if errors.Is(err, ErrSeatTaken) {
				result.SkippedSeats = append(result.SkippedSeats, seat)
				continue
			}
			return nil, err
		}

		resp := ToTicketResponse(ticket)
		resp.MovieTitle = req.MovieTitle
		resp.Hall = req.Hall
		if !req.StartsAt.IsZero() {
			startsAt := req.StartsAt
			resp.StartsAt = &startsAt
		}
		// QR failures never roll back a committed ticket; the code
		// stays renderable on demand from the token.
		if png, qrErr := RenderQRPNG(ticket.QRToken.String()); qrErr != nil {
			s.logger.ErrorWithContext(ctx, "Failed to render ticket QR", qrErr,
				map[string]interface{}{"ticket_id": ticket.ID.String()})
		} else {
			resp.QRImage = base64.StdEncoding.EncodeToString(png)
		}
		result.Created = append(result.Created, resp)
	}

	s.logger.LogTicketsIssued(ctx, req.ScreeningID.String(), len(req.Seats), len(result.Created), result.SkippedSeats)

	if len(result.Created) > 0 && s.notifier != nil {
		s.notifier.NotifyTicketsIssued(ctx, email, result.Created)
	}

	return result, nil
}

func (s *service) GetOccupiedSeats(ctx context.Context, screeningID uuid.UUID) ([]string, error) {
	return s.repo.GetOccupiedSeats(ctx, screeningID)
}

// GuestLookup returns upcoming tickets for an email address,
// soonest screening first. Past tickets are never returned. A blank
// email matches nothing rather than failing.
func (s *service) GuestLookup(ctx context.Context, email string) (*TicketListResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return toTicketList(nil), nil
	}

	list, err := s.repo.GetByEmailUpcoming(ctx, email, time.Now())
	if err != nil {
		return nil, err
	}
	return toTicketList(list), nil
}

// GuestCancel deletes a ticket when the caller proves ownership by
// presenting the booking email. Cancellation closes once the
// screening starts.
func (s *service) GuestCancel(ctx context.Context, ticketID uuid.UUID, email string) error {
	ticket, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if !strings.EqualFold(ticket.Email, strings.TrimSpace(email)) {
		return ErrNotAuthorized
	}

	return s.cancel(ctx, ticket)
}

func (s *service) UserTickets(ctx context.Context, userID uuid.UUID) (*TicketListResponse, error) {
	list, err := s.repo.GetByUserUpcoming(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return toTicketList(list), nil
}

func (s *service) UserCancel(ctx context.Context, ticketID, userID uuid.UUID) error {
	ticket, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if ticket.UserID == nil || *ticket.UserID != userID {
		return ErrNotAuthorized
	}

	return s.cancel(ctx, ticket)
}

func (s *service) cancel(ctx context.Context, ticket *Ticket) error {
	if ticket.Screening != nil && !ticket.Screening.StartsAt.After(time.Now()) {
		return ErrScreeningStarted
	}

	if err := s.repo.Delete(ctx, ticket.ID); err != nil {
		return err
	}

	s.logger.LogTicketCancelled(ctx, ticket.ID.String(), ticket.ScreeningID.String(), ticket.Seat)
	return nil
}

// TicketQRPNG renders the entry QR for a ticket the caller owns.
func (s *service) TicketQRPNG(ctx context.Context, ticketID, userID uuid.UUID) ([]byte, error) {
	ticket, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.UserID == nil || *ticket.UserID != userID {
		return nil, ErrNotAuthorized
	}

	return RenderQRPNG(ticket.QRToken.String())
}

func toTicketList(list []Ticket) *TicketListResponse {
	out := &TicketListResponse{Tickets: make([]TicketResponse, 0, len(list)), Total: len(list)}
	for i := range list {
		out.Tickets = append(out.Tickets, ToTicketResponse(&list[i]))
	}
	return out
}
