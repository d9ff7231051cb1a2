package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"reelpass/internal/screenings"
	"reelpass/internal/seats"
	"reelpass/internal/shared/config"
	"reelpass/internal/tickets"
	"reelpass/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeScreenings struct {
	screening *screenings.ScreeningResponse
}

func (f *fakeScreenings) GetScreening(_ context.Context, id uuid.UUID) (*screenings.ScreeningResponse, error) {
	if f.screening == nil || f.screening.ID != id {
		return nil, screenings.ErrScreeningNotFound
	}
	cp := *f.screening
	return &cp, nil
}

func (f *fakeScreenings) ListByMovie(context.Context, uuid.UUID) (*screenings.ScreeningListResponse, error) {
	return &screenings.ScreeningListResponse{}, nil
}

func (f *fakeScreenings) ListUpcoming(context.Context) (*screenings.ScreeningListResponse, error) {
	return &screenings.ScreeningListResponse{}, nil
}

func (f *fakeScreenings) CreateScreening(context.Context, *screenings.Screening) error {
	return nil
}

// fakeTickets marks a configurable set of seats as already taken.
type fakeTickets struct {
	occupied map[string]bool
	lastReq  tickets.IssueRequest
}

func (f *fakeTickets) IssueTickets(_ context.Context, req tickets.IssueRequest) (*tickets.IssueResult, error) {
	f.lastReq = req
	result := &tickets.IssueResult{}
	for _, seat := range req.Seats {
		if f.occupied[seat] {
			result.SkippedSeats = append(result.SkippedSeats, seat)
			continue
		}
		f.occupied[seat] = true
		result.Created = append(result.Created, tickets.TicketResponse{
			ID:           uuid.New(),
			ScreeningID:  req.ScreeningID,
			Seat:         seat,
			CustomerName: req.CustomerName,
			Email:        req.Email,
			Price:        req.Price,
		})
	}
	return result, nil
}

func (f *fakeTickets) GetOccupiedSeats(context.Context, uuid.UUID) ([]string, error) {
	var out []string
	for seat := range f.occupied {
		out = append(out, seat)
	}
	return out, nil
}

func (f *fakeTickets) GuestLookup(context.Context, string) (*tickets.TicketListResponse, error) {
	return &tickets.TicketListResponse{}, nil
}

func (f *fakeTickets) GuestCancel(context.Context, uuid.UUID, string) error { return nil }

func (f *fakeTickets) UserTickets(context.Context, uuid.UUID) (*tickets.TicketListResponse, error) {
	return &tickets.TicketListResponse{}, nil
}

func (f *fakeTickets) UserCancel(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (f *fakeTickets) TicketQRPNG(context.Context, uuid.UUID, uuid.UUID) ([]byte, error) {
	return nil, nil
}

func newFlowFixture(price decimal.Decimal, startsIn time.Duration) (Service, uuid.UUID, *fakeTickets) {
	screeningID := uuid.New()
	screeningSvc := &fakeScreenings{screening: &screenings.ScreeningResponse{
		ID:         screeningID,
		MovieID:    uuid.New(),
		MovieTitle: "Blade Runner",
		Hall:       "Hall 1",
		StartsAt:   time.Now().Add(startsIn),
		Price:      price,
	}}
	ticketSvc := &fakeTickets{occupied: make(map[string]bool)}
	seatSvc := seats.NewService(config.HallConfig{Rows: 10, SeatsPerRow: 18})

	svc := NewService(screeningSvc, seatSvc, ticketSvc, logger.GetDefault())
	return svc, screeningID, ticketSvc
}

func TestReview(t *testing.T) {
	ctx := context.Background()
	price := decimal.NewFromFloat(11.50)

	t.Run("computes total from server-side price", func(t *testing.T) {
		svc, screeningID, _ := newFlowFixture(price, 2*time.Hour)

		resp, err := svc.Review(ctx, screeningID, []string{"1-1", "1-2", "1-3"}, "Ada Lovelace", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.NewFromFloat(34.50)
		if !resp.Total.Equal(want) {
			t.Errorf("total = %s, want %s", resp.Total, want)
		}
		if !resp.PricePerSeat.Equal(price) {
			t.Errorf("price per seat = %s, want %s", resp.PricePerSeat, price)
		}
	})

	t.Run("carries member email into the review", func(t *testing.T) {
		svc, screeningID, _ := newFlowFixture(price, 2*time.Hour)
		identity := &Identity{UserID: uuid.New(), Email: "member@example.com"}

		resp, err := svc.Review(ctx, screeningID, []string{"2-2"}, "", identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Email != "member@example.com" {
			t.Errorf("email = %q, want member email", resp.Email)
		}
	})

	t.Run("prefills the profile name when none is entered", func(t *testing.T) {
		svc, screeningID, _ := newFlowFixture(price, 2*time.Hour)
		identity := &Identity{UserID: uuid.New(), Name: "Member One", Email: "member@example.com"}

		resp, err := svc.Review(ctx, screeningID, []string{"2-3"}, "", identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.CustomerName != "Member One" {
			t.Errorf("customer name = %q, want profile name", resp.CustomerName)
		}
	})

	t.Run("entered name overrides the profile name", func(t *testing.T) {
		svc, screeningID, _ := newFlowFixture(price, 2*time.Hour)
		identity := &Identity{UserID: uuid.New(), Name: "Member One", Email: "member@example.com"}

		resp, err := svc.Review(ctx, screeningID, []string{"2-4"}, "Someone Else", identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.CustomerName != "Someone Else" {
			t.Errorf("customer name = %q, want entered name", resp.CustomerName)
		}
	})

	t.Run("carries the hall name", func(t *testing.T) {
		svc, screeningID, _ := newFlowFixture(price, 2*time.Hour)

		resp, err := svc.Review(ctx, screeningID, []string{"2-5"}, "Ada Lovelace", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Hall != "Hall 1" {
			t.Errorf("hall = %q, want Hall 1", resp.Hall)
		}
	})

	t.Run("rejects invalid seat ids", func(t *testing.T) {
		svc, screeningID, _ := newFlowFixture(price, 2*time.Hour)

		_, err := svc.Review(ctx, screeningID, []string{"99-1"}, "Ada Lovelace", nil)
		if !errors.Is(err, seats.ErrSeatOutOfRange) {
			t.Fatalf("error = %v, want ErrSeatOutOfRange", err)
		}
	})

	t.Run("rejects started screenings", func(t *testing.T) {
		svc, screeningID, _ := newFlowFixture(price, -time.Minute)

		_, err := svc.Review(ctx, screeningID, []string{"1-1"}, "Ada Lovelace", nil)
		if !errors.Is(err, ErrBookingClosed) {
			t.Fatalf("error = %v, want ErrBookingClosed", err)
		}
	})

	t.Run("unknown screening", func(t *testing.T) {
		svc, _, _ := newFlowFixture(price, 2*time.Hour)

		_, err := svc.Review(ctx, uuid.New(), []string{"1-1"}, "Ada Lovelace", nil)
		if !errors.Is(err, screenings.ErrScreeningNotFound) {
			t.Fatalf("error = %v, want ErrScreeningNotFound", err)
		}
	})
}

func TestPay(t *testing.T) {
	ctx := context.Background()
	price := decimal.NewFromInt(10)

	t.Run("guest without email is rejected before issuing", func(t *testing.T) {
		svc, screeningID, ticketSvc := newFlowFixture(price, 2*time.Hour)

		_, err := svc.Pay(ctx, screeningID, []string{"1-1"}, "Ada Lovelace", "", nil)
		if !errors.Is(err, ErrEmailRequired) {
			t.Fatalf("error = %v, want ErrEmailRequired", err)
		}
		if len(ticketSvc.occupied) != 0 {
			t.Error("no tickets should be issued without an email")
		}
	})

	t.Run("guest without a name is rejected before issuing", func(t *testing.T) {
		svc, screeningID, ticketSvc := newFlowFixture(price, 2*time.Hour)

		_, err := svc.Pay(ctx, screeningID, []string{"1-2"}, "", "guest@example.com", nil)
		if !errors.Is(err, ErrNameRequired) {
			t.Fatalf("error = %v, want ErrNameRequired", err)
		}
		if len(ticketSvc.occupied) != 0 {
			t.Error("no tickets should be issued without a customer name")
		}
	})

	t.Run("guest with email gets tickets", func(t *testing.T) {
		svc, screeningID, _ := newFlowFixture(price, 2*time.Hour)

		resp, err := svc.Pay(ctx, screeningID, []string{"3-3", "3-4"}, "Ada Lovelace", "guest@example.com", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Tickets) != 2 {
			t.Fatalf("got %d tickets, want 2", len(resp.Tickets))
		}
		if !resp.Total.Equal(decimal.NewFromInt(20)) {
			t.Errorf("total = %s, want 20", resp.Total)
		}
	})

	t.Run("member email is used when request omits it", func(t *testing.T) {
		svc, screeningID, ticketSvc := newFlowFixture(price, 2*time.Hour)
		identity := &Identity{UserID: uuid.New(), Name: "Member One", Email: "member@example.com"}

		_, err := svc.Pay(ctx, screeningID, []string{"4-4"}, "", "", identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ticketSvc.lastReq.Email != "member@example.com" {
			t.Errorf("issuer email = %q, want account email", ticketSvc.lastReq.Email)
		}
		if ticketSvc.lastReq.UserID == nil || *ticketSvc.lastReq.UserID != identity.UserID {
			t.Error("issuer should receive the member's user id")
		}
		if ticketSvc.lastReq.CustomerName != "Member One" {
			t.Errorf("issuer name = %q, want profile name", ticketSvc.lastReq.CustomerName)
		}
	})

	t.Run("name and hall reach the issuer", func(t *testing.T) {
		svc, screeningID, ticketSvc := newFlowFixture(price, 2*time.Hour)

		_, err := svc.Pay(ctx, screeningID, []string{"7-7"}, "Ada Lovelace", "guest@example.com", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ticketSvc.lastReq.CustomerName != "Ada Lovelace" {
			t.Errorf("issuer name = %q, want Ada Lovelace", ticketSvc.lastReq.CustomerName)
		}
		if ticketSvc.lastReq.Hall != "Hall 1" {
			t.Errorf("issuer hall = %q, want Hall 1", ticketSvc.lastReq.Hall)
		}
	})

	t.Run("partial loss still succeeds and charges only winners", func(t *testing.T) {
		svc, screeningID, ticketSvc := newFlowFixture(price, 2*time.Hour)
		ticketSvc.occupied["5-5"] = true

		resp, err := svc.Pay(ctx, screeningID, []string{"5-5", "5-6"}, "Ada Lovelace", "guest@example.com", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Tickets) != 1 || resp.Tickets[0].Seat != "5-6" {
			t.Fatalf("tickets = %+v, want only seat 5-6", resp.Tickets)
		}
		if len(resp.SkippedSeats) != 1 || resp.SkippedSeats[0] != "5-5" {
			t.Fatalf("skipped = %v, want [5-5]", resp.SkippedSeats)
		}
		if !resp.Total.Equal(price) {
			t.Errorf("total = %s, want price of one seat", resp.Total)
		}
	})

	t.Run("losing every seat fails with occupied", func(t *testing.T) {
		svc, screeningID, ticketSvc := newFlowFixture(price, 2*time.Hour)
		ticketSvc.occupied["6-6"] = true
		ticketSvc.occupied["6-7"] = true

		_, err := svc.Pay(ctx, screeningID, []string{"6-6", "6-7"}, "Ada Lovelace", "guest@example.com", nil)
		if !errors.Is(err, ErrAllSeatsOccupied) {
			t.Fatalf("error = %v, want ErrAllSeatsOccupied", err)
		}
	})

	t.Run("started screening cannot be paid", func(t *testing.T) {
		svc, screeningID, _ := newFlowFixture(price, -time.Minute)

		_, err := svc.Pay(ctx, screeningID, []string{"1-1"}, "Ada Lovelace", "guest@example.com", nil)
		if !errors.Is(err, ErrBookingClosed) {
			t.Fatalf("error = %v, want ErrBookingClosed", err)
		}
	})
}

func TestScreeningPage(t *testing.T) {
	ctx := context.Background()
	svc, screeningID, ticketSvc := newFlowFixture(decimal.NewFromInt(10), 2*time.Hour)
	ticketSvc.occupied["1-1"] = true

	resp, err := svc.ScreeningPage(ctx, screeningID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SeatMap == nil {
		t.Fatal("seat map missing")
	}
	if resp.Hall != "Hall 1" {
		t.Errorf("hall = %q, want Hall 1", resp.Hall)
	}
	if resp.SeatMap.Available != 179 {
		t.Errorf("available = %d, want 179", resp.SeatMap.Available)
	}
	if !resp.SeatMap.Seats[0][0].Occupied {
		t.Error("seat 1-1 should be occupied in the map")
	}
}
