package tickets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"reelpass/internal/movies"
	"reelpass/internal/screenings"
	"reelpass/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeRepo enforces the (screening_id, seat) uniqueness the database
// index provides in production.
type fakeRepo struct {
	mu        sync.Mutex
	tickets   map[uuid.UUID]*Ticket
	seatIndex map[string]uuid.UUID
	byStart   map[uuid.UUID]time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tickets:   make(map[uuid.UUID]*Ticket),
		seatIndex: make(map[string]uuid.UUID),
		byStart:   make(map[uuid.UUID]time.Time),
	}
}

func seatKey(screeningID uuid.UUID, seat string) string {
	return screeningID.String() + "|" + seat
}

func (f *fakeRepo) setScreeningStart(id uuid.UUID, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byStart[id] = at
}

func (f *fakeRepo) Create(_ context.Context, ticket *Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := seatKey(ticket.ScreeningID, ticket.Seat)
	if _, taken := f.seatIndex[key]; taken {
		return ErrSeatTaken
	}

	stored := *ticket
	stored.CreatedAt = time.Now()
	if start, ok := f.byStart[ticket.ScreeningID]; ok {
		stored.Screening = &screenings.Screening{
			ID:       ticket.ScreeningID,
			StartsAt: start,
			Movie:    &movies.Movie{Title: "Test Movie"},
		}
	}
	f.tickets[ticket.ID] = &stored
	f.seatIndex[key] = ticket.ID
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) GetOccupiedSeats(_ context.Context, screeningID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seats []string
	for _, t := range f.tickets {
		if t.ScreeningID == screeningID {
			seats = append(seats, t.Seat)
		}
	}
	return seats, nil
}

func (f *fakeRepo) GetByEmailUpcoming(_ context.Context, email string, after time.Time) ([]Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []Ticket
	for _, t := range f.tickets {
		if !strings.EqualFold(t.Email, email) {
			continue
		}
		if t.Screening == nil || !t.Screening.StartsAt.After(after) {
			continue
		}
		list = append(list, *t)
	}
	sortByStart(list)
	return list, nil
}

func (f *fakeRepo) GetByUserUpcoming(_ context.Context, userID uuid.UUID, after time.Time) ([]Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []Ticket
	for _, t := range f.tickets {
		if t.UserID == nil || *t.UserID != userID {
			continue
		}
		if t.Screening == nil || !t.Screening.StartsAt.After(after) {
			continue
		}
		list = append(list, *t)
	}
	sortByStart(list)
	return list, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	delete(f.seatIndex, seatKey(t.ScreeningID, t.Seat))
	delete(f.tickets, id)
	return nil
}

func sortByStart(list []Ticket) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Screening.StartsAt.Before(list[j].Screening.StartsAt)
	})
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]TicketResponse
}

func (n *recordingNotifier) NotifyTicketsIssued(_ context.Context, _ string, issued []TicketResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, issued)
}

func newTestService(repo Repository, notifier Notifier) Service {
	return NewService(repo, notifier, logger.GetDefault())
}

func TestIssueTickets(t *testing.T) {
	ctx := context.Background()
	screeningID := uuid.New()
	price := decimal.NewFromFloat(12.50)

	t.Run("issues all requested seats", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)

		result, err := svc.IssueTickets(ctx, IssueRequest{
			ScreeningID:  screeningID,
			Seats:        []string{"1-1", "1-2", "1-3"},
			CustomerName: "Ada Lovelace",
			Email:        "Guest@Example.COM",
			Price:        price,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Created) != 3 {
			t.Fatalf("created %d tickets, want 3", len(result.Created))
		}
		if len(result.SkippedSeats) != 0 {
			t.Fatalf("skipped %v, want none", result.SkippedSeats)
		}
		for _, ticket := range result.Created {
			if ticket.Email != "guest@example.com" {
				t.Errorf("email not normalized: %q", ticket.Email)
			}
			if ticket.CustomerName != "Ada Lovelace" {
				t.Errorf("customer name = %q, want Ada Lovelace", ticket.CustomerName)
			}
			if !ticket.Price.Equal(price) {
				t.Errorf("price = %s, want %s", ticket.Price, price)
			}
			png, decErr := base64.StdEncoding.DecodeString(ticket.QRImage)
			if decErr != nil {
				t.Fatalf("qr image is not valid base64: %v", decErr)
			}
			if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
				t.Error("qr image does not decode to a PNG")
			}
		}
		if len(notifier.calls) != 1 {
			t.Fatalf("notifier called %d times, want 1", len(notifier.calls))
		}
	})

	t.Run("persists the customer name", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})

		result, err := svc.IssueTickets(ctx, IssueRequest{
			ScreeningID:  screeningID,
			Seats:        []string{"9-9"},
			CustomerName: "  Grace Hopper  ",
			Email:        "grace@example.com",
			Price:        price,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := repo.GetByID(ctx, result.Created[0].ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.CustomerName != "Grace Hopper" {
			t.Errorf("stored name = %q, want trimmed Grace Hopper", stored.CustomerName)
		}
	})

	t.Run("skips seats already taken", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})

		_, err := svc.IssueTickets(ctx, IssueRequest{
			ScreeningID: screeningID,
			Seats:       []string{"2-5"},
			Email:       "first@example.com",
			Price:       price,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := svc.IssueTickets(ctx, IssueRequest{
			ScreeningID: screeningID,
			Seats:       []string{"2-5", "2-6"},
			Email:       "second@example.com",
			Price:       price,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Created) != 1 || result.Created[0].Seat != "2-6" {
			t.Fatalf("created = %+v, want only seat 2-6", result.Created)
		}
		if len(result.SkippedSeats) != 1 || result.SkippedSeats[0] != "2-5" {
			t.Fatalf("skipped = %v, want [2-5]", result.SkippedSeats)
		}
	})

	t.Run("no notification when nothing was created", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})

		_, err := svc.IssueTickets(ctx, IssueRequest{
			ScreeningID: screeningID,
			Seats:       []string{"3-1"},
			Email:       "first@example.com",
			Price:       price,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		notifier := &recordingNotifier{}
		svc = newTestService(repo, notifier)
		result, err := svc.IssueTickets(ctx, IssueRequest{
			ScreeningID: screeningID,
			Seats:       []string{"3-1"},
			Email:       "second@example.com",
			Price:       price,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Created) != 0 {
			t.Fatalf("created = %+v, want none", result.Created)
		}
		if len(notifier.calls) != 0 {
			t.Fatalf("notifier called %d times, want 0", len(notifier.calls))
		}
	})
}

// TestIssueTicketsConcurrent races many bookings for the same seat and
// checks that exactly one wins.
func TestIssueTicketsConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	screeningID := uuid.New()
	price := decimal.NewFromInt(10)

	const racers = 20
	var wg sync.WaitGroup
	results := make([]*IssueResult, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			result, err := svc.IssueTickets(ctx, IssueRequest{
				ScreeningID: screeningID,
				Seats:       []string{"5-5"},
				Email:       fmt.Sprintf("racer%d@example.com", n),
				Price:       price,
			})
			if err != nil {
				t.Errorf("racer %d failed: %v", n, err)
				return
			}
			results[n] = result
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, result := range results {
		if result == nil {
			continue
		}
		if len(result.Created) == 1 {
			winners++
		} else if len(result.SkippedSeats) != 1 {
			t.Errorf("loser should report the seat as skipped, got %+v", result)
		}
	}
	if winners != 1 {
		t.Fatalf("%d racers won seat 5-5, want exactly 1", winners)
	}
}

func TestGuestLookup(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	price := decimal.NewFromInt(10)

	future := uuid.New()
	later := uuid.New()
	past := uuid.New()
	repo.setScreeningStart(future, time.Now().Add(2*time.Hour))
	repo.setScreeningStart(later, time.Now().Add(48*time.Hour))
	repo.setScreeningStart(past, time.Now().Add(-2*time.Hour))

	for _, screening := range []uuid.UUID{later, past, future} {
		_, err := svc.IssueTickets(ctx, IssueRequest{
			ScreeningID: screening,
			Seats:       []string{"1-1"},
			Email:       "guest@example.com",
			Price:       price,
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	t.Run("case-insensitive match, future only, soonest first", func(t *testing.T) {
		resp, err := svc.GuestLookup(ctx, "GUEST@example.COM")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Total != 2 {
			t.Fatalf("total = %d, want 2 (past ticket excluded)", resp.Total)
		}
		if resp.Tickets[0].ScreeningID != future || resp.Tickets[1].ScreeningID != later {
			t.Error("tickets not ordered by screening start time")
		}
	})

	t.Run("unknown email returns empty list", func(t *testing.T) {
		resp, err := svc.GuestLookup(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Total != 0 {
			t.Fatalf("total = %d, want 0", resp.Total)
		}
	})

	t.Run("blank email returns empty list, not an error", func(t *testing.T) {
		for _, email := range []string{"", "   "} {
			resp, err := svc.GuestLookup(ctx, email)
			if err != nil {
				t.Fatalf("GuestLookup(%q) error: %v", email, err)
			}
			if resp.Total != 0 || len(resp.Tickets) != 0 {
				t.Fatalf("GuestLookup(%q) total = %d, want 0", email, resp.Total)
			}
		}
	})
}

func TestGuestCancel(t *testing.T) {
	ctx := context.Background()
	price := decimal.NewFromInt(10)

	setup := func(t *testing.T, startsIn time.Duration) (Service, *fakeRepo, uuid.UUID) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})
		screeningID := uuid.New()
		repo.setScreeningStart(screeningID, time.Now().Add(startsIn))

		result, err := svc.IssueTickets(ctx, IssueRequest{
			ScreeningID: screeningID,
			Seats:       []string{"4-4"},
			Email:       "owner@example.com",
			Price:       price,
		})
		if err != nil || len(result.Created) != 1 {
			t.Fatalf("seed failed: %v", err)
		}
		return svc, repo, result.Created[0].ID
	}

	t.Run("owner email cancels and frees the seat", func(t *testing.T) {
		svc, repo, ticketID := setup(t, 2*time.Hour)

		if err := svc.GuestCancel(ctx, ticketID, "OWNER@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.GetByID(ctx, ticketID); !errors.Is(err, ErrTicketNotFound) {
			t.Error("ticket should be deleted")
		}
	})

	t.Run("wrong email is rejected", func(t *testing.T) {
		svc, _, ticketID := setup(t, 2*time.Hour)

		err := svc.GuestCancel(ctx, ticketID, "intruder@example.com")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("error = %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("cancel closes once the screening started", func(t *testing.T) {
		svc, _, ticketID := setup(t, -time.Minute)

		err := svc.GuestCancel(ctx, ticketID, "owner@example.com")
		if !errors.Is(err, ErrScreeningStarted) {
			t.Fatalf("error = %v, want ErrScreeningStarted", err)
		}
	})

	t.Run("unknown ticket", func(t *testing.T) {
		svc, _, _ := setup(t, 2*time.Hour)

		err := svc.GuestCancel(ctx, uuid.New(), "owner@example.com")
		if !errors.Is(err, ErrTicketNotFound) {
			t.Fatalf("error = %v, want ErrTicketNotFound", err)
		}
	})
}

func TestUserCancelOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	screeningID := uuid.New()
	repo.setScreeningStart(screeningID, time.Now().Add(3*time.Hour))

	owner := uuid.New()
	result, err := svc.IssueTickets(ctx, IssueRequest{
		ScreeningID: screeningID,
		Seats:       []string{"6-6"},
		Email:       "member@example.com",
		UserID:      &owner,
		Price:       decimal.NewFromInt(10),
	})
	if err != nil || len(result.Created) != 1 {
		t.Fatalf("seed failed: %v", err)
	}
	ticketID := result.Created[0].ID

	if err := svc.UserCancel(ctx, ticketID, uuid.New()); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("stranger cancel error = %v, want ErrNotAuthorized", err)
	}
	if err := svc.UserCancel(ctx, ticketID, owner); err != nil {
		t.Fatalf("owner cancel failed: %v", err)
	}
}

func TestTicketQRPNGOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	screeningID := uuid.New()
	repo.setScreeningStart(screeningID, time.Now().Add(3*time.Hour))

	owner := uuid.New()
	result, err := svc.IssueTickets(ctx, IssueRequest{
		ScreeningID: screeningID,
		Seats:       []string{"7-7"},
		Email:       "member@example.com",
		UserID:      &owner,
		Price:       decimal.NewFromInt(10),
	})
	if err != nil || len(result.Created) != 1 {
		t.Fatalf("seed failed: %v", err)
	}
	ticketID := result.Created[0].ID

	if _, err := svc.TicketQRPNG(ctx, ticketID, uuid.New()); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("stranger QR error = %v, want ErrNotAuthorized", err)
	}

	png, err := svc.TicketQRPNG(ctx, ticketID, owner)
	if err != nil {
		t.Fatalf("owner QR failed: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("empty PNG")
	}
}
