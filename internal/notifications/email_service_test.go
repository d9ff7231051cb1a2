package notifications

import (
	"strings"
	"testing"
	"time"

	"reelpass/internal/tickets"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func sampleTickets() []tickets.TicketResponse {
	startsAt := time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC)
	return []tickets.TicketResponse{
		{
			ID:           uuid.New(),
			ScreeningID:  uuid.New(),
			Seat:         "3-12",
			CustomerName: "Ada Lovelace",
			Email:        "guest@example.com",
			Price:        decimal.NewFromFloat(12.50),
			MovieTitle:   "Blade Runner",
			Hall:         "Grand Hall",
			StartsAt:     &startsAt,
			QRImage:      "aVFSb25l",
		},
		{
			ID:           uuid.New(),
			ScreeningID:  uuid.New(),
			Seat:         "3-13",
			CustomerName: "Ada Lovelace",
			Email:        "guest@example.com",
			Price:        decimal.NewFromFloat(12.50),
			MovieTitle:   "Blade Runner",
			Hall:         "Grand Hall",
			StartsAt:     &startsAt,
			QRImage:      "aVFSdHdv",
		},
	}
}

func TestBuildTicketEmail(t *testing.T) {
	htmlBody, textBody := BuildTicketEmail(sampleTickets())

	for _, want := range []string{"Blade Runner", "Seat 3-12", "Seat 3-13", "$12.50"} {
		if !strings.Contains(htmlBody, want) {
			t.Errorf("HTML body missing %q", want)
		}
		if !strings.Contains(textBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}

	if !strings.Contains(htmlBody, "19:30") {
		t.Error("HTML body missing screening time")
	}
	if !strings.Contains(htmlBody, "Hi Ada Lovelace") {
		t.Error("HTML body missing customer greeting")
	}
	if !strings.Contains(htmlBody, "Grand Hall") {
		t.Error("HTML body missing hall name")
	}
	if strings.Count(htmlBody, "data:image/png;base64,") != 2 {
		t.Error("HTML body should embed one QR image per ticket")
	}
	if !strings.Contains(htmlBody, "data:image/png;base64,aVFSb25l") {
		t.Error("embedded QR image does not carry the ticket payload")
	}
}

func TestBuildTicketEmailEmptyBatch(t *testing.T) {
	htmlBody, textBody := BuildTicketEmail(nil)

	if htmlBody == "" || textBody == "" {
		t.Fatal("empty batch should still render a valid body")
	}
	if strings.Contains(htmlBody, "Seat") {
		t.Error("empty batch must not list seats")
	}
}

func TestNewTicketNotification(t *testing.T) {
	batch := sampleTickets()
	n := NewTicketNotification("guest@example.com", batch)

	if n.Status != NotificationStatusPending {
		t.Errorf("status = %s, want pending", n.Status)
	}
	if n.GetPartitionKey() != "guest@example.com" {
		t.Errorf("partition key = %q, want recipient email", n.GetPartitionKey())
	}
	if !strings.Contains(n.Subject, "Blade Runner") {
		t.Errorf("subject = %q, want movie title", n.Subject)
	}

	data, err := n.ToJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	decoded, err := FromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.RecipientEmail != n.RecipientEmail || len(decoded.Tickets) != len(batch) {
		t.Error("round-tripped notification lost data")
	}
}

func TestNotificationLifecycle(t *testing.T) {
	n := NewTicketNotification("guest@example.com", nil)

	n.MarkFailed(errStub("smtp down"))
	if n.Status != NotificationStatusFailed || n.RetryCount != 1 {
		t.Errorf("after failure: status=%s retries=%d", n.Status, n.RetryCount)
	}
	if n.LastError == nil || *n.LastError != "smtp down" {
		t.Error("last error not recorded")
	}

	n.MarkSent()
	if n.Status != NotificationStatusSent || n.SentAt == nil {
		t.Error("sent state not recorded")
	}
}

type errStub string

func (e errStub) Error() string { return string(e) }
