package notifications

import (
	"encoding/json"
	"time"

	"reelpass/internal/tickets"

	"github.com/google/uuid"
)

// NotificationStatus tracks delivery state
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusQueued  NotificationStatus = "queued"
	NotificationStatusSending NotificationStatus = "sending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// TicketNotification is the message carried through the pipeline for
// one payment's worth of tickets. Delivery is best-effort: the tickets
// are already committed before this is ever built.
type TicketNotification struct {
	ID             uuid.UUID                `json:"id"`
	RecipientEmail string                   `json:"recipient_email"`
	Subject        string                   `json:"subject"`
	Tickets        []tickets.TicketResponse `json:"tickets"`
	Status         NotificationStatus       `json:"status"`
	RetryCount     int                      `json:"retry_count"`
	LastError      *string                  `json:"last_error,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
	SentAt         *time.Time               `json:"sent_at,omitempty"`
}

// NewTicketNotification builds a confirmation message for freshly
// issued tickets.
func NewTicketNotification(email string, issued []tickets.TicketResponse) *TicketNotification {
	now := time.Now()
	return &TicketNotification{
		ID:             uuid.New(),
		RecipientEmail: email,
		Subject:        buildSubject(issued),
		Tickets:        issued,
		Status:         NotificationStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func buildSubject(issued []tickets.TicketResponse) string {
	if len(issued) > 0 && issued[0].MovieTitle != "" {
		return "🎬 Your tickets for " + issued[0].MovieTitle
	}
	return "🎬 Your Reelpass tickets"
}

// GetPartitionKey routes all messages for one recipient to the same
// partition so delivery order per inbox is stable.
func (n *TicketNotification) GetPartitionKey() string {
	return n.RecipientEmail
}

func (n *TicketNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func FromJSON(data []byte) (*TicketNotification, error) {
	var n TicketNotification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (n *TicketNotification) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *TicketNotification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	n.RetryCount++
	errorStr := err.Error()
	n.LastError = &errorStr
	n.UpdatedAt = time.Now()
}
