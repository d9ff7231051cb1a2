package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"reelpass/internal/shared/config"
	"reelpass/internal/tickets"
)

// EmailService interface for sending ticket emails
type EmailService interface {
	SendTicketConfirmation(ctx context.Context, notification *TicketNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// NewSMTPConfig maps the application email config onto the mailer.
func NewSMTPConfig(cfg config.EmailConfig) *SMTPConfig {
	return &SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
		UseTLS:    true,
		Timeout:   cfg.SendTimeout,
	}
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config *SMTPConfig
}

func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	return &SMTPEmailService{config: config}, nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}
	if config.Password == "" {
		return fmt.Errorf("SMTP password is required")
	}
	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// SendTicketConfirmation renders and sends the confirmation email for
// one batch of tickets.
func (s *SMTPEmailService) SendTicketConfirmation(ctx context.Context, notification *TicketNotification) error {
	log.Printf("📧 [SMTP] Sending ticket confirmation to %s (%d tickets)",
		notification.RecipientEmail, len(notification.Tickets))

	htmlBody, textBody := BuildTicketEmail(notification.Tickets)
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

// SendHTML sends an HTML email
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 [SMTP] Email sent successfully to %s", to)
	return nil
}

// sendWithSTARTTLS sends email with STARTTLS encryption (recommended for Gmail)
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	_, err = w.Write(message)
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

// buildMessage creates the email message with proper headers
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

// BuildTicketEmail renders the confirmation body for a ticket batch.
// Pure function so rendering can be tested without a mail server.
func BuildTicketEmail(list []tickets.TicketResponse) (htmlBody, textBody string) {
	var html, text strings.Builder

	html.WriteString("<h2>🎬 Your tickets are confirmed</h2>")
	text.WriteString("Your tickets are confirmed\n\n")

	if len(list) > 0 {
		if list[0].CustomerName != "" {
			html.WriteString(fmt.Sprintf("<p>Hi %s,</p>", list[0].CustomerName))
			text.WriteString(fmt.Sprintf("Hi %s,\n\n", list[0].CustomerName))
		}

		if list[0].MovieTitle != "" {
			html.WriteString(fmt.Sprintf("<p><strong>%s</strong>", list[0].MovieTitle))
			text.WriteString(list[0].MovieTitle)
			if list[0].StartsAt != nil {
				when := list[0].StartsAt.Format("Mon, 2 Jan 2006 at 15:04")
				html.WriteString(" — " + when)
				text.WriteString(" - " + when)
			}
			if list[0].Hall != "" {
				html.WriteString(", " + list[0].Hall)
				text.WriteString(", " + list[0].Hall)
			}
			html.WriteString("</p>")
			text.WriteString("\n")
		}

		for _, t := range list {
			html.WriteString(fmt.Sprintf("<p>Seat %s — $%s</p>", t.Seat, t.Price.StringFixed(2)))
			text.WriteString(fmt.Sprintf("Seat %s - $%s\n", t.Seat, t.Price.StringFixed(2)))
			if t.QRImage != "" {
				html.WriteString(fmt.Sprintf(
					`<img src="data:image/png;base64,%s" alt="QR code for seat %s" width="220" height="220">`,
					t.QRImage, t.Seat))
			}
		}
	}

	html.WriteString("<p>Show the QR codes above at the entrance.</p>")
	html.WriteString("<p>Best regards,<br>Reelpass Team</p>")
	text.WriteString("\nShow the QR codes from your confirmation at the entrance.\n\nBest regards,\nReelpass Team")

	return html.String(), text.String()
}

type MockEmailService struct{}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendTicketConfirmation(ctx context.Context, notification *TicketNotification) error {
	log.Printf("📧 [MOCK] Ticket confirmation for %s (%d tickets)",
		notification.RecipientEmail, len(notification.Tickets))
	return nil
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [MOCK] To: %s, Subject: %s", to, subject)
	return nil
}
