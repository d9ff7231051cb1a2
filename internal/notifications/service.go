package notifications

import (
	"context"
	"time"

	"reelpass/internal/shared/config"
	"reelpass/internal/tickets"
	"reelpass/pkg/logger"
)

// Dispatcher feeds issued tickets into the delivery pipeline. It
// satisfies the ticket issuer's Notifier contract: failures are
// logged and swallowed, never returned to the booking flow.
type Dispatcher interface {
	tickets.Notifier
	Close() error
}

// KafkaDispatcher publishes confirmations to Kafka; the consumer
// workers handle actual SMTP delivery.
type KafkaDispatcher struct {
	producer TicketProducer
	logger   *logger.Logger
}

func NewKafkaDispatcher(producer TicketProducer, log *logger.Logger) *KafkaDispatcher {
	return &KafkaDispatcher{producer: producer, logger: log}
}

func (d *KafkaDispatcher) NotifyTicketsIssued(ctx context.Context, email string, issued []tickets.TicketResponse) {
	notification := NewTicketNotification(email, issued)
	if err := d.producer.Publish(ctx, notification); err != nil {
		d.logger.LogNotificationFailure(ctx, email, err)
	}
}

func (d *KafkaDispatcher) Close() error {
	return d.producer.Close()
}

// DirectDispatcher sends the email in-process. Used when no Kafka
// brokers are configured (local development, small deployments).
type DirectDispatcher struct {
	email   EmailService
	timeout time.Duration
	logger  *logger.Logger
}

func NewDirectDispatcher(email EmailService, timeout time.Duration, log *logger.Logger) *DirectDispatcher {
	return &DirectDispatcher{email: email, timeout: timeout, logger: log}
}

func (d *DirectDispatcher) NotifyTicketsIssued(ctx context.Context, email string, issued []tickets.TicketResponse) {
	notification := NewTicketNotification(email, issued)

	// Detach from the request context: the HTTP response must not
	// wait on SMTP.
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.email.SendTicketConfirmation(sendCtx, notification); err != nil {
			d.logger.LogNotificationFailure(sendCtx, email, err)
			return
		}
		notification.MarkSent()
	}()
}

func (d *DirectDispatcher) Close() error {
	return nil
}

// Pipeline bundles whichever dispatcher variant the config selects
// with its optional consumer side.
type Pipeline struct {
	Dispatcher Dispatcher
	Consumer   NotificationConsumer
}

// NewPipeline wires the notification path from config. With brokers
// configured it builds the Kafka producer plus consumer workers;
// without, it falls back to in-process delivery. An unset SMTP host
// selects the mock mailer.
func NewPipeline(cfg *config.Config, log *logger.Logger) (*Pipeline, error) {
	var email EmailService
	if cfg.Email.SMTPHost != "" {
		smtpService, err := NewSMTPEmailService(NewSMTPConfig(cfg.Email))
		if err != nil {
			return nil, err
		}
		email = smtpService
	} else {
		email = NewMockEmailService()
	}

	if len(cfg.Kafka.Brokers) == 0 {
		return &Pipeline{
			Dispatcher: NewDirectDispatcher(email, cfg.Email.SendTimeout, log),
		}, nil
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.NotificationTopic = cfg.Kafka.NotificationTopic

	producer, err := NewKafkaTicketProducer(producerConfig)
	if err != nil {
		return nil, err
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, email)
	if err != nil {
		producer.Close()
		return nil, err
	}

	return &Pipeline{
		Dispatcher: NewKafkaDispatcher(producer, log),
		Consumer:   consumer,
	}, nil
}
