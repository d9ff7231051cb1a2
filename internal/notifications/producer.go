package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// TicketProducer interface defines the contract for publishing ticket notifications
type TicketProducer interface {
	Publish(ctx context.Context, notification *TicketNotification) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka ticket producer
type KafkaProducerConfig struct {
	Brokers           []string
	NotificationTopic string
	RetryMax          int
	TimeoutMs         int
	RequiredAcks      sarama.RequiredAcks
	CompressionType   sarama.CompressionCodec
	IdempotentWrites  bool
	MaxMessageBytes   int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:           []string{"localhost:9092"},
		NotificationTopic: "ticket-notifications",
		RetryMax:          3,
		TimeoutMs:         10000,             // 10 seconds
		RequiredAcks:      sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:   sarama.CompressionSnappy,
		IdempotentWrites:  true,
		MaxMessageBytes:   1000000, // 1MB
	}
}

// KafkaTicketProducer handles publishing ticket notifications to Kafka
type KafkaTicketProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaTicketProducer creates a new Kafka ticket notification producer
func NewKafkaTicketProducer(config *KafkaProducerConfig) (TicketProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keyed on recipient email keeps per-inbox order
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka ticket notification producer created successfully")
	return &KafkaTicketProducer{producer: producer, config: config}, nil
}

// Publish publishes a single ticket notification to Kafka
func (ktp *KafkaTicketProducer) Publish(ctx context.Context, notification *TicketNotification) error {
	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     ktp.config.NotificationTopic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   ktp.createHeaders(notification),
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := ktp.producer.SendMessage(message)
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("failed to send notification to Kafka: %w", err)
	}

	log.Printf("📤 Ticket notification published - Topic: %s, Partition: %d, Offset: %d, Recipient: %s, Tickets: %d",
		ktp.config.NotificationTopic, partition, offset, notification.RecipientEmail, len(notification.Tickets))

	return nil
}

// createHeaders creates Kafka headers for ticket notifications
func (ktp *KafkaTicketProducer) createHeaders(notification *TicketNotification) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
		{Key: []byte("recipient_email"), Value: []byte(notification.RecipientEmail)},
		{Key: []byte("ticket_count"), Value: []byte(fmt.Sprintf("%d", len(notification.Tickets)))},
		{Key: []byte("producer"), Value: []byte("reelpass-tickets")},
		{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
	}

	if len(notification.Tickets) > 0 {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("screening_id"),
			Value: []byte(notification.Tickets[0].ScreeningID.String()),
		})
	}

	return headers
}

// Close closes the Kafka producer
func (ktp *KafkaTicketProducer) Close() error {
	if ktp.producer != nil {
		err := ktp.producer.Close()
		if err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka ticket notification producer closed")
	}
	return nil
}

// HealthCheck performs a health check on the Kafka producer
func (ktp *KafkaTicketProducer) HealthCheck(ctx context.Context) error {
	if ktp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if ktp.config.NotificationTopic == "" {
		return fmt.Errorf("health check failed - notification topic not configured")
	}
	return nil
}
