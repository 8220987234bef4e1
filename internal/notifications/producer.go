package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"ticketly/internal/bookings"
	"ticketly/pkg/logger"
)

// ProducerConfig contains configuration for the Kafka booking-event
// producer.
type ProducerConfig struct {
	Brokers      []string
	BookingTopic string
	RetryMax     int
	TimeoutMs    int
}

// DefaultProducerConfig returns a default producer configuration
func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:      []string{"localhost:9092"},
		BookingTopic: "booking-events",
		RetryMax:     3,
		TimeoutMs:    10000,
	}
}

// Producer publishes booking lifecycle events to Kafka. It satisfies the
// bookings.Notifier port.
type Producer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	log      *logger.Logger
}

// NewProducer creates a Kafka producer with idempotent writes and full
// ISR acknowledgement.
func NewProducer(config *ProducerConfig) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		config:   config,
		log:      logger.GetDefault(),
	}, nil
}

func (p *Producer) BookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	return p.publish(ctx, EventTypeBookingConfirmed, booking)
}

func (p *Producer) BookingCancelled(ctx context.Context, booking *bookings.Booking) error {
	return p.publish(ctx, EventTypeBookingCancelled, booking)
}

func (p *Producer) publish(_ context.Context, eventType EventType, booking *bookings.Booking) error {
	event := &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		BookingID:  booking.ID,
		BookingRef: booking.BookingRef,
		UserID:     booking.UserID,
		EventID:    booking.EventID,
		Total:      booking.Total,
		OccurredAt: time.Now(),
	}
	for _, seat := range booking.Seats {
		event.SeatIDs = append(event.SeatIDs, seat.SeatID)
	}

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.config.BookingTopic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
			{Key: []byte("booking_ref"), Value: []byte(booking.BookingRef)},
			{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send booking event to Kafka: %w", err)
	}

	p.log.Info("booking event published",
		"topic", p.config.BookingTopic,
		"partition", partition,
		"offset", offset,
		"type", string(eventType),
		"booking_ref", booking.BookingRef,
	)
	return nil
}

// Close closes the underlying Kafka producer.
func (p *Producer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}
