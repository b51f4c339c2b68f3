package notifications

import (
	"context"
	"fmt"
	"time"

	"villabook/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes booking events to Kafka
type Producer interface {
	Publish(ctx context.Context, event *BookingEvent) error
	HealthCheck(ctx context.Context) error
	Close() error
}

type ProducerConfig struct {
	Brokers  []string
	Topic    string
	RetryMax int
	Timeout  time.Duration
}

func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:  []string{"localhost:9092"},
		Topic:    "booking-notifications",
		RetryMax: 3,
		Timeout:  10 * time.Second,
	}
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	logger   *logger.Logger
}

func NewProducer(config *ProducerConfig, log *logger.Logger) (Producer, error) {
	if config == nil {
		config = DefaultProducerConfig()
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	// Hash on booking id so one booking's events stay ordered
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		config:   config,
		logger:   log,
	}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, event *BookingEvent) error {
	payload, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.config.Topic,
		Key:   sarama.StringEncoder(event.BookingID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Booking event published",
		"type", event.Type,
		"booking_id", event.BookingID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *kafkaProducer) HealthCheck(ctx context.Context) error {
	// SyncProducer keeps broker connections alive; a closed producer is the
	// only local failure mode worth reporting.
	if p.producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}
