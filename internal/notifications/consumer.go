package notifications

import (
	"context"
	"fmt"
	"time"

	"villabook/pkg/logger"

	"github.com/IBM/sarama"
)

// Delivery turns a booking event into a guest-facing message. The default
// implementation only logs; a mail sender plugs in here.
type Delivery interface {
	Deliver(ctx context.Context, event *BookingEvent) error
}

// LogDelivery writes each event to the structured log instead of sending
// anything. Used until an outbound mail integration is configured.
type LogDelivery struct {
	Logger *logger.Logger
}

func (d LogDelivery) Deliver(_ context.Context, event *BookingEvent) error {
	d.Logger.Info("Booking notification",
		"type", event.Type,
		"booking_id", event.BookingID,
		"guest_email", event.GuestEmail,
		"refunded", event.Refunded,
	)
	return nil
}

type ConsumerConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "villabook-notification-workers",
		Topic:   "booking-notifications",
	}
}

// Consumer reads booking events off Kafka and hands them to a Delivery
type Consumer struct {
	group    sarama.ConsumerGroup
	config   *ConsumerConfig
	delivery Delivery
	logger   *logger.Logger
	cancel   context.CancelFunc
}

func NewConsumer(config *ConsumerConfig, delivery Delivery, log *logger.Logger) (*Consumer, error) {
	if config == nil {
		config = DefaultConsumerConfig()
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
	}

	return &Consumer{
		group:    group,
		config:   config,
		delivery: delivery,
		logger:   log,
	}, nil
}

// Start consumes until Stop is called or ctx is cancelled
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("Kafka consumer error", "error", err)
		}
	}()

	go func() {
		handler := &consumerHandler{delivery: c.delivery, logger: c.logger}
		for {
			if err := c.group.Consume(ctx, []string{c.config.Topic}, handler); err != nil {
				c.logger.Error("Kafka consume failed", "error", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	c.logger.Info("Notification consumer started", "topic", c.config.Topic, "group", c.config.GroupID)
}

func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	return c.group.Close()
}

type consumerHandler struct {
	delivery Delivery
	logger   *logger.Logger
}

func (h *consumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		event, err := FromJSON(message.Value)
		if err != nil {
			h.logger.Warn("Skipping malformed booking event", "error", err, "offset", message.Offset)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.delivery.Deliver(session.Context(), event); err != nil {
			h.logger.Error("Notification delivery failed",
				"booking_id", event.BookingID, "error", err)
			// Mark anyway; notifications are best effort and a poison
			// message must not wedge the partition.
		}
		session.MarkMessage(message, "")
	}
	return nil
}
