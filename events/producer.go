package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/prepfox/catalog-service/models"
)

// Publisher is what the services depend on; swapped for a fake in tests.
type Publisher interface {
	Publish(ctx context.Context, event models.StorefrontEvent) error
}

// Producer publishes storefront activity events to Kafka. Publishing is
// fire-and-forget: callers log failures but never fail their own operation
// over one.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

func (p *Producer) Publish(ctx context.Context, event models.StorefrontEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := event.UserID
	if key == "" {
		key = event.ProductID
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		zap.L().Warn("failed to publish storefront event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (p *Producer) Close() {
	_ = p.writer.Close()
}
