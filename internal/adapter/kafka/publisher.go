package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/heartmarshall/fieldservice-backend/internal/config"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes mutation events to the topic a Listener consumes. It
// lets processes that do not hold the view cache invalidate it remotely.
type Publisher struct {
	log    *slog.Logger
	writer messageWriter
}

// NewPublisher creates a publisher for cfg.Topic.
func NewPublisher(logger *slog.Logger, cfg config.KafkaConfig) (*Publisher, error) {
	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka.NewPublisher: at least one broker is required")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newPublisher(logger, w), nil
}

func newPublisher(logger *slog.Logger, w messageWriter) *Publisher {
	return &Publisher{log: logger.With("component", "kafka_publisher"), writer: w}
}

// NotifyMutation publishes an updated event for the entity.
func (p *Publisher) NotifyMutation(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error {
	return p.Publish(ctx, domain.Mutation{Kind: kind, Action: domain.MutationUpdated, ID: id})
}

// Publish writes one mutation event keyed by entity kind, so events of a
// kind keep their order within a partition.
func (p *Publisher) Publish(ctx context.Context, m domain.Mutation) error {
	value, err := json.Marshal(Event{Kind: string(m.Kind), Action: string(m.Action), ID: m.ID.String()})
	if err != nil {
		return fmt.Errorf("kafka.Publish: %w", err)
	}

	msg := kafka.Message{Key: []byte(m.Kind), Value: value, Time: time.Now()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka.Publish %s: %w", m.Kind, err)
	}

	p.log.DebugContext(ctx, "mutation published",
		slog.String("kind", string(m.Kind)),
		slog.String("id", m.ID.String()),
	)
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
