// Package kafka consumes entity mutation events so that writes made by other
// processes invalidate this process's derived views.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/heartmarshall/fieldservice-backend/internal/config"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

type notifier interface {
	NotifyMutation(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Listener feeds mutation events from one topic into a notifier.
type Listener struct {
	log    *slog.Logger
	reader messageReader
	notify notifier
}

// NewListener creates a consumer-group listener for cfg.Topic.
func NewListener(logger *slog.Logger, cfg config.KafkaConfig, notify notifier) (*Listener, error) {
	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		StartOffset: kafka.LastOffset,
	})

	return newListener(logger.With("topic", cfg.Topic, "group", cfg.GroupID), reader, notify), nil
}

func newListener(logger *slog.Logger, r messageReader, notify notifier) *Listener {
	return &Listener{
		log:    logger.With("component", "kafka_listener"),
		reader: r,
		notify: notify,
	}
}

// Run consumes until ctx is done, then closes the reader. Malformed events
// and notifier failures are logged and committed so one bad message cannot
// stall the partition.
func (l *Listener) Run(ctx context.Context) error {
	l.log.InfoContext(ctx, "kafka listener started")
	defer func() {
		if err := l.reader.Close(); err != nil {
			l.log.Error("close kafka reader", slog.String("error", err.Error()))
		}
		l.log.Info("kafka listener stopped")
	}()

	for {
		msg, err := l.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("kafka.Run: fetch: %w", err)
		}

		l.handle(ctx, msg)

		if err := l.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.log.ErrorContext(ctx, "commit message",
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (l *Listener) handle(ctx context.Context, msg kafka.Message) {
	m, err := ParseEvent(msg.Value)
	if err != nil {
		l.log.WarnContext(ctx, "malformed mutation event",
			slog.Int("partition", msg.Partition),
			slog.Int64("offset", msg.Offset),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := l.notify.NotifyMutation(ctx, m.Kind, m.ID); err != nil {
		l.log.ErrorContext(ctx, "notify mutation",
			slog.String("kind", string(m.Kind)),
			slog.String("id", m.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	l.log.DebugContext(ctx, "mutation event applied",
		slog.String("kind", string(m.Kind)),
		slog.String("action", string(m.Action)),
		slog.String("id", m.ID.String()),
	)
}
