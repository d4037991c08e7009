package events

import (
	"context"
	"time"

	"campushub/pkg/kafka"
	kafka_config "campushub/pkg/kafka/config"
	kafka_middleware "campushub/pkg/kafka/middleware"
	"campushub/pkg/logger"
	"campushub/pkg/model"
)

// Feed publishes document change notifications to the shared change topic.
// Messages are keyed by sector so consumers observe changes from a single
// sector in order.
type Feed struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewFeed(cfg *kafka_config.Config, topic string, dlqTopic string, source string, log *logger.Logger) (*Feed, error) {
	producer, err := kafka.NewProducer(cfg, topic, dlqTopic)
	if err != nil {
		return nil, err
	}

	if cfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware())
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}

	return &Feed{
		producer: producer,
		source:   source,
		log:      log,
	}, nil
}

// Publish emits a change event for a document. Failures are logged and
// swallowed: the write that triggered the event already committed, and
// consumers re-pull full state on every event, so a lost notification only
// delays convergence until the next event.
func (f *Feed) Publish(ctx context.Context, sector model.Sector, action string, documentID string) {
	event := model.ChangeEvent{
		Sector:     sector,
		Action:     action,
		DocumentID: documentID,
		OccurredAt: time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(string(sector)).
		WithValue(event).
		WithEventType(action).
		WithSource(f.source).
		Build()

	if err := f.producer.Publish(ctx, msg); err != nil {
		f.log.Error("Failed to publish change event",
			"sector", sector,
			"action", action,
			"document_id", documentID,
			"error", err,
		)
		return
	}

	f.log.Debug("Change event published",
		"sector", sector,
		"action", action,
		"document_id", documentID,
	)
}

func (f *Feed) Close() error {
	return f.producer.Close()
}

// Listener consumes the change topic and dispatches decoded events.
type Listener struct {
	consumer *kafka.Consumer
	log      *logger.Logger
}

func NewListener(cfg *kafka_config.Config, topic string, groupID string, dlqTopic string, log *logger.Logger, handle func(ctx context.Context, event model.ChangeEvent) error) (*Listener, error) {
	handler := func(ctx context.Context, msg kafka.Message) error {
		var event model.ChangeEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("deserialization failed", err)
		}
		return handle(ctx, event)
	}

	consumer, err := kafka.NewConsumer(cfg, topic, groupID, dlqTopic, handler)
	if err != nil {
		return nil, err
	}

	if cfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware())
		consumer.Use(kafka_middleware.MetricsConsumerMiddleware())
	}

	return &Listener{
		consumer: consumer,
		log:      log,
	}, nil
}

// Start blocks consuming events until ctx is cancelled.
func (l *Listener) Start(ctx context.Context) error {
	l.log.Info("Change event listener started")
	return l.consumer.Start(ctx)
}

func (l *Listener) Close() error {
	return l.consumer.Close()
}
