package kafka_middleware

import (
	"context"
	"log"
	"time"

	"campushub/pkg/kafka"
)

// LoggingProducerMiddleware logs message publishing operations
func LoggingProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)

		if err != nil {
			log.Printf(
				"[KAFKA PRODUCER] Failed to publish | topic=%s key=%s event_id=%s event_type=%s duration=%s error=%v",
				msg.Topic,
				msg.Key,
				msg.GetEventID(),
				msg.GetEventType(),
				duration,
				err,
			)
		} else {
			log.Printf(
				"[KAFKA PRODUCER] Published | topic=%s key=%s event_id=%s event_type=%s duration=%s",
				msg.Topic,
				msg.Key,
				msg.GetEventID(),
				msg.GetEventType(),
				duration,
			)
		}

		return err
	}
}

// LoggingConsumerMiddleware logs message consumption operations
func LoggingConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)

		if err != nil {
			log.Printf(
				"[KAFKA CONSUMER] Failed to process | topic=%s partition=%d offset=%d key=%s event_type=%s duration=%s error=%v",
				msg.Topic,
				msg.Partition,
				msg.Offset,
				msg.Key,
				msg.GetEventType(),
				duration,
				err,
			)
		} else {
			log.Printf(
				"[KAFKA CONSUMER] Processed | topic=%s partition=%d offset=%d key=%s event_type=%s duration=%s",
				msg.Topic,
				msg.Partition,
				msg.Offset,
				msg.Key,
				msg.GetEventType(),
				duration,
			)
		}

		return err
	}
}
