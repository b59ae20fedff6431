package pipeline

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-logr/logr"
)

// Runner ties a consumer group to a JSONHandler and keeps consuming until
// the context is canceled.
type Runner[Payload any] struct {
	consumer sarama.ConsumerGroup
	topics   []string

	handler JSONHandler[Payload]

	logger logr.Logger
}

func NewRunner[Payload any](consumer sarama.ConsumerGroup, topics []string, processing Processing[Payload], errorProcessing ErrorProcessing) Runner[Payload] {
	handler := NewJSONHandler(processing, errorProcessing)

	return Runner[Payload]{
		consumer: consumer,
		topics:   topics,
		handler:  handler,
		logger:   logr.Discard(),
	}
}

func (r Runner[Payload]) WithLogger(logger logr.Logger) Runner[Payload] {
	r.logger = logger
	r.handler = r.handler.WithLogger(logger)

	return r
}

func (r Runner[Payload]) Start(ctx context.Context) error {
	go func() {
		for err := range r.consumer.Errors() {
			r.logger.Error(err, "kafka consumer error")
		}
	}()

	for {
		err := r.consumer.Consume(ctx, r.topics, r.handler)
		if err != nil {
			r.logger.Error(err, "Consumer failed")

			return fmt.Errorf("consumer failed: %w", err)
		}

		// If context is canceled, no need to keep looping
		err = ctx.Err()
		if err != nil {
			r.logger.V(0).Info("Context expired")

			return err
		}
	}
}
