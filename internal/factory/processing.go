package factory

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/valkey-io/valkey-go"

	"github.com/telemetry-platform/alarm-evaluator/internal/config"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo/alarm"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo/notification"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo/processingerror"
	"github.com/telemetry-platform/alarm-evaluator/internal/evaluator"
	"github.com/telemetry-platform/alarm-evaluator/internal/log"
	"github.com/telemetry-platform/alarm-evaluator/internal/processing"
	"github.com/telemetry-platform/alarm-evaluator/pkg/pipeline"
)

// CreateMainProcessing wires the alarm store, cache, refresher and engine
// into the processing run for every decoded event batch.
func CreateMainProcessing(client valkey.Client, producer sarama.SyncProducer, conf *config.Config, registry prometheus.Registerer) (pipeline.Processing[evaluator.EventBatch], error) {
	store := alarm.NewValkeyRepo(client)
	notifier := notification.NewKafkaWriter(producer, conf.Kafka.Notifier.Topic)

	metrics, err := evaluator.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluator metrics: %w", err)
	}

	clock := clockwork.NewRealClock()

	cache := evaluator.NewAlarmCache(store, conf.Evaluator.CacheTTL, clock)
	refresher := evaluator.NewRefresher(store, notifier)

	engine := evaluator.NewEngine(cache, refresher, clock, metrics).WithLogger(log.Logger())

	return processing.NewMain(engine), nil
}

// CreateErrorProcessing returns the dead letter queue writer, or a
// log-only fallback when no bucket is configured.
func CreateErrorProcessing(ctx context.Context, conf *config.Config) (pipeline.ErrorProcessing, error) {
	if conf.DeadLetterQueue.Bucket == "" {
		return processing.NewMainError(processingerror.NewLogWriter(log.Logger())), nil
	}

	s3Client, err := CreateS3Client(ctx, conf.DeadLetterQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	writer := processingerror.NewS3Writer(s3Client, conf.DeadLetterQueue.Bucket, conf.DeadLetterQueue.KeyPrefix)

	return processing.NewMainError(writer), nil
}

/*
 * DecorateProcessing decorates the main processing as follow:
 *
 * panic --> duration --> retry --> main (evaluation engine)
 */
func DecorateProcessing(mainProcessing pipeline.Processing[evaluator.EventBatch], registry prometheus.Registerer) (pipeline.Processing[evaluator.EventBatch], error) {
	ret := mainProcessing

	ret = pipeline.NewRetryProcessing(ret, pipeline.RetryConfig{})
	ret, err := pipeline.NewDurationMetricsDecoratorProcessing(ret, registry, clockwork.NewRealClock(), pipeline.MetricsConfig{Namespace: "main"})
	if err != nil {
		return nil, fmt.Errorf("failed to create duration metrics processor: %w", err)
	}

	ret = pipeline.NewPanicHandlerProcessing(ret)

	return ret, nil
}

/*
 * DecorateErrorProcessing decorates the error processing as follow:
 *
 *                                   ---> retry --> main (dlq)
 * panic --> duration --> parallel --|
 *                                   ---> error count
 */
func DecorateErrorProcessing(mainProcessing pipeline.ErrorProcessing, registry prometheus.Registerer) (pipeline.ErrorProcessing, error) {
	ret := mainProcessing

	ret = pipeline.NewRetryProcessing(ret, pipeline.RetryConfig{})

	errorCount, err := pipeline.NewErrorCountProcessing(registry, pipeline.MetricsConfig{Namespace: "error"})
	if err != nil {
		return nil, fmt.Errorf("failed to create error count processing: %w", err)
	}

	ret = pipeline.NewParallelProcessing(ret, errorCount)

	ret, err = pipeline.NewDurationMetricsDecoratorProcessing(ret, registry, clockwork.NewRealClock(), pipeline.MetricsConfig{Namespace: "error"})
	if err != nil {
		return nil, fmt.Errorf("failed to create duration metrics processor: %w", err)
	}

	ret = pipeline.NewPanicHandlerProcessing(ret)

	return ret, nil
}
