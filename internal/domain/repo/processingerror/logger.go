package processingerror

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/telemetry-platform/alarm-evaluator/pkg/pipeline"
)

// LogWriter is the fallback when no dead letter queue bucket is configured:
// the failed message is only dumped to the logs.
type LogWriter struct {
	logger logr.Logger
}

func NewLogWriter(logger logr.Logger) LogWriter {
	return LogWriter{
		logger: logger,
	}
}

func (r LogWriter) WriteProcessingError(ctx context.Context, pErr pipeline.ErrProcessingError) error {
	keysAndValues := []any{
		"category", pErr.Category,
	}

	if pErr.Event != nil {
		keysAndValues = append(keysAndValues,
			"kafka.topic", pErr.Event.Topic,
			"kafka.partition", pErr.Event.Partition,
			"kafka.offset", pErr.Event.Offset,
			"kafka.payload", string(pErr.Event.Value),
		)
	}

	r.logger.Error(pErr, "Dead lettered message", keysAndValues...)

	return nil
}
