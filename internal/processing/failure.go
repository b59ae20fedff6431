package processing

import (
	"context"
	"fmt"

	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo"
	"github.com/telemetry-platform/alarm-evaluator/pkg/pipeline"
)

// MainError routes pipeline failures to the dead letter queue.
type MainError struct {
	writer repo.ProcessingErrorWriter
}

func NewMainError(writer repo.ProcessingErrorWriter) MainError {
	return MainError{
		writer: writer,
	}
}

func (m MainError) Process(ctx context.Context, pErr pipeline.ErrProcessingError) error {
	err := m.writer.WriteProcessingError(ctx, pErr)
	if err != nil {
		return fmt.Errorf("failed to write processing error: %w", err)
	}

	return nil
}
