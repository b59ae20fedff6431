package processing

import (
	"context"

	"github.com/telemetry-platform/alarm-evaluator/internal/evaluator"
)

// Main is the payload processing plugged into the consumer pipeline: it
// hands each decoded event batch to the evaluation engine. The engine
// isolates its own failures per event and per alarm, so from the pipeline's
// point of view a batch never fails once it was decoded.
type Main struct {
	engine *evaluator.Engine
}

func NewMain(engine *evaluator.Engine) Main {
	return Main{
		engine: engine,
	}
}

func (m Main) Process(ctx context.Context, batch evaluator.EventBatch) error {
	m.engine.EvaluateEvents(ctx, batch)

	return nil
}
