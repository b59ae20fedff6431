package evaluator

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/jonboulle/clockwork"

	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
)

// Engine evaluates batches of incoming events against the alarms of the
// owning project and fires the ones whose rule is satisfied.
//
// Every failure is isolated to the smallest unit that caused it: an invalid
// event is dropped, a broken alarm rule skips that alarm only, a project
// store outage skips that event only. A batch always runs to completion.
type Engine struct {
	cache     *AlarmCache
	refresher Refresher
	clock     clockwork.Clock
	logger    logr.Logger
	metrics   *Metrics
}

func NewEngine(cache *AlarmCache, refresher Refresher, clock clockwork.Clock, metrics *Metrics) *Engine {
	return &Engine{
		cache:     cache,
		refresher: refresher,
		clock:     clock,
		logger:    logr.Discard(),
		metrics:   metrics,
	}
}

func (e *Engine) WithLogger(logger logr.Logger) *Engine {
	e.logger = logger

	return e
}

// EvaluateEvents runs the batch. There is no error return: nothing in here
// is fatal, and recovery is implicit via the next incoming event.
func (e *Engine) EvaluateEvents(ctx context.Context, batch EventBatch) {
	e.logger.V(3).Info("Starting event alarm evaluation", "events", len(batch))

	for _, raw := range batch {
		event, err := ParseEvent(raw)
		if err != nil {
			e.metrics.EventsInvalid.Inc()
			e.logger.V(1).Info("Dropping invalid event", "reason", err.Error())

			continue
		}

		e.metrics.EventsEvaluated.Inc()

		alarms, err := e.cache.Get(ctx, event.Project)
		if err != nil {
			e.metrics.EvaluationErrors.Inc()
			e.logger.Error(err, "Failed to resolve alarms", "project", event.Project, "event", event.ID)

			continue
		}

		for id, alarm := range alarms {
			err := e.evaluateAlarm(ctx, alarm, event)
			if err != nil {
				e.metrics.EvaluationErrors.Inc()
				e.logger.Error(err, "Failed to evaluate alarm", "alarm", id, "event", event.ID)
			}
		}
	}

	e.logger.V(3).Info("Finished event alarm evaluation")
}

func (e *Engine) evaluateAlarm(ctx context.Context, alarm *entity.Alarm, event *Event) error {
	e.logger.V(3).Info("Evaluating alarm", "alarm", alarm.ID, "event", event.ID)

	if !alarm.RepeatActions && alarm.State == entity.StateAlarm {
		e.logger.V(3).Info("Skipping alarm which has already fired", "alarm", alarm.ID)

		return nil
	}

	matched, err := Matches(alarm, event)
	if err != nil {
		return err
	}

	if !matched {
		return nil
	}

	return e.fire(ctx, alarm, event)
}

// fire transitions the alarm into the alarm state: persist, notify, then
// reflect the new state on the cached copy. This evaluator never moves an
// alarm back to ok or insufficient data.
func (e *Engine) fire(ctx context.Context, alarm *entity.Alarm, event *Event) error {
	change := entity.StateChange{
		AlarmID:   alarm.ID,
		ProjectID: alarm.ProjectID,
		Previous:  alarm.State,
		Current:   entity.StateAlarm,
		Reason:    fmt.Sprintf("Event (message_id=%s) hit the query of alarm (id=%s)", event.ID, alarm.ID),
		ReasonData: entity.ReasonData{
			Type:  "event",
			Event: event.Raw(),
		},
		Timestamp: e.clock.Now().UTC(),
	}

	err := e.refresher.Refresh(ctx, change)
	if err != nil {
		return err
	}

	e.cache.MarkFired(alarm.ProjectID, alarm.ID, entity.StateAlarm)
	e.metrics.AlarmsFired.Inc()

	e.logger.V(1).Info("Alarm fired", "alarm", alarm.ID, "project", alarm.ProjectID, "event", event.ID)

	return nil
}
