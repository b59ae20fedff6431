package evaluator

import (
	"context"
	"fmt"

	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo"
)

// Refresher persists an alarm state transition and dispatches the matching
// notification. Failures are alarm-scoped.
type Refresher interface {
	Refresh(ctx context.Context, change entity.StateChange) error
}

type storeNotifierRefresher struct {
	store    repo.AlarmStateWriter
	notifier repo.StateChangeNotifier
}

func NewRefresher(store repo.AlarmStateWriter, notifier repo.StateChangeNotifier) Refresher {
	return storeNotifierRefresher{
		store:    store,
		notifier: notifier,
	}
}

func (r storeNotifierRefresher) Refresh(ctx context.Context, change entity.StateChange) error {
	err := r.store.UpdateAlarmState(ctx, change)
	if err != nil {
		return fmt.Errorf("failed to persist state of alarm %s: %w", change.AlarmID, err)
	}

	err = r.notifier.NotifyStateChange(ctx, change)
	if err != nil {
		return fmt.Errorf("failed to notify state change of alarm %s: %w", change.AlarmID, err)
	}

	return nil
}
