package repo

import (
	"context"

	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
	"github.com/telemetry-platform/alarm-evaluator/pkg/pipeline"
)

//go:generate mockgen -source=interfaces.go -package=mock -destination=./mock/mock_repo.go

// AlarmFilter narrows a lookup to alarms of one project, kind and enabled
// flag. Nil Enabled means "don't filter on it".
type AlarmFilter struct {
	Enabled   *bool
	Type      string
	ProjectID string
}

type AlarmGetter interface {
	GetAlarms(ctx context.Context, filter AlarmFilter) ([]entity.Alarm, error)
}

type AlarmStateWriter interface {
	UpdateAlarmState(ctx context.Context, change entity.StateChange) error
}

type AlarmStore interface {
	AlarmGetter
	AlarmStateWriter
}

type StateChangeNotifier interface {
	NotifyStateChange(ctx context.Context, change entity.StateChange) error
}

type ProcessingErrorWriter interface {
	WriteProcessingError(ctx context.Context, pErr pipeline.ErrProcessingError) error
}
