package alarm

import (
	"time"

	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
)

// storedAlarm is the valkey representation of one alarm. It is kept apart
// from the entity so the storage schema can evolve independently.
type storedAlarm struct {
	ID             string           `json:"alarm_id"`
	Name           string           `json:"name,omitempty"`
	ProjectID      string           `json:"project_id"`
	Type           string           `json:"type"`
	Enabled        bool             `json:"enabled"`
	State          string           `json:"state"`
	StateReason    string           `json:"state_reason,omitempty"`
	StateTimestamp time.Time        `json:"state_timestamp,omitempty"`
	RepeatActions  bool             `json:"repeat_actions"`
	Rule           storedRule       `json:"rule"`
}

type storedRule struct {
	EventType string            `json:"event_type"`
	Query     []storedCondition `json:"query"`
}

type storedCondition struct {
	Field string      `json:"field"`
	Op    string      `json:"op,omitempty"`
	Value interface{} `json:"value"`
}

func mapToModel(alarm entity.Alarm) storedAlarm {
	query := make([]storedCondition, 0, len(alarm.Rule.Query))

	for _, condition := range alarm.Rule.Query {
		query = append(query, storedCondition{
			Field: condition.Field,
			Op:    string(condition.Op),
			Value: condition.Value,
		})
	}

	return storedAlarm{
		ID:             alarm.ID,
		Name:           alarm.Name,
		ProjectID:      alarm.ProjectID,
		Type:           alarm.Type,
		Enabled:        alarm.Enabled,
		State:          string(alarm.State),
		StateReason:    alarm.StateReason,
		StateTimestamp: alarm.StateTimestamp,
		RepeatActions:  alarm.RepeatActions,
		Rule: storedRule{
			EventType: alarm.Rule.EventType,
			Query:     query,
		},
	}
}

func mapToEntity(model storedAlarm) entity.Alarm {
	query := make([]entity.Condition, 0, len(model.Rule.Query))

	for _, condition := range model.Rule.Query {
		query = append(query, entity.Condition{
			Field: condition.Field,
			Op:    entity.CompareOp(condition.Op),
			Value: condition.Value,
		})
	}

	return entity.Alarm{
		ID:             model.ID,
		Name:           model.Name,
		ProjectID:      model.ProjectID,
		Type:           model.Type,
		Enabled:        model.Enabled,
		State:          entity.AlarmState(model.State),
		StateReason:    model.StateReason,
		StateTimestamp: model.StateTimestamp,
		RepeatActions:  model.RepeatActions,
		Rule: entity.AlarmRule{
			EventType: model.Rule.EventType,
			Query:     query,
		},
	}
}
