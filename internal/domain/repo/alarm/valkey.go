package alarm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"syscall"

	"github.com/valkey-io/valkey-go"

	"github.com/telemetry-platform/alarm-evaluator/internal/common"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo"
)

const (
	categoryInternalError     = "valkey_internal_error"
	categoryValkeyClientError = "valkey_client"

	keyPrefix = "alarms:"
)

var ErrAlarmNotFound = errors.New("alarm not found")

// ValkeyRepo stores the alarms of each project in one hash: the key is
// derived from the project ID, the fields are alarm IDs, the values are the
// marshaled alarms.
type ValkeyRepo struct {
	client valkey.Client
}

func NewValkeyRepo(client valkey.Client) ValkeyRepo {
	return ValkeyRepo{
		client: client,
	}
}

func projectKey(projectID string) string {
	return keyPrefix + projectID
}

func (r ValkeyRepo) GetAlarms(ctx context.Context, filter repo.AlarmFilter) ([]entity.Alarm, error) {
	command := r.client.B().Hgetall().Key(projectKey(filter.ProjectID)).Build()

	resp := r.client.Do(ctx, command)

	err := resp.Error()
	if err != nil {
		switch {
		case r.isRetryable(err):
			return nil, common.NewRetryableErrProcessingError(err, categoryValkeyClientError, nil, "failed to get project alarms")
		default:
			return nil, common.NewErrProcessingError(err, categoryValkeyClientError, nil, "failed to get project alarms")
		}
	}

	result, err := resp.AsStrMap()
	if err != nil {
		return nil, common.NewErrProcessingError(err, categoryInternalError, nil, "unexpected hgetall response type for project %s", filter.ProjectID)
	}

	ret := make([]entity.Alarm, 0, len(result))

	for alarmID, jsonAlarm := range result {
		model := storedAlarm{}

		err := json.Unmarshal([]byte(jsonAlarm), &model)
		if err != nil {
			return nil, common.NewErrProcessingError(err, categoryInternalError, nil, "failed to unmarshal alarm %s of project %s", alarmID, filter.ProjectID)
		}

		alarm := mapToEntity(model)

		if filter.Enabled != nil && alarm.Enabled != *filter.Enabled {
			continue
		}

		if filter.Type != "" && alarm.Type != filter.Type {
			continue
		}

		ret = append(ret, alarm)
	}

	return ret, nil
}

// UpdateAlarmState rewrites the stored alarm with the state, reason and
// timestamp of the transition.
func (r ValkeyRepo) UpdateAlarmState(ctx context.Context, change entity.StateChange) error {
	key := projectKey(change.ProjectID)

	command := r.client.B().Hget().Key(key).Field(change.AlarmID).Build()

	resp := r.client.Do(ctx, command)

	err := resp.Error()
	if err != nil {
		switch {
		case valkey.IsValkeyNil(err):
			return common.NewErrProcessingError(ErrAlarmNotFound, categoryValkeyClientError, nil, "alarm %s of project %s", change.AlarmID, change.ProjectID)
		case r.isRetryable(err):
			return common.NewRetryableErrProcessingError(err, categoryValkeyClientError, nil, "failed to get alarm %s", change.AlarmID)
		default:
			return common.NewErrProcessingError(err, categoryValkeyClientError, nil, "failed to get alarm %s", change.AlarmID)
		}
	}

	jsonAlarm, err := resp.ToString()
	if err != nil {
		return common.NewErrProcessingError(err, categoryInternalError, nil, "unexpected hget response type for alarm %s", change.AlarmID)
	}

	model := storedAlarm{}

	err = json.Unmarshal([]byte(jsonAlarm), &model)
	if err != nil {
		return common.NewErrProcessingError(err, categoryInternalError, nil, "failed to unmarshal alarm %s", change.AlarmID)
	}

	model.State = string(change.Current)
	model.StateReason = change.Reason
	model.StateTimestamp = change.Timestamp

	data, err := json.Marshal(model)
	if err != nil {
		return common.NewErrProcessingError(err, categoryInternalError, nil, "failed to marshal alarm %s", change.AlarmID)
	}

	set := r.client.B().Hset().Key(key).FieldValue().FieldValue(change.AlarmID, string(data)).Build()

	err = r.client.Do(ctx, set).Error()
	if err != nil {
		switch {
		case r.isRetryable(err):
			return common.NewRetryableErrProcessingError(err, categoryValkeyClientError, nil, "failed to set alarm %s", change.AlarmID)
		default:
			return common.NewErrProcessingError(err, categoryValkeyClientError, nil, "failed to set alarm %s", change.AlarmID)
		}
	}

	return nil
}

// PutAlarm inserts or replaces one alarm. The evaluator itself never calls
// it; alarm provisioning and the tests do.
func (r ValkeyRepo) PutAlarm(ctx context.Context, alarm entity.Alarm) error {
	data, err := json.Marshal(mapToModel(alarm))
	if err != nil {
		return fmt.Errorf("failed to marshal alarm %s: %w", alarm.ID, err)
	}

	command := r.client.B().Hset().Key(projectKey(alarm.ProjectID)).FieldValue().FieldValue(alarm.ID, string(data)).Build()

	err = r.client.Do(ctx, command).Error()
	if err != nil {
		return fmt.Errorf("failed to set alarm %s: %w", alarm.ID, err)
	}

	return nil
}

func (r ValkeyRepo) isRetryable(err error) bool {
	// Network error
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	vErr, isValkeyError := valkey.IsValkeyErr(err)
	if !isValkeyError {
		return false
	}

	return vErr.IsTryAgain()
}
