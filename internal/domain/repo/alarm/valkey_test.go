package alarm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/valkey-io/valkey-go"

	"github.com/telemetry-platform/alarm-evaluator/internal/config"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo/alarm"
	"github.com/telemetry-platform/alarm-evaluator/internal/factory"
)

// Helper

func startValkey(t *testing.T) testcontainers.Container {
	req := testcontainers.ContainerRequest{
		Image:        "quay.io/sclorg/valkey-7-c10s:bf91acf0827dc5db216164aafe3d34beb245dcec",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections tcp"),
	}
	ret, err := testcontainers.GenericContainer(context.Background(), testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})

	t.Cleanup(func() {
		if ret != nil {
			_ = ret.Terminate(context.Background())
		}
	})

	require.NoError(t, err, "failed to start valkey instance")

	return ret
}

func createValkeyClient(t *testing.T, container testcontainers.Container) valkey.Client {
	endpoint, err := container.Endpoint(context.Background(), "")
	require.NoError(t, err, "failed to get valkey endpoint")

	ret, closeClient, err := factory.CreateValkeyClient(context.Background(), config.Valkey{URL: endpoint})
	require.NoError(t, err, "failed to create valkey client")

	t.Cleanup(func() {
		_ = closeClient(context.Background())
	})

	return ret
}

func eventAlarm(id, projectID string, enabled bool) entity.Alarm {
	return entity.Alarm{
		ID:        id,
		Name:      "instance deleted",
		ProjectID: projectID,
		Type:      entity.AlarmTypeEvent,
		Enabled:   enabled,
		State:     entity.StateInsufficientData,
		Rule: entity.AlarmRule{
			EventType: "compute.instance.delete.*",
			Query: []entity.Condition{
				{Field: "traits.instance_id", Op: entity.OpEQ, Value: "i-42"},
			},
		},
	}
}

func pointer[T any](obj T) *T {
	return &obj
}

// Test suite definition

type ValkeyAlarmIntegrationTestSuite struct {
	suite.Suite

	client    valkey.Client
	repo      alarm.ValkeyRepo
	container testcontainers.Container
}

func (s *ValkeyAlarmIntegrationTestSuite) SetupSuite() {
	t := s.T()

	s.container = startValkey(t)
	s.client = createValkeyClient(t, s.container)
	s.repo = alarm.NewValkeyRepo(s.client)
}

func (s *ValkeyAlarmIntegrationTestSuite) TearDownTest() {
	ctx := context.Background()
	command := s.client.B().Flushall().Build()

	err := s.client.Do(ctx, command).Error()
	require.NoError(s.T(), err, "failed to clean valkey")
}

// Run test

func TestValkeyAlarmIntegrationTestSuite(t *testing.T) {
	t.Parallel()

	suite.Run(t, new(ValkeyAlarmIntegrationTestSuite))
}

// Test

func (s *ValkeyAlarmIntegrationTestSuite) TestPutAndGet() {
	ctx := context.Background()
	t := s.T()

	stored := eventAlarm("a1", "p1", true)
	err := s.repo.PutAlarm(ctx, stored)
	require.NoError(t, err, "failed to put alarm")

	res, err := s.repo.GetAlarms(ctx, repo.AlarmFilter{ProjectID: "p1"})
	require.NoError(t, err, "failed to get alarms")

	require.Len(t, res, 1, "unexpected number of alarms: %d", len(res))
	assert.Equal(t, stored, res[0], "different alarm")
}

func (s *ValkeyAlarmIntegrationTestSuite) TestGetFiltersDisabledAlarms() {
	ctx := context.Background()
	t := s.T()

	err := s.repo.PutAlarm(ctx, eventAlarm("a1", "p1", true))
	require.NoError(t, err, "failed to put enabled alarm")

	err = s.repo.PutAlarm(ctx, eventAlarm("a2", "p1", false))
	require.NoError(t, err, "failed to put disabled alarm")

	res, err := s.repo.GetAlarms(ctx, repo.AlarmFilter{ProjectID: "p1", Enabled: pointer(true)})
	require.NoError(t, err, "failed to get alarms")

	require.Len(t, res, 1, "unexpected number of alarms: %d", len(res))
	assert.Equal(t, "a1", res[0].ID, "wrong alarm kept by the filter")
}

func (s *ValkeyAlarmIntegrationTestSuite) TestGetFiltersOtherAlarmTypes() {
	ctx := context.Background()
	t := s.T()

	err := s.repo.PutAlarm(ctx, eventAlarm("a1", "p1", true))
	require.NoError(t, err, "failed to put event alarm")

	other := eventAlarm("a2", "p1", true)
	other.Type = "gnocchi_resources_threshold"

	err = s.repo.PutAlarm(ctx, other)
	require.NoError(t, err, "failed to put threshold alarm")

	res, err := s.repo.GetAlarms(ctx, repo.AlarmFilter{ProjectID: "p1", Type: entity.AlarmTypeEvent})
	require.NoError(t, err, "failed to get alarms")

	require.Len(t, res, 1, "unexpected number of alarms: %d", len(res))
	assert.Equal(t, "a1", res[0].ID, "wrong alarm kept by the filter")
}

func (s *ValkeyAlarmIntegrationTestSuite) TestGetIsolatesProjects() {
	ctx := context.Background()
	t := s.T()

	err := s.repo.PutAlarm(ctx, eventAlarm("a1", "p1", true))
	require.NoError(t, err, "failed to put alarm for p1")

	err = s.repo.PutAlarm(ctx, eventAlarm("a2", "p2", true))
	require.NoError(t, err, "failed to put alarm for p2")

	res, err := s.repo.GetAlarms(ctx, repo.AlarmFilter{ProjectID: "p2"})
	require.NoError(t, err, "failed to get alarms")

	require.Len(t, res, 1, "unexpected number of alarms: %d", len(res))
	assert.Equal(t, "a2", res[0].ID, "alarm from another project leaked")
}

func (s *ValkeyAlarmIntegrationTestSuite) TestGetUnknownProject() {
	ctx := context.Background()
	t := s.T()

	res, err := s.repo.GetAlarms(ctx, repo.AlarmFilter{ProjectID: "random"})
	require.NoError(t, err, "failed to get alarms")

	require.Len(t, res, 0, "unexpected number of alarms: %d", len(res))
}

func (s *ValkeyAlarmIntegrationTestSuite) TestUpdateAlarmState() {
	ctx := context.Background()
	t := s.T()

	err := s.repo.PutAlarm(ctx, eventAlarm("a1", "p1", true))
	require.NoError(t, err, "failed to put alarm")

	firedAt := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

	err = s.repo.UpdateAlarmState(ctx, entity.StateChange{
		AlarmID:   "a1",
		ProjectID: "p1",
		Previous:  entity.StateInsufficientData,
		Current:   entity.StateAlarm,
		Reason:    "Event (message_id=m1) hit the query of alarm (id=a1)",
		Timestamp: firedAt,
	})
	require.NoError(t, err, "failed to update alarm state")

	res, err := s.repo.GetAlarms(ctx, repo.AlarmFilter{ProjectID: "p1"})
	require.NoError(t, err, "failed to get alarms")
	require.Len(t, res, 1, "unexpected number of alarms: %d", len(res))

	assert.Equal(t, entity.StateAlarm, res[0].State, "state not updated")
	assert.Equal(t, "Event (message_id=m1) hit the query of alarm (id=a1)", res[0].StateReason, "reason not updated")
	assert.Equal(t, firedAt, res[0].StateTimestamp.UTC(), "timestamp not updated")

	assert.Equal(t, "compute.instance.delete.*", res[0].Rule.EventType, "rule lost during update")
}

func (s *ValkeyAlarmIntegrationTestSuite) TestUpdateUnknownAlarm() {
	ctx := context.Background()
	t := s.T()

	err := s.repo.UpdateAlarmState(ctx, entity.StateChange{
		AlarmID:   "missing",
		ProjectID: "p1",
		Current:   entity.StateAlarm,
	})

	require.Error(t, err, "expected an error for an unknown alarm")
	assert.True(t, errors.Is(err, alarm.ErrAlarmNotFound), "error is not ErrAlarmNotFound")
}
