package e2e

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/valkey-io/valkey-go"

	"github.com/telemetry-platform/alarm-evaluator/internal/common"
	"github.com/telemetry-platform/alarm-evaluator/internal/config"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo/alarm"
	"github.com/telemetry-platform/alarm-evaluator/internal/factory"
)

const valkeyImage = "quay.io/sclorg/valkey-7-c10s:bf91acf0827dc5db216164aafe3d34beb245dcec"

// TestContext holds one valkey instance and the clients the specs need to
// seed alarms and inspect their state.
type TestContext struct {
	ValkeyClient valkey.Client
	Alarms       alarm.ValkeyRepo

	container   testcontainers.Container
	closeValkey common.CloseFunc
}

func CreateTestContext(ctx context.Context) (TestContext, error) {
	ret := TestContext{}

	req := testcontainers.ContainerRequest{
		Image:        valkeyImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return ret, fmt.Errorf("failed to start valkey instance: %w", err)
	}

	ret.container = container

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		return ret, fmt.Errorf("failed to get valkey endpoint: %w", err)
	}

	client, closeClient, err := factory.CreateValkeyClient(ctx, config.Valkey{URL: endpoint})
	if err != nil {
		return ret, fmt.Errorf("failed to create valkey client: %w", err)
	}

	ret.ValkeyClient = client
	ret.closeValkey = closeClient
	ret.Alarms = alarm.NewValkeyRepo(client)

	return ret, nil
}

// Flush wipes all stored alarms between specs.
func (tc TestContext) Flush(ctx context.Context) error {
	command := tc.ValkeyClient.B().Flushall().Build()

	err := tc.ValkeyClient.Do(ctx, command).Error()
	if err != nil {
		return fmt.Errorf("failed to flush valkey: %w", err)
	}

	return nil
}

func (tc TestContext) Shutdown(ctx context.Context) error {
	if tc.closeValkey != nil {
		err := tc.closeValkey(ctx)
		if err != nil {
			return fmt.Errorf("failed to close valkey client: %w", err)
		}
	}

	if tc.container != nil {
		err := tc.container.Terminate(ctx)
		if err != nil {
			return fmt.Errorf("failed to terminate valkey container: %w", err)
		}
	}

	return nil
}
