package e2e_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/telemetry-platform/alarm-evaluator/internal/config"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo"
	"github.com/telemetry-platform/alarm-evaluator/internal/evaluator"
	"github.com/telemetry-platform/alarm-evaluator/internal/factory"
	"github.com/telemetry-platform/alarm-evaluator/pkg/pipeline"
	"github.com/telemetry-platform/alarm-evaluator/test/e2e"
)

var testContext e2e.TestContext

// Helper

type notificationPayload struct {
	AlarmID    string            `json:"alarm_id"`
	ProjectID  string            `json:"project_id"`
	Previous   string            `json:"previous"`
	Current    string            `json:"current"`
	Reason     string            `json:"reason"`
	ReasonData entity.ReasonData `json:"reason_data"`
	Timestamp  time.Time         `json:"timestamp"`
}

func deleteEventPayload(messageID, instanceID, projectID string) []byte {
	return []byte(fmt.Sprintf(`{
		"message_id": %q,
		"event_type": "compute.instance.delete.end",
		"generated": "2026-08-29T10:00:00Z",
		"traits": [
			["instance_id", 1, %q],
			["tenant_id", 1, %q],
			["memory_mb", 2, 512]
		]
	}`, messageID, instanceID, projectID))
}

func instanceDeletedAlarm(id, projectID string) entity.Alarm {
	return entity.Alarm{
		ID:        id,
		Name:      "instance deleted",
		ProjectID: projectID,
		Type:      entity.AlarmTypeEvent,
		Enabled:   true,
		State:     entity.StateInsufficientData,
		Rule: entity.AlarmRule{
			EventType: "compute.instance.delete.*",
			Query: []entity.Condition{
				{Field: "traits.instance_id", Op: entity.OpEQ, Value: "i-42"},
			},
		},
	}
}

func decodeBatch(payload []byte) (evaluator.EventBatch, error) {
	batch := evaluator.EventBatch{}

	err := json.Unmarshal(payload, &batch)
	if err != nil {
		return batch, fmt.Errorf("failed to decode payload: %w", err)
	}

	return batch, nil
}

// Suite setup

var _ = BeforeSuite(func(ctx SpecContext) {
	var err error

	testContext, err = e2e.CreateTestContext(ctx)
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func(ctx SpecContext) {
	err := testContext.Shutdown(ctx)
	Expect(err).NotTo(HaveOccurred())
})

// Go Test

func TestEvaluation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Evaluation end to end test suite")
}

// Test Case

var _ = Describe("Evaluating event batches against stored alarms", func() {
	var producer *mocks.SyncProducer
	var proc pipeline.Processing[evaluator.EventBatch]

	BeforeEach(func(ctx SpecContext) {
		err := testContext.Flush(ctx)
		Expect(err).NotTo(HaveOccurred())

		producerConfig := sarama.NewConfig()
		producerConfig.Producer.Return.Successes = true

		producer = mocks.NewSyncProducer(GinkgoT(), producerConfig)

		conf := &config.Config{
			Kafka: config.Kafka{
				Notifier: config.KafkaNotifier{Topic: "alarm.notifications"},
			},
			Evaluator: config.Evaluator{CacheTTL: time.Minute},
		}

		registry := prometheus.NewPedanticRegistry()

		mainProcessing, err := factory.CreateMainProcessing(testContext.ValkeyClient, producer, conf, registry)
		Expect(err).NotTo(HaveOccurred())

		proc, err = factory.DecorateProcessing(mainProcessing, registry)
		Expect(err).NotTo(HaveOccurred())
	})

	When("an event matches one stored alarm", func() {
		var notified notificationPayload

		BeforeEach(func(ctx SpecContext) {
			err := testContext.Alarms.PutAlarm(ctx, instanceDeletedAlarm("a1", "p1"))
			Expect(err).NotTo(HaveOccurred())

			producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
				return json.Unmarshal(value, &notified)
			})

			batch, err := decodeBatch(deleteEventPayload("m1", "i-42", "p1"))
			Expect(err).NotTo(HaveOccurred())

			err = proc.Process(ctx, batch)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should fire the alarm", func(ctx SpecContext) {
			By("publishing a notification")
			Expect(notified.AlarmID).To(Equal("a1"))
			Expect(notified.ProjectID).To(Equal("p1"))
			Expect(notified.Previous).To(Equal("insufficient data"))
			Expect(notified.Current).To(Equal("alarm"))
			Expect(notified.Reason).To(ContainSubstring("message_id=m1"))
			Expect(notified.Reason).To(ContainSubstring("id=a1"))
			Expect(notified.ReasonData.Type).To(Equal("event"))
			Expect(notified.ReasonData.Event).To(HaveKeyWithValue("message_id", "m1"))

			By("persisting the state transition")
			alarms, err := testContext.Alarms.GetAlarms(ctx, repo.AlarmFilter{ProjectID: "p1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(alarms).To(HaveLen(1))
			Expect(alarms[0].State).To(Equal(entity.StateAlarm))
			Expect(alarms[0].StateReason).To(ContainSubstring("message_id=m1"))
		})

		It("should not fire again for the next matching event", func(ctx SpecContext) {
			batch, err := decodeBatch(deleteEventPayload("m2", "i-42", "p1"))
			Expect(err).NotTo(HaveOccurred())

			// The mock producer fails the spec on any unexpected publish
			err = proc.Process(ctx, batch)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	When("an event does not match the stored alarm", func() {
		BeforeEach(func(ctx SpecContext) {
			err := testContext.Alarms.PutAlarm(ctx, instanceDeletedAlarm("a1", "p1"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should leave the alarm untouched", func(ctx SpecContext) {
			batch, err := decodeBatch(deleteEventPayload("m1", "i-other", "p1"))
			Expect(err).NotTo(HaveOccurred())

			err = proc.Process(ctx, batch)
			Expect(err).NotTo(HaveOccurred())

			alarms, err := testContext.Alarms.GetAlarms(ctx, repo.AlarmFilter{ProjectID: "p1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(alarms).To(HaveLen(1))
			Expect(alarms[0].State).To(Equal(entity.StateInsufficientData))
		})
	})

	When("the batch holds several events for different projects", func() {
		BeforeEach(func(ctx SpecContext) {
			err := testContext.Alarms.PutAlarm(ctx, instanceDeletedAlarm("a1", "p1"))
			Expect(err).NotTo(HaveOccurred())

			err = testContext.Alarms.PutAlarm(ctx, instanceDeletedAlarm("a2", "p2"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should fire the alarm of each project", func(ctx SpecContext) {
			producer.ExpectSendMessageAndSucceed()
			producer.ExpectSendMessageAndSucceed()

			payload := fmt.Sprintf("[%s,%s]",
				deleteEventPayload("m1", "i-42", "p1"),
				deleteEventPayload("m2", "i-42", "p2"),
			)

			batch, err := decodeBatch([]byte(payload))
			Expect(err).NotTo(HaveOccurred())

			err = proc.Process(ctx, batch)
			Expect(err).NotTo(HaveOccurred())

			for _, projectID := range []string{"p1", "p2"} {
				alarms, err := testContext.Alarms.GetAlarms(ctx, repo.AlarmFilter{ProjectID: projectID})
				Expect(err).NotTo(HaveOccurred())
				Expect(alarms).To(HaveLen(1))
				Expect(alarms[0].State).To(Equal(entity.StateAlarm))
			}
		})
	})

	When("an event of the batch is missing its message id", func() {
		BeforeEach(func(ctx SpecContext) {
			err := testContext.Alarms.PutAlarm(ctx, instanceDeletedAlarm("a1", "p1"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should drop the broken event and evaluate the rest", func(ctx SpecContext) {
			producer.ExpectSendMessageAndSucceed()

			payload := fmt.Sprintf(`[{"event_type":"compute.instance.delete.end"},%s]`,
				deleteEventPayload("m1", "i-42", "p1"),
			)

			batch, err := decodeBatch([]byte(payload))
			Expect(err).NotTo(HaveOccurred())

			err = proc.Process(ctx, batch)
			Expect(err).NotTo(HaveOccurred())

			alarms, err := testContext.Alarms.GetAlarms(ctx, repo.AlarmFilter{ProjectID: "p1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(alarms).To(HaveLen(1))
			Expect(alarms[0].State).To(Equal(entity.StateAlarm))
		})
	})
})
