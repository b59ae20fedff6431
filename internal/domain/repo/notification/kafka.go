package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	"github.com/telemetry-platform/alarm-evaluator/internal/common"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
)

const categoryKafkaProducerError = "kafka_producer"

// KafkaWriter publishes one message per alarm state transition, keyed by
// alarm ID so transitions of the same alarm stay ordered per partition.
type KafkaWriter struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaWriter(producer sarama.SyncProducer, topic string) KafkaWriter {
	return KafkaWriter{
		producer: producer,
		topic:    topic,
	}
}

// notification is the wire model consumed by the downstream notifier
// service (mail, webhook, ...).
type notification struct {
	AlarmID    string                 `json:"alarm_id"`
	ProjectID  string                 `json:"project_id"`
	Previous   string                 `json:"previous"`
	Current    string                 `json:"current"`
	Reason     string                 `json:"reason"`
	ReasonData entity.ReasonData      `json:"reason_data"`
	Timestamp  time.Time              `json:"timestamp"`
}

func (w KafkaWriter) NotifyStateChange(ctx context.Context, change entity.StateChange) error {
	model := notification{
		AlarmID:    change.AlarmID,
		ProjectID:  change.ProjectID,
		Previous:   string(change.Previous),
		Current:    string(change.Current),
		Reason:     change.Reason,
		ReasonData: change.ReasonData,
		Timestamp:  change.Timestamp,
	}

	data, err := json.Marshal(model)
	if err != nil {
		return common.NewErrProcessingError(err, categoryKafkaProducerError, nil, "failed to marshal notification for alarm %s", change.AlarmID)
	}

	message := &sarama.ProducerMessage{
		Topic: w.topic,
		Key:   sarama.StringEncoder(change.AlarmID),
		Value: sarama.ByteEncoder(data),
	}

	_, _, err = w.producer.SendMessage(message)
	if err != nil {
		// The broker may recover before the next attempt
		return common.NewRetryableErrProcessingError(err, categoryKafkaProducerError, nil, "failed to publish notification for alarm %s", change.AlarmID)
	}

	return nil
}
