package config

import "time"

type Config struct {
	GracefulDuration time.Duration
	Metrics          Metrics
	Logs             Logs
	Kafka            Kafka
	Valkey           Valkey
	DeadLetterQueue  S3
	Evaluator        Evaluator
}

type Metrics struct {
	Port int
}

type Logs struct {
	Level   int
	Encoder EncoderType
}

type EncoderType string

const (
	EncoderTypeJson    EncoderType = "json"
	EncoderTypeConsole EncoderType = "console"
)

// Evaluator carries the alarm evaluation tunables.
// CacheTTL bounds the age of the per-project alarm cache; 0 disables
// caching so every lookup hits the store.
type Evaluator struct {
	CacheTTL time.Duration
}

type Kafka struct {
	Broker   KafkaBroker
	Consumer KafkaConsumer
	Notifier KafkaNotifier
}

type KafkaBroker struct {
	URLs    string
	Version string
	Creds   KafkaCreds
}

type KafkaCreds struct{}

func (c KafkaCreds) String() string {
	return ""
}

type KafkaConsumer struct {
	Topic string
	Group string
}

// KafkaNotifier is the topic alarm state transitions are published to.
type KafkaNotifier struct {
	Topic string
}

type Valkey struct {
	URL   string
	Creds ValkeyCreds
}

type ValkeyCreds struct {
	Password string
}

func (c ValkeyCreds) String() string {
	if c.Password != "" {
		return "password set"
	}

	return "no password"
}

type S3 struct {
	Bucket       string
	KeyPrefix    string
	BaseEndpoint string
	Region       string
	UsePathStyle bool
	Creds        AWSCreds
}

type AWSCreds struct {
	AccessKeyID     string
	SecretAccessKey string
}

func (c AWSCreds) String() string {
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		return "creds set"
	}

	return "no creds"
}
