package entity

import "time"

type AlarmState string

const (
	StateOK               AlarmState = "ok"
	StateAlarm            AlarmState = "alarm"
	StateInsufficientData AlarmState = "insufficient data"
)

const AlarmTypeEvent = "event"

type CompareOp string

const (
	OpGT CompareOp = "gt"
	OpLT CompareOp = "lt"
	OpGE CompareOp = "ge"
	OpLE CompareOp = "le"
	OpEQ CompareOp = "eq"
	OpNE CompareOp = "ne"
)

// Condition compares a dotted event field against a literal value.
// An empty Op means OpEQ.
type Condition struct {
	Field string      `json:"field"`
	Op    CompareOp   `json:"op,omitempty"`
	Value interface{} `json:"value"`
}

// AlarmRule gates on an event type glob pattern, then requires every
// condition of the query to hold (AND).
type AlarmRule struct {
	EventType string      `json:"event_type"`
	Query     []Condition `json:"query"`
}

type Alarm struct {
	ID             string     `json:"alarm_id"`
	Name           string     `json:"name,omitempty"`
	ProjectID      string     `json:"project_id"`
	Type           string     `json:"type"`
	Enabled        bool       `json:"enabled"`
	State          AlarmState `json:"state"`
	StateReason    string     `json:"state_reason,omitempty"`
	StateTimestamp time.Time  `json:"state_timestamp,omitempty"`
	RepeatActions  bool       `json:"repeat_actions"`
	Rule           AlarmRule  `json:"rule"`
}

// ReasonData is attached to a state change so downstream consumers can see
// the payload that triggered the transition.
type ReasonData struct {
	Type  string                 `json:"type"`
	Event map[string]interface{} `json:"event"`
}

// StateChange describes one alarm transition to be persisted and notified.
type StateChange struct {
	AlarmID    string     `json:"alarm_id"`
	ProjectID  string     `json:"project_id"`
	Previous   AlarmState `json:"previous"`
	Current    AlarmState `json:"current"`
	Reason     string     `json:"reason"`
	ReasonData ReasonData `json:"reason_data"`
	Timestamp  time.Time  `json:"timestamp"`
}
