package evaluator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidEvent is returned when a received event is empty or missing
// mandatory fields. Such events are dropped, never partially trusted.
var ErrInvalidEvent = errors.New("invalid event")

// RawEvent is one telemetry event as it arrives on the wire.
type RawEvent map[string]interface{}

// EventBatch accepts either a single JSON object or a JSON array of objects:
// producers are allowed to publish one event or many per message.
type EventBatch []RawEvent

func (b *EventBatch) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var events []RawEvent

		err := json.Unmarshal(data, &events)
		if err != nil {
			return err
		}

		*b = events

		return nil
	}

	var event RawEvent

	err := json.Unmarshal(data, &event)
	if err != nil {
		return err
	}

	*b = EventBatch{event}

	return nil
}

// Trait type codes, as emitted by the telemetry agents.
type TraitKind int

const (
	TraitText     TraitKind = 1
	TraitInt      TraitKind = 2
	TraitFloat    TraitKind = 3
	TraitDatetime TraitKind = 4
)

// TraitValue is a tagged variant over the normalized trait kinds. Only the
// field matching Kind is meaningful.
type TraitValue struct {
	Kind  TraitKind
	Text  string
	Int   int64
	Float float64
	Time  time.Time
}

// Value returns the dynamically typed form used for condition comparison.
func (v TraitValue) Value() interface{} {
	switch v.Kind {
	case TraitInt:
		return v.Int
	case TraitFloat:
		return v.Float
	case TraitDatetime:
		return v.Time
	default:
		return v.Text
	}
}

func (v TraitValue) String() string {
	switch v.Kind {
	case TraitInt:
		return strconv.FormatInt(v.Int, 10)
	case TraitFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TraitDatetime:
		return v.Time.Format(time.RFC3339Nano)
	default:
		return v.Text
	}
}

// normalizeTrait converts a raw trait value according to its type code.
// Unknown codes fall back to text, matching what the agents send for
// untyped traits.
func normalizeTrait(kind TraitKind, raw interface{}) (TraitValue, error) {
	switch kind {
	case TraitInt:
		i, err := toInt64(raw)
		if err != nil {
			return TraitValue{}, err
		}

		return TraitValue{Kind: TraitInt, Int: i}, nil
	case TraitFloat:
		f, err := toFloat64(raw)
		if err != nil {
			return TraitValue{}, err
		}

		return TraitValue{Kind: TraitFloat, Float: f}, nil
	case TraitDatetime:
		s, ok := raw.(string)
		if !ok {
			return TraitValue{}, fmt.Errorf("datetime trait value %v is not a string", raw)
		}

		ts, err := parseISOTime(s)
		if err != nil {
			return TraitValue{}, err
		}

		return TraitValue{Kind: TraitDatetime, Time: ts.UTC()}, nil
	default:
		return TraitValue{Kind: TraitText, Text: toString(raw)}, nil
	}
}

func toInt64(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("integer trait value %v has a fractional part", v)
		}

		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse integer trait value %q: %w", v, err)
		}

		return i, nil
	default:
		return 0, fmt.Errorf("integer trait value %v has unexpected type %T", raw, raw)
	}
}

func toFloat64(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse float trait value %q: %w", v, err)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("float trait value %v has unexpected type %T", raw, raw)
	}
}

var isoTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
}

func parseISOTime(s string) (time.Time, error) {
	for _, layout := range isoTimeLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse datetime trait value %q", s)
}

func toString(raw interface{}) string {
	s, ok := raw.(string)
	if ok {
		return s
	}

	return fmt.Sprint(raw)
}

// Event holds the validated, normalized form of one raw event for the
// lifetime of an evaluation batch.
type Event struct {
	ID        string
	EventType string
	Project   string

	raw    RawEvent
	traits map[string]TraitValue
}

// ParseEvent validates the mandatory fields and normalizes the traits.
// The project is taken from a tenant_id or project_id trait when present.
func ParseEvent(raw RawEvent) (*Event, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty event", ErrInvalidEvent)
	}

	eventType, _ := raw["event_type"].(string)
	if eventType == "" {
		return nil, fmt.Errorf("%w: missing event_type", ErrInvalidEvent)
	}

	id, _ := raw["message_id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: missing message_id", ErrInvalidEvent)
	}

	ret := &Event{
		ID:        id,
		EventType: eventType,
		raw:       raw,
		traits:    map[string]TraitValue{},
	}

	err := ret.parseTraits()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	return ret, nil
}

func (e *Event) parseTraits() error {
	rawTraits, present := e.raw["traits"]
	if !present {
		return nil
	}

	traits, ok := rawTraits.([]interface{})
	if !ok {
		return fmt.Errorf("traits field has unexpected type %T", rawTraits)
	}

	for _, rt := range traits {
		triple, ok := rt.([]interface{})
		if !ok || len(triple) != 3 {
			return fmt.Errorf("trait %v is not a [name, type, value] triple", rt)
		}

		name, ok := triple[0].(string)
		if !ok {
			return fmt.Errorf("trait name %v is not a string", triple[0])
		}

		kind, err := toInt64(triple[1])
		if err != nil {
			return fmt.Errorf("trait %q has invalid type code: %w", name, err)
		}

		value, err := normalizeTrait(TraitKind(kind), triple[2])
		if err != nil {
			return fmt.Errorf("trait %q has invalid value: %w", name, err)
		}

		// last-write-wins on duplicate trait names
		e.traits[name] = value

		if name == "tenant_id" || name == "project_id" {
			e.Project = value.String()
		}
	}

	return nil
}

// GetValue resolves a dotted field path. "traits.<name>" looks up the
// normalized trait; any other path walks the raw payload, returning nil as
// soon as a segment is not a nested object.
func (e *Event) GetValue(field string) interface{} {
	if strings.HasPrefix(field, "traits.") {
		value, present := e.traits[strings.TrimPrefix(field, "traits.")]
		if !present {
			return nil
		}

		return value.Value()
	}

	var current interface{} = map[string]interface{}(e.raw)

	for _, segment := range strings.Split(field, ".") {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}

		current = node[segment]
	}

	return current
}

// Raw returns the original payload, used as reason data when an alarm fires.
func (e *Event) Raw() RawEvent {
	return e.raw
}
