package evaluator

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
)

var (
	errUnknownOperator   = errors.New("unknown comparison operator")
	errIncomparableTypes = errors.New("values are not comparable")
)

// Matches reports whether the event satisfies the alarm rule: the event type
// must match the rule's glob pattern, then every condition of the query must
// hold. Evaluation short-circuits on the first unmet condition.
//
// Errors are alarm-scoped: a malformed pattern or an ordering comparison
// between incompatible types fails this alarm only.
func Matches(alarm *entity.Alarm, event *Event) (bool, error) {
	ok, err := path.Match(alarm.Rule.EventType, event.EventType)
	if err != nil {
		return false, fmt.Errorf("invalid event_type pattern %q: %w", alarm.Rule.EventType, err)
	}

	if !ok {
		return false, nil
	}

	for _, condition := range alarm.Rule.Query {
		ok, err := evalCondition(condition, event)
		if err != nil {
			return false, fmt.Errorf("condition on field %q: %w", condition.Field, err)
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}

func evalCondition(condition entity.Condition, event *Event) (bool, error) {
	op := condition.Op
	if op == "" {
		op = entity.OpEQ
	}

	value := event.GetValue(condition.Field)

	switch op {
	case entity.OpEQ:
		return equalValues(value, condition.Value), nil
	case entity.OpNE:
		return !equalValues(value, condition.Value), nil
	case entity.OpGT, entity.OpGE, entity.OpLT, entity.OpLE:
		order, err := orderValues(value, condition.Value)
		if err != nil {
			return false, err
		}

		switch op {
		case entity.OpGT:
			return order > 0, nil
		case entity.OpGE:
			return order >= 0, nil
		case entity.OpLT:
			return order < 0, nil
		default:
			return order <= 0, nil
		}
	default:
		return false, fmt.Errorf("%w: %q", errUnknownOperator, op)
	}
}

// equalValues compares across numeric representations but never errors:
// values of unrelated types are simply not equal.
func equalValues(a, b interface{}) bool {
	fa, aNumeric := asFloat(a)
	fb, bNumeric := asFloat(b)

	if aNumeric && bNumeric {
		return fa == fb
	}

	ta, aTime := a.(time.Time)
	tb, bTime := b.(time.Time)

	if aTime && bTime {
		return ta.Equal(tb)
	}

	sa, aString := a.(string)
	sb, bString := b.(string)

	if aString && bString {
		return sa == sb
	}

	ba, aBool := a.(bool)
	bb, bBool := b.(bool)

	if aBool && bBool {
		return ba == bb
	}

	if a == nil && b == nil {
		return true
	}

	return false
}

// orderValues returns -1, 0 or 1. Ordering is only defined between two
// numbers, two strings, or two timestamps.
func orderValues(a, b interface{}) (int, error) {
	fa, aNumeric := asFloat(a)
	fb, bNumeric := asFloat(b)

	if aNumeric && bNumeric {
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		default:
			return 0, nil
		}
	}

	ta, aTime := a.(time.Time)
	tb, bTime := b.(time.Time)

	if aTime && bTime {
		switch {
		case ta.Before(tb):
			return -1, nil
		case ta.After(tb):
			return 1, nil
		default:
			return 0, nil
		}
	}

	sa, aString := a.(string)
	sb, bString := b.(string)

	if aString && bString {
		return strings.Compare(sa, sb), nil
	}

	return 0, fmt.Errorf("%w: %T and %T", errIncomparableTypes, a, b)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
