package evaluator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	EventsEvaluated  prometheus.Counter
	EventsInvalid    prometheus.Counter
	AlarmsFired      prometheus.Counter
	EvaluationErrors prometheus.Counter
}

func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	ret := &Metrics{
		EventsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "evaluator",
			Name:      "events_evaluated_total",
			Help:      "Events accepted for alarm evaluation.",
		}),
		EventsInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "evaluator",
			Name:      "events_invalid_total",
			Help:      "Events dropped for missing mandatory fields.",
		}),
		AlarmsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "evaluator",
			Name:      "alarms_fired_total",
			Help:      "Alarms transitioned into the alarm state.",
		}),
		EvaluationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "evaluator",
			Name:      "evaluation_errors_total",
			Help:      "Alarm evaluations abandoned because of an error.",
		}),
	}

	collectors := []prometheus.Collector{
		ret.EventsEvaluated,
		ret.EventsInvalid,
		ret.AlarmsFired,
		ret.EvaluationErrors,
	}

	for _, collector := range collectors {
		err := registry.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return ret, nil
}

// NewUnregisteredMetrics is for tests that don't care about scraping.
func NewUnregisteredMetrics() *Metrics {
	ret, _ := NewMetrics(prometheus.NewRegistry())

	return ret
}
