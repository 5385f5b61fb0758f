// Package metrics counts the dispatching of hsm machines with Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tobbstr/hsm"
)

const namespace = "hsm"

// Collector implements hsm.Tracer by counting dispatched events per machine and handler results per result code.
type Collector[S, E ~uint] struct {
	events  *prometheus.CounterVec
	results *prometheus.CounterVec
}

// New creates a Collector and registers its metrics with reg. It returns an error if the metrics are already
// registered.
func New[S, E ~uint](reg prometheus.Registerer) (*Collector[S, E], error) {
	c := &Collector[S, E]{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "events_total",
				Help:      "Total number of events offered to state handlers, per machine index",
			},
			[]string{"machine"},
		),
		results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "handler",
				Name:      "results_total",
				Help:      "Total number of state handler results, per result code",
			},
			[]string{"result"},
		),
	}
	for _, col := range []prometheus.Collector{c.events, c.results} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Event counts an event offered to a handler.
func (c *Collector[S, E]) Event(machine int, _ S, _ E) {
	c.events.WithLabelValues(strconv.Itoa(machine)).Inc()
}

// Result counts a handler result.
func (c *Collector[S, E]) Result(_ S, result hsm.Result) {
	c.results.WithLabelValues(result.String()).Inc()
}

// Options returns the dispatcher options that install c.
func (c *Collector[S, E]) Options() []hsm.Option[S, E] {
	return []hsm.Option[S, E]{hsm.WithTracer[S, E](c)}
}

// EventsFor returns the event counter of the machine at the given index.
func (c *Collector[S, E]) EventsFor(machine int) prometheus.Counter {
	return c.events.WithLabelValues(strconv.Itoa(machine))
}

// ResultsFor returns the counter of a result code.
func (c *Collector[S, E]) ResultsFor(result hsm.Result) prometheus.Counter {
	return c.results.WithLabelValues(result.String())
}
