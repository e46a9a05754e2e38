// Package metrics counts stamping, session exchanges, key cleanup and
// pairing events.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const namespace = "keystamp"

// Result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder is safe to use as a nil pointer, in which case nothing is counted.
type Recorder struct {
	gatherer prometheus.Gatherer

	stamps    *prometheus.CounterVec
	exchanges *prometheus.CounterVec
	cleanups  *prometheus.CounterVec
	pairings  *prometheus.CounterVec
}

// New registers the keystamp counters on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		gatherer: gatherer,
		stamps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stamps_total",
				Help:      "Stamps produced, by signature scheme.",
			},
			[]string{"scheme"},
		),
		exchanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_exchanges_total",
				Help:      "Stamped exchanges with the remote API, by flow and result.",
			},
			[]string{"flow", "result"},
		),
		cleanups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "keypair_cleanups_total",
				Help:      "Ephemeral key pair deletions, by result.",
			},
			[]string{"result"},
		),
		pairings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pairings_total",
				Help:      "Remote wallet pairing transitions, by event.",
			},
			[]string{"event"},
		),
	}
}

func (r *Recorder) Stamp(scheme string) {
	if r == nil {
		return
	}
	r.stamps.WithLabelValues(scheme).Inc()
}

func (r *Recorder) Exchange(flow string, err error) {
	if r == nil {
		return
	}
	r.exchanges.WithLabelValues(flow, result(err)).Inc()
}

func (r *Recorder) Cleanup(err error) {
	if r == nil {
		return
	}
	r.cleanups.WithLabelValues(result(err)).Inc()
}

func (r *Recorder) Pairing(event string) {
	if r == nil {
		return
	}
	r.pairings.WithLabelValues(event).Inc()
}

// WriteText dumps every gathered family in the text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	if r == nil || r.gatherer == nil {
		return nil
	}

	families, err := r.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
