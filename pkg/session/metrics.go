package session

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Submit outcomes reported by the submits counter.
const (
	OutcomeRejected = "rejected"
	OutcomeAccepted = "accepted"
	OutcomeFailed   = "dispatch_failed"
)

// Metrics counts form activity per definition id.
type Metrics struct {
	edits   *prometheus.CounterVec
	submits *prometheus.CounterVec
}

// NewMetrics registers the session counters on reg. Registering twice on the
// same registerer reuses the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	edits, err := registerCounter(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clientform",
		Name:      "field_edits_total",
		Help:      "Field edit events processed, by form.",
	}, []string{"form"}))
	if err != nil {
		return nil, err
	}
	submits, err := registerCounter(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clientform",
		Name:      "submits_total",
		Help:      "Submit attempts, by form and outcome.",
	}, []string{"form", "outcome"}))
	if err != nil {
		return nil, err
	}
	return &Metrics{edits: edits, submits: submits}, nil
}

func registerCounter(reg prometheus.Registerer, counter *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return counter, nil
}

func (m *Metrics) edit(formID string) {
	if m == nil {
		return
	}
	m.edits.WithLabelValues(formID).Inc()
}

func (m *Metrics) submit(formID, outcome string) {
	if m == nil {
		return
	}
	m.submits.WithLabelValues(formID, outcome).Inc()
}
