// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts the outcomes of the facets and tests of a run.
type Metrics struct {
	// Facets counts facets by status.
	Facets *prometheus.CounterVec
	// Tests counts tests by status.
	Tests *prometheus.CounterVec
	// TraceLength observes the number of trace records of each test.
	TraceLength prometheus.Histogram
}

// NewMetrics returns metrics registered with reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Facets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facet_facets_total",
			Help: "Facets run, by status.",
		}, []string{"status"}),
		Tests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facet_tests_total",
			Help: "Tests run, by status.",
		}, []string{"status"}),
		TraceLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "facet_test_trace_length",
			Help:    "Number of operations recorded per test.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Facets, m.Tests, m.TraceLength)
	}
	return m
}

func (m *Metrics) observe(f *FacetResult) {
	if m == nil {
		return
	}
	m.Facets.WithLabelValues(f.Status().String()).Inc()
	for _, t := range f.Tests() {
		m.Tests.WithLabelValues(t.Status.String()).Inc()
		m.TraceLength.Observe(float64(len(t.Trace)))
	}
}
