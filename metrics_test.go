// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := quietOptions(t)
	opts.Metrics = NewMetrics(reg)

	Run("metrics", opts, func(f *Frame) {
		f.Facet("a", func(t *Tester) {
			t.That(Val(1)).Is(Val(1))
			t.That(Val(1)).Is(Val(2)).Or().Is(Val(1))
		})
		f.Facet("b", func(t *Tester) {
			t.That(Val(1)).Is(Val(2))
		})
		f.Facet("c", nil)
	})

	m := opts.Metrics
	require.Equal(t, 1.0, counterValue(t, m.Facets.WithLabelValues("pass")))
	require.Equal(t, 1.0, counterValue(t, m.Facets.WithLabelValues("fail")))
	require.Equal(t, 1.0, counterValue(t, m.Facets.WithLabelValues("notImplemented")))
	require.Equal(t, 2.0, counterValue(t, m.Tests.WithLabelValues("pass")))
	require.Equal(t, 1.0, counterValue(t, m.Tests.WithLabelValues("fail")))

	var h dto.Metric
	require.NoError(t, m.TraceLength.Write(&h))
	require.Equal(t, uint64(3), h.GetHistogram().GetSampleCount())
	require.Equal(t, 2.0+4.0+2.0, h.GetHistogram().GetSampleSum())

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 3)

	// Nil metrics are ignored.
	var nilMetrics *Metrics
	nilMetrics.observe(NewFacetResult("x"))
}
