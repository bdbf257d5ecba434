// SPDX-License-Identifier: GPL-3.0-or-later

package webapp

import (
	"github.com/amirulhaque/Kubernetes-demo/pkg/metrix"
)

// Metrics is the service registry: request outcomes and latency for the
// business route. The histogram carries no labels, latency is aggregated
// across all requests to the route.
type Metrics struct {
	reg *metrix.Registry

	RequestCount   *metrix.CounterVec
	RequestLatency *metrix.HistogramVec
}

func NewMetrics() *Metrics {
	reg := metrix.New()

	return &Metrics{
		reg: reg,
		RequestCount: reg.MustRegisterCounter("sample_app_request_total",
			[]string{"endpoint", "method", "http_status"},
			metrix.WithDescription("Total number of HTTP requests handled")),
		RequestLatency: reg.MustRegisterHistogram("sample_app_request_latency_seconds", nil,
			metrix.WithHistogramBounds(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5),
			metrix.WithDescription("Request latency")),
	}
}

func (m *Metrics) Registry() *metrix.Registry {
	return m.reg
}
