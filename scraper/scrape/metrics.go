// SPDX-License-Identifier: GPL-3.0-or-later

package scrape

import (
	"github.com/amirulhaque/Kubernetes-demo/pkg/metrix"
)

// Metrics is the agent's own registry: scrape outcomes per job.
type Metrics struct {
	reg *metrix.Registry

	ScrapeSuccess *metrix.CounterVec
	ScrapeFailure *metrix.CounterVec
}

func NewMetrics() *Metrics {
	reg := metrix.New()

	return &Metrics{
		reg: reg,
		ScrapeSuccess: reg.MustRegisterCounter("scraper_scrape_success_total", []string{"job"},
			metrix.WithDescription("Scrapes that returned parseable series")),
		ScrapeFailure: reg.MustRegisterCounter("scraper_scrape_failure_total", []string{"job"},
			metrix.WithDescription("Scrapes that failed to fetch or parse")),
	}
}

func (m *Metrics) Registry() *metrix.Registry {
	return m.reg
}
