// SPDX-License-Identifier: GPL-3.0-or-later

package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/logger"
	"github.com/amirulhaque/Kubernetes-demo/pkg/confopt"
	"github.com/amirulhaque/Kubernetes-demo/pkg/prometheus"
	"github.com/amirulhaque/Kubernetes-demo/pkg/prometheus/selector"
	"github.com/amirulhaque/Kubernetes-demo/pkg/web"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/model"

	"github.com/sourcegraph/conc/pool"
)

const (
	defaultScrapeTimeout        = time.Second * 10
	defaultMaxConcurrentScrapes = 4
)

func NewRunner(desc TargetDescriptor, mx *Metrics, sinks ...Sink) (*Runner, error) {
	desc.ApplyDefaults()

	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("descriptor '%s' validation: %v", desc.Name, err)
	}

	sr, err := desc.Series.Parse()
	if err != nil {
		return nil, fmt.Errorf("descriptor '%s' series selector: %v", desc.Name, err)
	}

	return &Runner{
		Logger: logger.New().With(
			slog.String("component", "scrape"),
			slog.String("job", desc.Name),
		),
		desc:          desc,
		sr:            sr,
		mx:            mx,
		sinks:         sinks,
		maxConcurrent: defaultMaxConcurrentScrapes,
		targets:       make(map[uint64]*scrapeTarget),
	}, nil
}

type (
	// Runner polls all targets currently matched by one descriptor.
	Runner struct {
		*logger.Logger

		desc  TargetDescriptor
		sr    selector.Selector
		mx    *Metrics
		sinks []Sink

		maxConcurrent int

		mux     sync.Mutex
		targets map[uint64]*scrapeTarget
	}

	scrapeTarget struct {
		target model.Target
		prom   prometheus.Prometheus
	}
)

func (r *Runner) String() string {
	return "scrape:" + r.desc.Name
}

func (r *Runner) Descriptor() TargetDescriptor {
	return r.desc
}

// SetTargets replaces the runner's scrape set with the matching subset of
// the discovered targets. Scrapers survive across calls for targets whose
// hash is unchanged.
func (r *Runner) SetTargets(tgts []model.Target) {
	r.mux.Lock()
	defer r.mux.Unlock()

	seen := make(map[uint64]bool)

	for _, tgt := range tgts {
		if tgt == nil || !r.desc.Matches(tgt) {
			continue
		}

		hash := tgt.Hash()
		seen[hash] = true

		if _, ok := r.targets[hash]; ok {
			continue
		}

		r.targets[hash] = r.newScrapeTarget(tgt)
		r.Infof("adding target '%s' (tuid %s)", tgt.Address(), tgt.TUID())
	}

	for hash, st := range r.targets {
		if seen[hash] {
			continue
		}
		delete(r.targets, hash)
		r.Infof("removing target '%s' (tuid %s)", st.target.Address(), st.target.TUID())
	}
}

// Targets returns the runner's current scrape set.
func (r *Runner) Targets() []model.Target {
	r.mux.Lock()
	defer r.mux.Unlock()

	targets := make([]model.Target, 0, len(r.targets))
	for _, st := range r.targets {
		targets = append(targets, st.target)
	}
	return targets
}

func (r *Runner) newScrapeTarget(tgt model.Target) *scrapeTarget {
	timeout := r.desc.Interval.Duration()
	if timeout <= 0 || timeout > defaultScrapeTimeout {
		timeout = defaultScrapeTimeout
	}

	req := web.RequestConfig{
		URL: fmt.Sprintf("%s://%s%s", r.desc.Scheme, tgt.Address(), r.desc.Path),
	}
	client := web.NewHTTPClient(web.ClientConfig{Timeout: confopt.Duration(timeout)})

	return &scrapeTarget{
		target: tgt,
		prom:   prometheus.NewWithSelector(client, req, r.sr),
	}
}

func (r *Runner) Run(ctx context.Context) {
	r.Info("instance is started")
	defer func() { r.Info("instance is stopped") }()

	tk := time.NewTicker(r.desc.Interval.Duration())
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			r.scrapeTargets(ctx)
		}
	}
}

func (r *Runner) scrapeTargets(ctx context.Context) {
	targets := r.currentScrapeTargets()
	if len(targets) == 0 {
		return
	}

	p := pool.New().WithMaxGoroutines(r.maxConcurrent)

	for _, st := range targets {
		st := st
		p.Go(func() {
			r.process(ctx, r.scrape(st))
		})
	}

	p.Wait()
}

func (r *Runner) currentScrapeTargets() []*scrapeTarget {
	r.mux.Lock()
	defer r.mux.Unlock()

	targets := make([]*scrapeTarget, 0, len(r.targets))
	for _, st := range r.targets {
		targets = append(targets, st)
	}
	return targets
}

func (r *Runner) scrape(st *scrapeTarget) Result {
	start := time.Now()
	series, err := st.prom.ScrapeSeries()

	return Result{
		Job:         r.desc.Name,
		Instance:    st.target.Address(),
		HonorLabels: r.desc.HonorLabels,
		Series:      series,
		Duration:    time.Since(start),
		Err:         err,
	}
}

func (r *Runner) process(ctx context.Context, res Result) {
	if res.Err != nil {
		r.mx.ScrapeFailure.WithLabelValues(res.Job).Inc()
		r.Warningf("scraping target '%s': %v", res.Instance, res.Err)
		return
	}

	r.mx.ScrapeSuccess.WithLabelValues(res.Job).Inc()

	for _, sink := range r.sinks {
		if err := sink.Write(ctx, res); err != nil {
			r.Warningf("sink '%s': %v", sink, err)
		}
	}
}
