// SPDX-License-Identifier: GPL-3.0-or-later

// Package scraper runs the scrape agent: discoverers publish target groups,
// the agent matches them against scrape descriptors and polls the matched
// endpoints.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/logger"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/dnssd"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/filesd"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/k8ssd"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/model"
	"github.com/amirulhaque/Kubernetes-demo/scraper/scrape"

	"github.com/google/uuid"
)

func New(cfg *Config) (*Scraper, error) {
	s := &Scraper{
		Logger:  logger.New().With(slog.String("component", "scraper")),
		agentID: uuid.NewString(),
		mx:      scrape.NewMetrics(),
		accum:   newAccumulator(),
		groups:  make(map[string]model.TargetGroup),
	}
	s.accum.Logger = s.Logger

	if err := s.registerDiscoverers(cfg.Discovery); err != nil {
		return nil, err
	}

	sinks := []scrape.Sink{scrape.NewLogSink()}
	if cfg.RemoteWrite.URL != "" {
		sinks = append(sinks, scrape.NewRemoteWriteSink(cfg.RemoteWrite.URL, s.agentID))
	}

	for _, td := range cfg.Scrape {
		r, err := scrape.NewRunner(td, s.mx, sinks...)
		if err != nil {
			return nil, err
		}
		s.runners = append(s.runners, r)
	}

	if len(s.runners) == 0 {
		return nil, errors.New("no scrape descriptors registered")
	}

	return s, nil
}

type Scraper struct {
	*logger.Logger

	agentID string
	mx      *scrape.Metrics

	discoverers []model.Discoverer
	accum       *accumulator
	runners     []*scrape.Runner

	// groups is the current discovery state keyed by group source.
	// Touched only from the discovery loop goroutine.
	groups map[string]model.TargetGroup
}

func (s *Scraper) registerDiscoverers(cfg DiscoveryConfig) error {
	if cfg.K8s != nil {
		td, err := k8ssd.NewKubeDiscoverer(*cfg.K8s)
		if err != nil {
			return fmt.Errorf("failed to create 'k8s' discoverer: %v", err)
		}
		s.discoverers = append(s.discoverers, td)
	}
	if cfg.DNS != nil {
		td, err := dnssd.NewDiscoverer(*cfg.DNS)
		if err != nil {
			return fmt.Errorf("failed to create 'dns' discoverer: %v", err)
		}
		s.discoverers = append(s.discoverers, td)
	}
	if cfg.Files != nil {
		td, err := filesd.NewDiscovery(*cfg.Files)
		if err != nil {
			return fmt.Errorf("failed to create 'file' discoverer: %v", err)
		}
		s.discoverers = append(s.discoverers, td)
	}

	if len(s.discoverers) == 0 {
		return errors.New("no discoverers registered")
	}

	return nil
}

// AgentID is the boot-scoped identity attached to remote writes.
func (s *Scraper) AgentID() string {
	return s.agentID
}

func (s *Scraper) Metrics() *scrape.Metrics {
	return s.mx
}

func (s *Scraper) Run(ctx context.Context) {
	s.Info("instance is started")
	defer s.Info("instance is stopped")

	var wg sync.WaitGroup

	for _, r := range s.runners {
		wg.Add(1)
		r := r
		go func() { defer wg.Done(); r.Run(ctx) }()
	}

	wg.Add(1)
	go func() { defer wg.Done(); s.runDiscovery(ctx) }()

	wg.Wait()
}

func (s *Scraper) runDiscovery(ctx context.Context) {
	s.accum.discoverers = s.discoverers

	updates := make(chan []model.TargetGroup)
	done := make(chan struct{})

	go func() { defer close(done); s.accum.run(ctx, updates) }()

	for {
		select {
		case <-ctx.Done():
			select {
			case <-done:
			case <-time.After(time.Second * 10):
			}
			return
		case <-done:
			return
		case tggs := <-updates:
			s.Debugf("received %d target groups", len(tggs))
			s.processGroups(tggs)
		}
	}
}

func (s *Scraper) processGroups(tggs []model.TargetGroup) {
	for _, tgg := range tggs {
		if tgg == nil {
			continue
		}
		if len(tgg.Targets()) == 0 {
			delete(s.groups, tgg.Source())
		} else {
			s.groups[tgg.Source()] = tgg
		}
	}

	targets := s.currentTargets()
	for _, r := range s.runners {
		r.SetTargets(targets)
	}
}

func (s *Scraper) currentTargets() []model.Target {
	var targets []model.Target
	for _, tgg := range s.groups {
		targets = append(targets, tgg.Targets()...)
	}
	return targets
}
