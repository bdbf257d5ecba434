// SPDX-License-Identifier: GPL-3.0-or-later

// Package filesd discovers scrape targets from static YAML target files:
// a read list loaded on a fixed interval and a watch list re-parsed on
// filesystem events.
package filesd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirulhaque/Kubernetes-demo/logger"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/model"
)

var log = logger.New().With(
	slog.String("component", "service discovery"),
	slog.String("discoverer", "file"),
)

type Config struct {
	Read  []string `yaml:"read"`
	Watch []string `yaml:"watch"`
}

func validateConfig(cfg Config) error {
	if len(cfg.Read)+len(cfg.Watch) == 0 {
		return errors.New("discoverers not set")
	}
	return nil
}

func NewDiscovery(cfg Config) (*Discovery, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("file discovery config validation: %v", err)
	}

	d := Discovery{
		Logger: log,
	}

	if len(cfg.Read) != 0 {
		d.discoverers = append(d.discoverers, NewReader(cfg.Read))
	}
	if len(cfg.Watch) != 0 {
		d.discoverers = append(d.discoverers, NewWatcher(cfg.Watch))
	}

	return &d, nil
}

type Discovery struct {
	*logger.Logger
	discoverers []model.Discoverer
}

func (d *Discovery) String() string {
	return fmt.Sprintf("sd:file %v", d.discoverers)
}

func (d *Discovery) Run(ctx context.Context, in chan<- []model.TargetGroup) {
	d.Info("instance is started")
	defer func() { d.Info("instance is stopped") }()

	var wg sync.WaitGroup

	for _, dd := range d.discoverers {
		wg.Add(1)
		go func(dd model.Discoverer) {
			defer wg.Done()
			d.runDiscoverer(ctx, dd, in)
		}(dd)
	}

	wg.Wait()
	<-ctx.Done()
}

func (d *Discovery) runDiscoverer(ctx context.Context, dd model.Discoverer, in chan<- []model.TargetGroup) {
	updates := make(chan []model.TargetGroup)
	go dd.Run(ctx, updates)
	for {
		select {
		case <-ctx.Done():
			return
		case groups, ok := <-updates:
			if !ok {
				return
			}
			select {
			case <-ctx.Done():
				return
			case in <- groups:
			}
		}
	}
}

func send(ctx context.Context, in chan<- []model.TargetGroup, groups []model.TargetGroup) {
	if len(groups) == 0 {
		return
	}
	select {
	case <-ctx.Done():
	case in <- groups:
	}
}
