// SPDX-License-Identifier: GPL-3.0-or-later

// Package scrape polls discovered metric endpoints on a per-descriptor
// interval and hands parsed series to the configured sinks.
package scrape

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/pkg/confopt"
	"github.com/amirulhaque/Kubernetes-demo/pkg/prometheus/selector"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/model"
)

const (
	defaultPath     = "/metrics"
	defaultInterval = time.Second * 15
	defaultScheme   = "http"
)

// TargetDescriptor selects discovered endpoints by labels and describes how
// to scrape them. A descriptor matches zero or more targets and owns none of
// them.
type TargetDescriptor struct {
	Name        string            `yaml:"name" json:"name"`
	Selector    map[string]string `yaml:"selector" json:"selector"`
	Port        string            `yaml:"port,omitempty" json:"port"`
	Path        string            `yaml:"path,omitempty" json:"path"`
	Interval    confopt.Duration  `yaml:"interval,omitempty" json:"interval"`
	Scheme      string            `yaml:"scheme,omitempty" json:"scheme"`
	HonorLabels bool              `yaml:"honor_labels,omitempty" json:"honor_labels"`
	Series      selector.Expr     `yaml:"series,omitempty" json:"series"`
}

func (td *TargetDescriptor) ApplyDefaults() {
	if td.Path == "" {
		td.Path = defaultPath
	}
	if td.Interval <= 0 {
		td.Interval = confopt.Duration(defaultInterval)
	}
	if td.Scheme == "" {
		td.Scheme = defaultScheme
	}
}

func (td TargetDescriptor) Validate() error {
	if td.Name == "" {
		return errors.New("'name' not set")
	}
	if len(td.Selector) == 0 {
		return errors.New("'selector' not set")
	}
	if td.Scheme != "" && td.Scheme != "http" && td.Scheme != "https" {
		return fmt.Errorf("unsupported scheme '%s'", td.Scheme)
	}
	return nil
}

// Matches reports whether the target satisfies the descriptor: every selector
// label must be present on the target with an equal value (the target may
// carry extra labels), and the descriptor's port name must be unset or equal
// to the target's named port.
func (td TargetDescriptor) Matches(tgt model.Target) bool {
	if tgt == nil {
		return false
	}

	labels := tgt.Labels()
	for k, v := range td.Selector {
		if lv, ok := labels[k]; !ok || lv != v {
			return false
		}
	}

	return td.Port == "" || td.Port == tgt.PortName()
}
