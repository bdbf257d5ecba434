// SPDX-License-Identifier: GPL-3.0-or-later

package filesd

import (
	"fmt"
	"os"

	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/model"

	"gopkg.in/yaml.v2"
)

// targetConfig is one entry of a target file: a YAML list of endpoints.
type targetConfig struct {
	Address  string            `yaml:"address"`
	PortName string            `yaml:"port_name,omitempty"`
	Labels   map[string]string `yaml:"labels,omitempty"`
}

type fileTargetGroup struct {
	provider string
	source   string
	targets  []model.Target
}

func (g fileTargetGroup) Provider() string        { return g.provider }
func (g fileTargetGroup) Source() string          { return g.source }
func (g fileTargetGroup) Targets() []model.Target { return g.targets }

type FileTarget struct {
	hash uint64
	tuid string

	cfg targetConfig
}

func (t FileTarget) Hash() uint64              { return t.hash }
func (t FileTarget) TUID() string              { return t.tuid }
func (t FileTarget) Address() string           { return t.cfg.Address }
func (t FileTarget) PortName() string          { return t.cfg.PortName }
func (t FileTarget) Labels() map[string]string { return t.cfg.Labels }

// parse reads one target file. An empty or comment-only file yields a nil
// group, entries without an address are dropped.
func parse(path string) (*fileTargetGroup, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return nil, nil
	}

	var cfgs []targetConfig
	if err := yaml.Unmarshal(bs, &cfgs); err != nil {
		return nil, err
	}
	if len(cfgs) == 0 {
		return nil, nil
	}

	tgg := &fileTargetGroup{source: fileSource(path)}

	for _, cfg := range cfgs {
		if cfg.Address == "" {
			continue
		}

		tgt := &FileTarget{cfg: cfg}
		tgt.tuid = fileTUID(cfg)

		hash, err := model.CalcHash(cfg)
		if err != nil {
			continue
		}
		tgt.hash = hash

		tgg.targets = append(tgg.targets, tgt)
	}

	return tgg, nil
}

func fileTUID(cfg targetConfig) string {
	if cfg.PortName == "" {
		return cfg.Address
	}
	return fmt.Sprintf("%s_%s", cfg.Address, cfg.PortName)
}

func fileSource(path string) string {
	return fmt.Sprintf("discoverer=file,path=%s", path)
}
