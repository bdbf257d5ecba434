// SPDX-License-Identifier: GPL-3.0-or-later

package scraper

import (
	"errors"
	"fmt"
	"os"

	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/dnssd"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/filesd"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/k8ssd"
	"github.com/amirulhaque/Kubernetes-demo/scraper/scrape"

	"gopkg.in/yaml.v2"
)

// Config is the scrape agent configuration file.
type Config struct {
	Discovery   DiscoveryConfig           `yaml:"discovery" json:"discovery"`
	Scrape      []scrape.TargetDescriptor `yaml:"scrape" json:"scrape"`
	RemoteWrite RemoteWriteConfig         `yaml:"remote_write,omitempty" json:"remote_write"`
}

// DiscoveryConfig enables a discoverer per set section.
type DiscoveryConfig struct {
	K8s   *k8ssd.Config  `yaml:"k8s,omitempty" json:"k8s"`
	DNS   *dnssd.Config  `yaml:"dns,omitempty" json:"dns"`
	Files *filesd.Config `yaml:"files,omitempty" json:"files"`
}

type RemoteWriteConfig struct {
	URL string `yaml:"url,omitempty" json:"url"`
}

// LoadConfig reads and validates the agent configuration, applying scrape
// descriptor defaults.
func LoadConfig(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file '%s': %w", path, err)
	}

	for i := range cfg.Scrape {
		cfg.Scrape[i].ApplyDefaults()
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Discovery.K8s == nil && cfg.Discovery.DNS == nil && cfg.Discovery.Files == nil {
		return errors.New("no discovery mechanisms set")
	}
	if len(cfg.Scrape) == 0 {
		return errors.New("no scrape descriptors set")
	}
	for _, td := range cfg.Scrape {
		if err := td.Validate(); err != nil {
			return fmt.Errorf("scrape descriptor '%s': %w", td.Name, err)
		}
	}
	return nil
}
