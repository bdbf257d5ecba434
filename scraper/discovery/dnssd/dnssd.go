// SPDX-License-Identifier: GPL-3.0-or-later

// Package dnssd discovers scrape targets by resolving DNS SRV records
// against a configured resolver on a fixed refresh interval.
package dnssd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/logger"
	"github.com/amirulhaque/Kubernetes-demo/pkg/confopt"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/model"

	"github.com/miekg/dns"
)

const (
	defaultRefresh = time.Second * 30
	defaultTimeout = time.Second * 2
)

var log = logger.New().With(
	slog.String("component", "service discovery"),
	slog.String("discoverer", "dns"),
)

type Config struct {
	Names   []string         `yaml:"names"`
	Server  string           `yaml:"server"`
	Refresh confopt.Duration `yaml:"refresh"`
}

func validateConfig(cfg Config) error {
	if len(cfg.Names) == 0 {
		return errors.New("'names' not set")
	}
	if cfg.Server == "" {
		return errors.New("'server' not set")
	}
	return nil
}

func NewDiscoverer(cfg Config) (*Discoverer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %v", err)
	}

	refresh := cfg.Refresh.Duration()
	if refresh <= 0 {
		refresh = defaultRefresh
	}

	server := cfg.Server
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	d := &Discoverer{
		Logger:  log,
		names:   cfg.Names,
		server:  server,
		refresh: refresh,
		newDNSClient: func(timeout time.Duration) dnsClient {
			return &dns.Client{ReadTimeout: timeout}
		},
	}

	return d, nil
}

type (
	Discoverer struct {
		*logger.Logger

		names   []string
		server  string
		refresh time.Duration

		dnsClient    dnsClient
		newDNSClient func(timeout time.Duration) dnsClient
	}
	dnsClient interface {
		Exchange(msg *dns.Msg, address string) (response *dns.Msg, rtt time.Duration, err error)
	}
)

func (d *Discoverer) String() string {
	return "sd:dns"
}

func (d *Discoverer) Run(ctx context.Context, in chan<- []model.TargetGroup) {
	d.Info("instance is started")
	defer d.Info("instance is stopped")

	if d.dnsClient == nil {
		d.dnsClient = d.newDNSClient(defaultTimeout)
	}

	d.discoverTargets(ctx, in)

	tk := time.NewTicker(d.refresh)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			d.discoverTargets(ctx, in)
		}
	}
}

func (d *Discoverer) discoverTargets(ctx context.Context, in chan<- []model.TargetGroup) {
	var tggs []model.TargetGroup

	for _, name := range d.names {
		tgg, err := d.resolveName(name)
		if err != nil {
			// Keep the last known targets on resolution errors, the next
			// refresh retries.
			d.Warningf("resolving '%s' via '%s': %v", name, d.server, err)
			continue
		}
		tggs = append(tggs, tgg)
	}

	if len(tggs) == 0 {
		return
	}

	select {
	case <-ctx.Done():
	case in <- tggs:
	}
}

func (d *Discoverer) resolveName(name string) (model.TargetGroup, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeSRV)

	resp, _, err := d.dnsClient.Exchange(msg, d.server)
	if err != nil {
		return nil, err
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("query returned rcode %d", resp.Rcode)
	}

	tgg := &srvTargetGroup{source: srvSource(name)}

	for _, rr := range resp.Answer {
		srv, ok := rr.(*dns.SRV)
		if !ok {
			continue
		}

		tgt := &SRVTarget{
			RecordName: name,
			Host:       strings.TrimSuffix(srv.Target, "."),
			Port:       strconv.Itoa(int(srv.Port)),
		}
		tgt.tuid = srvTUID(tgt)

		hash, err := model.CalcHash(tgt)
		if err != nil {
			continue
		}
		tgt.hash = hash

		tgg.targets = append(tgg.targets, tgt)
	}

	return tgg, nil
}

type srvTargetGroup struct {
	targets []model.Target
	source  string
}

func (g srvTargetGroup) Provider() string        { return "sd:dns:srv" }
func (g srvTargetGroup) Source() string          { return g.source }
func (g srvTargetGroup) Targets() []model.Target { return g.targets }

type SRVTarget struct {
	hash uint64
	tuid string

	RecordName string
	Host       string
	Port       string
}

func (t SRVTarget) Hash() uint64 { return t.hash }
func (t SRVTarget) TUID() string { return t.tuid }

func (t SRVTarget) Address() string {
	return net.JoinHostPort(t.Host, t.Port)
}

func (t SRVTarget) PortName() string { return "" }

func (t SRVTarget) Labels() map[string]string {
	return map[string]string{
		"srv_name":   t.RecordName,
		"srv_target": t.Host,
	}
}

func srvTUID(t *SRVTarget) string {
	return fmt.Sprintf("%s_%s_%s", t.RecordName, t.Host, t.Port)
}

func srvSource(name string) string {
	return fmt.Sprintf("discoverer=dns,kind=srv,name=%s", name)
}
