// SPDX-License-Identifier: GPL-3.0-or-later

package scrape

import (
	"testing"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/pkg/confopt"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/model"

	"github.com/stretchr/testify/assert"
)

func TestTargetDescriptor_ApplyDefaults(t *testing.T) {
	tests := map[string]struct {
		desc     TargetDescriptor
		expected TargetDescriptor
	}{
		"empty descriptor gets all defaults": {
			desc: TargetDescriptor{Name: "sample-app"},
			expected: TargetDescriptor{
				Name:     "sample-app",
				Path:     "/metrics",
				Interval: confopt.Duration(time.Second * 15),
				Scheme:   "http",
			},
		},
		"set fields are kept": {
			desc: TargetDescriptor{
				Name:     "sample-app",
				Path:     "/stats",
				Interval: confopt.Duration(time.Minute),
				Scheme:   "https",
			},
			expected: TargetDescriptor{
				Name:     "sample-app",
				Path:     "/stats",
				Interval: confopt.Duration(time.Minute),
				Scheme:   "https",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			test.desc.ApplyDefaults()

			assert.Equal(t, test.expected, test.desc)
		})
	}
}

func TestTargetDescriptor_Validate(t *testing.T) {
	tests := map[string]struct {
		desc    TargetDescriptor
		wantErr bool
	}{
		"name and selector set": {
			desc: TargetDescriptor{
				Name:     "sample-app",
				Selector: map[string]string{"app": "sample-app"},
			},
		},
		"name not set": {
			desc: TargetDescriptor{
				Selector: map[string]string{"app": "sample-app"},
			},
			wantErr: true,
		},
		"selector not set": {
			desc:    TargetDescriptor{Name: "sample-app"},
			wantErr: true,
		},
		"unsupported scheme": {
			desc: TargetDescriptor{
				Name:     "sample-app",
				Selector: map[string]string{"app": "sample-app"},
				Scheme:   "ftp",
			},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.desc.Validate()

			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetDescriptor_Matches(t *testing.T) {
	tests := map[string]struct {
		desc    TargetDescriptor
		tgt     model.Target
		matches bool
	}{
		"selector is a subset of target labels": {
			desc: TargetDescriptor{Selector: map[string]string{"app": "sample-app"}},
			tgt: mockTarget{
				labels: map[string]string{"app": "sample-app", "extra": "x"},
			},
			matches: true,
		},
		"label value differs": {
			desc: TargetDescriptor{Selector: map[string]string{"app": "sample-app"}},
			tgt: mockTarget{
				labels: map[string]string{"app": "other"},
			},
			matches: false,
		},
		"label key missing": {
			desc: TargetDescriptor{Selector: map[string]string{"app": "sample-app"}},
			tgt: mockTarget{
				labels: map[string]string{"tier": "backend"},
			},
			matches: false,
		},
		"multiple selector labels all present": {
			desc: TargetDescriptor{Selector: map[string]string{"app": "sample-app", "tier": "backend"}},
			tgt: mockTarget{
				labels: map[string]string{"app": "sample-app", "tier": "backend", "extra": "x"},
			},
			matches: true,
		},
		"one of multiple selector labels missing": {
			desc: TargetDescriptor{Selector: map[string]string{"app": "sample-app", "tier": "backend"}},
			tgt: mockTarget{
				labels: map[string]string{"app": "sample-app"},
			},
			matches: false,
		},
		"port name matches": {
			desc: TargetDescriptor{
				Selector: map[string]string{"app": "sample-app"},
				Port:     "http-metrics",
			},
			tgt: mockTarget{
				port:   "http-metrics",
				labels: map[string]string{"app": "sample-app"},
			},
			matches: true,
		},
		"port name differs": {
			desc: TargetDescriptor{
				Selector: map[string]string{"app": "sample-app"},
				Port:     "http-metrics",
			},
			tgt: mockTarget{
				port:   "https",
				labels: map[string]string{"app": "sample-app"},
			},
			matches: false,
		},
		"empty descriptor port matches any target port": {
			desc: TargetDescriptor{Selector: map[string]string{"app": "sample-app"}},
			tgt: mockTarget{
				port:   "http-metrics",
				labels: map[string]string{"app": "sample-app"},
			},
			matches: true,
		},
		"nil target": {
			desc:    TargetDescriptor{Selector: map[string]string{"app": "sample-app"}},
			tgt:     nil,
			matches: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.matches, test.desc.Matches(test.tgt))
		})
	}
}
