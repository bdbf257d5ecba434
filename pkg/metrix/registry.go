// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Kind is the accumulation behavior of a metric family.
type Kind uint8

const (
	KindCounter Kind = iota + 1
	KindHistogram
)

func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindHistogram:
		return "histogram"
	}
	return "unknown"
}

// family is one registered metric name with its locked-in schema.
type family struct {
	name        string
	kind        Kind
	description string
	unit        string
	labelNames  []string
	sortedIdx   []int     // label schema positions in canonical key order
	bounds      []float64 // histogram bucket upper bounds, nil for counters

	counterVec   *CounterVec
	histogramVec *HistogramVec
}

// Registry is a process-wide collection of metric families. All methods are
// safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	families map[string]*family
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{families: make(map[string]*family)}
}

// Default is the process-wide registry for callers that do not carry their own.
var Default = New()

// RegisterCounter declares a counter family. Registering the same name again
// with an identical schema returns the existing vec; any divergence fails
// with ErrDuplicateSeries.
func (r *Registry) RegisterCounter(name string, labelNames []string, opts ...InstrumentOption) (*CounterVec, error) {
	f, err := r.registerFamily(name, KindCounter, labelNames, opts)
	if err != nil {
		return nil, err
	}
	return f.counterVec, nil
}

// MustRegisterCounter is like RegisterCounter but panics on error. Intended
// for startup-time registration where a conflict is a programming error.
func (r *Registry) MustRegisterCounter(name string, labelNames []string, opts ...InstrumentOption) *CounterVec {
	vec, err := r.RegisterCounter(name, labelNames, opts...)
	if err != nil {
		panic(err)
	}
	return vec
}

// RegisterHistogram declares a histogram family. WithHistogramBounds is
// required; the same conflict rules as RegisterCounter apply, with bucket
// layout part of the schema.
func (r *Registry) RegisterHistogram(name string, labelNames []string, opts ...InstrumentOption) (*HistogramVec, error) {
	f, err := r.registerFamily(name, KindHistogram, labelNames, opts)
	if err != nil {
		return nil, err
	}
	return f.histogramVec, nil
}

// MustRegisterHistogram is like RegisterHistogram but panics on error.
func (r *Registry) MustRegisterHistogram(name string, labelNames []string, opts ...InstrumentOption) *HistogramVec {
	vec, err := r.RegisterHistogram(name, labelNames, opts...)
	if err != nil {
		panic(err)
	}
	return vec
}

func (r *Registry) registerFamily(name string, kind Kind, labelNames []string, opts []InstrumentOption) (*family, error) {
	cfg := instrumentConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}

	if name == "" {
		return nil, errInvalidMetricName
	}
	if err := validateLabelNames(labelNames); err != nil {
		return nil, err
	}

	var bounds []float64
	switch kind {
	case KindHistogram:
		if slices.Contains(labelNames, histogramBucketLabel) {
			return nil, errHistogramLabelKey
		}
		if err := validateHistogramBounds(cfg.histogramBounds); err != nil {
			return nil, err
		}
		bounds = append([]float64(nil), cfg.histogramBounds...)
	default:
		if len(cfg.histogramBounds) != 0 {
			return nil, fmt.Errorf("metrix: WithHistogramBounds is invalid for %s instruments", kind)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.families[name]; ok {
		if err := f.checkCompatible(kind, labelNames, bounds, cfg); err != nil {
			return nil, err
		}
		return f, nil
	}

	f := &family{
		name:        name,
		kind:        kind,
		description: cfg.description,
		unit:        cfg.unit,
		labelNames:  append([]string(nil), labelNames...),
		bounds:      bounds,
	}
	f.sortedIdx = make([]int, len(f.labelNames))
	for i := range f.sortedIdx {
		f.sortedIdx[i] = i
	}
	sort.Slice(f.sortedIdx, func(a, b int) bool {
		return f.labelNames[f.sortedIdx[a]] < f.labelNames[f.sortedIdx[b]]
	})

	switch kind {
	case KindCounter:
		f.counterVec = &CounterVec{fam: f, series: make(map[string]*Counter)}
	case KindHistogram:
		f.histogramVec = &HistogramVec{fam: f, series: make(map[string]*Histogram)}
	}

	r.families[name] = f
	return f, nil
}

func (f *family) checkCompatible(kind Kind, labelNames []string, bounds []float64, cfg instrumentConfig) error {
	if f.kind != kind {
		return fmt.Errorf("%w: kind mismatch for %s", ErrDuplicateSeries, f.name)
	}
	if !slices.Equal(f.labelNames, labelNames) {
		return fmt.Errorf("%w: label schema mismatch for %s", ErrDuplicateSeries, f.name)
	}
	if !slices.Equal(f.bounds, bounds) {
		return fmt.Errorf("%w: histogram bounds mismatch for %s", ErrDuplicateSeries, f.name)
	}
	if cfg.descriptionSet && cfg.description != f.description {
		return fmt.Errorf("%w: description mismatch for %s", ErrDuplicateSeries, f.name)
	}
	if cfg.unitSet && cfg.unit != f.unit {
		return fmt.Errorf("%w: unit mismatch for %s", ErrDuplicateSeries, f.name)
	}
	return nil
}
