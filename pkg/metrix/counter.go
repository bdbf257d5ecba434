// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import (
	"math"
	"sync"
	"sync/atomic"
)

// Counter is a single monotonically non-decreasing accumulator, one per
// unique label-set within a CounterVec.
type Counter struct {
	labels    []Label
	labelsKey string

	bits atomic.Uint64 // float64 accumulator
}

// Add increases the counter by delta. Negative or non-finite deltas fail
// with ErrInvalidDelta and leave the value unchanged.
func (c *Counter) Add(delta float64) error {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta < 0 {
		return ErrInvalidDelta
	}

	for {
		oldBits := c.bits.Load()
		newBits := math.Float64bits(math.Float64frombits(oldBits) + delta)
		if c.bits.CompareAndSwap(oldBits, newBits) {
			return nil
		}
	}
}

// Inc increases the counter by one.
func (c *Counter) Inc() {
	_ = c.Add(1)
}

// Value returns the current total.
func (c *Counter) Value() float64 {
	return math.Float64frombits(c.bits.Load())
}

// CounterVec is a set of counter accumulators partitioned by label values.
type CounterVec struct {
	fam *family

	mu     sync.RWMutex
	series map[string]*Counter // canonical labels key => accumulator
}

// GetWithLabelValues returns the accumulator for the given label values,
// creating it lazily on first use. The value count must match the label
// schema declared at registration.
func (v *CounterVec) GetWithLabelValues(values ...string) (*Counter, error) {
	if len(values) != len(v.fam.labelNames) {
		return nil, errVecLabelValueCount
	}

	key := v.fam.labelsKeyFor(values)

	v.mu.RLock()
	c, ok := v.series[key]
	v.mu.RUnlock()
	if ok {
		return c, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if c, ok := v.series[key]; ok {
		return c, nil
	}
	c = &Counter{labels: v.fam.labelsFor(values), labelsKey: key}
	v.series[key] = c
	return c, nil
}

// WithLabelValues is the panicking variant of GetWithLabelValues, for call
// sites whose label schema is fixed at compile time.
func (v *CounterVec) WithLabelValues(values ...string) *Counter {
	c, err := v.GetWithLabelValues(values...)
	if err != nil {
		panic(err)
	}
	return c
}

func (v *CounterVec) snapshotSeries() []SeriesSnapshot {
	v.mu.RLock()
	series := make([]*Counter, 0, len(v.series))
	for _, c := range v.series {
		series = append(series, c)
	}
	v.mu.RUnlock()

	sortSeries(series, func(c *Counter) string { return c.labelsKey })

	out := make([]SeriesSnapshot, 0, len(series))
	for _, c := range series {
		out = append(out, SeriesSnapshot{
			ID:     seriesID(v.fam.name, c.labelsKey),
			Labels: c.labels,
			Value:  c.Value(),
		})
	}
	return out
}
