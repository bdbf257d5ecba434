// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import (
	"math"
	"sort"
	"sync"
)

const histogramBucketLabel = "le"

// Histogram records a value distribution for one label-set: per-bucket
// counts against fixed upper bounds, plus a running sum and count.
type Histogram struct {
	labels    []Label
	labelsKey string
	bounds    []float64

	mu      sync.Mutex
	buckets []uint64 // one slot per bound plus the +Inf overflow slot
	sum     float64
	count   uint64
}

// Observe adds one sample. Negative or non-finite values fail with
// ErrInvalidObservation and mutate nothing. The bucket index is computed
// outside the lock; the lock covers three fixed-size updates only.
func (h *Histogram) Observe(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return ErrInvalidObservation
	}

	idx := findHistogramBucket(h.bounds, v)

	h.mu.Lock()
	h.buckets[idx]++
	h.sum += v
	h.count++
	h.mu.Unlock()

	return nil
}

// HistogramVec is a set of histogram accumulators partitioned by label values.
type HistogramVec struct {
	fam *family

	mu     sync.RWMutex
	series map[string]*Histogram // canonical labels key => accumulator
}

// GetWithLabelValues returns the accumulator for the given label values,
// creating it lazily on first use.
func (v *HistogramVec) GetWithLabelValues(values ...string) (*Histogram, error) {
	if len(values) != len(v.fam.labelNames) {
		return nil, errVecLabelValueCount
	}

	key := v.fam.labelsKeyFor(values)

	v.mu.RLock()
	h, ok := v.series[key]
	v.mu.RUnlock()
	if ok {
		return h, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if h, ok := v.series[key]; ok {
		return h, nil
	}
	h = &Histogram{
		labels:    v.fam.labelsFor(values),
		labelsKey: key,
		bounds:    v.fam.bounds,
		buckets:   make([]uint64, len(v.fam.bounds)+1),
	}
	v.series[key] = h
	return h, nil
}

// WithLabelValues is the panicking variant of GetWithLabelValues.
func (v *HistogramVec) WithLabelValues(values ...string) *Histogram {
	h, err := v.GetWithLabelValues(values...)
	if err != nil {
		panic(err)
	}
	return h
}

func (v *HistogramVec) snapshotSeries() []SeriesSnapshot {
	v.mu.RLock()
	series := make([]*Histogram, 0, len(v.series))
	for _, h := range v.series {
		series = append(series, h)
	}
	v.mu.RUnlock()

	sortSeries(series, func(h *Histogram) string { return h.labelsKey })

	out := make([]SeriesSnapshot, 0, len(series))
	raw := make([]uint64, len(v.fam.bounds)+1)
	for _, h := range series {
		h.mu.Lock()
		copy(raw, h.buckets)
		sum, count := h.sum, h.count
		h.mu.Unlock()

		buckets := make([]Bucket, 0, len(h.bounds)+1)
		var cum uint64
		for i, b := range h.bounds {
			cum += raw[i]
			buckets = append(buckets, Bucket{UpperBound: b, CumulativeCount: cum})
		}
		buckets = append(buckets, Bucket{UpperBound: math.Inf(+1), CumulativeCount: count})

		out = append(out, SeriesSnapshot{
			ID:      seriesID(v.fam.name, h.labelsKey),
			Labels:  h.labels,
			Buckets: buckets,
			Sum:     sum,
			Count:   count,
		})
	}
	return out
}

func validateHistogramBounds(bounds []float64) error {
	if len(bounds) == 0 {
		return errHistogramBounds
	}
	prev := math.Inf(-1)
	for _, b := range bounds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return errHistogramBounds
		}
		if b <= prev {
			return errHistogramBounds
		}
		prev = b
	}
	return nil
}

// findHistogramBucket returns the index of the bucket for value, or len(bounds) for +Inf.
func findHistogramBucket(bounds []float64, value float64) int {
	n := len(bounds)
	if n == 0 {
		return 0
	}
	if value <= bounds[0] {
		return 0
	}
	if value > bounds[n-1] {
		return n
	}
	if n < 35 {
		for i, b := range bounds {
			if value <= b {
				return i
			}
		}
		return n
	}
	return sort.SearchFloat64s(bounds, value)
}
