// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import "sort"

// Snapshot is a deterministic point-in-time view of the registry: families
// ordered by name, series ordered by canonical label key. Each series value
// is one the accumulator held at some real instant; cross-series consistency
// is not promised.
type Snapshot struct {
	Families []FamilySnapshot
}

// FamilySnapshot is one metric name with all of its live series.
type FamilySnapshot struct {
	Name        string
	Description string
	Unit        string
	Kind        Kind
	Series      []SeriesSnapshot
}

// SeriesSnapshot is one (name, label-set) series. Counters carry Value;
// histograms carry cumulative Buckets (ending with the +Inf bucket), Sum
// and Count.
type SeriesSnapshot struct {
	ID     uint64
	Labels []Label

	Value float64

	Buckets []Bucket
	Sum     float64
	Count   uint64
}

// Bucket is one cumulative histogram bucket.
type Bucket struct {
	UpperBound      float64
	CumulativeCount uint64
}

// Snapshot captures the current state of every registered series. No lock is
// held across series; each accumulator is read atomically or under its own
// short-lived lock.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	fams := make([]*family, 0, len(r.families))
	for _, f := range r.families {
		fams = append(fams, f)
	}
	r.mu.RUnlock()

	sort.Slice(fams, func(i, j int) bool { return fams[i].name < fams[j].name })

	snap := &Snapshot{Families: make([]FamilySnapshot, 0, len(fams))}
	for _, f := range fams {
		fs := FamilySnapshot{
			Name:        f.name,
			Description: f.description,
			Unit:        f.unit,
			Kind:        f.kind,
		}
		switch f.kind {
		case KindCounter:
			fs.Series = f.counterVec.snapshotSeries()
		case KindHistogram:
			fs.Series = f.histogramVec.snapshotSeries()
		}
		snap.Families = append(snap.Families, fs)
	}
	return snap
}

func sortSeries[T any](series []T, key func(T) string) {
	sort.Slice(series, func(i, j int) bool { return key(series[i]) < key(series[j]) })
}
