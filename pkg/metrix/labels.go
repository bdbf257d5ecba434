// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import "strings"

// Label is a single metric dimension.
type Label struct {
	Key   string
	Value string
}

// validateLabelNames checks a registration-time label schema.
func validateLabelNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return errInvalidLabelKey
		}
		if _, ok := seen[name]; ok {
			return errDuplicateLabelKey
		}
		seen[name] = struct{}{}
	}
	return nil
}

// labelsKeyFor packs per-call label values into the canonical identity key.
// The schema's sort order is precomputed at registration, so no per-call sort.
func (f *family) labelsKeyFor(values []string) string {
	if len(f.labelNames) == 0 {
		return ""
	}

	var b strings.Builder
	for _, i := range f.sortedIdx {
		b.WriteString(f.labelNames[i])
		b.WriteByte('\xff')
		b.WriteString(values[i])
		b.WriteByte('\xff')
	}
	return b.String()
}

// labelsFor builds the canonical sorted label slice for per-call values.
func (f *family) labelsFor(values []string) []Label {
	if len(f.labelNames) == 0 {
		return nil
	}

	labels := make([]Label, 0, len(f.labelNames))
	for _, i := range f.sortedIdx {
		labels = append(labels, Label{Key: f.labelNames[i], Value: values[i]})
	}
	return labels
}

// makeSeriesKey joins metric name and canonical label key into one stable identity key.
func makeSeriesKey(name, labelsKey string) string {
	if labelsKey == "" {
		return name
	}
	return name + "\xfe" + labelsKey
}
