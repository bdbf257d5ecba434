// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import "github.com/cespare/xxhash/v2"

// seriesID returns a stable numeric identity for a series. It does not
// change across snapshots or process restarts for the same (name, labels).
func seriesID(name, labelsKey string) uint64 {
	return xxhash.Sum64String(makeSeriesKey(name, labelsKey))
}
