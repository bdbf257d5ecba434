// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrix implements the process-wide metrics registry: counter and
// histogram series keyed by label sets, mutated in place by request handlers
// and read back as deterministic point-in-time snapshots for text exposition.
//
// A Registry is an explicitly owned instance passed by reference to its
// users; its lifetime is the process lifetime and nothing is persisted
// across restarts.
package metrix
