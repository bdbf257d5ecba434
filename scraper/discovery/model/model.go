// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the contracts between discoverers and the scrape
// agent: discovered endpoints, the groups they arrive in, and the loop
// every discoverer runs.
package model

import (
	"context"

	"github.com/gohugoio/hashstructure"
)

// Target is a single discovered endpoint. Identity is the structural Hash;
// Address, PortName and Labels are what descriptor matching and scraping
// consume.
type Target interface {
	Hash() uint64
	TUID() string
	Address() string
	PortName() string
	Labels() map[string]string
}

// TargetGroup is the full current set of targets from one discovery source.
// A group with no targets means the source's targets are gone.
type TargetGroup interface {
	Targets() []Target
	Provider() string
	Source() string
}

// Discoverer publishes target group snapshots on every change until the
// context is canceled.
type Discoverer interface {
	String() string
	Run(ctx context.Context, in chan<- []TargetGroup)
}

// CalcHash returns the structural hash of a target's exported identity fields.
func CalcHash(obj any) (uint64, error) {
	return hashstructure.Hash(obj, nil)
}
