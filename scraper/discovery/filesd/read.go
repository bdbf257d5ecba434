// SPDX-License-Identifier: GPL-3.0-or-later

package filesd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/logger"
	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/model"
)

func NewReader(paths []string) *Reader {
	return &Reader{
		Logger:       log,
		paths:        paths,
		refreshEvery: time.Minute,
	}
}

type Reader struct {
	*logger.Logger

	paths        []string
	refreshEvery time.Duration
}

func (r *Reader) String() string {
	return "file reader"
}

func (r *Reader) Run(ctx context.Context, in chan<- []model.TargetGroup) {
	r.Info("instance is started")
	defer func() { r.Info("instance is stopped") }()

	send(ctx, in, r.groups())

	tk := time.NewTicker(r.refreshEvery)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			send(ctx, in, r.groups())
		}
	}
}

func (r *Reader) groups() (groups []model.TargetGroup) {
	for _, pattern := range r.paths {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}

		for _, path := range matches {
			if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
				continue
			}

			group, err := parse(path)
			if err != nil {
				r.Warningf("parse '%s': %v", path, err)
				continue
			}
			if group == nil {
				group = &fileTargetGroup{source: fileSource(path)}
			}
			group.provider = "sd:file:reader"
			groups = append(groups, group)
		}
	}

	return groups
}
