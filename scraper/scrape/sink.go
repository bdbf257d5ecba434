// SPDX-License-Identifier: GPL-3.0-or-later

package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/logger"
	"github.com/amirulhaque/Kubernetes-demo/pkg/prometheus"
)

// Result is one finished scrape of one target.
type Result struct {
	Job         string
	Instance    string
	HonorLabels bool
	Series      prometheus.Series
	Duration    time.Duration
	Err         error
}

// Sink consumes successful scrape results. Implementations must be safe for
// concurrent use.
type Sink interface {
	fmt.Stringer
	Write(ctx context.Context, res Result) error
}

func NewLogSink() *LogSink {
	return &LogSink{
		Logger: logger.New().With(
			slog.String("component", "scrape"),
			slog.String("sink", "log"),
		),
	}
}

// LogSink reports a one-line summary per scrape.
type LogSink struct {
	*logger.Logger
}

func (s *LogSink) String() string {
	return "log summary"
}

func (s *LogSink) Write(_ context.Context, res Result) error {
	s.Infof("job '%s' target '%s': %d series in %s", res.Job, res.Instance, len(res.Series), res.Duration)
	return nil
}
