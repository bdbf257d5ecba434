// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import "errors"

var (
	// ErrDuplicateSeries is returned when a metric name is registered again
	// with a different kind, label schema, bucket layout, or metadata.
	ErrDuplicateSeries = errors.New("metrix: duplicate series registration")

	// ErrInvalidDelta is returned by Counter.Add for negative or non-finite deltas.
	ErrInvalidDelta = errors.New("metrix: counter Add delta must be finite and non-negative")

	// ErrInvalidObservation is returned by Histogram.Observe for negative or
	// non-finite values.
	ErrInvalidObservation = errors.New("metrix: histogram Observe value must be finite and non-negative")

	errInvalidMetricName  = errors.New("metrix: invalid metric name")
	errInvalidLabelKey    = errors.New("metrix: invalid label key")
	errDuplicateLabelKey  = errors.New("metrix: duplicate label key")
	errHistogramLabelKey  = errors.New("metrix: histogram label schema cannot contain 'le'")
	errHistogramBounds    = errors.New("metrix: histogram bounds must be finite and strictly increasing")
	errVecLabelValueCount = errors.New("metrix: vec label values count does not match label schema")
)
