// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

type InstrumentOption interface {
	apply(*instrumentConfig)
}

type optionFunc func(*instrumentConfig)

func (f optionFunc) apply(cfg *instrumentConfig) { f(cfg) }

type instrumentConfig struct {
	histogramBounds []float64

	descriptionSet bool
	description    string
	unitSet        bool
	unit           string
}

// WithHistogramBounds sets the bucket upper bounds of a histogram. Bounds
// must be finite and strictly increasing; the +Inf bucket is implicit.
func WithHistogramBounds(bounds ...float64) InstrumentOption {
	return optionFunc(func(cfg *instrumentConfig) {
		cfg.histogramBounds = append([]float64(nil), bounds...)
	})
}

// WithDescription sets optional metric-family description metadata.
func WithDescription(description string) InstrumentOption {
	return optionFunc(func(cfg *instrumentConfig) {
		cfg.descriptionSet = true
		cfg.description = description
	})
}

// WithUnit sets optional metric-family unit metadata.
func WithUnit(unit string) InstrumentOption {
	return optionFunc(func(cfg *instrumentConfig) {
		cfg.unitSet = true
		cfg.unit = unit
	})
}
