// SPDX-License-Identifier: GPL-3.0-or-later

package prometheus

import (
	"errors"
	"io"
	"strings"

	"github.com/amirulhaque/Kubernetes-demo/pkg/prometheus/selector"

	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/model/textparse"
)

type promTextParser struct {
	series Series

	sr selector.Selector

	currSeries labels.Labels
}

func (p *promTextParser) parseToSeries(text []byte) (Series, error) {
	p.series.Reset()

	parser := textparse.NewPromParser(text, labels.NewSymbolTable())
	for {
		entry, err := parser.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if entry == textparse.EntryInvalid && strings.Contains(err.Error(), "invalid metric type") {
				continue
			}
			return nil, err
		}

		switch entry {
		case textparse.EntrySeries:
			p.currSeries = p.currSeries[:0]

			parser.Metric(&p.currSeries)

			if p.sr != nil && !p.sr.Matches(p.currSeries) {
				continue
			}

			_, _, value := parser.Series()
			p.series.Add(SeriesSample{Labels: copyLabels(p.currSeries), Value: value})
		}
	}

	p.series.Sort()

	if len(p.series) == 0 {
		return p.series, errors.New("no metrics found")
	}

	return p.series, nil
}

func copyLabels(lbs labels.Labels) labels.Labels {
	return append(labels.Labels{}, lbs...)
}
