// SPDX-License-Identifier: GPL-3.0-or-later

package scrape

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/eryajf/promwrite"
	"github.com/prometheus/common/model"
)

const remoteWriteTimeout = time.Second * 15

func NewRemoteWriteSink(url, agentID string) *RemoteWriteSink {
	return &RemoteWriteSink{
		client:  promwrite.NewClient(url),
		agentID: agentID,
	}
}

// RemoteWriteSink forwards scraped series via prometheus remote write with
// job, instance and agent_id labels attached.
type RemoteWriteSink struct {
	client  *promwrite.Client
	agentID string
}

func (s *RemoteWriteSink) String() string {
	return "remote write"
}

func (s *RemoteWriteSink) Write(ctx context.Context, res Result) error {
	tss := s.timeSeries(res, time.Now())
	if len(tss) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, remoteWriteTimeout)
	defer cancel()

	if _, err := s.client.Write(ctx, &promwrite.WriteRequest{TimeSeries: tss}); err != nil {
		return fmt.Errorf("writing %d series: %w", len(tss), err)
	}

	return nil
}

func (s *RemoteWriteSink) timeSeries(res Result, now time.Time) []promwrite.TimeSeries {
	if len(res.Series) == 0 {
		return nil
	}

	agentLabels := []promwrite.Label{
		{Name: model.JobLabel, Value: res.Job},
		{Name: model.InstanceLabel, Value: res.Instance},
		{Name: "agent_id", Value: s.agentID},
	}

	tss := make([]promwrite.TimeSeries, 0, len(res.Series))

	for _, ss := range res.Series {
		lbs := make([]promwrite.Label, 0, len(ss.Labels)+len(agentLabels))
		overridden := make(map[string]bool)

		for _, lbl := range ss.Labels {
			name := lbl.Name
			if isAgentLabel(name) {
				if res.HonorLabels {
					overridden[name] = true
				} else {
					name = model.ExportedLabelPrefix + name
				}
			}
			lbs = append(lbs, promwrite.Label{Name: name, Value: lbl.Value})
		}

		for _, lbl := range agentLabels {
			if !overridden[lbl.Name] {
				lbs = append(lbs, lbl)
			}
		}

		// remote write requires label names in sorted order
		sort.Slice(lbs, func(i, j int) bool { return lbs[i].Name < lbs[j].Name })

		tss = append(tss, promwrite.TimeSeries{
			Labels: lbs,
			Sample: promwrite.Sample{Time: now, Value: ss.Value},
		})
	}

	return tss
}

func isAgentLabel(name string) bool {
	switch name {
	case model.JobLabel, model.InstanceLabel, "agent_id":
		return true
	}
	return false
}
