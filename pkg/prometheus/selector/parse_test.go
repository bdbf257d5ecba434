// SPDX-License-Identifier: GPL-3.0-or-later

package selector

import (
	"testing"

	"github.com/amirulhaque/Kubernetes-demo/pkg/matcher"

	"github.com/prometheus/prometheus/model/labels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		expr        string
		expectedSr  Selector
		expectedErr bool
	}{
		"name: simple": {
			expr:       "go_memstats_alloc_bytes",
			expectedSr: mustSPName("go_memstats_alloc_bytes"),
		},
		"name: patterns": {
			expr:       "go_memstats_* !go_memstats_frees_total",
			expectedSr: mustSPName("go_memstats_* !go_memstats_frees_total"),
		},
		"only labels": {
			expr: `{label1="value1"}`,
			expectedSr: labelSelector{
				name: "label1",
				m:    matcher.Must(matcher.NewStringMatcher("value1", true, true)),
			},
		},
		"name and labels": {
			expr: `go_memstats_*{label1="value1"}`,
			expectedSr: andSelector{
				lhs: mustSPName("go_memstats_*"),
				rhs: labelSelector{
					name: "label1",
					m:    matcher.Must(matcher.NewStringMatcher("value1", true, true)),
				},
			},
		},
		"name and several labels": {
			expr: `go_memstats_*{label1="value1",label2="value2"}`,
			expectedSr: andSelector{
				lhs: andSelector{
					lhs: mustSPName("go_memstats_*"),
					rhs: labelSelector{
						name: "label1",
						m:    matcher.Must(matcher.NewStringMatcher("value1", true, true)),
					},
				},
				rhs: labelSelector{
					name: "label2",
					m:    matcher.Must(matcher.NewStringMatcher("value2", true, true)),
				},
			},
		},
		"op: neg equal": {
			expr: `{label1!="value1"}`,
			expectedSr: negSelector{labelSelector{
				name: "label1",
				m:    matcher.Must(matcher.NewStringMatcher("value1", true, true)),
			}},
		},
		"op: regexp": {
			expr: `{label1=~"^value[0-9]$"}`,
			expectedSr: labelSelector{
				name: "label1",
				m:    matcher.Must(matcher.NewRegExpMatcher("^value[0-9]$")),
			},
		},
		"op: neg regexp": {
			expr: `{label1!~"^value[0-9]$"}`,
			expectedSr: negSelector{labelSelector{
				name: "label1",
				m:    matcher.Must(matcher.NewRegExpMatcher("^value[0-9]$")),
			}},
		},
		"op: simple patterns": {
			expr: `{label1=*"value*"}`,
			expectedSr: labelSelector{
				name: "label1",
				m:    matcher.Must(matcher.NewSimplePatternsMatcher("value*")),
			},
		},
		"op: neg simple patterns": {
			expr: `{label1!*"value*"}`,
			expectedSr: negSelector{labelSelector{
				name: "label1",
				m:    matcher.Must(matcher.NewSimplePatternsMatcher("value*")),
			}},
		},
		"invalid: empty": {
			expr:        "",
			expectedErr: true,
		},
		"invalid: only braces": {
			expr:        "{}",
			expectedErr: true,
		},
		"invalid: no quotes": {
			expr:        `{label1=value1}`,
			expectedErr: true,
		},
		"invalid: missing value": {
			expr:        `{label1=""}`,
			expectedErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			sr, err := Parse(test.expr)

			if test.expectedErr {
				assert.Error(t, err)
				assert.Nil(t, sr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expectedSr, sr)
			}
		})
	}
}

func TestParsedSelector_Matches(t *testing.T) {
	tests := map[string]struct {
		expr            string
		lbs             labels.Labels
		expectedMatches bool
	}{
		"name matches": {
			expr: "sample_app_*",
			lbs: labels.Labels{
				{Name: labels.MetricName, Value: "sample_app_request_total"},
			},
			expectedMatches: true,
		},
		"name not matches": {
			expr: "sample_app_*",
			lbs: labels.Labels{
				{Name: labels.MetricName, Value: "go_goroutines"},
			},
			expectedMatches: false,
		},
		"name and label match": {
			expr: `sample_app_request_total{endpoint="/"}`,
			lbs: labels.Labels{
				{Name: labels.MetricName, Value: "sample_app_request_total"},
				{Name: "endpoint", Value: "/"},
				{Name: "method", Value: "GET"},
			},
			expectedMatches: true,
		},
		"name matches, label not": {
			expr: `sample_app_request_total{endpoint="/healthz"}`,
			lbs: labels.Labels{
				{Name: labels.MetricName, Value: "sample_app_request_total"},
				{Name: "endpoint", Value: "/"},
			},
			expectedMatches: false,
		},
		"label absent": {
			expr: `{http_status="500"}`,
			lbs: labels.Labels{
				{Name: labels.MetricName, Value: "sample_app_request_total"},
				{Name: "endpoint", Value: "/"},
			},
			expectedMatches: false,
		},
		"neg equal on absent label": {
			expr: `{http_status!="500"}`,
			lbs: labels.Labels{
				{Name: labels.MetricName, Value: "sample_app_request_total"},
				{Name: "endpoint", Value: "/"},
			},
			expectedMatches: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			sr, err := Parse(test.expr)
			require.NoError(t, err)

			assert.Equal(t, test.expectedMatches, sr.Matches(test.lbs))
		})
	}
}

func mustSPName(pattern string) Selector {
	return labelSelector{
		name: labels.MetricName,
		m:    matcher.Must(matcher.NewSimplePatternsMatcher(pattern)),
	}
}
