// SPDX-License-Identifier: GPL-3.0-or-later

package filesd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		test func(t *testing.T, tmp *tmpDir)
	}{
		"multiple targets with labels": {
			test: func(t *testing.T, tmp *tmpDir) {
				cfgs := []targetConfig{
					{
						Address: "203.0.113.10:9090",
						Labels:  map[string]string{"app": "sample-app", "env": "prod"},
					},
					{
						Address:  "203.0.113.11:9090",
						PortName: "http-metrics",
					},
				}
				filename := tmp.join("targets.yaml")
				tmp.writeYAML(filename, cfgs)

				expected := prepareTargetGroup("", filename, cfgs...)

				group, err := parse(filename)

				require.NoError(t, err)
				assert.Equal(t, expected, group)
			},
		},
		"target without address is skipped": {
			test: func(t *testing.T, tmp *tmpDir) {
				cfgs := []targetConfig{
					{
						Labels: map[string]string{"app": "sample-app"},
					},
					{
						Address: "203.0.113.10:9090",
					},
				}
				filename := tmp.join("targets.yaml")
				tmp.writeYAML(filename, cfgs)

				expected := prepareTargetGroup("", filename, cfgs[1])

				group, err := parse(filename)

				require.NoError(t, err)
				assert.Equal(t, expected, group)
			},
		},
		"empty file": {
			test: func(t *testing.T, tmp *tmpDir) {
				filename := tmp.createFile("empty-*")

				group, err := parse(filename)

				require.NoError(t, err)
				assert.Nil(t, group)
			},
		},
		"only comments, no data": {
			test: func(t *testing.T, tmp *tmpDir) {
				filename := tmp.createFile("only-comments-*")
				tmp.writeString(filename, "# a comment")

				group, err := parse(filename)

				require.NoError(t, err)
				assert.Nil(t, group)
			},
		},
		"unknown format": {
			test: func(t *testing.T, tmp *tmpDir) {
				filename := tmp.createFile("unknown-format-*")
				tmp.writeYAML(filename, "unknown")

				group, err := parse(filename)

				assert.Nil(t, group)
				assert.Error(t, err)
			},
		},
	}

	for name, scenario := range tests {
		t.Run(name, func(t *testing.T) {
			tmp := newTmpDir(t, "parse-file-*")
			defer tmp.cleanup()

			scenario.test(t, tmp)
		})
	}
}

func TestFileTarget(t *testing.T) {
	cfg := targetConfig{
		Address:  "203.0.113.10:9090",
		PortName: "http-metrics",
		Labels:   map[string]string{"app": "sample-app"},
	}

	tgt := &FileTarget{cfg: cfg}
	tgt.tuid = fileTUID(cfg)
	tgt.hash = mustCalcHash(cfg)

	assert.Equal(t, "203.0.113.10:9090", tgt.Address())
	assert.Equal(t, "http-metrics", tgt.PortName())
	assert.Equal(t, "203.0.113.10:9090_http-metrics", tgt.TUID())
	assert.Equal(t, map[string]string{"app": "sample-app"}, tgt.Labels())
	assert.NotZero(t, tgt.Hash())
}
