// SPDX-License-Identifier: GPL-3.0-or-later

package filesd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/scraper/discovery/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

type discoverySim struct {
	discovery      *Discovery
	beforeRun      func()
	afterRun       func()
	expectedGroups []model.TargetGroup
}

func (sim discoverySim) run(t *testing.T) {
	t.Helper()
	require.NotNil(t, sim.discovery)

	if sim.beforeRun != nil {
		sim.beforeRun()
	}

	in, out := make(chan []model.TargetGroup), make(chan []model.TargetGroup)
	go sim.collectGroups(t, in, out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.discovery.Run(ctx, in)
	time.Sleep(time.Millisecond * 250)

	if sim.afterRun != nil {
		sim.afterRun()
	}

	actual := <-out

	sortGroups(actual)
	sortGroups(sim.expectedGroups)

	assert.Equal(t, sim.expectedGroups, actual)
}

func (sim discoverySim) collectGroups(t *testing.T, in, out chan []model.TargetGroup) {
	const timeout = time.Second * 5

	var groups []model.TargetGroup
loop:
	for {
		select {
		case updates := <-in:
			if groups = append(groups, updates...); len(groups) >= len(sim.expectedGroups) {
				break loop
			}
		case <-time.After(timeout):
			t.Logf("discovery '%s' timed out after %s, got %d groups, expected %d, some events are skipped",
				sim.discovery, timeout, len(groups), len(sim.expectedGroups))
			break loop
		}
	}
	out <- groups
}

func sortGroups(groups []model.TargetGroup) {
	if len(groups) == 0 {
		return
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Source() < groups[j].Source() })
}

func prepareDiscovery(t *testing.T, cfg Config) *Discovery {
	t.Helper()
	d, err := NewDiscovery(cfg)
	require.NoError(t, err)
	return d
}

func prepareTargetGroup(provider, path string, cfgs ...targetConfig) *fileTargetGroup {
	tgg := &fileTargetGroup{provider: provider, source: fileSource(path)}

	for _, cfg := range cfgs {
		tgt := &FileTarget{cfg: cfg}
		tgt.tuid = fileTUID(cfg)
		tgt.hash = mustCalcHash(cfg)
		tgg.targets = append(tgg.targets, tgt)
	}

	return tgg
}

func prepareEmptyTargetGroup(provider, path string) *fileTargetGroup {
	return &fileTargetGroup{provider: provider, source: fileSource(path)}
}

func mustCalcHash(obj any) uint64 {
	hash, err := model.CalcHash(obj)
	if err != nil {
		panic(fmt.Sprintf("hash calculation: %v", err))
	}
	return hash
}

type tmpDir struct {
	dir string
	t   *testing.T
}

func newTmpDir(t *testing.T, pattern string) *tmpDir {
	pattern = "filesd-test-" + pattern
	dir, err := os.MkdirTemp(os.TempDir(), pattern)
	require.NoError(t, err)
	return &tmpDir{dir: dir, t: t}
}

func (d *tmpDir) cleanup() {
	assert.NoError(d.t, os.RemoveAll(d.dir))
}

func (d *tmpDir) join(filename string) string {
	return filepath.Join(d.dir, filename)
}

func (d *tmpDir) createFile(pattern string) string {
	f, err := os.CreateTemp(d.dir, pattern)
	require.NoError(d.t, err)
	_ = f.Close()
	return f.Name()
}

func (d *tmpDir) removeFile(filename string) {
	err := os.Remove(filename)
	require.NoError(d.t, err)
}

func (d *tmpDir) renameFile(origFilename, newFilename string) {
	err := os.Rename(origFilename, newFilename)
	require.NoError(d.t, err)
}

func (d *tmpDir) writeYAML(filename string, in any) {
	bs, err := yaml.Marshal(in)
	require.NoError(d.t, err)
	err = os.WriteFile(filename, bs, 0644)
	require.NoError(d.t, err)
}

func (d *tmpDir) writeString(filename, data string) {
	err := os.WriteFile(filename, []byte(data), 0644)
	require.NoError(d.t, err)
}
