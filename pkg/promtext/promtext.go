// SPDX-License-Identifier: GPL-3.0-or-later

// Package promtext renders metrix registry snapshots in the prometheus text
// exposition format 0.0.4 and serves them over HTTP.
package promtext

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/amirulhaque/Kubernetes-demo/pkg/metrix"
)

// ContentType is the value of the Content-Type header of the exposition response.
const ContentType = `text/plain; version=0.0.4; charset=utf-8`

// ErrExposition is returned when rendering or writing the exposition body fails.
var ErrExposition = errors.New("exposition failed")

var (
	helpEscaper  = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
)

// Write renders the snapshot into w. Families come out in snapshot order
// (sorted by name), series in canonical label key order, so the output is
// deterministic for a given snapshot.
func Write(w io.Writer, snap *metrix.Snapshot) error {
	bw := bufio.NewWriter(w)

	for _, fam := range snap.Families {
		writeFamily(bw, fam)
	}

	return bw.Flush()
}

func writeFamily(bw *bufio.Writer, fam metrix.FamilySnapshot) {
	if fam.Description != "" {
		bw.WriteString("# HELP ")
		bw.WriteString(fam.Name)
		bw.WriteByte(' ')
		bw.WriteString(helpEscaper.Replace(fam.Description))
		bw.WriteByte('\n')
	}
	bw.WriteString("# TYPE ")
	bw.WriteString(fam.Name)
	bw.WriteByte(' ')
	bw.WriteString(fam.Kind.String())
	bw.WriteByte('\n')

	switch fam.Kind {
	case metrix.KindCounter:
		for _, s := range fam.Series {
			writeSample(bw, fam.Name, s.Labels, s.Value)
		}
	case metrix.KindHistogram:
		for _, s := range fam.Series {
			for _, b := range s.Buckets {
				writeBucket(bw, fam.Name, s.Labels, b)
			}
			writeSample(bw, fam.Name+"_sum", s.Labels, s.Sum)
			writeSample(bw, fam.Name+"_count", s.Labels, float64(s.Count))
		}
	}
}

func writeBucket(bw *bufio.Writer, name string, lbs []metrix.Label, b metrix.Bucket) {
	bw.WriteString(name)
	bw.WriteString("_bucket{")
	for _, lb := range lbs {
		writeLabel(bw, lb)
		bw.WriteByte(',')
	}
	bw.WriteString(`le="`)
	bw.WriteString(formatFloat(b.UpperBound))
	bw.WriteString(`"} `)
	bw.WriteString(strconv.FormatUint(b.CumulativeCount, 10))
	bw.WriteByte('\n')
}

func writeSample(bw *bufio.Writer, name string, lbs []metrix.Label, value float64) {
	bw.WriteString(name)
	if len(lbs) > 0 {
		bw.WriteByte('{')
		for i, lb := range lbs {
			if i > 0 {
				bw.WriteByte(',')
			}
			writeLabel(bw, lb)
		}
		bw.WriteByte('}')
	}
	bw.WriteByte(' ')
	bw.WriteString(formatFloat(value))
	bw.WriteByte('\n')
}

func writeLabel(bw *bufio.Writer, lb metrix.Label) {
	bw.WriteString(lb.Key)
	bw.WriteString(`="`)
	bw.WriteString(labelEscaper.Replace(lb.Value))
	bw.WriteByte('"')
}

// formatFloat renders values the shortest way that round-trips, matching the
// exposition convention. +Inf comes out as "+Inf".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
