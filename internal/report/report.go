// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report reduces batch results into summary statistics and
// renders them for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/pdiddy/softscan/internal/catalog"
	"github.com/pdiddy/softscan/pkg/types"
)

// Summary aggregates a batch: counters plus a per-software frequency
// map (each software counted at most once per record).
type Summary struct {
	Total        int            `json:"total" yaml:"total"`
	Accessible   int            `json:"accessible" yaml:"accessible"`
	WithSoftware int            `json:"with_software" yaml:"with_software"`
	TotalSeconds float64        `json:"total_seconds" yaml:"total_seconds"`
	Frequency    map[string]int `json:"frequency" yaml:"frequency"`
}

// Summarize reduces a batch result. It is a pure function: identical
// input always yields identical output, however often it is recomputed.
func Summarize(br types.BatchResult) Summary {
	s := Summary{Frequency: make(map[string]int)}
	for _, rec := range br.Records {
		s.Total++
		if rec.TextAccessible {
			s.Accessible++
		}
		if rec.HasSoftware() {
			s.WithSoftware++
		}
		s.TotalSeconds += rec.Seconds
		for _, d := range rec.Detections {
			s.Frequency[d.SoftwareKey]++
		}
	}
	return s
}

// colorAttrs maps catalog color tags to terminal attributes.
var colorAttrs = map[string]color.Attribute{
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// DetectionsString formats a record's detections for display:
// "R 4.1.2; SPSS", or "None detected" for an accessible article
// without matches, or "-" when the text was never reached.
func DetectionsString(rec types.ArticleRecord, colored bool) string {
	if !rec.TextAccessible {
		return "-"
	}
	if len(rec.Detections) == 0 {
		return "None detected"
	}

	parts := make([]string, 0, len(rec.Detections))
	for _, d := range rec.Detections {
		name := d.DisplayName
		if colored {
			if e := catalog.Lookup(d.SoftwareKey); e != nil {
				if attr, ok := colorAttrs[e.Color]; ok {
					name = color.New(attr).Sprint(name)
				}
			}
		}
		if d.Version != "" {
			name += " " + d.Version
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "; ")
}

// WriteTable renders one row per record: input identifier, canonical
// PMCID (or "invalid"), accessibility, detected software, error, and
// processing seconds.
func WriteTable(w io.Writer, br types.BatchResult, colored bool) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tPMCID\tACCESS\tSOFTWARE\tERROR\tSECONDS")
	for _, rec := range br.Records {
		pmcid := rec.PMCID
		if pmcid == "" {
			pmcid = "invalid"
		}
		access := "no"
		if rec.TextAccessible {
			access = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
			rec.InputID, pmcid, access,
			DetectionsString(rec, colored), rec.ErrorMessage, rec.Seconds)
	}
	tw.Flush()
}

// WriteSummary renders the aggregate counters and the software
// frequency breakdown, most frequent first.
func WriteSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Articles: %d  accessible: %d  with software: %d  (%.1fs total)\n",
		s.Total, s.Accessible, s.WithSoftware, s.TotalSeconds)

	if len(s.Frequency) == 0 {
		return
	}

	keys := make([]string, 0, len(s.Frequency))
	for k := range s.Frequency {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if s.Frequency[keys[i]] != s.Frequency[keys[j]] {
			return s.Frequency[keys[i]] > s.Frequency[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fmt.Fprintln(w, "Software frequency:")
	for _, k := range keys {
		name := k
		if e := catalog.Lookup(k); e != nil {
			name = e.DisplayName
		}
		fmt.Fprintf(w, "  %-20s %d\n", name, s.Frequency[k])
	}
}
