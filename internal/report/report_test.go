// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/softscan/pkg/types"
)

func sampleBatch() types.BatchResult {
	return types.BatchResult{
		Records: []types.ArticleRecord{
			{
				InputID: "PMC1", PMCID: "PMC1", TextAccessible: true, Seconds: 1.5,
				Detections: []types.Detection{
					{SoftwareKey: "r", DisplayName: "R", Version: "4.1.2"},
					{SoftwareKey: "spss", DisplayName: "SPSS"},
				},
			},
			{
				InputID: "bad id", TextAccessible: false, Seconds: 0.1,
				ErrorMessage: "Invalid identifier format",
			},
			{
				InputID: "PMC3", PMCID: "PMC3", TextAccessible: true, Seconds: 2.4,
				Detections: []types.Detection{
					{SoftwareKey: "r", DisplayName: "R"},
				},
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleBatch())

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Accessible)
	assert.Equal(t, 2, s.WithSoftware)
	assert.InDelta(t, 4.0, s.TotalSeconds, 1e-9)
	assert.Equal(t, 2, s.Frequency["r"])
	assert.Equal(t, 1, s.Frequency["spss"])
}

func TestSummarizeIdempotent(t *testing.T) {
	br := sampleBatch()
	first := Summarize(br)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Summarize(br))
	}
}

func TestSummarizeEmptyBatch(t *testing.T) {
	s := Summarize(types.BatchResult{})
	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.Frequency)
}

func TestDetectionsString(t *testing.T) {
	tests := []struct {
		name string
		rec  types.ArticleRecord
		want string
	}{
		{
			"software with and without version",
			sampleBatch().Records[0],
			"R 4.1.2; SPSS",
		},
		{
			"accessible without detections",
			types.ArticleRecord{TextAccessible: true},
			"None detected",
		},
		{
			"inaccessible",
			types.ArticleRecord{TextAccessible: false},
			"-",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectionsString(tt.rec, false))
		})
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sampleBatch(), false)

	out := buf.String()
	require.Contains(t, out, "INPUT")
	assert.Contains(t, out, "PMC1")
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, "Invalid identifier format")
	assert.Contains(t, out, "R 4.1.2; SPSS")

	// Header plus one row per record.
	assert.Equal(t, 4, strings.Count(strings.TrimRight(out, "\n"), "\n")+1)
}

func TestWriteSummaryFrequencyOrder(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, Summarize(sampleBatch()))

	out := buf.String()
	assert.Contains(t, out, "Articles: 3  accessible: 2  with software: 2")
	// R (2) must be listed before SPSS (1).
	assert.Less(t, strings.Index(out, "R "), strings.Index(out, "SPSS"))
}
