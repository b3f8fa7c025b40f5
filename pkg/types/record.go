// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the softscan pipeline.
package types

// Detection records one software package found in an article's text.
// A given SoftwareKey appears at most once per article.
type Detection struct {
	// SoftwareKey is the catalog key of the detected software (e.g. "r", "spss").
	SoftwareKey string `json:"software_key" yaml:"software_key"`

	// DisplayName is the human-readable name (e.g. "GraphPad Prism").
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Version is the extracted version token (e.g. "4.1.2", "2021a"),
	// or empty when the text names the software without a version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// ArticleRecord holds the outcome of processing one input identifier.
// It is populated stage by stage and published only once processing
// reaches a terminal state; after that it is never mutated.
type ArticleRecord struct {
	// InputID is the raw identifier as supplied by the caller.
	InputID string `json:"input_id" yaml:"input_id"`

	// PMCID is the canonical identifier ("PMC" + digits), or empty when
	// normalization failed.
	PMCID string `json:"pmcid,omitempty" yaml:"pmcid,omitempty"`

	// TextAccessible reports whether full text was retrieved and extracted.
	// It is true even when the extracted text turned out to be empty.
	TextAccessible bool `json:"text_accessible" yaml:"text_accessible"`

	// Detections lists detected software in catalog order.
	Detections []Detection `json:"detections,omitempty" yaml:"detections,omitempty"`

	// ErrorMessage describes why processing stopped early; empty on success.
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`

	// Seconds is the wall-clock processing time for this item.
	Seconds float64 `json:"seconds" yaml:"seconds"`
}

// HasSoftware reports whether at least one software package was detected.
func (r ArticleRecord) HasSoftware() bool {
	return len(r.Detections) > 0
}

// BatchResult is the outcome of one batch invocation. Records preserve
// the input order regardless of how items were scheduled.
type BatchResult struct {
	Records []ArticleRecord `json:"records" yaml:"records"`

	// LogEntries is the timestamped processing log, in append order.
	LogEntries []string `json:"log_entries,omitempty" yaml:"log_entries,omitempty"`
}
