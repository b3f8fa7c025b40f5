// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog holds the static table of statistical-software
// detection patterns. The table is compiled and validated once at
// package initialization and is read-only afterwards; a pattern that
// fails to compile aborts the process at startup rather than at
// request time.
package catalog

import (
	"fmt"
	"regexp"
)

// Entry describes one detectable software package.
type Entry struct {
	// Key uniquely identifies the entry across the catalog.
	Key string

	// DisplayName is the human-readable product name.
	DisplayName string

	// Presence matches when the text mentions the software. All
	// patterns are case-insensitive and word-boundary anchored.
	Presence *regexp.Regexp

	// ExcludeFollowing, when non-nil, disqualifies a presence match
	// whose trailing text it matches. It is anchored at the character
	// immediately after the match. RE2 has no negative lookahead, so
	// token-adjacency disambiguation lives here instead of inside
	// Presence.
	ExcludeFollowing *regexp.Regexp

	// Version, when non-nil, extracts a version token as its first
	// capture group. Nil means the entry never carries a version.
	Version *regexp.Regexp

	// Color is a decorative tag for terminal display.
	Color string
}

// Common version-token fragments. R and SAS require a dotted version so
// bare years ("R 2019 data") are not mistaken for releases.
const (
	verTok    = `(?:version\s+|v\.?\s*)?`
	dotted    = `([0-9]+(?:\.[0-9]+)+)`
	dottedOpt = `([0-9]+(?:\.[0-9]+)*)`
)

// entries is the canonical catalog, in declaration order. Detection
// results follow this order regardless of match position in the text.
var entries = []Entry{
	{
		Key:         "r",
		DisplayName: "R",
		// A bare \bR\b is far too promiscuous (initials, "R&D",
		// reaction "R"), so presence requires a version-like token or
		// a known collocation.
		Presence: regexp.MustCompile(`(?i)\bR\s+` + verTok + `[0-9]+\.[0-9]|\bR\s+(?:statistical|software|programming|language|environment|package|project)\b|\bR\s+Core\s+Team\b|\bR\s+Foundation\b|\bRStudio\b|\bBioconductor\b`),
		Version:  regexp.MustCompile(`(?i)\bR\s+` + verTok + dotted),
		Color:    "blue",
	},
	{
		Key:         "spss",
		DisplayName: "SPSS",
		Presence:    regexp.MustCompile(`(?i)\bSPSS\b|\bPASW\s+Statistics\b`),
		Version:     regexp.MustCompile(`(?i)\bSPSS\s+(?:Statistics\s+)?` + verTok + dottedOpt),
		Color:       "red",
	},
	{
		Key:         "sas",
		DisplayName: "SAS",
		// "SAS" alone collides with unrelated acronyms (e.g. sleep
		// apnea syndrome), so presence requires a product collocation.
		Presence: regexp.MustCompile(`(?i)\bSAS\s+(?:Institute\b|software\b|version\b|v\.?\s*[0-9]|[0-9]+\.[0-9])|\bSAS/(?:STAT|ETS|GRAPH)\b`),
		Version:  regexp.MustCompile(`(?i)\bSAS\s+` + verTok + dotted),
		Color:    "yellow",
	},
	{
		Key:         "stata",
		DisplayName: "Stata",
		Presence:    regexp.MustCompile(`(?i)\bStata\b|\bStataCorp\b`),
		Version:     regexp.MustCompile(`(?i)\bStata(?:[/ ](?:SE|MP|IC))?\s+` + verTok + dottedOpt),
		Color:       "green",
	},
	{
		Key:         "prism",
		DisplayName: "GraphPad Prism",
		// Bare "Prism" only counts when followed by a version token;
		// the optics word is too common otherwise.
		Presence: regexp.MustCompile(`(?i)\bGraphPad(?:\s+Prism)?\b|\bPrism\s+` + verTok + `[0-9]`),
		Version:  regexp.MustCompile(`(?i)\bPrism\s+` + verTok + dottedOpt),
		Color:    "magenta",
	},
	{
		Key:         "python",
		DisplayName: "Python",
		Presence:    regexp.MustCompile(`(?i)\bPython\b`),
		// Excludes the snake and the bare phrase "Python programming";
		// any other adjacent token still detects.
		ExcludeFollowing: regexp.MustCompile(`(?i)^\s+(?:snake|programming)\b`),
		Version:          regexp.MustCompile(`(?i)\bPython\s+` + verTok + dottedOpt),
		Color:            "cyan",
	},
	{
		Key:         "pylibs",
		DisplayName: "Python Libraries",
		// One bucket for the scientific-Python stack; individual
		// libraries are not reported separately.
		Presence: regexp.MustCompile(`(?i)\bNumPy\b|\bpandas\b|\bSciPy\b|\bscikit-learn\b|\bsklearn\b|\bmatplotlib\b|\bstatsmodels\b|\bseaborn\b`),
		Color:    "cyan",
	},
	{
		Key:         "matlab",
		DisplayName: "MATLAB",
		Presence:    regexp.MustCompile(`(?i)\bMATLAB\b|\bMathWorks\b`),
		// Accepts dotted versions and release tokens like "R2021a".
		Version: regexp.MustCompile(`(?i)\bMATLAB\s+` + verTok + `R?([0-9]{4}[ab]\b|[0-9]+(?:\.[0-9]+)*)`),
		Color:   "yellow",
	},
	{
		Key:         "minitab",
		DisplayName: "Minitab",
		Presence:    regexp.MustCompile(`(?i)\bMinitab\b`),
		Version:     regexp.MustCompile(`(?i)\bMinitab\s+` + verTok + dottedOpt),
		Color:       "green",
	},
	{
		Key:         "jmp",
		DisplayName: "JMP",
		Presence:    regexp.MustCompile(`(?i)\bJMP\b`),
		Version:     regexp.MustCompile(`(?i)\bJMP\s+(?:Pro\s+)?` + verTok + dottedOpt),
		Color:       "magenta",
	},
	{
		Key:         "jamovi",
		DisplayName: "Jamovi",
		Presence:    regexp.MustCompile(`(?i)\bjamovi\b`),
		Version:     regexp.MustCompile(`(?i)\bjamovi\s+` + verTok + dottedOpt),
		Color:       "blue",
	},
	{
		Key:         "jasp",
		DisplayName: "JASP",
		Presence:    regexp.MustCompile(`(?i)\bJASP\b`),
		Version:     regexp.MustCompile(`(?i)\bJASP\s+` + verTok + dottedOpt),
		Color:       "red",
	},
	{
		Key:         "revman",
		DisplayName: "RevMan",
		Presence:    regexp.MustCompile(`(?i)\bRevMan\b|\bReview\s+Manager\b`),
		Version:     regexp.MustCompile(`(?i)\b(?:RevMan|Review\s+Manager)\s+` + verTok + dottedOpt),
		Color:       "white",
	},
}

var byKey map[string]*Entry

func init() {
	byKey = make(map[string]*Entry, len(entries))
	for i := range entries {
		e := &entries[i]
		if _, dup := byKey[e.Key]; dup {
			panic(fmt.Sprintf("catalog: duplicate key %q", e.Key))
		}
		byKey[e.Key] = e
	}
}

// Entries returns the catalog in declaration order. The returned slice
// and its patterns must not be mutated.
func Entries() []Entry {
	return entries
}

// Lookup returns the entry for key, or nil when the key is unknown.
func Lookup(key string) *Entry {
	return byKey[key]
}
