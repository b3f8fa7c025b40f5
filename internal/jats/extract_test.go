// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jats

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
)

func parse(t *testing.T, raw string) *xmlquery.Node {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestTextSelectsContentRoles(t *testing.T) {
	doc := parse(t, `<article>
  <front>
    <article-meta>
      <title-group><article-title>A Study of Things</article-title></title-group>
      <abstract><p>We studied   things.</p></abstract>
    </article-meta>
  </front>
  <body>
    <sec>
      <title>Methods</title>
      <p>Analyses were
performed carefully.</p>
      <fig><caption><p>Figure one shows results.</p></caption></fig>
    </sec>
  </body>
</article>`)

	got := Text(doc)
	for _, want := range []string{
		"A Study of Things",
		"We studied things.",
		"Methods",
		"Analyses were performed carefully.",
		"Figure one shows results.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Text() missing %q\ngot: %q", want, got)
		}
	}
	if strings.Contains(got, "\n") || strings.Contains(got, "  ") {
		t.Errorf("Text() contains uncollapsed whitespace: %q", got)
	}
}

func TestTextFallbackToRawTextNodes(t *testing.T) {
	// No p/title/abstract/caption anywhere, only unknown elements with
	// raw text nodes.
	doc := parse(t, `<doc><blob>alpha   beta</blob><blob>gamma</blob></doc>`)

	got := Text(doc)
	if got != "alpha beta gamma" {
		t.Errorf("Text() = %q, want %q", got, "alpha beta gamma")
	}
}

func TestTextEmptyOutcomes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no text anywhere", `<article><body><sec></sec></body></article>`},
		{"whitespace only", `<article><body><p>   </p></body></article>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(parse(t, tt.raw)); got != "" {
				t.Errorf("Text() = %q, want empty", got)
			}
		})
	}
}

func TestTextNilDocument(t *testing.T) {
	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}

func TestTextSkipsTableTitles(t *testing.T) {
	doc := parse(t, `<article><body>
  <table-wrap><title>Table title should not appear</title></table-wrap>
  <p>Body paragraph.</p>
</body></article>`)

	got := Text(doc)
	if !strings.Contains(got, "Body paragraph.") {
		t.Fatalf("Text() missing paragraph, got %q", got)
	}
	if strings.Contains(got, "Table title should not appear") {
		t.Errorf("Text() includes table title: %q", got)
	}
}

func TestTextIncludesArticleTitle(t *testing.T) {
	// A software mention that only appears in the article title must
	// still reach the detector.
	doc := parse(t, `<article><front><article-meta>
  <title-group><article-title>Reproducibility of Stata 17 Analyses</article-title></title-group>
</article-meta></front><body><p>Body text.</p></body></article>`)

	got := Text(doc)
	if !strings.Contains(got, "Reproducibility of Stata 17 Analyses") {
		t.Errorf("Text() missing article title, got %q", got)
	}
}

func TestTextParentChildFragmentsOnce(t *testing.T) {
	// A paragraph inside an abstract is selectable both directly and
	// via its parent; the same holds for a paragraph inside a figure
	// caption. Each piece of text must appear exactly once.
	doc := parse(t, `<article>
  <front><article-meta><abstract><p>We studied things.</p></abstract></article-meta></front>
  <body><fig><caption><p>Figure one shows results.</p></caption></fig></body>
</article>`)

	got := Text(doc)
	for _, frag := range []string{"We studied things.", "Figure one shows results."} {
		if n := strings.Count(got, frag); n != 1 {
			t.Errorf("Text() contains %q %d times, want 1\ngot: %q", frag, n, got)
		}
	}
}

func TestTextNoDuplicateFragments(t *testing.T) {
	// The section title is selectable both as a generic title and as a
	// sec/title; it must appear once.
	doc := parse(t, `<article><body><sec><title>Methods</title><p>x</p></sec></body></article>`)

	got := Text(doc)
	if strings.Count(got, "Methods") != 1 {
		t.Errorf("Text() duplicated a fragment: %q", got)
	}
}
