// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jats extracts readable plain text from JATS full-text XML
// trees as served by Europe PMC.
package jats

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// contentXPaths selects the content-bearing element roles, in fixed
// order: paragraphs, article and non-table titles, abstracts, captions,
// section titles, figure captions. Later expressions may reselect nodes
// already seen; Text deduplicates by node identity and skips nodes
// whose text an already-selected ancestor covers.
var contentXPaths = []string{
	"//p",
	"//article-title",
	"//title[not(ancestor::table-wrap)]",
	"//abstract",
	"//caption",
	"//sec/title",
	"//fig/caption",
}

// Text flattens a parsed article document into a single normalized
// string: selected fragments joined by single spaces, all whitespace
// runs collapsed, surrounding whitespace trimmed.
//
// Text is total: a nil document, a document without any text, and any
// internal fault during selection all yield "". Callers never see an
// error from extraction.
func Text(doc *xmlquery.Node) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
		}
	}()

	if doc == nil {
		return ""
	}

	fragments := selectContent(doc)
	if len(fragments) == 0 {
		fragments = allTextNodes(doc)
	}

	return collapse(strings.Join(fragments, " "))
}

// selectContent gathers text from the structural roles in
// contentXPaths. Each node is visited at most once, and a node whose
// ancestor was also selected is dropped: the ancestor's inner text
// already covers it, so each fragment contributes exactly once.
func selectContent(doc *xmlquery.Node) []string {
	seen := make(map[*xmlquery.Node]bool)
	var nodes []*xmlquery.Node
	for _, xp := range contentXPaths {
		for _, n := range xmlquery.Find(doc, xp) {
			if seen[n] {
				continue
			}
			seen[n] = true
			nodes = append(nodes, n)
		}
	}

	var fragments []string
	for _, n := range nodes {
		if hasSelectedAncestor(n, seen) {
			continue
		}
		if t := strings.TrimSpace(n.InnerText()); t != "" {
			fragments = append(fragments, t)
		}
	}
	return fragments
}

func hasSelectedAncestor(n *xmlquery.Node, seen map[*xmlquery.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if seen[p] {
			return true
		}
	}
	return false
}

// allTextNodes is the fallback when no structural role matched: every
// non-empty text node in the document, in document order.
func allTextNodes(doc *xmlquery.Node) []string {
	var fragments []string
	for _, n := range xmlquery.Find(doc, "//text()") {
		if t := strings.TrimSpace(n.Data); t != "" {
			fragments = append(fragments, t)
		}
	}
	return fragments
}

// collapse reduces every whitespace run (spaces, tabs, newlines) to a
// single space and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
