// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect matches extracted article text against the software
// pattern catalog.
package detect

import (
	"github.com/pdiddy/softscan/internal/catalog"
	"github.com/pdiddy/softscan/pkg/types"
)

// Detect scans text for every catalog entry and returns one detection
// per matched entry, in catalog-declaration order. Empty text
// short-circuits to nil without scanning. The function is stateless:
// identical text always yields identical output.
func Detect(text string) []types.Detection {
	if text == "" {
		return nil
	}

	var found []types.Detection
	for _, e := range catalog.Entries() {
		if !present(e, text) {
			continue
		}
		d := types.Detection{
			SoftwareKey: e.Key,
			DisplayName: e.DisplayName,
		}
		if e.Version != nil {
			if m := e.Version.FindStringSubmatch(text); m != nil {
				d.Version = m[1]
			}
		}
		found = append(found, d)
	}
	return found
}

// present reports whether the entry's presence pattern matches text,
// honoring the entry's adjacency exclusion: a match immediately
// followed by an excluded token does not count, but any other match in
// the same text does.
func present(e catalog.Entry, text string) bool {
	if e.ExcludeFollowing == nil {
		return e.Presence.MatchString(text)
	}

	for _, span := range e.Presence.FindAllStringIndex(text, -1) {
		if !e.ExcludeFollowing.MatchString(text[span[1]:]) {
			return true
		}
	}
	return false
}
