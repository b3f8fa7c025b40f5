// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pmc normalizes PubMed Central identifiers and fetches
// open-access full-text XML from the Europe PMC REST service.
package pmc

import (
	"fmt"
	"regexp"
	"strings"
)

// idPrefix is the canonical repository prefix.
const idPrefix = "PMC"

// digitsPattern matches the numeric body of a PMCID.
var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

// InvalidIDError reports an input string that cannot be normalized into
// a PMCID. It is recoverable: batch callers record it per item.
type InvalidIDError struct {
	Input string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid PMC identifier: %q", e.Input)
}

// NormalizeID canonicalizes a raw identifier into "PMC" + digits.
// Surrounding whitespace is trimmed and a leading case-insensitive
// "PMC" prefix is accepted; the remainder must be all digits.
func NormalizeID(raw string) (string, error) {
	id := strings.TrimSpace(raw)

	if len(id) >= len(idPrefix) && strings.EqualFold(id[:len(idPrefix)], idPrefix) {
		id = id[len(idPrefix):]
	}

	if id == "" || !digitsPattern.MatchString(id) {
		return "", &InvalidIDError{Input: raw}
	}
	return idPrefix + id, nil
}
