// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/antchfx/xmlquery"

	"github.com/pdiddy/softscan/internal/httputil"
	"github.com/pdiddy/softscan/pkg/types"
)

// europePMCBase is the Europe PMC REST endpoint. Declared as a var so
// tests can substitute an httptest server.
var europePMCBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/"

// FailureKind classifies why a full-text fetch failed.
type FailureKind int

const (
	// FailNetwork covers transport errors, timeouts, and unexpected
	// upstream statuses.
	FailNetwork FailureKind = iota
	// FailNotFound means the article does not exist or has no
	// open-access full text.
	FailNotFound
	// FailRestricted means the article exists but access is denied.
	FailRestricted
	// FailBadResponse means the upstream body was not parseable XML.
	FailBadResponse
)

func (k FailureKind) String() string {
	switch k {
	case FailNotFound:
		return "not-found"
	case FailRestricted:
		return "restricted"
	case FailBadResponse:
		return "bad-response"
	default:
		return "network"
	}
}

// FetchError reports a failed full-text retrieval. It is recoverable:
// batch callers record its message per item and continue.
type FetchError struct {
	Kind    FailureKind
	PMCID   string
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.PMCID, e.Message)
}

// Fetch retrieves the open-access full-text XML for a canonical PMCID
// and returns the parsed document tree. All failures are *FetchError;
// HTTP 429 is retried with backoff before giving up.
func Fetch(ctx context.Context, client *http.Client, pmcid string, cfg types.HTTPConfig) (*xmlquery.Node, error) {
	reqURL := europePMCBase + pmcid + "/fullTextXML"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: FailNetwork, PMCID: pmcid, Message: err.Error()}
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/xml")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, &FetchError{Kind: FailNetwork, PMCID: pmcid, Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to parse.
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{
			Kind:    FailNotFound,
			PMCID:   pmcid,
			Message: "article not found or full text not open access",
		}
	case resp.StatusCode == http.StatusForbidden:
		return nil, &FetchError{
			Kind:    FailRestricted,
			PMCID:   pmcid,
			Message: "access to full text is restricted",
		}
	default:
		return nil, &FetchError{
			Kind:    FailNetwork,
			PMCID:   pmcid,
			Message: fmt.Sprintf("unexpected HTTP %d from Europe PMC", resp.StatusCode),
		}
	}

	doc, err := xmlquery.Parse(resp.Body)
	if err != nil {
		return nil, &FetchError{
			Kind:    FailBadResponse,
			PMCID:   pmcid,
			Message: fmt.Sprintf("parsing full-text XML: %v", err),
		}
	}
	return doc, nil
}
