// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan orchestrates the per-article pipeline: normalize the
// identifier, fetch the full-text XML, extract plain text, and detect
// software mentions. Failures are recorded per item and never abort
// the batch.
package scan

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"
	"golang.org/x/time/rate"

	"github.com/pdiddy/softscan/internal/detect"
	"github.com/pdiddy/softscan/internal/jats"
	"github.com/pdiddy/softscan/internal/pmc"
	"github.com/pdiddy/softscan/pkg/types"
)

const (
	// DefaultMaxBatch is the identifier cap callers enforce before
	// invoking Run.
	DefaultMaxBatch = 20

	// DefaultFetchDelay paces full-text fetches against Europe PMC.
	DefaultFetchDelay = 200 * time.Millisecond

	// maxConcurrency bounds the worker pool; more workers would defeat
	// the pacing intent.
	maxConcurrency = 5

	// errMsgCap limits upstream failure messages stored on a record.
	errMsgCap = 100
)

// Fetcher retrieves the parsed full-text document for a canonical
// PMCID. The production implementation is pmc.Fetch; tests substitute
// their own.
type Fetcher func(ctx context.Context, client *http.Client, pmcid string, cfg types.HTTPConfig) (*xmlquery.Node, error)

// Runner executes batch scans.
type Runner struct {
	Client *http.Client
	Config types.ScanConfig

	// Fetch overrides the full-text fetcher; nil means pmc.Fetch.
	Fetch Fetcher
}

// Run processes identifiers in input order and returns one record per
// identifier, also in input order. Every record reaches a terminal
// state: one item's failure never blocks or cancels its siblings. Live
// progress lines are mirrored to w (which may be nil).
//
// With Config.Concurrency > 1 items are processed by a bounded worker
// pool; the shared rate limiter still paces fetches and the record
// slice is index-addressed, so ordering guarantees hold either way.
func (r *Runner) Run(ctx context.Context, identifiers []string, w io.Writer) types.BatchResult {
	log := NewLog(w)
	records := make([]types.ArticleRecord, len(identifiers))

	delay := r.Config.FetchDelay
	if delay < 0 {
		delay = 0
	}
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	conc := r.Config.Concurrency
	if conc < 1 {
		conc = 1
	}
	if conc > maxConcurrency {
		conc = maxConcurrency
	}

	log.Printf("starting batch of %d identifier(s)", len(identifiers))

	if conc == 1 {
		for i, id := range identifiers {
			records[i] = r.processItem(ctx, limiter, id, log)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, conc)
		for i, id := range identifiers {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				records[i] = r.processItem(ctx, limiter, id, log)
			}(i, id)
		}
		wg.Wait()
	}

	log.Printf("batch complete")
	return types.BatchResult{Records: records, LogEntries: log.Entries()}
}

// processItem runs the staged pipeline for one identifier. Each stage
// either advances the record or stops it at a terminal state with an
// error message; the elapsed wall-clock time is recorded regardless of
// outcome.
func (r *Runner) processItem(ctx context.Context, limiter *rate.Limiter, raw string, log *Log) (rec types.ArticleRecord) {
	start := time.Now()
	rec.InputID = raw
	defer func() { rec.Seconds = time.Since(start).Seconds() }()

	pmcid, err := pmc.NormalizeID(raw)
	if err != nil {
		log.Printf("%s: invalid identifier, skipping", raw)
		rec.ErrorMessage = "Invalid identifier format"
		return rec
	}
	rec.PMCID = pmcid

	if err := limiter.Wait(ctx); err != nil {
		log.Printf("%s: batch cancelled before fetch", pmcid)
		rec.ErrorMessage = truncate(err.Error(), errMsgCap)
		return rec
	}

	log.Printf("%s: fetching full text", pmcid)
	doc, err := r.fetch(ctx, pmcid)
	if err != nil {
		msg := failureMessage(err)
		log.Printf("%s: fetch failed: %s", pmcid, msg)
		rec.ErrorMessage = msg
		return rec
	}

	text := jats.Text(doc)
	rec.TextAccessible = true
	if text == "" {
		log.Printf("%s: no extractable text content", pmcid)
		rec.ErrorMessage = "No extractable text content"
		return rec
	}

	rec.Detections = detect.Detect(text)
	log.Printf("%s: %d character(s) of text, %d software package(s) detected",
		pmcid, len(text), len(rec.Detections))
	return rec
}

func (r *Runner) fetch(ctx context.Context, pmcid string) (*xmlquery.Node, error) {
	f := r.Fetch
	if f == nil {
		f = pmc.Fetch
	}
	return f(ctx, r.Client, pmcid, r.Config.HTTPConfig)
}

// failureMessage extracts the upstream cause from a fetch error,
// capped at errMsgCap characters.
func failureMessage(err error) string {
	var fe *pmc.FetchError
	if errors.As(err, &fe) {
		return truncate(fe.Message, errMsgCap)
	}
	return truncate(err.Error(), errMsgCap)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
