// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

// Package search builds supplier queries, invokes an AI web-search
// backend, and parses a best-effort JSON result list out of the
// free-form response text.
// Implements: prd002-search (R1-R5);
//
//	docs/ARCHITECTURE.md § Search.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fluxgen/sourcing-engine/pkg/types"
)

// Backend performs one web search and returns the raw response text.
// Each provider (Claude, OpenAI) implements this interface per the
// Strategy pattern (R4.1). Parsing is shared: the response is expected
// to contain a JSON array of result objects, but backends make no
// guarantee it does.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) (string, error)
}

// Search runs one query against the backend and returns the parsed
// results plus the raw response text. Failures never propagate: a
// transport error yields an empty list with the error text as the raw
// response, and an unparseable response yields an empty list. Either
// way the caller proceeds with zero results (R5.1-R5.3).
func Search(ctx context.Context, b Backend, query string, maxResults int, w io.Writer) ([]types.RawSearchResult, string) {
	raw, err := b.Search(ctx, query, maxResults)
	if err != nil {
		fmt.Fprintf(w, "   ✗ search error: %v\n", err)
		return nil, err.Error()
	}

	results, err := ParseResults(raw)
	if err != nil {
		fmt.Fprintf(w, "   ⚠ could not parse JSON from response\n")
		return nil, raw
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, raw
}

// jsonArrayRe finds the first bracketed span in free-form text. Greedy
// and dot-matches-newline so a pretty-printed array is captured whole.
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// ParseResults extracts a JSON result array from response text. Text
// that starts with "[" after trimming is parsed directly; otherwise
// the first [...] span is tried. Anything else is a parse error (R3.2).
func ParseResults(text string) ([]types.RawSearchResult, error) {
	trimmed := strings.TrimSpace(text)

	var results []types.RawSearchResult
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &results); err != nil {
			return nil, fmt.Errorf("parsing result array: %w", err)
		}
		return results, nil
	}

	span := jsonArrayRe.FindString(trimmed)
	if span == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}
	if err := json.Unmarshal([]byte(span), &results); err != nil {
		return nil, fmt.Errorf("parsing embedded result array: %w", err)
	}
	return results, nil
}
