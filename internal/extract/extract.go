// Package extract turns noisy search results into structured supplier
// candidates using regex and gazetteer heuristics.
// Implements: prd003-extraction (R1, R2);
//
//	docs/ARCHITECTURE.md § Extraction.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fluxgen/sourcing-engine/pkg/types"
)

// Extractor converts one raw search result into a supplier candidate.
// A nil return means the result was rejected (generic or unusable page
// title). The heuristic implementation below can be swapped for a
// structured geocoding or NER service without touching the pipeline
// (R1.1).
type Extractor interface {
	Extract(result types.RawSearchResult) *types.SupplierCandidate
}

// notesPrefix marks supplier notes as machine-generated.
const notesPrefix = "Found via web search: "

// snippetNoteLimit bounds how much of the snippet is embedded in notes.
const snippetNoteLimit = 200

// titleSeparatorRe strips everything from the first separator character
// onward, e.g. "Acme Welding Supply - Home" keeps "Acme Welding Supply".
var titleSeparatorRe = regexp.MustCompile(`\s*[-–|].*$`)

// genericTitles is the blocklist of page titles that carry no company
// name (R2.1).
var genericTitles = map[string]bool{
	"home":    true,
	"about":   true,
	"contact": true,
}

// Heuristic is the regex/gazetteer Extractor used in production.
type Heuristic struct{}

// Extract builds a supplier candidate from one search result. Only a
// rejected company name produces nil; every other field degrades to
// empty or "Unknown" rather than failing (R2.6). MaterialsSupplied and
// SearchRank are left for the caller to fill.
func (Heuristic) Extract(r types.RawSearchResult) *types.SupplierCandidate {
	name := companyName(r.Title)
	if name == "" {
		return nil
	}

	if r.Domain == "" {
		r.Domain = domainOf(r.URL)
	}

	loc := extractLocation(r.Snippet)
	country := loc.country
	if country == "" {
		country = "Unknown"
	}

	return &types.SupplierCandidate{
		CompanyName:   name,
		Website:       r.URL,
		City:          loc.city,
		ProvinceState: loc.state,
		Country:       country,
		Phone:         extractPhone(r.Snippet),
		Email:         extractEmail(r.Snippet),
		SupplierType:  classify(country),
		Priority:      "Secondary",
		Status:        "Prospect",
		Notes:         notesPrefix + truncateRunes(r.Snippet, snippetNoteLimit),
		SourceURL:     r.URL,
	}
}

// companyName extracts the company name from a page title: the portion
// before the first -, – or | separator, trimmed. Titles shorter than 3
// characters or on the generic blocklist are rejected with "" (R2.1).
func companyName(title string) string {
	name := titleSeparatorRe.ReplaceAllString(title, "")
	name = strings.TrimSpace(name)

	if len([]rune(name)) < 3 || genericTitles[strings.ToLower(name)] {
		return ""
	}
	return name
}

// classify infers the supplier type from the resolved country (R2.4).
// USA and Canada both count as Local; an unknown location defaults to
// Distributor rather than Import.
func classify(country string) types.SupplierType {
	switch country {
	case "USA", "Canada":
		return types.SupplierLocal
	case "Unknown":
		return types.SupplierDistributor
	default:
		return types.SupplierImport
	}
}

// domainOf derives the domain from a URL's network location when the
// search backend omits it (R2.2).
func domainOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
