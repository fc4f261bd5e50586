// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

// Package scoring computes weighted quality scores and letter grades
// for persisted supplier records.
// Implements: prd005-scoring (R1-R4);
//
//	docs/ARCHITECTURE.md § Scoring.
package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fluxgen/sourcing-engine/pkg/types"
)

// Weights holds the per-factor score maxima. The defaults sum to 100.
// Passing the table into NewScorer keeps it test-overridable without
// global mutation.
type Weights struct {
	WebsiteQuality   float64 `yaml:"website_quality" mapstructure:"website_quality"`
	Location         float64 `yaml:"location" mapstructure:"location"`
	Certifications   float64 `yaml:"certifications" mapstructure:"certifications"`
	SearchRank       float64 `yaml:"search_rank" mapstructure:"search_rank"`
	ContactInfo      float64 `yaml:"contact_info" mapstructure:"contact_info"`
	SupplierType     float64 `yaml:"supplier_type" mapstructure:"supplier_type"`
	PricingAvailable float64 `yaml:"pricing_available" mapstructure:"pricing_available"`
	NotesQuality     float64 `yaml:"notes_quality" mapstructure:"notes_quality"`
}

// DefaultWeights returns the production weight table (total 100).
func DefaultWeights() Weights {
	return Weights{
		WebsiteQuality:   15,
		Location:         20,
		Certifications:   15,
		SearchRank:       10,
		ContactInfo:      15,
		SupplierType:     10,
		PricingAvailable: 10,
		NotesQuality:     5,
	}
}

// Scorer computes supplier score breakdowns under one weight table.
type Scorer struct {
	weights Weights
}

// NewScorer builds a Scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Weights returns the scorer's weight table.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the eight sub-scores for a supplier plus its related
// certification and pricing-history counts, sums them, and assigns a
// grade (R2). Scoring reads the record only; nothing is mutated.
func (s *Scorer) Score(sup types.SupplierRecord, certCount, pricingCount int) types.ScoreBreakdown {
	b := types.ScoreBreakdown{
		WebsiteQuality:   s.scoreWebsiteQuality(sup),
		Location:         s.scoreLocation(sup),
		Certifications:   s.scoreCertifications(certCount),
		SearchRank:       s.scoreSearchRank(sup),
		ContactInfo:      s.scoreContactInfo(sup),
		SupplierType:     s.scoreSupplierType(sup),
		PricingAvailable: s.scorePricingAvailable(pricingCount),
		NotesQuality:     s.scoreNotesQuality(sup),
	}

	total := b.WebsiteQuality + b.Location + b.Certifications + b.SearchRank +
		b.ContactInfo + b.SupplierType + b.PricingAvailable + b.NotesQuality

	b.TotalScore = math.Round(total*100) / 100
	b.Grade = Grade(b.TotalScore)
	return b
}

// freeHostMarkers flag free-hosting domains that cost the
// professional-domain points.
var freeHostMarkers = []string{".blogspot.", ".wordpress.", ".wix.", ".weebly."}

// goodTLDs earn the proper-TLD points.
var goodTLDs = []string{".com", ".ca", ".net", ".org", ".co"}

// scoreWebsiteQuality: 5 for having a website, +3 for https, +4 unless
// hosted on a free platform, +3 for a conventional TLD (R2.1).
func (s *Scorer) scoreWebsiteQuality(sup types.SupplierRecord) float64 {
	website := sup.Website
	if website == "" {
		return 0
	}

	score := 5.0

	if strings.HasPrefix(website, "https://") {
		score += 3
	}

	lower := strings.ToLower(website)
	free := false
	for _, marker := range freeHostMarkers {
		if strings.Contains(lower, marker) {
			free = true
			break
		}
	}
	if !free {
		score += 4
	}

	for _, tld := range goodTLDs {
		if strings.HasSuffix(website, tld) {
			score += 3
			break
		}
	}

	return math.Min(score, s.weights.WebsiteQuality)
}

// scoreLocation ranks proximity: Canada over USA over everything else
// (R2.2). The local-type branch only fires for suppliers whose country
// resolved to neither Canada nor USA but were flagged local anyway.
func (s *Scorer) scoreLocation(sup types.SupplierRecord) float64 {
	country := strings.ToUpper(sup.Country)
	supplierType := strings.ToLower(string(sup.SupplierType))

	if strings.Contains(country, "CANADA") || country == "CA" {
		return 20
	}
	if strings.Contains(country, "USA") || country == "US" || strings.Contains(country, "UNITED STATES") {
		return 15
	}
	if supplierType == "local" {
		return 18
	}
	return 8
}

// scoreCertifications grants 5 points per linked certification, capped (R2.3).
func (s *Scorer) scoreCertifications(certCount int) float64 {
	return math.Min(float64(certCount)*5, s.weights.Certifications)
}

// rankPattern recovers a search rank embedded in notes text, e.g.
// "rank: 3" or "Rank 2".
var rankPattern = regexp.MustCompile(`(?i)rank[:\s]+(\d+)`)

// scoreSearchRank converts an embedded rank to points: rank 1 earns 10,
// rank 10 earns 1. Notes without a rank marker score the default 5 (R2.4).
func (s *Scorer) scoreSearchRank(sup types.SupplierRecord) float64 {
	m := rankPattern.FindStringSubmatch(sup.Notes)
	if m == nil {
		return 5
	}

	rank, err := strconv.Atoi(m[1])
	if err != nil {
		return 5
	}

	score := math.Max(float64(10-rank+1), 0)
	return math.Min(score, s.weights.SearchRank)
}

// scoreContactInfo rewards completeness: email 5, phone 5, contact
// person 2, city 3 (R2.5).
func (s *Scorer) scoreContactInfo(sup types.SupplierRecord) float64 {
	score := 0.0
	if sup.Email != "" {
		score += 5
	}
	if sup.Phone != "" {
		score += 5
	}
	if sup.ContactPerson != "" {
		score += 2
	}
	if sup.City != "" {
		score += 3
	}
	return math.Min(score, s.weights.ContactInfo)
}

// supplierTypeScores keys on lowercase type labels. Values outside the
// table, including the Distributor type the extractor produces, fall
// through to the default of 5 (R2.6).
var supplierTypeScores = map[string]float64{
	"local":   10,
	"online":  7,
	"import":  5,
	"unknown": 3,
}

func (s *Scorer) scoreSupplierType(sup types.SupplierRecord) float64 {
	if score, ok := supplierTypeScores[strings.ToLower(string(sup.SupplierType))]; ok {
		return score
	}
	return 5
}

// scorePricingAvailable: 3+ quotes earn 10, at least one earns 7,
// none earns 0 (R2.7).
func (s *Scorer) scorePricingAvailable(pricingCount int) float64 {
	switch {
	case pricingCount >= 3:
		return 10
	case pricingCount >= 1:
		return 7
	default:
		return 0
	}
}

// scoreNotesQuality is length-banded: longer notes suggest richer
// source snippets (R2.8).
func (s *Scorer) scoreNotesQuality(sup types.SupplierRecord) float64 {
	n := len([]rune(sup.Notes))
	switch {
	case n == 0:
		return 0
	case n > 200:
		return 5
	case n > 100:
		return 3
	case n > 20:
		return 2
	default:
		return 1
	}
}

// Grade maps a total score to its letter band (inclusive lower bounds).
func Grade(total float64) string {
	switch {
	case total >= 90:
		return "A+"
	case total >= 80:
		return "A"
	case total >= 70:
		return "B"
	case total >= 60:
		return "C"
	case total >= 50:
		return "D"
	default:
		return "F"
	}
}
