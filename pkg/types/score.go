// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package types

// ScoreBreakdown holds the eight weighted sub-scores for one supplier,
// their sum, and the letter grade. Sub-score maxima are fixed by the
// scoring weights (15/20/15/10/15/10/10/5, summing to 100).
// Per prd005-scoring R1, R2.
type ScoreBreakdown struct {
	WebsiteQuality   float64 `json:"website_quality" yaml:"website_quality"`
	Location         float64 `json:"location" yaml:"location"`
	Certifications   float64 `json:"certifications" yaml:"certifications"`
	SearchRank       float64 `json:"search_rank" yaml:"search_rank"`
	ContactInfo      float64 `json:"contact_info" yaml:"contact_info"`
	SupplierType     float64 `json:"supplier_type" yaml:"supplier_type"`
	PricingAvailable float64 `json:"pricing_available" yaml:"pricing_available"`
	NotesQuality     float64 `json:"notes_quality" yaml:"notes_quality"`

	// TotalScore is the sum of sub-scores, rounded to 2 decimals.
	TotalScore float64 `json:"total_score" yaml:"total_score"`

	// Grade is the letter band for TotalScore: >=90 A+, >=80 A,
	// >=70 B, >=60 C, >=50 D, else F.
	Grade string `json:"grade" yaml:"grade"`
}
