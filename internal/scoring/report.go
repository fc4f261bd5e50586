// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package scoring

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/fluxgen/sourcing-engine/internal/store"
	"github.com/fluxgen/sourcing-engine/pkg/types"
)

// RankedSupplier pairs a supplier record with its score breakdown.
type RankedSupplier struct {
	Supplier  types.SupplierRecord `json:"supplier" yaml:"supplier"`
	Breakdown types.ScoreBreakdown `json:"breakdown" yaml:"breakdown"`
}

// ScoreAll scores every supplier (optionally filtered by a
// materials-supplied substring) and returns them ranked by total score
// descending (R3.1, R3.2). Certification and pricing counts are read
// per supplier; the discovery pipeline is not involved.
func (s *Scorer) ScoreAll(ctx context.Context, st *store.Store, materialFilter string) ([]RankedSupplier, error) {
	suppliers, err := st.Suppliers(ctx, materialFilter)
	if err != nil {
		return nil, fmt.Errorf("loading suppliers: %w", err)
	}

	ranked := make([]RankedSupplier, 0, len(suppliers))
	for _, sup := range suppliers {
		certCount, err := st.CertificationCount(ctx, sup.ID)
		if err != nil {
			return nil, err
		}
		pricingCount, err := st.PricingCount(ctx, sup.ID)
		if err != nil {
			return nil, err
		}

		ranked = append(ranked, RankedSupplier{
			Supplier:  sup,
			Breakdown: s.Score(sup, certCount, pricingCount),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.TotalScore > ranked[j].Breakdown.TotalScore
	})

	return ranked, nil
}

// factorScore is one named sub-score for display.
type factorScore struct {
	name  string
	value float64
}

// factors lists the breakdown sub-scores with display names, in weight
// table order.
func factors(b types.ScoreBreakdown) []factorScore {
	return []factorScore{
		{"Website Quality", b.WebsiteQuality},
		{"Location", b.Location},
		{"Certifications", b.Certifications},
		{"Search Rank", b.SearchRank},
		{"Contact Info", b.ContactInfo},
		{"Supplier Type", b.SupplierType},
		{"Pricing Available", b.PricingAvailable},
		{"Notes Quality", b.NotesQuality},
	}
}

// Strengths returns the supplier's top three nonzero sub-scores,
// formatted for the ranked report (R3.3).
func Strengths(b types.ScoreBreakdown) []string {
	fs := factors(b)
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].value > fs[j].value })

	var out []string
	for _, f := range fs[:3] {
		if f.value > 0 {
			out = append(out, fmt.Sprintf("%s(%.0f)", f.name, f.value))
		}
	}
	return out
}

// FormatRanked writes the ranked supplier report to w, capped at topN
// entries (R3.2, R3.3).
func FormatRanked(ranked []RankedSupplier, topN int, materialFilter string, w io.Writer) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintln(w, "SUPPLIER SCORING REPORT")
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(w, "Total suppliers: %d\n", len(ranked))
	if materialFilter != "" {
		fmt.Fprintf(w, "Material filter: %s\n", materialFilter)
	}
	fmt.Fprintln(w)

	if len(ranked) == 0 {
		fmt.Fprintln(w, "No suppliers found.")
		return
	}

	if topN <= 0 || topN > len(ranked) {
		topN = len(ranked)
	}

	for i, r := range ranked[:topN] {
		fmt.Fprintf(w, "%2d. %s\n", i+1, r.Supplier.CompanyName)
		fmt.Fprintf(w, "    Score: %.1f/100 (%s)\n", r.Breakdown.TotalScore, r.Breakdown.Grade)
		fmt.Fprintf(w, "    Material: %s\n", r.Supplier.MaterialsSupplied)
		fmt.Fprintf(w, "    Location: %s\n", r.Supplier.Country)

		if strengths := Strengths(r.Breakdown); len(strengths) > 0 {
			fmt.Fprintf(w, "    Strengths: %s\n", strings.Join(strengths, " "))
		}
		if r.Supplier.Website != "" {
			fmt.Fprintf(w, "    Website: %s\n", r.Supplier.Website)
		}
		fmt.Fprintln(w)
	}
}

// FormatScorecard writes a single supplier's full score breakdown,
// each factor against its weight (R3.4).
func FormatScorecard(r RankedSupplier, weights Weights, w io.Writer) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintln(w, "SUPPLIER SCORE CARD")
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(w, "Company:  %s\n", r.Supplier.CompanyName)
	fmt.Fprintf(w, "Material: %s\n", r.Supplier.MaterialsSupplied)
	fmt.Fprintf(w, "\nTOTAL SCORE: %.2f/100 (%s)\n\n", r.Breakdown.TotalScore, r.Breakdown.Grade)

	maxima := []float64{
		weights.WebsiteQuality, weights.Location, weights.Certifications,
		weights.SearchRank, weights.ContactInfo, weights.SupplierType,
		weights.PricingAvailable, weights.NotesQuality,
	}
	fmt.Fprintln(w, "BREAKDOWN:")
	for i, f := range factors(r.Breakdown) {
		fmt.Fprintf(w, "  %-20s %5.1f/%.0f\n", f.name, f.value, maxima[i])
	}
}

// Summary holds aggregate statistics over all scored suppliers (R3.5).
type Summary struct {
	TotalSuppliers    int            `yaml:"total_suppliers"`
	AverageScore      float64        `yaml:"average_score"`
	MinScore          float64        `yaml:"min_score"`
	MaxScore          float64        `yaml:"max_score"`
	GradeDistribution map[string]int `yaml:"grade_distribution"`
}

// gradeOrder fixes the display order of grade bands.
var gradeOrder = []string{"A+", "A", "B", "C", "D", "F"}

// Summarize computes aggregate score statistics.
func Summarize(ranked []RankedSupplier) Summary {
	summary := Summary{
		GradeDistribution: map[string]int{"A+": 0, "A": 0, "B": 0, "C": 0, "D": 0, "F": 0},
	}
	if len(ranked) == 0 {
		return summary
	}

	summary.TotalSuppliers = len(ranked)
	summary.MinScore = ranked[0].Breakdown.TotalScore
	summary.MaxScore = ranked[0].Breakdown.TotalScore

	var sum float64
	for _, r := range ranked {
		score := r.Breakdown.TotalScore
		sum += score
		if score < summary.MinScore {
			summary.MinScore = score
		}
		if score > summary.MaxScore {
			summary.MaxScore = score
		}
		summary.GradeDistribution[r.Breakdown.Grade]++
	}
	summary.AverageScore = sum / float64(len(ranked))
	return summary
}

// FormatSummary writes the scoring summary with a grade distribution
// bar chart.
func FormatSummary(summary Summary, w io.Writer) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintln(w, "SCORING SUMMARY")
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(w, "Total Suppliers: %d\n", summary.TotalSuppliers)

	if summary.TotalSuppliers == 0 {
		return
	}

	fmt.Fprintf(w, "Average Score: %.1f/100\n", summary.AverageScore)
	fmt.Fprintf(w, "Score Range: %.1f - %.1f\n", summary.MinScore, summary.MaxScore)
	fmt.Fprintln(w, "\nGrade Distribution:")
	for _, grade := range gradeOrder {
		count := summary.GradeDistribution[grade]
		pct := float64(count) / float64(summary.TotalSuppliers) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Fprintf(w, "  %-3s: %-50s %d (%.1f%%)\n", grade, bar, count, pct)
	}
}

// RankingsFile is the on-disk representation of a scoring run. The
// sourcing team exports rankings to share outside the database.
type RankingsFile struct {
	MaterialFilter string           `yaml:"material_filter,omitempty"`
	GeneratedAt    time.Time        `yaml:"generated_at"`
	Summary        Summary          `yaml:"summary"`
	Suppliers      []RankedSupplier `yaml:"suppliers"`
}

// WriteRankingsFile saves the ranked suppliers and their summary to a
// YAML file.
func WriteRankingsFile(path, materialFilter string, ranked []RankedSupplier) error {
	rf := RankingsFile{
		MaterialFilter: materialFilter,
		GeneratedAt:    time.Now(),
		Summary:        Summarize(ranked),
		Suppliers:      ranked,
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling rankings file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
