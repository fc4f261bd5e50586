// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fluxgen/sourcing-engine/internal/scoring"
	"github.com/fluxgen/sourcing-engine/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank persisted suppliers",
	Long: `Score computes a weighted multi-factor quality score (0-100) and a
letter grade for each supplier in the database, then prints them ranked
best-first.

Use --supplier-id for one supplier's full score card, --summary for
aggregate statistics, --save to persist scores to the score history,
and --export to write the rankings to a YAML file. The factor weights
are configurable under scoring.weights in the config file.`,
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	material, _ := cmd.Flags().GetString("material")
	supplierID, _ := cmd.Flags().GetInt64("supplier-id")
	summary, _ := cmd.Flags().GetBool("summary")
	save, _ := cmd.Flags().GetBool("save")
	export, _ := cmd.Flags().GetString("export")
	topN, _ := cmd.Flags().GetInt("top")

	st, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	scorer := scoring.NewScorer(scoringWeights())
	ctx := context.Background()

	if supplierID > 0 {
		return scoreOne(ctx, st, scorer, supplierID, save)
	}

	ranked, err := scorer.ScoreAll(ctx, st, material)
	if err != nil {
		return err
	}

	if summary {
		scoring.FormatSummary(scoring.Summarize(ranked), os.Stdout)
	} else {
		scoring.FormatRanked(ranked, topN, material, os.Stdout)
	}

	if save {
		for _, r := range ranked {
			if err := st.SaveScore(ctx, r.Supplier.ID, r.Breakdown); err != nil {
				return fmt.Errorf("saving score for supplier %d: %w", r.Supplier.ID, err)
			}
		}
		fmt.Printf("✓ saved %d score(s) to history\n", len(ranked))
	}

	if export != "" {
		if err := scoring.WriteRankingsFile(export, material, ranked); err != nil {
			return err
		}
		fmt.Printf("✓ exported rankings to %s\n", export)
	}

	return nil
}

// scoreOne prints the full score card for a single supplier.
func scoreOne(ctx context.Context, st *store.Store, scorer *scoring.Scorer, id int64, save bool) error {
	sup, err := st.SupplierByID(ctx, id)
	if err != nil {
		return err
	}

	certCount, err := st.CertificationCount(ctx, sup.ID)
	if err != nil {
		return err
	}
	pricingCount, err := st.PricingCount(ctx, sup.ID)
	if err != nil {
		return err
	}

	breakdown := scorer.Score(sup, certCount, pricingCount)
	scoring.FormatScorecard(scoring.RankedSupplier{Supplier: sup, Breakdown: breakdown}, scorer.Weights(), os.Stdout)

	if save {
		if err := st.SaveScore(ctx, sup.ID, breakdown); err != nil {
			return err
		}
		fmt.Println("\n✓ score saved to history")
	}
	return nil
}

// scoringWeights reads the weight table from config, falling back to
// the defaults for unset factors. A zero weight disables its factor.
func scoringWeights() scoring.Weights {
	w := scoring.DefaultWeights()
	if viper.IsSet("scoring.weights") {
		if err := viper.UnmarshalKey("scoring.weights", &w); err != nil {
			fmt.Fprintf(os.Stderr, "warning: invalid scoring.weights config, using defaults: %v\n", err)
			return scoring.DefaultWeights()
		}
	}
	return w
}

func init() {
	scoreCmd.Flags().String("material", "", "filter by materials supplied (substring match)")
	scoreCmd.Flags().Int64("supplier-id", 0, "score a single supplier and print its score card")
	scoreCmd.Flags().Bool("summary", false, "print aggregate statistics instead of the ranked list")
	scoreCmd.Flags().Bool("save", false, "persist computed scores to the score history")
	scoreCmd.Flags().String("export", "", "write rankings to a YAML file at this path")
	scoreCmd.Flags().Int("top", 0, "limit the ranked list to the top N suppliers")

	rootCmd.AddCommand(scoreCmd)
}
