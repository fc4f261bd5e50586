// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fluxgen/sourcing-engine/internal/extract"
	"github.com/fluxgen/sourcing-engine/internal/research"
	"github.com/fluxgen/sourcing-engine/internal/search"
	"github.com/fluxgen/sourcing-engine/internal/store"
	"github.com/fluxgen/sourcing-engine/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Run a batch of supplier discovery searches",
	Long: `Research selects due items from the research queue (highest priority
and cost first), runs one web search per item, extracts supplier
candidates from the results, saves the new ones, and reschedules each
item. A failing item is logged and skipped; the batch always completes.

Use --dry-run to preview the due items and their queries without
searching.`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	maxSuppliers, _ := cmd.Flags().GetInt("max-suppliers")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	rcfg := types.ResearchConfig{
		BatchSize:           viper.GetInt("research.batch_size"),
		MaxSuppliersPerItem: viper.GetInt("research.max_suppliers_per_item"),
	}
	if batchSize <= 0 {
		batchSize = rcfg.BatchSize
		if batchSize <= 0 {
			batchSize = 5
		}
	}
	if maxSuppliers <= 0 {
		maxSuppliers = rcfg.MaxSuppliersPerItem
	}

	st, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	runner := &research.Runner{
		Store:               st,
		Extractor:           extract.Heuristic{},
		MaxSuppliersPerItem: maxSuppliers,
	}

	ctx := context.Background()

	if dryRun {
		return runner.DryRun(ctx, batchSize, os.Stdout)
	}

	cfg, err := searchConfig()
	if err != nil {
		return err
	}
	runner.Backend = newBackend(cfg)

	_, err = runner.RunBatch(ctx, batchSize, os.Stdout)
	return err
}

// newBackend builds the configured search backend.
func newBackend(cfg types.SearchConfig) search.Backend {
	if cfg.Provider == types.ProviderOpenAI {
		return search.NewOpenAIBackend(cfg.APIKey, cfg.Model)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &search.ClaudeBackend{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		Client:     &http.Client{Timeout: timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}
}

func init() {
	researchCmd.Flags().Int("batch-size", 0, "number of queue items to process (default 5)")
	researchCmd.Flags().Int("max-suppliers", 0, "maximum search results per item (default 5)")
	researchCmd.Flags().Bool("dry-run", false, "preview due items and queries without searching")

	rootCmd.AddCommand(researchCmd)
}

// itemLabel formats a queue item for log lines shared by subcommands.
func itemLabel(item types.QueueItem) string {
	return fmt.Sprintf("%s (%s)", item.ItemName, item.ItemType)
}
