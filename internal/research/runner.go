// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

// Package research orchestrates the discovery pipeline: due queue items
// are searched, extracted, persisted, and rescheduled.
// Implements: prd001-research-queue (R2, R3);
//
//	docs/ARCHITECTURE.md § Research Runner.
package research

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fluxgen/sourcing-engine/internal/extract"
	"github.com/fluxgen/sourcing-engine/internal/search"
	"github.com/fluxgen/sourcing-engine/internal/store"
	"github.com/fluxgen/sourcing-engine/pkg/types"
)

const defaultMaxSuppliers = 5

// Runner wires the pipeline stages together for batch discovery runs.
// Processing is strictly sequential: one outbound search at a time,
// one item after another. Concurrent invocation against the same store
// is unsupported (see docs/ARCHITECTURE.md § Concurrency).
type Runner struct {
	Store     *store.Store
	Backend   search.Backend
	Extractor extract.Extractor

	// MaxSuppliersPerItem caps results fetched and processed per item.
	// Zero uses the default (5).
	MaxSuppliersPerItem int
}

// BatchSummary holds counts from one batch run (R3.6).
type BatchSummary struct {
	ItemsProcessed int
	ItemsFailed    int
	SuppliersSaved int
}

// RunItem executes the full discovery workflow for one queue item and
// returns the number of newly saved suppliers. Extraction rejections
// and duplicate hits reduce the count without failing the item; the
// queue transition and the search-history row are written even when
// zero suppliers were saved (R3.1-R3.4).
func (r *Runner) RunItem(ctx context.Context, item types.QueueItem, w io.Writer) (int, error) {
	maxSuppliers := r.MaxSuppliersPerItem
	if maxSuppliers <= 0 {
		maxSuppliers = defaultMaxSuppliers
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(w, "SEARCHING: %s (%s)\n", item.ItemName, item.ItemType)
	fmt.Fprintf(w, "   priority %d | found %d/%d suppliers\n",
		item.Priority, item.NumSuppliersFound, item.TargetSuppliers)

	query := search.BuildQuery(item)
	fmt.Fprintf(w, "   query: %s\n", query)

	results, _ := search.Search(ctx, r.Backend, query, maxSuppliers, w)

	suppliersSaved := 0
	for i, result := range results {
		candidate := r.Extractor.Extract(result)
		if candidate == nil {
			continue
		}

		candidate.MaterialsSupplied = item.ItemName
		candidate.SearchRank = i + 1

		id, created, err := r.Store.SaveSupplier(ctx, *candidate)
		if err != nil {
			fmt.Fprintf(w, "   ✗ error saving supplier %s: %v\n", candidate.CompanyName, err)
			continue
		}
		if created {
			fmt.Fprintf(w, "   ✓ saved supplier: %s (id %d)\n", candidate.CompanyName, id)
			suppliersSaved++
		} else {
			fmt.Fprintf(w, "   ⚠ supplier already exists: %s (id %d)\n", candidate.CompanyName, id)
		}
	}

	entry := types.SearchHistoryEntry{
		QueueItemID:  item.ID,
		ItemName:     item.ItemName,
		SearchQuery:  query,
		NumResults:   len(results),
		SearchEngine: r.Backend.Name(),
		Notes:        fmt.Sprintf("Saved %d new suppliers", suppliersSaved),
	}
	if err := r.Store.LogSearch(ctx, entry); err != nil {
		return suppliersSaved, fmt.Errorf("logging search for %s: %w", item.ItemName, err)
	}

	if err := r.Store.RecordRunResult(ctx, item.ID, suppliersSaved); err != nil {
		return suppliersSaved, fmt.Errorf("updating queue for %s: %w", item.ItemName, err)
	}

	fmt.Fprintf(w, "   ✓ completed: %d results, %d new suppliers\n", len(results), suppliersSaved)
	return suppliersSaved, nil
}

// RunBatch processes up to limit due items sequentially. A failing item
// is logged and skipped; it stays pending and is retried on a later
// run. The batch always completes and prints a final tally (R3.5, R3.6).
func (r *Runner) RunBatch(ctx context.Context, limit int, w io.Writer) (BatchSummary, error) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("#", 70))
	fmt.Fprintf(w, "# FluxGen supplier search — %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "%s\n", strings.Repeat("#", 70))

	items, err := r.Store.DueItems(ctx, limit)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("selecting due items: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "✓ no pending items in research queue")
		return BatchSummary{}, nil
	}

	fmt.Fprintf(w, "%d item(s) to research\n", len(items))

	var summary BatchSummary
	for _, item := range items {
		saved, err := r.RunItem(ctx, item, w)
		summary.SuppliersSaved += saved
		if err != nil {
			fmt.Fprintf(w, "✗ ERROR processing %s: %v\n", item.ItemName, err)
			summary.ItemsFailed++
			continue
		}
		summary.ItemsProcessed++
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("#", 70))
	fmt.Fprintf(w, "# BATCH COMPLETE: %d item(s) processed, %d new supplier(s)\n",
		summary.ItemsProcessed, summary.SuppliersSaved)
	if summary.ItemsFailed > 0 {
		fmt.Fprintf(w, "# %d item(s) failed and remain pending\n", summary.ItemsFailed)
	}
	fmt.Fprintf(w, "%s\n", strings.Repeat("#", 70))

	return summary, nil
}

// DryRun lists the due items and their queries without executing any
// search (R2.5).
func (r *Runner) DryRun(ctx context.Context, limit int, w io.Writer) error {
	items, err := r.Store.DueItems(ctx, limit)
	if err != nil {
		return fmt.Errorf("selecting due items: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "No pending items in research queue.")
		return nil
	}

	fmt.Fprintln(w, "DRY RUN — pending items:")
	for i, item := range items {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, item.ItemName, item.ItemType)
		fmt.Fprintf(w, "   query: %s\n", search.BuildQuery(item))
		fmt.Fprintf(w, "   priority %d | found %d/%d\n\n",
			item.Priority, item.NumSuppliersFound, item.TargetSuppliers)
	}
	return nil
}
