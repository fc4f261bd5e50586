// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package research

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fluxgen/sourcing-engine/internal/extract"
	"github.com/fluxgen/sourcing-engine/internal/store"
	"github.com/fluxgen/sourcing-engine/pkg/types"
)

// --- test helpers ---

// fakeBackend returns one canned response per call, in order. Calls
// beyond the scripted responses return an error.
type fakeBackend struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Search(ctx context.Context, query string, maxResults int) (string, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		return "", errors.New("unscripted call")
	}
	if f.errs != nil && f.errs[i] != nil {
		return "", f.errs[i]
	}
	return f.responses[i], nil
}

func testRunner(t *testing.T, backend *fakeBackend) (*Runner, *store.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "sourcing.db")

	st, err := store.NewStore(types.StoreConfig{DBPath: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	return &Runner{
		Store:     st,
		Backend:   backend,
		Extractor: extract.Heuristic{},
	}, st
}

func addItem(t *testing.T, st *store.Store, name string, target int) int64 {
	t.Helper()
	id, err := st.AddQueueItem(context.Background(), types.QueueItem{
		ItemName:        name,
		ItemType:        types.ItemMaterial,
		TargetSuppliers: target,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func resultsJSON(names ...string) string {
	var entries []string
	for _, name := range names {
		entries = append(entries, fmt.Sprintf(
			`{"title": "%s - Suppliers", "url": "https://%s.example.com", "snippet": "Industrial supplier in Alberta, Canada", "domain": "%s.example.com"}`,
			name, strings.ToLower(strings.ReplaceAll(name, " ", "")), strings.ToLower(strings.ReplaceAll(name, " ", ""))))
	}
	return "[" + strings.Join(entries, ",") + "]"
}

// --- single item tests ---

func TestRunItemSavesSuppliers(t *testing.T) {
	backend := &fakeBackend{responses: []string{resultsJSON("Acme Welding", "Northern Steel")}}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	itemID := addItem(t, st, "flux cored wire", 3)
	item, err := st.QueueItemByID(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	saved, err := runner.RunItem(ctx, item, &buf)
	if err != nil {
		t.Fatalf("RunItem: %v", err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}

	suppliers, err := st.Suppliers(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(suppliers) != 2 {
		t.Fatalf("got %d suppliers, want 2", len(suppliers))
	}

	// The runner fills in the queue-derived fields.
	for i, sup := range suppliers {
		if sup.MaterialsSupplied != "flux cored wire" {
			t.Errorf("MaterialsSupplied = %q", sup.MaterialsSupplied)
		}
		if sup.SearchRank != i+1 {
			t.Errorf("SearchRank = %d, want %d", sup.SearchRank, i+1)
		}
	}
}

func TestRunItemUpdatesQueue(t *testing.T) {
	backend := &fakeBackend{responses: []string{resultsJSON("Acme Welding", "Northern Steel")}}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	itemID := addItem(t, st, "flux cored wire", 2)
	item, _ := st.QueueItemByID(ctx, itemID)

	var buf strings.Builder
	if _, err := runner.RunItem(ctx, item, &buf); err != nil {
		t.Fatal(err)
	}

	updated, err := st.QueueItemByID(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.NumSuppliersFound != 2 {
		t.Errorf("NumSuppliersFound = %d, want 2", updated.NumSuppliersFound)
	}
	if updated.Status != types.StatusCompleted {
		t.Errorf("Status = %q, want completed (target met)", updated.Status)
	}
	if updated.NextResearchDate == nil {
		t.Error("item not rescheduled")
	}
}

func TestRunItemLogsSearchHistory(t *testing.T) {
	backend := &fakeBackend{responses: []string{resultsJSON("Acme Welding")}}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	itemID := addItem(t, st, "flux cored wire", 3)
	item, _ := st.QueueItemByID(ctx, itemID)

	var buf strings.Builder
	if _, err := runner.RunItem(ctx, item, &buf); err != nil {
		t.Fatal(err)
	}

	entries, err := st.SearchHistory(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d history entries, want 1", len(entries))
	}

	e := entries[0]
	if e.SearchEngine != "fake" {
		t.Errorf("SearchEngine = %q, want fake", e.SearchEngine)
	}
	if e.NumResults != 1 {
		t.Errorf("NumResults = %d, want 1", e.NumResults)
	}
	if e.Notes != "Saved 1 new suppliers" {
		t.Errorf("Notes = %q", e.Notes)
	}
	if !strings.Contains(e.SearchQuery, "flux cored wire") {
		t.Errorf("SearchQuery = %q", e.SearchQuery)
	}
}

func TestRunItemSearchFailureStillReschedules(t *testing.T) {
	backend := &fakeBackend{
		responses: []string{""},
		errs:      []error{errors.New("api down")},
	}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	itemID := addItem(t, st, "flux cored wire", 3)
	item, _ := st.QueueItemByID(ctx, itemID)

	var buf strings.Builder
	saved, err := runner.RunItem(ctx, item, &buf)
	if err != nil {
		t.Fatalf("a search failure must not fail the item: %v", err)
	}
	if saved != 0 {
		t.Errorf("saved = %d, want 0", saved)
	}

	// Queue transition and audit row are written regardless.
	updated, _ := st.QueueItemByID(ctx, itemID)
	if updated.NextResearchDate == nil {
		t.Error("item not rescheduled after a failed search")
	}
	entries, _ := st.SearchHistory(ctx, itemID)
	if len(entries) != 1 {
		t.Errorf("got %d history entries, want 1", len(entries))
	}
	if !strings.Contains(buf.String(), "search error") {
		t.Errorf("output should report the search error: %s", buf.String())
	}
}

func TestRunItemSkipsDuplicates(t *testing.T) {
	// Both items return the same supplier.
	backend := &fakeBackend{responses: []string{
		resultsJSON("Acme Welding"),
		resultsJSON("Acme Welding"),
	}}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	var buf strings.Builder
	for _, name := range []string{"flux cored wire", "grinding discs"} {
		itemID := addItem(t, st, name, 3)
		item, _ := st.QueueItemByID(ctx, itemID)
		if _, err := runner.RunItem(ctx, item, &buf); err != nil {
			t.Fatal(err)
		}
	}

	suppliers, err := st.Suppliers(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(suppliers) != 1 {
		t.Errorf("got %d suppliers, want 1 (duplicate skipped)", len(suppliers))
	}
	if !strings.Contains(buf.String(), "already exists") {
		t.Errorf("output should note the duplicate: %s", buf.String())
	}
}

func TestRunItemRejectedResultsAreSkipped(t *testing.T) {
	// Generic titles are rejected by extraction.
	backend := &fakeBackend{responses: []string{
		`[{"title": "Home", "url": "https://a.example.com", "snippet": "", "domain": "a.example.com"},
		  {"title": "Real Supplier Co", "url": "https://real.example.com", "snippet": "", "domain": "real.example.com"}]`,
	}}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	itemID := addItem(t, st, "steel plate", 3)
	item, _ := st.QueueItemByID(ctx, itemID)

	var buf strings.Builder
	saved, err := runner.RunItem(ctx, item, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if saved != 1 {
		t.Errorf("saved = %d, want 1 (generic title rejected)", saved)
	}

	// The rejected result still occupies rank 1; the saved supplier
	// keeps its original position.
	suppliers, _ := st.Suppliers(ctx, "")
	if len(suppliers) != 1 || suppliers[0].SearchRank != 2 {
		t.Errorf("suppliers = %+v, want one record at rank 2", suppliers)
	}
}

func TestRunItemCapsResults(t *testing.T) {
	backend := &fakeBackend{responses: []string{
		resultsJSON("One Co", "Two Co", "Three Co"),
	}}
	runner, st := testRunner(t, backend)
	runner.MaxSuppliersPerItem = 2
	ctx := context.Background()

	itemID := addItem(t, st, "steel plate", 10)
	item, _ := st.QueueItemByID(ctx, itemID)

	var buf strings.Builder
	saved, err := runner.RunItem(ctx, item, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2 (capped)", saved)
	}
}

// --- batch tests ---

func TestRunBatch(t *testing.T) {
	backend := &fakeBackend{responses: []string{
		resultsJSON("Acme Welding"),
		resultsJSON("Northern Steel"),
		resultsJSON("Prairie Fasteners"),
	}}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	for _, name := range []string{"wire", "plate", "discs"} {
		addItem(t, st, name, 3)
	}

	var buf strings.Builder
	summary, err := runner.RunBatch(ctx, 10, &buf)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	if summary.ItemsProcessed != 3 {
		t.Errorf("ItemsProcessed = %d, want 3", summary.ItemsProcessed)
	}
	if summary.ItemsFailed != 0 {
		t.Errorf("ItemsFailed = %d, want 0", summary.ItemsFailed)
	}
	if summary.SuppliersSaved != 3 {
		t.Errorf("SuppliersSaved = %d, want 3", summary.SuppliersSaved)
	}
	if !strings.Contains(buf.String(), "BATCH COMPLETE") {
		t.Error("missing batch completion banner")
	}
}

func TestRunBatchContinuesPastFailures(t *testing.T) {
	// The middle item's search fails; the batch still completes.
	backend := &fakeBackend{
		responses: []string{resultsJSON("Acme Welding"), "", resultsJSON("Prairie Fasteners")},
		errs:      []error{nil, errors.New("api down"), nil},
	}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	// Descending priority fixes the processing order.
	for i, name := range []string{"wire", "plate", "discs"} {
		if _, err := st.AddQueueItem(ctx, types.QueueItem{
			ItemName: name, ItemType: types.ItemMaterial,
			Priority: 10 - i, TargetSuppliers: 3,
		}); err != nil {
			t.Fatal(err)
		}
	}

	var buf strings.Builder
	summary, err := runner.RunBatch(ctx, 10, &buf)
	if err != nil {
		t.Fatal(err)
	}

	// A failed search is not an item failure; the item is rescheduled
	// with zero suppliers and the batch counts it as processed.
	if summary.ItemsProcessed != 3 {
		t.Errorf("ItemsProcessed = %d, want 3", summary.ItemsProcessed)
	}
	if summary.SuppliersSaved != 2 {
		t.Errorf("SuppliersSaved = %d, want 2", summary.SuppliersSaved)
	}
}

func TestRunBatchLimit(t *testing.T) {
	backend := &fakeBackend{responses: []string{
		resultsJSON("Acme Welding"),
		resultsJSON("Northern Steel"),
	}}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	for _, name := range []string{"wire", "plate", "discs"} {
		addItem(t, st, name, 3)
	}

	var buf strings.Builder
	summary, err := runner.RunBatch(ctx, 2, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.ItemsProcessed != 2 {
		t.Errorf("ItemsProcessed = %d, want 2 (batch limit)", summary.ItemsProcessed)
	}
}

func TestRunBatchEmptyQueue(t *testing.T) {
	runner, _ := testRunner(t, &fakeBackend{})
	var buf strings.Builder

	summary, err := runner.RunBatch(context.Background(), 5, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.ItemsProcessed != 0 {
		t.Errorf("ItemsProcessed = %d, want 0", summary.ItemsProcessed)
	}
	if !strings.Contains(buf.String(), "no pending items") {
		t.Errorf("missing empty-queue notice: %s", buf.String())
	}
}

// --- dry run tests ---

func TestDryRun(t *testing.T) {
	backend := &fakeBackend{}
	runner, st := testRunner(t, backend)
	ctx := context.Background()

	addItem(t, st, "flux cored wire", 3)

	var buf strings.Builder
	if err := runner.DryRun(ctx, 5, &buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "DRY RUN") {
		t.Error("missing dry-run banner")
	}
	if !strings.Contains(out, "flux cored wire bulk suppliers distributor industrial grade") {
		t.Errorf("missing the built query: %s", out)
	}
	if backend.calls != 0 {
		t.Errorf("dry run performed %d searches, want 0", backend.calls)
	}

	// Nothing is persisted.
	suppliers, _ := st.Suppliers(ctx, "")
	if len(suppliers) != 0 {
		t.Error("dry run saved suppliers")
	}
	item, _ := st.QueueItemByID(ctx, 1)
	if item.NextResearchDate != nil {
		t.Error("dry run rescheduled the item")
	}
}

func TestDryRunEmptyQueue(t *testing.T) {
	runner, _ := testRunner(t, &fakeBackend{})
	var buf strings.Builder

	if err := runner.DryRun(context.Background(), 5, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No pending items") {
		t.Errorf("missing empty notice: %s", buf.String())
	}
}
