// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fluxgen/sourcing-engine/pkg/types"
)

const dateFmt = "2006-01-02"

const queueColumns = `id, item_name, item_type, item_category, priority,
	estimated_cost, target_suppliers, num_suppliers_found, status,
	last_researched, next_research_date, research_frequency_days`

// DueItems returns up to limit queue items that need researching:
// pending, due today or never researched, and still under their
// supplier target. Ordered by priority then estimated cost, both
// descending (prd001-research-queue R2.1-R2.3).
func (s *Store) DueItems(ctx context.Context, limit int) ([]types.QueueItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+queueColumns+`
		FROM research_queue
		WHERE status = 'pending'
		  AND (next_research_date IS NULL OR next_research_date <= date('now'))
		  AND num_suppliers_found < target_suppliers
		ORDER BY priority DESC, estimated_cost DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying due items: %w", err)
	}
	defer rows.Close()

	return scanQueueItems(rows)
}

// ListQueue returns all queue items, optionally filtered by status.
func (s *Store) ListQueue(ctx context.Context, status types.QueueStatus) ([]types.QueueItem, error) {
	query := `SELECT ` + queueColumns + ` FROM research_queue`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY priority DESC, estimated_cost DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying queue: %w", err)
	}
	defer rows.Close()

	return scanQueueItems(rows)
}

// QueueItemByID returns one queue item, or sql.ErrNoRows wrapped.
func (s *Store) QueueItemByID(ctx context.Context, id int64) (types.QueueItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+queueColumns+` FROM research_queue WHERE id = ?`, id)

	item, err := scanQueueItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.QueueItem{}, fmt.Errorf("queue item %d not found", id)
		}
		return types.QueueItem{}, fmt.Errorf("querying queue item: %w", err)
	}
	return item, nil
}

// AddQueueItem inserts a new sourcing need and returns its identity.
// New items start pending with no research history, making them
// immediately due.
func (s *Store) AddQueueItem(ctx context.Context, item types.QueueItem) (int64, error) {
	freq := item.ResearchFrequencyDays
	if freq <= 0 {
		freq = 30
	}
	target := item.TargetSuppliers
	if target <= 0 {
		target = 3
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO research_queue
			(item_name, item_type, item_category, priority, estimated_cost,
			 target_suppliers, research_frequency_days)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ItemName, string(item.ItemType), item.ItemCategory,
		item.Priority, item.EstimatedCost, target, freq)
	if err != nil {
		return 0, fmt.Errorf("inserting queue item: %w", err)
	}
	return res.LastInsertId()
}

// RecordRunResult applies the post-run queue transition for one item:
// the found counter is incremented by suppliersSaved, status flips to
// completed when the new total meets the target, and the item is
// rescheduled research_frequency_days out. One UPDATE statement, so
// the transition is atomic with respect to this process
// (prd001-research-queue R3.3, R3.4).
func (s *Store) RecordRunResult(ctx context.Context, itemID int64, suppliersSaved int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE research_queue
		SET
			status = CASE
				WHEN num_suppliers_found + ? >= target_suppliers THEN 'completed'
				ELSE 'pending'
			END,
			num_suppliers_found = num_suppliers_found + ?,
			last_researched = date('now'),
			next_research_date = date('now', '+' || research_frequency_days || ' days'),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		suppliersSaved, suppliersSaved, itemID)
	if err != nil {
		return fmt.Errorf("updating queue item %d: %w", itemID, err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQueueItem(row rowScanner) (types.QueueItem, error) {
	var (
		item           types.QueueItem
		itemType       string
		status         string
		lastResearched sql.NullString
		nextResearch   sql.NullString
	)

	err := row.Scan(
		&item.ID, &item.ItemName, &itemType, &item.ItemCategory,
		&item.Priority, &item.EstimatedCost, &item.TargetSuppliers,
		&item.NumSuppliersFound, &status,
		&lastResearched, &nextResearch, &item.ResearchFrequencyDays,
	)
	if err != nil {
		return types.QueueItem{}, err
	}

	item.ItemType = types.ItemType(itemType)
	item.Status = types.QueueStatus(status)
	item.LastResearched = parseDate(lastResearched)
	item.NextResearchDate = parseDate(nextResearch)
	return item, nil
}

func scanQueueItems(rows *sql.Rows) ([]types.QueueItem, error) {
	var items []types.QueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning queue row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// parseDate converts a nullable YYYY-MM-DD column to a time pointer.
// Unparseable values are treated as absent.
func parseDate(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(dateFmt, ns.String)
	if err != nil {
		return nil
	}
	return &t
}
