// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"

	"github.com/fluxgen/sourcing-engine/pkg/types"
)

// LogSearch appends one audit row for a discovery pass. Search history
// is write-once; nothing in the pipeline updates or deletes it
// (prd004-supplier-store R3.1).
func (s *Store) LogSearch(ctx context.Context, entry types.SearchHistoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_history
			(queue_item_id, item_name, search_query, search_date,
			 num_results, search_engine, notes)
		VALUES (?, ?, ?, date('now'), ?, ?, ?)`,
		entry.QueueItemID, entry.ItemName, entry.SearchQuery,
		entry.NumResults, entry.SearchEngine, entry.Notes)
	if err != nil {
		return fmt.Errorf("logging search: %w", err)
	}
	return nil
}

// SearchHistory returns the audit rows for one queue item, most recent
// first.
func (s *Store) SearchHistory(ctx context.Context, queueItemID int64) ([]types.SearchHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, queue_item_id, item_name, search_query, search_date,
			num_results, search_engine, notes
		FROM search_history
		WHERE queue_item_id = ?
		ORDER BY id DESC`, queueItemID)
	if err != nil {
		return nil, fmt.Errorf("querying search history: %w", err)
	}
	defer rows.Close()

	var entries []types.SearchHistoryEntry
	for rows.Next() {
		var e types.SearchHistoryEntry
		if err := rows.Scan(
			&e.ID, &e.QueueItemID, &e.ItemName, &e.SearchQuery, &e.SearchDate,
			&e.NumResults, &e.SearchEngine, &e.Notes,
		); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveScore records a scoring result for a supplier (prd005-scoring R4.3).
func (s *Store) SaveScore(ctx context.Context, supplierID int64, breakdown types.ScoreBreakdown) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO score_history (supplier_id, total_score, grade)
		VALUES (?, ?, ?)`,
		supplierID, breakdown.TotalScore, breakdown.Grade)
	if err != nil {
		return fmt.Errorf("saving score: %w", err)
	}
	return nil
}
