// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

// Package store persists queue items, supplier records, and audit history
// in a local SQLite database.
// Implements: prd004-supplier-store (R1-R4);
//
//	docs/ARCHITECTURE.md § Supplier Store.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fluxgen/sourcing-engine/pkg/types"
)

const defaultDBPath = "data/fluxgen.db"

// Store manages the sourcing SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the SQLite database at cfg.DBPath and
// creates the schema if it does not exist (R1.1).
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createSchema creates the sourcing tables. Supplier uniqueness is a
// lookup-then-insert protocol (R1.3), not a constraint, so the
// suppliers table deliberately carries no UNIQUE index on company_name
// or website. The pipeline assumes a single writer.
func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS research_queue (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			item_name TEXT NOT NULL,
			item_type TEXT NOT NULL,
			item_category TEXT DEFAULT '',
			priority INTEGER DEFAULT 0,
			estimated_cost REAL DEFAULT 0,
			target_suppliers INTEGER DEFAULT 3,
			num_suppliers_found INTEGER DEFAULT 0,
			status TEXT DEFAULT 'pending',
			last_researched TEXT,
			next_research_date TEXT,
			research_frequency_days INTEGER DEFAULT 30,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_name TEXT NOT NULL,
			contact_person TEXT DEFAULT '',
			phone TEXT DEFAULT '',
			email TEXT DEFAULT '',
			website TEXT DEFAULT '',
			city TEXT DEFAULT '',
			province_state TEXT DEFAULT '',
			country TEXT DEFAULT 'Unknown',
			postal_code TEXT DEFAULT '',
			materials_supplied TEXT DEFAULT '',
			supplier_type TEXT DEFAULT '',
			priority TEXT DEFAULT '',
			status TEXT DEFAULT '',
			notes TEXT DEFAULT '',
			source_url TEXT DEFAULT '',
			search_rank INTEGER DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suppliers_company ON suppliers(company_name)`,
		`CREATE INDEX IF NOT EXISTS idx_suppliers_website ON suppliers(website)`,
		`CREATE TABLE IF NOT EXISTS supplier_certifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			supplier_id INTEGER NOT NULL REFERENCES suppliers(id),
			cert_name TEXT NOT NULL,
			issued_by TEXT DEFAULT '',
			valid_until TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS supplier_pricing_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			supplier_id INTEGER NOT NULL REFERENCES suppliers(id),
			item_name TEXT DEFAULT '',
			unit_price REAL DEFAULT 0,
			currency TEXT DEFAULT 'CAD',
			quoted_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS search_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			queue_item_id INTEGER,
			item_name TEXT DEFAULT '',
			search_query TEXT NOT NULL,
			search_date TEXT DEFAULT (date('now')),
			num_results INTEGER DEFAULT 0,
			search_engine TEXT DEFAULT '',
			notes TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS score_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			supplier_id INTEGER NOT NULL REFERENCES suppliers(id),
			total_score REAL NOT NULL,
			grade TEXT NOT NULL,
			scored_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}
