// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

// Package types defines shared data structures for the sourcing-engine pipeline.
// Implements: prd001-research-queue (QueueItem, R1.1-R1.4);
//
//	prd002-search (RawSearchResult);
//	prd003-extraction (SupplierCandidate, R2.1-R2.6);
//	prd004-supplier-store (SupplierRecord, SearchHistoryEntry);
//	prd005-scoring (ScoreBreakdown).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

import "time"

// ItemType classifies a sourcing need as equipment or a raw material.
// Per prd001-research-queue R1.2.
type ItemType string

const (
	ItemEquipment ItemType = "equipment"
	ItemMaterial  ItemType = "material"
)

// QueueStatus is the lifecycle state of a research queue item.
type QueueStatus string

const (
	StatusPending   QueueStatus = "pending"
	StatusCompleted QueueStatus = "completed"
)

// QueueItem is one sourcing need tracked for supplier discovery.
// Status is completed exactly when NumSuppliersFound has reached
// TargetSuppliers; the transition is applied by the research runner
// after each discovery pass (prd001-research-queue R1.4, R3.3).
type QueueItem struct {
	// ID is the synthetic row identity assigned by the store.
	ID int64 `json:"id" yaml:"id"`

	// ItemName is the equipment or material being sourced.
	ItemName string `json:"item_name" yaml:"item_name"`

	// ItemType is equipment or material; it selects the query template.
	ItemType ItemType `json:"item_type" yaml:"item_type"`

	// ItemCategory is a free-text grouping (e.g. "welding consumables").
	ItemCategory string `json:"item_category" yaml:"item_category"`

	// Priority orders due items; higher is researched first.
	Priority int `json:"priority" yaml:"priority"`

	// EstimatedCost breaks priority ties; higher-cost items first.
	EstimatedCost float64 `json:"estimated_cost" yaml:"estimated_cost"`

	// TargetSuppliers is the goal count of suppliers to discover.
	TargetSuppliers int `json:"target_suppliers" yaml:"target_suppliers"`

	// NumSuppliersFound counts suppliers saved so far; monotonically
	// non-decreasing.
	NumSuppliersFound int `json:"num_suppliers_found" yaml:"num_suppliers_found"`

	// Status is pending or completed.
	Status QueueStatus `json:"status" yaml:"status"`

	// LastResearched is the date of the most recent discovery pass.
	LastResearched *time.Time `json:"last_researched" yaml:"last_researched"`

	// NextResearchDate is the earliest date for the next pass. Nil means
	// the item has never been researched and is immediately due.
	NextResearchDate *time.Time `json:"next_research_date" yaml:"next_research_date"`

	// ResearchFrequencyDays is the rescheduling interval after each pass.
	ResearchFrequencyDays int `json:"research_frequency_days" yaml:"research_frequency_days"`
}
