// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package types

// RawSearchResult is one candidate web page returned by a search backend.
// It is ephemeral: produced by the search adapter, consumed immediately
// by the extraction engine, never persisted. Per prd002-search R3.1.
type RawSearchResult struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Snippet string `json:"snippet" yaml:"snippet"`
	Domain  string `json:"domain" yaml:"domain"`
}

// SupplierType classifies a supplier by inferred proximity.
// Per prd003-extraction R2.4: USA or Canada map to Local, an unknown
// country maps to Distributor, any other resolved country to Import.
type SupplierType string

const (
	SupplierLocal       SupplierType = "Local"
	SupplierImport      SupplierType = "Import"
	SupplierDistributor SupplierType = "Distributor"
)

// SupplierCandidate is the structured output of extracting one raw
// search result. It is unpersisted until the store's dedup check
// accepts it. Per prd003-extraction R2.
//
// PostalCode and ContactPerson are carried for schema parity with the
// supplier table but are never populated by extraction.
type SupplierCandidate struct {
	// CompanyName is the title text before the first -, – or |
	// separator. Extraction rejects names shorter than 3 characters or
	// matching the generic-page blocklist (R2.1).
	CompanyName string `json:"company_name" yaml:"company_name"`

	// Website is the result URL.
	Website string `json:"website" yaml:"website"`

	City          string `json:"city" yaml:"city"`
	ProvinceState string `json:"province_state" yaml:"province_state"`

	// Country is inferred from the snippet gazetteer scan; "Unknown"
	// when nothing matches (R2.3).
	Country string `json:"country" yaml:"country"`

	PostalCode    string `json:"postal_code" yaml:"postal_code"`
	ContactPerson string `json:"contact_person" yaml:"contact_person"`
	Phone         string `json:"phone" yaml:"phone"`
	Email         string `json:"email" yaml:"email"`

	// MaterialsSupplied is set by the research runner to the queue
	// item's name before saving.
	MaterialsSupplied string `json:"materials_supplied" yaml:"materials_supplied"`

	SupplierType SupplierType `json:"supplier_type" yaml:"supplier_type"`

	// Priority and Status carry fixed defaults for newly discovered
	// suppliers: Secondary and Prospect.
	Priority string `json:"priority" yaml:"priority"`
	Status   string `json:"status" yaml:"status"`

	// Notes embeds the leading snippet excerpt with a fixed prefix.
	Notes string `json:"notes" yaml:"notes"`

	SourceURL string `json:"source_url" yaml:"source_url"`

	// SearchRank is the 1-based position within one search call's
	// result list, set by the research runner.
	SearchRank int `json:"search_rank" yaml:"search_rank"`
}

// SupplierRecord is a persisted, deduplicated supplier entity: a
// SupplierCandidate plus its store identity. Uniqueness is enforced at
// write time by exact match on company name or website, not by a
// database constraint (prd004-supplier-store R1.2, R1.3).
type SupplierRecord struct {
	ID int64 `json:"id" yaml:"id"`
	SupplierCandidate
}

// SearchHistoryEntry is the append-only audit record of one discovery
// pass for one queue item. Per prd004-supplier-store R3.
type SearchHistoryEntry struct {
	ID           int64  `json:"id" yaml:"id"`
	QueueItemID  int64  `json:"queue_item_id" yaml:"queue_item_id"`
	ItemName     string `json:"item_name" yaml:"item_name"`
	SearchQuery  string `json:"search_query" yaml:"search_query"`
	SearchDate   string `json:"search_date" yaml:"search_date"`
	NumResults   int    `json:"num_results" yaml:"num_results"`
	SearchEngine string `json:"search_engine" yaml:"search_engine"`
	Notes        string `json:"notes" yaml:"notes"`
}
