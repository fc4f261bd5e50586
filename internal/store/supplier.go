// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fluxgen/sourcing-engine/pkg/types"
)

const supplierColumns = `id, company_name, contact_person, phone, email,
	website, city, province_state, country, postal_code,
	materials_supplied, supplier_type, priority, status, notes,
	source_url, search_rank`

// SaveSupplier persists a candidate unless a record with the same
// company name or website already exists. It returns the record
// identity and whether a new row was created. The check-and-insert is
// two statements without a surrounding transaction; the pipeline runs
// single-writer (prd004-supplier-store R1.2-R1.4).
func (s *Store) SaveSupplier(ctx context.Context, c types.SupplierCandidate) (int64, bool, error) {
	var existing int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM suppliers WHERE company_name = ? OR website = ?`,
		c.CompanyName, c.Website,
	).Scan(&existing)

	if err == nil {
		return existing, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("checking for existing supplier: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO suppliers
			(company_name, contact_person, phone, email, website,
			 city, province_state, country, postal_code,
			 materials_supplied, supplier_type, priority, status, notes,
			 source_url, search_rank)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CompanyName, c.ContactPerson, c.Phone, c.Email, c.Website,
		c.City, c.ProvinceState, c.Country, c.PostalCode,
		c.MaterialsSupplied, string(c.SupplierType), c.Priority, c.Status, c.Notes,
		c.SourceURL, c.SearchRank)
	if err != nil {
		return 0, false, fmt.Errorf("inserting supplier: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("reading supplier id: %w", err)
	}
	return id, true, nil
}

// SupplierByID returns one persisted supplier record.
func (s *Store) SupplierByID(ctx context.Context, id int64) (types.SupplierRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = ?`, id)

	rec, err := scanSupplier(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.SupplierRecord{}, fmt.Errorf("supplier %d not found", id)
		}
		return types.SupplierRecord{}, fmt.Errorf("querying supplier: %w", err)
	}
	return rec, nil
}

// Suppliers returns all supplier records, optionally filtered by a
// materials-supplied substring match (prd005-scoring R3.1).
func (s *Store) Suppliers(ctx context.Context, materialFilter string) ([]types.SupplierRecord, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	var args []any
	if materialFilter != "" {
		query += ` WHERE materials_supplied LIKE ?`
		args = append(args, "%"+materialFilter+"%")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying suppliers: %w", err)
	}
	defer rows.Close()

	var records []types.SupplierRecord
	for rows.Next() {
		rec, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning supplier row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CertificationCount returns the number of certification records
// linked to a supplier (prd005-scoring R2.3).
func (s *Store) CertificationCount(ctx context.Context, supplierID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM supplier_certifications WHERE supplier_id = ?`,
		supplierID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting certifications: %w", err)
	}
	return n, nil
}

// PricingCount returns the number of pricing-history records linked to
// a supplier (prd005-scoring R2.7).
func (s *Store) PricingCount(ctx context.Context, supplierID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM supplier_pricing_history WHERE supplier_id = ?`,
		supplierID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting pricing history: %w", err)
	}
	return n, nil
}

// AddCertification links a certification record to a supplier.
func (s *Store) AddCertification(ctx context.Context, supplierID int64, certName, issuedBy string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO supplier_certifications (supplier_id, cert_name, issued_by)
		VALUES (?, ?, ?)`,
		supplierID, certName, issuedBy)
	if err != nil {
		return fmt.Errorf("inserting certification: %w", err)
	}
	return nil
}

// AddPricing records a price quote for a supplier.
func (s *Store) AddPricing(ctx context.Context, supplierID int64, itemName string, unitPrice float64, currency string) error {
	if currency == "" {
		currency = "CAD"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO supplier_pricing_history (supplier_id, item_name, unit_price, currency)
		VALUES (?, ?, ?, ?)`,
		supplierID, itemName, unitPrice, currency)
	if err != nil {
		return fmt.Errorf("inserting pricing record: %w", err)
	}
	return nil
}

func scanSupplier(row rowScanner) (types.SupplierRecord, error) {
	var (
		rec          types.SupplierRecord
		supplierType string
	)

	err := row.Scan(
		&rec.ID, &rec.CompanyName, &rec.ContactPerson, &rec.Phone, &rec.Email,
		&rec.Website, &rec.City, &rec.ProvinceState, &rec.Country, &rec.PostalCode,
		&rec.MaterialsSupplied, &supplierType, &rec.Priority, &rec.Status, &rec.Notes,
		&rec.SourceURL, &rec.SearchRank,
	)
	if err != nil {
		return types.SupplierRecord{}, err
	}

	rec.SupplierType = types.SupplierType(supplierType)
	return rec, nil
}
