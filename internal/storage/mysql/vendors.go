package mysql

import (
	"context"
	"fmt"

	"murp/internal/storage"
)

func (s *Storage) GetVendors(ctx context.Context) ([]storage.Vendor, error) {
	const op = "storage.mysql.vendors.GetVendors"

	stmt := `SELECT id, name, email, lead_time_days FROM vendors ORDER BY name`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vendors []storage.Vendor

	for rows.Next() {
		var v storage.Vendor

		err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.LeadTimeDays)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		vendors = append(vendors, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return vendors, nil
}

func (s *Storage) SaveVendor(ctx context.Context, v storage.Vendor) (int64, error) {
	const op = "storage.mysql.vendors.SaveVendor"

	stmt := `INSERT INTO vendors (name, email, lead_time_days) VALUES (?, ?, ?)`

	res, err := s.db.ExecContext(ctx, stmt, v.Name, v.Email, v.LeadTimeDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}
