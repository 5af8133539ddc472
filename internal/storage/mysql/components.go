package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"murp/internal/storage"
)

func (s *Storage) GetComponents(ctx context.Context) ([]storage.ComponentWithStock, error) {
	const op = "storage.mysql.components.GetComponents"

	stmt := `SELECT c.sku, c.name, c.category, c.vendor_id, c.lead_time_days, c.moq,
       			COALESCE(sl.on_hand, 0), COALESCE(sl.on_order, 0)
			FROM components c
			LEFT JOIN stock_levels sl ON sl.sku = c.sku
			ORDER BY c.sku`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var components []storage.ComponentWithStock

	for rows.Next() {
		var c storage.ComponentWithStock

		err := rows.Scan(&c.SKU, &c.Name, &c.Category, &c.VendorID, &c.LeadTimeDays, &c.MOQ, &c.OnHand, &c.OnOrder)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		components = append(components, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return components, nil
}

func (s *Storage) GetComponent(ctx context.Context, sku string) (*storage.Component, error) {
	const op = "storage.mysql.components.GetComponent"

	stmt := `SELECT sku, name, category, vendor_id, lead_time_days, moq FROM components WHERE sku = ?`

	var c storage.Component
	err := s.db.QueryRowContext(ctx, stmt, sku).
		Scan(&c.SKU, &c.Name, &c.Category, &c.VendorID, &c.LeadTimeDays, &c.MOQ)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %s: %w", op, sku, ErrComponentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

// GetComponentMap returns reference data keyed by SKU for snapshot assembly.
func (s *Storage) GetComponentMap(ctx context.Context) (map[string]storage.Component, error) {
	const op = "storage.mysql.components.GetComponentMap"

	stmt := `SELECT sku, name, category, vendor_id, lead_time_days, moq FROM components`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	components := make(map[string]storage.Component)

	for rows.Next() {
		var c storage.Component

		err := rows.Scan(&c.SKU, &c.Name, &c.Category, &c.VendorID, &c.LeadTimeDays, &c.MOQ)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		components[c.SKU] = c
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return components, nil
}

func (s *Storage) UpdateComponentMOQ(ctx context.Context, sku string, moq int64) error {
	const op = "storage.mysql.components.UpdateComponentMOQ"

	res, err := s.db.ExecContext(ctx, `UPDATE components SET moq = ? WHERE sku = ?`, moq, sku)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %s: %w", op, sku, ErrComponentNotFound)
	}

	return nil
}

func (s *Storage) UpdateComponentLeadTime(ctx context.Context, sku string, leadTimeDays int) error {
	const op = "storage.mysql.components.UpdateComponentLeadTime"

	res, err := s.db.ExecContext(ctx, `UPDATE components SET lead_time_days = ? WHERE sku = ?`, leadTimeDays, sku)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %s: %w", op, sku, ErrComponentNotFound)
	}

	return nil
}
