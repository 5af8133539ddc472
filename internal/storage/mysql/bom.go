package mysql

import (
	"context"
	"fmt"

	"murp/internal/storage"
)

// GetBOMLines returns the whole BOM graph. Line order within a finished good
// is preserved (line_no), the planner uses it as the limiting-component
// tie-break.
func (s *Storage) GetBOMLines(ctx context.Context) ([]storage.BOMLine, error) {
	const op = "storage.mysql.bom.GetBOMLines"

	stmt := `SELECT finished_good_sku, component_sku, qty_per_unit, line_no
			FROM bom_lines
			ORDER BY finished_good_sku, line_no`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var lines []storage.BOMLine

	for rows.Next() {
		var line storage.BOMLine

		err := rows.Scan(&line.FinishedGoodSKU, &line.ComponentSKU, &line.QtyPerUnit, &line.LineNo)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return lines, nil
}

func (s *Storage) GetFinishedGoods(ctx context.Context) ([]storage.FinishedGood, error) {
	const op = "storage.mysql.bom.GetFinishedGoods"

	stmt := `SELECT fg.sku, fg.name, fg.category, COALESCE(sl.on_hand, 0)
			FROM finished_goods fg
			LEFT JOIN stock_levels sl ON sl.sku = fg.sku
			ORDER BY fg.sku`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var goods []storage.FinishedGood

	for rows.Next() {
		var fg storage.FinishedGood

		err := rows.Scan(&fg.SKU, &fg.Name, &fg.Category, &fg.OnHand)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		goods = append(goods, fg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return goods, nil
}
