package mysql

import (
	"context"
	"fmt"

	"murp/internal/storage"
)

// GetStockLevels returns the current stock picture for every SKU, components
// and finished goods alike. Receiving and consumption mutate this table
// elsewhere; the planner only ever reads it.
func (s *Storage) GetStockLevels(ctx context.Context) (map[string]storage.StockLevel, error) {
	const op = "storage.mysql.stock.GetStockLevels"

	stmt := `SELECT sku, on_hand, on_order FROM stock_levels`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	levels := make(map[string]storage.StockLevel)

	for rows.Next() {
		var lvl storage.StockLevel

		err := rows.Scan(&lvl.SKU, &lvl.OnHand, &lvl.OnOrder)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		levels[lvl.SKU] = lvl
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return levels, nil
}
