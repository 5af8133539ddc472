package mysql

import (
	"context"
	"fmt"

	"murp/internal/storage"
)

func (s *Storage) GetDemandRequirements(ctx context.Context) ([]storage.DemandRequirement, error) {
	const op = "storage.mysql.demand.GetDemandRequirements"

	stmt := `SELECT sku, total_requirement, days_until_needed FROM demand_requirements`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reqs []storage.DemandRequirement

	for rows.Next() {
		var req storage.DemandRequirement

		err := rows.Scan(&req.SKU, &req.TotalRequirement, &req.DaysUntilNeeded)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		reqs = append(reqs, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return reqs, nil
}

// GetForecastBuckets returns the external daily forecast for the next `days`
// days, used only for the 30-day average that sizes recommended builds.
func (s *Storage) GetForecastBuckets(ctx context.Context, days int) ([]storage.ForecastBucket, error) {
	const op = "storage.mysql.demand.GetForecastBuckets"

	stmt := `SELECT sku, forecast_date, quantity FROM demand_forecast
			WHERE forecast_date < DATE_ADD(CURDATE(), INTERVAL ? DAY)
			ORDER BY sku, forecast_date`

	rows, err := s.db.QueryContext(ctx, stmt, days)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var buckets []storage.ForecastBucket

	for rows.Next() {
		var b storage.ForecastBucket

		err := rows.Scan(&b.SKU, &b.Date, &b.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		buckets = append(buckets, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return buckets, nil
}
