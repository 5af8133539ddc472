package planning

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"murp/internal/storage"
)

// CoverageStatus classifies one projected week of component supply.
type CoverageStatus string

const (
	StatusCovered  CoverageStatus = "covered"
	StatusWarning  CoverageStatus = "warning"
	StatusShortage CoverageStatus = "shortage"
)

const (
	// DefaultHorizonWeeks is the projection window the dashboard shows.
	DefaultHorizonWeeks = 13

	// InfiniteCoverageDays is the sentinel for zero-demand components.
	InfiniteCoverageDays = 999
)

type CoverageWeek struct {
	WeekIndex      int             `json:"week_index"`
	WeekStart      time.Time       `json:"week_start"`
	ProjectedStock decimal.Decimal `json:"projected_stock"`
	Status         CoverageStatus  `json:"status"`
}

type Coverage struct {
	ComponentSKU      string         `json:"component_sku"`
	Weeks             []CoverageWeek `json:"weeks"`
	DaysOfCoverage    int64          `json:"days_of_coverage"`
	RunoutDate        *time.Time     `json:"runout_date,omitempty"`
	FirstShortageWeek *int           `json:"first_shortage_week,omitempty"`
}

// ProjectCoverage simulates a component's supply week by week over the given
// horizon: starting from on-hand plus on-order stock, each week consumes
// seven days of demand. A week is a shortage when the running stock is at or
// below zero, a warning when fewer than two weeks of buffer remain, covered
// otherwise. Shortage is sticky: the deficit is never replenished inside the
// projection, so every week after the first shortage is also a shortage.
//
// Days of coverage is floor(total stock / daily demand); with zero demand it
// is the InfiniteCoverageDays sentinel, every week is covered and there is no
// runout date.
func ProjectCoverage(
	componentSKU string,
	stock storage.StockLevel,
	dailyDemand decimal.Decimal,
	horizonWeeks int,
	today time.Time,
) (Coverage, error) {
	if horizonWeeks < 1 {
		return Coverage{}, fmt.Errorf("component %s: horizon %d: %w", componentSKU, horizonWeeks, ErrInvalidHorizon)
	}
	if stock.OnHand.Sign() < 0 || stock.OnOrder.Sign() < 0 {
		return Coverage{}, fmt.Errorf("component %s: %w", componentSKU, ErrNegativeStock)
	}
	if dailyDemand.Sign() < 0 {
		return Coverage{}, fmt.Errorf("component %s: daily demand %s: %w", componentSKU, dailyDemand, ErrNegativeDemand)
	}

	cov := Coverage{
		ComponentSKU: componentSKU,
		Weeks:        make([]CoverageWeek, 0, horizonWeeks),
	}

	total := stock.OnHand.Add(stock.OnOrder)

	if dailyDemand.IsZero() {
		cov.DaysOfCoverage = InfiniteCoverageDays
		for w := 0; w < horizonWeeks; w++ {
			cov.Weeks = append(cov.Weeks, CoverageWeek{
				WeekIndex:      w,
				WeekStart:      today.AddDate(0, 0, 7*w),
				ProjectedStock: total,
				Status:         StatusCovered,
			})
		}
		return cov, nil
	}

	cov.DaysOfCoverage = total.Div(dailyDemand).Floor().IntPart()
	runout := today.AddDate(0, 0, int(cov.DaysOfCoverage))
	cov.RunoutDate = &runout

	weeklyConsumption := dailyDemand.Mul(decimal.NewFromInt(7))
	warnBuffer := weeklyConsumption.Mul(decimal.NewFromInt(2))

	running := total
	for w := 0; w < horizonWeeks; w++ {
		running = running.Sub(weeklyConsumption)

		status := StatusCovered
		switch {
		case running.Sign() <= 0:
			status = StatusShortage
			if cov.FirstShortageWeek == nil {
				week := w
				cov.FirstShortageWeek = &week
			}
		case running.LessThan(warnBuffer):
			status = StatusWarning
		}

		cov.Weeks = append(cov.Weeks, CoverageWeek{
			WeekIndex:      w,
			WeekStart:      today.AddDate(0, 0, 7*w),
			ProjectedStock: running,
			Status:         status,
		})
	}

	return cov, nil
}
