package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemandRequirement is the raw demand row: how much of a SKU is needed and in
// how many days. The planner turns it into a daily rate (days <= 0 means the
// default planning window applies).
type DemandRequirement struct {
	SKU              string          `json:"sku"`
	TotalRequirement decimal.Decimal `json:"total_requirement"`
	DaysUntilNeeded  int             `json:"days_until_needed"`
}

// ForecastBucket is one day of an externally produced demand forecast,
// used only for the 30-day average that sizes recommended builds.
type ForecastBucket struct {
	SKU      string          `json:"sku"`
	Date     time.Time       `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
}
