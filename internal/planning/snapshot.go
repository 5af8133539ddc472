package planning

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"murp/internal/storage"
)

// Snapshot is the immutable input to every planning function: the BOM graph,
// the stock picture and the demand rates as of one moment, plus the reference
// date all date arithmetic uses. Nothing in this package reads the system
// clock or any global state; two calls over the same snapshot always produce
// the same answer.
//
// The ID lets the caller discard results computed from a snapshot that has
// since been superseded.
type Snapshot struct {
	ID         uuid.UUID
	Today      time.Time
	Stock      map[string]storage.StockLevel
	Demand     map[string]decimal.Decimal
	Forecast   map[string][]storage.ForecastBucket
	Components map[string]storage.Component

	goods  []storage.FinishedGood
	lines  []storage.BOMLine
	byGood map[string][]storage.BOMLine
}

func NewSnapshot(
	today time.Time,
	goods []storage.FinishedGood,
	lines []storage.BOMLine,
	stock map[string]storage.StockLevel,
	demand map[string]decimal.Decimal,
	forecast map[string][]storage.ForecastBucket,
	components map[string]storage.Component,
) *Snapshot {
	byGood := make(map[string][]storage.BOMLine)
	for _, line := range lines {
		byGood[line.FinishedGoodSKU] = append(byGood[line.FinishedGoodSKU], line)
	}

	return &Snapshot{
		ID:         uuid.New(),
		Today:      today,
		Stock:      stock,
		Demand:     demand,
		Forecast:   forecast,
		Components: components,
		goods:      goods,
		lines:      lines,
		byGood:     byGood,
	}
}

// LinesFor returns the BOM lines of one finished good in stored line order.
// Line order is the tie-break for limiting-component selection.
func (s *Snapshot) LinesFor(finishedGoodSKU string) []storage.BOMLine {
	return s.byGood[finishedGoodSKU]
}

// FinishedGoods returns every known finished-good SKU, sorted: goods from
// the catalog plus any SKU appearing on the parent side of a BOM line. A
// catalog good without BOM lines is kept so its undefined buildability is
// surfaced instead of dropped.
func (s *Snapshot) FinishedGoods() []string {
	seen := make(map[string]struct{}, len(s.byGood)+len(s.goods))
	for _, g := range s.goods {
		seen[g.SKU] = struct{}{}
	}
	for sku := range s.byGood {
		seen[sku] = struct{}{}
	}
	skus := make([]string, 0, len(seen))
	for sku := range seen {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

// ComponentSKUs returns every SKU appearing as a component in the BOM graph,
// sorted, deduplicated.
func (s *Snapshot) ComponentSKUs() []string {
	seen := make(map[string]struct{})
	for _, line := range s.lines {
		seen[line.ComponentSKU] = struct{}{}
	}
	skus := make([]string, 0, len(seen))
	for sku := range seen {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

// StockFor returns the stock level for a SKU. A SKU missing from the snapshot
// counts as zero on hand and zero on order, so incomplete data reads as a
// shortage instead of failing the whole plan.
func (s *Snapshot) StockFor(sku string) storage.StockLevel {
	if lvl, ok := s.Stock[sku]; ok {
		return lvl
	}
	return storage.StockLevel{SKU: sku}
}

// DemandFor returns the daily demand rate for a SKU, zero when unknown.
func (s *Snapshot) DemandFor(sku string) decimal.Decimal {
	return s.Demand[sku]
}
