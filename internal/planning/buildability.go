package planning

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"murp/internal/storage"
)

// ShortfallLine reports one component that cannot cover the target batch.
type ShortfallLine struct {
	ComponentSKU string          `json:"component_sku"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

// Buildability is the result of one constraint-propagation pass over a
// finished good's BOM. It is always derived, never stored.
//
// Undefined is set when the finished good has no BOM lines at all; in that
// case BuildableUnits and LimitingComponentSKU carry no meaning and must not
// be read as "blocked".
type Buildability struct {
	FinishedGoodSKU      string          `json:"finished_good_sku"`
	Undefined            bool            `json:"undefined"`
	BuildableUnits       int64           `json:"buildable_units"`
	LimitingComponentSKU string          `json:"limiting_component_sku,omitempty"`
	Shortfalls           []ShortfallLine `json:"shortfalls"`
}

// ComputeBuildability computes how many units of a finished good the current
// on-hand stock supports, which single component constrains that number, and
// which components fall short of a caller-supplied target batch.
//
// buildableUnits = min over lines of floor(onHand / qtyPerUnit). The limiting
// component is the line achieving the minimum; ties go to the earliest BOM
// line. targetBatch is in units of the finished good (typically 30 days of
// demand); a component is listed in Shortfalls when its on-hand stock cannot
// cover targetBatch, independent of whether it limits buildable units today.
//
// Components missing from stock count as zero on hand. A line with
// non-positive qtyPerUnit or negative on-hand stock is a validation error.
func ComputeBuildability(
	finishedGoodSKU string,
	lines []storage.BOMLine,
	stock map[string]storage.StockLevel,
	targetBatch decimal.Decimal,
) (Buildability, error) {
	result := Buildability{FinishedGoodSKU: finishedGoodSKU}

	if len(lines) == 0 {
		result.Undefined = true
		return result, nil
	}

	var (
		minUnits int64
		haveMin  bool
	)

	for _, line := range lines {
		if line.QtyPerUnit.Sign() <= 0 {
			return Buildability{}, fmt.Errorf("bom %s line %s: qty_per_unit %s: %w",
				finishedGoodSKU, line.ComponentSKU, line.QtyPerUnit, ErrInvalidQtyPer)
		}

		onHand := stock[line.ComponentSKU].OnHand
		if onHand.Sign() < 0 {
			return Buildability{}, fmt.Errorf("component %s: on_hand %s: %w",
				line.ComponentSKU, onHand, ErrNegativeStock)
		}

		units := onHand.Div(line.QtyPerUnit).Floor().IntPart()
		if !haveMin || units < minUnits {
			minUnits = units
			haveMin = true
			result.LimitingComponentSKU = line.ComponentSKU
		}

		required := targetBatch.Mul(line.QtyPerUnit)
		if onHand.LessThan(required) {
			result.Shortfalls = append(result.Shortfalls, ShortfallLine{
				ComponentSKU: line.ComponentSKU,
				Required:     required,
				Available:    onHand,
				Shortfall:    required.Sub(onHand),
			})
		}
	}

	result.BuildableUnits = minUnits

	// Largest gap first; equal gaps keep BOM line order.
	sort.SliceStable(result.Shortfalls, func(i, j int) bool {
		return result.Shortfalls[i].Shortfall.GreaterThan(result.Shortfalls[j].Shortfall)
	})

	return result, nil
}

// ShortfallFor returns the shortfall line for one component, nil when the
// component covers the target batch.
func (b Buildability) ShortfallFor(componentSKU string) *ShortfallLine {
	for i := range b.Shortfalls {
		if b.Shortfalls[i].ComponentSKU == componentSKU {
			return &b.Shortfalls[i]
		}
	}
	return nil
}
