package storage

import "github.com/shopspring/decimal"

// BOMLine is one row of a finished good's bill of materials. A component may
// appear in many finished goods' BOMs; line order within a finished good is
// the order returned by the store and is meaningful (tie-breaks downstream).
type BOMLine struct {
	FinishedGoodSKU string          `json:"finished_good_sku"`
	ComponentSKU    string          `json:"component_sku"`
	QtyPerUnit      decimal.Decimal `json:"qty_per_unit"`
	LineNo          int             `json:"line_no"`
}

type FinishedGood struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	OnHand   decimal.Decimal `json:"on_hand"`
	Category string          `json:"category"`
}
