package storage

import "github.com/shopspring/decimal"

type Component struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	VendorID     *int64 `json:"vendor_id"`
	LeadTimeDays int    `json:"lead_time_days"`
	MOQ          int64  `json:"moq"`
}

type StockLevel struct {
	SKU     string          `json:"sku"`
	OnHand  decimal.Decimal `json:"on_hand"`
	OnOrder decimal.Decimal `json:"on_order"`
}

// ComponentWithStock is the joined row the dashboard component list shows.
type ComponentWithStock struct {
	Component
	OnHand  decimal.Decimal `json:"on_hand"`
	OnOrder decimal.Decimal `json:"on_order"`
}
