package planning

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ComponentShortage rolls up, for one component, every finished good it fully
// blocks. A product counts as blocked by a component only when its buildable
// units are zero and this component is the limiting one; partial shortfalls
// that still leave a product buildable are deliberately not attributed here
// (they remain visible on each Buildability's shortfall list).
type ComponentShortage struct {
	ComponentSKU            string          `json:"component_sku"`
	CurrentStock            decimal.Decimal `json:"current_stock"`
	NeededForNextBuildCycle decimal.Decimal `json:"needed_for_next_build_cycle"`
	Shortfall               decimal.Decimal `json:"shortfall"`
	BlockedFinishedGoods    []string        `json:"blocked_finished_goods"`
}

// AggregateShortages groups blocked finished goods by their limiting
// component. Output is ranked by impact: blocked-product count descending,
// then total shortfall descending, then SKU ascending so equal records keep a
// stable order across runs. Undefined buildability results are skipped.
func AggregateShortages(results []Buildability) []ComponentShortage {
	byComponent := make(map[string]*ComponentShortage)

	for _, b := range results {
		if b.Undefined || b.BuildableUnits != 0 || b.LimitingComponentSKU == "" {
			continue
		}

		cs, ok := byComponent[b.LimitingComponentSKU]
		if !ok {
			cs = &ComponentShortage{ComponentSKU: b.LimitingComponentSKU}
			byComponent[b.LimitingComponentSKU] = cs
		}

		if sf := b.ShortfallFor(b.LimitingComponentSKU); sf != nil {
			cs.CurrentStock = sf.Available
			cs.NeededForNextBuildCycle = cs.NeededForNextBuildCycle.Add(sf.Required)
			cs.Shortfall = cs.Shortfall.Add(sf.Shortfall)
		}
		cs.BlockedFinishedGoods = append(cs.BlockedFinishedGoods, b.FinishedGoodSKU)
	}

	shortages := make([]ComponentShortage, 0, len(byComponent))
	for _, cs := range byComponent {
		sort.Strings(cs.BlockedFinishedGoods)
		shortages = append(shortages, *cs)
	}

	sort.Slice(shortages, func(i, j int) bool {
		a, b := shortages[i], shortages[j]
		if len(a.BlockedFinishedGoods) != len(b.BlockedFinishedGoods) {
			return len(a.BlockedFinishedGoods) > len(b.BlockedFinishedGoods)
		}
		if !a.Shortfall.Equal(b.Shortfall) {
			return a.Shortfall.GreaterThan(b.Shortfall)
		}
		return a.ComponentSKU < b.ComponentSKU
	})

	return shortages
}
