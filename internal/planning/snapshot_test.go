package planning

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"murp/internal/storage"
)

func TestSnapshot_GroupsLinesAndPreservesOrder(t *testing.T) {
	lines := []storage.BOMLine{
		bomLine("FG-B", "COMP-2", "1", 1),
		bomLine("FG-A", "COMP-1", "2", 1),
		bomLine("FG-A", "COMP-2", "1", 2),
	}
	goods := []storage.FinishedGood{{SKU: "FG-NEW"}} // in the catalog, no BOM yet
	snap := NewSnapshot(testToday, goods, lines, nil, nil, nil, nil)

	assert.Equal(t, []string{"FG-A", "FG-B", "FG-NEW"}, snap.FinishedGoods())
	assert.Empty(t, snap.LinesFor("FG-NEW"))
	assert.Equal(t, []string{"COMP-1", "COMP-2"}, snap.ComponentSKUs())

	got := snap.LinesFor("FG-A")
	assert.Len(t, got, 2)
	assert.Equal(t, "COMP-1", got[0].ComponentSKU)
	assert.Equal(t, "COMP-2", got[1].ComponentSKU)
}

func TestSnapshot_MissingStockReadsAsZero(t *testing.T) {
	snap := NewSnapshot(testToday, nil, nil, map[string]storage.StockLevel{
		"COMP-1": {SKU: "COMP-1", OnHand: dec("5")},
	}, nil, nil, nil)

	assert.True(t, snap.StockFor("COMP-1").OnHand.Equal(dec("5")))
	assert.True(t, snap.StockFor("GHOST").OnHand.IsZero())
	assert.True(t, snap.StockFor("GHOST").OnOrder.IsZero())
	assert.True(t, snap.DemandFor("GHOST").Equal(decimal.Zero))
}

func TestSnapshot_DistinctVersions(t *testing.T) {
	a := NewSnapshot(testToday, nil, nil, nil, nil, nil, nil)
	b := NewSnapshot(testToday, nil, nil, nil, nil, nil, nil)
	assert.NotEqual(t, a.ID, b.ID)
}
