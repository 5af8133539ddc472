package planning

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifiedState(t *testing.T, b Buildability, stock, demand string) ProductionState {
	t.Helper()
	status, err := ClassifyProduction(b, dec(stock), dec(demand), dec(demand), 0)
	require.NoError(t, err)
	return status.State
}

func TestClassifyProduction_PriorityOrder(t *testing.T) {
	blocked := Buildability{FinishedGoodSKU: "FG", BuildableUnits: 0, LimitingComponentSKU: "COMP-X"}
	buildable := Buildability{FinishedGoodSKU: "FG", BuildableUnits: 5}

	// Both zero: always out_of_stock, never blocked.
	assert.Equal(t, StateOutOfStock, classifiedState(t, blocked, "0", "1"))
	// Finished stock on the shelf but nothing buildable.
	assert.Equal(t, StateBlocked, classifiedState(t, blocked, "4", "1"))
	// No finished stock but components available: falls through to the
	// days-of-stock check, not out_of_stock.
	assert.Equal(t, StateLowSoon, classifiedState(t, buildable, "0", "1"))
	// 5 units at 1/day with zero demand is the infinite sentinel.
	assert.Equal(t, StateBuildable, classifiedState(t, buildable, "0", "0"))
	// Plenty of stock for the demand rate.
	assert.Equal(t, StateBuildable, classifiedState(t, buildable, "100", "2"))
}

func TestClassifyProduction_DaysOfStock(t *testing.T) {
	b := Buildability{FinishedGoodSKU: "FG", BuildableUnits: 10}

	status, err := ClassifyProduction(b, dec("25"), dec("5"), dec("5"), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), status.DaysOfStock) // (25+10)/5

	status, err = ClassifyProduction(b, dec("25"), decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(InfiniteCoverageDays), status.DaysOfStock)
}

func TestClassifyProduction_BuildRecommendation(t *testing.T) {
	b := Buildability{FinishedGoodSKU: "FG", BuildableUnits: 20}

	status, err := ClassifyProduction(b, dec("10"), dec("1"), dec("1"), 0)
	require.NoError(t, err)
	assert.Equal(t, StateBuildable, status.State)
	assert.Equal(t, ActionBuild, status.Action)
	assert.Equal(t, int64(5), status.RecommendedQty, "half the current shelf stock")

	// Empty shelf with zero demand: the half-stock formula yields zero, fall
	// back to everything buildable.
	status, err = ClassifyProduction(b, dec("0"), decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, StateBuildable, status.State)
	assert.Equal(t, int64(20), status.RecommendedQty)
}

func TestClassifyProduction_ScheduleRecommendation(t *testing.T) {
	b := Buildability{FinishedGoodSKU: "FG", BuildableUnits: 3}

	status, err := ClassifyProduction(b, dec("1"), dec("2"), dec("2"), 0)
	require.NoError(t, err)
	assert.Equal(t, StateLowSoon, status.State)
	assert.Equal(t, ActionSchedule, status.Action)
	assert.Equal(t, int64(3), status.RecommendedQty, "a week of demand capped by buildable units")

	// Nothing buildable still schedules at least one unit.
	b.BuildableUnits = 1
	status, err = ClassifyProduction(b, dec("0"), dec("2"), decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, StateLowSoon, status.State)
	assert.Equal(t, int64(1), status.RecommendedQty)
}

func TestClassifyProduction_RequestRecommendation(t *testing.T) {
	b := Buildability{
		FinishedGoodSKU:      "FG",
		BuildableUnits:       0,
		LimitingComponentSKU: "COMP-X",
		Shortfalls: []ShortfallLine{{
			ComponentSKU: "COMP-X",
			Required:     dec("40"),
			Available:    decimal.Zero,
			Shortfall:    dec("40"),
		}},
	}

	// 1.5x the shortfall beats a small MOQ.
	status, err := ClassifyProduction(b, dec("2"), dec("1"), dec("1"), 25)
	require.NoError(t, err)
	assert.Equal(t, StateBlocked, status.State)
	assert.Equal(t, ActionRequest, status.Action)
	assert.Equal(t, "COMP-X", status.ComponentSKU)
	assert.Equal(t, int64(60), status.RecommendedQty)

	// A large MOQ wins over the shortfall formula.
	status, err = ClassifyProduction(b, dec("2"), dec("1"), dec("1"), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), status.RecommendedQty)

	// Out of stock with a known limiting component requests the same way.
	status, err = ClassifyProduction(b, dec("0"), dec("1"), dec("1"), 25)
	require.NoError(t, err)
	assert.Equal(t, StateOutOfStock, status.State)
	assert.Equal(t, ActionRequest, status.Action)
	assert.Equal(t, int64(60), status.RecommendedQty)
}

func TestClassifyProduction_OutOfStockWithoutLimitingComponent(t *testing.T) {
	b := Buildability{FinishedGoodSKU: "FG", BuildableUnits: 0}

	status, err := ClassifyProduction(b, dec("0"), dec("1"), dec("1"), 0)
	require.NoError(t, err)
	assert.Equal(t, StateOutOfStock, status.State)
	assert.Equal(t, ActionNone, status.Action)
	assert.Equal(t, int64(0), status.RecommendedQty)
}

func TestClassifyProduction_BucketProjection(t *testing.T) {
	blocked := Buildability{FinishedGoodSKU: "FG", BuildableUnits: 0, LimitingComponentSKU: "COMP-X"}
	buildable := Buildability{FinishedGoodSKU: "FG", BuildableUnits: 9}

	cases := []struct {
		name   string
		b      Buildability
		stock  string
		demand string
		want   ActionBucket
	}{
		{"out of stock", blocked, "0", "1", BucketBuildUrgent},
		{"blocked", blocked, "5", "1", BucketBuildUrgent},
		{"low soon", buildable, "0", "2", BucketBuildSoon},
		{"adequate", buildable, "50", "1", BucketAdequate},
		{"no demand wins over blocked", blocked, "0", "0", BucketNoDemand},
		{"no demand wins over adequate", buildable, "50", "0", BucketNoDemand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, err := ClassifyProduction(tc.b, dec(tc.stock), dec(tc.demand), dec(tc.demand), 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, status.Bucket)
		})
	}
}

func TestClassifyProduction_Exhaustive(t *testing.T) {
	valid := map[ProductionState]bool{
		StateOutOfStock: true, StateBlocked: true, StateLowSoon: true, StateBuildable: true,
	}
	for _, buildable := range []int64{0, 1, 10} {
		for _, stock := range []string{"0", "1", "100"} {
			for _, demand := range []string{"0", "0.5", "3"} {
				b := Buildability{FinishedGoodSKU: "FG", BuildableUnits: buildable, LimitingComponentSKU: "COMP-X"}
				status, err := ClassifyProduction(b, dec(stock), dec(demand), dec(demand), 0)
				require.NoError(t, err)
				assert.True(t, valid[status.State],
					"buildable=%d stock=%s demand=%s produced %q", buildable, stock, demand, status.State)
			}
		}
	}
}

func TestClassifyProduction_UndefinedBuildability(t *testing.T) {
	_, err := ClassifyProduction(Buildability{FinishedGoodSKU: "NO-BOM", Undefined: true}, dec("1"), dec("1"), dec("1"), 0)
	assert.ErrorIs(t, err, ErrUndefinedBuildability)
}

func TestClassifyProduction_Validation(t *testing.T) {
	b := Buildability{FinishedGoodSKU: "FG", BuildableUnits: 1}

	_, err := ClassifyProduction(b, dec("-1"), dec("1"), dec("1"), 0)
	assert.ErrorIs(t, err, ErrNegativeStock)

	_, err = ClassifyProduction(b, dec("1"), dec("-1"), dec("1"), 0)
	assert.ErrorIs(t, err, ErrNegativeDemand)
}
