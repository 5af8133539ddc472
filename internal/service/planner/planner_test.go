package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"murp/internal/planning"
	"murp/internal/storage"
)

type MockPlannerStorage struct {
	mock.Mock
}

func (m *MockPlannerStorage) GetFinishedGoods(ctx context.Context) ([]storage.FinishedGood, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.FinishedGood), args.Error(1)
}

func (m *MockPlannerStorage) GetBOMLines(ctx context.Context) ([]storage.BOMLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.BOMLine), args.Error(1)
}

func (m *MockPlannerStorage) GetStockLevels(ctx context.Context) (map[string]storage.StockLevel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]storage.StockLevel), args.Error(1)
}

func (m *MockPlannerStorage) GetDemandRequirements(ctx context.Context) ([]storage.DemandRequirement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.DemandRequirement), args.Error(1)
}

func (m *MockPlannerStorage) GetForecastBuckets(ctx context.Context, days int) ([]storage.ForecastBucket, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ForecastBucket), args.Error(1)
}

func (m *MockPlannerStorage) GetComponentMap(ctx context.Context) (map[string]storage.Component, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]storage.Component), args.Error(1)
}

var today = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildSnapshot_DemandDefaulting(t *testing.T) {
	mockStorage := new(MockPlannerStorage)
	mockStorage.On("GetFinishedGoods", mock.Anything).Return([]storage.FinishedGood{}, nil)
	mockStorage.On("GetBOMLines", mock.Anything).Return([]storage.BOMLine{}, nil)
	mockStorage.On("GetStockLevels", mock.Anything).Return(map[string]storage.StockLevel{}, nil)
	mockStorage.On("GetComponentMap", mock.Anything).Return(map[string]storage.Component{}, nil)
	mockStorage.On("GetForecastBuckets", mock.Anything, 30).Return([]storage.ForecastBucket{}, nil)
	mockStorage.On("GetDemandRequirements", mock.Anything).Return([]storage.DemandRequirement{
		{SKU: "FG-1", TotalRequirement: dec("70"), DaysUntilNeeded: 14},
		{SKU: "FG-2", TotalRequirement: dec("70"), DaysUntilNeeded: 0},  // default horizon
		{SKU: "FG-2", TotalRequirement: dec("14"), DaysUntilNeeded: -3}, // summed, default horizon
	}, nil)

	svc := New(mockStorage, 30)
	snap, err := svc.BuildSnapshot(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, today, snap.Today)
	assert.True(t, snap.DemandFor("FG-1").Equal(dec("5")), "70 over 14 days")
	assert.True(t, snap.DemandFor("FG-2").Equal(dec("12")), "70/7 + 14/7 with the 7-day default")
	mockStorage.AssertExpectations(t)
}

func TestBuildSnapshot_StorageErrorPropagates(t *testing.T) {
	dbErr := errors.New("connection refused")

	mockStorage := new(MockPlannerStorage)
	mockStorage.On("GetFinishedGoods", mock.Anything).Return([]storage.FinishedGood{}, nil).Maybe()
	mockStorage.On("GetBOMLines", mock.Anything).Return(nil, dbErr)
	mockStorage.On("GetStockLevels", mock.Anything).Return(map[string]storage.StockLevel{}, nil).Maybe()
	mockStorage.On("GetComponentMap", mock.Anything).Return(map[string]storage.Component{}, nil).Maybe()
	mockStorage.On("GetForecastBuckets", mock.Anything, 30).Return([]storage.ForecastBucket{}, nil).Maybe()
	mockStorage.On("GetDemandRequirements", mock.Anything).Return([]storage.DemandRequirement{}, nil).Maybe()

	svc := New(mockStorage, 30)
	_, err := svc.BuildSnapshot(context.Background(), today)
	assert.ErrorIs(t, err, dbErr)
}

func testSnapshot() *planning.Snapshot {
	goods := []storage.FinishedGood{{SKU: "WIDGET"}, {SKU: "GADGET"}}
	lines := []storage.BOMLine{
		{FinishedGoodSKU: "WIDGET", ComponentSKU: "COMP-A", QtyPerUnit: dec("2"), LineNo: 1},
		{FinishedGoodSKU: "WIDGET", ComponentSKU: "COMP-B", QtyPerUnit: dec("1"), LineNo: 2},
		{FinishedGoodSKU: "GADGET", ComponentSKU: "COMP-B", QtyPerUnit: dec("4"), LineNo: 1},
	}
	stock := map[string]storage.StockLevel{
		"WIDGET": {SKU: "WIDGET", OnHand: dec("6")},
		"COMP-A": {SKU: "COMP-A", OnHand: dec("10")},
		"COMP-B": {SKU: "COMP-B", OnHand: dec("3")},
	}
	demand := map[string]decimal.Decimal{
		"WIDGET": dec("1"),
		"GADGET": dec("2"),
		"COMP-B": dec("20"),
	}
	components := map[string]storage.Component{
		"COMP-A": {SKU: "COMP-A", MOQ: 50},
		"COMP-B": {SKU: "COMP-B", MOQ: 25},
	}
	return planning.NewSnapshot(today, goods, lines, stock, demand, nil, components)
}

func TestPlanProducts_FanOutAndAggregate(t *testing.T) {
	svc := New(new(MockPlannerStorage), 30)
	snap := testSnapshot()

	plan, err := svc.PlanProducts(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, snap.ID, plan.SnapshotID)
	require.Len(t, plan.Buildability, 2)
	assert.Empty(t, plan.UndefinedGoods)

	byGood := make(map[string]planning.Buildability)
	for _, b := range plan.Buildability {
		byGood[b.FinishedGoodSKU] = b
	}

	// GADGET needs 4x COMP-B but only 3 exist: fully blocked.
	assert.Equal(t, int64(0), byGood["GADGET"].BuildableUnits)
	assert.Equal(t, "COMP-B", byGood["GADGET"].LimitingComponentSKU)
	// WIDGET: min(floor(10/2), floor(3/1)) = 3.
	assert.Equal(t, int64(3), byGood["WIDGET"].BuildableUnits)
	assert.Equal(t, "COMP-B", byGood["WIDGET"].LimitingComponentSKU)

	// Only the fully blocked product rolls up.
	require.Len(t, plan.Shortages, 1)
	assert.Equal(t, "COMP-B", plan.Shortages[0].ComponentSKU)
	assert.Equal(t, []string{"GADGET"}, plan.Shortages[0].BlockedFinishedGoods)

	require.Len(t, plan.Statuses, 2)
	byStatus := make(map[string]planning.ProductionStatus)
	for _, st := range plan.Statuses {
		byStatus[st.FinishedGoodSKU] = st
	}
	assert.Equal(t, planning.StateOutOfStock, byStatus["GADGET"].State)
	assert.Equal(t, planning.ActionRequest, byStatus["GADGET"].Action)
	assert.Equal(t, "COMP-B", byStatus["GADGET"].ComponentSKU)
	// shortfall 4*2*30-3 = 237, 1.5x = 356 (beats MOQ 25).
	assert.Equal(t, int64(356), byStatus["GADGET"].RecommendedQty)
	// WIDGET: 6 on hand + 3 buildable at 1/day is 9 days of stock.
	assert.Equal(t, planning.StateBuildable, byStatus["WIDGET"].State)
	assert.Equal(t, int64(9), byStatus["WIDGET"].DaysOfStock)
}

func TestPlanProducts_UndefinedBOMSeparated(t *testing.T) {
	goods := []storage.FinishedGood{{SKU: "REAL"}, {SKU: "NO-BOM"}}
	lines := []storage.BOMLine{
		{FinishedGoodSKU: "REAL", ComponentSKU: "COMP-A", QtyPerUnit: dec("1"), LineNo: 1},
	}
	snap := planning.NewSnapshot(today, goods, lines, nil, nil, nil, nil)

	svc := New(new(MockPlannerStorage), 30)
	plan, err := svc.PlanProducts(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, plan.Buildability, 2)

	// The catalog-only good is reported as undefined, never classified and
	// never counted as blocked.
	assert.Equal(t, []string{"NO-BOM"}, plan.UndefinedGoods)
	require.Len(t, plan.Statuses, 1)
	assert.Equal(t, "REAL", plan.Statuses[0].FinishedGoodSKU)

	// REAL itself is blocked (no component stock at all) and does aggregate.
	require.Len(t, plan.Shortages, 1)
	assert.Equal(t, []string{"REAL"}, plan.Shortages[0].BlockedFinishedGoods)
}

func TestPlanProducts_DeterministicAcrossRuns(t *testing.T) {
	svc := New(new(MockPlannerStorage), 30)
	snap := testSnapshot()

	first, err := svc.PlanProducts(context.Background(), snap)
	require.NoError(t, err)
	second, err := svc.PlanProducts(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, first.Buildability, second.Buildability)
	assert.Equal(t, first.Shortages, second.Shortages)
	assert.Equal(t, first.Statuses, second.Statuses)
}

func TestProjectComponentCoverage_DefaultHorizon(t *testing.T) {
	svc := New(new(MockPlannerStorage), 30)
	snap := testSnapshot()

	cov, err := svc.ProjectComponentCoverage(snap, "COMP-B", 0)
	require.NoError(t, err)
	assert.Len(t, cov.Weeks, planning.DefaultHorizonWeeks)
	assert.Equal(t, int64(0), cov.DaysOfCoverage) // 3 on hand at 20/day
}

func TestProjectAllCoverage_CoversEveryComponent(t *testing.T) {
	svc := New(new(MockPlannerStorage), 30)
	snap := testSnapshot()

	covs, err := svc.ProjectAllCoverage(context.Background(), snap, 4)
	require.NoError(t, err)
	require.Len(t, covs, 2)
	assert.Equal(t, "COMP-A", covs[0].ComponentSKU)
	assert.Equal(t, "COMP-B", covs[1].ComponentSKU)
}
