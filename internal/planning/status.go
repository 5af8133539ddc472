package planning

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductionState is the fine-grained per-product status the dashboard shows.
type ProductionState string

const (
	StateOutOfStock ProductionState = "out_of_stock"
	StateBlocked    ProductionState = "blocked"
	StateLowSoon    ProductionState = "low_soon"
	StateBuildable  ProductionState = "buildable"
)

// ActionBucket is the coarse planning-view taxonomy. It is a projection of
// the canonical ProductionState, never an independently computed label, so
// the two can't drift apart.
type ActionBucket string

const (
	BucketBuildUrgent ActionBucket = "BUILD_URGENT"
	BucketBuildSoon   ActionBucket = "BUILD_SOON"
	BucketAdequate    ActionBucket = "ADEQUATE"
	BucketNoDemand    ActionBucket = "NO_DEMAND"
)

type RecommendedAction string

const (
	ActionBuild    RecommendedAction = "build"
	ActionSchedule RecommendedAction = "schedule_build"
	ActionRequest  RecommendedAction = "request_parts"
	ActionNone     RecommendedAction = "none"
)

// ProductionStatus is the derived decision record for one finished good.
type ProductionStatus struct {
	FinishedGoodSKU string            `json:"finished_good_sku"`
	State           ProductionState   `json:"state"`
	Bucket          ActionBucket      `json:"bucket"`
	DaysOfStock     int64             `json:"days_of_stock"`
	BuildableUnits  int64             `json:"buildable_units"`
	Action          RecommendedAction `json:"action"`
	RecommendedQty  int64             `json:"recommended_qty"`
	ComponentSKU    string            `json:"component_sku,omitempty"`
}

// ClassifyProduction assigns one of the four production states, evaluated in
// priority order (first match wins):
//
//  1. out_of_stock — no finished stock and nothing buildable
//  2. blocked      — nothing buildable, finished stock remains
//  3. low_soon     — under seven days of stock at the current demand rate
//  4. buildable    — everything else
//
// avgDailyDemand30 is the 30-day average used to size scheduled builds; moq
// is the limiting component's minimum order quantity (zero when unknown).
// A buildability marked Undefined cannot be classified and returns
// ErrUndefinedBuildability.
func ClassifyProduction(
	b Buildability,
	currentStock decimal.Decimal,
	dailyDemand decimal.Decimal,
	avgDailyDemand30 decimal.Decimal,
	moq int64,
) (ProductionStatus, error) {
	if b.Undefined {
		return ProductionStatus{}, fmt.Errorf("%s: %w", b.FinishedGoodSKU, ErrUndefinedBuildability)
	}
	if currentStock.Sign() < 0 {
		return ProductionStatus{}, fmt.Errorf("%s: current stock %s: %w", b.FinishedGoodSKU, currentStock, ErrNegativeStock)
	}
	if dailyDemand.Sign() < 0 {
		return ProductionStatus{}, fmt.Errorf("%s: daily demand %s: %w", b.FinishedGoodSKU, dailyDemand, ErrNegativeDemand)
	}

	status := ProductionStatus{
		FinishedGoodSKU: b.FinishedGoodSKU,
		BuildableUnits:  b.BuildableUnits,
	}

	totalAvailable := currentStock.Add(decimal.NewFromInt(b.BuildableUnits))
	if dailyDemand.Sign() > 0 {
		status.DaysOfStock = totalAvailable.Div(dailyDemand).Floor().IntPart()
	} else {
		status.DaysOfStock = InfiniteCoverageDays
	}

	switch {
	case currentStock.IsZero() && b.BuildableUnits == 0:
		status.State = StateOutOfStock
	case b.BuildableUnits == 0:
		status.State = StateBlocked
	case status.DaysOfStock < 7:
		status.State = StateLowSoon
	default:
		status.State = StateBuildable
	}
	status.Bucket = bucketFor(status.State, dailyDemand.IsZero())

	status.Action, status.RecommendedQty, status.ComponentSKU =
		recommend(b, status.State, currentStock, avgDailyDemand30, moq)

	return status, nil
}

func bucketFor(state ProductionState, noDemand bool) ActionBucket {
	// No action is meaningful without demand, whatever the stock picture.
	if noDemand {
		return BucketNoDemand
	}
	switch state {
	case StateOutOfStock, StateBlocked:
		return BucketBuildUrgent
	case StateLowSoon:
		return BucketBuildSoon
	default:
		return BucketAdequate
	}
}

func recommend(
	b Buildability,
	state ProductionState,
	currentStock decimal.Decimal,
	avgDailyDemand30 decimal.Decimal,
	moq int64,
) (RecommendedAction, int64, string) {
	switch state {
	case StateBuildable:
		// Build up to half the current finished stock, capped by what the
		// components allow; an empty shelf falls back to everything buildable.
		qty := currentStock.Mul(decimal.NewFromFloat(0.5)).Ceil().IntPart()
		if qty > b.BuildableUnits {
			qty = b.BuildableUnits
		}
		if qty == 0 {
			qty = b.BuildableUnits
		}
		return ActionBuild, qty, ""

	case StateLowSoon:
		// A week of average demand, capped by buildable units, never less
		// than one.
		base := b.BuildableUnits
		if base == 0 {
			base = 1
		}
		qty := avgDailyDemand30.Mul(decimal.NewFromInt(7)).Ceil().IntPart()
		if qty > base {
			qty = base
		}
		if qty < 1 {
			qty = 1
		}
		return ActionSchedule, qty, ""

	case StateBlocked:
		return requestParts(b, moq)

	default: // StateOutOfStock
		if b.LimitingComponentSKU == "" {
			return ActionNone, 0, ""
		}
		return requestParts(b, moq)
	}
}

// requestParts sizes a purchase request for the limiting component: one and a
// half times the shortfall, never below the vendor MOQ.
func requestParts(b Buildability, moq int64) (RecommendedAction, int64, string) {
	qty := moq
	if sf := b.ShortfallFor(b.LimitingComponentSKU); sf != nil {
		need := sf.Shortfall.Mul(decimal.NewFromFloat(1.5)).Ceil().IntPart()
		if need > qty {
			qty = need
		}
	}
	return ActionRequest, qty, b.LimitingComponentSKU
}
