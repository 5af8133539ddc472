package planner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"murp/internal/planning"
	"murp/internal/storage"
)

// DefaultRequirementDays is the fallback horizon for demand rows with a
// missing or non-positive days-until-needed.
const DefaultRequirementDays = 7

const forecastWindowDays = 30

type PlannerStorage interface {
	GetFinishedGoods(ctx context.Context) ([]storage.FinishedGood, error)
	GetBOMLines(ctx context.Context) ([]storage.BOMLine, error)
	GetStockLevels(ctx context.Context) (map[string]storage.StockLevel, error)
	GetDemandRequirements(ctx context.Context) ([]storage.DemandRequirement, error)
	GetForecastBuckets(ctx context.Context, days int) ([]storage.ForecastBucket, error)
	GetComponentMap(ctx context.Context) (map[string]storage.Component, error)
}

type Service struct {
	storage         PlannerStorage
	targetBatchDays int
}

func New(storage PlannerStorage, targetBatchDays int) *Service {
	if targetBatchDays <= 0 {
		targetBatchDays = 30
	}
	return &Service{storage: storage, targetBatchDays: targetBatchDays}
}

// PlanResult is one full planning pass over a single snapshot.
type PlanResult struct {
	SnapshotID     uuid.UUID                    `json:"snapshot_id"`
	Today          time.Time                    `json:"today"`
	Buildability   []planning.Buildability      `json:"buildability"`
	Statuses       []planning.ProductionStatus  `json:"statuses"`
	Shortages      []planning.ComponentShortage `json:"shortages"`
	UndefinedGoods []string                     `json:"undefined_goods"`
}

// BuildSnapshot loads all planning inputs in parallel and freezes them into
// one immutable snapshot. today is supplied by the caller so the plan stays
// deterministic and testable.
func (s *Service) BuildSnapshot(ctx context.Context, today time.Time) (*planning.Snapshot, error) {
	const op = "service.planner.BuildSnapshot"

	var (
		goods      []storage.FinishedGood
		lines      []storage.BOMLine
		stock      map[string]storage.StockLevel
		reqs       []storage.DemandRequirement
		buckets    []storage.ForecastBucket
		components map[string]storage.Component
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		goods, err = s.storage.GetFinishedGoods(gCtx)
		if err != nil {
			return fmt.Errorf("finished goods: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		lines, err = s.storage.GetBOMLines(gCtx)
		if err != nil {
			return fmt.Errorf("bom lines: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stock, err = s.storage.GetStockLevels(gCtx)
		if err != nil {
			return fmt.Errorf("stock levels: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reqs, err = s.storage.GetDemandRequirements(gCtx)
		if err != nil {
			return fmt.Errorf("demand: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		buckets, err = s.storage.GetForecastBuckets(gCtx, forecastWindowDays)
		if err != nil {
			return fmt.Errorf("forecast: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		components, err = s.storage.GetComponentMap(gCtx)
		if err != nil {
			return fmt.Errorf("components: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	demand := make(map[string]decimal.Decimal, len(reqs))
	for _, req := range reqs {
		demand[req.SKU] = demand[req.SKU].Add(dailyRate(req))
	}

	forecast := make(map[string][]storage.ForecastBucket)
	for _, b := range buckets {
		forecast[b.SKU] = append(forecast[b.SKU], b)
	}

	return planning.NewSnapshot(today, goods, lines, stock, demand, forecast, components), nil
}

// dailyRate converts a requirement row into a daily consumption rate:
// total / daysUntilNeeded, defaulting the horizon to a week when the row
// carries none.
func dailyRate(req storage.DemandRequirement) decimal.Decimal {
	days := req.DaysUntilNeeded
	if days <= 0 {
		days = DefaultRequirementDays
	}
	return req.TotalRequirement.Div(decimal.NewFromInt(int64(days)))
}

// PlanProducts computes buildability for every finished good in the snapshot
// (fanned out, results never interact), then — only after the fan-out has
// fully joined — aggregates shortages and classifies each product.
func (s *Service) PlanProducts(ctx context.Context, snap *planning.Snapshot) (*PlanResult, error) {
	const op = "service.planner.PlanProducts"

	goods := snap.FinishedGoods()
	results := make([]planning.Buildability, len(goods))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, sku := range goods {
		i, sku := i, sku
		g.Go(func() error {
			target := snap.DemandFor(sku).Mul(decimal.NewFromInt(int64(s.targetBatchDays)))
			b, err := planning.ComputeBuildability(sku, snap.LinesFor(sku), snap.Stock, target)
			if err != nil {
				return err
			}
			results[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	plan := &PlanResult{
		SnapshotID:   snap.ID,
		Today:        snap.Today,
		Buildability: results,
		Shortages:    planning.AggregateShortages(results),
	}

	for _, b := range results {
		if b.Undefined {
			plan.UndefinedGoods = append(plan.UndefinedGoods, b.FinishedGoodSKU)
			continue
		}

		demand := snap.DemandFor(b.FinishedGoodSKU)
		status, err := planning.ClassifyProduction(
			b,
			snap.StockFor(b.FinishedGoodSKU).OnHand,
			demand,
			s.avgDailyDemand30(snap, b.FinishedGoodSKU, demand),
			s.limitingMOQ(snap, b),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		plan.Statuses = append(plan.Statuses, status)
	}

	return plan, nil
}

// ProjectComponentCoverage projects one component over the horizon; a zero
// horizon means the default 13 weeks.
func (s *Service) ProjectComponentCoverage(snap *planning.Snapshot, sku string, horizonWeeks int) (planning.Coverage, error) {
	if horizonWeeks == 0 {
		horizonWeeks = planning.DefaultHorizonWeeks
	}
	return planning.ProjectCoverage(sku, snap.StockFor(sku), snap.DemandFor(sku), horizonWeeks, snap.Today)
}

// ProjectAllCoverage fans the projection out across every component in the
// BOM graph. Projections are independent, order of the output follows the
// sorted component list.
func (s *Service) ProjectAllCoverage(ctx context.Context, snap *planning.Snapshot, horizonWeeks int) ([]planning.Coverage, error) {
	const op = "service.planner.ProjectAllCoverage"

	skus := snap.ComponentSKUs()
	coverages := make([]planning.Coverage, len(skus))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, sku := range skus {
		i, sku := i, sku
		g.Go(func() error {
			cov, err := s.ProjectComponentCoverage(snap, sku, horizonWeeks)
			if err != nil {
				return err
			}
			coverages[i] = cov
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return coverages, nil
}

// avgDailyDemand30 averages the forecast window when one exists, otherwise
// the flat daily rate stands in.
func (s *Service) avgDailyDemand30(snap *planning.Snapshot, sku string, fallback decimal.Decimal) decimal.Decimal {
	buckets := snap.Forecast[sku]
	if len(buckets) == 0 {
		return fallback
	}

	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Quantity)
	}
	return total.Div(decimal.NewFromInt(forecastWindowDays))
}

func (s *Service) limitingMOQ(snap *planning.Snapshot, b planning.Buildability) int64 {
	if comp, ok := snap.Components[b.LimitingComponentSKU]; ok {
		return comp.MOQ
	}
	return 0
}
