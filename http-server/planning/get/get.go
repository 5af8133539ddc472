package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"murp/internal/planning"
	"murp/internal/service/planner"
)

type PlanProvider interface {
	BuildSnapshot(ctx context.Context, today time.Time) (*planning.Snapshot, error)
	PlanProducts(ctx context.Context, snap *planning.Snapshot) (*planner.PlanResult, error)
	ProjectComponentCoverage(snap *planning.Snapshot, sku string, horizonWeeks int) (planning.Coverage, error)
	ProjectAllCoverage(ctx context.Context, snap *planning.Snapshot, horizonWeeks int) ([]planning.Coverage, error)
}

type BuildabilityResp struct {
	SnapshotID     string                  `json:"snapshot_id"`
	Buildability   []planning.Buildability `json:"buildability"`
	UndefinedGoods []string                `json:"undefined_goods,omitempty"`
}

// GetBuildability returns buildable units per finished good; ?sku= narrows
// the response to one product.
func GetBuildability(log *slog.Logger, provider PlanProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.get.GetBuildability"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		plan, ok := runPlan(ctx, w, log, op, provider)
		if !ok {
			return
		}

		resp := BuildabilityResp{
			SnapshotID:     plan.SnapshotID.String(),
			UndefinedGoods: plan.UndefinedGoods,
		}

		if sku := r.URL.Query().Get("sku"); sku != "" {
			for _, b := range plan.Buildability {
				if b.FinishedGoodSKU == sku {
					resp.Buildability = []planning.Buildability{b}
					break
				}
			}
			if resp.Buildability == nil {
				http.Error(w, "Unknown finished good", http.StatusNotFound)
				return
			}
		} else {
			resp.Buildability = plan.Buildability
		}

		render.JSON(w, r, resp)
	}
}

// GetShortages returns component shortages ranked by how many products each
// component blocks.
func GetShortages(log *slog.Logger, provider PlanProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.get.GetShortages"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		plan, ok := runPlan(ctx, w, log, op, provider)
		if !ok {
			return
		}

		render.JSON(w, r, map[string]any{
			"snapshot_id": plan.SnapshotID.String(),
			"shortages":   plan.Shortages,
		})
	}
}

// GetProductionStatus returns the four-state classification plus recommended
// action for every finished good.
func GetProductionStatus(log *slog.Logger, provider PlanProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.get.GetProductionStatus"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		plan, ok := runPlan(ctx, w, log, op, provider)
		if !ok {
			return
		}

		render.JSON(w, r, map[string]any{
			"snapshot_id":     plan.SnapshotID.String(),
			"statuses":        plan.Statuses,
			"undefined_goods": plan.UndefinedGoods,
		})
	}
}

// GetCoverage returns the week-by-week projection for one component,
// ?horizon_weeks= overrides the 13-week default.
func GetCoverage(log *slog.Logger, provider PlanProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.get.GetCoverage"

		sku := chi.URLParam(r, "sku")

		horizonWeeks := 0
		if raw := r.URL.Query().Get("horizon_weeks"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "Invalid horizon_weeks", http.StatusBadRequest)
				return
			}
			horizonWeeks = parsed
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		snap, err := provider.BuildSnapshot(ctx, time.Now())
		if err != nil {
			log.Error("failed to build snapshot", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		if _, known := snap.Components[sku]; !known {
			http.Error(w, "Unknown component", http.StatusNotFound)
			return
		}

		cov, err := provider.ProjectComponentCoverage(snap, sku, horizonWeeks)
		if err != nil {
			if errors.Is(err, planning.ErrInvalidHorizon) {
				http.Error(w, "horizon_weeks must be at least 1", http.StatusBadRequest)
				return
			}
			log.Error("failed to project coverage", slog.String("op", op), slog.String("sku", sku), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, cov)
	}
}

// GetAllCoverage projects every component in the BOM graph at once, the
// dashboard's heatmap view.
func GetAllCoverage(log *slog.Logger, provider PlanProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.get.GetAllCoverage"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		snap, err := provider.BuildSnapshot(ctx, time.Now())
		if err != nil {
			log.Error("failed to build snapshot", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		covs, err := provider.ProjectAllCoverage(ctx, snap, 0)
		if err != nil {
			log.Error("failed to project coverage", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]any{
			"snapshot_id": snap.ID.String(),
			"coverage":    covs,
		})
	}
}

// runPlan builds a fresh snapshot and runs the full product plan, writing the
// HTTP error itself when something fails.
func runPlan(ctx context.Context, w http.ResponseWriter, log *slog.Logger, op string, provider PlanProvider) (*planner.PlanResult, bool) {
	snap, err := provider.BuildSnapshot(ctx, time.Now())
	if err != nil {
		log.Error("failed to build snapshot", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return nil, false
	}

	plan, err := provider.PlanProducts(ctx, snap)
	if err != nil {
		if errors.Is(err, planning.ErrInvalidQtyPer) || errors.Is(err, planning.ErrNegativeStock) || errors.Is(err, planning.ErrNegativeDemand) {
			log.Error("invalid planning data", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid planning data: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		log.Error("failed to plan products", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return nil, false
	}

	return plan, true
}
