package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"murp/internal/storage/mysql"
)

type ReferenceUpdater interface {
	UpdateComponentMOQ(ctx context.Context, sku string, moq int64) error
	UpdateComponentLeadTime(ctx context.Context, sku string, leadTimeDays int) error
}

func UpdateComponentMOQ(log *slog.Logger, update ReferenceUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.update.UpdateComponentMOQ"

		sku := chi.URLParam(r, "sku")

		var req struct {
			MOQ int64 `json:"moq"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.MOQ < 0 {
			http.Error(w, "moq cannot be negative", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := update.UpdateComponentMOQ(ctx, sku, req.MOQ); err != nil {
			if errors.Is(err, mysql.ErrComponentNotFound) {
				http.Error(w, "Component not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update moq", slog.String("op", op), slog.String("sku", sku), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func UpdateComponentLeadTime(log *slog.Logger, update ReferenceUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.update.UpdateComponentLeadTime"

		sku := chi.URLParam(r, "sku")

		var req struct {
			LeadTimeDays int `json:"lead_time_days"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.LeadTimeDays < 0 {
			http.Error(w, "lead_time_days cannot be negative", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := update.UpdateComponentLeadTime(ctx, sku, req.LeadTimeDays); err != nil {
			if errors.Is(err, mysql.ErrComponentNotFound) {
				http.Error(w, "Component not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update lead time", slog.String("op", op), slog.String("sku", sku), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
