package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"murp/internal/storage"
)

type VendorSaver interface {
	SaveVendor(ctx context.Context, v storage.Vendor) (int64, error)
}

func SaveVendorAdmin(log *slog.Logger, saver VendorSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.save.SaveVendorAdmin"

		var vendor storage.Vendor
		if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if vendor.Name == "" {
			http.Error(w, "vendor name is required", http.StatusBadRequest)
			return
		}
		if vendor.LeadTimeDays < 0 {
			http.Error(w, "lead_time_days cannot be negative", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.SaveVendor(ctx, vendor)
		if err != nil {
			log.Error("failed to save vendor", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]int64{"id": id})
	}
}
