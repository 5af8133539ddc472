package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"murp/internal/storage"
)

type VendorProvider interface {
	GetVendors(ctx context.Context) ([]storage.Vendor, error)
}

func GetVendorsAdmin(log *slog.Logger, provider VendorProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.get.GetVendorsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		vendors, err := provider.GetVendors(ctx)
		if err != nil {
			log.Error("failed to get vendors", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, vendors)
	}
}
