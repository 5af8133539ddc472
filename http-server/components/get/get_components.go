package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"murp/internal/storage"
	"murp/internal/storage/mysql"
)

type ComponentProvider interface {
	GetComponents(ctx context.Context) ([]storage.ComponentWithStock, error)
	GetComponent(ctx context.Context, sku string) (*storage.Component, error)
	GetFinishedGoods(ctx context.Context) ([]storage.FinishedGood, error)
}

func GetComponents(log *slog.Logger, provider ComponentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.components.get.GetComponents"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		components, err := provider.GetComponents(ctx)
		if err != nil {
			log.Error("failed to get components", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, components)
	}
}

func GetComponent(log *slog.Logger, provider ComponentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.components.get.GetComponent"

		sku := chi.URLParam(r, "sku")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		component, err := provider.GetComponent(ctx, sku)
		if err != nil {
			if errors.Is(err, mysql.ErrComponentNotFound) {
				http.Error(w, "Component not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get component", slog.String("op", op), slog.String("sku", sku), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, component)
	}
}

func GetFinishedGoods(log *slog.Logger, provider ComponentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.components.get.GetFinishedGoods"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		goods, err := provider.GetFinishedGoods(ctx)
		if err != nil {
			log.Error("failed to get finished goods", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, goods)
	}
}
