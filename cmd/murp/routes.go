package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getadmin "murp/http-server/admin/get"
	saveadmin "murp/http-server/admin/save"
	upadmin "murp/http-server/admin/update"
	getcomponents "murp/http-server/components/get"
	generate_excel "murp/http-server/generate-report/generate-excel"
	getplanning "murp/http-server/planning/get"
	"murp/internal/config"
	"murp/internal/middleware/auth"
	"murp/internal/service/planner"
	"murp/internal/service/report"
	"murp/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, plannerService *planner.Service, reportService *report.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Reference data
	router.Get("/api/components", getcomponents.GetComponents(log, storage))
	router.Get("/api/components/{sku}", getcomponents.GetComponent(log, storage))
	router.Get("/api/finished-goods", getcomponents.GetFinishedGoods(log, storage))

	// Planning engine
	router.Get("/api/planning/buildability", getplanning.GetBuildability(log, plannerService))
	router.Get("/api/planning/shortages", getplanning.GetShortages(log, plannerService))
	router.Get("/api/planning/status", getplanning.GetProductionStatus(log, plannerService))
	router.Get("/api/planning/coverage", getplanning.GetAllCoverage(log, plannerService))
	router.Get("/api/planning/coverage/{sku}", getplanning.GetCoverage(log, plannerService))

	// Export
	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, reportService))

	// Reference-data maintenance
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Put("/components/{sku}/moq", upadmin.UpdateComponentMOQ(log, storage))
	adminRouter.Put("/components/{sku}/lead-time", upadmin.UpdateComponentLeadTime(log, storage))
	adminRouter.Get("/vendors", getadmin.GetVendorsAdmin(log, storage))
	adminRouter.Post("/vendors", saveadmin.SaveVendorAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
