package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/inventory-insights/docs"
	"github.com/rogerio-castellano/inventory-insights/internal/http/handlers"
	mw "github.com/rogerio-castellano/inventory-insights/internal/http/middleware"
	"github.com/rogerio-castellano/inventory-insights/internal/telemetry"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(mw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", telemetry.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimitMiddleware)

		r.Post("/login", handlers.LoginHandler)

		r.Get("/products", handlers.FilterProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Get("/products/{id}/transfers", handlers.GetTransfersHandler)
		r.Get("/products/{id}/transfers/export", handlers.ExportTransfersHandler)
		r.Get("/dashboard/summary", handlers.GetDashboardSummaryHandler)
		r.Get("/suppliers", handlers.ListSuppliersHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware)

			r.Post("/products", handlers.CreateProductHandler)
			r.Put("/products/{id}", handlers.UpdateProductHandler)
			r.Post("/products/import", handlers.ImportProductsHandler)
			r.Post("/products/{id}/transfer", handlers.TransferProductHandler)
			r.Post("/products/{id}/image", handlers.GenerateImageHandler)
			r.Post("/products/{id}/purchase-orders", handlers.DispatchPurchaseOrderHandler)
			r.Post("/suppliers/{id}/purchase-orders", handlers.DispatchSupplierOrderHandler)

			r.Get("/insights", handlers.GetInsightsHandler)
			r.Post("/insights/refresh", handlers.RefreshInsightsHandler)
			r.Put("/settings/mode", handlers.SetModeHandler)

			r.Get("/notifications", handlers.GetNotificationsHandler)
			r.Post("/notifications/read", handlers.MarkNotificationsReadHandler)
			r.Delete("/notifications", handlers.ClearNotificationsHandler)
		})
	})

	return r
}
