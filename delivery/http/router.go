package http

import (
	"net/http"

	"procurement-service/pkg/api"
	"procurement-service/pkg/jwt"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router wires every handler of the service onto a chi mux
type Router struct {
	IngredientHandler *IngredientHandler
	CatalogHandler    *CatalogHandler
	InquiryHandler    *InquiryHandler
	QuoteHandler      *QuoteHandler
	OrderHandler      *OrderHandler
	ProfileHandler    *ProfileHandler
	HealthHandler     *HealthHandler
	JWTClient         jwt.JWTClient
	Metrics           *metrics.Metrics
	AppLogger         logger.LoggerInterface
}

func (r *Router) SetupRoutes() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.Heartbeat("/ping"))
	router.Use(LoggingMiddleware(r.AppLogger))
	if r.Metrics != nil {
		router.Use(r.Metrics.Middleware)
		router.Method(http.MethodGet, "/metrics", r.Metrics.Handler())
	}

	router.Get("/health", r.HealthHandler.HealthCheckHandler)

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(JWTMiddleware(r.JWTClient, r.AppLogger, api.NewWithLogger(r.AppLogger)))

		v1.Route("/ingredients", func(ingredients chi.Router) {
			ingredients.Post("/", r.IngredientHandler.CreateHandler)
			ingredients.Get("/", r.IngredientHandler.ListHandler)
			ingredients.Get("/{id}", r.IngredientHandler.GetByIDHandler)
			ingredients.Put("/{id}", r.IngredientHandler.UpdateHandler)
			ingredients.Delete("/{id}", r.IngredientHandler.DeleteHandler)
			ingredients.Get("/{id}/suppliers", r.IngredientHandler.SuppliersHandler)
		})
		v1.Route("/catalog", func(catalog chi.Router) {
			catalog.Post("/", r.CatalogHandler.AddHandler)
			catalog.Patch("/{id}", r.CatalogHandler.UpdateHandler)
			catalog.Delete("/{id}", r.CatalogHandler.DeleteHandler)
			catalog.Get("/suppliers/{supplierID}", r.CatalogHandler.ListBySupplierHandler)
			catalog.Get("/ingredients/{ingredientID}", r.CatalogHandler.ListByIngredientHandler)
		})
		v1.Route("/inquiries", func(inquiries chi.Router) {
			inquiries.Post("/", r.InquiryHandler.CreateHandler)
			inquiries.Get("/", r.InquiryHandler.ListHandler)
			inquiries.Get("/{id}", r.InquiryHandler.GetByIDHandler)
			inquiries.Patch("/{id}/status", r.InquiryHandler.UpdateStatusHandler)
			inquiries.Post("/{id}/quote", r.QuoteHandler.SubmitHandler)
		})
		v1.Route("/quotes", func(quotes chi.Router) {
			quotes.Get("/", r.QuoteHandler.ListHandler)
			quotes.Get("/{id}", r.QuoteHandler.GetByIDHandler)
			quotes.Delete("/{id}", r.QuoteHandler.DeleteHandler)
			quotes.Post("/{id}/cancel", r.QuoteHandler.CancelHandler)
			quotes.Post("/{id}/accept", r.QuoteHandler.AcceptHandler)
		})
		v1.Route("/orders", func(orders chi.Router) {
			orders.Get("/", r.OrderHandler.ListHandler)
			orders.Get("/{id}", r.OrderHandler.GetByIDHandler)
			orders.Patch("/{id}/status", r.OrderHandler.UpdateStatusHandler)
			orders.Get("/{id}/export", r.OrderHandler.ExportHandler)
		})
		v1.Get("/profile", r.ProfileHandler.MeHandler)
		v1.Put("/profiles/{userID}", r.ProfileHandler.UpdateHandler)
	})
	return router
}
