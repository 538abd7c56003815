package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/freshmart/grocery-api/internal/core/service"
	"github.com/freshmart/grocery-api/internal/port"
)

// NewRouter wires the HTTP surface. limiter may be nil when no Redis
// instance is configured; every other middleware is always on.
func NewRouter(
	s *Server,
	auth *service.AuthService,
	limiter port.RateLimiter,
	corsOrigins []string,
	logger zerolog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(RecoverMiddleware(logger))
	r.Use(CORSMiddleware(corsOrigins))
	if limiter != nil {
		r.Use(RateLimitMiddleware(limiter, logger))
	}
	r.Use(AuthMiddleware(auth))

	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.Register)
			r.Post("/login", s.Login)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.ListProducts)
			r.Get("/{id}", s.GetProduct)
			// Catalog writes need an authenticated actor.
			r.With(RequireActor).Post("/", s.CreateProduct)
			r.With(RequireActor).Patch("/{id}", s.UpdateProduct)
			r.With(RequireActor).Delete("/{id}", s.DeleteProduct)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", s.ListInventory)
			r.With(RequireActor).Put("/{id}", s.UpdateInventory)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.CreateOrder)
			r.Get("/{id}", s.GetOrder)
			r.Patch("/{id}/status", s.UpdateOrderStatus)
			r.Delete("/{id}", s.CancelOrder)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.ListCustomers)
			r.Get("/{id}", s.GetCustomer)
			r.With(RequireActor).Patch("/{id}", s.UpdateCustomer)
			r.With(RequireActor).Delete("/{id}", s.DeleteCustomer)
		})
	})

	return r
}
