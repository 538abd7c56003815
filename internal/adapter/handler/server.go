package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/freshmart/grocery-api/internal/core/service"
	"github.com/freshmart/grocery-api/internal/port"
)

const serviceVersion = "2.0.0"

type Server struct {
	catalog   *service.CatalogService
	customers *service.CustomerService
	orders    *service.OrderService
	auth      *service.AuthService
	stats     port.StatsRepository

	logger      zerolog.Logger
	environment string
	production  bool
}

func NewServer(
	catalog *service.CatalogService,
	customers *service.CustomerService,
	orders *service.OrderService,
	auth *service.AuthService,
	stats port.StatsRepository,
	logger zerolog.Logger,
	environment string,
	production bool,
) *Server {
	return &Server{
		catalog:     catalog,
		customers:   customers,
		orders:      orders,
		auth:        auth,
		stats:       stats,
		logger:      logger.With().Str("component", "http").Logger(),
		environment: environment,
		production:  production,
	}
}

func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":     "Welcome to the Grocery Store API",
		"version":     serviceVersion,
		"environment": s.environment,
		"database":    "MySQL",
	})
}

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Stats(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable,
			errorResponse{Detail: "service unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"environment":     s.environment,
		"database":        "connected",
		"products_count":  stats.Products,
		"orders_count":    stats.Orders,
		"customers_count": stats.Customers,
	})
}
