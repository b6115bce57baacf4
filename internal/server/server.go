// Package server exposes the service layer over a thin JSON/HTTP surface.
// Handlers translate requests into transfer models, invoke a service, and
// map the domain error kind onto HTTP status codes; no business rules live
// here.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/service"
)

// Server routes HTTP requests to the customer and product services.
type Server struct {
	customers *service.CustomerService
	products  *service.ProductService
}

// New creates a Server over the given services.
func New(customers *service.CustomerService, products *service.ProductService) *Server {
	return &Server{customers: customers, products: products}
}

// Router builds the HTTP handler: API routes, health check, and metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(requestMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.listCustomers)
			r.Post("/", s.addCustomer)
			r.Get("/{id}", s.getCustomer)
			r.Put("/{id}", s.updateCustomer)
			r.Delete("/{id}", s.deleteCustomer)
			r.Get("/{id}/receipts", s.customerReceipts)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Post("/", s.addProduct)
			r.Get("/{id}", s.getProduct)
			r.Put("/{id}", s.updateProduct)
			r.Delete("/{id}", s.deleteProduct)
			r.Get("/{id}/customers", s.customersByProduct)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.addCategory)
			r.Put("/{id}", s.updateCategory)
			r.Delete("/{id}", s.removeCategory)
		})
	})

	return r
}

// writeJSON encodes v with the given status. A nil v writes the status only.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

// writeError maps the domain error kind onto HTTP status codes: invalid
// input → 422, not found → 404, anything else → 500.
func writeError(w http.ResponseWriter, err error) {
	var derr *entity.Error
	if errors.As(err, &derr) {
		status := http.StatusInternalServerError
		switch derr.Code {
		case entity.CodeInvalidInput:
			status = http.StatusUnprocessableEntity
		case entity.CodeNotFound:
			status = http.StatusNotFound
		}
		writeJSON(w, status, derr)
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
