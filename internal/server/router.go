// Package server assembles the HTTP router for the inventory page and,
// optionally, the stub products resource.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/web"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Options configures NewRouter.
type Options struct {
	Logger *slog.Logger

	// Backend is what the inventory page talks to.
	Backend repository.ProductRepository

	// Stub, when set, is served as /api/products.
	Stub           *repository.InMemoryProductRepository
	AllowedOrigins []string

	RequestTimeout time.Duration

	// SessionTTL is how long an idle page is kept.
	SessionTTL time.Duration
}

// NewRouter builds the application router. It also returns the page
// sessions so callers can inspect them.
func NewRouter(opts Options) (http.Handler, *web.Sessions) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	r.Get("/health", handlers.NewHealthHandler(log, Version).ServeHTTP)

	sessions := web.NewSessions(opts.Backend, log, opts.SessionTTL)
	web.NewHandler(sessions, log).Register(r)

	if opts.Stub != nil {
		origins := opts.AllowedOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		productHandler := handlers.NewProductHandler(service.NewProductService(opts.Stub), log)

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   origins,
				AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Content-Type"},
				AllowCredentials: false,
				MaxAge:           300,
			}))
			r.Route("/products", productHandler.Register)
		})
	}

	return r, sessions
}
