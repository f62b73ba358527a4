package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cadotvn/cadot-user/internal/api/handlers"
	"github.com/cadotvn/cadot-user/internal/auth"
	"github.com/cadotvn/cadot-user/internal/config"
	"github.com/cadotvn/cadot-user/internal/services"
	"github.com/cadotvn/cadot-user/internal/store"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, userService services.UserServiceProvider, tokens *auth.TokenService, users store.UserStore) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	secureCookies := cfg.Environment == "production"
	authHandler := handlers.NewAuthHandler(userService, tokens, cfg.AccessTokenLifetime, secureCookies)
	userHandler := handlers.NewUserHandler(userService)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/login/access-token", authHandler.AccessToken)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)

			// Everything below requires a resolved bearer token.
			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(tokens, users))
				r.Get("/me", userHandler.GetMe)
				r.Put("/me", userHandler.UpdateMe)
				r.Put("/me/password", userHandler.ChangeMyPassword)
				r.Get("/{id}", userHandler.Get)
			})
		})
	})

	return r
}
