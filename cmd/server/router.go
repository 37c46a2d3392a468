package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/mesto-api/internal/api"
	apiMiddleware "github.com/phrazzld/mesto-api/internal/api/middleware"
)

// requestTimeout bounds the time a handler may spend on one request.
const requestTimeout = 30 * time.Second

// setupRouter creates the router with middleware and every route of the API.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Trace-Id"},
		MaxAge:         300,
	}))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.NotFound)

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/signup", authHandler.Signup)
	r.Post("/signin", authHandler.Signin)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Get("/me", userHandler.Me)
			r.Patch("/me", userHandler.UpdateProfile)
			r.Patch("/me/avatar", userHandler.UpdateAvatar)
			r.Get("/{userId}", userHandler.GetByID)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.List)
			r.Post("/", cardHandler.Create)
			r.Delete("/{cardId}", cardHandler.Delete)
			r.Put("/{cardId}/likes", cardHandler.Like)
			r.Delete("/{cardId}/likes", cardHandler.Dislike)
		})
	})

	return r
}
