package routes

import (
	"net/http"
	"time"

	"uiforge/uiforge/controllers"
	"uiforge/uiforge/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const RequestTimeout = 60 * time.Second

type Controllers struct {
	Health   *controllers.HealthController
	Auth     *controllers.AuthController
	Sessions *controllers.SessionController
	AI       *controllers.AIController
}

func NewRouter(c Controllers, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(RequestTimeout))
		api.Mount("/api/auth", AuthRoutes(c.Auth))
		api.Mount("/api/sessions", SessionRoutes(c.Sessions, c.Auth))
	})
	r.Mount("/api/ai", AIRoutes(c.AI, c.Auth, allowedOrigins, RequestTimeout))
	r.Mount("/", HealthRoutes(c.Health))
	return r
}
