package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/edurede/school-registry/internal/auth"
	"github.com/edurede/school-registry/internal/school"
	"github.com/edurede/school-registry/internal/transport/middleware"
	"github.com/edurede/school-registry/internal/transport/swagger"
	"github.com/edurede/school-registry/internal/user"
)

// RouterConfig carries the handler set and transport options for route
// registration.
type RouterConfig struct {
	DB             *sql.DB
	AuthHandler    *auth.Handler
	UserHandler    *user.Handler
	SchoolHandler  *school.Handler
	AllowedOrigins string
	OpenAPIPath    string
	Logger         *slog.Logger
}

// RegisterAllRoutes wires the complete wire surface. Paths are the original
// API's and must not change.
func RegisterAllRoutes(router *chi.Mux, cfg RouterConfig) {
	healthHandler := NewHealthHandler(cfg.DB)

	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(cfg.Logger))
	router.Use(middleware.RecoveryMiddleware(cfg.Logger))

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	if cfg.OpenAPIPath != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, cfg.OpenAPIPath)
		})
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Post("/register", cfg.AuthHandler.Register)
	router.Post("/login", cfg.AuthHandler.Login)

	// public read
	router.Get("/escolas", cfg.SchoolHandler.ListSchools)

	router.Group(func(pr chi.Router) {
		pr.Use(cfg.AuthHandler.AuthMiddleware)

		pr.Get("/users", cfg.UserHandler.ListUsers)
		pr.Put("/user/editar/{id}", cfg.UserHandler.UpdateUser)
		pr.Delete("/users/eliminar/{id}", cfg.UserHandler.DeleteUser)

		pr.Post("/escolas/adicionar", cfg.SchoolHandler.CreateSchool)
		pr.Put("/escolas/editar/{id}", cfg.SchoolHandler.UpdateSchool)
		pr.Delete("/escolas/eliminar/{id}", cfg.SchoolHandler.DeleteSchool)
	})
}
