package routes

import (
	"net/http"
	"time"

	"github.com/babyfoot-league/server/handlers"
	"github.com/babyfoot-league/server/middleware"
	"github.com/babyfoot-league/server/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","timestamp":"` + time.Now().UTC().Format(time.RFC3339) + `"}`))
	})

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.RegisterHandler)
		r.Post("/login", authHandler.LoginHandler)
		r.Get("/admin-exists", authHandler.AdminExistsHandler)
		r.Post("/init-admin", authHandler.InitAdminHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", authHandler.MeHandler)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/users", userHandler.ListHandler)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/available", tournamentHandler.ListAvailableHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/standings", tournamentHandler.StandingsHandler)
		r.Get("/{tournamentID}/teams", teamHandler.ListByTournamentHandler)
		r.Get("/{tournamentID}/matches", matchHandler.ListByTournamentHandler)

		r.Post("/{tournamentID}/register", teamHandler.RegisterHandler)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Post("/", tournamentHandler.CreateHandler)
			r.Put("/{tournamentID}", tournamentHandler.UpdateHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)
			r.Post("/{tournamentID}/banner", tournamentHandler.UploadBannerHandler)
			r.Post("/{tournamentID}/teams", teamHandler.CreateHandler)
			r.Post("/{tournamentID}/matches/generate", matchHandler.GenerateHandler)
			r.Delete("/{tournamentID}/matches", matchHandler.ResetHandler)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/{teamID}/leave", teamHandler.LeaveHandler)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Put("/{teamID}", teamHandler.UpdateHandler)
			r.Delete("/{teamID}", teamHandler.DeleteHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/{matchID}", matchHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Put("/{matchID}", matchHandler.UpdateHandler)
		})
	})
}
