package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-results/docs"
	"github.com/Dosada05/tournament-results/handlers"
	"github.com/Dosada05/tournament-results/middleware"
	"github.com/Dosada05/tournament-results/models"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Team      *handlers.TeamHandler
	Match     *handlers.MatchHandler
	Schedule  *handlers.ScheduleHandler
	Sport     *handlers.SportHandler
	Standings *handlers.StandingsHandler
	WebSocket *handlers.WebSocketHandler
}

type Options struct {
	AllowedOrigins []string
	TokenParser    middleware.TokenParser
	Logger         *slog.Logger
}

func SetupRoutes(r chi.Router, h Handlers, opts Options) {
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Websocket-соединения живут дольше таймаута запросов.
	r.Get("/ws/standings", h.WebSocket.ServeWs)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Post("/auth/login", h.Auth.Login)

		r.Get("/teams", h.Team.ListTeams)
		r.Get("/teams/{name}", h.Team.GetTeam)
		r.Get("/matches", h.Match.ListMatches)
		r.Get("/sports", h.Sport.ListSports)
		r.Get("/sports/{sport}/placement", h.Sport.GetPlacement)
		r.Get("/standings", h.Standings.GetStandings)
		r.Get("/report", h.Standings.GetReport)

		// Изменения только для администратора
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.TokenParser, opts.Logger))
			r.Use(middleware.Authorize(string(models.RoleAdmin)))

			r.Post("/teams", h.Team.CreateTeam)
			r.Post("/matches", h.Match.CreateMatch)
			r.Patch("/matches/{matchID}/score", h.Match.UpdateScore)
			r.Patch("/matches/{matchID}/status", h.Match.UpdateStatus)
			r.Post("/schedules", h.Schedule.GenerateSchedule)
			r.Post("/sports/{sport}/bracket", h.Sport.SeedBracket)
			r.Post("/sports/{sport}/bracket/advance", h.Sport.AdvanceBracket)
			r.Post("/standings/rebuild", h.Standings.RebuildStandings)
		})
	})
}
