package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/app"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/routes/middlewares"
)

// Wire builds the handler tree. Background work started for it stops when
// ctx is done.
func Wire(ctx context.Context, app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	if len(app.CORSOrigins) > 0 {
		root.Use(cors.Handler(cors.Options{
			AllowedOrigins:   app.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	root.Mount("/api", apiRouter(ctx, app))
	root.Mount("/", servePublicFiles(app.PublicDir))

	return root
}

func apiRouter(ctx context.Context, app app.App) http.Handler {
	api := chi.NewRouter()

	api.Route("/quiz", func(r chi.Router) {
		r.Use(middlewares.Visitor)

		r.Get("/config", GetQuizConfig(app))

		r.Post("/session", InitSession(app))
		r.Get("/session", GetSession(app))
		r.Delete("/session", ClearSession(app))

		r.Put("/answers/{questionId}", RecordAnswer(app))

		r.Post("/submit", SubmitQuiz(ctx, app))
	})

	return api
}

func servePublicFiles(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}
