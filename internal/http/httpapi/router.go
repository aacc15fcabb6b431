package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"contentportal/internal/content"
	"contentportal/internal/http/handlers"
	"contentportal/internal/infra"
	"contentportal/internal/middleware"
)

func NewRouter(app *handlers.App, cfg infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(*app.Logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(
			middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
			middleware.Locale(content.LocalesWithDefault(cfg.DefaultLocale)),
		)

		r.Route("/api/content", func(r chi.Router) {
			r.Post("/script", app.CreateScript)
			r.Post("/image", app.CreateImage)
			r.Post("/sentiment", app.CreateSentiment)

			r.Route("/video", func(r chi.Router) {
				r.Post("/", app.CreateVideo)
				r.Get("/", app.VideoStatus)
				r.Patch("/", app.UpdateVideoStatus)
				r.Get("/download", app.DownloadVideo)
			})
		})
		r.Get("/api/history", app.History)
	})

	return r
}
