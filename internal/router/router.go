package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"questgen-backend/internal/handlers"
	"questgen-backend/internal/middleware"
)

func New(
	questionHandler *handlers.QuestionHandler,
	notesHandler *handlers.NotesHandler,
	topicsHandler *handlers.TopicsHandler,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(allowedOrigin))

	// Every generation request costs at least one model call
	genLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/formats", questionHandler.SupportedFormats)

		r.Route("/questions", func(r chi.Router) {
			r.With(genLimiter.Middleware).Post("/generate", questionHandler.Generate)
			r.Get("/history", questionHandler.History)
		})

		r.Route("/notes", func(r chi.Router) {
			r.With(genLimiter.Middleware).Post("/generate", notesHandler.Generate)
			r.Get("/{token}/download", notesHandler.Download)
		})

		r.Route("/topics", func(r chi.Router) {
			r.With(genLimiter.Middleware).Post("/extract", topicsHandler.Extract)
		})
	})

	return r
}
