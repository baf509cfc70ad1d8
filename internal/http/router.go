package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"notes/internal/auth"
	"notes/internal/config"
	"notes/internal/http/handler"
	mw "notes/internal/http/middleware"
	"notes/internal/note"
)

type Deps struct {
	Auth  *auth.Service
	Notes *note.Service
	JWT   *auth.JWT
	Log   *slog.Logger
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(d.Log))
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{Svc: d.Auth, Log: d.Log}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{Svc: d.Auth, Log: d.Log}
	r.With(auth.RequireAuth(d.JWT)).Get("/me", me.Me)

	nh := &handler.NoteHandler{Svc: d.Notes, Log: d.Log, DefaultPageSize: cfg.DefaultPageSize}

	r.Route("/notes", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Get("/", nh.List)
		r.Post("/", nh.Create)

		r.Get("/{id}", nh.Get)
		r.Put("/{id}", nh.Update)
		r.Delete("/{id}", nh.Delete)
	})

	return r
}
