package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jaminalder/codex-othello/internal/app"
)

// DefaultHeartbeat is the SSE keep-alive interval.
const DefaultHeartbeat = 15 * time.Second

type options struct {
	heartbeat  time.Duration
	requestLog bool
}

// Option configures NewServer.
type Option func(*options)

// WithHeartbeat sets the SSE keep-alive interval.
func WithHeartbeat(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.heartbeat = d
		}
	}
}

// WithRequestLog enables chi's request logger.
func WithRequestLog(on bool) Option {
	return func(o *options) { o.requestLog = on }
}

// NewServer wires routes and returns an http.Handler.
// It installs a board renderer on s so subscribers receive ready-to-swap fragments.
func NewServer(s *app.Service, opts ...Option) http.Handler {
	o := options{heartbeat: DefaultHeartbeat}
	for _, opt := range opts {
		opt(&o)
	}

	h := &handlers{svc: s, tpl: loadTemplates(), heartbeat: o.heartbeat}
	s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if o.requestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Use(requireGameID)
		r.Get("/", h.view)
		r.Post("/play", h.play)
		r.Post("/pass", h.pass)
		r.Post("/new", h.newGame)
		r.Get("/events", h.events)
	})
	return r
}

// requireGameID rejects paths whose id is not a game ID before any lookup.
func requireGameID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.ValidID(chi.URLParam(r, "id")) {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
