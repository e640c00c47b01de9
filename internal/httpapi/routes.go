package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-livedata/internal/feed"
	"github.com/DoyleJ11/lol-livedata/internal/ws"
)

// Deps are the pieces the routes read from. Store and LCU are optional and
// their routes are only mounted when set.
type Deps struct {
	Feed           *feed.Feed
	Poller         StatusSource
	Store          EventStore
	LCU            LCUGetter
	Log            *zap.Logger
	AllowedOrigins []string
}

func SetupRoutes(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz(d.Poller))
	r.Get("/snapshot", Snapshot(d.Feed))
	r.Get("/events", Events(d.Feed))
	r.Get("/score", Score(d.Feed))
	r.Get("/ws", ws.Handler(d.Feed, d.Log, d.AllowedOrigins...))

	if d.Store != nil {
		r.Get("/games", Games(d.Store))
		r.Get("/games/{gameID}/events", GameEvents(d.Store))
	}
	if d.LCU != nil {
		r.Get("/lcu/*", LCUProxy(d.LCU, d.Log))
	}
	return r
}
