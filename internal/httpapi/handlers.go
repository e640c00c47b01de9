package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-livedata/internal/feed"
	"github.com/DoyleJ11/lol-livedata/internal/poller"
	"github.com/DoyleJ11/lol-livedata/internal/types"
	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
	"github.com/DoyleJ11/lol-livedata/pkg/lcu"
)

type StatusSource interface {
	Status(ctx context.Context) (poller.Status, error)
}

type EventStore interface {
	Games(ctx context.Context) ([]string, error)
	ListEvents(ctx context.Context, gameID string) ([]ingame.GameEvent, error)
}

type LCUGetter interface {
	Get(ctx context.Context, endpoint string) (json.RawMessage, error)
}

func Healthz(p StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p == nil {
			w.WriteHeader(http.StatusOK)
			return
		}
		s, err := p.Status(r.Context())
		if err != nil {
			http.Error(w, "poller stopped", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Status    string `json:"status"`
			InGame    bool   `json:"in_game"`
			GameID    string `json:"game_id,omitempty"`
			Polls     int    `json:"polls"`
			Failures  int    `json:"failures"`
			LastError string `json:"last_error,omitempty"`
		}{"ok", s.InGame, s.GameID, s.Polls, s.Failures, s.LastError})
	}
}

// Snapshot serves the latest snapshot in the shape the game client uses.
func Snapshot(f *feed.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := latest(w, r, f)
		if !ok {
			return
		}
		body, err := ingame.Encode(u.Snapshot)
		if err != nil {
			http.Error(w, "failed to encode snapshot", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Feed-Version", strconv.Itoa(u.Version))
		w.Header().Set("X-Game-ID", u.GameID)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// Events serves the current game's events, optionally only those with an id
// greater than ?since.
func Events(f *feed.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			since    uint32
			hasSince bool
		)
		if raw := r.URL.Query().Get("since"); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				http.Error(w, "since must be an event id", http.StatusBadRequest)
				return
			}
			since, hasSince = uint32(n), true
		}

		u, ok := latest(w, r, f)
		if !ok {
			return
		}
		events := u.Snapshot.Events
		if hasSince {
			events = u.Snapshot.EventsAfter(since)
		}
		payloads, err := types.EventPayloads(events)
		if err != nil {
			http.Error(w, "failed to encode events", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			GameID  string            `json:"game_id"`
			Version int               `json:"version"`
			Events  []json.RawMessage `json:"events"`
		}{u.GameID, u.Version, payloads})
	}
}

func Score(f *feed.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := latest(w, r, f)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, types.NewScore(u.State))
	}
}

func Games(s EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := s.Games(r.Context())
		if err != nil {
			http.Error(w, "failed to list games", http.StatusInternalServerError)
			return
		}
		if ids == nil {
			ids = []string{}
		}
		writeJSON(w, http.StatusOK, struct {
			Games []string `json:"games"`
		}{ids})
	}
}

func GameEvents(s EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		events, err := s.ListEvents(r.Context(), gameID)
		if err != nil {
			http.Error(w, "failed to list events", http.StatusInternalServerError)
			return
		}
		if len(events) == 0 {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		payloads, err := types.EventPayloads(events)
		if err != nil {
			http.Error(w, "failed to encode events", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			GameID string            `json:"game_id"`
			Events []json.RawMessage `json:"events"`
		}{gameID, payloads})
	}
}

// LCUProxy forwards GET /lcu/<endpoint> to the League client API.
func LCUProxy(c LCUGetter, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoint := "/" + chi.URLParam(r, "*")
		if r.URL.RawQuery != "" {
			endpoint += "?" + r.URL.RawQuery
		}

		res, err := c.Get(r.Context(), endpoint)
		var se *lcu.StatusError
		switch {
		case errors.As(err, &se):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(se.StatusCode)
			_, _ = w.Write(se.Body)
			return
		case err != nil:
			log.Warn("lcu request", zap.String("endpoint", endpoint), zap.Error(err))
			http.Error(w, "league client unavailable", http.StatusBadGateway)
			return
		case res == nil:
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res)
	}
}

// latest writes 204 when nothing has been polled yet.
func latest(w http.ResponseWriter, r *http.Request, f *feed.Feed) (feed.Update, bool) {
	v, err := f.View(r.Context())
	if err != nil {
		http.Error(w, "feed stopped", http.StatusServiceUnavailable)
		return feed.Update{}, false
	}
	if v.Latest == nil {
		w.WriteHeader(http.StatusNoContent)
		return feed.Update{}, false
	}
	return *v.Latest, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
