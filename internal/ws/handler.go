package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-livedata/internal/feed"
	"github.com/DoyleJ11/lol-livedata/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler streams feed updates to a websocket client. Clients may send
// {"type":"Resync"} to get the latest update again.
func Handler(f *feed.Feed, log *zap.Logger, originPatterns ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Debug("websocket accept", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan feed.Update, 8)
		clientID := randID(8)
		log := log.With(zap.String("client_id", clientID))

		select {
		case f.Inbox() <- feed.Join{ClientID: clientID, Outbox: out}:
		case <-f.Done():
			conn.Close(websocket.StatusGoingAway, "shutting down")
			return
		}
		defer func() {
			select {
			case f.Inbox() <- feed.Leave{ClientID: clientID}:
			case <-f.Done():
			}
		}()
		log.Debug("client joined")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for u := range out {
				if err := write(writeCtx, conn, updateMessage(u)); err != nil {
					log.Debug("websocket write", zap.Error(err))
				}
			}
			// The feed closed our outbox: we were too slow or it shut down.
			conn.Close(websocket.StatusTryAgainLater, "update stream ended")
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					log.Debug("client left")
				default:
					log.Debug("websocket read", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = write(r.Context(), conn, types.ErrorMessage("bad json"))
				continue
			}

			switch cm.Type {
			case types.ClientResync:
				v, err := f.View(r.Context())
				if err != nil {
					return
				}
				if v.Latest != nil {
					_ = write(r.Context(), conn, updateMessage(*v.Latest))
				}
			default:
				_ = write(r.Context(), conn, types.ErrorMessage("unknown type"))
			}
		}
	}
}

func updateMessage(u feed.Update) types.ServerMessage {
	changes, err := types.ChangeMessages(u.Changes)
	if err != nil {
		return types.ErrorMessage(err.Error())
	}
	snap := u.Snapshot
	return types.ServerMessage{
		Type:     types.MsgUpdate,
		Version:  u.Version,
		GameID:   u.GameID,
		Snapshot: &snap,
		Changes:  changes,
		Score:    types.NewScore(u.State),
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		payload, _ = json.Marshal(types.ErrorMessage(err.Error()))
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
