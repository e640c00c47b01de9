package types

import (
	"encoding/json"
	"fmt"

	"github.com/DoyleJ11/lol-livedata/internal/tracker"
	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

const (
	MsgUpdate = "Update"
	MsgError  = "Error"

	ClientResync = "Resync"
)

type ClientMessage struct {
	Type string `json:"type"` // "Resync"
}

type ServerMessage struct {
	Type     string               `json:"type"` // "Update" | "Error"
	Version  int                  `json:"version,omitempty"`
	GameID   string               `json:"game_id,omitempty"`
	Snapshot *ingame.GameSnapshot `json:"snapshot,omitempty"`
	Changes  []ChangeMessage      `json:"changes,omitempty"`
	Score    *Score               `json:"score,omitempty"`
	Error    string               `json:"error,omitempty"`
}

type ChangeMessage struct {
	Type   string          `json:"type"`
	Team   string          `json:"team,omitempty"`
	Result string          `json:"result,omitempty"`
	Event  json.RawMessage `json:"event,omitempty"`
}

type Score struct {
	Order  tracker.TeamCounters `json:"order"`
	Chaos  tracker.TeamCounters `json:"chaos"`
	Ended  bool                 `json:"ended"`
	Result string               `json:"result,omitempty"`
}

func NewScore(s tracker.State) *Score {
	return &Score{Order: s.Order, Chaos: s.Chaos, Ended: s.Ended, Result: string(s.Result)}
}

func ErrorMessage(msg string) ServerMessage {
	return ServerMessage{Type: MsgError, Error: msg}
}

// ChangeMessages renders tracker changes for the wire. Events keep their
// upstream encoding.
func ChangeMessages(changes []tracker.Change) ([]ChangeMessage, error) {
	out := make([]ChangeMessage, 0, len(changes))
	for _, c := range changes {
		m := ChangeMessage{Type: string(c.Type), Result: string(c.Result)}
		if c.Team != ingame.TeamUnknown {
			m.Team = string(c.Team)
		}
		if c.Event != nil {
			b, err := ingame.EncodeEvent(c.Event)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", c.Event.EventName(), err)
			}
			m.Event = b
		}
		out = append(out, m)
	}
	return out, nil
}

// EventPayloads encodes events one by one in their upstream shape.
func EventPayloads(events []ingame.GameEvent) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(events))
	for _, e := range events {
		b, err := ingame.EncodeEvent(e)
		if err != nil {
			return nil, fmt.Errorf("encode event %d: %w", e.EventID(), err)
		}
		out = append(out, b)
	}
	return out, nil
}
