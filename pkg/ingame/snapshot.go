package ingame

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/DoyleJ11/lol-livedata/internal/schema"
)

// spectatorMessage is what the client puts in place of the active player
// while spectating.
const spectatorMessage = "Spectator mode doesn't currently support this feature"

// GameSnapshot is one poll of /liveclientdata/allgamedata.
type GameSnapshot struct {
	// ActivePlayer is nil when spectating.
	ActivePlayer *ActivePlayer
	AllPlayers   []Player
	Events       []GameEvent
	GameData     GameStats
}

type snapshotDocument struct {
	ActivePlayer json.RawMessage
	AllPlayers   []Player
	Events       json.RawMessage
	GameData     GameStats
}

type spectatorMarker struct {
	Error string
}

// Decode maps a full allgamedata document onto a GameSnapshot.
func Decode(data []byte) (GameSnapshot, error) {
	var doc snapshotDocument
	if err := schema.Unmarshal(data, &doc); err != nil {
		return GameSnapshot{}, err
	}
	active, err := DecodeActivePlayer(doc.ActivePlayer)
	if err != nil {
		return GameSnapshot{}, schema.Within("activePlayer", err)
	}
	events, err := DecodeEvents(doc.Events)
	if err != nil {
		return GameSnapshot{}, schema.Within("events", err)
	}
	return GameSnapshot{
		ActivePlayer: active,
		AllPlayers:   doc.AllPlayers,
		Events:       events,
		GameData:     doc.GameData,
	}, nil
}

// DecodeActivePlayer resolves the active player section: a populated record
// yields a value, an object holding only "error" yields nil (spectator mode).
func DecodeActivePlayer(data []byte) (*ActivePlayer, error) {
	if gjson.GetBytes(data, "error").Exists() {
		var marker spectatorMarker
		if err := schema.Unmarshal(data, &marker); err != nil {
			return nil, err
		}
		return nil, nil
	}
	var ap ActivePlayer
	if err := schema.Unmarshal(data, &ap); err != nil {
		return nil, err
	}
	return &ap, nil
}

// DecodePlayers decodes the /playerlist section.
func DecodePlayers(data []byte) ([]Player, error) {
	arr := gjson.ParseBytes(data)
	if !gjson.ValidBytes(data) || !arr.IsArray() {
		return nil, &MismatchError{Reason: "expected array of players"}
	}
	items := arr.Array()
	players := make([]Player, len(items))
	for i, item := range items {
		if err := schema.Unmarshal([]byte(item.Raw), &players[i]); err != nil {
			return nil, schema.Within(fmt.Sprintf("[%d]", i), err)
		}
	}
	return players, nil
}

// DecodeGameStats decodes the /gamestats section.
func DecodeGameStats(data []byte) (GameStats, error) {
	var gs GameStats
	if err := schema.Unmarshal(data, &gs); err != nil {
		return GameStats{}, err
	}
	return gs, nil
}

// Encode writes s back in the upstream shape.
func Encode(s GameSnapshot) ([]byte, error) {
	var (
		active []byte
		err    error
	)
	if s.ActivePlayer != nil {
		active, err = schema.Marshal(s.ActivePlayer)
	} else {
		active, err = schema.Marshal(spectatorMarker{Error: spectatorMessage})
	}
	if err != nil {
		return nil, fmt.Errorf("activePlayer: %w", err)
	}
	events, err := EncodeEvents(s.Events)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	return schema.Marshal(snapshotDocument{
		ActivePlayer: active,
		AllPlayers:   s.AllPlayers,
		Events:       events,
		GameData:     s.GameData,
	})
}

func (s GameSnapshot) MarshalJSON() ([]byte, error) { return Encode(s) }

func (s *GameSnapshot) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// Spectating reports whether the snapshot came from a spectator client.
func (s GameSnapshot) Spectating() bool { return s.ActivePlayer == nil }

// Validate checks invariants a decoded snapshot of a live session must hold.
func (s GameSnapshot) Validate() error {
	if len(s.AllPlayers) == 0 {
		return ErrNoPlayers
	}
	for i := 1; i < len(s.Events); i++ {
		if s.Events[i].EventID() < s.Events[i-1].EventID() {
			return fmt.Errorf("%w: %d after %d", ErrEventOrder, s.Events[i].EventID(), s.Events[i-1].EventID())
		}
	}
	return nil
}

// LastEventID is the id of the newest event, or false when there are none.
func (s GameSnapshot) LastEventID() (uint32, bool) {
	if len(s.Events) == 0 {
		return 0, false
	}
	return s.Events[len(s.Events)-1].EventID(), true
}

// EventsAfter returns the events whose id is greater than id.
func (s GameSnapshot) EventsAfter(id uint32) []GameEvent {
	var out []GameEvent
	for _, e := range s.Events {
		if e.EventID() > id {
			out = append(out, e)
		}
	}
	return out
}

// FindPlayer looks a player up by summoner name.
func (s GameSnapshot) FindPlayer(summonerName string) (Player, bool) {
	for _, p := range s.AllPlayers {
		if p.SummonerName == summonerName {
			return p, true
		}
	}
	return Player{}, false
}

// TeamOf returns the team of the named summoner, or TeamUnknown.
func (s GameSnapshot) TeamOf(summonerName string) TeamID {
	if p, ok := s.FindPlayer(summonerName); ok {
		return p.Team
	}
	return TeamUnknown
}
