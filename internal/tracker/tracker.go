package tracker

import (
	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

type ChangeType string

const (
	ChangeGameStarted ChangeType = "GameStarted"
	ChangeEvent       ChangeType = "Event"
	ChangeGameEnded   ChangeType = "GameEnded"
)

/*
	first snapshot / restart -> ChangeGameStarted
	each event with id > LastEventID -> ChangeEvent (Team = side credited)
	GameEnd event -> ChangeEvent, ChangeGameEnded

	A restart is a snapshot whose game clock or newest event id is behind what
	we already saw: the client was relaunched into a new game between polls.
*/

type Change struct {
	Type   ChangeType
	Event  ingame.GameEvent
	Team   ingame.TeamID
	Result ingame.GameResult
}

type TeamCounters struct {
	Kills      int
	Dragons    int
	Heralds    int
	Barons     int
	Turrets    int
	Inhibitors int
}

type State struct {
	Started     bool
	Ended       bool
	Games       int
	LastEventID int64
	GameTime    float64
	Result      ingame.GameResult
	Order       TeamCounters
	Chaos       TeamCounters
}

func NewState() State {
	return State{LastEventID: -1}
}

// Apply folds one polled snapshot into s. s is never modified; on error it is
// returned unchanged.
func Apply(s State, snap ingame.GameSnapshot) ([]Change, State, error) {
	if err := snap.Validate(); err != nil {
		return nil, s, err
	}

	newState := s
	var changes []Change

	if !s.Started || restarted(s, snap) {
		newState = NewState()
		newState.Started = true
		newState.Games = s.Games + 1
		changes = append(changes, Change{Type: ChangeGameStarted})
	}

	for _, e := range snap.Events {
		if int64(e.EventID()) <= newState.LastEventID {
			continue
		}
		c := Change{Type: ChangeEvent, Event: e, Team: creditedTeam(snap, e)}
		changes = append(changes, c)
		step(&newState, c)

		if end, ok := e.(ingame.GameEnd); ok {
			done := Change{Type: ChangeGameEnded, Team: c.Team, Result: end.Result}
			changes = append(changes, done)
			step(&newState, done)
		}
	}
	newState.GameTime = snap.GameData.GameTime

	return changes, newState, nil
}

// Reduce rebuilds state from a change log.
func Reduce(changes []Change) State {
	s := NewState()
	for _, c := range changes {
		step(&s, c)
	}
	return s
}

func step(s *State, c Change) {
	switch c.Type {
	case ChangeGameStarted:
		games := s.Games
		*s = NewState()
		s.Started = true
		s.Games = games + 1

	case ChangeGameEnded:
		s.Ended = true
		s.Result = c.Result

	case ChangeEvent:
		if id := int64(c.Event.EventID()); id > s.LastEventID {
			s.LastEventID = id
		}
		if t := s.team(c.Team); t != nil {
			count(t, c.Event)
		}
	}
}

func count(t *TeamCounters, e ingame.GameEvent) {
	switch e.(type) {
	case ingame.ChampionKill:
		t.Kills++
	case ingame.DragonKill:
		t.Dragons++
	case ingame.HeraldKill:
		t.Heralds++
	case ingame.BaronKill:
		t.Barons++
	case ingame.TurretKilled:
		t.Turrets++
	case ingame.InhibKilled:
		t.Inhibitors++
	}
}

func (s *State) team(id ingame.TeamID) *TeamCounters {
	switch id {
	case ingame.TeamOrder:
		return &s.Order
	case ingame.TeamChaos:
		return &s.Chaos
	default:
		return nil
	}
}

func (s State) Counters(id ingame.TeamID) TeamCounters {
	if t := s.team(id); t != nil {
		return *t
	}
	return TeamCounters{}
}

func restarted(s State, snap ingame.GameSnapshot) bool {
	if snap.GameData.GameTime < s.GameTime {
		return true
	}
	last, ok := snap.LastEventID()
	if !ok {
		return s.LastEventID >= 0
	}
	return int64(last) < s.LastEventID
}
