package ingame

// EventName is the discriminant carried in each event's "EventName" field.
type EventName string

const (
	EventAce                 EventName = "Ace"
	EventBaronKill           EventName = "BaronKill"
	EventChampionKill        EventName = "ChampionKill"
	EventDragonKill          EventName = "DragonKill"
	EventFirstBlood          EventName = "FirstBlood"
	EventFirstBrick          EventName = "FirstBrick"
	EventGameEnd             EventName = "GameEnd"
	EventGameStart           EventName = "GameStart"
	EventHeraldKill          EventName = "HeraldKill"
	EventInhibKilled         EventName = "InhibKilled"
	EventInhibRespawned      EventName = "InhibRespawned"
	EventInhibRespawningSoon EventName = "InhibRespawningSoon"
	EventMinionsSpawning     EventName = "MinionsSpawning"
	EventMultikill           EventName = "Multikill"
	EventTurretKilled        EventName = "TurretKilled"
)

// GameEvent is one of the fifteen event records below. The id and time every
// variant shares come from the embedded EventHeader.
type GameEvent interface {
	EventID() uint32
	EventTime() float64
	EventName() EventName
}

type EventHeader struct {
	ID uint32 `schema:"EventID"`
	// Time is seconds since the game started.
	Time float64 `schema:"EventTime"`
}

func (h EventHeader) EventID() uint32    { return h.ID }
func (h EventHeader) EventTime() float64 { return h.Time }

type Ace struct {
	EventHeader
	Acer      string
	AcingTeam TeamID
}

type BaronKill struct {
	EventHeader
	Assisters  []string
	KillerName Killer
	Stolen     StringBool
}

type ChampionKill struct {
	EventHeader
	Assisters  []string
	KillerName Killer
	VictimName string
}

type DragonKill struct {
	EventHeader
	Assisters  []string
	DragonType DragonKind
	KillerName Killer
	Stolen     StringBool
}

type FirstBlood struct {
	EventHeader
	Recipient string
}

type FirstBrick struct {
	EventHeader
	KillerName Killer
}

type GameEnd struct {
	EventHeader
	Result GameResult
}

type GameStart struct {
	EventHeader
}

type HeraldKill struct {
	EventHeader
	Assisters  []string
	KillerName Killer
	Stolen     StringBool
}

type InhibKilled struct {
	EventHeader
	Assisters   []string
	InhibKilled Inhibitor
	KillerName  Killer
}

type InhibRespawned struct {
	EventHeader
	InhibRespawned Inhibitor
}

type InhibRespawningSoon struct {
	EventHeader
	InhibRespawningSoon Inhibitor
}

type MinionsSpawning struct {
	EventHeader
}

// Multikill names the summoner directly rather than through a Killer.
type Multikill struct {
	EventHeader
	KillStreak int32
	KillerName string
}

type TurretKilled struct {
	EventHeader
	Assisters    []string
	KillerName   Killer
	TurretKilled Turret
}

func (Ace) EventName() EventName                 { return EventAce }
func (BaronKill) EventName() EventName           { return EventBaronKill }
func (ChampionKill) EventName() EventName        { return EventChampionKill }
func (DragonKill) EventName() EventName          { return EventDragonKill }
func (FirstBlood) EventName() EventName          { return EventFirstBlood }
func (FirstBrick) EventName() EventName          { return EventFirstBrick }
func (GameEnd) EventName() EventName             { return EventGameEnd }
func (GameStart) EventName() EventName           { return EventGameStart }
func (HeraldKill) EventName() EventName          { return EventHeraldKill }
func (InhibKilled) EventName() EventName         { return EventInhibKilled }
func (InhibRespawned) EventName() EventName      { return EventInhibRespawned }
func (InhibRespawningSoon) EventName() EventName { return EventInhibRespawningSoon }
func (MinionsSpawning) EventName() EventName     { return EventMinionsSpawning }
func (Multikill) EventName() EventName           { return EventMultikill }
func (TurretKilled) EventName() EventName        { return EventTurretKilled }

// EventsOf filters events down to one variant, keeping order.
func EventsOf[T GameEvent](events []GameEvent) []T {
	var out []T
	for _, e := range events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// KillerOf returns the killer of events that have one.
func KillerOf(e GameEvent) (Killer, bool) {
	switch ev := e.(type) {
	case BaronKill:
		return ev.KillerName, true
	case ChampionKill:
		return ev.KillerName, true
	case DragonKill:
		return ev.KillerName, true
	case FirstBrick:
		return ev.KillerName, true
	case HeraldKill:
		return ev.KillerName, true
	case InhibKilled:
		return ev.KillerName, true
	case TurretKilled:
		return ev.KillerName, true
	case Multikill:
		return SummonerKiller(ev.KillerName), true
	default:
		return Killer{}, false
	}
}
