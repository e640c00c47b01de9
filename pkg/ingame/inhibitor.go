package ingame

import "encoding/json"

// InhibitorSlot names an inhibitor (barracks). On ARAM only the C1 pair exists.
type InhibitorSlot uint8

const (
	InhibitorUnknown InhibitorSlot = iota
	InhibitorTeam1L1
	InhibitorTeam1C1
	InhibitorTeam1R1
	InhibitorTeam2L1
	InhibitorTeam2C1
	InhibitorTeam2R1
)

var inhibitorTable = []struct {
	slot InhibitorSlot
	id   string
	name string
}{
	{InhibitorTeam1L1, "Barracks_T1_L1", "Team1L1"},
	{InhibitorTeam1C1, "Barracks_T1_C1", "Team1C1"},
	{InhibitorTeam1R1, "Barracks_T1_R1", "Team1R1"},
	{InhibitorTeam2L1, "Barracks_T2_L1", "Team2L1"},
	{InhibitorTeam2C1, "Barracks_T2_C1", "Team2C1"},
	{InhibitorTeam2R1, "Barracks_T2_R1", "Team2R1"},
}

// ClassifyInhibitor matches id exactly; anything else is InhibitorUnknown.
func ClassifyInhibitor(id string) InhibitorSlot {
	for _, e := range inhibitorTable {
		if e.id == id {
			return e.slot
		}
	}
	return InhibitorUnknown
}

func (i InhibitorSlot) Identifier() string {
	for _, e := range inhibitorTable {
		if e.slot == i {
			return e.id
		}
	}
	return "Unknown"
}

func (i InhibitorSlot) String() string {
	for _, e := range inhibitorTable {
		if e.slot == i {
			return e.name
		}
	}
	return "Unknown"
}

// Team returns 1 or 2, or 0 when unknown.
func (i InhibitorSlot) Team() int {
	switch {
	case i >= InhibitorTeam1L1 && i <= InhibitorTeam1R1:
		return 1
	case i >= InhibitorTeam2L1 && i <= InhibitorTeam2R1:
		return 2
	default:
		return 0
	}
}

// Inhibitor is an inhibitor named in an event. Like Turret, an unknown
// identifier is kept for re-encoding.
type Inhibitor struct {
	Slot InhibitorSlot

	unknownID string
}

func UnknownInhibitor(id string) Inhibitor {
	return Inhibitor{Slot: InhibitorUnknown, unknownID: id}
}

func (i Inhibitor) ID() string {
	if i.Slot == InhibitorUnknown && i.unknownID != "" {
		return i.unknownID
	}
	return i.Slot.Identifier()
}

func (i Inhibitor) String() string { return i.Slot.String() }

func (i Inhibitor) Team() int { return i.Slot.Team() }

func (i *Inhibitor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if slot := ClassifyInhibitor(s); slot != InhibitorUnknown {
		*i = Inhibitor{Slot: slot}
		return nil
	}
	*i = UnknownInhibitor(s)
	return nil
}

func (i Inhibitor) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.ID())
}
