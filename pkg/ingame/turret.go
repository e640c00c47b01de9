package ingame

import (
	"encoding/json"
	"regexp"
)

// TurretSlot names a turret by map position. Team 1 is blue/ORDER, team 2 is
// red/CHAOS. Several identifiers are reused between Summoner's Rift and ARAM.
type TurretSlot uint8

const (
	TurretUnknown TurretSlot = iota

	TurretTeam1C01A // SR upper nexus
	TurretTeam1C02A // SR lower nexus
	TurretTeam1C03A // SR mid inhibitor
	TurretTeam1C04A // SR mid inner
	TurretTeam1C05A // SR mid outer
	TurretTeam1C06A // SR top inhibitor
	TurretTeam1C07A // SR bot inhibitor, ARAM inner
	TurretTeam1C08A // ARAM outer
	TurretTeam1C09A // ARAM bot nexus
	TurretTeam1C10A // ARAM top nexus
	TurretTeam1L02A // SR top inner
	TurretTeam1L03A // SR top outer
	TurretTeam1R02A // SR bot inner
	TurretTeam1R03A // SR bot outer
	TurretTeam1Fountain

	TurretTeam2C01A // SR lower nexus
	TurretTeam2C02A // SR upper nexus
	TurretTeam2C03A // SR mid inhibitor
	TurretTeam2C04A // SR mid inner
	TurretTeam2C05A // SR mid outer
	TurretTeam2L01A // SR top inhibitor, ARAM outer
	TurretTeam2L02A // SR top inner, ARAM inner
	TurretTeam2L03A // SR top outer, ARAM lower nexus
	TurretTeam2L04A // ARAM upper nexus
	TurretTeam2R01A // SR bot inhibitor
	TurretTeam2R02A // SR bot inner
	TurretTeam2R03A // SR bot outer
	TurretTeam2Fountain

	// TurretObelisk is Azir's summoned tower.
	TurretObelisk
)

var turretTable = []struct {
	slot TurretSlot
	id   string
	name string
}{
	{TurretTeam1C01A, "Turret_T1_C_01_A", "Team1C01A"},
	{TurretTeam1C02A, "Turret_T1_C_02_A", "Team1C02A"},
	{TurretTeam1C03A, "Turret_T1_C_03_A", "Team1C03A"},
	{TurretTeam1C04A, "Turret_T1_C_04_A", "Team1C04A"},
	{TurretTeam1C05A, "Turret_T1_C_05_A", "Team1C05A"},
	{TurretTeam1C06A, "Turret_T1_C_06_A", "Team1C06A"},
	{TurretTeam1C07A, "Turret_T1_C_07_A", "Team1C07A"},
	{TurretTeam1C08A, "Turret_T1_C_08_A", "Team1C08A"},
	{TurretTeam1C09A, "Turret_T1_C_09_A", "Team1C09A"},
	{TurretTeam1C10A, "Turret_T1_C_010_A", "Team1C10A"},
	{TurretTeam1L02A, "Turret_T1_L_02_A", "Team1L02A"},
	{TurretTeam1L03A, "Turret_T1_L_03_A", "Team1L03A"},
	{TurretTeam1R02A, "Turret_T1_R_02_A", "Team1R02A"},
	{TurretTeam1R03A, "Turret_T1_R_03_A", "Team1R03A"},
	{TurretTeam1Fountain, "Turret_OrderTurretShrine_A", "Team1Fountain"},
	{TurretTeam2C01A, "Turret_T2_C_01_A", "Team2C01A"},
	{TurretTeam2C02A, "Turret_T2_C_02_A", "Team2C02A"},
	{TurretTeam2C03A, "Turret_T2_C_03_A", "Team2C03A"},
	{TurretTeam2C04A, "Turret_T2_C_04_A", "Team2C04A"},
	{TurretTeam2C05A, "Turret_T2_C_05_A", "Team2C05A"},
	{TurretTeam2L01A, "Turret_T2_L_01_A", "Team2L01A"},
	{TurretTeam2L02A, "Turret_T2_L_02_A", "Team2L02A"},
	{TurretTeam2L03A, "Turret_T2_L_03_A", "Team2L03A"},
	{TurretTeam2L04A, "Turret_T2_L_04_A", "Team2L04A"},
	{TurretTeam2R01A, "Turret_T2_R_01_A", "Team2R01A"},
	{TurretTeam2R02A, "Turret_T2_R_02_A", "Team2R02A"},
	{TurretTeam2R03A, "Turret_T2_R_03_A", "Team2R03A"},
	{TurretTeam2Fountain, "Turret_ChaosTurretShrine_A", "Team2Fountain"},
	{TurretObelisk, "Obelisk", "Obelisk"},
}

var turretsByID = func() map[string]TurretSlot {
	m := make(map[string]TurretSlot, len(turretTable))
	for _, t := range turretTable {
		m[t.id] = t.slot
	}
	return m
}()

// turretShape matches engine turret identifiers, including ones missing
// from turretTable.
var turretShape = regexp.MustCompile(`^Turret_[A-Za-z0-9_]+_A$`)

// ClassifyTurret matches id exactly; anything else is TurretUnknown.
func ClassifyTurret(id string) TurretSlot {
	return turretsByID[id]
}

func lookupTurret(id string) (TurretSlot, bool) {
	slot, ok := turretsByID[id]
	return slot, ok
}

// Identifier returns the engine identifier, or "Unknown".
func (t TurretSlot) Identifier() string {
	for _, e := range turretTable {
		if e.slot == t {
			return e.id
		}
	}
	return "Unknown"
}

func (t TurretSlot) String() string {
	for _, e := range turretTable {
		if e.slot == t {
			return e.name
		}
	}
	return "Unknown"
}

// Team returns 1 or 2, or 0 for the obelisk and unknown turrets.
func (t TurretSlot) Team() int {
	switch {
	case t >= TurretTeam1C01A && t <= TurretTeam1Fountain:
		return 1
	case t >= TurretTeam2C01A && t <= TurretTeam2Fountain:
		return 2
	default:
		return 0
	}
}

// Turret is a turret named in an event. Identifiers missing from the table
// classify as TurretUnknown and are kept so they re-encode unchanged.
type Turret struct {
	Slot TurretSlot

	unknownID string
}

// UnknownTurret builds a Turret for an identifier the table lacks.
func UnknownTurret(id string) Turret {
	return Turret{Slot: TurretUnknown, unknownID: id}
}

// ID returns the engine identifier the turret was decoded from.
func (t Turret) ID() string {
	if t.Slot == TurretUnknown && t.unknownID != "" {
		return t.unknownID
	}
	return t.Slot.Identifier()
}

func (t Turret) String() string { return t.Slot.String() }

func (t Turret) Team() int { return t.Slot.Team() }

func (t *Turret) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if slot := ClassifyTurret(s); slot != TurretUnknown {
		*t = Turret{Slot: slot}
		return nil
	}
	*t = UnknownTurret(s)
	return nil
}

func (t Turret) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ID())
}
