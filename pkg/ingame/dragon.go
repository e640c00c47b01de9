package ingame

import (
	"encoding/json"
	"fmt"
)

type DragonKind string

const (
	DragonInfernal DragonKind = "Infernal"
	DragonOcean    DragonKind = "Ocean"
	DragonMountain DragonKind = "Mountain"
	DragonCloud    DragonKind = "Cloud"
	DragonHextech  DragonKind = "Hextech"
	DragonChemtech DragonKind = "Chemtech"
	DragonElder    DragonKind = "Elder"
)

// dragonForms holds the short spelling used in DragonKill events and the
// engine unit name used in KillerName.
var dragonForms = map[DragonKind][2]string{
	DragonInfernal: {"Fire", "SRU_Dragon_Fire"},
	DragonOcean:    {"Water", "SRU_Dragon_Water"},
	DragonMountain: {"Earth", "SRU_Dragon_Earth"},
	DragonCloud:    {"Air", "SRU_Dragon_Air"},
	DragonHextech:  {"Hextech", "SRU_Dragon_Hextech"},
	DragonChemtech: {"Chemtech", "SRU_Dragon_Chemtech"},
	DragonElder:    {"Elder", "SRU_Dragon_Elder"},
}

var dragonSpellings = func() map[string]DragonKind {
	m := make(map[string]DragonKind, 2*len(dragonForms))
	for kind, forms := range dragonForms {
		m[forms[0]] = kind
		m[forms[1]] = kind
	}
	return m
}()

// ParseDragonKind matches s exactly against both spellings of every kind.
// Unlike the other classifiers it fails on unknown input.
func ParseDragonKind(s string) (DragonKind, error) {
	if kind, ok := dragonSpellings[s]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrDragonDecode, s)
}

// ShortName is the spelling used by DragonKill.DragonType ("Fire").
func (d DragonKind) ShortName() string { return dragonForms[d][0] }

// EngineName is the unit name ("SRU_Dragon_Fire").
func (d DragonKind) EngineName() string { return dragonForms[d][1] }

func (d *DragonKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, err := ParseDragonKind(s)
	if err != nil {
		return err
	}
	*d = kind
	return nil
}

func (d DragonKind) MarshalJSON() ([]byte, error) {
	if _, ok := dragonForms[d]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrDragonDecode, string(d))
	}
	return json.Marshal(d.ShortName())
}
