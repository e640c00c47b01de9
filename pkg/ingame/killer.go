package ingame

import (
	"encoding/json"
	"slices"
	"strings"
)

// KillerKind discriminates Killer.
type KillerKind uint8

const (
	KillerMinion KillerKind = iota + 1
	KillerDragon
	KillerGromp
	KillerBlue
	KillerMurkwolf
	KillerRazorbeak
	KillerRed
	KillerKrug
	KillerRiftHerald
	KillerBaron
	KillerTurret
	KillerSummoner
)

var killerKindNames = map[KillerKind]string{
	KillerMinion:     "Minion",
	KillerDragon:     "Dragon",
	KillerGromp:      "Gromp",
	KillerBlue:       "Blue",
	KillerMurkwolf:   "Murkwolf",
	KillerRazorbeak:  "Razorbeak",
	KillerRed:        "Red",
	KillerKrug:       "Krug",
	KillerRiftHerald: "RiftHerald",
	KillerBaron:      "Baron",
	KillerTurret:     "Turret",
	KillerSummoner:   "Summoner",
}

func (k KillerKind) String() string {
	if name, ok := killerKindNames[k]; ok {
		return name
	}
	return "Invalid"
}

// Killer is whatever landed a kill: a unit, a monster camp, a structure or a
// summoner. Dragon, Turret and Name are only set for their kinds.
type Killer struct {
	Kind   KillerKind
	Dragon DragonKind
	Turret TurretSlot
	Name   string

	raw string
}

// SummonerKiller builds a Summoner killer.
func SummonerKiller(name string) Killer {
	return Killer{Kind: KillerSummoner, Name: name, raw: name}
}

// Raw returns the identifier the killer was classified from. Killers built in
// code get a canonical identifier.
func (k Killer) Raw() string {
	if k.raw != "" {
		return k.raw
	}
	switch k.Kind {
	case KillerDragon:
		return k.Dragon.EngineName()
	case KillerTurret:
		return k.Turret.Identifier()
	case KillerSummoner:
		return k.Name
	case KillerMinion:
		return "Minion"
	default:
		return "SRU_" + k.Kind.String()
	}
}

func (k Killer) String() string {
	switch k.Kind {
	case KillerDragon:
		return "Dragon(" + string(k.Dragon) + ")"
	case KillerTurret:
		return "Turret(" + k.Turret.String() + ")"
	case KillerSummoner:
		return "Summoner(" + k.Name + ")"
	default:
		return k.Kind.String()
	}
}

// IsSummoner reports whether a player got the kill.
func (k Killer) IsSummoner() bool { return k.Kind == KillerSummoner }

func (k *Killer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = ClassifyKiller(s)
	return nil
}

func (k Killer) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.Raw())
}

// KillerRule is one step of the killer heuristic chain.
type KillerRule struct {
	Name  string
	Match func(token string) (Killer, bool)
}

// killerRules run top to bottom and the first match wins. Exact dragon and
// turret identifiers go first because camp names are matched by substring
// and engine identifiers share unrelated substrings.
var killerRules = []KillerRule{
	{Name: "dragon", Match: func(token string) (Killer, bool) {
		kind, err := ParseDragonKind(token)
		if err != nil {
			return Killer{}, false
		}
		return Killer{Kind: KillerDragon, Dragon: kind}, true
	}},
	{Name: "turret", Match: func(token string) (Killer, bool) {
		if slot, ok := lookupTurret(token); ok {
			return Killer{Kind: KillerTurret, Turret: slot}, true
		}
		if turretShape.MatchString(token) {
			return Killer{Kind: KillerTurret, Turret: TurretUnknown}, true
		}
		return Killer{}, false
	}},
	{Name: "minion", Match: func(token string) (Killer, bool) {
		return Killer{Kind: KillerMinion}, strings.HasPrefix(token, "Minion")
	}},
	containsRule("RiftHerald", KillerRiftHerald),
	// Baron tokens classify as RiftHerald, not KillerBaron. Unconfirmed
	// whether that is intended; keep it until someone checks a live Baron kill.
	containsRule("Baron", KillerRiftHerald),
	containsRule("Gromp", KillerGromp),
	containsRule("Blue", KillerBlue),
	containsRule("Murkwolf", KillerMurkwolf),
	containsRule("Razorbeak", KillerRazorbeak),
	containsRule("Red", KillerRed),
	containsRule("Krug", KillerKrug),
}

func containsRule(marker string, kind KillerKind) KillerRule {
	return KillerRule{
		Name: strings.ToLower(marker),
		Match: func(token string) (Killer, bool) {
			return Killer{Kind: kind}, strings.Contains(token, marker)
		},
	}
}

// KillerRules returns a copy of the default heuristic chain.
func KillerRules() []KillerRule {
	return slices.Clone(killerRules)
}

// ClassifyKiller runs the default chain over token. It never fails: a token
// no rule claims is taken to be a summoner name.
func ClassifyKiller(token string) Killer {
	return ClassifyKillerWith(killerRules, token)
}

// ClassifyKillerWith runs rules in order and falls back to a summoner.
func ClassifyKillerWith(rules []KillerRule, token string) Killer {
	for _, r := range rules {
		if k, ok := r.Match(token); ok {
			k.raw = token
			return k
		}
	}
	return SummonerKiller(token)
}
