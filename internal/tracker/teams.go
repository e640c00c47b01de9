package tracker

import "github.com/DoyleJ11/lol-livedata/pkg/ingame"

// creditedTeam decides which side an event counts for.
func creditedTeam(snap ingame.GameSnapshot, e ingame.GameEvent) ingame.TeamID {
	switch ev := e.(type) {
	case ingame.ChampionKill:
		if ev.KillerName.IsSummoner() {
			if t := snap.TeamOf(ev.KillerName.Name); t != ingame.TeamUnknown {
				return t
			}
		}
		// executed by a minion, turret or monster
		return Opponent(snap.TeamOf(ev.VictimName))

	case ingame.TurretKilled:
		if t := structureTeam(ev.TurretKilled.Team()); t != ingame.TeamUnknown {
			return Opponent(t)
		}
		return killerTeam(snap, ev.KillerName)

	case ingame.InhibKilled:
		if t := structureTeam(ev.InhibKilled.Team()); t != ingame.TeamUnknown {
			return Opponent(t)
		}
		return killerTeam(snap, ev.KillerName)

	case ingame.Ace:
		return ev.AcingTeam
	case ingame.GameEnd:
		return activeTeam(snap)
	case ingame.FirstBlood:
		return snap.TeamOf(ev.Recipient)
	case ingame.Multikill:
		return snap.TeamOf(ev.KillerName)
	}

	if k, ok := ingame.KillerOf(e); ok {
		return killerTeam(snap, k)
	}
	return ingame.TeamUnknown
}

func killerTeam(snap ingame.GameSnapshot, k ingame.Killer) ingame.TeamID {
	if !k.IsSummoner() {
		return ingame.TeamUnknown
	}
	return snap.TeamOf(k.Name)
}

func activeTeam(snap ingame.GameSnapshot) ingame.TeamID {
	if snap.ActivePlayer == nil {
		return ingame.TeamUnknown
	}
	return snap.TeamOf(snap.ActivePlayer.SummonerName)
}

func structureTeam(n int) ingame.TeamID {
	switch n {
	case 1:
		return ingame.TeamOrder
	case 2:
		return ingame.TeamChaos
	default:
		return ingame.TeamUnknown
	}
}

// Opponent returns the other side, or TeamUnknown.
func Opponent(t ingame.TeamID) ingame.TeamID {
	switch t {
	case ingame.TeamOrder:
		return ingame.TeamChaos
	case ingame.TeamChaos:
		return ingame.TeamOrder
	default:
		return ingame.TeamUnknown
	}
}
