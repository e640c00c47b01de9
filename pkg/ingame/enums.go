package ingame

import (
	"encoding/json"

	"github.com/DoyleJ11/lol-livedata/internal/schema"
)

// Open enums absorb values missing from the (incomplete) upstream catalogue
// into an Unknown member. Closed enums reject them.

func enumTable[T ~string](values ...T) map[string]T {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[string(v)] = v
	}
	return m
}

func decodeOpenEnum[T ~string](data []byte, dst *T, known map[string]T, fallback T) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, ok := known[s]; ok {
		*dst = v
		return nil
	}
	*dst = fallback
	return nil
}

func decodeClosedEnum[T ~string](data []byte, dst *T, known map[string]T, what string) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := known[s]
	if !ok {
		return schema.Invalid("unknown %s %q", what, s)
	}
	*dst = v
	return nil
}

type ResourceType string

const (
	ResourceMana       ResourceType = "MANA"
	ResourceEnergy     ResourceType = "ENERGY"
	ResourceNone       ResourceType = "NONE"
	ResourceShield     ResourceType = "SHIELD"
	ResourceBattlefury ResourceType = "BATTLEFURY"
	ResourceDragonfury ResourceType = "DRAGONFURY"
	ResourceRage       ResourceType = "RAGE"
	ResourceHeat       ResourceType = "HEAT"
	ResourceGnarfury   ResourceType = "GNARFURY"
	ResourceFerocity   ResourceType = "FEROCITY"
	ResourceBloodwell  ResourceType = "BLOODWELL"
	ResourceWind       ResourceType = "WIND"
	ResourceAmmo       ResourceType = "AMMO"
	ResourceMoonlight  ResourceType = "MOONLIGHT"
	ResourceOther      ResourceType = "OTHER"
	ResourceMax        ResourceType = "MAX"
	ResourceUnknown    ResourceType = "UNKNOWN"
)

var resourceTypes = enumTable(
	ResourceMana, ResourceEnergy, ResourceNone, ResourceShield, ResourceBattlefury,
	ResourceDragonfury, ResourceRage, ResourceHeat, ResourceGnarfury, ResourceFerocity,
	ResourceBloodwell, ResourceWind, ResourceAmmo, ResourceMoonlight, ResourceOther, ResourceMax,
)

func (r *ResourceType) UnmarshalJSON(data []byte) error {
	return decodeOpenEnum(data, r, resourceTypes, ResourceUnknown)
}

// Position is a player's assigned role. ARAM and custom games report none.
type Position string

const (
	PositionTop     Position = "TOP"
	PositionJungle  Position = "JUNGLE"
	PositionMiddle  Position = "MIDDLE"
	PositionBottom  Position = "BOTTOM"
	PositionUtility Position = "UTILITY"
	PositionNone    Position = "NONE"
	PositionUnknown Position = "UNKNOWN"
)

var positions = enumTable(PositionTop, PositionJungle, PositionMiddle, PositionBottom, PositionUtility, PositionNone)

func (p *Position) UnmarshalJSON(data []byte) error {
	return decodeOpenEnum(data, p, positions, PositionUnknown)
}

// TeamID: ORDER is the blue (left) side, CHAOS the red (right) side.
type TeamID string

const (
	TeamAll     TeamID = "ALL"
	TeamOrder   TeamID = "ORDER"
	TeamChaos   TeamID = "CHAOS"
	TeamNeutral TeamID = "NEUTRAL"
	TeamUnknown TeamID = "UNKNOWN"
)

var teamIDs = enumTable(TeamAll, TeamOrder, TeamChaos, TeamNeutral)

func (t *TeamID) UnmarshalJSON(data []byte) error {
	return decodeOpenEnum(data, t, teamIDs, TeamUnknown)
}

type GameMode string

const (
	ModeClassic       GameMode = "CLASSIC"
	ModeOdin          GameMode = "ODIN"
	ModeARAM          GameMode = "ARAM"
	ModeTutorial      GameMode = "TUTORIAL"
	ModeTutorial1     GameMode = "TUTORIAL1"
	ModeTutorial2     GameMode = "TUTORIAL2"
	ModeTutorial3     GameMode = "TUTORIAL3"
	ModeURF           GameMode = "URF"
	ModePracticeTool  GameMode = "PRACTICETOOL"
	ModeDoombotsTeemo GameMode = "DOOMBOTSTEEMO"
	ModeOneForAll     GameMode = "ONEFORALL"
	ModeAscension     GameMode = "ASCENSION"
	ModeFirstBlood    GameMode = "FIRSTBLOOD"
	ModeKingPoro      GameMode = "KINGPORO"
	ModeSiege         GameMode = "SIEGE"
	ModeAssassinate   GameMode = "ASSASSINATE"
	ModeARSR          GameMode = "ARSR"
	ModeDarkStar      GameMode = "DARKSTAR"
	ModeStarGuardian  GameMode = "STARGUARDIAN"
	ModeProject       GameMode = "PROJECT"
	ModeNexusBlitz    GameMode = "NEXUSBLITZ"
	ModeOdyssey       GameMode = "ODYSSEY"
	ModeUltBook       GameMode = "ULTBOOK"
	ModeUnknown       GameMode = "UNKNOWN"
)

var gameModes = func() map[string]GameMode {
	m := enumTable(
		ModeClassic, ModeOdin, ModeARAM, ModeTutorial, ModeTutorial1, ModeTutorial2, ModeTutorial3,
		ModeURF, ModePracticeTool, ModeDoombotsTeemo, ModeOneForAll, ModeAscension, ModeFirstBlood,
		ModeKingPoro, ModeSiege, ModeAssassinate, ModeARSR, ModeDarkStar, ModeStarGuardian,
		ModeProject, ModeNexusBlitz, ModeOdyssey, ModeUltBook,
	)
	m["TUTORIAL_MODULE_1"] = ModeTutorial1
	m["TUTORIAL_MODULE_2"] = ModeTutorial2
	m["TUTORIAL_MODULE_3"] = ModeTutorial3
	m["GAMEMODEX"] = ModeNexusBlitz
	return m
}()

func (g *GameMode) UnmarshalJSON(data []byte) error {
	return decodeOpenEnum(data, g, gameModes, ModeUnknown)
}

type MapName string

const (
	MapSummonersRiftSummer MapName = "Map1"
	MapSummonersRiftAutumn MapName = "Map2"
	MapProvingGrounds      MapName = "Map3"
	MapTwistedTreelineOld  MapName = "Map4"
	MapCrystalScar         MapName = "Map8"
	MapTwistedTreeline     MapName = "Map10"
	MapSummonersRift       MapName = "Map11"
	MapHowlingAbyss        MapName = "Map12"
	MapButchersBridge      MapName = "Map14"
	MapCosmicRuins         MapName = "Map16"
	MapValoranCityPark     MapName = "Map18"
	MapSubstructure43      MapName = "Map19"
	MapCrashSite           MapName = "Map20"
	MapNexusBlitz          MapName = "Map21"
	MapConvergence         MapName = "Map22"
	MapUnknown             MapName = "Unknown"
)

var mapNames = enumTable(
	MapSummonersRiftSummer, MapSummonersRiftAutumn, MapProvingGrounds, MapTwistedTreelineOld,
	MapCrystalScar, MapTwistedTreeline, MapSummonersRift, MapHowlingAbyss, MapButchersBridge,
	MapCosmicRuins, MapValoranCityPark, MapSubstructure43, MapCrashSite, MapNexusBlitz, MapConvergence,
)

func (m *MapName) UnmarshalJSON(data []byte) error {
	return decodeOpenEnum(data, m, mapNames, MapUnknown)
}

// MapTerrain follows the elemental rift transformation.
type MapTerrain string

const (
	TerrainDefault  MapTerrain = "Default"
	TerrainInfernal MapTerrain = "Infernal"
	TerrainOcean    MapTerrain = "Ocean"
	TerrainMountain MapTerrain = "Mountain"
	TerrainCloud    MapTerrain = "Cloud"
	TerrainHextech  MapTerrain = "Hextech"
	TerrainChemtech MapTerrain = "Chemtech"
)

var mapTerrains = enumTable(
	TerrainDefault, TerrainInfernal, TerrainOcean, TerrainMountain, TerrainCloud, TerrainHextech, TerrainChemtech,
)

func (m *MapTerrain) UnmarshalJSON(data []byte) error {
	return decodeClosedEnum(data, m, mapTerrains, "map terrain")
}

type GameResult string

const (
	ResultWin  GameResult = "Win"
	ResultLose GameResult = "Lose"
)

var gameResults = enumTable(ResultWin, ResultLose)

func (r *GameResult) UnmarshalJSON(data []byte) error {
	return decodeClosedEnum(data, r, gameResults, "game result")
}
