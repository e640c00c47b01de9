package ingame

import "github.com/DoyleJ11/lol-livedata/internal/schema"

// ActivePlayer is the local participant. Only present in the participant's
// own client; spectators get an error marker instead.
type ActivePlayer struct {
	Abilities          PlayerAbilities
	ChampionStats      ChampionStats
	CurrentGold        float32
	Runes              FullRunes `schema:",alias=fullRunes"`
	Level              int32
	SummonerName       string
	TeamRelativeColors bool
}

type PlayerAbilities struct {
	E       Ability
	Passive Passive
	Q       Ability
	R       Ability
	W       Ability
}

func (PlayerAbilities) SchemaConvention() schema.Convention { return schema.PascalCase }

type Ability struct {
	AbilityLevel   int32
	DisplayName    string
	ID             string
	RawDescription string
	RawDisplayName string
}

func (Ability) SchemaConvention() schema.Convention { return schema.CamelCase }

type Passive struct {
	DisplayName    string
	ID             string
	RawDescription string
	RawDisplayName string
}

func (Passive) SchemaConvention() schema.Convention { return schema.CamelCase }

type ChampionStats struct {
	AbilityHaste                 float32
	AbilityPower                 float32
	Armor                        float32
	ArmorPenetrationFlat         float32
	ArmorPenetrationPercent      float32
	AttackDamage                 float32
	AttackRange                  float32
	AttackSpeed                  float32
	BonusArmorPenetrationPercent float32
	BonusMagicPenetrationPercent float32
	CritChance                   float32
	CritDamage                   float32
	CurrentHealth                float32
	HealShieldPower              float32
	HealthRegenRate              float32
	LifeSteal                    float32
	MagicLethality               float32
	MagicPenetrationFlat         float32
	MagicPenetrationPercent      float32
	MagicResist                  float32
	MaxHealth                    float32
	MoveSpeed                    float32
	Omnivamp                     float32
	PhysicalLethality            float32
	PhysicalVamp                 float32
	ResourceMax                  float32
	ResourceRegenRate            float32
	ResourceType                 ResourceType
	ResourceValue                float32
	SpellVamp                    float32
	Tenacity                     float32
}

type FullRunes struct {
	GeneralRunes      []Rune
	Keystone          Rune
	PrimaryRuneTree   RuneTree
	SecondaryRuneTree RuneTree
	StatRunes         []StatRune
}

type PlayerRunes struct {
	Keystone          Rune
	PrimaryRuneTree   RuneTree
	SecondaryRuneTree RuneTree
}

type Rune struct {
	DisplayName    string
	ID             int32
	RawDescription string
	RawDisplayName string
}

type RuneTree struct {
	DisplayName    string
	ID             int32
	RawDescription string
	RawDisplayName string
}

type StatRune struct {
	ID             int32
	RawDescription string
}

type Player struct {
	ChampionName    string
	IsBot           bool
	IsDead          bool
	Items           []PlayerItem
	Level           int32
	Position        Position
	RawChampionName string
	RespawnTimer    float64
	Runes           PlayerRunes
	Scores          PlayerScores
	// RawSkinName and SkinName are absent when spectating.
	RawSkinName    *string
	SkinName       *string
	SkinID         int32 `schema:",alias=skinId"`
	SummonerName   string
	SummonerSpells SummonerSpells
	Team           TeamID
}

type PlayerItem struct {
	CanUse         bool
	Consumable     bool
	Count          int32
	DisplayName    string
	ItemID         int32 `schema:",alias=itemId"`
	Price          int32
	RawDescription string
	RawDisplayName string
	Slot           int32
}

type PlayerScores struct {
	Kills      int32
	Deaths     int32
	Assists    int32
	CreepScore int32
	WardScore  float32
}

type SummonerSpells struct {
	SummonerSpellOne SummonerSpell
	SummonerSpellTwo SummonerSpell
}

type SummonerSpell struct {
	DisplayName    string
	RawDescription string
	RawDisplayName string
}

type GameStats struct {
	GameMode   GameMode
	GameTime   float64
	MapName    MapName
	MapNumber  int32
	MapTerrain MapTerrain
}
