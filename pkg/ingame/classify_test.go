package ingame

import (
	"encoding/json"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKiller(t *testing.T) {
	tests := []struct {
		token string
		want  Killer
	}{
		{"Turret_T1_C_01_A", Killer{Kind: KillerTurret, Turret: TurretTeam1C01A}},
		{"Turret_T1_C_010_A", Killer{Kind: KillerTurret, Turret: TurretTeam1C10A}},
		{"Turret_ChaosTurretShrine_A", Killer{Kind: KillerTurret, Turret: TurretTeam2Fountain}},
		{"Obelisk", Killer{Kind: KillerTurret, Turret: TurretObelisk}},
		{"Turret_T3_X_99_A", Killer{Kind: KillerTurret, Turret: TurretUnknown}},
		{"SRU_Dragon_Elder", Killer{Kind: KillerDragon, Dragon: DragonElder}},
		{"SRU_Dragon_Air", Killer{Kind: KillerDragon, Dragon: DragonCloud}},
		{"Minion_Classic_Melee", Killer{Kind: KillerMinion}},
		{"Minion_T1L1S04N0003", Killer{Kind: KillerMinion}},
		{"SRU_RiftHerald17.1.1", Killer{Kind: KillerRiftHerald}},
		{"SRU_Gromp13.1.1", Killer{Kind: KillerGromp}},
		{"SRU_Blue1.1.1", Killer{Kind: KillerBlue}},
		{"SRU_Murkwolf2.1.1", Killer{Kind: KillerMurkwolf}},
		{"SRU_Razorbeak3.1.1", Killer{Kind: KillerRazorbeak}},
		{"SRU_Red4.1.1", Killer{Kind: KillerRed}},
		{"SRU_Krug5.1.2", Killer{Kind: KillerKrug}},
		{"Hide on bush", Killer{Kind: KillerSummoner, Name: "Hide on bush"}},
		{"", Killer{Kind: KillerSummoner}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := ClassifyKiller(tt.token)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.Dragon, got.Dragon)
			assert.Equal(t, tt.want.Turret, got.Turret)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.Equal(t, tt.token, got.Raw())
		})
	}
}

func TestClassifyKiller_BaronIsHerald(t *testing.T) {
	// Pinned until a live Baron kill confirms which kind the client means.
	got := ClassifyKiller("SRU_Baron17.1.1")
	assert.Equal(t, KillerRiftHerald, got.Kind)
}

func TestClassifyKiller_Total(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abcXYZ_019 SRU_TurretMinionDragon")
	for i := 0; i < 500; i++ {
		r := make([]rune, rng.Intn(24))
		for j := range r {
			r[j] = alphabet[rng.Intn(len(alphabet))]
		}
		got := ClassifyKiller(string(r))
		assert.NotEqual(t, "Invalid", got.Kind.String(), "token %q", string(r))
	}
}

func TestClassifyKillerWith_OrderMatters(t *testing.T) {
	token := "Turret_T1_Baron_01_A"

	assert.Equal(t, KillerTurret, ClassifyKiller(token).Kind)

	reversed := KillerRules()
	slices.Reverse(reversed)
	assert.Equal(t, KillerRiftHerald, ClassifyKillerWith(reversed, token).Kind)

	// the default chain is not affected by callers editing their copy
	assert.Equal(t, "dragon", KillerRules()[0].Name)
}

func TestClassifyKillerWith_NoRules(t *testing.T) {
	got := ClassifyKillerWith(nil, "SRU_Dragon_Elder")
	assert.True(t, got.IsSummoner())
	assert.Equal(t, "SRU_Dragon_Elder", got.Name)
}

func TestKiller_JSON(t *testing.T) {
	var k Killer
	require.NoError(t, json.Unmarshal([]byte(`"SRU_Dragon_Fire"`), &k))
	assert.Equal(t, KillerDragon, k.Kind)
	assert.Equal(t, DragonInfernal, k.Dragon)
	assert.Equal(t, "Dragon(Infernal)", k.String())

	b, err := json.Marshal(k)
	require.NoError(t, err)
	assert.JSONEq(t, `"SRU_Dragon_Fire"`, string(b))

	b, err = json.Marshal(Killer{Kind: KillerTurret, Turret: TurretTeam2R01A})
	require.NoError(t, err)
	assert.JSONEq(t, `"Turret_T2_R_01_A"`, string(b))
}

func TestKiller_String(t *testing.T) {
	assert.Equal(t, "Turret(Team1C01A)", ClassifyKiller("Turret_T1_C_01_A").String())
	assert.Equal(t, "Summoner(Faker)", SummonerKiller("Faker").String())
	assert.Equal(t, "Krug", ClassifyKiller("SRU_Krug5.1.2").String())
	assert.Equal(t, "Invalid", Killer{}.String())
}

func TestParseDragonKind(t *testing.T) {
	tests := []struct {
		in      string
		want    DragonKind
		wantErr bool
	}{
		{in: "Fire", want: DragonInfernal},
		{in: "SRU_Dragon_Water", want: DragonOcean},
		{in: "Earth", want: DragonMountain},
		{in: "SRU_Dragon_Chemtech", want: DragonChemtech},
		{in: "Elder", want: DragonElder},
		{in: "Wind", wantErr: true},
		{in: "fire", wantErr: true},
		{in: "Infernal", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDragonKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDragonDecode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDragonKind_Spellings(t *testing.T) {
	assert.Equal(t, "Air", DragonCloud.ShortName())
	assert.Equal(t, "SRU_Dragon_Air", DragonCloud.EngineName())

	_, err := json.Marshal(DragonKind("Wind"))
	assert.ErrorIs(t, err, ErrDragonDecode)
}

func TestClassifyTurret(t *testing.T) {
	assert.Equal(t, TurretTeam1C10A, ClassifyTurret("Turret_T1_C_010_A"))
	assert.Equal(t, TurretTeam1Fountain, ClassifyTurret("Turret_OrderTurretShrine_A"))
	assert.Equal(t, TurretUnknown, ClassifyTurret("Turret_T1_C_10_A"))
	assert.Equal(t, TurretUnknown, ClassifyTurret("Hide on bush"))

	assert.Equal(t, 1, TurretTeam1R03A.Team())
	assert.Equal(t, 2, TurretTeam2L04A.Team())
	assert.Equal(t, 0, TurretObelisk.Team())
	assert.Equal(t, "Unknown", TurretUnknown.Identifier())
}

func TestClassifyInhibitor(t *testing.T) {
	assert.Equal(t, InhibitorTeam2C1, ClassifyInhibitor("Barracks_T2_C1"))
	assert.Equal(t, InhibitorTeam1L1, ClassifyInhibitor("Barracks_T1_L1"))
	assert.Equal(t, InhibitorUnknown, ClassifyInhibitor("Barracks_T3_C1"))
}

func TestStructureEventsKeepIdentifiers(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		id     func(GameEvent) string
		wantID string
	}{
		{
			name:   "known turret",
			in:     `{"EventID":4,"EventName":"TurretKilled","EventTime":1,"Assisters":[],"KillerName":"red1","TurretKilled":"Turret_T2_L_03_A"}`,
			id:     func(e GameEvent) string { return e.(TurretKilled).TurretKilled.ID() },
			wantID: "Turret_T2_L_03_A",
		},
		{
			name:   "unknown turret",
			in:     `{"EventID":4,"EventName":"TurretKilled","EventTime":1,"Assisters":[],"KillerName":"red1","TurretKilled":"Turret_T2_C_09_A"}`,
			id:     func(e GameEvent) string { return e.(TurretKilled).TurretKilled.ID() },
			wantID: "Turret_T2_C_09_A",
		},
		{
			name:   "unknown inhibitor",
			in:     `{"EventID":7,"EventName":"InhibRespawned","EventTime":1,"InhibRespawned":"Barracks_T3_C1"}`,
			id:     func(e GameEvent) string { return e.(InhibRespawned).InhibRespawned.ID() },
			wantID: "Barracks_T3_C1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := DecodeEvent([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, tt.id(e))

			out, err := EncodeEvent(e)
			require.NoError(t, err)
			assert.JSONEq(t, tt.in, string(out))
		})
	}

	assert.Equal(t, TurretUnknown, UnknownTurret("Turret_T2_C_09_A").Slot)
	assert.Equal(t, 0, UnknownTurret("Turret_T2_C_09_A").Team())
	assert.Equal(t, "Unknown", Turret{}.ID())
	assert.Equal(t, "Team2L03A", Turret{Slot: TurretTeam2L03A}.String())
	assert.Equal(t, "Barracks_T1_C1", Inhibitor{Slot: InhibitorTeam1C1}.ID())
	assert.Equal(t, InhibitorUnknown, UnknownInhibitor("Barracks_T3_C1").Slot)
}

func TestParseStringBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{in: "True", want: true},
		{in: "False", want: false},
		{in: "Maybe", wantErr: true},
		{in: "true", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStringBool(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBoolEncoding)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringBool_JSON(t *testing.T) {
	var b StringBool
	require.NoError(t, json.Unmarshal([]byte(`"True"`), &b))
	assert.True(t, bool(b))

	assert.ErrorIs(t, json.Unmarshal([]byte(`true`), &b), ErrInvalidBoolEncoding)

	out, err := json.Marshal(StringBool(false))
	require.NoError(t, err)
	assert.Equal(t, `"False"`, string(out))
}

func TestOpenEnums(t *testing.T) {
	var mode GameMode
	require.NoError(t, json.Unmarshal([]byte(`"GAMEMODEX"`), &mode))
	assert.Equal(t, ModeNexusBlitz, mode)
	require.NoError(t, json.Unmarshal([]byte(`"TUTORIAL_MODULE_2"`), &mode))
	assert.Equal(t, ModeTutorial2, mode)
	require.NoError(t, json.Unmarshal([]byte(`"SOMETHINGNEW"`), &mode))
	assert.Equal(t, ModeUnknown, mode)

	var team TeamID
	require.NoError(t, json.Unmarshal([]byte(`"PURPLE"`), &team))
	assert.Equal(t, TeamUnknown, team)

	var m MapName
	require.NoError(t, json.Unmarshal([]byte(`"Map30"`), &m))
	assert.Equal(t, MapUnknown, m)
}

func TestClosedEnums(t *testing.T) {
	var terrain MapTerrain
	require.NoError(t, json.Unmarshal([]byte(`"Chemtech"`), &terrain))
	assert.Equal(t, TerrainChemtech, terrain)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"Volcanic"`), &terrain), ErrSchemaMismatch)

	var result GameResult
	assert.ErrorIs(t, json.Unmarshal([]byte(`"Draw"`), &result), ErrSchemaMismatch)
}
