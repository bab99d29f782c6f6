package loader

import (
	"strings"
	"testing"

	"github.com/ccc2223/Castle-Defense-sub001/types"
)

func TestLoad_MinimalGame(t *testing.T) {
	defs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.Game.Title != "Minimal Test Game" {
		t.Errorf("Title = %q, want %q", defs.Game.Title, "Minimal Test Game")
	}
	if defs.Game.CastleHealth != 500 {
		t.Errorf("CastleHealth = %v, want 500", defs.Game.CastleHealth)
	}
	// Omitted fields fall back to defaults.
	if defs.Game.Width != 800 || defs.Game.Height != 600 {
		t.Errorf("board = %vx%v, want defaults 800x600", defs.Game.Width, defs.Game.Height)
	}
	if defs.Game.Balance.SpawnBase != 5 {
		t.Errorf("SpawnBase = %d, want default 5", defs.Game.Balance.SpawnBase)
	}
	if _, ok := defs.Towers[types.ClassArcher]; !ok {
		t.Error("tower Archer not found")
	}
	if _, ok := defs.Monsters["Grunt"]; !ok {
		t.Error("monster Grunt not found")
	}
}

func TestLoad_FullGame(t *testing.T) {
	defs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Game metadata.
	if defs.Game.Title != "Full Test Game" {
		t.Errorf("Title = %q", defs.Game.Title)
	}
	if defs.Game.Version != "0.2.0" {
		t.Errorf("Version = %q", defs.Game.Version)
	}
	if defs.Game.CoinResource != "Coins" {
		t.Errorf("CoinResource = %q", defs.Game.CoinResource)
	}
	if defs.Game.Initial["Stone"] != 100 {
		t.Errorf("initial Stone = %d", defs.Game.Initial["Stone"])
	}

	// Balance: overridden fields take, omitted ones default.
	bal := defs.Game.Balance
	if bal.UpgradeCostGrowth != 1.6 {
		t.Errorf("UpgradeCostGrowth = %v", bal.UpgradeCostGrowth)
	}
	if bal.BossWaveEvery != 5 {
		t.Errorf("BossWaveEvery = %d", bal.BossWaveEvery)
	}
	if bal.DamageGrowth != 1.25 {
		t.Errorf("DamageGrowth = %v, want default 1.25", bal.DamageGrowth)
	}

	// Towers.
	if len(defs.Towers) != 3 {
		t.Errorf("expected 3 towers, got %d", len(defs.Towers))
	}
	splash := defs.Towers[types.ClassSplash]
	if splash.AoERadius != 50 {
		t.Errorf("Splash aoe_radius = %v", splash.AoERadius)
	}
	if splash.Cost["Iron"] != 5 {
		t.Errorf("Splash iron cost = %d", splash.Cost["Iron"])
	}
	frozen := defs.Towers[types.ClassFrozen]
	if frozen.SlowFactor != 0.5 || frozen.SlowDur != 3 {
		t.Errorf("Frozen slow = (%v, %v)", frozen.SlowFactor, frozen.SlowDur)
	}

	// Items.
	sigil, ok := defs.Items["Frost Sigil"]
	if !ok {
		t.Fatal("item 'Frost Sigil' not found")
	}
	if sigil.Kind != types.EffectArea {
		t.Errorf("Frost Sigil kind = %q", sigil.Kind)
	}
	if sigil.AoEMultiplier != 1.3 || sigil.SplashRadius != 30 {
		t.Errorf("Frost Sigil = (%v, %v)", sigil.AoEMultiplier, sigil.SplashRadius)
	}
	if sigil.Cost["Frost Core"] != 1 {
		t.Errorf("Frost Sigil core cost = %d", sigil.Cost["Frost Core"])
	}
	charm := defs.Items["Ricochet Charm"]
	if len(charm.Compatible) != 1 || charm.Compatible[0] != types.ClassArcher {
		t.Errorf("Ricochet Charm compatible = %v", charm.Compatible)
	}

	// Monsters.
	wisp := defs.Monsters["Wisp"]
	if !wisp.Flying || wisp.MinWave != 4 {
		t.Errorf("Wisp = flying %v, min_wave %d", wisp.Flying, wisp.MinWave)
	}
	grunt := defs.Monsters["Grunt"]
	if len(grunt.Loot.Entries) != 2 {
		t.Fatalf("Grunt loot entries = %d, want 2", len(grunt.Loot.Entries))
	}
	// Declaration order is preserved.
	if grunt.Loot.Entries[0].Resource != "Coins" || grunt.Loot.Entries[1].Resource != "Stone" {
		t.Errorf("Grunt loot order = %s, %s",
			grunt.Loot.Entries[0].Resource, grunt.Loot.Entries[1].Resource)
	}
	if grunt.Loot.Entries[1].ChanceScaling != 0.005 {
		t.Errorf("Grunt stone chance_scaling = %v", grunt.Loot.Entries[1].ChanceScaling)
	}

	// Bosses.
	frost, ok := defs.Bosses["Frost"]
	if !ok {
		t.Fatal("boss 'Frost' not found")
	}
	if frost.Health != 500 {
		t.Errorf("Frost health = %v", frost.Health)
	}
	if frost.Loot.Entries[0].QuantityScaling != 0.034 {
		t.Errorf("Frost core quantity_scaling = %v", frost.Loot.Entries[0].QuantityScaling)
	}

	// Loot tables merge monsters and bosses under one namespace.
	tables := defs.LootTables()
	if _, ok := tables["Grunt"]; !ok {
		t.Error("merged tables missing Grunt")
	}
	if _, ok := tables["Frost"]; !ok {
		t.Error("merged tables missing Frost")
	}
}

func TestLoad_DropDefaults(t *testing.T) {
	defs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	e := defs.Monsters["Grunt"].Loot.Entries[0]
	if e.ChanceScaling != 0 || e.QuantityScaling != 0 {
		t.Errorf("scaling defaults = (%v, %v), want zero", e.ChanceScaling, e.QuantityScaling)
	}
}

func TestLoad_InvalidRefs_Fails(t *testing.T) {
	_, err := Load("testdata/invalid_refs")
	if err == nil {
		t.Fatal("expected error for undeclared resources")
	}
	if !strings.Contains(err.Error(), "undeclared resource") {
		t.Errorf("error = %q, expected 'undeclared resource'", err.Error())
	}
}

func TestLoad_DuplicateTowers_Fails(t *testing.T) {
	_, err := Load("testdata/duplicate_towers")
	if err == nil {
		t.Fatal("expected error for duplicate tower class")
	}
	if !strings.Contains(err.Error(), "duplicate tower class") {
		t.Errorf("error = %q, expected 'duplicate tower class'", err.Error())
	}
}

func TestLoad_BadLuaSyntax_Fails(t *testing.T) {
	if _, err := Load("testdata/bad_lua"); err == nil {
		t.Fatal("expected error for bad Lua syntax")
	}
}

func TestLoad_NoGameDef_Fails(t *testing.T) {
	_, err := Load("testdata/no_game")
	if err == nil {
		t.Fatal("expected error for missing Game{} definition")
	}
	if !strings.Contains(err.Error(), "no Game{} definition") {
		t.Errorf("error = %q, expected 'no Game{} definition'", err.Error())
	}
}

func TestLoad_MissingDir_Fails(t *testing.T) {
	if _, err := Load("testdata/does_not_exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoad_SandboxEnforced(t *testing.T) {
	L := newSandboxedVM()
	defer L.Close()

	// os and io never open.
	if err := L.DoString(`os.execute("echo pwned")`); err == nil {
		t.Error("expected sandbox to block os.execute")
	}
	if err := L.DoString(`io.open("/etc/passwd")`); err == nil {
		t.Error("expected sandbox to block io.open")
	}
	// Removed base globals.
	if err := L.DoString(`loadstring("return 1")()`); err == nil {
		t.Error("expected sandbox to block loadstring")
	}
	// Determinism: no reseeding from content.
	if err := L.DoString(`math.randomseed(42)`); err == nil {
		t.Error("expected sandbox to block math.randomseed")
	}
}

func TestLoad_ShippedContent(t *testing.T) {
	defs, err := Load("../content")
	if err != nil {
		t.Fatalf("shipped content failed to load: %v", err)
	}
	if len(defs.Towers) != 4 {
		t.Errorf("towers = %d, want 4", len(defs.Towers))
	}
	if len(defs.Bosses) != 4 {
		t.Errorf("bosses = %d, want 4", len(defs.Bosses))
	}
	if defs.Game.CoinResource != "Monster Coins" {
		t.Errorf("coin resource = %q", defs.Game.CoinResource)
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"towers.lua", "bosses.lua", "game.lua", "items.lua"})
	want := []string{"game.lua", "bosses.lua", "items.lua", "towers.lua"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
