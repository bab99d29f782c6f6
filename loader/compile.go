// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"sort"

	"github.com/ccc2223/Castle-Defense-sub001/engine"
	"github.com/ccc2223/Castle-Defense-sub001/types"
	lua "github.com/yuin/gopher-lua"
)

// rawTower holds a tower table before compilation.
type rawTower struct {
	class string
	table *lua.LTable
}

// rawItem holds an item table before compilation.
type rawItem struct {
	name  string
	table *lua.LTable
}

// rawMonster holds a monster table before compilation.
type rawMonster struct {
	mtype string
	table *lua.LTable
}

// rawBoss holds a boss table before compilation.
type rawBoss struct {
	btype string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or the default if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// getInt returns an int field from a Lua table, or the default if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	return int(getNumber(tbl, key, float64(def)))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToIntMap converts a Lua table to a map[string]int.
func tableToIntMap(tbl *lua.LTable) map[string]int {
	if tbl == nil {
		return nil
	}
	m := map[string]int{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if n, ok := v.(lua.LNumber); ok {
				m[string(ks)] = int(n)
			}
		}
	})
	return m
}

// tableToStringList converts a Lua array table to a []string.
func tableToStringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*engine.Defs, error) {
	defs := &engine.Defs{
		Towers:   map[types.TowerClass]types.TowerDef{},
		Items:    map[string]types.ItemDef{},
		Monsters: map[string]types.MonsterDef{},
		Bosses:   map[string]types.BossDef{},
	}

	// Game.
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	// Towers.
	for _, raw := range coll.towers {
		if _, dup := defs.Towers[types.TowerClass(raw.class)]; dup {
			return nil, fmt.Errorf("duplicate tower class %q", raw.class)
		}
		defs.Towers[types.TowerClass(raw.class)] = compileTower(raw)
	}

	// Items.
	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.name]; dup {
			return nil, fmt.Errorf("duplicate item %q", raw.name)
		}
		defs.Items[raw.name] = compileItem(raw)
	}

	// Monsters.
	for _, raw := range coll.monsters {
		if _, dup := defs.Monsters[raw.mtype]; dup {
			return nil, fmt.Errorf("duplicate monster type %q", raw.mtype)
		}
		m, err := compileMonster(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling monster %s: %w", raw.mtype, err)
		}
		defs.Monsters[raw.mtype] = m
	}

	// Bosses. Boss types share the loot-table namespace with monsters.
	for _, raw := range coll.bosses {
		if _, dup := defs.Bosses[raw.btype]; dup {
			return nil, fmt.Errorf("duplicate boss type %q", raw.btype)
		}
		if _, clash := defs.Monsters[raw.btype]; clash {
			return nil, fmt.Errorf("boss type %q collides with a monster type", raw.btype)
		}
		b, err := compileBoss(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling boss %s: %w", raw.btype, err)
		}
		defs.Bosses[raw.btype] = b
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	game := types.GameDef{
		Title:        getString(tbl, "title"),
		Version:      getString(tbl, "version"),
		Intro:        getString(tbl, "intro"),
		Width:        getNumber(tbl, "width", 800),
		Height:       getNumber(tbl, "height", 600),
		CastleHealth: getNumber(tbl, "castle_health", 0),
		Resources:    tableToStringList(getTable(tbl, "resources")),
		Initial:      tableToIntMap(getTable(tbl, "initial")),
		CoinResource: getString(tbl, "coin_resource"),
	}
	game.Balance = compileBalance(getTable(tbl, "balance"))
	return game
}

// compileBalance fills the balance block, defaulting any omitted fields.
func compileBalance(tbl *lua.LTable) types.Balance {
	if tbl == nil {
		tbl = &lua.LTable{}
	}
	return types.Balance{
		UpgradeCostGrowth: getNumber(tbl, "upgrade_cost_growth", 1.5),
		CoinCostGrowth:    getNumber(tbl, "coin_cost_growth", 1.4),
		DamageGrowth:      getNumber(tbl, "damage_growth", 1.25),
		AttackSpeedGrowth: getNumber(tbl, "attack_speed_growth", 1.15),
		RangeGrowth:       getNumber(tbl, "range_growth", 1.1),
		AoEGrowth:         getNumber(tbl, "aoe_growth", 1.15),
		SlowGrowth:        getNumber(tbl, "slow_growth", 1.1),
		WaveDifficulty:    getNumber(tbl, "wave_difficulty", 1.2),
		SpawnBase:         getInt(tbl, "spawn_base", 5),
		SpawnInterval:     getNumber(tbl, "spawn_interval", 1.0),
		BossWaveEvery:     getInt(tbl, "boss_wave_every", 10),
	}
}

func compileTower(raw rawTower) types.TowerDef {
	tbl := raw.table
	return types.TowerDef{
		Class:       types.TowerClass(raw.class),
		Damage:      getNumber(tbl, "damage", 0),
		AttackSpeed: getNumber(tbl, "attack_speed", 0),
		Range:       getNumber(tbl, "range", 0),
		AoERadius:   getNumber(tbl, "aoe_radius", 0),
		SlowFactor:  getNumber(tbl, "slow_factor", 0),
		SlowDur:     getNumber(tbl, "slow_duration", 0),
		Cost:        tableToIntMap(getTable(tbl, "cost")),
		CoinCost:    getInt(tbl, "coin_cost", 0),
	}
}

func compileItem(raw rawItem) types.ItemDef {
	tbl := raw.table
	item := types.ItemDef{
		Name:          raw.name,
		Description:   getString(tbl, "description"),
		Kind:          types.ItemEffectKind(getString(tbl, "effect")),
		AoEMultiplier: getNumber(tbl, "aoe_multiplier", 1),
		SplashRadius:  getNumber(tbl, "splash_radius", 0),
		HealPercent:   getNumber(tbl, "heal_percent", 0),
		BounceChance:  getNumber(tbl, "bounce_chance", 0),
		Cost:          tableToIntMap(getTable(tbl, "cost")),
		Glow:          getString(tbl, "glow"),
	}
	for _, class := range tableToStringList(getTable(tbl, "compatible")) {
		item.Compatible = append(item.Compatible, types.TowerClass(class))
	}
	return item
}

func compileMonster(raw rawMonster) (types.MonsterDef, error) {
	tbl := raw.table
	m := types.MonsterDef{
		Type:    raw.mtype,
		Health:  getNumber(tbl, "health", 0),
		Speed:   getNumber(tbl, "speed", 0),
		Damage:  getNumber(tbl, "damage", 0),
		Flying:  getBool(tbl, "flying", false),
		MinWave: getInt(tbl, "min_wave", 1),
	}
	loot, err := compileLoot(getTable(tbl, "loot"))
	if err != nil {
		return m, err
	}
	m.Loot = loot
	return m, nil
}

func compileBoss(raw rawBoss) (types.BossDef, error) {
	tbl := raw.table
	b := types.BossDef{
		Type:   raw.btype,
		Health: getNumber(tbl, "health", 0),
		Speed:  getNumber(tbl, "speed", 0),
		Damage: getNumber(tbl, "damage", 0),
	}
	loot, err := compileLoot(getTable(tbl, "loot"))
	if err != nil {
		return b, err
	}
	b.Loot = loot
	return b, nil
}

// compileLoot converts a loot = { Drop(...), ... } list into a LootTable.
// Entry order is the declaration order, which fixes the RNG draw order.
func compileLoot(tbl *lua.LTable) (types.LootTable, error) {
	var table types.LootTable
	if tbl == nil {
		return table, nil
	}
	for i := 1; i <= tbl.MaxN(); i++ {
		entryTbl, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return table, fmt.Errorf("loot entry %d is not a Drop(...)", i)
		}
		resource := getString(entryTbl, "resource")
		if resource == "" {
			return table, fmt.Errorf("loot entry %d has no resource", i)
		}
		minQ := getNumber(entryTbl, "min", 1)
		table.Entries = append(table.Entries, types.LootEntry{
			Resource:        resource,
			BaseChance:      getNumber(entryTbl, "chance", 1),
			MinQuantity:     minQ,
			MaxQuantity:     getNumber(entryTbl, "max", minQ),
			ChanceScaling:   getNumber(entryTbl, "chance_scaling", 0),
			QuantityScaling: getNumber(entryTbl, "quantity_scaling", 0),
		})
	}
	return table, nil
}

// sortedLuaFiles returns .lua files in a directory, with game.lua first
// and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
