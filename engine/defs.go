package engine

import "github.com/ccc2223/Castle-Defense-sub001/types"

// Defs is the immutable game content produced by the loader. The engine
// never mutates it except for Balance, which changes only through
// Engine.SetBalance.
type Defs struct {
	Game     types.GameDef
	Towers   map[types.TowerClass]types.TowerDef
	Items    map[string]types.ItemDef
	Monsters map[string]types.MonsterDef
	Bosses   map[string]types.BossDef
}

// LootTables merges the monster and boss drop tables into a single map
// keyed by entity type. Boss types shadow monster types on collision,
// which the loader rejects anyway.
func (d *Defs) LootTables() map[string]types.LootTable {
	tables := make(map[string]types.LootTable, len(d.Monsters)+len(d.Bosses))
	for name, m := range d.Monsters {
		tables[name] = m.Loot
	}
	for name, b := range d.Bosses {
		tables[name] = b.Loot
	}
	return tables
}
