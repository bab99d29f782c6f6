// Package engine is the Castle Defense simulation core: tower placement
// and upgrades, deterministic combat resolution, wave progression, and
// reward dispatch. All randomness flows through a single seeded RNG so
// the same seed and the same commands replay the same game.
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ccc2223/Castle-Defense-sub001/engine/events"
	"github.com/ccc2223/Castle-Defense-sub001/engine/ledger"
	"github.com/ccc2223/Castle-Defense-sub001/engine/reward"
	"github.com/ccc2223/Castle-Defense-sub001/engine/wave"
	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// Engine is the top-level game state. Construct with New; zero value is
// not usable.
type Engine struct {
	Defs   *Defs
	RNG    *RNG
	Ledger *ledger.Ledger
	Waves  *wave.Manager

	rewards *reward.Dispatcher
	sink    events.Sink

	Towers       []*types.Tower
	Monsters     []*types.Monster
	CastleHealth float64
	GameOver     bool
}

// New wires up an engine from loaded definitions. The randomness source
// is mandatory; sink may be nil for a silent engine. Item names share
// the resource ledger so crafted items live in the same inventory as raw
// resources.
func New(defs *Defs, rng *RNG, sink events.Sink) (*Engine, error) {
	if defs == nil {
		return nil, errors.New("engine: nil defs")
	}
	if rng == nil {
		return nil, errors.New("engine: randomness source is required")
	}
	if sink == nil {
		sink = events.Hooks{}
	}

	resources := append([]string(nil), defs.Game.Resources...)
	itemNames := make([]string, 0, len(defs.Items))
	for name := range defs.Items {
		itemNames = append(itemNames, name)
	}
	sort.Strings(itemNames)
	resources = append(resources, itemNames...)

	led := ledger.New(resources, defs.Game.Initial)
	e := &Engine{
		Defs:         defs,
		RNG:          rng,
		Ledger:       led,
		Waves:        wave.NewManager(defs.Monsters, defs.Bosses, &defs.Game.Balance),
		sink:         sink,
		CastleHealth: defs.Game.CastleHealth,
	}
	e.rewards = reward.New(defs.LootTables(), led, sink, rng)
	return e, nil
}

// SetRNG swaps the randomness source and rewires the reward dispatcher
// onto it. Used by reseeding and save restore.
func (e *Engine) SetRNG(r *RNG) {
	e.RNG = r
	e.rewards = reward.New(e.Defs.LootTables(), e.Ledger, e.sink, r)
}

// castlePos is where monsters walk to: bottom center of the field.
func (e *Engine) castlePos() types.Vec2 {
	return types.Vec2{X: e.Defs.Game.Width / 2, Y: e.Defs.Game.Height}
}

// Build places a new tower, spending its placement cost all-or-nothing.
func (e *Engine) Build(class types.TowerClass, pos types.Vec2) (*types.Tower, error) {
	cost, err := PlacementCost(class, e.Defs)
	if err != nil {
		return nil, err
	}
	if !e.Ledger.SpendAll(cost) {
		return nil, fmt.Errorf("insufficient resources to build %s tower", class)
	}
	t, err := NewTower(class, pos, e.Defs)
	if err != nil {
		return nil, err
	}
	e.Towers = append(e.Towers, t)
	return t, nil
}

// Tower looks up a placed tower by ID.
func (e *Engine) Tower(id string) (*types.Tower, error) {
	for _, t := range e.Towers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("no tower with id %q", id)
}

// StartWave begins the next wave. Fails if one is already running or the
// game is over.
func (e *Engine) StartWave() (int, error) {
	if e.GameOver {
		return 0, errors.New("game over")
	}
	if err := e.Waves.StartNext(); err != nil {
		return 0, err
	}
	return e.Waves.Wave, nil
}

// Equip moves an item from the inventory into a tower slot.
func (e *Engine) Equip(towerID string, slot int, item string) error {
	t, err := e.Tower(towerID)
	if err != nil {
		return err
	}
	return Equip(t, slot, item, e.Defs, e.Ledger)
}

// Unequip clears a tower slot back into the inventory, returning the
// removed item name ("" if the slot was empty).
func (e *Engine) Unequip(towerID string, slot int) (string, error) {
	t, err := e.Tower(towerID)
	if err != nil {
		return "", err
	}
	return Unequip(t, slot, e.Defs, e.Ledger)
}

// Upgrade advances one upgrade path on a placed tower.
func (e *Engine) Upgrade(towerID, path string) error {
	t, err := e.Tower(towerID)
	if err != nil {
		return err
	}
	return Upgrade(t, e.Defs, e.Ledger, path)
}

// Craft spends an item's crafting cost and adds one copy to the inventory.
func (e *Engine) Craft(item string) error {
	def, ok := e.Defs.Items[item]
	if !ok {
		return fmt.Errorf("unknown item %q", item)
	}
	if !e.Ledger.SpendAll(def.Cost) {
		return fmt.Errorf("insufficient resources to craft %s", item)
	}
	return e.Ledger.Add(item, 1)
}

// GetLoot rolls the loot table for an entity type at a wave, without
// crediting the ledger. Mainly for inspection and tuning.
func (e *Engine) GetLoot(entityType string, waveNum int) (map[string]int, error) {
	return e.rewards.Loot(entityType, waveNum)
}

// Balance keys accepted by SetBalance.
const (
	BalUpgradeCostGrowth = "upgrade_cost_growth"
	BalCoinCostGrowth    = "coin_cost_growth"
	BalDamageGrowth      = "damage_growth"
	BalAttackSpeedGrowth = "attack_speed_growth"
	BalRangeGrowth       = "range_growth"
	BalAoEGrowth         = "aoe_growth"
	BalSlowGrowth        = "slow_growth"
	BalWaveDifficulty    = "wave_difficulty"
	BalSpawnBase         = "spawn_base"
	BalSpawnInterval     = "spawn_interval"
	BalBossWaveEvery     = "boss_wave_every"
)

// SetBalance mutates one balance constant. This is the only mutation
// path into Balance after load.
func (e *Engine) SetBalance(key string, value float64) error {
	bal := &e.Defs.Game.Balance
	switch key {
	case BalUpgradeCostGrowth:
		bal.UpgradeCostGrowth = value
	case BalCoinCostGrowth:
		bal.CoinCostGrowth = value
	case BalDamageGrowth:
		bal.DamageGrowth = value
	case BalAttackSpeedGrowth:
		bal.AttackSpeedGrowth = value
	case BalRangeGrowth:
		bal.RangeGrowth = value
	case BalAoEGrowth:
		bal.AoEGrowth = value
	case BalSlowGrowth:
		bal.SlowGrowth = value
	case BalWaveDifficulty:
		bal.WaveDifficulty = value
	case BalSpawnBase:
		if value < 0 {
			return fmt.Errorf("spawn_base must be non-negative")
		}
		bal.SpawnBase = int(value)
	case BalSpawnInterval:
		if value <= 0 {
			return fmt.Errorf("spawn_interval must be positive")
		}
		bal.SpawnInterval = value
	case BalBossWaveEvery:
		bal.BossWaveEvery = int(value)
	default:
		return fmt.Errorf("unknown balance key %q", key)
	}
	return nil
}

// healCastle applies item-driven healing, capped at full health.
func (e *Engine) healCastle(amount float64) {
	e.CastleHealth += amount
	if e.CastleHealth > e.Defs.Game.CastleHealth {
		e.CastleHealth = e.Defs.Game.CastleHealth
	}
}

// Tick advances the simulation by dt seconds: spawns, tower attacks,
// monster movement and castle damage, then dead-monster cleanup. Order
// is fixed so a given seed and command script replays identically.
func (e *Engine) Tick(dt float64) error {
	if e.GameOver {
		return nil
	}

	spawned, err := e.Waves.Update(dt, e.RNG, e.Defs.Game.Width)
	if err != nil {
		return err
	}
	e.Monsters = append(e.Monsters, spawned...)

	for _, t := range e.Towers {
		if t.Cooldown > 0 {
			t.Cooldown -= dt
		}
		if t.Cooldown > 0 {
			continue
		}
		targets := TargetsInRange(t, e.Monsters)
		if len(targets) == 0 {
			continue
		}
		out, err := Attack(t, targets, e.RNG, e.sink)
		if err != nil {
			return err
		}
		t.Cooldown = 1.0 / t.Derived.AttackSpeed
		if t.Derived.HealPercent > 0 {
			e.healCastle(out.DamageDealt * t.Derived.HealPercent)
		}
		if len(out.Kills) > 0 {
			e.rewards.OnKills(out.Kills, e.Waves.Wave)
		}
	}

	castle := e.castlePos()
	for _, m := range e.Monsters {
		e.CastleHealth -= advanceMonster(m, castle, dt)
	}
	if e.CastleHealth <= 0 {
		e.CastleHealth = 0
		e.GameOver = true
	}

	live := e.Monsters[:0]
	for _, m := range e.Monsters {
		if !m.Dead {
			live = append(live, m)
		}
	}
	e.Monsters = live

	e.Waves.Finish(len(e.Monsters))
	return nil
}
