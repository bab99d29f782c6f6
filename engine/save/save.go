// Package save persists a game to JSON and restores it. Runtime-only
// state is not written: derived tower stats are rebuilt through the item
// effect pipeline on load, and live monsters are dropped — a game saves
// between waves, not mid-fight.
package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ccc2223/Castle-Defense-sub001/engine"
	"github.com/ccc2223/Castle-Defense-sub001/engine/effects"
	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// Version guards against loading saves from incompatible layouts.
const Version = 1

// TowerState is the persisted slice of one tower.
type TowerState struct {
	ID    string           `json:"id"`
	Class types.TowerClass `json:"class"`
	Pos   types.Vec2       `json:"pos"`

	BaseDamage      float64 `json:"base_damage"`
	BaseAttackSpeed float64 `json:"base_attack_speed"`
	BaseRange       float64 `json:"base_range"`
	BaseAoERadius   float64 `json:"base_aoe_radius,omitempty"`
	BaseSlowFactor  float64 `json:"base_slow_factor,omitempty"`
	BaseSlowDur     float64 `json:"base_slow_dur,omitempty"`

	DamageLevel      int `json:"damage_level"`
	AttackSpeedLevel int `json:"attack_speed_level"`
	RangeLevel       int `json:"range_level"`
	ExtraLevel       int `json:"extra_level"`

	Slots []string `json:"slots"`
}

// Data is the full persisted game.
type Data struct {
	Version      int            `json:"version"`
	Wave         int            `json:"wave"`
	CastleHealth float64        `json:"castle_health"`
	Resources    map[string]int `json:"resources"`
	Towers       []TowerState   `json:"towers"`
	Balance      types.Balance  `json:"balance"`
	RNGSeed      int64          `json:"rng_seed"`
	RNGPosition  int64          `json:"rng_position"`
}

// Capture snapshots an engine into persistable form.
func Capture(e *engine.Engine) *Data {
	d := &Data{
		Version:      Version,
		Wave:         e.Waves.Wave,
		CastleHealth: e.CastleHealth,
		Resources:    e.Ledger.Snapshot(),
		Balance:      e.Defs.Game.Balance,
		RNGSeed:      e.RNG.Seed(),
		RNGPosition:  e.RNG.Position(),
	}
	for _, t := range e.Towers {
		ts := TowerState{
			ID:    t.ID,
			Class: t.Class,
			Pos:   t.Pos,

			BaseDamage:      t.BaseDamage,
			BaseAttackSpeed: t.BaseAttackSpeed,
			BaseRange:       t.BaseRange,
			BaseAoERadius:   t.BaseAoERadius,
			BaseSlowFactor:  t.BaseSlowFactor,
			BaseSlowDur:     t.BaseSlowDur,

			DamageLevel:      t.DamageLevel,
			AttackSpeedLevel: t.AttackSpeedLevel,
			RangeLevel:       t.RangeLevel,
			ExtraLevel:       t.ExtraLevel,

			Slots: append([]string(nil), t.Slots[:]...),
		}
		d.Towers = append(d.Towers, ts)
	}
	return d
}

// Apply restores captured state onto a freshly constructed engine.
// Derived tower stats are recomputed, never read from the file.
func Apply(e *engine.Engine, d *Data) error {
	if d.Version != Version {
		return fmt.Errorf("save version %d not supported", d.Version)
	}

	e.Defs.Game.Balance = d.Balance
	e.CastleHealth = d.CastleHealth
	e.Waves.Wave = d.Wave
	e.SetRNG(engine.RestoreRNG(d.RNGSeed, d.RNGPosition))
	e.Monsters = nil
	e.GameOver = d.CastleHealth <= 0

	for res, n := range d.Resources {
		cur := e.Ledger.Get(res)
		switch {
		case n > cur:
			if err := e.Ledger.Add(res, n-cur); err != nil {
				return fmt.Errorf("restore resources: %w", err)
			}
		case n < cur:
			e.Ledger.Spend(res, cur-n)
		}
	}

	e.Towers = nil
	for _, ts := range d.Towers {
		if _, ok := e.Defs.Towers[ts.Class]; !ok {
			return fmt.Errorf("save references unknown tower class %q", ts.Class)
		}
		t := &types.Tower{
			ID:    ts.ID,
			Class: ts.Class,
			Pos:   ts.Pos,

			BaseDamage:      ts.BaseDamage,
			BaseAttackSpeed: ts.BaseAttackSpeed,
			BaseRange:       ts.BaseRange,
			BaseAoERadius:   ts.BaseAoERadius,
			BaseSlowFactor:  ts.BaseSlowFactor,
			BaseSlowDur:     ts.BaseSlowDur,

			DamageLevel:      ts.DamageLevel,
			AttackSpeedLevel: ts.AttackSpeedLevel,
			RangeLevel:       ts.RangeLevel,
			ExtraLevel:       ts.ExtraLevel,
		}
		for i, item := range ts.Slots {
			if i >= types.TowerSlots {
				break
			}
			if item != "" {
				if _, ok := e.Defs.Items[item]; !ok {
					return fmt.Errorf("save references unknown item %q", item)
				}
			}
			t.Slots[i] = item
		}
		effects.Apply(t, e.Defs.Items)
		e.Towers = append(e.Towers, t)
	}
	return nil
}

// Write saves an engine snapshot to path, creating parent directories.
func Write(e *engine.Engine, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	blob, err := json.MarshalIndent(Capture(e), "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Read loads a snapshot from path and applies it to the engine.
func Read(e *engine.Engine, path string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read save: %w", err)
	}
	var d Data
	if err := json.Unmarshal(blob, &d); err != nil {
		return fmt.Errorf("decode save: %w", err)
	}
	return Apply(e, &d)
}
