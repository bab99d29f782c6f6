package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ccc2223/Castle-Defense-sub001/engine"
	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Known tower classes.
var validTowerClasses = map[types.TowerClass]bool{
	types.ClassArcher: true,
	types.ClassSniper: true,
	types.ClassSplash: true,
	types.ClassFrozen: true,
}

// Known item effect kinds.
var validEffectKinds = map[types.ItemEffectKind]bool{
	types.EffectArea:   true,
	types.EffectHeal:   true,
	types.EffectBounce: true,
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *engine.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}
	if defs.Game.CastleHealth <= 0 {
		ve.Errors = append(ve.Errors, "Game.castle_health must be positive")
	}
	if defs.Game.Width <= 0 || defs.Game.Height <= 0 {
		ve.Errors = append(ve.Errors, "Game.width and Game.height must be positive")
	}
	if len(defs.Game.Resources) == 0 {
		ve.Errors = append(ve.Errors, "Game.resources must declare at least one resource")
	}

	resources := map[string]bool{}
	for _, r := range defs.Game.Resources {
		if resources[r] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate resource %q", r))
		}
		resources[r] = true
	}

	if defs.Game.CoinResource == "" {
		ve.Errors = append(ve.Errors, "Game.coin_resource is required")
	} else if !resources[defs.Game.CoinResource] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"coin_resource %q is not a declared resource", defs.Game.CoinResource))
	}

	for res := range defs.Game.Initial {
		if !resources[res] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"initial resource %q is not declared and will be ignored", res))
		}
	}

	bal := defs.Game.Balance
	if bal.SpawnInterval <= 0 {
		ve.Errors = append(ve.Errors, "balance.spawn_interval must be positive")
	}
	if bal.SpawnBase < 0 {
		ve.Errors = append(ve.Errors, "balance.spawn_base must be non-negative")
	}
	if bal.WaveDifficulty < 1 {
		ve.Errors = append(ve.Errors, "balance.wave_difficulty must be at least 1")
	}

	validateTowers(defs, resources, ve)
	validateItems(defs, resources, ve)
	validateMonsters(defs, resources, ve)
	validateBosses(defs, resources, ve)

	// Print warnings to stderr.
	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateTowers(defs *engine.Defs, resources map[string]bool, ve *ValidationError) {
	if len(defs.Towers) == 0 {
		ve.Errors = append(ve.Errors, "no Tower definitions found")
	}
	for _, class := range sortedClasses(defs.Towers) {
		def := defs.Towers[class]
		if !validTowerClasses[class] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("unknown tower class %q", class))
			continue
		}
		if def.Damage <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("tower %s: damage must be positive", class))
		}
		if def.AttackSpeed <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("tower %s: attack_speed must be positive", class))
		}
		if def.Range <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("tower %s: range must be positive", class))
		}
		if class == types.ClassSplash && def.AoERadius <= 0 {
			ve.Errors = append(ve.Errors, "tower Splash: aoe_radius must be positive")
		}
		if class == types.ClassFrozen {
			if def.SlowFactor <= 0 || def.SlowFactor > 1 {
				ve.Errors = append(ve.Errors, "tower Frozen: slow_factor must be in (0, 1]")
			}
			if def.SlowDur <= 0 {
				ve.Errors = append(ve.Errors, "tower Frozen: slow_duration must be positive")
			}
		}
		validateCost(fmt.Sprintf("tower %s", class), def.Cost, resources, ve)
	}
}

func validateItems(defs *engine.Defs, resources map[string]bool, ve *ValidationError) {
	names := make([]string, 0, len(defs.Items))
	for name := range defs.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		item := defs.Items[name]
		if !validEffectKinds[item.Kind] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"item %q: unknown effect kind %q", name, item.Kind))
			continue
		}
		switch item.Kind {
		case types.EffectArea:
			if item.AoEMultiplier <= 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q: aoe_multiplier must be positive", name))
			}
			if item.SplashRadius < 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q: splash_radius must be non-negative", name))
			}
		case types.EffectHeal:
			if item.HealPercent <= 0 || item.HealPercent > 1 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q: heal_percent must be in (0, 1]", name))
			}
		case types.EffectBounce:
			if item.BounceChance <= 0 || item.BounceChance > 1 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q: bounce_chance must be in (0, 1]", name))
			}
		}
		for _, class := range item.Compatible {
			if !validTowerClasses[class] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q: compatible lists unknown tower class %q", name, class))
			}
		}
		validateCost(fmt.Sprintf("item %q", name), item.Cost, resources, ve)
	}
}

func validateMonsters(defs *engine.Defs, resources map[string]bool, ve *ValidationError) {
	if len(defs.Monsters) == 0 {
		ve.Errors = append(ve.Errors, "no Monster definitions found")
	}
	names := make([]string, 0, len(defs.Monsters))
	for name := range defs.Monsters {
		names = append(names, name)
	}
	sort.Strings(names)
	anyWaveOne := false
	for _, name := range names {
		m := defs.Monsters[name]
		if m.Health <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("monster %s: health must be positive", name))
		}
		if m.Speed <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("monster %s: speed must be positive", name))
		}
		if m.MinWave < 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("monster %s: min_wave must be at least 1", name))
		}
		if m.MinWave == 1 {
			anyWaveOne = true
		}
		validateLoot(fmt.Sprintf("monster %s", name), m.Loot, resources, ve)
	}
	if len(defs.Monsters) > 0 && !anyWaveOne {
		ve.Errors = append(ve.Errors, "no monster type is available on wave 1")
	}
}

func validateBosses(defs *engine.Defs, resources map[string]bool, ve *ValidationError) {
	if len(defs.Bosses) == 0 && defs.Game.Balance.BossWaveEvery > 0 {
		ve.Warnings = append(ve.Warnings, "boss waves configured but no Boss definitions found")
	}
	names := make([]string, 0, len(defs.Bosses))
	for name := range defs.Bosses {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b := defs.Bosses[name]
		if b.Health <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("boss %s: health must be positive", name))
		}
		if b.Speed <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("boss %s: speed must be positive", name))
		}
		validateLoot(fmt.Sprintf("boss %s", name), b.Loot, resources, ve)
	}
}

// validateCost checks that every cost key is a declared resource or a
// defined item. Crafted items live in the same ledger as raw resources.
func validateCost(owner string, cost map[string]int, resources map[string]bool, ve *ValidationError) {
	keys := make([]string, 0, len(cost))
	for k := range cost {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, res := range keys {
		if !resources[res] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: cost references undeclared resource %q", owner, res))
		}
		if cost[res] < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: cost of %q must be non-negative", owner, res))
		}
	}
}

func validateLoot(owner string, table types.LootTable, resources map[string]bool, ve *ValidationError) {
	for i, e := range table.Entries {
		if !resources[e.Resource] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: loot entry %d drops undeclared resource %q", owner, i+1, e.Resource))
		}
		if e.BaseChance < 0 || e.BaseChance > 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: loot entry %d chance must be in [0, 1]", owner, i+1))
		}
		if e.MinQuantity < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: loot entry %d min must be non-negative", owner, i+1))
		}
		if e.MaxQuantity < e.MinQuantity {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: loot entry %d max must be at least min", owner, i+1))
		}
	}
}

// sortedClasses returns tower classes in name order for stable messages.
func sortedClasses(towers map[types.TowerClass]types.TowerDef) []types.TowerClass {
	out := make([]types.TowerClass, 0, len(towers))
	for class := range towers {
		out = append(out, class)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
