// Package effects implements the item effect pipeline: deriving a tower's
// effective stats and feature flags from its base stats and equipped items.
// Derivation always restarts from base values, so applying the same slot
// contents twice yields identical derived state.
package effects

import (
	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// Apply recomputes t.Derived from t's base stats and its equipped slots,
// in slot order (slot 0 before slot 1). Empty slots are no-ops; items whose
// names are missing from the catalogue are ignored the same way.
func Apply(t *types.Tower, items map[string]types.ItemDef) {
	reset(t)

	equipped := false
	for _, name := range t.Slots {
		if name == "" {
			continue
		}
		equipped = true
		item, ok := items[name]
		if !ok {
			continue
		}
		applyItem(t, item)
	}

	// Cosmetic only: an occupied slot lights the tower up even when the
	// item's effect is a no-op for this class.
	t.Derived.HasItemEffects = equipped
}

// reset restores every derived field to the tower's stored base value and
// clears all feature flags.
func reset(t *types.Tower) {
	t.Derived = types.DerivedStats{
		Damage:      t.BaseDamage,
		AttackSpeed: t.BaseAttackSpeed,
		Range:       t.BaseRange,
		AoERadius:   t.BaseAoERadius,
		SlowFactor:  t.BaseSlowFactor,
		SlowDur:     t.BaseSlowDur,
	}
}

// applyItem folds one item's effect on top of the current derived state,
// so a later slot compounds with an earlier one.
func applyItem(t *types.Tower, item types.ItemDef) {
	switch item.Kind {
	case types.EffectArea:
		switch t.Class {
		case types.ClassSplash:
			t.Derived.AoERadius *= item.AoEMultiplier
		case types.ClassFrozen:
			t.Derived.Range *= item.AoEMultiplier
		case types.ClassArcher, types.ClassSniper:
			t.Derived.SplashEnabled = true
			t.Derived.SplashRadius = item.SplashRadius
		}
		t.Derived.Glow = item.Glow

	case types.EffectHeal:
		t.Derived.HealPercent = item.HealPercent
		t.Derived.Glow = item.Glow

	case types.EffectBounce:
		if !compatible(item, t.Class) {
			return
		}
		t.Derived.BounceEnabled = true
		t.Derived.BounceChance = item.BounceChance
		t.Derived.Glow = item.Glow
	}
}

// compatible reports whether the item's effect applies to the given class.
// An empty compatibility list means the item works on every class.
func compatible(item types.ItemDef, class types.TowerClass) bool {
	if len(item.Compatible) == 0 {
		return true
	}
	for _, c := range item.Compatible {
		if c == class {
			return true
		}
	}
	return false
}
