package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ccc2223/Castle-Defense-sub001/engine/effects"
	"github.com/ccc2223/Castle-Defense-sub001/engine/ledger"
	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// Upgrade paths accepted by Upgrade and UpgradeCost.
const (
	UpgradeDamage  = "damage"
	UpgradeSpeed   = "speed"
	UpgradeRange   = "range"
	UpgradeSpecial = "special" // AoE for Splash, slow for Frozen
)

// NewTower builds a tower of the given class at the given position, with
// all upgrade levels at 1 and derived stats computed from base stats.
func NewTower(class types.TowerClass, pos types.Vec2, defs *Defs) (*types.Tower, error) {
	def, ok := defs.Towers[class]
	if !ok {
		return nil, fmt.Errorf("unknown tower class %q", class)
	}
	t := &types.Tower{
		ID:    uuid.NewString(),
		Class: class,
		Pos:   pos,

		BaseDamage:      def.Damage,
		BaseAttackSpeed: def.AttackSpeed,
		BaseRange:       def.Range,
		BaseAoERadius:   def.AoERadius,
		BaseSlowFactor:  def.SlowFactor,
		BaseSlowDur:     def.SlowDur,

		DamageLevel:      1,
		AttackSpeedLevel: 1,
		RangeLevel:       1,
		ExtraLevel:       1,
	}
	effects.Apply(t, defs.Items)
	return t, nil
}

// PlacementCost returns the full cost of building one tower of the given
// class, with the coin charge folded into the resource map.
func PlacementCost(class types.TowerClass, defs *Defs) (map[string]int, error) {
	def, ok := defs.Towers[class]
	if !ok {
		return nil, fmt.Errorf("unknown tower class %q", class)
	}
	cost := make(map[string]int, len(def.Cost)+1)
	for res, n := range def.Cost {
		cost[res] = n
	}
	if def.CoinCost > 0 {
		cost[defs.Game.CoinResource] += def.CoinCost
	}
	return cost, nil
}

// UpgradeCost returns the resource cost of the next upgrade on the given
// path. Resource costs grow by UpgradeCostGrowth per level already taken,
// coin costs by CoinCostGrowth; fractional amounts round up.
func UpgradeCost(t *types.Tower, defs *Defs, path string) (map[string]int, error) {
	def, ok := defs.Towers[t.Class]
	if !ok {
		return nil, fmt.Errorf("unknown tower class %q", t.Class)
	}
	level, err := upgradeLevel(t, path)
	if err != nil {
		return nil, err
	}
	bal := defs.Game.Balance
	scale := math.Pow(bal.UpgradeCostGrowth, float64(level-1))
	coinScale := math.Pow(bal.CoinCostGrowth, float64(level-1))

	cost := make(map[string]int, len(def.Cost)+1)
	for res, n := range def.Cost {
		cost[res] = int(math.Ceil(float64(n) * scale))
	}
	if def.CoinCost > 0 {
		cost[defs.Game.CoinResource] += int(math.Ceil(float64(def.CoinCost) * coinScale))
	}
	return cost, nil
}

// Upgrade advances one upgrade path on the tower, spending the cost from
// the ledger all-or-nothing and recomputing derived stats. The special
// path exists only for Splash and Frozen towers.
func Upgrade(t *types.Tower, defs *Defs, led *ledger.Ledger, path string) error {
	if led == nil {
		return fmt.Errorf("upgrade: ledger required")
	}
	if path == UpgradeSpecial && t.Class != types.ClassSplash && t.Class != types.ClassFrozen {
		return fmt.Errorf("tower class %q has no special upgrade", t.Class)
	}
	cost, err := UpgradeCost(t, defs, path)
	if err != nil {
		return err
	}
	if !led.SpendAll(cost) {
		return fmt.Errorf("insufficient resources for %s upgrade", path)
	}

	bal := defs.Game.Balance
	switch path {
	case UpgradeDamage:
		t.BaseDamage *= bal.DamageGrowth
		t.DamageLevel++
	case UpgradeSpeed:
		t.BaseAttackSpeed *= bal.AttackSpeedGrowth
		t.AttackSpeedLevel++
	case UpgradeRange:
		t.BaseRange *= bal.RangeGrowth
		t.RangeLevel++
	case UpgradeSpecial:
		if t.Class == types.ClassSplash {
			t.BaseAoERadius *= bal.AoEGrowth
		} else {
			// Slow fraction caps at 0.9 so monsters never stop outright.
			t.BaseSlowFactor = math.Min(0.9, t.BaseSlowFactor*bal.SlowGrowth)
		}
		t.ExtraLevel++
	}
	effects.Apply(t, defs.Items)
	return nil
}

func upgradeLevel(t *types.Tower, path string) (int, error) {
	switch path {
	case UpgradeDamage:
		return t.DamageLevel, nil
	case UpgradeSpeed:
		return t.AttackSpeedLevel, nil
	case UpgradeRange:
		return t.RangeLevel, nil
	case UpgradeSpecial:
		return t.ExtraLevel, nil
	}
	return 0, fmt.Errorf("unknown upgrade path %q", path)
}

// Equip places an item into the given slot, moving it out of the ledger
// and returning any previously equipped item to it. Slot indices outside
// [0, TowerSlots) are an error, never clamped.
func Equip(t *types.Tower, slot int, item string, defs *Defs, led *ledger.Ledger) error {
	if led == nil {
		return fmt.Errorf("equip: ledger required")
	}
	if slot < 0 || slot >= types.TowerSlots {
		return fmt.Errorf("slot %d out of range [0, %d)", slot, types.TowerSlots)
	}
	if _, ok := defs.Items[item]; !ok {
		return fmt.Errorf("unknown item %q", item)
	}
	if !led.Spend(item, 1) {
		return fmt.Errorf("no %s in inventory", item)
	}
	if prev := t.Slots[slot]; prev != "" {
		led.Add(prev, 1)
	}
	t.Slots[slot] = item
	effects.Apply(t, defs.Items)
	return nil
}

// Unequip clears the given slot, returning the removed item to the ledger.
// The removed item name is returned; "" means the slot was already empty.
func Unequip(t *types.Tower, slot int, defs *Defs, led *ledger.Ledger) (string, error) {
	if led == nil {
		return "", fmt.Errorf("unequip: ledger required")
	}
	if slot < 0 || slot >= types.TowerSlots {
		return "", fmt.Errorf("slot %d out of range [0, %d)", slot, types.TowerSlots)
	}
	prev := t.Slots[slot]
	if prev == "" {
		return "", nil
	}
	t.Slots[slot] = ""
	led.Add(prev, 1)
	effects.Apply(t, defs.Items)
	return prev, nil
}
