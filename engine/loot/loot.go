// Package loot implements the weighted, wave-scaled loot generator.
// Tables are immutable; all randomness flows through an injected source.
package loot

import (
	"math"

	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// Source is the randomness the generator draws from. *engine.RNG satisfies it.
type Source interface {
	Float64() float64
	IntRange(min, max int) int
}

// DropChance returns the wave-scaled drop probability for an entry,
// clamped to [0, 1].
func DropChance(e types.LootEntry, wave int) float64 {
	chance := e.BaseChance + float64(wave-1)*e.ChanceScaling
	return math.Max(0, math.Min(1, chance))
}

// Quantity returns the wave-scaled drop quantity for an entry.
// Both bounds scale together and are floored to integers; when the floored
// bounds coincide the value is returned without consuming randomness.
func Quantity(e types.LootEntry, wave int, src Source) int {
	minQty := e.MinQuantity + float64(wave-1)*e.QuantityScaling
	maxQty := e.MaxQuantity + float64(wave-1)*e.QuantityScaling
	if maxQty < minQty {
		maxQty = minQty
	}

	lo := int(math.Floor(minQty))
	hi := int(math.Floor(maxQty))
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		hi = lo
	}
	if lo == hi {
		return lo
	}
	return src.IntRange(lo, hi)
}

// Roll generates loot from a table for the given wave. Every entry is
// evaluated independently; amounts for the same resource are summed.
// The result never contains a zero-valued amount.
func Roll(table types.LootTable, wave int, src Source) map[string]int {
	result := map[string]int{}
	for _, e := range table.Entries {
		if src.Float64() > DropChance(e, wave) {
			continue
		}
		qty := Quantity(e, wave, src)
		if qty > 0 {
			result[e.Resource] += qty
		}
	}
	return result
}
