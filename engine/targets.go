package engine

import (
	"math"
	"sort"

	"github.com/ccc2223/Castle-Defense-sub001/types"
)

func distance(a, b types.Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// TargetsInRange returns the live monsters the tower is allowed to hit,
// sorted nearest first. Only Archer and Sniper towers can reach flying
// monsters. The sort is stable so equal distances keep spawn order.
func TargetsInRange(t *types.Tower, monsters []*types.Monster) []*types.Monster {
	var out []*types.Monster
	for _, m := range monsters {
		if m == nil || m.Dead {
			continue
		}
		if m.Flying && t.Class != types.ClassArcher && t.Class != types.ClassSniper {
			continue
		}
		if distance(t.Pos, m.Pos) <= t.Derived.Range {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return distance(t.Pos, out[i].Pos) < distance(t.Pos, out[j].Pos)
	})
	return out
}
