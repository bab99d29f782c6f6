package engine

import (
	"errors"
	"fmt"

	"github.com/ccc2223/Castle-Defense-sub001/engine/events"
	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// AttackOutcome reports the result of a single tower attack. Kills is
// deduplicated and ordered primary, then bounce, then area victims, so
// downstream reward rolls consume randomness in a stable order.
type AttackOutcome struct {
	Kills       []*types.Monster
	DamageDealt float64
}

// Attack resolves one shot from the tower against the candidate targets.
// Targets must already be range-filtered and sorted nearest first; the
// first live entry is the primary target. The RNG is consumed only for
// the bounce roll, and only when bounce is enabled and a second candidate
// exists at the start of the attack.
func Attack(t *types.Tower, targets []*types.Monster, rng *RNG, sink events.Sink) (AttackOutcome, error) {
	var out AttackOutcome
	if t == nil {
		return out, errors.New("attack: nil tower")
	}
	if rng == nil {
		return out, errors.New("attack: nil randomness source")
	}
	if sink == nil {
		sink = events.Hooks{}
	}

	live := make([]*types.Monster, 0, len(targets))
	for _, m := range targets {
		if m != nil && !m.Dead {
			live = append(live, m)
		}
	}
	if len(live) == 0 {
		return out, nil
	}

	hit := func(m *types.Monster, dmg float64, kind string) {
		if m.Dead {
			return
		}
		m.Health -= dmg
		out.DamageDealt += dmg
		if m.Health <= 0 {
			m.Health = 0
			m.Dead = true
			out.Kills = append(out.Kills, m)
		}
		sink.MonsterHit(m, dmg, kind)
	}

	switch t.Class {
	case types.ClassArcher, types.ClassSniper:
		primary := live[0]
		sink.AttackFired(t, primary)
		hit(primary, t.Derived.Damage, events.HitPrimary)

		// The bounce roll always consumes exactly one draw when it is
		// eligible, even if every other candidate died to the primary hit.
		if t.Derived.BounceEnabled && len(live) > 1 {
			if rng.Float64() < t.Derived.BounceChance {
				if next := nearestLive(primary, live); next != nil {
					hit(next, t.Derived.Damage, events.HitBounce)
				}
			}
		}

		if t.Derived.SplashEnabled && t.Derived.SplashRadius > 0 {
			for _, m := range live {
				if m == primary || m.Dead {
					continue
				}
				if distance(m.Pos, primary.Pos) <= t.Derived.SplashRadius {
					hit(m, t.Derived.Damage*0.5, events.HitSplash)
				}
			}
		}

	case types.ClassSplash:
		primary := live[0]
		sink.AttackFired(t, primary)
		center := primary.Pos
		for _, m := range live {
			if m.Dead {
				continue
			}
			if distance(m.Pos, center) <= t.Derived.AoERadius {
				hit(m, t.Derived.Damage, events.HitSplash)
			}
		}

	case types.ClassFrozen:
		sink.AttackFired(t, live[0])
		for _, m := range live {
			if m.Dead {
				continue
			}
			hit(m, t.Derived.Damage, events.HitFrost)
			if !m.Dead {
				applySlow(m, t.Derived.SlowFactor, t.Derived.SlowDur)
			}
		}

	default:
		return out, fmt.Errorf("attack: unknown tower class %q", t.Class)
	}

	return out, nil
}

// nearestLive picks the closest still-live candidate to the primary
// target, excluding the primary itself. Returns nil when none remain.
func nearestLive(primary *types.Monster, live []*types.Monster) *types.Monster {
	var best *types.Monster
	var bestDist float64
	for _, m := range live {
		if m == primary || m.Dead {
			continue
		}
		d := distance(primary.Pos, m.Pos)
		if best == nil || d < bestDist {
			best = m
			bestDist = d
		}
	}
	return best
}

// applySlow merges a new slow onto a monster. The strongest factor wins
// and the timer never shortens, so overlapping Frozen towers stack by
// keeping the worst of both effects.
func applySlow(m *types.Monster, slow, dur float64) {
	factor := 1.0 - slow
	if m.SlowTimer <= 0 || factor < m.SlowFactor {
		m.SlowFactor = factor
	}
	if dur > m.SlowTimer {
		m.SlowTimer = dur
	}
}
