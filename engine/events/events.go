// Package events defines the notification sink for combat and reward
// outcomes. Hooks are best-effort: a nil hook is a no-op, and the set of
// capabilities is fixed at construction time.
package events

import "github.com/ccc2223/Castle-Defense-sub001/types"

// Sink receives combat notifications. Implementations must tolerate being
// called synchronously from inside attack resolution.
type Sink interface {
	AttackFired(tower *types.Tower, target *types.Monster)
	MonsterHit(m *types.Monster, damage float64, kind string)
	MonsterDied(m *types.Monster, drops map[string]int)
}

// Hit kinds reported through MonsterHit.
const (
	HitPrimary = "primary"
	HitBounce  = "bounce"
	HitSplash  = "splash"
	HitFrost   = "frost"
)

// Hooks is a Sink built from optional functions. Nil fields are no-ops.
type Hooks struct {
	OnAttackFired func(tower *types.Tower, target *types.Monster)
	OnMonsterHit  func(m *types.Monster, damage float64, kind string)
	OnMonsterDied func(m *types.Monster, drops map[string]int)
}

func (h Hooks) AttackFired(tower *types.Tower, target *types.Monster) {
	if h.OnAttackFired != nil {
		h.OnAttackFired(tower, target)
	}
}

func (h Hooks) MonsterHit(m *types.Monster, damage float64, kind string) {
	if h.OnMonsterHit != nil {
		h.OnMonsterHit(m, damage, kind)
	}
}

func (h Hooks) MonsterDied(m *types.Monster, drops map[string]int) {
	if h.OnMonsterDied != nil {
		h.OnMonsterDied(m, drops)
	}
}
