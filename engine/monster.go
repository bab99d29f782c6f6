package engine

import "github.com/ccc2223/Castle-Defense-sub001/types"

// castleReach is how close a monster must get before it stops and
// starts hitting the castle.
const castleReach = 10.0

// monsterAttackPeriod is the seconds between castle hits from a monster
// that has reached the walls.
const monsterAttackPeriod = 1.0

// advanceMonster moves one live monster toward the castle and returns
// the damage it deals to the castle this tick.
func advanceMonster(m *types.Monster, castle types.Vec2, dt float64) float64 {
	if m.Dead {
		return 0
	}

	if m.SlowTimer > 0 {
		m.SlowTimer -= dt
		if m.SlowTimer <= 0 {
			m.SlowTimer = 0
			m.SlowFactor = 1.0
		}
	}

	if !m.AtCastle {
		d := distance(m.Pos, castle)
		if d <= castleReach {
			m.AtCastle = true
			m.AttackTimer = 0
		} else {
			step := m.Speed * m.SlowFactor * dt
			if step >= d {
				m.Pos = castle
				m.AtCastle = true
				m.AttackTimer = 0
			} else {
				m.Pos.X += (castle.X - m.Pos.X) / d * step
				m.Pos.Y += (castle.Y - m.Pos.Y) / d * step
			}
		}
	}

	if !m.AtCastle {
		return 0
	}
	m.AttackTimer += dt
	var dmg float64
	for m.AttackTimer >= monsterAttackPeriod {
		m.AttackTimer -= monsterAttackPeriod
		dmg += m.Damage
	}
	return dmg
}
