package engine

import (
	"testing"

	"github.com/ccc2223/Castle-Defense-sub001/types"
)

func TestAdvanceMonster_MovesTowardCastle(t *testing.T) {
	m := testMonster("m1", 400, 0, 40)
	m.Speed = 50
	castle := types.Vec2{X: 400, Y: 600}

	if dmg := advanceMonster(m, castle, 1.0); dmg != 0 {
		t.Errorf("damage = %v while walking", dmg)
	}
	if m.Pos.Y != 50 {
		t.Errorf("Y = %v, want 50", m.Pos.Y)
	}
	if m.Pos.X != 400 {
		t.Errorf("X = %v, drifted off the approach line", m.Pos.X)
	}
}

func TestAdvanceMonster_SlowReducesStep(t *testing.T) {
	m := testMonster("m1", 400, 0, 40)
	m.Speed = 50
	m.SlowFactor = 0.5
	m.SlowTimer = 3

	advanceMonster(m, types.Vec2{X: 400, Y: 600}, 1.0)
	if m.Pos.Y != 25 {
		t.Errorf("Y = %v, want 25 at half speed", m.Pos.Y)
	}
	if m.SlowTimer != 2 {
		t.Errorf("SlowTimer = %v, want 2", m.SlowTimer)
	}
}

func TestAdvanceMonster_SlowExpires(t *testing.T) {
	m := testMonster("m1", 400, 0, 40)
	m.Speed = 50
	m.SlowFactor = 0.5
	m.SlowTimer = 0.5

	advanceMonster(m, types.Vec2{X: 400, Y: 600}, 1.0)
	if m.SlowFactor != 1.0 || m.SlowTimer != 0 {
		t.Errorf("slow = (%v, %v), want reset to (1, 0)", m.SlowFactor, m.SlowTimer)
	}
}

func TestAdvanceMonster_ReachesAndAttacks(t *testing.T) {
	m := testMonster("m1", 400, 595, 40)
	m.Speed = 50
	m.Damage = 8
	castle := types.Vec2{X: 400, Y: 600}

	// Within castleReach: latches on without dealing damage yet.
	if dmg := advanceMonster(m, castle, 0.1); dmg != 0 {
		t.Errorf("damage = %v on arrival tick", dmg)
	}
	if !m.AtCastle {
		t.Fatal("monster within reach did not latch onto the castle")
	}

	// One full attack period later, one hit lands.
	var total float64
	for i := 0; i < 10; i++ {
		total += advanceMonster(m, castle, 0.1)
	}
	if total != 8 {
		t.Errorf("damage over one period = %v, want 8", total)
	}
}

func TestAdvanceMonster_SnapsOnOvershoot(t *testing.T) {
	m := testMonster("m1", 400, 590, 40)
	m.Speed = 500
	castle := types.Vec2{X: 400, Y: 600}

	advanceMonster(m, castle, 1.0)
	if m.Pos != castle {
		t.Errorf("Pos = %+v, want snapped to castle", m.Pos)
	}
	if !m.AtCastle {
		t.Error("overshooting monster did not latch on")
	}
}

func TestAdvanceMonster_DeadIsInert(t *testing.T) {
	m := testMonster("m1", 400, 0, 0)
	m.Dead = true
	m.Speed = 50

	if dmg := advanceMonster(m, types.Vec2{X: 400, Y: 600}, 1.0); dmg != 0 {
		t.Errorf("dead monster dealt %v damage", dmg)
	}
	if m.Pos.Y != 0 {
		t.Error("dead monster moved")
	}
}
