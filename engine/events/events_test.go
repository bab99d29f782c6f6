package events

import (
	"strings"
	"testing"

	"github.com/ccc2223/Castle-Defense-sub001/types"
)

func TestRecorder_LinesAndDrain(t *testing.T) {
	r := &Recorder{}
	tw := &types.Tower{Class: types.ClassArcher}
	m := &types.Monster{Type: "Grunt", Health: 30, MaxHealth: 40}

	r.AttackFired(tw, m)
	r.MonsterHit(m, 10, HitPrimary)
	r.MonsterDied(m, map[string]int{"Stone": 2, "Monster Coins": 3})

	lines := r.Drain()
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "Archer tower fires at Grunt" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "takes 10 primary damage") {
		t.Errorf("line 1 = %q", lines[1])
	}
	// Drops come out in name order.
	if lines[2] != "Grunt dies, dropping 3 Monster Coins, 2 Stone" {
		t.Errorf("line 2 = %q", lines[2])
	}
	if r.Hits != 1 || r.Deaths != 1 {
		t.Errorf("counters = (%d, %d)", r.Hits, r.Deaths)
	}

	if got := r.Drain(); len(got) != 0 {
		t.Errorf("second drain = %v, want empty", got)
	}
}

func TestRecorder_DeathWithoutDrops(t *testing.T) {
	r := &Recorder{}
	r.MonsterDied(&types.Monster{Type: "Runner"}, nil)
	lines := r.Drain()
	if lines[0] != "Runner dies" {
		t.Errorf("line = %q", lines[0])
	}
}

func TestHooks_NilFieldsAreNoOps(t *testing.T) {
	var h Hooks
	// Must not panic.
	h.AttackFired(nil, nil)
	h.MonsterHit(nil, 0, HitSplash)
	h.MonsterDied(nil, nil)

	var called string
	h = Hooks{OnMonsterHit: func(m *types.Monster, damage float64, kind string) { called = kind }}
	h.MonsterHit(nil, 5, HitFrost)
	if called != HitFrost {
		t.Errorf("hook not invoked, called = %q", called)
	}
}
