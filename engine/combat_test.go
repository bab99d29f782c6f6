package engine

import (
	"testing"

	"github.com/ccc2223/Castle-Defense-sub001/engine/events"
	"github.com/ccc2223/Castle-Defense-sub001/types"
)

func testMonster(id string, x, y, health float64) *types.Monster {
	return &types.Monster{
		ID: id, Type: "Grunt",
		Health: health, MaxHealth: health,
		Pos:        types.Vec2{X: x, Y: y},
		SlowFactor: 1.0,
	}
}

func testTower(class types.TowerClass, derived types.DerivedStats) *types.Tower {
	return &types.Tower{
		ID: "t1", Class: class,
		Pos:     types.Vec2{X: 0, Y: 0},
		Derived: derived,
	}
}

func TestAttack_PrimaryOnly(t *testing.T) {
	tw := testTower(types.ClassArcher, types.DerivedStats{Damage: 10, AttackSpeed: 1.5, Range: 150})
	m := testMonster("m1", 10, 0, 40)

	out, err := Attack(tw, []*types.Monster{m}, NewRNG(1), nil)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if m.Health != 30 {
		t.Errorf("health = %v, want 30", m.Health)
	}
	if out.DamageDealt != 10 || len(out.Kills) != 0 {
		t.Errorf("outcome = %+v", out)
	}
}

func TestAttack_NilTowerAndRNG(t *testing.T) {
	tw := testTower(types.ClassArcher, types.DerivedStats{Damage: 10})
	if _, err := Attack(nil, nil, NewRNG(1), nil); err == nil {
		t.Error("nil tower accepted")
	}
	if _, err := Attack(tw, nil, nil, nil); err == nil {
		t.Error("nil rng accepted")
	}
}

func TestAttack_SkipsDeadTargets(t *testing.T) {
	tw := testTower(types.ClassSniper, types.DerivedStats{Damage: 50})
	dead := testMonster("m1", 5, 0, 40)
	dead.Dead = true
	alive := testMonster("m2", 20, 0, 60)

	out, err := Attack(tw, []*types.Monster{dead, alive}, NewRNG(1), nil)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if alive.Health != 10 {
		t.Errorf("live target health = %v, want 10", alive.Health)
	}
	if out.DamageDealt != 50 {
		t.Errorf("DamageDealt = %v", out.DamageDealt)
	}
}

func TestAttack_NoTargets(t *testing.T) {
	tw := testTower(types.ClassArcher, types.DerivedStats{Damage: 10})
	out, err := Attack(tw, nil, NewRNG(1), nil)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if out.DamageDealt != 0 || len(out.Kills) != 0 {
		t.Errorf("outcome = %+v", out)
	}
}

func TestAttack_BounceConsumesOneDraw(t *testing.T) {
	tw := testTower(types.ClassSniper, types.DerivedStats{
		Damage: 50, BounceEnabled: true, BounceChance: 0.10,
	})
	rng := NewRNG(1)

	// Two candidates: the roll happens even though it may miss.
	a := testMonster("m1", 10, 0, 200)
	b := testMonster("m2", 30, 0, 200)
	if _, err := Attack(tw, []*types.Monster{a, b}, rng, nil); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if got := rng.Position(); got != 1 {
		t.Errorf("draws = %d, want exactly 1", got)
	}

	// Single candidate: no roll at all.
	rng = NewRNG(1)
	solo := testMonster("m3", 10, 0, 200)
	Attack(tw, []*types.Monster{solo}, rng, nil)
	if got := rng.Position(); got != 0 {
		t.Errorf("draws = %d with one target, want 0", got)
	}

	// Bounce disabled: no roll regardless of candidates.
	plain := testTower(types.ClassSniper, types.DerivedStats{Damage: 50})
	rng = NewRNG(1)
	Attack(plain, []*types.Monster{testMonster("m4", 10, 0, 200), testMonster("m5", 30, 0, 200)}, rng, nil)
	if got := rng.Position(); got != 0 {
		t.Errorf("draws = %d with bounce disabled, want 0", got)
	}
}

func TestAttack_BounceHitsFullDamage(t *testing.T) {
	tw := testTower(types.ClassSniper, types.DerivedStats{
		Damage: 50, BounceEnabled: true, BounceChance: 1.0,
	})
	primary := testMonster("m1", 10, 0, 200)
	other := testMonster("m2", 30, 0, 200)
	rng := NewRNG(1)

	out, err := Attack(tw, []*types.Monster{primary, other}, rng, nil)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if rng.Position() != 1 {
		t.Errorf("draws = %d, want 1", rng.Position())
	}
	if other.Health != 150 {
		t.Errorf("bounce target health = %v, want 150 (full damage)", other.Health)
	}
	if out.DamageDealt != 100 {
		t.Errorf("DamageDealt = %v, want 100", out.DamageDealt)
	}
}

func TestAttack_BouncePicksNearestToPrimary(t *testing.T) {
	tw := testTower(types.ClassSniper, types.DerivedStats{
		Damage: 10, BounceEnabled: true, BounceChance: 1.0,
	})
	// Candidates arrive sorted by distance to the tower; the bounce is
	// measured from the primary instead. m2 is the next-nearest to the
	// tower (110 vs 150) but m3 is far closer to the primary (50 vs ~149),
	// so the bounce lands on m3.
	primary := testMonster("m1", 100, 0, 200)
	nextByTower := testMonster("m2", 0, 110, 200)
	nextByPrimary := testMonster("m3", 150, 0, 200)

	if _, err := Attack(tw, []*types.Monster{primary, nextByTower, nextByPrimary}, NewRNG(1), nil); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if primary.Health != 190 {
		t.Errorf("primary health = %v, want 190", primary.Health)
	}
	if nextByPrimary.Health != 190 {
		t.Errorf("bounce health = %v, want 190", nextByPrimary.Health)
	}
	if nextByTower.Health != 200 {
		t.Errorf("bystander health = %v, want 200", nextByTower.Health)
	}
}

func TestAttack_SplashHalfDamageInclusiveRadius(t *testing.T) {
	tw := testTower(types.ClassArcher, types.DerivedStats{
		Damage: 10, SplashEnabled: true, SplashRadius: 30,
	})
	primary := testMonster("m1", 10, 0, 100)
	atEdge := testMonster("m2", 40, 0, 100)  // exactly 30 away: included
	beyond := testMonster("m3", 41, 0, 100)  // 31 away: excluded

	if _, err := Attack(tw, []*types.Monster{primary, atEdge, beyond}, NewRNG(1), nil); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if primary.Health != 90 {
		t.Errorf("primary health = %v, want 90", primary.Health)
	}
	if atEdge.Health != 95 {
		t.Errorf("edge health = %v, want 95 (half damage)", atEdge.Health)
	}
	if beyond.Health != 100 {
		t.Errorf("out-of-radius health = %v, want 100", beyond.Health)
	}
}

func TestAttack_SplashSkipsBounceVictimCorpse(t *testing.T) {
	// A bounce that kills its victim removes it from splash consideration.
	tw := testTower(types.ClassArcher, types.DerivedStats{
		Damage: 50, BounceEnabled: true, BounceChance: 1.0,
		SplashEnabled: true, SplashRadius: 100,
	})
	primary := testMonster("m1", 10, 0, 200)
	victim := testMonster("m2", 20, 0, 40) // dies to the bounce
	other := testMonster("m3", 30, 0, 200)

	out, err := Attack(tw, []*types.Monster{primary, victim, other}, NewRNG(1), nil)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if !victim.Dead || victim.Health != 0 {
		t.Errorf("victim = %+v, want dead at 0", victim)
	}
	if other.Health != 175 {
		t.Errorf("splash health = %v, want 175", other.Health)
	}
	if len(out.Kills) != 1 || out.Kills[0] != victim {
		t.Errorf("Kills = %v", out.Kills)
	}
}

func TestAttack_AoEHitsEveryoneInRadius(t *testing.T) {
	tw := testTower(types.ClassSplash, types.DerivedStats{Damage: 20, AoERadius: 50})
	primary := testMonster("m1", 100, 0, 100)
	inRange := testMonster("m2", 150, 0, 100) // exactly 50 from primary
	outside := testMonster("m3", 151, 0, 100)

	if _, err := Attack(tw, []*types.Monster{primary, inRange, outside}, NewRNG(1), nil); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	// Full damage for everyone in the blast, primary included.
	if primary.Health != 80 || inRange.Health != 80 {
		t.Errorf("blast healths = %v, %v, want 80, 80", primary.Health, inRange.Health)
	}
	if outside.Health != 100 {
		t.Errorf("outside health = %v, want 100", outside.Health)
	}
}

func TestAttack_FrozenSlowsSurvivors(t *testing.T) {
	tw := testTower(types.ClassFrozen, types.DerivedStats{
		Damage: 5, SlowFactor: 0.5, SlowDur: 3,
	})
	a := testMonster("m1", 10, 0, 40)
	b := testMonster("m2", 60, 0, 4) // dies to the hit, no slow applied

	if _, err := Attack(tw, []*types.Monster{a, b}, NewRNG(1), nil); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if a.SlowFactor != 0.5 || a.SlowTimer != 3 {
		t.Errorf("slow = (%v, %v), want (0.5, 3)", a.SlowFactor, a.SlowTimer)
	}
	if !b.Dead {
		t.Error("lethal frost hit did not kill")
	}
	if b.SlowTimer != 0 {
		t.Error("slow applied to a corpse")
	}
}

func TestApplySlow_StrongestWinsTimerNeverShortens(t *testing.T) {
	m := testMonster("m1", 0, 0, 100)

	applySlow(m, 0.5, 3)
	if m.SlowFactor != 0.5 || m.SlowTimer != 3 {
		t.Fatalf("slow = (%v, %v)", m.SlowFactor, m.SlowTimer)
	}

	// Weaker slow with a shorter timer changes nothing.
	applySlow(m, 0.3, 2)
	if m.SlowFactor != 0.5 || m.SlowTimer != 3 {
		t.Errorf("weaker slow overrode: (%v, %v)", m.SlowFactor, m.SlowTimer)
	}

	// Stronger slow takes the factor; longer duration takes the timer.
	applySlow(m, 0.7, 5)
	if almostNe(m.SlowFactor, 0.3) || m.SlowTimer != 5 {
		t.Errorf("stronger slow ignored: (%v, %v)", m.SlowFactor, m.SlowTimer)
	}
}

func almostNe(a, b float64) bool {
	d := a - b
	return d < -1e-9 || d > 1e-9
}

func TestAttack_KillOrderPrimaryBounceSplash(t *testing.T) {
	tw := testTower(types.ClassArcher, types.DerivedStats{
		Damage: 100, BounceEnabled: true, BounceChance: 1.0,
		SplashEnabled: true, SplashRadius: 100,
	})
	primary := testMonster("m1", 10, 0, 50)
	bounce := testMonster("m2", 20, 0, 50)
	splash := testMonster("m3", 30, 0, 50)

	out, err := Attack(tw, []*types.Monster{primary, bounce, splash}, NewRNG(1), nil)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if len(out.Kills) != 3 {
		t.Fatalf("kills = %d, want 3", len(out.Kills))
	}
	want := []string{"m1", "m2", "m3"}
	for i, m := range out.Kills {
		if m.ID != want[i] {
			t.Errorf("kill %d = %s, want %s", i, m.ID, want[i])
		}
	}
}

func TestAttack_UnknownClass(t *testing.T) {
	tw := testTower("Ballista", types.DerivedStats{Damage: 10})
	if _, err := Attack(tw, []*types.Monster{testMonster("m1", 5, 0, 40)}, NewRNG(1), nil); err == nil {
		t.Error("unknown class accepted")
	}
}

func TestTargetsInRange(t *testing.T) {
	tw := testTower(types.ClassArcher, types.DerivedStats{Range: 100})
	near := testMonster("m1", 30, 0, 40)
	far := testMonster("m2", 90, 0, 40)
	outOfRange := testMonster("m3", 101, 0, 40)
	corpse := testMonster("m4", 10, 0, 40)
	corpse.Dead = true

	got := TargetsInRange(tw, []*types.Monster{far, corpse, outOfRange, near})
	if len(got) != 2 {
		t.Fatalf("targets = %d, want 2", len(got))
	}
	if got[0] != near || got[1] != far {
		t.Errorf("order = %s, %s; want m1, m2", got[0].ID, got[1].ID)
	}
}

func TestTargetsInRange_FlyingNeedsArcherOrSniper(t *testing.T) {
	flyer := testMonster("m1", 30, 0, 40)
	flyer.Flying = true

	cases := []struct {
		class types.TowerClass
		want  int
	}{
		{types.ClassArcher, 1},
		{types.ClassSniper, 1},
		{types.ClassSplash, 0},
		{types.ClassFrozen, 0},
	}
	for _, tc := range cases {
		tw := testTower(tc.class, types.DerivedStats{Range: 100})
		got := TargetsInRange(tw, []*types.Monster{flyer})
		if len(got) != tc.want {
			t.Errorf("%s: flying targets = %d, want %d", tc.class, len(got), tc.want)
		}
	}
}

func TestAttack_EventsReported(t *testing.T) {
	var fired, hits, kinds []string
	sink := events.Hooks{
		OnAttackFired: func(tw *types.Tower, m *types.Monster) { fired = append(fired, m.ID) },
		OnMonsterHit: func(m *types.Monster, dmg float64, kind string) {
			hits = append(hits, m.ID)
			kinds = append(kinds, kind)
		},
	}
	tw := testTower(types.ClassArcher, types.DerivedStats{
		Damage: 10, SplashEnabled: true, SplashRadius: 50,
	})
	primary := testMonster("m1", 10, 0, 100)
	other := testMonster("m2", 20, 0, 100)

	if _, err := Attack(tw, []*types.Monster{primary, other}, NewRNG(1), sink); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if len(fired) != 1 || fired[0] != "m1" {
		t.Errorf("fired = %v", fired)
	}
	if len(hits) != 2 || kinds[0] != events.HitPrimary || kinds[1] != events.HitSplash {
		t.Errorf("hits = %v kinds = %v", hits, kinds)
	}
}
