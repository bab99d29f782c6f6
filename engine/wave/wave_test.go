package wave

import (
	"math"
	"testing"

	"github.com/ccc2223/Castle-Defense-sub001/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// fixedDice always picks index 0.
type fixedDice struct{}

func (fixedDice) Intn(n int) int { return 0 }

func testBalance() *types.Balance {
	return &types.Balance{
		WaveDifficulty: 1.2,
		SpawnBase:      5,
		SpawnInterval:  1.5,
		BossWaveEvery:  10,
	}
}

func testMonsters() map[string]types.MonsterDef {
	return map[string]types.MonsterDef{
		"Grunt":  {Type: "Grunt", Health: 40, Speed: 50, Damage: 8, MinWave: 1},
		"Runner": {Type: "Runner", Health: 15, Speed: 100, Damage: 3, MinWave: 3},
		"Tank":   {Type: "Tank", Health: 190, Speed: 30, Damage: 18, MinWave: 5},
		"Flyer":  {Type: "Flyer", Health: 30, Speed: 70, Damage: 13, Flying: true, MinWave: 8},
	}
}

func testBosses() map[string]types.BossDef {
	return map[string]types.BossDef{
		"Force":  {Type: "Force", Health: 500, Speed: 40, Damage: 50},
		"Spirit": {Type: "Spirit", Health: 400, Speed: 50, Damage: 40},
	}
}

func newTestManager() *Manager {
	return NewManager(testMonsters(), testBosses(), testBalance())
}

func TestIsBossWave(t *testing.T) {
	m := newTestManager()
	cases := []struct {
		wave int
		want bool
	}{
		{1, false}, {9, false}, {10, true}, {11, false}, {20, true}, {100, true},
	}
	for _, tc := range cases {
		if got := m.IsBossWave(tc.wave); got != tc.want {
			t.Errorf("IsBossWave(%d) = %v, want %v", tc.wave, got, tc.want)
		}
	}
}

func TestSpawnCount(t *testing.T) {
	m := newTestManager()
	// Wave 1: 5 + 1*0.5*1.2^0 = 5.5 -> 5.
	if got := m.SpawnCount(1); got != 5 {
		t.Errorf("SpawnCount(1) = %d, want 5", got)
	}
	// Boss waves spawn exactly one monster.
	if got := m.SpawnCount(10); got != 1 {
		t.Errorf("SpawnCount(10) = %d, want 1", got)
	}
	// Counts never shrink as waves progress (boss waves aside).
	prev := 0
	for wave := 1; wave <= 50; wave++ {
		if m.IsBossWave(wave) {
			continue
		}
		n := m.SpawnCount(wave)
		if n < prev {
			t.Fatalf("SpawnCount(%d) = %d, smaller than previous %d", wave, n, prev)
		}
		prev = n
	}
}

func TestStartNext(t *testing.T) {
	m := newTestManager()
	if err := m.StartNext(); err != nil {
		t.Fatalf("StartNext: %v", err)
	}
	if m.Wave != 1 || !m.Active {
		t.Errorf("wave = %d active = %v after first start", m.Wave, m.Active)
	}
	if err := m.StartNext(); err == nil {
		t.Error("starting a wave mid-wave must fail")
	}
}

func TestUpdate_SpawnPacing(t *testing.T) {
	m := newTestManager()
	if err := m.StartNext(); err != nil {
		t.Fatalf("StartNext: %v", err)
	}
	total := m.Remaining()

	// First tick releases the first spawn immediately.
	spawned, err := m.Update(0.1, fixedDice{}, 800)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(spawned) != 1 {
		t.Fatalf("first tick spawned %d, want 1", len(spawned))
	}

	// The rest arrive one per spawn interval.
	count := len(spawned)
	for i := 0; i < 200 && count < total; i++ {
		batch, err := m.Update(0.5, fixedDice{}, 800)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		count += len(batch)
	}
	if count != total {
		t.Errorf("spawned %d total, want %d", count, total)
	}
	if m.Remaining() != 0 {
		t.Errorf("Remaining = %d after full spawn", m.Remaining())
	}
}

func TestFinish(t *testing.T) {
	m := newTestManager()
	m.StartNext()
	if m.Finish(3) {
		t.Error("wave finished with spawns still owed")
	}
	for m.Remaining() > 0 {
		if _, err := m.Update(2.0, fixedDice{}, 800); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if m.Finish(2) {
		t.Error("wave finished with monsters alive")
	}
	if !m.Finish(0) {
		t.Error("wave did not finish with all spawns dead")
	}
	if m.Active {
		t.Error("manager still active after finish")
	}
}

func TestRandomType_MinWaveGating(t *testing.T) {
	monsters := testMonsters()

	// Wave 1: only Grunt qualifies, so any die lands on it.
	got, err := RandomType(monsters, 1, fixedDice{})
	if err != nil {
		t.Fatalf("RandomType: %v", err)
	}
	if got != "Grunt" {
		t.Errorf("wave 1 type = %q, want Grunt", got)
	}

	// Wave 8: all four qualify; index 0 in name order is Flyer.
	got, err = RandomType(monsters, 8, fixedDice{})
	if err != nil {
		t.Fatalf("RandomType: %v", err)
	}
	if got != "Flyer" {
		t.Errorf("wave 8 first candidate = %q, want Flyer (name order)", got)
	}
}

func TestRandomType_NoneAvailable(t *testing.T) {
	monsters := map[string]types.MonsterDef{
		"Late": {Type: "Late", MinWave: 10},
	}
	if _, err := RandomType(monsters, 1, fixedDice{}); err == nil {
		t.Error("expected error when no type is unlocked")
	}
}

func TestNewMonster_Scaling(t *testing.T) {
	bal := testBalance()
	m, err := NewMonster("Grunt", testMonsters(), 1, types.Vec2{}, bal)
	if err != nil {
		t.Fatalf("NewMonster: %v", err)
	}
	if m.Health != 40 || m.Damage != 8 {
		t.Errorf("wave 1 grunt health=%v damage=%v, want base stats", m.Health, m.Damage)
	}
	if m.SlowFactor != 1.0 {
		t.Errorf("SlowFactor = %v, want 1.0", m.SlowFactor)
	}

	// Wave 5 applies one difficulty step: 1.2x.
	m5, err := NewMonster("Grunt", testMonsters(), 5, types.Vec2{}, bal)
	if err != nil {
		t.Fatalf("NewMonster: %v", err)
	}
	if got, want := m5.Health, 40*1.2; !almostEqual(got, want) {
		t.Errorf("wave 5 health = %v, want %v", got, want)
	}
	if m5.MaxHealth != m5.Health {
		t.Error("MaxHealth must match spawned health")
	}
}

func TestNewMonster_UnknownType(t *testing.T) {
	if _, err := NewMonster("Wisp", testMonsters(), 1, types.Vec2{}, testBalance()); err == nil {
		t.Error("expected error for unknown monster type")
	}
}

func TestNewBoss(t *testing.T) {
	b, err := NewBoss("Force", testBosses(), 10, types.Vec2{}, testBalance())
	if err != nil {
		t.Fatalf("NewBoss: %v", err)
	}
	if !b.Boss {
		t.Error("boss flag not set")
	}
	// Wave 10: two difficulty steps, 1.2^2.
	if got, want := b.Health, 500*1.2*1.2; !almostEqual(got, want) {
		t.Errorf("boss health = %v, want %v", got, want)
	}
}

func TestBossType_CyclesInNameOrder(t *testing.T) {
	m := newTestManager()
	if got := m.BossType(10); got != "Force" {
		t.Errorf("wave 10 boss = %q, want Force", got)
	}
	if got := m.BossType(20); got != "Spirit" {
		t.Errorf("wave 20 boss = %q, want Spirit", got)
	}
	if got := m.BossType(30); got != "Force" {
		t.Errorf("wave 30 boss = %q, want Force (cycled)", got)
	}
}

func TestSpawn_DistinctIDs(t *testing.T) {
	m := newTestManager()
	m.StartNext()
	seen := map[string]bool{}
	for m.Remaining() > 0 {
		batch, err := m.Update(2.0, fixedDice{}, 800)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		for _, mon := range batch {
			if seen[mon.ID] {
				t.Fatalf("duplicate monster ID %q", mon.ID)
			}
			seen[mon.ID] = true
			if mon.Wave != 1 {
				t.Errorf("monster wave = %d, want 1", mon.Wave)
			}
		}
	}
}
