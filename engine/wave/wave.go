// Package wave owns wave progression: spawn counts, spawn timing, and
// the monster factory with its wave-based difficulty scaling.
package wave

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// Dice is the randomness the spawner needs. Satisfied by engine.RNG.
type Dice interface {
	Intn(n int) int
}

// Manager tracks the current wave and doles out spawns over time.
type Manager struct {
	Wave   int
	Active bool

	toSpawn    int
	spawnTimer float64

	monsters  map[string]types.MonsterDef
	bosses    map[string]types.BossDef
	bal       *types.Balance
	bossOrder []string
}

// NewManager builds a wave manager over the given monster and boss
// catalogues. Balance is shared with the engine so balance mutations
// take effect on the next spawn.
func NewManager(monsters map[string]types.MonsterDef, bosses map[string]types.BossDef, bal *types.Balance) *Manager {
	order := make([]string, 0, len(bosses))
	for name := range bosses {
		order = append(order, name)
	}
	sort.Strings(order)
	return &Manager{
		monsters:  monsters,
		bosses:    bosses,
		bal:       bal,
		bossOrder: order,
	}
}

// StartNext begins the next wave. It fails while a wave is still running.
func (w *Manager) StartNext() error {
	if w.Active {
		return fmt.Errorf("wave %d still in progress", w.Wave)
	}
	w.Wave++
	w.Active = true
	w.toSpawn = w.SpawnCount(w.Wave)
	w.spawnTimer = 0 // first spawn is immediate
	return nil
}

// IsBossWave reports whether the given wave number is a boss wave.
func (w *Manager) IsBossWave(wave int) bool {
	return w.bal.BossWaveEvery > 0 && wave > 0 && wave%w.bal.BossWaveEvery == 0
}

// SpawnCount returns how many monsters the given wave spawns. Boss waves
// spawn a single boss; regular waves grow with the wave number, steepened
// by the difficulty curve every ten waves.
func (w *Manager) SpawnCount(wave int) int {
	if w.IsBossWave(wave) {
		return 1
	}
	n := float64(w.bal.SpawnBase) + float64(wave)*0.5*math.Pow(w.bal.WaveDifficulty, float64(wave/10))
	return int(n)
}

// Remaining reports how many spawns are still owed for the current wave.
func (w *Manager) Remaining() int {
	return w.toSpawn
}

// Update advances the spawn clock and returns any monsters spawned this
// tick. Spawn positions are drawn along the top edge of the field.
func (w *Manager) Update(dt float64, dice Dice, width float64) ([]*types.Monster, error) {
	if !w.Active || w.toSpawn == 0 {
		return nil, nil
	}
	w.spawnTimer -= dt
	var spawned []*types.Monster
	for w.spawnTimer <= 0 && w.toSpawn > 0 {
		m, err := w.spawn(dice, width)
		if err != nil {
			return spawned, err
		}
		spawned = append(spawned, m)
		w.toSpawn--
		w.spawnTimer += w.bal.SpawnInterval
	}
	return spawned, nil
}

// Finish marks the wave complete once every spawn is out and dead.
// Returns true on the tick the wave ends.
func (w *Manager) Finish(alive int) bool {
	if !w.Active || w.toSpawn > 0 || alive > 0 {
		return false
	}
	w.Active = false
	return true
}

func (w *Manager) spawn(dice Dice, width float64) (*types.Monster, error) {
	pos := spawnPos(dice, width)
	if w.IsBossWave(w.Wave) {
		return NewBoss(w.BossType(w.Wave), w.bosses, w.Wave, pos, w.bal)
	}
	mtype, err := RandomType(w.monsters, w.Wave, dice)
	if err != nil {
		return nil, err
	}
	return NewMonster(mtype, w.monsters, w.Wave, pos, w.bal)
}

func spawnPos(dice Dice, width float64) types.Vec2 {
	span := int(width) - 100
	if span < 1 {
		span = 1
	}
	return types.Vec2{X: float64(50 + dice.Intn(span)), Y: 0}
}

// RandomType picks uniformly among the monster types unlocked by the
// given wave. Candidates are sorted by name so the draw is reproducible.
func RandomType(monsters map[string]types.MonsterDef, wave int, dice Dice) (string, error) {
	var pool []string
	for name, def := range monsters {
		if wave >= def.MinWave {
			pool = append(pool, name)
		}
	}
	if len(pool) == 0 {
		return "", fmt.Errorf("no monster types available on wave %d", wave)
	}
	sort.Strings(pool)
	return pool[dice.Intn(len(pool))], nil
}

// BossType returns the boss for the given boss wave, cycling through the
// boss catalogue in name order.
func (w *Manager) BossType(wave int) string {
	if len(w.bossOrder) == 0 {
		return ""
	}
	idx := wave/w.bal.BossWaveEvery - 1
	return w.bossOrder[idx%len(w.bossOrder)]
}

// difficulty is the health and damage multiplier for a wave. The curve
// steps up every five waves.
func difficulty(bal *types.Balance, wave int) float64 {
	return math.Pow(bal.WaveDifficulty, float64(wave/5))
}

// NewMonster builds one regular monster of the given type, scaled to the
// wave's difficulty.
func NewMonster(mtype string, monsters map[string]types.MonsterDef, wave int, pos types.Vec2, bal *types.Balance) (*types.Monster, error) {
	def, ok := monsters[mtype]
	if !ok {
		return nil, fmt.Errorf("unknown monster type %q", mtype)
	}
	scale := difficulty(bal, wave)
	hp := def.Health * scale
	return &types.Monster{
		ID:         uuid.NewString(),
		Type:       mtype,
		Health:     hp,
		MaxHealth:  hp,
		Damage:     def.Damage * scale,
		Speed:      def.Speed,
		Pos:        pos,
		Flying:     def.Flying,
		Wave:       wave,
		SlowFactor: 1.0,
	}, nil
}

// NewBoss builds one boss, scaled like a regular monster but flagged.
func NewBoss(btype string, bosses map[string]types.BossDef, wave int, pos types.Vec2, bal *types.Balance) (*types.Monster, error) {
	def, ok := bosses[btype]
	if !ok {
		return nil, fmt.Errorf("unknown boss type %q", btype)
	}
	scale := difficulty(bal, wave)
	hp := def.Health * scale
	return &types.Monster{
		ID:         uuid.NewString(),
		Type:       btype,
		Boss:       true,
		Health:     hp,
		MaxHealth:  hp,
		Damage:     def.Damage * scale,
		Speed:      def.Speed,
		Pos:        pos,
		Wave:       wave,
		SlowFactor: 1.0,
	}, nil
}
