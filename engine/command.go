package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// tickStep is the fixed simulation step used by the tick and run
// commands. Fixed stepping keeps replays deterministic regardless of
// how time is sliced.
const tickStep = 0.1

// runLimit caps the run command so a stalemate never spins forever.
const runLimit = 600.0

// Step interprets one game command and returns its output. Unknown
// commands and bad arguments come back as output lines, not errors;
// the caller just prints whatever it gets.
func (e *Engine) Step(input string) types.Result {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return types.Result{}
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "build", "b":
		return e.cmdBuild(args)
	case "wave", "w":
		return e.cmdWave()
	case "tick", "t":
		return e.cmdTick(args)
	case "run":
		return e.cmdRun()
	case "towers":
		return e.cmdTowers()
	case "monsters":
		return e.cmdMonsters()
	case "equip":
		return e.cmdEquip(args)
	case "unequip":
		return e.cmdUnequip(args)
	case "upgrade", "up":
		return e.cmdUpgrade(args)
	case "craft":
		return e.cmdCraft(args)
	case "loot":
		return e.cmdLoot(args)
	case "resources", "res", "r":
		return e.cmdResources()
	case "status", "s":
		return e.cmdStatus()
	}
	return out("Unknown command: %s. Type /help for available commands.", verb)
}

func out(format string, a ...any) types.Result {
	return types.Result{Output: []string{fmt.Sprintf(format, a...)}}
}

// towerByIndex resolves a 1-based tower index from the towers listing.
func (e *Engine) towerByIndex(arg string) (*types.Tower, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(e.Towers) {
		return nil, fmt.Errorf("no tower #%s (see towers)", arg)
	}
	return e.Towers[n-1], nil
}

func (e *Engine) cmdBuild(args []string) types.Result {
	if len(args) != 3 {
		return out("Usage: build <class> <x> <y>")
	}
	x, errX := strconv.ParseFloat(args[1], 64)
	y, errY := strconv.ParseFloat(args[2], 64)
	if errX != nil || errY != nil {
		return out("Usage: build <class> <x> <y>")
	}
	t, err := e.Build(types.TowerClass(args[0]), types.Vec2{X: x, Y: y})
	if err != nil {
		return out("%v", err)
	}
	return out("Built %s tower #%d at (%.0f, %.0f).", t.Class, len(e.Towers), x, y)
}

func (e *Engine) cmdWave() types.Result {
	n, err := e.StartWave()
	if err != nil {
		return out("%v", err)
	}
	if e.Waves.IsBossWave(n) {
		return out("Wave %d — a boss approaches!", n)
	}
	return out("Wave %d started: %d monsters incoming.", n, e.Waves.Remaining())
}

func (e *Engine) cmdTick(args []string) types.Result {
	seconds := 1.0
	if len(args) > 0 {
		s, err := strconv.ParseFloat(args[0], 64)
		if err != nil || s <= 0 {
			return out("Usage: tick [seconds]")
		}
		seconds = s
	}
	if err := e.advance(seconds); err != nil {
		return out("%v", err)
	}
	return e.cmdStatus()
}

func (e *Engine) cmdRun() types.Result {
	if !e.Waves.Active {
		return out("No wave in progress. Start one with: wave")
	}
	elapsed := 0.0
	for e.Waves.Active && !e.GameOver && elapsed < runLimit {
		if err := e.advance(tickStep); err != nil {
			return out("%v", err)
		}
		elapsed += tickStep
	}
	res := e.cmdStatus()
	switch {
	case e.GameOver:
		res.Output = append([]string{"The castle has fallen."}, res.Output...)
	case !e.Waves.Active:
		res.Output = append([]string{fmt.Sprintf("Wave %d cleared.", e.Waves.Wave)}, res.Output...)
	default:
		res.Output = append([]string{"Wave still in progress (run limit reached)."}, res.Output...)
	}
	return res
}

// advance steps the simulation in fixed increments.
func (e *Engine) advance(seconds float64) error {
	for seconds > 0 {
		dt := tickStep
		if seconds < dt {
			dt = seconds
		}
		if err := e.Tick(dt); err != nil {
			return err
		}
		seconds -= dt
	}
	return nil
}

func (e *Engine) cmdTowers() types.Result {
	if len(e.Towers) == 0 {
		return out("No towers built.")
	}
	var lines []string
	for i, t := range e.Towers {
		slots := make([]string, 0, types.TowerSlots)
		for _, item := range t.Slots {
			if item == "" {
				item = "-"
			}
			slots = append(slots, item)
		}
		lines = append(lines, fmt.Sprintf(
			"#%d %s at (%.0f, %.0f)  dmg %.1f (L%d)  spd %.2f (L%d)  rng %.0f (L%d)  slots [%s]",
			i+1, t.Class, t.Pos.X, t.Pos.Y,
			t.Derived.Damage, t.DamageLevel,
			t.Derived.AttackSpeed, t.AttackSpeedLevel,
			t.Derived.Range, t.RangeLevel,
			strings.Join(slots, ", ")))
	}
	return types.Result{Output: lines}
}

func (e *Engine) cmdMonsters() types.Result {
	if len(e.Monsters) == 0 {
		return out("No monsters on the field.")
	}
	var lines []string
	for _, m := range e.Monsters {
		tag := ""
		if m.Boss {
			tag = " [BOSS]"
		} else if m.Flying {
			tag = " [flying]"
		}
		lines = append(lines, fmt.Sprintf("%s%s  %.0f/%.0f hp at (%.0f, %.0f)",
			m.Type, tag, m.Health, m.MaxHealth, m.Pos.X, m.Pos.Y))
	}
	return types.Result{Output: lines}
}

func (e *Engine) cmdEquip(args []string) types.Result {
	if len(args) < 3 {
		return out("Usage: equip <tower#> <slot> <item>")
	}
	t, err := e.towerByIndex(args[0])
	if err != nil {
		return out("%v", err)
	}
	slot, err := strconv.Atoi(args[1])
	if err != nil {
		return out("Usage: equip <tower#> <slot> <item>")
	}
	item := strings.Join(args[2:], " ")
	if err := Equip(t, slot, item, e.Defs, e.Ledger); err != nil {
		return out("%v", err)
	}
	return out("Equipped %s on %s tower (slot %d).", item, t.Class, slot)
}

func (e *Engine) cmdUnequip(args []string) types.Result {
	if len(args) != 2 {
		return out("Usage: unequip <tower#> <slot>")
	}
	t, err := e.towerByIndex(args[0])
	if err != nil {
		return out("%v", err)
	}
	slot, err := strconv.Atoi(args[1])
	if err != nil {
		return out("Usage: unequip <tower#> <slot>")
	}
	removed, err := Unequip(t, slot, e.Defs, e.Ledger)
	if err != nil {
		return out("%v", err)
	}
	if removed == "" {
		return out("Slot %d is already empty.", slot)
	}
	return out("Returned %s to inventory.", removed)
}

func (e *Engine) cmdUpgrade(args []string) types.Result {
	if len(args) != 2 {
		return out("Usage: upgrade <tower#> <damage|speed|range|special>")
	}
	t, err := e.towerByIndex(args[0])
	if err != nil {
		return out("%v", err)
	}
	path := strings.ToLower(args[1])
	if err := Upgrade(t, e.Defs, e.Ledger, path); err != nil {
		return out("%v", err)
	}
	return out("Upgraded %s tower %s.", t.Class, path)
}

func (e *Engine) cmdCraft(args []string) types.Result {
	if len(args) == 0 {
		return out("Usage: craft <item>")
	}
	item := strings.Join(args, " ")
	if err := e.Craft(item); err != nil {
		return out("%v", err)
	}
	return out("Crafted %s.", item)
}

func (e *Engine) cmdLoot(args []string) types.Result {
	if len(args) == 0 {
		return out("Usage: loot <entity> [wave]")
	}
	waveNum := e.Waves.Wave
	if waveNum < 1 {
		waveNum = 1
	}
	entity := strings.Join(args, " ")
	if n, err := strconv.Atoi(args[len(args)-1]); err == nil && len(args) > 1 {
		waveNum = n
		entity = strings.Join(args[:len(args)-1], " ")
	}
	drops, err := e.GetLoot(entity, waveNum)
	if err != nil {
		return out("%v", err)
	}
	if len(drops) == 0 {
		return out("%s dropped nothing (wave %d).", entity, waveNum)
	}
	names := make([]string, 0, len(drops))
	for res := range drops {
		names = append(names, res)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, res := range names {
		parts = append(parts, fmt.Sprintf("%s x%d", res, drops[res]))
	}
	return out("%s (wave %d): %s", entity, waveNum, strings.Join(parts, ", "))
}

func (e *Engine) cmdResources() types.Result {
	snap := e.Ledger.Snapshot()
	names := make([]string, 0, len(snap))
	for res := range snap {
		names = append(names, res)
	}
	sort.Strings(names)
	var lines []string
	for _, res := range names {
		if snap[res] == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-16s %d", res, snap[res]))
	}
	if len(lines) == 0 {
		return out("The ledger is empty.")
	}
	return types.Result{Output: lines}
}

func (e *Engine) cmdStatus() types.Result {
	lines := []string{
		fmt.Sprintf("Castle: %.0f/%.0f  Wave: %d  Towers: %d  Monsters: %d",
			e.CastleHealth, e.Defs.Game.CastleHealth, e.Waves.Wave,
			len(e.Towers), len(e.Monsters)),
	}
	if e.GameOver {
		lines = append(lines, "GAME OVER")
	} else if e.Waves.Active {
		lines = append(lines, fmt.Sprintf("Wave in progress: %d spawns remaining.", e.Waves.Remaining()))
	}
	return types.Result{Output: lines}
}

// Reseed replaces the randomness source. Mainly for testing and replay.
func (e *Engine) Reseed(seed int64) {
	e.SetRNG(NewRNG(seed))
}
