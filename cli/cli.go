// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Castle Defense engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ccc2223/Castle-Defense-sub001/engine"
	"github.com/ccc2223/Castle-Defense-sub001/engine/events"
	"github.com/ccc2223/Castle-Defense-sub001/engine/save"
	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Recorder  *events.Recorder
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine. The recorder must be the
// engine's event sink so combat output shows up after each command.
func New(eng *engine.Engine, rec *events.Recorder) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".castledef", "saves")
	return &CLI{
		Engine:   eng,
		Recorder: rec,
		In:       os.Stdin,
		Out:      os.Stdout,
		SaveDir:  saveDir,
	}
}

// Run starts the game loop. It shows the intro and opening status, then
// loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Engine.Defs.Game.Intro != "" {
		c.printLine(c.Engine.Defs.Game.Intro)
		c.printLine("")
	}

	result := c.Engine.Step("status")
	c.printResult(result)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printCombat()
		c.printResult(result)
	}
}

// printCombat flushes recorded combat events from the last command.
func (c *CLI) printCombat() {
	if c.Recorder == nil {
		return
	}
	lines := c.Recorder.Drain()
	if !c.Trace {
		return
	}
	for _, line := range lines {
		c.printLine(line)
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/seed":
		c.cmdSeed(arg)

	case "/set":
		c.cmdSet(args)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Combat trace enabled.")
		} else {
			c.printSystem("Combat trace disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}
	if c.Engine.Waves.Active {
		c.printSystem("Cannot save mid-wave. Finish the wave first.")
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := save.Write(c.Engine, path); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := save.Read(c.Engine, path); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s (wave %d).", name, c.Engine.Waves.Wave))

	result := c.Engine.Step("status")
	c.printResult(result)
}

func (c *CLI) cmdSeed(arg string) {
	if arg == "" {
		c.printSystem(fmt.Sprintf("Seed: %d (position %d)",
			c.Engine.RNG.Seed(), c.Engine.RNG.Position()))
		return
	}
	seed, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		c.printSystem("Usage: /seed [number]")
		return
	}
	c.Engine.Reseed(seed)
	c.printSystem(fmt.Sprintf("Reseeded with %d.", seed))
}

func (c *CLI) cmdSet(args []string) {
	if len(args) != 2 {
		c.printSystem("Usage: /set <balance_key> <value>")
		return
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		c.printSystem("Usage: /set <balance_key> <value>")
		return
	}
	if err := c.Engine.SetBalance(args[0], value); err != nil {
		c.printSystem(fmt.Sprintf("Set failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Balance %s = %g.", args[0], value))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]     — Save game (default: quicksave)",
		"  /load [name]     — Load game (default: quicksave)",
		"  /seed [n]        — Show or replace the RNG seed",
		"  /set <key> <v>   — Tune a balance constant",
		"  /trace           — Toggle per-hit combat output",
		"  /state           — Debug: dump current state",
		"  /quit            — Exit game",
		"  /help            — Show this help",
		"",
		"Game commands:",
		"  build <class> <x> <y>   — Place a tower (Archer, Sniper, Splash, Frozen)",
		"  wave (w)                — Start the next wave",
		"  tick [seconds] (t)      — Advance the simulation",
		"  run                     — Advance until the wave ends",
		"  towers                  — List your towers",
		"  monsters                — List monsters on the field",
		"  equip <t#> <slot> <item>",
		"  unequip <t#> <slot>",
		"  upgrade <t#> <path>     — damage, speed, range, or special",
		"  craft <item>            — Forge an item from cores",
		"  loot <entity> [wave]    — Preview a loot roll",
		"  resources (r)           — Show the ledger",
		"  status (s)              — Castle and wave summary",
		"  again (g)               — Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	e := c.Engine
	c.printSystem(fmt.Sprintf("Wave: %d (active: %v)", e.Waves.Wave, e.Waves.Active))
	c.printSystem(fmt.Sprintf("Castle: %.1f/%.1f", e.CastleHealth, e.Defs.Game.CastleHealth))
	c.printSystem(fmt.Sprintf("Towers: %d  Monsters: %d", len(e.Towers), len(e.Monsters)))
	c.printSystem(fmt.Sprintf("RNG: seed %d position %d", e.RNG.Seed(), e.RNG.Position()))
	c.printSystem(fmt.Sprintf("Resources: %v", e.Ledger.Snapshot()))
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
