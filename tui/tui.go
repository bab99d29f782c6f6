package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccc2223/Castle-Defense-sub001/engine"
	"github.com/ccc2223/Castle-Defense-sub001/engine/events"
	"github.com/ccc2223/Castle-Defense-sub001/engine/save"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Castle Defense TUI.
type Model struct {
	engine   *engine.Engine
	recorder *events.Recorder

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated output lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
	saveDir  string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine. The recorder must
// be the engine's event sink so combat output reaches the viewport.
func New(eng *engine.Engine, rec *events.Recorder) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		engine:   eng,
		recorder: rec,
		input:    ti,
		history:  NewHistory(100),
		saveDir:  filepath.Join(home, ".castledef", "saves"),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, rec *events.Recorder) error {
	m := New(eng, rec)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces intro text and status.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string

		game := m.engine.Defs.Game
		lines = append(lines, game.Title+" v"+game.Version)
		lines = append(lines, "")

		if game.Intro != "" {
			lines = append(lines, game.Intro)
			lines = append(lines, "")
		}

		result := m.engine.Step("status")
		lines = append(lines, result.Output...)

		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Game command.
	result := m.engine.Step(input)
	output := m.drainCombat()
	output = append(output, result.Output...)
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})
	return m, nil
}

// drainCombat flushes recorded combat events. Hit lines only show with
// trace on; death lines always show.
func (m *Model) drainCombat() []string {
	if m.recorder == nil {
		return nil
	}
	lines := m.recorder.Drain()
	if m.trace {
		return lines
	}
	var kept []string
	for _, line := range lines {
		if strings.Contains(line, "dies") || strings.Contains(line, "dropping") {
			kept = append(kept, line)
		}
	}
	return kept
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/seed":
		return m.cmdSeed(arg), false

	case "/set":
		return m.cmdSet(args), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Combat trace enabled."}, false
		}
		return []string{"Combat trace disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}
	if m.engine.Waves.Active {
		return []string{"Cannot save mid-wave. Finish the wave first."}
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := save.Write(m.engine, path); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	return []string{fmt.Sprintf("Game saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := save.Read(m.engine, path); err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	output := []string{fmt.Sprintf("Game loaded from %s (wave %d).", name, m.engine.Waves.Wave)}
	result := m.engine.Step("status")
	output = append(output, result.Output...)
	return output
}

func (m *Model) cmdSeed(arg string) []string {
	if arg == "" {
		return []string{fmt.Sprintf("Seed: %d (position %d)",
			m.engine.RNG.Seed(), m.engine.RNG.Position())}
	}
	seed, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return []string{"Usage: /seed [number]"}
	}
	m.engine.Reseed(seed)
	return []string{fmt.Sprintf("Reseeded with %d.", seed)}
}

func (m *Model) cmdSet(args []string) []string {
	if len(args) != 2 {
		return []string{"Usage: /set <balance_key> <value>"}
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return []string{"Usage: /set <balance_key> <value>"}
	}
	if err := m.engine.SetBalance(args[0], value); err != nil {
		return []string{fmt.Sprintf("Set failed: %v", err)}
	}
	return []string{fmt.Sprintf("Balance %s = %g.", args[0], value)}
}

func (m *Model) cmdHelp() []string {
	return []string{
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
		"  build <class> <x> <y>   — Place a tower",
		"  wave (w)                — Start the next wave",
		"  tick [seconds] (t)      — Advance the simulation",
		"  run                     — Advance until the wave ends",
		"  towers / monsters       — List the field",
		"  equip <t#> <slot> <item>",
		"  unequip <t#> <slot>",
		"  upgrade <t#> <path>     — damage, speed, range, or special",
		"  craft <item>            — Forge an item from cores",
		"  loot <entity> [wave]    — Preview a loot roll",
		"  resources (r)           — Show the ledger",
		"  status (s)              — Castle and wave summary",
		"  again (g)               — Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	e := m.engine
	return []string{
		fmt.Sprintf("Wave: %d (active: %v)", e.Waves.Wave, e.Waves.Active),
		fmt.Sprintf("Castle: %.1f/%.1f", e.CastleHealth, e.Defs.Game.CastleHealth),
		fmt.Sprintf("Towers: %d  Monsters: %d", len(e.Towers), len(e.Monsters)),
		fmt.Sprintf("RNG: seed %d position %d", e.RNG.Seed(), e.RNG.Position()),
		fmt.Sprintf("Resources: %v", e.Ledger.Snapshot()),
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
