package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("215"))

	styleDeath = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleBoss = lipgloss.NewStyle().
			Foreground(lipgloss.Color("201")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNormal lineKind = iota
	kindCombat
	kindDeath
	kindBoss
	kindSystem
	kindError
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.Contains(lower, "boss") || strings.Contains(line, "castle has fallen"):
		return kindBoss
	case strings.Contains(line, "dies") || strings.Contains(line, "dropping"):
		return kindDeath
	case strings.Contains(line, "takes ") || strings.Contains(line, "fires at"):
		return kindCombat
	case strings.HasPrefix(lower, "insufficient"),
		strings.HasPrefix(lower, "unknown"),
		strings.HasPrefix(lower, "no "),
		strings.HasPrefix(lower, "usage:"),
		strings.HasPrefix(lower, "slot "):
		return kindError
	default:
		return kindNormal
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindCombat:
		return styleCombat.Render(line)
	case kindDeath:
		return styleDeath.Render(line)
	case kindBoss:
		return styleBoss.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	default:
		return styleNormal.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
