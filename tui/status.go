package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing
// castle health, wave progress, coins, and field counts.
func (m Model) renderStatusBar() string {
	e := m.engine
	game := e.Defs.Game

	waveStr := fmt.Sprintf("Wave %d", e.Waves.Wave)
	if e.Waves.Active {
		waveStr += fmt.Sprintf(" (%d to spawn)", e.Waves.Remaining())
	}
	if e.GameOver {
		waveStr = "GAME OVER"
	}

	left := fmt.Sprintf(" Castle %.0f/%.0f | %s", e.CastleHealth, game.CastleHealth, waveStr)
	right := fmt.Sprintf("%s: %d | Towers: %d | Monsters: %d ",
		game.CoinResource, e.Ledger.Get(game.CoinResource),
		len(e.Towers), len(e.Monsters))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
