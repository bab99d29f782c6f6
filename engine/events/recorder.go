package events

import (
	"fmt"
	"sort"

	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// Recorder is a Sink that accumulates human-readable log lines. The front
// ends drain it after each tick; tests use it to assert notification order.
type Recorder struct {
	Lines  []string
	Hits   int
	Deaths int
}

func (r *Recorder) AttackFired(tower *types.Tower, target *types.Monster) {
	r.Lines = append(r.Lines, fmt.Sprintf("%s tower fires at %s", tower.Class, target.Type))
}

func (r *Recorder) MonsterHit(m *types.Monster, damage float64, kind string) {
	r.Hits++
	r.Lines = append(r.Lines, fmt.Sprintf("%s takes %.0f %s damage (%.0f/%.0f hp)",
		m.Type, damage, kind, m.Health, m.MaxHealth))
}

func (r *Recorder) MonsterDied(m *types.Monster, drops map[string]int) {
	r.Deaths++
	line := fmt.Sprintf("%s dies", m.Type)
	if len(drops) > 0 {
		line += fmt.Sprintf(", dropping %s", formatDrops(drops))
	}
	r.Lines = append(r.Lines, line)
}

// Drain returns the accumulated lines and clears the buffer.
func (r *Recorder) Drain() []string {
	lines := r.Lines
	r.Lines = nil
	return lines
}

func formatDrops(drops map[string]int) string {
	out := ""
	for _, resource := range sortedKeys(drops) {
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%d %s", drops[resource], resource)
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic order
	return keys
}
