// Package reward converts kills into loot and applies it to the ledger.
// The dispatcher is constructed with every collaborator it needs — nothing
// is discovered through ambient state.
package reward

import (
	"fmt"

	"github.com/ccc2223/Castle-Defense-sub001/engine/events"
	"github.com/ccc2223/Castle-Defense-sub001/engine/loot"
	"github.com/ccc2223/Castle-Defense-sub001/types"
)

// Ledger is the slice of the resource ledger the dispatcher writes to.
type Ledger interface {
	Add(resource string, amount int) error
}

// Dispatcher routes each kill through its loot table and credits the ledger.
type Dispatcher struct {
	tables map[string]types.LootTable
	ledger Ledger
	sink   events.Sink
	src    loot.Source
}

// New creates a dispatcher. All collaborators are mandatory; sink may be
// events.Hooks{} for a silent dispatcher but must not be nil.
func New(tables map[string]types.LootTable, ledger Ledger, sink events.Sink, src loot.Source) *Dispatcher {
	return &Dispatcher{tables: tables, ledger: ledger, sink: sink, src: src}
}

// Loot rolls the loot table for one entity type at the given wave.
func (d *Dispatcher) Loot(entityType string, wave int) (map[string]int, error) {
	table, ok := d.tables[entityType]
	if !ok {
		return nil, fmt.Errorf("no loot table for entity type %q", entityType)
	}
	return loot.Roll(table, wave, d.src), nil
}

// OnKills processes a kill set: for each unique entity, roll its loot table
// at the given wave, merge the drops into the ledger, and notify the sink
// exactly once. Entities repeated in the input or lacking a loot table are
// skipped (kill-set deduplication upstream makes repeats a caller bug, but
// the dispatcher treats its input as a set regardless).
func (d *Dispatcher) OnKills(killed []*types.Monster, wave int) {
	seen := map[string]bool{}
	for _, m := range killed {
		if m == nil || seen[m.ID] {
			continue
		}
		seen[m.ID] = true

		drops, err := d.Loot(m.Type, wave)
		if err != nil {
			drops = nil
		}
		for resource, amount := range drops {
			// Undeclared resources were rejected at load time; an Add
			// failure here means the content validator was bypassed.
			_ = d.ledger.Add(resource, amount)
		}
		d.sink.MonsterDied(m, drops)
	}
}
