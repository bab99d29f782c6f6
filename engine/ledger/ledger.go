// Package ledger implements the shared resource ledger: the single owner of
// every resource amount, including equippable items held in inventory.
package ledger

import "fmt"

// Ledger tracks amounts for a closed set of resource types.
type Ledger struct {
	amounts map[string]int
}

// New creates a ledger over the given resource set, seeded with the
// initial amounts. Initial entries for undeclared resources are ignored.
func New(resources []string, initial map[string]int) *Ledger {
	amounts := make(map[string]int, len(resources))
	for _, r := range resources {
		amounts[r] = 0
	}
	for r, amt := range initial {
		if _, ok := amounts[r]; ok {
			amounts[r] = amt
		}
	}
	return &Ledger{amounts: amounts}
}

// Add credits amount of the given resource type. Unknown resource types
// are rejected rather than silently created.
func (l *Ledger) Add(resource string, amount int) error {
	if _, ok := l.amounts[resource]; !ok {
		return fmt.Errorf("unknown resource type %q", resource)
	}
	l.amounts[resource] += amount
	return nil
}

// Spend debits amount of one resource type. Returns false without mutating
// anything if the resource is unknown or the balance is insufficient.
func (l *Ledger) Spend(resource string, amount int) bool {
	have, ok := l.amounts[resource]
	if !ok || have < amount {
		return false
	}
	l.amounts[resource] = have - amount
	return true
}

// Has reports whether every resource in the cost mapping is covered.
func (l *Ledger) Has(cost map[string]int) bool {
	for resource, amount := range cost {
		if l.amounts[resource] < amount {
			return false
		}
	}
	return true
}

// SpendAll debits an entire cost mapping atomically: either every resource
// is spent or none is.
func (l *Ledger) SpendAll(cost map[string]int) bool {
	if !l.Has(cost) {
		return false
	}
	for resource, amount := range cost {
		l.amounts[resource] -= amount
	}
	return true
}

// Get returns the current amount of a resource type, or 0 if unknown.
func (l *Ledger) Get(resource string) int {
	return l.amounts[resource]
}

// Snapshot returns a copy of all current amounts.
func (l *Ledger) Snapshot() map[string]int {
	out := make(map[string]int, len(l.amounts))
	for r, amt := range l.amounts {
		out[r] = amt
	}
	return out
}
