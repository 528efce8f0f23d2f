// Package catalog keeps the named circuits the simulator can run.
package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/logicsim/pkg/circuit"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/logic"
)

// Kind tells whether an entry is a clocked counter or a latch.
type Kind string

const (
	KindCounter Kind = "counter"
	KindLatch   Kind = "latch"
)

// Entry describes one registered circuit. Exactly one of Counter or Latch is set.
type Entry struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Kind        Kind             `json:"kind"`
	Counter     *circuit.Counter `json:"-"`
	Latch       logic.LatchKind  `json:"latch,omitempty"`
}

// Registry manages the available circuits. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Default returns a registry holding the built-in circuits.
func Default() *Registry {
	r := NewRegistry()
	r.Register(Entry{
		Name:        "jk-ring-counter",
		Description: "Two JK flip-flops, J1=Q2 K1=1 J2=!Q1 K2=1, reset to 00",
		Kind:        KindCounter,
		Counter:     circuit.RingCounter(),
	})
	r.Register(Entry{
		Name:        "nand-latch",
		Description: "Cross-coupled NAND pair, Q1=NAND(P1,Q2) Q2=NAND(P2,Q1)",
		Kind:        KindLatch,
		Latch:       logic.NAND,
	})
	r.Register(Entry{
		Name:        "nor-latch",
		Description: "Cross-coupled NOR pair, Q1=NOR(P1,Q2) Q2=NOR(P2,Q1)",
		Kind:        KindLatch,
		Latch:       logic.NOR,
	})
	return r
}

// Register adds a circuit to the registry.
// If a circuit with the same name exists, it is overwritten.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[strings.ToLower(e.Name)] = e
}

// Lookup finds a circuit by name (case-insensitive).
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	e, ok := r.entries[strings.ToLower(strings.TrimSpace(name))]
	r.mu.RUnlock()

	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownCircuit, name)
	}
	return e, nil
}

// Counter looks up a circuit and requires it to be a counter.
func (r *Registry) Counter(name string) (*circuit.Counter, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if e.Kind != KindCounter || e.Counter == nil {
		return nil, fmt.Errorf("circuit %s is a %s, not a counter", e.Name, e.Kind)
	}
	return e.Counter, nil
}

// List returns all entries sorted by name.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
